package ast

import (
	"iter"

	"wdlkit/wdl/pkg/wdl/syntax"
)

// WorkflowDefinition is a `workflow` definition.
type WorkflowDefinition struct{ nodeBase }

func (WorkflowDefinition) isDocumentItem()  {}
func (WorkflowDefinition) isSectionParent() {}

// CanCastWorkflowDefinition reports whether kind is a workflow definition.
func CanCastWorkflowDefinition(kind syntax.Kind) bool { return kind == syntax.WorkflowDefinitionNode }

// CastWorkflowDefinition casts a node to a WorkflowDefinition.
func CastWorkflowDefinition(n syntax.Node) (WorkflowDefinition, bool) {
	if !CanCastWorkflowDefinition(n.Kind()) {
		return WorkflowDefinition{}, false
	}
	return WorkflowDefinition{nodeBase{n}}, true
}

// Name returns the name of the workflow.
func (w WorkflowDefinition) Name() Ident {
	return requireName(w.node, "workflow definition")
}

// Items returns the sections and declarations of the workflow in source order.
func (w WorkflowDefinition) Items() iter.Seq[WorkflowItem] {
	return children(w.node, CastWorkflowItem)
}

// Input returns the input section, if any.
func (w WorkflowDefinition) Input() (InputSection, bool) {
	return child(w.node, CastInputSection)
}

// Output returns the output section, if any.
func (w WorkflowDefinition) Output() (OutputSection, bool) {
	return child(w.node, CastOutputSection)
}

// Hints returns the hints section, if any.
func (w WorkflowDefinition) Hints() (HintsSection, bool) {
	return child(w.node, CastHintsSection)
}

// Metadata returns the meta section, if any.
func (w WorkflowDefinition) Metadata() (MetadataSection, bool) {
	return child(w.node, CastMetadataSection)
}

// ParameterMetadata returns the parameter_meta section, if any.
func (w WorkflowDefinition) ParameterMetadata() (ParameterMetadataSection, bool) {
	return child(w.node, CastParameterMetadataSection)
}

// Declarations returns the private declarations of the workflow.
func (w WorkflowDefinition) Declarations() iter.Seq[BoundDecl] {
	return children(w.node, CastBoundDecl)
}

// WorkflowItem is an item directly inside a workflow: one of InputSection,
// OutputSection, HintsSection, MetadataSection, ParameterMetadataSection or BoundDecl.
type WorkflowItem interface {
	Node
	isWorkflowItem()
}

// CanCastWorkflowItem reports whether kind can appear as a workflow item.
func CanCastWorkflowItem(kind syntax.Kind) bool {
	switch kind {
	case syntax.InputSectionNode,
		syntax.OutputSectionNode,
		syntax.HintsSectionNode,
		syntax.MetadataSectionNode,
		syntax.ParameterMetadataSectionNode,
		syntax.BoundDeclNode:
		return true
	}
	return false
}

// CastWorkflowItem casts a node to a WorkflowItem.
func CastWorkflowItem(n syntax.Node) (WorkflowItem, bool) {
	switch n.Kind() {
	case syntax.InputSectionNode:
		return InputSection{nodeBase{n}}, true
	case syntax.OutputSectionNode:
		return OutputSection{nodeBase{n}}, true
	case syntax.HintsSectionNode:
		return HintsSection{nodeBase{n}}, true
	case syntax.MetadataSectionNode:
		return MetadataSection{nodeBase{n}}, true
	case syntax.ParameterMetadataSectionNode:
		return ParameterMetadataSection{nodeBase{n}}, true
	case syntax.BoundDeclNode:
		return BoundDecl{nodeBase{n}}, true
	}
	return nil, false
}

// StructDefinition is a `struct` definition.
type StructDefinition struct{ nodeBase }

func (StructDefinition) isDocumentItem()  {}
func (StructDefinition) isSectionParent() {}

// CanCastStructDefinition reports whether kind is a struct definition.
func CanCastStructDefinition(kind syntax.Kind) bool { return kind == syntax.StructDefinitionNode }

// CastStructDefinition casts a node to a StructDefinition.
func CastStructDefinition(n syntax.Node) (StructDefinition, bool) {
	if !CanCastStructDefinition(n.Kind()) {
		return StructDefinition{}, false
	}
	return StructDefinition{nodeBase{n}}, true
}

// Name returns the name of the struct.
func (s StructDefinition) Name() Ident {
	return requireName(s.node, "struct definition")
}

// Members returns the member declarations of the struct.
func (s StructDefinition) Members() iter.Seq[UnboundDecl] {
	return children(s.node, CastUnboundDecl)
}

// Metadata returns the meta section, if any.
func (s StructDefinition) Metadata() (MetadataSection, bool) {
	return child(s.node, CastMetadataSection)
}

// ParameterMetadata returns the parameter_meta section, if any.
func (s StructDefinition) ParameterMetadata() (ParameterMetadataSection, bool) {
	return child(s.node, CastParameterMetadataSection)
}
