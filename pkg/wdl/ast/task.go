package ast

import (
	"iter"

	"wdlkit/wdl/pkg/wdl/syntax"
)

// TaskDefinition is a `task` definition.
type TaskDefinition struct{ nodeBase }

func (TaskDefinition) isDocumentItem()  {}
func (TaskDefinition) isSectionParent() {}

// CanCastTaskDefinition reports whether kind is a task definition.
func CanCastTaskDefinition(kind syntax.Kind) bool { return kind == syntax.TaskDefinitionNode }

// CastTaskDefinition casts a node to a TaskDefinition.
func CastTaskDefinition(n syntax.Node) (TaskDefinition, bool) {
	if !CanCastTaskDefinition(n.Kind()) {
		return TaskDefinition{}, false
	}
	return TaskDefinition{nodeBase{n}}, true
}

// Name returns the name of the task.
func (t TaskDefinition) Name() Ident {
	return requireName(t.node, "task definition")
}

// Items returns the sections and private declarations of the task in source order.
func (t TaskDefinition) Items() iter.Seq[TaskItem] {
	return children(t.node, CastTaskItem)
}

// Input returns the input section, if any.
func (t TaskDefinition) Input() (InputSection, bool) {
	return child(t.node, CastInputSection)
}

// Output returns the output section, if any.
func (t TaskDefinition) Output() (OutputSection, bool) {
	return child(t.node, CastOutputSection)
}

// Command returns the command section, if any.
func (t TaskDefinition) Command() (CommandSection, bool) {
	return child(t.node, CastCommandSection)
}

// Requirements returns the requirements section, if any.
func (t TaskDefinition) Requirements() (RequirementsSection, bool) {
	return child(t.node, CastRequirementsSection)
}

// Hints returns the hints section, if any.
func (t TaskDefinition) Hints() (HintsSection, bool) {
	return child(t.node, CastHintsSection)
}

// Runtime returns the runtime section, if any.
func (t TaskDefinition) Runtime() (RuntimeSection, bool) {
	return child(t.node, CastRuntimeSection)
}

// Metadata returns the meta section, if any.
func (t TaskDefinition) Metadata() (MetadataSection, bool) {
	return child(t.node, CastMetadataSection)
}

// ParameterMetadata returns the parameter_meta section, if any.
func (t TaskDefinition) ParameterMetadata() (ParameterMetadataSection, bool) {
	return child(t.node, CastParameterMetadataSection)
}

// Declarations returns the private declarations of the task.
func (t TaskDefinition) Declarations() iter.Seq[BoundDecl] {
	return children(t.node, CastBoundDecl)
}

// TaskItem is an item directly inside a task: one of InputSection,
// OutputSection, CommandSection, RequirementsSection, HintsSection,
// RuntimeSection, MetadataSection, ParameterMetadataSection or BoundDecl.
type TaskItem interface {
	Node
	isTaskItem()
}

// CanCastTaskItem reports whether kind can appear as a task item.
func CanCastTaskItem(kind syntax.Kind) bool {
	switch kind {
	case syntax.InputSectionNode,
		syntax.OutputSectionNode,
		syntax.CommandSectionNode,
		syntax.RequirementsSectionNode,
		syntax.HintsSectionNode,
		syntax.RuntimeSectionNode,
		syntax.MetadataSectionNode,
		syntax.ParameterMetadataSectionNode,
		syntax.BoundDeclNode:
		return true
	}
	return false
}

// CastTaskItem casts a node to a TaskItem.
func CastTaskItem(n syntax.Node) (TaskItem, bool) {
	switch n.Kind() {
	case syntax.InputSectionNode:
		return InputSection{nodeBase{n}}, true
	case syntax.OutputSectionNode:
		return OutputSection{nodeBase{n}}, true
	case syntax.CommandSectionNode:
		return CommandSection{nodeBase{n}}, true
	case syntax.RequirementsSectionNode:
		return RequirementsSection{nodeBase{n}}, true
	case syntax.HintsSectionNode:
		return HintsSection{nodeBase{n}}, true
	case syntax.RuntimeSectionNode:
		return RuntimeSection{nodeBase{n}}, true
	case syntax.MetadataSectionNode:
		return MetadataSection{nodeBase{n}}, true
	case syntax.ParameterMetadataSectionNode:
		return ParameterMetadataSection{nodeBase{n}}, true
	case syntax.BoundDeclNode:
		return BoundDecl{nodeBase{n}}, true
	}
	return nil, false
}

// SectionParent is the definition that owns a section: a TaskDefinition,
// WorkflowDefinition or StructDefinition.
type SectionParent interface {
	Node
	Name() Ident
	isSectionParent()
}

// CanCastSectionParent reports whether kind can own sections.
func CanCastSectionParent(kind syntax.Kind) bool {
	return CanCastTaskDefinition(kind) || CanCastWorkflowDefinition(kind) || CanCastStructDefinition(kind)
}

// CastSectionParent casts a node to a SectionParent.
func CastSectionParent(n syntax.Node) (SectionParent, bool) {
	switch n.Kind() {
	case syntax.TaskDefinitionNode:
		return TaskDefinition{nodeBase{n}}, true
	case syntax.WorkflowDefinitionNode:
		return WorkflowDefinition{nodeBase{n}}, true
	case syntax.StructDefinitionNode:
		return StructDefinition{nodeBase{n}}, true
	}
	return nil, false
}

// sectionParent walks up from n to the nearest task, workflow or struct.
func sectionParent(n syntax.Node, concept string) SectionParent {
	for a := range n.Ancestors() {
		if p, ok := CastSectionParent(a); ok {
			return p
		}
	}
	violate(n, concept, "parent definition")
	return nil
}

// parentTask walks up from n to the nearest task.
func parentTask(n syntax.Node, concept string) TaskDefinition {
	p := sectionParent(n, concept)
	task, ok := p.(TaskDefinition)
	if !ok {
		violate(n, concept, "parent task")
	}
	return task
}

// InputSection is an `input` section.
type InputSection struct{ nodeBase }

func (InputSection) isTaskItem()     {}
func (InputSection) isWorkflowItem() {}

// CanCastInputSection reports whether kind is an input section.
func CanCastInputSection(kind syntax.Kind) bool { return kind == syntax.InputSectionNode }

// CastInputSection casts a node to an InputSection.
func CastInputSection(n syntax.Node) (InputSection, bool) {
	if !CanCastInputSection(n.Kind()) {
		return InputSection{}, false
	}
	return InputSection{nodeBase{n}}, true
}

// Parent returns the task or workflow owning the section.
func (s InputSection) Parent() SectionParent {
	return sectionParent(s.node, "input section")
}

// Declarations returns the input declarations, bound or unbound.
func (s InputSection) Declarations() iter.Seq[Decl] {
	return children(s.node, CastDecl)
}

// OutputSection is an `output` section.
type OutputSection struct{ nodeBase }

func (OutputSection) isTaskItem()     {}
func (OutputSection) isWorkflowItem() {}

// CanCastOutputSection reports whether kind is an output section.
func CanCastOutputSection(kind syntax.Kind) bool { return kind == syntax.OutputSectionNode }

// CastOutputSection casts a node to an OutputSection.
func CastOutputSection(n syntax.Node) (OutputSection, bool) {
	if !CanCastOutputSection(n.Kind()) {
		return OutputSection{}, false
	}
	return OutputSection{nodeBase{n}}, true
}

// Parent returns the task or workflow owning the section.
func (s OutputSection) Parent() SectionParent {
	return sectionParent(s.node, "output section")
}

// Declarations returns the output declarations.
func (s OutputSection) Declarations() iter.Seq[BoundDecl] {
	return children(s.node, CastBoundDecl)
}
