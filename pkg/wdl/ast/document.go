package ast

import (
	"iter"
	"strings"

	"wdlkit/wdl/pkg/wdl/syntax"
)

// SupportedVersion is a WDL version this package understands.
type SupportedVersion int

const (
	VersionUnknown SupportedVersion = iota
	Version10
	Version11
	Version12
)

// String returns the version as written in a version statement.
func (v SupportedVersion) String() string {
	switch v {
	case Version10:
		return "1.0"
	case Version11:
		return "1.1"
	case Version12:
		return "1.2"
	default:
		return "unknown"
	}
}

// ParseSupportedVersion parses a version number such as "1.1".
func ParseSupportedVersion(s string) (SupportedVersion, bool) {
	switch strings.TrimSpace(s) {
	case "1.0":
		return Version10, true
	case "1.1":
		return Version11, true
	case "1.2":
		return Version12, true
	default:
		return VersionUnknown, false
	}
}

// Document is the root of a WDL document.
type Document struct{ nodeBase }

// CanCastDocument reports whether kind is a document root.
func CanCastDocument(kind syntax.Kind) bool { return kind == syntax.RootNode }

// CastDocument casts a node to a Document.
func CastDocument(n syntax.Node) (Document, bool) {
	if !CanCastDocument(n.Kind()) {
		return Document{}, false
	}
	return Document{nodeBase{n}}, true
}

// NewDocument wraps the root of a tree.
func NewDocument(tree *syntax.Tree) Document {
	return Document{nodeBase{tree.Root()}}
}

// Version returns the version statement of the document.
func (d Document) Version() VersionStatement {
	return requireChild(d.node, CastVersionStatement, "document", "version statement")
}

// SupportedVersion returns the declared version, or VersionUnknown when the
// document has no version statement or declares one this package does not support.
func (d Document) SupportedVersion() SupportedVersion {
	stmt, ok := child(d.node, CastVersionStatement)
	if !ok {
		return VersionUnknown
	}
	v, _ := stmt.SupportedVersion()
	return v
}

// Items returns the task, workflow and struct definitions in source order.
func (d Document) Items() iter.Seq[DocumentItem] {
	return children(d.node, CastDocumentItem)
}

// Tasks returns the task definitions in the document.
func (d Document) Tasks() iter.Seq[TaskDefinition] {
	return children(d.node, CastTaskDefinition)
}

// Workflows returns the workflow definitions in the document.
func (d Document) Workflows() iter.Seq[WorkflowDefinition] {
	return children(d.node, CastWorkflowDefinition)
}

// Structs returns the struct definitions in the document.
func (d Document) Structs() iter.Seq[StructDefinition] {
	return children(d.node, CastStructDefinition)
}

// VersionStatement is the `version` statement at the top of a document.
type VersionStatement struct{ nodeBase }

// CanCastVersionStatement reports whether kind is a version statement.
func CanCastVersionStatement(kind syntax.Kind) bool { return kind == syntax.VersionStatementNode }

// CastVersionStatement casts a node to a VersionStatement.
func CastVersionStatement(n syntax.Node) (VersionStatement, bool) {
	if !CanCastVersionStatement(n.Kind()) {
		return VersionStatement{}, false
	}
	return VersionStatement{nodeBase{n}}, true
}

// Keyword returns the `version` keyword token.
func (v VersionStatement) Keyword() syntax.Token {
	return requireToken(v.node, syntax.VersionKeyword, "version statement", "keyword")
}

// Version returns the version number token.
func (v VersionStatement) Version() syntax.Token {
	return requireToken(v.node, syntax.Version, "version statement", "version number")
}

// SupportedVersion returns the declared version if it is supported.
func (v VersionStatement) SupportedVersion() (SupportedVersion, bool) {
	t, ok := v.node.FirstToken(syntax.Version)
	if !ok {
		return VersionUnknown, false
	}
	return ParseSupportedVersion(t.Text())
}

// DocumentItem is a top-level definition: a TaskDefinition, WorkflowDefinition or StructDefinition.
type DocumentItem interface {
	Node
	isDocumentItem()
}

// CanCastDocumentItem reports whether kind is a top-level definition.
func CanCastDocumentItem(kind syntax.Kind) bool {
	return CanCastTaskDefinition(kind) || CanCastWorkflowDefinition(kind) || CanCastStructDefinition(kind)
}

// CastDocumentItem casts a node to a DocumentItem.
func CastDocumentItem(n syntax.Node) (DocumentItem, bool) {
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
