package ast

// VisitReason tells a visitor callback whether the walk is entering or
// leaving a node.
type VisitReason int

const (
	Enter VisitReason = iota // Before the node's children are visited
	Exit                     // After the node's children are visited
)

// String returns "enter" or "exit".
func (r VisitReason) String() string {
	if r == Exit {
		return "exit"
	}
	return "enter"
}

// Visitor receives typed callbacks during a walk of a document.
//
// Node callbacks fire twice per node, once with Enter before any child is
// visited and once with Exit after the last child. Token callbacks
// (CommandText, StringText, Whitespace, Comment) fire once. The state value is
// passed through unchanged to every callback; use a pointer type for S to
// accumulate results.
//
// Embed NopVisitor to implement only the callbacks you need.
type Visitor[S any] interface {
	Document(state S, reason VisitReason, doc Document, version SupportedVersion)
	VersionStatement(state S, reason VisitReason, stmt VersionStatement)
	Whitespace(state S, ws Whitespace)
	Comment(state S, comment Comment)

	TaskDefinition(state S, reason VisitReason, task TaskDefinition)
	WorkflowDefinition(state S, reason VisitReason, workflow WorkflowDefinition)
	StructDefinition(state S, reason VisitReason, def StructDefinition)

	InputSection(state S, reason VisitReason, section InputSection)
	OutputSection(state S, reason VisitReason, section OutputSection)
	CommandSection(state S, reason VisitReason, section CommandSection)
	CommandText(state S, text CommandText)
	RequirementsSection(state S, reason VisitReason, section RequirementsSection)
	RequirementsItem(state S, reason VisitReason, item RequirementsItem)
	HintsSection(state S, reason VisitReason, section HintsSection)
	HintsItem(state S, reason VisitReason, item HintsItem)
	RuntimeSection(state S, reason VisitReason, section RuntimeSection)
	RuntimeItem(state S, reason VisitReason, item RuntimeItem)

	MetadataSection(state S, reason VisitReason, section MetadataSection)
	ParameterMetadataSection(state S, reason VisitReason, section ParameterMetadataSection)
	MetadataObjectItem(state S, reason VisitReason, item MetadataObjectItem)
	MetadataObject(state S, reason VisitReason, object MetadataObject)
	MetadataArray(state S, reason VisitReason, array MetadataArray)

	BoundDecl(state S, reason VisitReason, decl BoundDecl)
	UnboundDecl(state S, reason VisitReason, decl UnboundDecl)
	Expr(state S, reason VisitReason, expr Expr)
	Placeholder(state S, reason VisitReason, placeholder Placeholder)
	StringText(state S, text StringText)
}

// NopVisitor implements every Visitor callback as a no-op.
type NopVisitor[S any] struct{}

func (NopVisitor[S]) Document(S, VisitReason, Document, SupportedVersion) {}
func (NopVisitor[S]) VersionStatement(S, VisitReason, VersionStatement) {}
func (NopVisitor[S]) Whitespace(S, Whitespace) {}
func (NopVisitor[S]) Comment(S, Comment) {}
func (NopVisitor[S]) TaskDefinition(S, VisitReason, TaskDefinition) {}
func (NopVisitor[S]) WorkflowDefinition(S, VisitReason, WorkflowDefinition) {}
func (NopVisitor[S]) StructDefinition(S, VisitReason, StructDefinition) {}
func (NopVisitor[S]) InputSection(S, VisitReason, InputSection) {}
func (NopVisitor[S]) OutputSection(S, VisitReason, OutputSection) {}
func (NopVisitor[S]) CommandSection(S, VisitReason, CommandSection) {}
func (NopVisitor[S]) CommandText(S, CommandText) {}
func (NopVisitor[S]) RequirementsSection(S, VisitReason, RequirementsSection) {}
func (NopVisitor[S]) RequirementsItem(S, VisitReason, RequirementsItem) {}
func (NopVisitor[S]) HintsSection(S, VisitReason, HintsSection) {}
func (NopVisitor[S]) HintsItem(S, VisitReason, HintsItem) {}
func (NopVisitor[S]) RuntimeSection(S, VisitReason, RuntimeSection) {}
func (NopVisitor[S]) RuntimeItem(S, VisitReason, RuntimeItem) {}
func (NopVisitor[S]) MetadataSection(S, VisitReason, MetadataSection) {}
func (NopVisitor[S]) ParameterMetadataSection(S, VisitReason, ParameterMetadataSection) {}
func (NopVisitor[S]) MetadataObjectItem(S, VisitReason, MetadataObjectItem) {}
func (NopVisitor[S]) MetadataObject(S, VisitReason, MetadataObject) {}
func (NopVisitor[S]) MetadataArray(S, VisitReason, MetadataArray) {}
func (NopVisitor[S]) BoundDecl(S, VisitReason, BoundDecl) {}
func (NopVisitor[S]) UnboundDecl(S, VisitReason, UnboundDecl) {}
func (NopVisitor[S]) Expr(S, VisitReason, Expr) {}
func (NopVisitor[S]) Placeholder(S, VisitReason, Placeholder) {}
func (NopVisitor[S]) StringText(S, StringText) {}
