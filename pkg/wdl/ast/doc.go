// Package ast provides a typed, read-only view over a WDL syntax tree and a
// traversal engine for analyses such as lint rules.
//
// The view is built on demand. Each grammar concept X has a wrapper type X
// holding one syntax node (or token), a pure predicate CanCastX over kinds,
// and a constructor CastX that succeeds exactly when CanCastX holds. Nothing
// is materialized eagerly and wrappers are cheap to copy.
//
// # Variants
//
// Concepts with several syntactic alternatives are sealed interfaces:
// TaskItem, WorkflowItem, DocumentItem, SectionParent, Decl, Expr, Literal,
// MetadataValue, CommandPart and StringPart. Recover the concrete wrapper with
// a type switch:
//
//	for item := range task.Items() {
//	    switch item := item.(type) {
//	    case ast.CommandSection:
//	        fmt.Println("heredoc:", item.IsHeredoc())
//	    case ast.BoundDecl:
//	        fmt.Println("decl:", item.Name().Text())
//	    }
//	}
//
// # Child projections
//
// Accessors returning several children return iter.Seq values. They are lazy,
// preserve source order, skip siblings of other kinds and can be ranged over
// any number of times.
//
// # Failure channels
//
// Accessors for required children (a task's name, a declaration's type)
// assume the tree is grammar-valid. When it is not, they panic with an
// *InvariantViolation. Syntax errors are reported by the parser as
// diagnostics before the tree reaches this package; a failed cast is an
// ordinary (zero, false) result.
//
// # Traversal
//
// Visit walks a document depth-first and calls a Visitor once per concept
// with Enter before the node's children and Exit after them:
//
//	type counter struct {
//	    ast.NopVisitor[*int]
//	}
//
//	func (counter) TaskDefinition(n *int, reason ast.VisitReason, _ ast.TaskDefinition) {
//	    if reason == ast.Enter {
//	        *n++
//	    }
//	}
//
//	tasks := 0
//	ast.Visit(doc, &tasks, counter{})
//
// Events exposes the walk as an explicit event stream. Broadcast replays one
// walk to several listeners created with Bind, each with its own state.
package ast
