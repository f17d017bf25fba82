package ast

import (
	"iter"
	"slices"

	"wdlkit/wdl/pkg/wdl/syntax"
)

// containerKeys are the item names that select a container image.
var containerKeys = []string{"container", "docker"}

// RequirementsSection is a `requirements` section (WDL 1.2).
type RequirementsSection struct{ nodeBase }

func (RequirementsSection) isTaskItem() {}

// CanCastRequirementsSection reports whether kind is a requirements section.
func CanCastRequirementsSection(kind syntax.Kind) bool { return kind == syntax.RequirementsSectionNode }

// CastRequirementsSection casts a node to a RequirementsSection.
func CastRequirementsSection(n syntax.Node) (RequirementsSection, bool) {
	if !CanCastRequirementsSection(n.Kind()) {
		return RequirementsSection{}, false
	}
	return RequirementsSection{nodeBase{n}}, true
}

// Parent returns the task owning the section.
func (s RequirementsSection) Parent() TaskDefinition {
	return parentTask(s.node, "requirements section")
}

// Items returns the items of the section.
func (s RequirementsSection) Items() iter.Seq[RequirementsItem] {
	return children(s.node, CastRequirementsItem)
}

// Container returns the `container` (or legacy `docker`) item, if present.
func (s RequirementsSection) Container() (RequirementsItem, bool) {
	for item := range s.Items() {
		if slices.Contains(containerKeys, item.Name().Text()) {
			return item, true
		}
	}
	return RequirementsItem{}, false
}

// RequirementsItem is a `name: expr` item in a requirements section.
type RequirementsItem struct{ nodeBase }

// CanCastRequirementsItem reports whether kind is a requirements item.
func CanCastRequirementsItem(kind syntax.Kind) bool { return kind == syntax.RequirementsItemNode }

// CastRequirementsItem casts a node to a RequirementsItem.
func CastRequirementsItem(n syntax.Node) (RequirementsItem, bool) {
	if !CanCastRequirementsItem(n.Kind()) {
		return RequirementsItem{}, false
	}
	return RequirementsItem{nodeBase{n}}, true
}

// Name returns the requirement name.
func (i RequirementsItem) Name() Ident { return requireName(i.node, "requirements item") }

// Expr returns the requirement value.
func (i RequirementsItem) Expr() Expr {
	return requireChild(i.node, CastExpr, "requirements item", "expression")
}

// HintsSection is a `hints` section.
type HintsSection struct{ nodeBase }

func (HintsSection) isTaskItem()     {}
func (HintsSection) isWorkflowItem() {}

// CanCastHintsSection reports whether kind is a hints section.
func CanCastHintsSection(kind syntax.Kind) bool { return kind == syntax.HintsSectionNode }

// CastHintsSection casts a node to a HintsSection.
func CastHintsSection(n syntax.Node) (HintsSection, bool) {
	if !CanCastHintsSection(n.Kind()) {
		return HintsSection{}, false
	}
	return HintsSection{nodeBase{n}}, true
}

// Parent returns the task or workflow owning the section.
func (s HintsSection) Parent() SectionParent {
	return sectionParent(s.node, "hints section")
}

// Items returns the items of the section.
func (s HintsSection) Items() iter.Seq[HintsItem] {
	return children(s.node, CastHintsItem)
}

// HintsItem is a `name: expr` item in a hints section.
type HintsItem struct{ nodeBase }

// CanCastHintsItem reports whether kind is a hints item.
func CanCastHintsItem(kind syntax.Kind) bool { return kind == syntax.HintsItemNode }

// CastHintsItem casts a node to a HintsItem.
func CastHintsItem(n syntax.Node) (HintsItem, bool) {
	if !CanCastHintsItem(n.Kind()) {
		return HintsItem{}, false
	}
	return HintsItem{nodeBase{n}}, true
}

// Name returns the hint name.
func (i HintsItem) Name() Ident { return requireName(i.node, "hints item") }

// Expr returns the hint value.
func (i HintsItem) Expr() Expr {
	return requireChild(i.node, CastExpr, "hints item", "expression")
}

// RuntimeSection is a `runtime` section.
type RuntimeSection struct{ nodeBase }

func (RuntimeSection) isTaskItem() {}

// CanCastRuntimeSection reports whether kind is a runtime section.
func CanCastRuntimeSection(kind syntax.Kind) bool { return kind == syntax.RuntimeSectionNode }

// CastRuntimeSection casts a node to a RuntimeSection.
func CastRuntimeSection(n syntax.Node) (RuntimeSection, bool) {
	if !CanCastRuntimeSection(n.Kind()) {
		return RuntimeSection{}, false
	}
	return RuntimeSection{nodeBase{n}}, true
}

// Parent returns the task owning the section.
func (s RuntimeSection) Parent() TaskDefinition {
	return parentTask(s.node, "runtime section")
}

// Items returns the items of the section.
func (s RuntimeSection) Items() iter.Seq[RuntimeItem] {
	return children(s.node, CastRuntimeItem)
}

// Container returns the `container` (or legacy `docker`) item, if present.
func (s RuntimeSection) Container() (RuntimeItem, bool) {
	for item := range s.Items() {
		if slices.Contains(containerKeys, item.Name().Text()) {
			return item, true
		}
	}
	return RuntimeItem{}, false
}

// RuntimeItem is a `name: expr` item in a runtime section.
type RuntimeItem struct{ nodeBase }

// CanCastRuntimeItem reports whether kind is a runtime item.
func CanCastRuntimeItem(kind syntax.Kind) bool { return kind == syntax.RuntimeItemNode }

// CastRuntimeItem casts a node to a RuntimeItem.
func CastRuntimeItem(n syntax.Node) (RuntimeItem, bool) {
	if !CanCastRuntimeItem(n.Kind()) {
		return RuntimeItem{}, false
	}
	return RuntimeItem{nodeBase{n}}, true
}

// Name returns the runtime key.
func (i RuntimeItem) Name() Ident { return requireName(i.node, "runtime item") }

// Expr returns the runtime value.
func (i RuntimeItem) Expr() Expr {
	return requireChild(i.node, CastExpr, "runtime item", "expression")
}
