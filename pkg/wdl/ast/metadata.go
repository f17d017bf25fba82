package ast

import (
	"iter"

	"wdlkit/wdl/pkg/wdl/syntax"
)

// MetadataSection is a `meta` section.
type MetadataSection struct{ nodeBase }

func (MetadataSection) isTaskItem()     {}
func (MetadataSection) isWorkflowItem() {}

// CanCastMetadataSection reports whether kind is a meta section.
func CanCastMetadataSection(kind syntax.Kind) bool { return kind == syntax.MetadataSectionNode }

// CastMetadataSection casts a node to a MetadataSection.
func CastMetadataSection(n syntax.Node) (MetadataSection, bool) {
	if !CanCastMetadataSection(n.Kind()) {
		return MetadataSection{}, false
	}
	return MetadataSection{nodeBase{n}}, true
}

// Parent returns the task, workflow or struct owning the section.
func (s MetadataSection) Parent() SectionParent {
	return sectionParent(s.node, "metadata section")
}

// Items returns the items of the section.
func (s MetadataSection) Items() iter.Seq[MetadataObjectItem] {
	return children(s.node, CastMetadataObjectItem)
}

// DuplicateKeys returns the items whose name repeats an earlier item's name.
func (s MetadataSection) DuplicateKeys() []MetadataObjectItem {
	return duplicateKeys(s.Items())
}

// ParameterMetadataSection is a `parameter_meta` section.
type ParameterMetadataSection struct{ nodeBase }

func (ParameterMetadataSection) isTaskItem()     {}
func (ParameterMetadataSection) isWorkflowItem() {}

// CanCastParameterMetadataSection reports whether kind is a parameter_meta section.
func CanCastParameterMetadataSection(kind syntax.Kind) bool {
	return kind == syntax.ParameterMetadataSectionNode
}

// CastParameterMetadataSection casts a node to a ParameterMetadataSection.
func CastParameterMetadataSection(n syntax.Node) (ParameterMetadataSection, bool) {
	if !CanCastParameterMetadataSection(n.Kind()) {
		return ParameterMetadataSection{}, false
	}
	return ParameterMetadataSection{nodeBase{n}}, true
}

// Parent returns the task, workflow or struct owning the section.
func (s ParameterMetadataSection) Parent() SectionParent {
	return sectionParent(s.node, "parameter metadata section")
}

// Items returns the items of the section.
func (s ParameterMetadataSection) Items() iter.Seq[MetadataObjectItem] {
	return children(s.node, CastMetadataObjectItem)
}

// DuplicateKeys returns the items whose name repeats an earlier item's name.
func (s ParameterMetadataSection) DuplicateKeys() []MetadataObjectItem {
	return duplicateKeys(s.Items())
}

// MetadataObjectItem is a `name: value` pair in a metadata section or object.
type MetadataObjectItem struct{ nodeBase }

// CanCastMetadataObjectItem reports whether kind is a metadata item.
func CanCastMetadataObjectItem(kind syntax.Kind) bool { return kind == syntax.MetadataObjectItemNode }

// CastMetadataObjectItem casts a node to a MetadataObjectItem.
func CastMetadataObjectItem(n syntax.Node) (MetadataObjectItem, bool) {
	if !CanCastMetadataObjectItem(n.Kind()) {
		return MetadataObjectItem{}, false
	}
	return MetadataObjectItem{nodeBase{n}}, true
}

// Name returns the key of the item.
func (i MetadataObjectItem) Name() Ident { return requireName(i.node, "metadata item") }

// Value returns the value of the item.
func (i MetadataObjectItem) Value() MetadataValue {
	return requireChild(i.node, CastMetadataValue, "metadata item", "value")
}

// MetadataValue is a metadata value: LiteralBoolean, LiteralInteger,
// LiteralFloat, LiteralString, LiteralNull, MetadataObject or MetadataArray.
type MetadataValue interface {
	Node
	isMetadataValue()
}

// CanCastMetadataValue reports whether kind can be a metadata value.
func CanCastMetadataValue(kind syntax.Kind) bool {
	switch kind {
	case syntax.LiteralBooleanNode,
		syntax.LiteralIntegerNode,
		syntax.LiteralFloatNode,
		syntax.LiteralStringNode,
		syntax.LiteralNullNode,
		syntax.MetadataObjectNode,
		syntax.MetadataArrayNode:
		return true
	}
	return false
}

// CastMetadataValue casts a node to a MetadataValue.
func CastMetadataValue(n syntax.Node) (MetadataValue, bool) {
	switch n.Kind() {
	case syntax.LiteralBooleanNode:
		return LiteralBoolean{nodeBase{n}}, true
	case syntax.LiteralIntegerNode:
		return LiteralInteger{nodeBase{n}}, true
	case syntax.LiteralFloatNode:
		return LiteralFloat{nodeBase{n}}, true
	case syntax.LiteralStringNode:
		return LiteralString{nodeBase{n}}, true
	case syntax.LiteralNullNode:
		return LiteralNull{nodeBase{n}}, true
	case syntax.MetadataObjectNode:
		return MetadataObject{nodeBase{n}}, true
	case syntax.MetadataArrayNode:
		return MetadataArray{nodeBase{n}}, true
	}
	return nil, false
}

// LiteralNull is the metadata `null` value.
type LiteralNull struct{ nodeBase }

func (LiteralNull) isMetadataValue() {}

// CanCastLiteralNull reports whether kind is a null literal.
func CanCastLiteralNull(kind syntax.Kind) bool { return kind == syntax.LiteralNullNode }

// CastLiteralNull casts a node to a LiteralNull.
func CastLiteralNull(n syntax.Node) (LiteralNull, bool) {
	if !CanCastLiteralNull(n.Kind()) {
		return LiteralNull{}, false
	}
	return LiteralNull{nodeBase{n}}, true
}

// MetadataObject is a metadata object, `{ key: value, ... }`.
type MetadataObject struct{ nodeBase }

func (MetadataObject) isMetadataValue() {}

// CanCastMetadataObject reports whether kind is a metadata object.
func CanCastMetadataObject(kind syntax.Kind) bool { return kind == syntax.MetadataObjectNode }

// CastMetadataObject casts a node to a MetadataObject.
func CastMetadataObject(n syntax.Node) (MetadataObject, bool) {
	if !CanCastMetadataObject(n.Kind()) {
		return MetadataObject{}, false
	}
	return MetadataObject{nodeBase{n}}, true
}

// Items returns the items of the object in source order. Keys may repeat.
func (o MetadataObject) Items() iter.Seq[MetadataObjectItem] {
	return children(o.node, CastMetadataObjectItem)
}

// DuplicateKeys returns the items whose name repeats an earlier item's name.
func (o MetadataObject) DuplicateKeys() []MetadataObjectItem {
	return duplicateKeys(o.Items())
}

// MetadataArray is a metadata array, `[value, ...]`.
type MetadataArray struct{ nodeBase }

func (MetadataArray) isMetadataValue() {}

// CanCastMetadataArray reports whether kind is a metadata array.
func CanCastMetadataArray(kind syntax.Kind) bool { return kind == syntax.MetadataArrayNode }

// CastMetadataArray casts a node to a MetadataArray.
func CastMetadataArray(n syntax.Node) (MetadataArray, bool) {
	if !CanCastMetadataArray(n.Kind()) {
		return MetadataArray{}, false
	}
	return MetadataArray{nodeBase{n}}, true
}

// Elements returns the elements of the array in source order.
func (a MetadataArray) Elements() iter.Seq[MetadataValue] {
	return children(a.node, CastMetadataValue)
}

func duplicateKeys(items iter.Seq[MetadataObjectItem]) []MetadataObjectItem {
	seen := make(map[string]bool)
	var dups []MetadataObjectItem
	for item := range items {
		name := item.Name().Text()
		if seen[name] {
			dups = append(dups, item)
			continue
		}
		seen[name] = true
	}
	return dups
}
