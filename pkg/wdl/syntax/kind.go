package syntax

// Kind identifies the grammar shape of a token or node.
// Kinds are assigned when the tree is built and never change.
type Kind uint16

// Token kinds.
const (
	Unknown Kind = iota
	Whitespace
	Comment

	VersionKeyword
	TaskKeyword
	WorkflowKeyword
	StructKeyword
	InputKeyword
	OutputKeyword
	CommandKeyword
	RequirementsKeyword
	HintsKeyword
	RuntimeKeyword
	MetaKeyword
	ParameterMetaKeyword
	TrueKeyword
	FalseKeyword
	NullKeyword
	NoneKeyword
	BooleanTypeKeyword
	IntTypeKeyword
	FloatTypeKeyword
	StringTypeKeyword
	FileTypeKeyword
	DirectoryTypeKeyword
	ArrayTypeKeyword
	MapTypeKeyword
	PairTypeKeyword

	Ident
	Version
	Integer
	Float

	OpenBrace
	CloseBrace
	OpenParen
	CloseParen
	OpenBracket
	CloseBracket
	Colon
	Comma
	Dot
	Assignment
	QuestionMark
	Plus
	Minus
	Asterisk
	Slash
	Percent
	Exclamation
	Equal
	NotEqual
	Less
	LessEqual
	Greater
	GreaterEqual
	LogicalAnd
	LogicalOr

	DoubleQuote
	SingleQuote
	OpenHeredoc
	CloseHeredoc
	PlaceholderOpen
	LiteralStringText
	LiteralCommandText

	lastToken
)

// Node kinds.
const (
	RootNode Kind = iota + lastToken + 1
	VersionStatementNode
	TaskDefinitionNode
	WorkflowDefinitionNode
	StructDefinitionNode

	InputSectionNode
	OutputSectionNode
	CommandSectionNode
	RequirementsSectionNode
	RequirementsItemNode
	HintsSectionNode
	HintsItemNode
	RuntimeSectionNode
	RuntimeItemNode
	MetadataSectionNode
	ParameterMetadataSectionNode
	MetadataObjectItemNode
	MetadataObjectNode
	MetadataArrayNode

	BoundDeclNode
	UnboundDeclNode

	PrimitiveTypeNode
	ArrayTypeNode
	MapTypeNode
	PairTypeNode
	TypeRefNode

	LiteralBooleanNode
	LiteralIntegerNode
	LiteralFloatNode
	LiteralStringNode
	LiteralNullNode
	LiteralNoneNode
	LiteralArrayNode
	PlaceholderNode

	NameRefNode
	CallExprNode
	ParenthesizedExprNode
	IndexExprNode
	AccessExprNode
	LogicalNotExprNode
	NegationExprNode
	LogicalOrExprNode
	LogicalAndExprNode
	EqualityExprNode
	InequalityExprNode
	LessExprNode
	LessEqualExprNode
	GreaterExprNode
	GreaterEqualExprNode
	AdditionExprNode
	SubtractionExprNode
	MultiplicationExprNode
	DivisionExprNode
	ModuloExprNode

	ErrorNode

	lastNode
)

var kindNames = map[Kind]string{
	Unknown:              "Unknown",
	Whitespace:           "Whitespace",
	Comment:              "Comment",
	VersionKeyword:       "VersionKeyword",
	TaskKeyword:          "TaskKeyword",
	WorkflowKeyword:      "WorkflowKeyword",
	StructKeyword:        "StructKeyword",
	InputKeyword:         "InputKeyword",
	OutputKeyword:        "OutputKeyword",
	CommandKeyword:       "CommandKeyword",
	RequirementsKeyword:  "RequirementsKeyword",
	HintsKeyword:         "HintsKeyword",
	RuntimeKeyword:       "RuntimeKeyword",
	MetaKeyword:          "MetaKeyword",
	ParameterMetaKeyword: "ParameterMetaKeyword",
	TrueKeyword:          "TrueKeyword",
	FalseKeyword:         "FalseKeyword",
	NullKeyword:          "NullKeyword",
	NoneKeyword:          "NoneKeyword",
	BooleanTypeKeyword:   "BooleanTypeKeyword",
	IntTypeKeyword:       "IntTypeKeyword",
	FloatTypeKeyword:     "FloatTypeKeyword",
	StringTypeKeyword:    "StringTypeKeyword",
	FileTypeKeyword:      "FileTypeKeyword",
	DirectoryTypeKeyword: "DirectoryTypeKeyword",
	ArrayTypeKeyword:     "ArrayTypeKeyword",
	MapTypeKeyword:       "MapTypeKeyword",
	PairTypeKeyword:      "PairTypeKeyword",
	Ident:                "Ident",
	Version:              "Version",
	Integer:              "Integer",
	Float:                "Float",
	OpenBrace:            "OpenBrace",
	CloseBrace:           "CloseBrace",
	OpenParen:            "OpenParen",
	CloseParen:           "CloseParen",
	OpenBracket:          "OpenBracket",
	CloseBracket:         "CloseBracket",
	Colon:                "Colon",
	Comma:                "Comma",
	Dot:                  "Dot",
	Assignment:           "Assignment",
	QuestionMark:         "QuestionMark",
	Plus:                 "Plus",
	Minus:                "Minus",
	Asterisk:             "Asterisk",
	Slash:                "Slash",
	Percent:              "Percent",
	Exclamation:          "Exclamation",
	Equal:                "Equal",
	NotEqual:             "NotEqual",
	Less:                 "Less",
	LessEqual:            "LessEqual",
	Greater:              "Greater",
	GreaterEqual:         "GreaterEqual",
	LogicalAnd:           "LogicalAnd",
	LogicalOr:            "LogicalOr",
	DoubleQuote:          "DoubleQuote",
	SingleQuote:          "SingleQuote",
	OpenHeredoc:          "OpenHeredoc",
	CloseHeredoc:         "CloseHeredoc",
	PlaceholderOpen:      "PlaceholderOpen",
	LiteralStringText:    "LiteralStringText",
	LiteralCommandText:   "LiteralCommandText",

	RootNode:                     "RootNode",
	VersionStatementNode:         "VersionStatementNode",
	TaskDefinitionNode:           "TaskDefinitionNode",
	WorkflowDefinitionNode:       "WorkflowDefinitionNode",
	StructDefinitionNode:         "StructDefinitionNode",
	InputSectionNode:             "InputSectionNode",
	OutputSectionNode:            "OutputSectionNode",
	CommandSectionNode:           "CommandSectionNode",
	RequirementsSectionNode:      "RequirementsSectionNode",
	RequirementsItemNode:         "RequirementsItemNode",
	HintsSectionNode:             "HintsSectionNode",
	HintsItemNode:                "HintsItemNode",
	RuntimeSectionNode:           "RuntimeSectionNode",
	RuntimeItemNode:              "RuntimeItemNode",
	MetadataSectionNode:          "MetadataSectionNode",
	ParameterMetadataSectionNode: "ParameterMetadataSectionNode",
	MetadataObjectItemNode:       "MetadataObjectItemNode",
	MetadataObjectNode:           "MetadataObjectNode",
	MetadataArrayNode:            "MetadataArrayNode",
	BoundDeclNode:                "BoundDeclNode",
	UnboundDeclNode:              "UnboundDeclNode",
	PrimitiveTypeNode:            "PrimitiveTypeNode",
	ArrayTypeNode:                "ArrayTypeNode",
	MapTypeNode:                  "MapTypeNode",
	PairTypeNode:                 "PairTypeNode",
	TypeRefNode:                  "TypeRefNode",
	LiteralBooleanNode:           "LiteralBooleanNode",
	LiteralIntegerNode:           "LiteralIntegerNode",
	LiteralFloatNode:             "LiteralFloatNode",
	LiteralStringNode:            "LiteralStringNode",
	LiteralNullNode:              "LiteralNullNode",
	LiteralNoneNode:              "LiteralNoneNode",
	LiteralArrayNode:             "LiteralArrayNode",
	PlaceholderNode:              "PlaceholderNode",
	NameRefNode:                  "NameRefNode",
	CallExprNode:                 "CallExprNode",
	ParenthesizedExprNode:        "ParenthesizedExprNode",
	IndexExprNode:                "IndexExprNode",
	AccessExprNode:               "AccessExprNode",
	LogicalNotExprNode:           "LogicalNotExprNode",
	NegationExprNode:             "NegationExprNode",
	LogicalOrExprNode:            "LogicalOrExprNode",
	LogicalAndExprNode:           "LogicalAndExprNode",
	EqualityExprNode:             "EqualityExprNode",
	InequalityExprNode:           "InequalityExprNode",
	LessExprNode:                 "LessExprNode",
	LessEqualExprNode:            "LessEqualExprNode",
	GreaterExprNode:              "GreaterExprNode",
	GreaterEqualExprNode:         "GreaterEqualExprNode",
	AdditionExprNode:             "AdditionExprNode",
	SubtractionExprNode:          "SubtractionExprNode",
	MultiplicationExprNode:       "MultiplicationExprNode",
	DivisionExprNode:             "DivisionExprNode",
	ModuloExprNode:               "ModuloExprNode",
	ErrorNode:                    "ErrorNode",
}

// String returns the name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Kind(?)"
}

// IsToken returns true if the kind describes a leaf token.
func (k Kind) IsToken() bool {
	return k < lastToken
}

// IsNode returns true if the kind describes an interior node.
func (k Kind) IsNode() bool {
	return k > lastToken && k < lastNode
}

// IsTrivia returns true for tokens that carry no grammar meaning.
func (k Kind) IsTrivia() bool {
	return k == Whitespace || k == Comment
}

// Kinds returns every defined kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(kindNames))
	for k := Unknown; k < lastToken; k++ {
		kinds = append(kinds, k)
	}
	for k := RootNode; k < lastNode; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

var keywords = map[string]Kind{
	"version":        VersionKeyword,
	"task":           TaskKeyword,
	"workflow":       WorkflowKeyword,
	"struct":         StructKeyword,
	"input":          InputKeyword,
	"output":         OutputKeyword,
	"command":        CommandKeyword,
	"requirements":   RequirementsKeyword,
	"hints":          HintsKeyword,
	"runtime":        RuntimeKeyword,
	"meta":           MetaKeyword,
	"parameter_meta": ParameterMetaKeyword,
	"true":           TrueKeyword,
	"false":          FalseKeyword,
	"null":           NullKeyword,
	"None":           NoneKeyword,
	"Boolean":        BooleanTypeKeyword,
	"Int":            IntTypeKeyword,
	"Float":          FloatTypeKeyword,
	"String":         StringTypeKeyword,
	"File":           FileTypeKeyword,
	"Directory":      DirectoryTypeKeyword,
	"Array":          ArrayTypeKeyword,
	"Map":            MapTypeKeyword,
	"Pair":           PairTypeKeyword,
}

// LookupKeyword returns the keyword kind for word, or Ident if word is not reserved.
func LookupKeyword(word string) Kind {
	if k, ok := keywords[word]; ok {
		return k
	}
	return Ident
}

// IsKeyword returns true if the kind is a reserved word.
func (k Kind) IsKeyword() bool {
	return k >= VersionKeyword && k <= PairTypeKeyword
}
