package syntax

import "github.com/shibukawa/tyfmt/tokenizer"

// Kind identifies the grammar production or token a Node stands for
type Kind int

const (
	// Leaves
	Ident Kind = iota
	Int
	Float
	Str
	Bool
	None
	Let
	Dot
	Comma
	Colon
	Semicolon
	Hash
	LeftParen
	RightParen
	LeftBracket
	RightBracket
	LeftBrace
	RightBrace
	Plus
	Minus
	Star
	Slash
	Eq
	EqEq
	ExclEq
	Lt
	LtEq
	Gt
	GtEq
	PlusEq
	HyphEq
	StarEq
	SlashEq
	And
	Or
	Not
	In
	LineComment
	BlockComment
	Text

	// Inner nodes
	Code
	CodeBlock
	ContentBlock
	Markup
	Embed
	LetBinding
	FieldAccess
	FuncCall
	Args
	Named
	Binary
	Unary
	Parenthesized
	Array
	Dict
)

var kindNames = map[Kind]string{
	Ident:         "Ident",
	Int:           "Int",
	Float:         "Float",
	Str:           "Str",
	Bool:          "Bool",
	None:          "None",
	Let:           "Let",
	Dot:           "Dot",
	Comma:         "Comma",
	Colon:         "Colon",
	Semicolon:     "Semicolon",
	Hash:          "Hash",
	LeftParen:     "LeftParen",
	RightParen:    "RightParen",
	LeftBracket:   "LeftBracket",
	RightBracket:  "RightBracket",
	LeftBrace:     "LeftBrace",
	RightBrace:    "RightBrace",
	Plus:          "Plus",
	Minus:         "Minus",
	Star:          "Star",
	Slash:         "Slash",
	Eq:            "Eq",
	EqEq:          "EqEq",
	ExclEq:        "ExclEq",
	Lt:            "Lt",
	LtEq:          "LtEq",
	Gt:            "Gt",
	GtEq:          "GtEq",
	PlusEq:        "PlusEq",
	HyphEq:        "HyphEq",
	StarEq:        "StarEq",
	SlashEq:       "SlashEq",
	And:           "And",
	Or:            "Or",
	Not:           "Not",
	In:            "In",
	LineComment:   "LineComment",
	BlockComment:  "BlockComment",
	Text:          "Text",
	Code:          "Code",
	CodeBlock:     "CodeBlock",
	ContentBlock:  "ContentBlock",
	Markup:        "Markup",
	Embed:         "Embed",
	LetBinding:    "LetBinding",
	FieldAccess:   "FieldAccess",
	FuncCall:      "FuncCall",
	Args:          "Args",
	Named:         "Named",
	Binary:        "Binary",
	Unary:         "Unary",
	Parenthesized: "Parenthesized",
	Array:         "Array",
	Dict:          "Dict",
}

// String returns the name of the kind
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return "Unknown"
}

// IsComment reports whether the kind is a line or block comment
func (k Kind) IsComment() bool {
	return k == LineComment || k == BlockComment
}

// IsExpr reports whether a node of this kind can stand as an expression
func (k Kind) IsExpr() bool {
	switch k {
	case Ident, Int, Float, Str, Bool, None,
		FieldAccess, FuncCall, Binary, Unary, Parenthesized, Array, Dict, CodeBlock, ContentBlock:
		return true
	default:
		return false
	}
}

var tokenKinds = map[tokenizer.TokenType]Kind{
	tokenizer.IDENTIFIER:      Ident,
	tokenizer.INT:             Int,
	tokenizer.FLOAT:           Float,
	tokenizer.STRING:          Str,
	tokenizer.TRUE:            Bool,
	tokenizer.FALSE:           Bool,
	tokenizer.NONE:            None,
	tokenizer.LET:             Let,
	tokenizer.DOT:             Dot,
	tokenizer.COMMA:           Comma,
	tokenizer.COLON:           Colon,
	tokenizer.SEMICOLON:       Semicolon,
	tokenizer.HASH:            Hash,
	tokenizer.OPENED_PARENS:   LeftParen,
	tokenizer.CLOSED_PARENS:   RightParen,
	tokenizer.OPENED_BRACKET:  LeftBracket,
	tokenizer.CLOSED_BRACKET:  RightBracket,
	tokenizer.OPENED_BRACE:    LeftBrace,
	tokenizer.CLOSED_BRACE:    RightBrace,
	tokenizer.PLUS:            Plus,
	tokenizer.MINUS:           Minus,
	tokenizer.MULTIPLY:        Star,
	tokenizer.DIVIDE:          Slash,
	tokenizer.ASSIGN:          Eq,
	tokenizer.EQUAL:           EqEq,
	tokenizer.NOT_EQUAL:       ExclEq,
	tokenizer.LESS_THAN:       Lt,
	tokenizer.LESS_EQUAL:      LtEq,
	tokenizer.GREATER_THAN:    Gt,
	tokenizer.GREATER_EQUAL:   GtEq,
	tokenizer.PLUS_ASSIGN:     PlusEq,
	tokenizer.MINUS_ASSIGN:    HyphEq,
	tokenizer.MULTIPLY_ASSIGN: StarEq,
	tokenizer.DIVIDE_ASSIGN:   SlashEq,
	tokenizer.AND:             And,
	tokenizer.OR:              Or,
	tokenizer.NOT:             Not,
	tokenizer.IN:              In,
	tokenizer.LINE_COMMENT:    LineComment,
	tokenizer.BLOCK_COMMENT:   BlockComment,
	tokenizer.MARKUP_TEXT:     Text,
}

// KindOfToken maps a token type to the leaf kind it produces
func KindOfToken(tt tokenizer.TokenType) (Kind, bool) {
	k, ok := tokenKinds[tt]
	return k, ok
}
