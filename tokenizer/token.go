package tokenizer

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	ErrUnexpectedCharacter = errors.New("unexpected character")
	ErrUnterminatedString  = errors.New("unterminated string literal")
	ErrUnterminatedComment = errors.New("unterminated block comment")
	ErrUnbalancedBracket   = errors.New("unbalanced bracket")
)

// TokenType represents the type of a token
type TokenType int

const (
	// Basic tokens
	EOF TokenType = iota
	WHITESPACE
	NEWLINE
	IDENTIFIER
	INT
	FLOAT
	STRING

	// Keywords
	LET
	AND
	OR
	NOT
	IN
	TRUE
	FALSE
	NONE

	// Punctuation
	DOT            // .
	COMMA          // ,
	COLON          // :
	SEMICOLON      // ;
	HASH           // # (markup embed marker)
	OPENED_PARENS  // (
	CLOSED_PARENS  // )
	OPENED_BRACKET // [
	CLOSED_BRACKET // ]
	OPENED_BRACE   // {
	CLOSED_BRACE   // }

	// Operators
	PLUS            // +
	MINUS           // -
	MULTIPLY        // *
	DIVIDE          // /
	ASSIGN          // =
	EQUAL           // ==
	NOT_EQUAL       // !=
	LESS_THAN       // <
	LESS_EQUAL      // <=
	GREATER_THAN    // >
	GREATER_EQUAL   // >=
	PLUS_ASSIGN     // +=
	MINUS_ASSIGN    // -=
	MULTIPLY_ASSIGN // *=
	DIVIDE_ASSIGN   // /=

	// Comments
	LINE_COMMENT  // // line comment
	BLOCK_COMMENT // /* block comment */

	// Markup
	MARKUP_TEXT // text inside a content block
)

var tokenTypeNames = map[TokenType]string{
	EOF:             "EOF",
	WHITESPACE:      "WHITESPACE",
	NEWLINE:         "NEWLINE",
	IDENTIFIER:      "IDENTIFIER",
	INT:             "INT",
	FLOAT:           "FLOAT",
	STRING:          "STRING",
	LET:             "LET",
	AND:             "AND",
	OR:              "OR",
	NOT:             "NOT",
	IN:              "IN",
	TRUE:            "TRUE",
	FALSE:           "FALSE",
	NONE:            "NONE",
	DOT:             "DOT",
	COMMA:           "COMMA",
	COLON:           "COLON",
	SEMICOLON:       "SEMICOLON",
	HASH:            "HASH",
	OPENED_PARENS:   "OPENED_PARENS",
	CLOSED_PARENS:   "CLOSED_PARENS",
	OPENED_BRACKET:  "OPENED_BRACKET",
	CLOSED_BRACKET:  "CLOSED_BRACKET",
	OPENED_BRACE:    "OPENED_BRACE",
	CLOSED_BRACE:    "CLOSED_BRACE",
	PLUS:            "PLUS",
	MINUS:           "MINUS",
	MULTIPLY:        "MULTIPLY",
	DIVIDE:          "DIVIDE",
	ASSIGN:          "ASSIGN",
	EQUAL:           "EQUAL",
	NOT_EQUAL:       "NOT_EQUAL",
	LESS_THAN:       "LESS_THAN",
	LESS_EQUAL:      "LESS_EQUAL",
	GREATER_THAN:    "GREATER_THAN",
	GREATER_EQUAL:   "GREATER_EQUAL",
	PLUS_ASSIGN:     "PLUS_ASSIGN",
	MINUS_ASSIGN:    "MINUS_ASSIGN",
	MULTIPLY_ASSIGN: "MULTIPLY_ASSIGN",
	DIVIDE_ASSIGN:   "DIVIDE_ASSIGN",
	LINE_COMMENT:    "LINE_COMMENT",
	BLOCK_COMMENT:   "BLOCK_COMMENT",
	MARKUP_TEXT:     "MARKUP_TEXT",
}

// String returns the string representation of TokenType
func (t TokenType) String() string {
	if name, ok := tokenTypeNames[t]; ok {
		return name
	}

	return "UNKNOWN"
}

// IsComment reports whether the token type is a line or block comment
func (t TokenType) IsComment() bool {
	return t == LINE_COMMENT || t == BLOCK_COMMENT
}

// IsTrivia reports whether the token type carries no syntax on its own
func (t TokenType) IsTrivia() bool {
	return t == WHITESPACE || t == NEWLINE || t.IsComment()
}

// Position represents a position in the source code
type Position struct {
	Line   int
	Column int
	Offset int
}

// String returns "line:column"
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token represents a token
type Token struct {
	Type     TokenType
	Value    string
	Position Position
}

// String returns the string representation of Token
func (t Token) String() string {
	return t.Type.String() + ": " + t.Value
}
