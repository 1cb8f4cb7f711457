package tokenizer

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func collectTypes(t *testing.T, src string, options ...TokenizerOptions) []TokenType {
	t.Helper()

	tokens, err := NewTokenizer(src, options...).AllTokens()
	assert.NoError(t, err)

	types := make([]TokenType, 0, len(tokens))
	for _, token := range tokens {
		types = append(types, token.Type)
	}

	return types
}

func TestTokenIterator(t *testing.T) {
	types := collectTypes(t, "let x = a.b(1)")

	assert.Equal(t, []TokenType{
		LET, WHITESPACE, IDENTIFIER, WHITESPACE, ASSIGN, WHITESPACE,
		IDENTIFIER, DOT, IDENTIFIER, OPENED_PARENS, INT, CLOSED_PARENS, EOF,
	}, types)
}

func TestTokenIteratorWithOptions(t *testing.T) {
	src := "a + b // trailing\n/* lead */ c"
	types := collectTypes(t, src, TokenizerOptions{SkipWhitespace: true, SkipComments: true})

	assert.Equal(t, []TokenType{IDENTIFIER, PLUS, IDENTIFIER, IDENTIFIER, EOF}, types)
}

func TestIteratorEarlyTermination(t *testing.T) {
	count := 0

	for token, err := range NewTokenizer("a b c d e").Tokens() {
		assert.NoError(t, err)

		count++

		if token.Type == IDENTIFIER && token.Value == "b" {
			break
		}
	}

	assert.Equal(t, 3, count)
}

func TestOperators(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected TokenType
	}{
		{"plus", "+", PLUS},
		{"minus", "-", MINUS},
		{"multiply", "*", MULTIPLY},
		{"divide", "/", DIVIDE},
		{"assign", "=", ASSIGN},
		{"equal", "==", EQUAL},
		{"not equal", "!=", NOT_EQUAL},
		{"less", "<", LESS_THAN},
		{"less equal", "<=", LESS_EQUAL},
		{"greater", ">", GREATER_THAN},
		{"greater equal", ">=", GREATER_EQUAL},
		{"plus assign", "+=", PLUS_ASSIGN},
		{"minus assign", "-=", MINUS_ASSIGN},
		{"multiply assign", "*=", MULTIPLY_ASSIGN},
		{"divide assign", "/=", DIVIDE_ASSIGN},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := NewTokenizer(tt.input).AllTokens()
			assert.NoError(t, err)
			assert.Equal(t, 2, len(tokens))
			assert.Equal(t, tt.expected, tokens[0].Type)
			assert.Equal(t, tt.input, tokens[0].Value)
		})
	}
}

func TestKeywordsAndLiterals(t *testing.T) {
	types := collectTypes(t, `let and or not in true false none lettuce 1 1.5 2e3 3.x "a\"b"`,
		TokenizerOptions{SkipWhitespace: true})

	assert.Equal(t, []TokenType{
		LET, AND, OR, NOT, IN, TRUE, FALSE, NONE, IDENTIFIER,
		INT, FLOAT, FLOAT, INT, DOT, IDENTIFIER, STRING, EOF,
	}, types)
}

func TestMarkupAndEmbeds(t *testing.T) {
	tokens, err := NewTokenizer("[Hello #user.name! and #f(x)[y].]").AllTokens()
	assert.NoError(t, err)

	type pair struct {
		Type  TokenType
		Value string
	}

	got := make([]pair, 0, len(tokens))
	for _, token := range tokens {
		got = append(got, pair{token.Type, token.Value})
	}

	assert.Equal(t, []pair{
		{OPENED_BRACKET, "["},
		{MARKUP_TEXT, "Hello "},
		{HASH, "#"},
		{IDENTIFIER, "user"},
		{DOT, "."},
		{IDENTIFIER, "name"},
		{MARKUP_TEXT, "! and "},
		{HASH, "#"},
		{IDENTIFIER, "f"},
		{OPENED_PARENS, "("},
		{IDENTIFIER, "x"},
		{CLOSED_PARENS, ")"},
		{OPENED_BRACKET, "["},
		{MARKUP_TEXT, "y"},
		{CLOSED_BRACKET, "]"},
		{MARKUP_TEXT, "."},
		{CLOSED_BRACKET, "]"},
		{EOF, ""},
	}, got)
}

func TestMarkupKeepsPlainHash(t *testing.T) {
	tokens, err := NewTokenizer("[a # b \\] c]").AllTokens()
	assert.NoError(t, err)
	assert.Equal(t, 4, len(tokens))
	assert.Equal(t, MARKUP_TEXT, tokens[1].Type)
	assert.Equal(t, "a # b \\] c", tokens[1].Value)
}

func TestPositions(t *testing.T) {
	tokens, err := NewTokenizer("a\n  .bé\n.c", TokenizerOptions{SkipWhitespace: true}).AllTokens()
	assert.NoError(t, err)

	assert.Equal(t, Position{Line: 1, Column: 1, Offset: 0}, tokens[0].Position)
	assert.Equal(t, Position{Line: 2, Column: 3, Offset: 4}, tokens[1].Position)
	assert.Equal(t, "bé", tokens[2].Value)
	assert.Equal(t, Position{Line: 3, Column: 1, Offset: 9}, tokens[3].Position)
	assert.Equal(t, "3:1", tokens[3].Position.String())
}

func TestTokenizerErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		err   error
	}{
		{"unterminated string", `"abc`, ErrUnterminatedString},
		{"unterminated comment", "/* abc", ErrUnterminatedComment},
		{"mismatched closer", "(a]", ErrUnbalancedBracket},
		{"missing closer", "[abc", ErrUnbalancedBracket},
		{"stray closer", "a)", ErrUnbalancedBracket},
		{"unexpected character", "a ? b", ErrUnexpectedCharacter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTokenizer(tt.input).AllTokens()
			assert.IsError(t, err, tt.err)
		})
	}
}
