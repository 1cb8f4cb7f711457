package tokenizer

import (
	"fmt"
	"iter"
	"unicode"
	"unicode/utf8"
)

// TokenIterator uses Go 1.23 iterator pattern
type TokenIterator iter.Seq2[Token, error]

// Tokenizer is a typ-code tokenizer that returns an iterator
type Tokenizer struct {
	input   string
	options TokenizerOptions
}

// TokenizerOptions are options for the tokenizer
type TokenizerOptions struct {
	SkipWhitespace bool // drops WHITESPACE and NEWLINE tokens
	SkipComments   bool
}

// NewTokenizer creates a new Tokenizer
func NewTokenizer(input string, options ...TokenizerOptions) *Tokenizer {
	opts := TokenizerOptions{}
	if len(options) > 0 {
		opts = options[0]
	}

	return &Tokenizer{
		input:   input,
		options: opts,
	}
}

// Tokens returns an iterator of tokens.
// The iteration stops after the first error because the lexer mode is unknown past it.
func (t *Tokenizer) Tokens() TokenIterator {
	return func(yield func(Token, error) bool) {
		lx := newLexer(t.input)

		for {
			token, err := lx.nextToken()
			if err != nil {
				yield(Token{}, err)
				return
			}

			if token.Type == EOF {
				yield(token, nil)
				return
			}

			// Filtering based on options
			if t.options.SkipWhitespace && (token.Type == WHITESPACE || token.Type == NEWLINE) {
				continue
			}

			if t.options.SkipComments && token.Type.IsComment() {
				continue
			}

			if !yield(token, nil) {
				return
			}
		}
	}
}

// AllTokens gets all tokens as a slice, EOF included
func (t *Tokenizer) AllTokens() ([]Token, error) {
	tokens := make([]Token, 0, 64)

	for token, err := range t.Tokens() {
		if err != nil {
			return tokens, err
		}

		tokens = append(tokens, token)
	}

	return tokens, nil
}

type mode int

const (
	codeMode mode = iota
	markupMode
	embedMode // `#expr` inside markup
)

type frame struct {
	mode   mode
	closer rune
	atom   bool // embedMode: the leading identifier or parenthesis was read
}

// Internal lexer implementation
type lexer struct {
	input  string
	offset int
	line   int
	column int
	stack  []frame
}

func newLexer(input string) *lexer {
	return &lexer{
		input:  input,
		line:   1,
		column: 1,
		stack:  []frame{{mode: codeMode}},
	}
}

// nextToken gets the next token according to the current mode
func (l *lexer) nextToken() (Token, error) {
	if l.eof() {
		for len(l.stack) > 1 && l.top().mode == embedMode {
			l.pop()
		}

		if len(l.stack) > 1 {
			return Token{}, fmt.Errorf("%w: missing '%c' at %s", ErrUnbalancedBracket, l.top().closer, l.position())
		}

		return Token{Type: EOF, Position: l.position()}, nil
	}

	switch l.top().mode {
	case markupMode:
		return l.markupToken()
	case embedMode:
		return l.embedToken()
	default:
		return l.codeToken()
	}
}

func (l *lexer) codeToken() (Token, error) {
	start := l.position()
	r := l.peek()

	switch {
	case r == '\n':
		l.advance()
		return l.token(NEWLINE, start), nil
	case r == ' ' || r == '\t' || r == '\r':
		for c := l.peek(); c == ' ' || c == '\t' || c == '\r'; c = l.peek() {
			l.advance()
		}

		return l.token(WHITESPACE, start), nil
	case r == '/' && l.peekAt(1) == '/':
		return l.readLineComment(), nil
	case r == '/' && l.peekAt(1) == '*':
		return l.readBlockComment()
	case r == '"':
		return l.readString()
	case isIdentStart(r):
		return l.readWord(), nil
	case isDigit(r):
		return l.readNumber(), nil
	}

	switch r {
	case '(':
		return l.openBracket(OPENED_PARENS, frame{mode: codeMode, closer: ')'}), nil
	case '{':
		return l.openBracket(OPENED_BRACE, frame{mode: codeMode, closer: '}'}), nil
	case '[':
		return l.openBracket(OPENED_BRACKET, frame{mode: markupMode, closer: ']'}), nil
	case ')':
		return l.closeBracket(CLOSED_PARENS)
	case '}':
		return l.closeBracket(CLOSED_BRACE)
	case ']':
		return l.closeBracket(CLOSED_BRACKET)
	case '.':
		return l.single(DOT), nil
	case ',':
		return l.single(COMMA), nil
	case ':':
		return l.single(COLON), nil
	case ';':
		return l.single(SEMICOLON), nil
	case '+':
		return l.operator(PLUS, PLUS_ASSIGN), nil
	case '-':
		return l.operator(MINUS, MINUS_ASSIGN), nil
	case '*':
		return l.operator(MULTIPLY, MULTIPLY_ASSIGN), nil
	case '/':
		return l.operator(DIVIDE, DIVIDE_ASSIGN), nil
	case '=':
		return l.operator(ASSIGN, EQUAL), nil
	case '<':
		return l.operator(LESS_THAN, LESS_EQUAL), nil
	case '>':
		return l.operator(GREATER_THAN, GREATER_EQUAL), nil
	case '!':
		if l.peekAt(1) == '=' {
			l.advance()
			l.advance()

			return l.token(NOT_EQUAL, start), nil
		}
	}

	return Token{}, fmt.Errorf("%w: '%c' at %s", ErrUnexpectedCharacter, r, start)
}

func (l *lexer) markupToken() (Token, error) {
	start := l.position()

	switch {
	case l.peek() == ']':
		return l.closeBracket(CLOSED_BRACKET)
	case l.peek() == '[':
		return l.openBracket(OPENED_BRACKET, frame{mode: markupMode, closer: ']'}), nil
	case l.atEmbed():
		l.advance()
		l.push(frame{mode: embedMode})

		return l.token(HASH, start), nil
	}

	for !l.eof() {
		r := l.peek()
		if r == '[' || r == ']' || l.atEmbed() {
			break
		}

		if r == '\\' {
			l.advance()

			if l.eof() {
				break
			}
		}

		l.advance()
	}

	return l.token(MARKUP_TEXT, start), nil
}

// embedToken lexes `#name.field(args)[content]` without spaces; anything else ends the embed
func (l *lexer) embedToken() (Token, error) {
	f := l.top()
	start := l.position()
	r := l.peek()

	if !f.atom {
		f.atom = true

		switch {
		case isIdentStart(r):
			return l.readWord(), nil
		case r == '(':
			return l.openBracket(OPENED_PARENS, frame{mode: codeMode, closer: ')'}), nil
		}

		return Token{}, fmt.Errorf("%w: '%c' after '#' at %s", ErrUnexpectedCharacter, r, start)
	}

	switch {
	case r == '.' && isIdentStart(l.peekAt(1)):
		f.atom = false
		return l.single(DOT), nil
	case r == '(':
		return l.openBracket(OPENED_PARENS, frame{mode: codeMode, closer: ')'}), nil
	case r == '[':
		return l.openBracket(OPENED_BRACKET, frame{mode: markupMode, closer: ']'}), nil
	}

	l.pop()

	return l.nextToken()
}

func (l *lexer) atEmbed() bool {
	if l.peek() != '#' {
		return false
	}

	next := l.peekAt(1)

	return isIdentStart(next) || next == '('
}

func (l *lexer) openBracket(tt TokenType, f frame) Token {
	start := l.position()
	l.advance()
	l.push(f)

	return l.token(tt, start)
}

func (l *lexer) closeBracket(tt TokenType) (Token, error) {
	start := l.position()

	r := l.advance()
	if len(l.stack) == 1 || l.top().closer != r {
		return Token{}, fmt.Errorf("%w: unexpected '%c' at %s", ErrUnbalancedBracket, r, start)
	}

	l.pop()

	return l.token(tt, start), nil
}

func (l *lexer) single(tt TokenType) Token {
	start := l.position()
	l.advance()

	return l.token(tt, start)
}

// operator reads a one-character operator, or its two-character form when followed by '='
func (l *lexer) operator(single, withEqual TokenType) Token {
	start := l.position()
	l.advance()

	if l.peek() == '=' {
		l.advance()
		return l.token(withEqual, start)
	}

	return l.token(single, start)
}

// readWord reads identifiers and keywords
func (l *lexer) readWord() Token {
	start := l.position()
	for isIdentPart(l.peek()) {
		l.advance()
	}

	tok := l.token(IDENTIFIER, start)
	tok.Type = LookupKeyword(tok.Value)

	return tok
}

// readNumber reads integers and floats (`1`, `1.5`, `2e-3`)
func (l *lexer) readNumber() Token {
	start := l.position()
	tt := INT

	for isDigit(l.peek()) {
		l.advance()
	}

	if l.peek() == '.' && isDigit(l.peekAt(1)) {
		tt = FLOAT

		l.advance()

		for isDigit(l.peek()) {
			l.advance()
		}
	}

	if e := l.peek(); e == 'e' || e == 'E' {
		sign := l.peekAt(1)
		if isDigit(sign) || ((sign == '+' || sign == '-') && isDigit(l.peekAt(2))) {
			tt = FLOAT

			l.advance()
			l.advance()

			for isDigit(l.peek()) {
				l.advance()
			}
		}
	}

	return l.token(tt, start)
}

// readString reads a double-quoted string literal with backslash escapes
func (l *lexer) readString() (Token, error) {
	start := l.position()
	l.advance() // opening quote

	for {
		if l.eof() {
			return Token{}, fmt.Errorf("%w at %s", ErrUnterminatedString, start)
		}

		r := l.advance()
		if r == '"' {
			break
		}

		if r == '\\' && !l.eof() {
			l.advance()
		}
	}

	return l.token(STRING, start), nil
}

func (l *lexer) readLineComment() Token {
	start := l.position()
	for !l.eof() && l.peek() != '\n' {
		l.advance()
	}

	return l.token(LINE_COMMENT, start)
}

func (l *lexer) readBlockComment() (Token, error) {
	start := l.position()
	l.advance()
	l.advance()

	for {
		if l.eof() {
			return Token{}, fmt.Errorf("%w at %s", ErrUnterminatedComment, start)
		}

		if l.peek() == '*' && l.peekAt(1) == '/' {
			l.advance()
			l.advance()

			break
		}

		l.advance()
	}

	return l.token(BLOCK_COMMENT, start), nil
}

func (l *lexer) token(tt TokenType, start Position) Token {
	return Token{Type: tt, Value: l.input[start.Offset:l.offset], Position: start}
}

func (l *lexer) position() Position {
	return Position{Line: l.line, Column: l.column, Offset: l.offset}
}

func (l *lexer) eof() bool {
	return l.offset >= len(l.input)
}

func (l *lexer) peek() rune {
	return l.peekAt(0)
}

// peekAt looks n runes ahead without consuming
func (l *lexer) peekAt(n int) rune {
	off := l.offset
	for i := 0; off < len(l.input); i++ {
		r, size := utf8.DecodeRuneInString(l.input[off:])
		if i == n {
			return r
		}

		off += size
	}

	return 0
}

func (l *lexer) advance() rune {
	r, size := utf8.DecodeRuneInString(l.input[l.offset:])
	l.offset += size

	if r == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}

	return r
}

func (l *lexer) top() *frame {
	return &l.stack[len(l.stack)-1]
}

func (l *lexer) push(f frame) {
	l.stack = append(l.stack, f)
}

func (l *lexer) pop() {
	l.stack = l.stack[:len(l.stack)-1]
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}
