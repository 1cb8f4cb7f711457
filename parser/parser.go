// Package parser builds the typ-code syntax tree from tokens.
package parser

import (
	"errors"
	"fmt"

	pc "github.com/shibukawa/parsercombinator"
	"github.com/shibukawa/tyfmt/syntax"
	"github.com/shibukawa/tyfmt/tokenizer"
)

// Sentinel errors
var (
	ErrInvalidSyntax = errors.New("invalid syntax")
)

// Parse parses typ-code source into a Code node
func Parse(src string) (*syntax.Node, error) {
	tokens, err := tokenizer.NewTokenizer(src).AllTokens()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSyntax, err)
	}

	return newParser(tokens).parseCode()
}

type parser struct {
	tokens   []tokenizer.Token // whitespace removed; newlines and comments kept
	pcTokens []pc.Token[tokenizer.Token]
	pctx     *pc.ParseContext[tokenizer.Token]
	pos      int
	pending  []*syntax.Node // comments read ahead and not attached yet
	newlines []bool         // whether a newline ends the current expression
}

func newParser(tokens []tokenizer.Token) *parser {
	filtered := make([]tokenizer.Token, 0, len(tokens))

	for _, token := range tokens {
		if token.Type != tokenizer.WHITESPACE {
			filtered = append(filtered, token)
		}
	}

	return &parser{
		tokens:   filtered,
		pcTokens: toParserToken(filtered),
		pctx:     pc.NewParseContext[tokenizer.Token](),
		newlines: []bool{true},
	}
}

func (p *parser) parseCode() (*syntax.Node, error) {
	children, err := p.parseStatements(nil, tokenizer.EOF)
	if err != nil {
		return nil, err
	}

	return syntax.NewInner(syntax.Code, children...), nil
}

// parseStatements reads statements separated by newlines or semicolons until closer
func (p *parser) parseStatements(children []*syntax.Node, closer tokenizer.TokenType) ([]*syntax.Node, error) {
	p.pushNewlines(true)
	defer p.popNewlines()

	for {
		p.skipTrivia()
		children = append(children, p.trivia()...)

		switch p.cur().Type {
		case tokenizer.NEWLINE, tokenizer.SEMICOLON:
			p.pos++
			continue
		case closer:
			return children, nil
		case tokenizer.EOF:
			return nil, p.errorf("expected '}'")
		}

		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}

		children = append(children, stmt)

		p.skipTrivia()
		children = append(children, p.trivia()...)

		switch p.cur().Type {
		case tokenizer.NEWLINE, tokenizer.SEMICOLON, closer:
		default:
			return nil, p.errorf("expected end of statement")
		}
	}
}

func (p *parser) parseStatement() (*syntax.Node, error) {
	if p.cur().Type == tokenizer.LET {
		return p.parseLet()
	}

	return p.parseExpr(0)
}

// parseLet parses `let name` and `let name = expr`
func (p *parser) parseLet() (*syntax.Node, error) {
	if !p.lookingAt(letHeader) {
		p.pos++
		p.skipTrivia()

		return nil, p.errorf("expected identifier after 'let'")
	}

	children := []*syntax.Node{p.leaf()}

	p.skipTrivia()
	children = append(children, p.trivia()...)
	children = append(children, p.leaf())

	p.skipTrivia()

	if p.cur().Type == tokenizer.ASSIGN {
		children = append(children, p.trivia()...)
		children = append(children, p.leaf())

		p.skipTriviaAcross()
		children = append(children, p.trivia()...)

		init, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}

		children = append(children, init)
	}

	return syntax.NewInner(syntax.LetBinding, children...), nil
}

// parseExpr climbs operator precedence; minPrec is the weakest operator accepted
func (p *parser) parseExpr(minPrec int) (*syntax.Node, error) {
	lhs, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		p.skipTrivia()

		op, ok := p.binOp()
		if !ok || op.Precedence() < minPrec {
			return lhs, nil
		}

		next := op.Precedence() + 1
		if op.Assoc() == syntax.RightAssoc {
			next = op.Precedence()
		}

		children := []*syntax.Node{lhs}
		children = append(children, p.trivia()...)

		if op == syntax.OpNotIn {
			children = append(children, p.leaf())

			p.skipTriviaAcross()
			children = append(children, p.trivia()...)
		}

		children = append(children, p.leaf())

		p.skipTriviaAcross()
		children = append(children, p.trivia()...)

		rhs, err := p.parseExpr(next)
		if err != nil {
			return nil, err
		}

		children = append(children, rhs)
		lhs = syntax.NewInner(syntax.Binary, children...)
	}
}

// binOp reports the binary operator at the current token
func (p *parser) binOp() (syntax.BinOp, bool) {
	tok := p.cur()
	if tok.Type == tokenizer.NOT {
		if p.tokens[p.nextSignificant(p.pos+1)].Type == tokenizer.IN {
			return syntax.OpNotIn, true
		}

		return 0, false
	}

	kind, ok := syntax.KindOfToken(tok.Type)
	if !ok {
		return 0, false
	}

	return syntax.BinOpFromKind(kind)
}

func (p *parser) parseUnary() (*syntax.Node, error) {
	kind, _ := syntax.KindOfToken(p.cur().Type)

	op, ok := syntax.UnOpFromKind(kind)
	if !ok {
		return p.parsePostfix()
	}

	children := []*syntax.Node{p.leaf()}

	p.skipTriviaAcross()
	children = append(children, p.trivia()...)

	operand, err := p.parseExpr(op.Precedence())
	if err != nil {
		return nil, err
	}

	children = append(children, operand)

	return syntax.NewInner(syntax.Unary, children...), nil
}

func (p *parser) parsePostfix() (*syntax.Node, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		if p.adjacent() {
			switch p.cur().Type {
			case tokenizer.OPENED_PARENS, tokenizer.OPENED_BRACKET:
				args, err := p.parseArgs()
				if err != nil {
					return nil, err
				}

				expr = syntax.NewInner(syntax.FuncCall, expr, args)

				continue
			}
		}

		p.skipTrivia()

		if p.cur().Type != tokenizer.DOT {
			return expr, nil
		}

		children := []*syntax.Node{expr}
		children = append(children, p.trivia()...)
		children = append(children, p.leaf())

		p.skipTriviaAcross()
		children = append(children, p.trivia()...)

		if p.cur().Type != tokenizer.IDENTIFIER {
			return nil, p.errorf("expected field name after '.'")
		}

		children = append(children, p.leaf())
		expr = syntax.NewInner(syntax.FieldAccess, children...)
	}
}

func (p *parser) parsePrimary() (*syntax.Node, error) {
	switch p.cur().Type {
	case tokenizer.IDENTIFIER, tokenizer.INT, tokenizer.FLOAT, tokenizer.STRING,
		tokenizer.TRUE, tokenizer.FALSE, tokenizer.NONE:
		return p.leaf(), nil
	case tokenizer.OPENED_PARENS:
		return p.parseParenthesized()
	case tokenizer.OPENED_BRACE:
		return p.parseCodeBlock()
	case tokenizer.OPENED_BRACKET:
		return p.parseContentBlock()
	default:
		return nil, p.errorf("expected expression")
	}
}

// parseArgs parses `(items)` followed by any adjacent content blocks, or content blocks alone
func (p *parser) parseArgs() (*syntax.Node, error) {
	var children []*syntax.Node

	if p.cur().Type == tokenizer.OPENED_PARENS {
		items, _, err := p.parseItems(false)
		if err != nil {
			return nil, err
		}

		children = append(children, items...)
	}

	for p.cur().Type == tokenizer.OPENED_BRACKET && (len(children) == 0 || p.adjacent()) {
		block, err := p.parseContentBlock()
		if err != nil {
			return nil, err
		}

		children = append(children, block)
	}

	return syntax.NewInner(syntax.Args, children...), nil
}

// parseParenthesized parses `(expr)`, arrays and dictionaries
func (p *parser) parseParenthesized() (*syntax.Node, error) {
	children, shape, err := p.parseItems(true)
	if err != nil {
		return nil, err
	}

	switch {
	case shape.named > 0 && shape.positional > 0:
		return nil, fmt.Errorf("%w at %s: dictionary mixes named and positional items", ErrInvalidSyntax, children[0].Pos)
	case shape.named > 0 || shape.emptyDict:
		return syntax.NewInner(syntax.Dict, children...), nil
	case shape.positional == 1 && shape.commas == 0:
		return syntax.NewInner(syntax.Parenthesized, children...), nil
	default:
		return syntax.NewInner(syntax.Array, children...), nil
	}
}

type itemShape struct {
	named      int
	positional int
	commas     int
	emptyDict  bool
}

// parseItems parses a parenthesized, comma separated list. Newlines are insignificant inside.
func (p *parser) parseItems(allowEmptyDict bool) ([]*syntax.Node, itemShape, error) {
	var shape itemShape

	p.pushNewlines(false)
	defer p.popNewlines()

	children := []*syntax.Node{p.leaf()}

	for {
		p.skipTrivia()
		children = append(children, p.trivia()...)

		if p.cur().Type == tokenizer.CLOSED_PARENS {
			break
		}

		if allowEmptyDict && shape.named+shape.positional == 0 && p.lookingAt(emptyDict) {
			shape.emptyDict = true

			children = append(children, p.leaf())

			continue
		}

		item, named, err := p.parseItem()
		if err != nil {
			return nil, shape, err
		}

		if named {
			shape.named++
		} else {
			shape.positional++
		}

		children = append(children, item)

		p.skipTrivia()
		children = append(children, p.trivia()...)

		switch p.cur().Type {
		case tokenizer.COMMA:
			shape.commas++

			children = append(children, p.leaf())
		case tokenizer.CLOSED_PARENS:
		default:
			return nil, shape, p.errorf("expected ',' or ')'")
		}
	}

	children = append(children, p.leaf())

	return children, shape, nil
}

func (p *parser) parseItem() (*syntax.Node, bool, error) {
	if !p.lookingAt(namedHeader) {
		expr, err := p.parseExpr(0)
		return expr, false, err
	}

	children := []*syntax.Node{p.leaf()}

	p.skipTrivia()
	children = append(children, p.trivia()...)
	children = append(children, p.leaf())

	p.skipTrivia()
	children = append(children, p.trivia()...)

	value, err := p.parseExpr(0)
	if err != nil {
		return nil, true, err
	}

	children = append(children, value)

	return syntax.NewInner(syntax.Named, children...), true, nil
}

func (p *parser) parseCodeBlock() (*syntax.Node, error) {
	children := []*syntax.Node{p.leaf()}

	children, err := p.parseStatements(children, tokenizer.CLOSED_BRACE)
	if err != nil {
		return nil, err
	}

	children = append(children, p.leaf())

	return syntax.NewInner(syntax.CodeBlock, children...), nil
}

// parseContentBlock parses `[markup]`; the lexer already split text, embeds and nested blocks
func (p *parser) parseContentBlock() (*syntax.Node, error) {
	open := p.leaf()

	var markup []*syntax.Node

	for {
		switch p.cur().Type {
		case tokenizer.CLOSED_BRACKET:
			return syntax.NewInner(syntax.ContentBlock, open, syntax.NewInner(syntax.Markup, markup...), p.leaf()), nil
		case tokenizer.MARKUP_TEXT:
			markup = append(markup, p.leaf())
		case tokenizer.OPENED_BRACKET:
			block, err := p.parseContentBlock()
			if err != nil {
				return nil, err
			}

			markup = append(markup, block)
		case tokenizer.HASH:
			hash := p.leaf()

			expr, err := p.parseEmbed()
			if err != nil {
				return nil, err
			}

			markup = append(markup, syntax.NewInner(syntax.Embed, hash, expr))
		default:
			return nil, p.errorf("expected ']'")
		}
	}
}

// parseEmbed parses the expression after `#`: a primary with adjacent field accesses and calls
func (p *parser) parseEmbed() (*syntax.Node, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		switch p.cur().Type {
		case tokenizer.DOT:
			dot := p.leaf()
			if p.cur().Type != tokenizer.IDENTIFIER {
				return nil, p.errorf("expected field name after '.'")
			}

			expr = syntax.NewInner(syntax.FieldAccess, expr, dot, p.leaf())
		case tokenizer.OPENED_PARENS, tokenizer.OPENED_BRACKET:
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}

			expr = syntax.NewInner(syntax.FuncCall, expr, args)
		default:
			return expr, nil
		}
	}
}

// skipTrivia moves comments to pending and steps over newlines that do not end the expression
func (p *parser) skipTrivia() {
	for {
		tok := p.tokens[p.pos]

		switch {
		case tok.Type.IsComment():
			kind, _ := syntax.KindOfToken(tok.Type)
			p.pending = append(p.pending, syntax.NewLeaf(kind, tok))
			p.pos++
		case tok.Type == tokenizer.NEWLINE:
			if p.newlines[len(p.newlines)-1] && !p.continues() {
				return
			}

			p.pos++
		default:
			return
		}
	}
}

// skipTriviaAcross skips comments and every newline; used after a token that needs an operand
func (p *parser) skipTriviaAcross() {
	p.pushNewlines(false)
	p.skipTrivia()
	p.popNewlines()
}

// continues reports whether the line after the current newline starts with `.` or a
// binary operator, which continues the expression instead of starting a statement
func (p *parser) continues() bool {
	i := p.nextSignificant(p.pos)
	next := p.tokens[i]

	switch next.Type {
	case tokenizer.DOT:
		return true
	case tokenizer.NOT:
		return p.tokens[p.nextSignificant(i+1)].Type == tokenizer.IN
	}

	kind, ok := syntax.KindOfToken(next.Type)
	if !ok {
		return false
	}

	_, isOp := syntax.BinOpFromKind(kind)

	return isOp
}

// nextSignificant returns the index of the first token at or after i that is not a newline or comment
func (p *parser) nextSignificant(i int) int {
	for ; i < len(p.tokens); i++ {
		if !p.tokens[i].Type.IsTrivia() {
			return i
		}
	}

	return len(p.tokens) - 1
}

// trivia returns and clears the pending comments
func (p *parser) trivia() []*syntax.Node {
	pending := p.pending
	p.pending = nil

	return pending
}

// adjacent reports whether the current token touches the previous one
func (p *parser) adjacent() bool {
	if p.pos == 0 || len(p.pending) > 0 {
		return false
	}

	prev := p.tokens[p.pos-1]

	return prev.Position.Offset+len(prev.Value) == p.cur().Position.Offset
}

func (p *parser) lookingAt(pattern pc.Parser[tokenizer.Token]) bool {
	_, _, err := pattern(p.pctx, p.pcTokens[p.pos:])
	return err == nil
}

func (p *parser) cur() tokenizer.Token {
	return p.tokens[p.pos]
}

// leaf consumes the current token as a leaf node
func (p *parser) leaf() *syntax.Node {
	tok := p.tokens[p.pos]
	kind, _ := syntax.KindOfToken(tok.Type)
	p.pos++

	return syntax.NewLeaf(kind, tok)
}

func (p *parser) pushNewlines(stop bool) {
	p.newlines = append(p.newlines, stop)
}

func (p *parser) popNewlines() {
	p.newlines = p.newlines[:len(p.newlines)-1]
}

func (p *parser) errorf(format string, args ...any) error {
	tok := p.cur()

	found := tok.Value
	if tok.Type == tokenizer.EOF {
		found = "end of file"
	} else if tok.Type == tokenizer.NEWLINE {
		found = "newline"
	}

	return fmt.Errorf("%w at %s: %s, found %q", ErrInvalidSyntax, tok.Position, fmt.Sprintf(format, args...), found)
}
