// Package printer converts typ-code syntax trees into layout documents.
package printer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shibukawa/tyfmt/chain"
	"github.com/shibukawa/tyfmt/doc"
	"github.com/shibukawa/tyfmt/syntax"
)

// Sentinel errors
var (
	ErrUnsupportedNode = errors.New("unsupported node")
)

// Mode is the syntactic context a node is printed in
type Mode int

const (
	ModeCode Mode = iota
	ModeMarkup
)

func (m Mode) String() string {
	if m == ModeMarkup {
		return "markup"
	}

	return "code"
}

// Option configures a Printer
type Option func(*Printer)

// WithLogger sets the logger used to trace layout decisions
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Printer) {
		p.logger = logger
	}
}

// Printer builds documents from syntax trees. A Printer keeps a mode stack
// while converting and must not be shared between goroutines.
type Printer struct {
	logger zerolog.Logger
	modes  []Mode
}

// New creates a Printer
func New(options ...Option) *Printer {
	p := &Printer{
		logger: zerolog.Nop(),
		modes:  []Mode{ModeCode},
	}

	for _, option := range options {
		option(p)
	}

	return p
}

// Print converts a Code root into the document of the whole file. A non-empty
// file ends with exactly one newline.
func (p *Printer) Print(root *syntax.Node) doc.Doc {
	body, count := p.statements(root.Children)
	if count == 0 {
		return doc.Nil
	}

	return doc.Concat(body, doc.HardLine)
}

// Mode returns the current printing mode
func (p *Printer) Mode() Mode {
	return p.modes[len(p.modes)-1]
}

func (p *Printer) withMode(mode Mode, fn func() doc.Doc) doc.Doc {
	p.modes = append(p.modes, mode)
	defer func() {
		p.modes = p.modes[:len(p.modes)-1]
	}()

	return fn()
}

// ConvertExpr converts an expression node. It reports false for kinds that
// are not expressions.
func (p *Printer) ConvertExpr(node *syntax.Node) (doc.Doc, bool) {
	switch node.Kind {
	case syntax.Ident, syntax.Int, syntax.Float, syntax.Str, syntax.Bool, syntax.None:
		return doc.Text(node.Text), true
	case syntax.FieldAccess:
		if p.Mode() == ModeMarkup {
			return p.convertFieldAccess(node), true
		}

		return p.ConvertDotChain(node), true
	case syntax.FuncCall:
		if p.Mode() == ModeCode && hasFieldAccess(node) {
			return p.ConvertDotChain(node), true
		}

		call, _ := syntax.AsFuncCall(node)

		return doc.Concat(p.expr(call.Callee()), p.convertArgs(call.Args())), true
	case syntax.Binary:
		return p.ConvertBinaryChain(node), true
	case syntax.Unary:
		return p.convertUnary(node), true
	case syntax.Parenthesized:
		return p.withMode(ModeCode, func() doc.Doc { return p.convertParenthesized(node) }), true
	case syntax.Array, syntax.Dict:
		return p.withMode(ModeCode, func() doc.Doc { return p.convertItems(node, node.Kind == syntax.Array) }), true
	case syntax.CodeBlock:
		return p.withMode(ModeCode, func() doc.Doc { return p.convertCodeBlock(node) }), true
	case syntax.ContentBlock:
		return p.withMode(ModeMarkup, func() doc.Doc { return p.convertContentBlock(node) }), true
	default:
		return nil, false
	}
}

// expr converts an expression that the parser guarantees to be supported
func (p *Printer) expr(node *syntax.Node) doc.Doc {
	d, ok := p.ConvertExpr(node)
	if !ok {
		panic(fmt.Errorf("%w: %s at %s", ErrUnsupportedNode, node.Kind, node.Pos))
	}

	return d
}

// hasFieldAccess reports whether the callee spine of a call contains a field access
func hasFieldAccess(node *syntax.Node) bool {
	for n := range chain.ResolveDot(node) {
		if n.Kind == syntax.FieldAccess {
			return true
		}
	}

	return false
}

func (p *Printer) convertFieldAccess(node *syntax.Node) doc.Doc {
	access, _ := syntax.AsFieldAccess(node)
	return doc.Concat(p.expr(access.Target()), doc.Text("."), doc.Text(access.Field().Text))
}

func (p *Printer) convertUnary(node *syntax.Node) doc.Doc {
	unary, _ := syntax.AsUnary(node)

	op := doc.Text(node.Children[0].Text)
	if unary.Op() == syntax.OpNot {
		op = doc.Text("not ")
	}

	return doc.Concat(op, inlineComments(node.Comments()), p.expr(unary.Operand()))
}

func (p *Printer) convertParenthesized(node *syntax.Node) doc.Doc {
	var before, after []*syntax.Node

	seenExpr := false

	for _, child := range node.Children {
		switch {
		case child.Kind.IsExpr():
			seenExpr = true
		case !child.IsComment():
		case seenExpr:
			after = append(after, child)
		default:
			before = append(before, child)
		}
	}

	inner := doc.Concat(inlineComments(before), p.expr(node.Exprs()[0]), trailingComments(after))

	closing := doc.SoftLine
	if endsWithLineComment(after) {
		closing = doc.HardLine
	}

	return doc.Group(doc.Concat(
		doc.Text("("),
		doc.Indent(doc.Concat(doc.SoftLine, inner)),
		closing,
		doc.Text(")"),
	))
}

func (p *Printer) convertLet(node *syntax.Node) doc.Doc {
	let, _ := syntax.AsLetBinding(node)

	parts := []doc.Doc{doc.Text("let")}
	afterLineComment := false

	for _, child := range node.Children[1:] {
		var d doc.Doc

		switch {
		case child.IsComment():
			d = doc.Verbatim(child.Text)
		case child == let.Name():
			d = doc.Text(child.Text)
		case child.Kind == syntax.Eq:
			d = doc.Text("=")
		case child == let.Init():
			d = p.expr(child)
		default:
			continue
		}

		if !afterLineComment {
			parts = append(parts, doc.Text(" "))
		}

		parts = append(parts, d)

		afterLineComment = child.Kind == syntax.LineComment
		if afterLineComment {
			parts = append(parts, doc.HardLine)
		}
	}

	return doc.Concat(parts...)
}

func (p *Printer) convertCodeBlock(node *syntax.Node) doc.Doc {
	inner := node.Children[1 : len(node.Children)-1]

	body, count := p.statements(inner)
	if count == 0 {
		return doc.Text("{}")
	}

	if count == 1 && len(node.Comments()) == 0 {
		return doc.Group(doc.Concat(
			doc.Text("{"),
			doc.Indent(doc.Concat(doc.Line, body)),
			doc.Line,
			doc.Text("}"),
		))
	}

	return doc.Concat(
		doc.Text("{"),
		doc.Indent(doc.Concat(doc.HardLine, body)),
		doc.HardLine,
		doc.Text("}"),
	)
}

// statements lays out statements and statement-level comments one per line.
// A comment that starts on the line where the previous statement ends stays
// on that line. One blank line between statements is kept.
func (p *Printer) statements(children []*syntax.Node) (doc.Doc, int) {
	var (
		parts   []doc.Doc
		prevEnd int
		count   int
	)

	for _, child := range children {
		if count > 0 && child.IsComment() && child.Pos.Line == prevEnd {
			parts = append(parts, doc.Text(" "), doc.Verbatim(child.Text))
			prevEnd = endLine(child)

			continue
		}

		if count > 0 {
			parts = append(parts, doc.HardLine)

			if child.Pos.Line-prevEnd > 1 {
				parts = append(parts, doc.HardLine)
			}
		}

		switch {
		case child.IsComment():
			parts = append(parts, doc.Verbatim(child.Text))
		case child.Kind == syntax.LetBinding:
			parts = append(parts, p.convertLet(child))
		default:
			parts = append(parts, p.expr(child))
		}

		count++
		prevEnd = endLine(child)
	}

	return doc.Concat(parts...), count
}

// endLine is the line of the last character under node
func endLine(node *syntax.Node) int {
	for !node.IsLeaf() && len(node.Children) > 0 {
		node = node.Children[len(node.Children)-1]
	}

	return node.Pos.Line + strings.Count(node.Text, "\n")
}
