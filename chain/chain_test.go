package chain

import (
	"errors"
	"iter"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shibukawa/tyfmt/doc"
	"github.com/shibukawa/tyfmt/parser"
	"github.com/shibukawa/tyfmt/syntax"
)

// sourceClassifier renders every non-chain node from its token text
type sourceClassifier struct {
	binary    bool
	noLeaf    bool
	noPayload bool
}

func (c sourceClassifier) IsLink(node *syntax.Node) bool {
	if c.binary {
		return node.Kind == syntax.Binary
	}

	return node.Kind == syntax.FieldAccess
}

func (c sourceClassifier) IsSeparator(child *syntax.Node) bool {
	if c.binary {
		return child.IsLeaf() && syntax.IsBinOpToken(child.Kind)
	}

	return child.Kind == syntax.Dot
}

func (c sourceClassifier) RenderPayload(node *syntax.Node) (doc.Doc, bool) {
	if c.noPayload {
		return nil, false
	}

	if bin, ok := syntax.AsBinary(node); ok {
		return doc.Text(bin.Rhs().Source()), true
	}

	if access, ok := syntax.AsFieldAccess(node); ok {
		return doc.Text(access.Field().Text), true
	}

	if call, ok := syntax.AsFuncCall(node); ok {
		var items []string
		for _, item := range call.Args().Items() {
			items = append(items, item.Source())
		}

		return doc.Text("(" + strings.Join(items, ", ") + ")"), true
	}

	return nil, false
}

func (c sourceClassifier) RenderLeaf(node *syntax.Node) (doc.Doc, bool) {
	if c.noLeaf {
		return nil, false
	}

	return doc.Text(node.Source()), true
}

func parseExpr(t *testing.T, src string) *syntax.Node {
	t.Helper()

	root, err := parser.Parse(src)
	assert.NoError(t, err)

	return root.Exprs()[0]
}

func kinds(nodes []*syntax.Node) []syntax.Kind {
	result := make([]syntax.Kind, len(nodes))
	for i, n := range nodes {
		result[i] = n.Kind
	}

	return result
}

func TestResolveDot(t *testing.T) {
	expr := parseExpr(t, "a.b().c(d)")

	nodes := Collect(expr, descendDot)
	assert.Equal(t, []syntax.Kind{syntax.FuncCall, syntax.FieldAccess, syntax.FuncCall, syntax.FieldAccess, syntax.Ident}, kinds(nodes))

	leaf := nodes[len(nodes)-1]
	assert.Equal(t, "a", leaf.Text)
	assert.Equal(t, 1, len(Collect(leaf, descendDot)))
}

func TestResolveBinary(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		length int
		root   string
	}{
		{name: "same precedence", input: "a + b - c", length: 3, root: "a"},
		{name: "higher precedence on the right", input: "a + b * c", length: 2, root: "a"},
		{name: "higher precedence on the left", input: "a * b + c", length: 2, root: "a * b"},
		{name: "lower precedence on the left", input: "(a or b) and c", length: 2, root: "( a or b )"},
		{name: "not a binary", input: "a.b", length: 1, root: "a . b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr := parseExpr(t, tt.input)

			var resolved []*syntax.Node
			for n := range ResolveBinary(expr) {
				resolved = append(resolved, n)
			}

			assert.Equal(t, tt.length, len(resolved))

			root := resolved[len(resolved)-1]
			assert.Equal(t, tt.root, root.Source())

			if bin, ok := syntax.AsBinary(expr); ok {
				assert.Equal(t, 1, len(Collect(root, descendBinary(bin.Op().Precedence()))))
			}
		})
	}
}

func TestResolveIsLazy(t *testing.T) {
	expr := parseExpr(t, "a.b.c.d")

	visited := 0
	descend := func(n *syntax.Node) (*syntax.Node, bool) {
		visited++
		return descendDot(n)
	}

	for range Resolve(expr, descend) {
		break
	}

	assert.Equal(t, 0, visited)
}

func render(t *testing.T, src string, style Style, width int) string {
	t.Helper()

	expr := parseExpr(t, src)

	var nodes iter.Seq[*syntax.Node]
	if style.SpaceAroundSeparator {
		nodes = ResolveBinary(expr)
	} else {
		nodes = ResolveDot(expr)
	}

	d := NewStylist(sourceClassifier{binary: style.SpaceAroundSeparator}).Process(nodes).Doc(style)

	return doc.Render(d, doc.Options{Width: width})
}

func TestStylist(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		style    Style
		width    int
		expected string
	}{
		{
			name:     "dot chain flat",
			input:    "a.b.c",
			style:    DotStyle,
			expected: "a.b.c",
		},
		{
			name:     "dot chain broken",
			input:    "a.b.c",
			style:    DotStyle,
			width:    3,
			expected: "a\n  .b\n  .c",
		},
		{
			name:     "calls fold into links",
			input:    "a.b().c(d)",
			style:    DotStyle,
			width:    5,
			expected: "a\n  .b()\n  .c(d)",
		},
		{
			name:     "call on the root stays with the root",
			input:    "f(x).g.h",
			style:    DotStyle,
			width:    4,
			expected: "f(x)\n  .g\n  .h",
		},
		{
			name:     "single dot link never breaks",
			input:    "averyveryverylongname.field",
			style:    DotStyle,
			width:    5,
			expected: "averyveryverylongname.field",
		},
		{
			name:     "binary chain flat",
			input:    "a + b - c",
			style:    BinaryStyle,
			expected: "a + b - c",
		},
		{
			name:     "binary chain broken",
			input:    "a + b - c",
			style:    BinaryStyle,
			width:    5,
			expected: "a\n  + b\n  - c",
		},
		{
			name:     "single binary may break",
			input:    "aaaa + bbbb",
			style:    BinaryStyle,
			width:    5,
			expected: "aaaa\n  + bbbb",
		},
		{
			name:     "tighter operand is a payload",
			input:    "a + b * c",
			style:    BinaryStyle,
			expected: "a + b * c",
		},
		{
			name:     "two token operator",
			input:    "a not in b",
			style:    BinaryStyle,
			expected: "a not in b",
		},
		{
			name:     "block comment before separator",
			input:    "a /* x */ .b.c",
			style:    DotStyle,
			expected: "a /* x */ .b.c",
		},
		{
			name:     "block comment after operator",
			input:    "a + /* x */ b",
			style:    BinaryStyle,
			expected: "a + /* x */ b",
		},
		{
			name:     "line comment forces broken form",
			input:    "a.b // x\n  .c",
			style:    DotStyle,
			expected: "a\n  .b\n  // x\n  .c",
		},
		{
			name:     "line comment before a single link keeps the link indented",
			input:    "a // x\n.b",
			style:    DotStyle,
			expected: "a // x\n  .b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, render(t, tt.input, tt.style, tt.width))
		})
	}
}

func TestStylistLinks(t *testing.T) {
	tests := []struct {
		input   string
		resolve func(*syntax.Node) iter.Seq[*syntax.Node]
		binary  bool
		links   int
	}{
		{input: "a", resolve: ResolveDot, links: 0},
		{input: "a.b().c(d)", resolve: ResolveDot, links: 2},
		{input: "f(x)", resolve: ResolveDot, links: 0},
		{input: "a + b - c", resolve: ResolveBinary, binary: true, links: 2},
		{input: "a + b * c", resolve: ResolveBinary, binary: true, links: 1},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			s := NewStylist(sourceClassifier{binary: tt.binary}).Process(tt.resolve(parseExpr(t, tt.input)))
			assert.Equal(t, tt.links, s.Links())
		})
	}
}

func TestStylistSingleLinkIgnoresWidth(t *testing.T) {
	for _, width := range []int{1, 5, 10, 80} {
		assert.Equal(t, "object.member", render(t, "object.member", DotStyle, width))
	}
}

func TestStylistContractViolation(t *testing.T) {
	tests := []struct {
		name       string
		classifier sourceClassifier
		input      string
		resolve    func(*syntax.Node) iter.Seq[*syntax.Node]
	}{
		{name: "root leaf not rendered", classifier: sourceClassifier{noLeaf: true}, input: "a.b", resolve: ResolveDot},
		{name: "dot link payload not rendered", classifier: sourceClassifier{noPayload: true}, input: "a.b", resolve: ResolveDot},
		{name: "binary link payload not rendered", classifier: sourceClassifier{binary: true, noPayload: true}, input: "a + b", resolve: ResolveBinary},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes := tt.resolve(parseExpr(t, tt.input))

			defer func() {
				r := recover()
				assert.NotZero(t, r)

				err, ok := r.(error)
				assert.True(t, ok)
				assert.True(t, errors.Is(err, ErrChainContract))
			}()

			NewStylist(tt.classifier).Process(nodes)
			t.Fatal("expected panic")
		})
	}
}
