package syntax_test

import (
	"testing"

	"github.com/shibukawa/tyfmt/parser"
	"github.com/shibukawa/tyfmt/syntax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) *syntax.Node {
	t.Helper()

	node, err := parser.Parse(src)
	require.NoError(t, err)

	return node
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name  string
		a     string
		b     string
		equal bool
	}{
		{name: "same source", a: "a.b(c)", b: "a.b(c)", equal: true},
		{name: "whitespace and newlines", a: "a.b.c", b: "a\n  .b\n  .c", equal: true},
		{name: "comments", a: "a /* x */ + b", b: "a + b", equal: true},
		{name: "trailing comma", a: "f(a, b,)", b: "f(a, b)", equal: true},
		{name: "semicolon", a: "{ a; b }", b: "{\n  a\n  b\n}", equal: true},
		{name: "different operator", a: "a + b", b: "a - b", equal: false},
		{name: "different grouping", a: "(a + b) * c", b: "a + b * c", equal: false},
		{name: "single element array is not parenthesized", a: "(a,)", b: "(a)", equal: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.equal, syntax.Equal(mustParse(t, tt.a), mustParse(t, tt.b)))
		})
	}
}

func TestNodeAccessors(t *testing.T) {
	root := mustParse(t, "a /* x */ + b")

	bin := root.Exprs()[0]
	assert.False(t, bin.IsLeaf())
	assert.Len(t, bin.Comments(), 1)
	assert.Equal(t, "a /* x */ + b", bin.Source())

	op, ok := bin.Child(syntax.Plus)
	require.True(t, ok)
	assert.True(t, op.IsLeaf())
	assert.Equal(t, 1, op.Pos.Line)
	assert.Equal(t, 11, op.Pos.Column)

	_, ok = bin.Child(syntax.Minus)
	assert.False(t, ok)
}

func TestTypedViews(t *testing.T) {
	t.Run("binary", func(t *testing.T) {
		root := mustParse(t, "x not in (1, 2)")

		bin, ok := syntax.AsBinary(root.Exprs()[0])
		require.True(t, ok)
		assert.Equal(t, syntax.OpNotIn, bin.Op())
		assert.Equal(t, "not in", bin.Op().String())
		assert.Equal(t, "x", bin.Lhs().Text)
		assert.Equal(t, syntax.Array, bin.Rhs().Kind)

		_, ok = syntax.AsFuncCall(root.Exprs()[0])
		assert.False(t, ok)
	})

	t.Run("field access", func(t *testing.T) {
		root := mustParse(t, "a.b(c).d")

		var outer syntax.FieldAccessExpr

		outer, ok := syntax.AsFieldAccess(root.Exprs()[0])
		require.True(t, ok)
		assert.Equal(t, syntax.FieldAccess, outer.Node().Kind)
		assert.Equal(t, "d", outer.Field().Text)

		var call syntax.FuncCallExpr

		call, ok = syntax.AsFuncCall(outer.Target())
		require.True(t, ok)
		assert.Equal(t, syntax.FuncCall, call.Node().Kind)

		inner, ok := syntax.AsFieldAccess(call.Callee())
		require.True(t, ok)
		assert.Equal(t, "a", inner.Target().Text)
		assert.Equal(t, "b", inner.Field().Text)

		_, ok = syntax.AsFieldAccess(inner.Target())
		assert.False(t, ok)
	})

	t.Run("unary", func(t *testing.T) {
		root := mustParse(t, "-x")

		un, ok := syntax.AsUnary(root.Exprs()[0])
		require.True(t, ok)
		assert.Equal(t, syntax.OpNeg, un.Op())
		assert.Equal(t, "x", un.Operand().Text)
	})

	t.Run("let binding", func(t *testing.T) {
		root := mustParse(t, "let total = a + b\nlet empty")

		full, ok := syntax.AsLetBinding(root.Children[0])
		require.True(t, ok)
		assert.Equal(t, "total", full.Name().Text)
		assert.Equal(t, syntax.Binary, full.Init().Kind)

		bare, ok := syntax.AsLetBinding(root.Children[1])
		require.True(t, ok)
		assert.Equal(t, "empty", bare.Name().Text)
		assert.Nil(t, bare.Init())
	})

	t.Run("named argument", func(t *testing.T) {
		root := mustParse(t, "f(key: value)")

		call, ok := syntax.AsFuncCall(root.Exprs()[0])
		require.True(t, ok)

		items := call.Args().Items()
		require.Len(t, items, 1)

		named, ok := syntax.AsNamed(items[0])
		require.True(t, ok)
		assert.Equal(t, "key", named.Name().Text)
		assert.Equal(t, "value", named.Value().Text)
	})
}

func TestOperatorPrecedence(t *testing.T) {
	assert.Greater(t, syntax.OpMul.Precedence(), syntax.OpAdd.Precedence())
	assert.Greater(t, syntax.OpAdd.Precedence(), syntax.OpEq.Precedence())
	assert.Greater(t, syntax.OpAnd.Precedence(), syntax.OpOr.Precedence())
	assert.Equal(t, syntax.OpLt.Precedence(), syntax.OpNotIn.Precedence())
	assert.Equal(t, syntax.RightAssoc, syntax.OpAddAssign.Assoc())
	assert.Equal(t, syntax.LeftAssoc, syntax.OpSub.Assoc())
	assert.True(t, syntax.IsBinOpToken(syntax.Not))
	assert.False(t, syntax.IsBinOpToken(syntax.Dot))
}
