// Package syntax holds the concrete syntax tree of typ-code.
//
// Nodes are built once by the parser and never mutated afterwards. Comments
// stay in the tree as leaf children of the inner node that was being built
// where they appeared, so printers can place them back. Whitespace and
// newlines are not kept.
package syntax

import (
	"strings"

	"github.com/shibukawa/tyfmt/tokenizer"
)

// Node is a leaf (token) or an inner node of the syntax tree
type Node struct {
	Kind     Kind
	Text     string // leaf text; empty for inner nodes
	Children []*Node
	Pos      tokenizer.Position
}

// NewLeaf creates a leaf node from a token
func NewLeaf(kind Kind, token tokenizer.Token) *Node {
	return &Node{Kind: kind, Text: token.Value, Pos: token.Position}
}

// NewInner creates an inner node. Its position is the one of its first child.
func NewInner(kind Kind, children ...*Node) *Node {
	n := &Node{Kind: kind, Children: children}
	if len(children) > 0 {
		n.Pos = children[0].Pos
	}

	return n
}

// IsLeaf reports whether the node is a token
func (n *Node) IsLeaf() bool {
	return n.Kind < Code
}

// IsComment reports whether the node is a comment leaf
func (n *Node) IsComment() bool {
	return n.Kind.IsComment()
}

// Exprs returns the expression children in order
func (n *Node) Exprs() []*Node {
	var exprs []*Node

	for _, child := range n.Children {
		if child.Kind.IsExpr() {
			exprs = append(exprs, child)
		}
	}

	return exprs
}

// Child returns the first child of the given kind
func (n *Node) Child(kind Kind) (*Node, bool) {
	for _, child := range n.Children {
		if child.Kind == kind {
			return child, true
		}
	}

	return nil, false
}

// Comments returns the comment children in order
func (n *Node) Comments() []*Node {
	var comments []*Node

	for _, child := range n.Children {
		if child.IsComment() {
			comments = append(comments, child)
		}
	}

	return comments
}

// Source reconstructs the token text under the node, joined by single spaces.
// It is meant for diagnostics, not for printing.
func (n *Node) Source() string {
	var parts []string

	n.walk(func(leaf *Node) {
		parts = append(parts, leaf.Text)
	})

	return strings.Join(parts, " ")
}

// String renders the tree as an S-expression of kinds and leaf texts
func (n *Node) String() string {
	if n.IsLeaf() {
		return n.Text
	}

	var b strings.Builder

	b.WriteString("(")
	b.WriteString(n.Kind.String())

	for _, child := range n.Children {
		b.WriteString(" ")
		b.WriteString(child.String())
	}

	b.WriteString(")")

	return b.String()
}

func (n *Node) walk(visit func(leaf *Node)) {
	if n.IsLeaf() {
		visit(n)
		return
	}

	for _, child := range n.Children {
		child.walk(visit)
	}
}

// Equal compares two trees by kind and leaf text. Positions, comments and
// separators (commas, semicolons) are ignored, so a tree and the tree of its
// formatted output compare equal.
func Equal(a, b *Node) bool {
	if a.Kind != b.Kind {
		return false
	}

	if a.IsLeaf() {
		return a.Text == b.Text
	}

	ac, bc := significant(a.Children), significant(b.Children)
	if len(ac) != len(bc) {
		return false
	}

	for i := range ac {
		if !Equal(ac[i], bc[i]) {
			return false
		}
	}

	return true
}

func significant(nodes []*Node) []*Node {
	result := make([]*Node, 0, len(nodes))

	for _, n := range nodes {
		if !n.IsComment() && n.Kind != Comma && n.Kind != Semicolon {
			result = append(result, n)
		}
	}

	return result
}
