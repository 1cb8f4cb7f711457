// Package chain recognizes chained expressions and lays them out.
//
// A chain is a left-leaning spine of nested expressions of the same shape:
// field accesses and calls (`a.b().c(d)`), or binary operators sharing one
// precedence (`a + b - c`). Resolve unfolds the spine outermost first; a
// Stylist turns the unfolded nodes into a document that prints either on one
// line or with every link on its own indented line.
package chain

import (
	"iter"
	"slices"

	"github.com/shibukawa/tyfmt/syntax"
)

// Descend returns the sub-node to continue unfolding into, or false to stop
type Descend func(node *syntax.Node) (*syntax.Node, bool)

// Resolve unfolds the spine starting at start. The sequence is outermost first
// and always yields start itself; the last node yielded is the root leaf.
func Resolve(start *syntax.Node, descend Descend) iter.Seq[*syntax.Node] {
	return func(yield func(*syntax.Node) bool) {
		node := start

		for {
			if !yield(node) {
				return
			}

			next, ok := descend(node)
			if !ok {
				return
			}

			node = next
		}
	}
}

// Collect resolves the whole chain into a slice
func Collect(start *syntax.Node, descend Descend) []*syntax.Node {
	return slices.Collect(Resolve(start, descend))
}

// ResolveDot unfolds field accesses into their targets and calls into their
// callees. Calls are transparent: they forward to their callee without
// starting a link of their own.
func ResolveDot(start *syntax.Node) iter.Seq[*syntax.Node] {
	return Resolve(start, descendDot)
}

func descendDot(node *syntax.Node) (*syntax.Node, bool) {
	if access, ok := syntax.AsFieldAccess(node); ok {
		return access.Target(), true
	}

	if call, ok := syntax.AsFuncCall(node); ok {
		return call.Callee(), true
	}

	return nil, false
}

// ResolveBinary unfolds the left operands of binary expressions that share
// the precedence of start. Any other node, including a binary expression of
// another precedence, ends the chain.
func ResolveBinary(start *syntax.Node) iter.Seq[*syntax.Node] {
	top, ok := syntax.AsBinary(start)
	if !ok {
		return Resolve(start, stop)
	}

	return Resolve(start, descendBinary(top.Op().Precedence()))
}

func descendBinary(prec int) Descend {
	return func(node *syntax.Node) (*syntax.Node, bool) {
		bin, ok := syntax.AsBinary(node)
		if !ok || bin.Op().Precedence() != prec {
			return nil, false
		}

		return bin.Lhs(), true
	}
}

func stop(*syntax.Node) (*syntax.Node, bool) {
	return nil, false
}
