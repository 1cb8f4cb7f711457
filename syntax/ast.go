package syntax

// Typed read-only views over inner nodes. A view is obtained with the matching
// As* function, which fails when the node has another kind.

// FieldAccessExpr is `target.field`
type FieldAccessExpr struct{ node *Node }

// AsFieldAccess casts n to a FieldAccessExpr view
func AsFieldAccess(n *Node) (FieldAccessExpr, bool) {
	if n == nil || n.Kind != FieldAccess {
		return FieldAccessExpr{}, false
	}

	return FieldAccessExpr{n}, true
}

// Node returns the untyped node
func (f FieldAccessExpr) Node() *Node { return f.node }

// Target is the expression before the dot
func (f FieldAccessExpr) Target() *Node { return f.node.Exprs()[0] }

// Field is the identifier after the dot
func (f FieldAccessExpr) Field() *Node {
	seenDot := false

	for _, child := range f.node.Children {
		if child.Kind == Dot {
			seenDot = true
		} else if seenDot && child.Kind == Ident {
			return child
		}
	}

	return nil
}

// FuncCallExpr is `callee(args)[content]`
type FuncCallExpr struct{ node *Node }

// AsFuncCall casts n to a FuncCallExpr view
func AsFuncCall(n *Node) (FuncCallExpr, bool) {
	if n == nil || n.Kind != FuncCall {
		return FuncCallExpr{}, false
	}

	return FuncCallExpr{n}, true
}

// Node returns the untyped node
func (c FuncCallExpr) Node() *Node { return c.node }

// Callee is the called expression
func (c FuncCallExpr) Callee() *Node { return c.node.Exprs()[0] }

// Args returns the argument list node
func (c FuncCallExpr) Args() ArgList {
	args, _ := c.node.Child(Args)
	return ArgList{args}
}

// ArgList is the argument list of a call, parenthesized items followed by trailing content blocks
type ArgList struct{ node *Node }

// Node returns the untyped node
func (a ArgList) Node() *Node { return a.node }

// HasParens reports whether the list was written with parentheses
func (a ArgList) HasParens() bool {
	_, ok := a.node.Child(LeftParen)
	return ok
}

// Items returns the arguments inside the parentheses: expressions and Named pairs
func (a ArgList) Items() []*Node {
	var items []*Node

	inside := false

	for _, child := range a.node.Children {
		switch {
		case child.Kind == LeftParen:
			inside = true
		case child.Kind == RightParen:
			inside = false
		case inside && (child.Kind.IsExpr() || child.Kind == Named):
			items = append(items, child)
		}
	}

	return items
}

// Trailing returns the content blocks written after the parentheses
func (a ArgList) Trailing() []*Node {
	var blocks []*Node

	depth := 0

	for _, child := range a.node.Children {
		switch {
		case child.Kind == LeftParen:
			depth++
		case child.Kind == RightParen:
			depth--
		case depth == 0 && child.Kind == ContentBlock:
			blocks = append(blocks, child)
		}
	}

	return blocks
}

// BinaryExpr is `lhs op rhs`
type BinaryExpr struct{ node *Node }

// AsBinary casts n to a BinaryExpr view
func AsBinary(n *Node) (BinaryExpr, bool) {
	if n == nil || n.Kind != Binary {
		return BinaryExpr{}, false
	}

	return BinaryExpr{n}, true
}

// Node returns the untyped node
func (b BinaryExpr) Node() *Node { return b.node }

// Lhs is the left operand
func (b BinaryExpr) Lhs() *Node { return b.node.Exprs()[0] }

// Rhs is the right operand
func (b BinaryExpr) Rhs() *Node {
	exprs := b.node.Exprs()
	return exprs[len(exprs)-1]
}

// Op returns the operator
func (b BinaryExpr) Op() BinOp {
	sawNot := false

	for _, child := range b.node.Children {
		switch {
		case child.Kind == Not:
			sawNot = true
		case child.Kind == In && sawNot:
			return OpNotIn
		default:
			if op, ok := BinOpFromKind(child.Kind); ok && !child.Kind.IsExpr() {
				return op
			}
		}
	}

	return OpAssign
}

// UnaryExpr is `op operand`
type UnaryExpr struct{ node *Node }

// AsUnary casts n to a UnaryExpr view
func AsUnary(n *Node) (UnaryExpr, bool) {
	if n == nil || n.Kind != Unary {
		return UnaryExpr{}, false
	}

	return UnaryExpr{n}, true
}

// Node returns the untyped node
func (u UnaryExpr) Node() *Node { return u.node }

// Op returns the prefix operator
func (u UnaryExpr) Op() UnOp {
	for _, child := range u.node.Children {
		if op, ok := UnOpFromKind(child.Kind); ok {
			return op
		}
	}

	return OpPos
}

// Operand is the expression the operator applies to
func (u UnaryExpr) Operand() *Node { return u.node.Exprs()[0] }

// LetBindingStmt is `let name = init`
type LetBindingStmt struct{ node *Node }

// AsLetBinding casts n to a LetBindingStmt view
func AsLetBinding(n *Node) (LetBindingStmt, bool) {
	if n == nil || n.Kind != LetBinding {
		return LetBindingStmt{}, false
	}

	return LetBindingStmt{n}, true
}

// Node returns the untyped node
func (l LetBindingStmt) Node() *Node { return l.node }

// Name is the bound identifier
func (l LetBindingStmt) Name() *Node {
	name, _ := l.node.Child(Ident)
	return name
}

// Init is the initializer, or nil for `let name`
func (l LetBindingStmt) Init() *Node {
	seenEq := false

	for _, child := range l.node.Children {
		if child.Kind == Eq {
			seenEq = true
		} else if seenEq && child.Kind.IsExpr() {
			return child
		}
	}

	return nil
}

// NamedArg is `name: value` in arguments and dictionaries
type NamedArg struct{ node *Node }

// AsNamed casts n to a NamedArg view
func AsNamed(n *Node) (NamedArg, bool) {
	if n == nil || n.Kind != Named {
		return NamedArg{}, false
	}

	return NamedArg{n}, true
}

// Node returns the untyped node
func (n NamedArg) Node() *Node { return n.node }

// Name is the key identifier
func (n NamedArg) Name() *Node { return n.node.Children[0] }

// Value is the expression after the colon
func (n NamedArg) Value() *Node {
	exprs := n.node.Exprs()
	return exprs[len(exprs)-1]
}
