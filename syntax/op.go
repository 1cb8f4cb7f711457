package syntax

// Assoc is the associativity of a binary operator
type Assoc int

const (
	LeftAssoc Assoc = iota
	RightAssoc
)

// BinOp is a binary operator
type BinOp int

const (
	OpAdd BinOp = iota
	OpSub
	OpMul
	OpDiv
	OpAnd
	OpOr
	OpEq
	OpNeq
	OpLt
	OpLeq
	OpGt
	OpGeq
	OpIn
	OpNotIn
	OpAssign
	OpAddAssign
	OpSubAssign
	OpMulAssign
	OpDivAssign
)

var binOpKinds = map[Kind]BinOp{
	Plus:    OpAdd,
	Minus:   OpSub,
	Star:    OpMul,
	Slash:   OpDiv,
	And:     OpAnd,
	Or:      OpOr,
	EqEq:    OpEq,
	ExclEq:  OpNeq,
	Lt:      OpLt,
	LtEq:    OpLeq,
	Gt:      OpGt,
	GtEq:    OpGeq,
	In:      OpIn,
	Eq:      OpAssign,
	PlusEq:  OpAddAssign,
	HyphEq:  OpSubAssign,
	StarEq:  OpMulAssign,
	SlashEq: OpDivAssign,
}

// BinOpFromKind returns the operator a single token stands for.
// `not in` spans two tokens and is not covered here.
func BinOpFromKind(kind Kind) (BinOp, bool) {
	op, ok := binOpKinds[kind]
	return op, ok
}

// IsBinOpToken reports whether the kind can be part of a binary operator
func IsBinOpToken(kind Kind) bool {
	_, ok := binOpKinds[kind]
	return ok || kind == Not
}

// Precedence of the operator; higher binds tighter
func (op BinOp) Precedence() int {
	switch op {
	case OpMul, OpDiv:
		return 6
	case OpAdd, OpSub:
		return 5
	case OpEq, OpNeq, OpLt, OpLeq, OpGt, OpGeq, OpIn, OpNotIn:
		return 4
	case OpAnd:
		return 3
	case OpOr:
		return 2
	default:
		return 1
	}
}

// Assoc returns the associativity; assignments group to the right
func (op BinOp) Assoc() Assoc {
	if op.Precedence() == 1 {
		return RightAssoc
	}

	return LeftAssoc
}

// String returns the source text of the operator
func (op BinOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpAnd:
		return "and"
	case OpOr:
		return "or"
	case OpEq:
		return "=="
	case OpNeq:
		return "!="
	case OpLt:
		return "<"
	case OpLeq:
		return "<="
	case OpGt:
		return ">"
	case OpGeq:
		return ">="
	case OpIn:
		return "in"
	case OpNotIn:
		return "not in"
	case OpAssign:
		return "="
	case OpAddAssign:
		return "+="
	case OpSubAssign:
		return "-="
	case OpMulAssign:
		return "*="
	default:
		return "/="
	}
}

// UnOp is a prefix operator
type UnOp int

const (
	OpPos UnOp = iota
	OpNeg
	OpNot
)

// UnOpFromKind returns the prefix operator a token stands for
func UnOpFromKind(kind Kind) (UnOp, bool) {
	switch kind {
	case Plus:
		return OpPos, true
	case Minus:
		return OpNeg, true
	case Not:
		return OpNot, true
	default:
		return 0, false
	}
}

// Precedence of the prefix operator, compared against binary precedences
func (op UnOp) Precedence() int {
	if op == OpNot {
		return 3
	}

	return 7
}
