package printer

import (
	"github.com/shibukawa/tyfmt/chain"
	"github.com/shibukawa/tyfmt/doc"
	"github.com/shibukawa/tyfmt/syntax"
)

// dotChain classifies field access and call spines
type dotChain struct {
	p *Printer
}

func (c dotChain) IsLink(node *syntax.Node) bool {
	return node.Kind == syntax.FieldAccess
}

func (c dotChain) IsSeparator(child *syntax.Node) bool {
	return child.Kind == syntax.Dot
}

func (c dotChain) RenderPayload(node *syntax.Node) (doc.Doc, bool) {
	if access, ok := syntax.AsFieldAccess(node); ok {
		return doc.Text(access.Field().Text), true
	}

	if call, ok := syntax.AsFuncCall(node); ok {
		return c.p.convertArgs(call.Args()), true
	}

	return nil, false
}

func (c dotChain) RenderLeaf(node *syntax.Node) (doc.Doc, bool) {
	return c.p.ConvertExpr(node)
}

// binaryChain classifies runs of same-precedence binary operators
type binaryChain struct {
	p *Printer
}

func (c binaryChain) IsLink(node *syntax.Node) bool {
	return node.Kind == syntax.Binary
}

func (c binaryChain) IsSeparator(child *syntax.Node) bool {
	return child.IsLeaf() && syntax.IsBinOpToken(child.Kind)
}

func (c binaryChain) RenderPayload(node *syntax.Node) (doc.Doc, bool) {
	bin, ok := syntax.AsBinary(node)
	if !ok {
		return nil, false
	}

	return c.p.ConvertExpr(bin.Rhs())
}

func (c binaryChain) RenderLeaf(node *syntax.Node) (doc.Doc, bool) {
	return c.p.ConvertExpr(node)
}

// ConvertDotChain prints a field access or call spine as a dot chain
func (p *Printer) ConvertDotChain(node *syntax.Node) doc.Doc {
	s := chain.NewStylist(dotChain{p}).Process(chain.ResolveDot(node))

	p.logger.Debug().
		Str("chain", "dot").
		Stringer("pos", node.Pos).
		Int("links", s.Links()).
		Msg("chain resolved")

	return s.Doc(chain.DotStyle)
}

// ConvertBinaryChain prints a run of same-precedence binary operators
func (p *Printer) ConvertBinaryChain(node *syntax.Node) doc.Doc {
	s := chain.NewStylist(binaryChain{p}).Process(chain.ResolveBinary(node))

	p.logger.Debug().
		Str("chain", "binary").
		Stringer("pos", node.Pos).
		Int("links", s.Links()).
		Msg("chain resolved")

	return s.Doc(chain.BinaryStyle)
}
