package chain

import (
	"github.com/shibukawa/tyfmt/doc"
	"github.com/shibukawa/tyfmt/syntax"
)

// Classifier tells a Stylist how the nodes of one kind of chain print
type Classifier interface {
	// IsLink reports whether a resolved node contributes a separator. Nodes
	// that are not links are transparent and only extend the previous segment.
	IsLink(node *syntax.Node) bool
	// IsSeparator reports whether a child token of a link is its separator
	IsSeparator(child *syntax.Node) bool
	// RenderPayload renders what follows the separator of a link, or the
	// whole contribution of a transparent node
	RenderPayload(node *syntax.Node) (doc.Doc, bool)
	// RenderLeaf renders the root leaf through the generic converter
	RenderLeaf(node *syntax.Node) (doc.Doc, bool)
}
