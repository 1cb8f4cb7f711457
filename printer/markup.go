package printer

import (
	"github.com/shibukawa/tyfmt/doc"
	"github.com/shibukawa/tyfmt/syntax"
)

// convertContentBlock prints `[markup]`. Markup text is kept as written.
func (p *Printer) convertContentBlock(node *syntax.Node) doc.Doc {
	parts := []doc.Doc{doc.Text("[")}

	if markup, ok := node.Child(syntax.Markup); ok {
		for _, child := range markup.Children {
			parts = append(parts, p.convertMarkup(child))
		}
	}

	parts = append(parts, doc.Text("]"))

	return doc.Concat(parts...)
}

func (p *Printer) convertMarkup(node *syntax.Node) doc.Doc {
	switch node.Kind {
	case syntax.Text:
		return doc.Verbatim(node.Text)
	case syntax.Embed:
		return doc.Concat(doc.Text("#"), p.expr(node.Exprs()[0]))
	default:
		return p.expr(node)
	}
}
