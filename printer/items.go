package printer

import (
	"github.com/shibukawa/tyfmt/doc"
	"github.com/shibukawa/tyfmt/syntax"
)

// item is an element of a parenthesized list with the comments around it
type item struct {
	node     *syntax.Node
	leading  []*syntax.Node
	trailing []*syntax.Node
}

// convertArgs prints `(items)` followed by the trailing content blocks
func (p *Printer) convertArgs(args syntax.ArgList) doc.Doc {
	var parts []doc.Doc

	if args.HasParens() {
		parts = append(parts, p.withMode(ModeCode, func() doc.Doc {
			return p.itemList(args.Node().Children, false)
		}))
	}

	for _, block := range args.Trailing() {
		parts = append(parts, p.expr(block))
	}

	return doc.Concat(parts...)
}

func (p *Printer) convertItems(node *syntax.Node, array bool) doc.Doc {
	if !array && len(node.Exprs()) == 0 && hasChild(node, syntax.Colon) {
		return doc.Concat(doc.Text("("), inlineComments(node.Comments()), doc.Text(":)"))
	}

	items := node.Exprs()
	single := array && len(items) == 1

	return p.itemList(node.Children, single)
}

// itemList prints the parenthesized part of children. Items are separated by
// commas and break one per line when they do not fit; a broken list gets a
// trailing comma. keepComma keeps the comma of `(a,)` in the flat form too.
func (p *Printer) itemList(children []*syntax.Node, keepComma bool) doc.Doc {
	items, dangling := collectItems(children)
	if len(items) == 0 && len(dangling) == 0 {
		return doc.Text("()")
	}

	var parts []doc.Doc

	for i, it := range items {
		if i > 0 {
			if endsWithLineComment(items[i-1].trailing) {
				parts = append(parts, doc.HardLine)
			} else {
				parts = append(parts, doc.Line)
			}
		}

		parts = append(parts, inlineComments(it.leading), p.convertItem(it.node))

		if i < len(items)-1 || keepComma {
			parts = append(parts, doc.Text(","))
		} else {
			parts = append(parts, doc.IfBreak(doc.Text(","), doc.Nil))
		}

		parts = append(parts, trailingComments(it.trailing))
	}

	for _, c := range dangling {
		if len(parts) > 0 {
			parts = append(parts, doc.HardLine)
		}

		parts = append(parts, doc.Verbatim(c.Text))
	}

	closing := doc.SoftLine
	if len(dangling) > 0 || (len(items) > 0 && endsWithLineComment(items[len(items)-1].trailing)) {
		closing = doc.HardLine
	}

	return doc.Group(doc.Concat(
		doc.Text("("),
		doc.Indent(doc.Concat(doc.SoftLine, doc.Concat(parts...))),
		closing,
		doc.Text(")"),
	))
}

// collectItems splits the parenthesized part of children into items. A
// comment on the line of the previous item or comma trails that item; other
// comments lead the next item. Comments after the last item are dangling.
func collectItems(children []*syntax.Node) ([]*item, []*syntax.Node) {
	var (
		items    []*item
		pending  []*syntax.Node
		lastLine int
		inside   bool
	)

	for _, child := range children {
		switch {
		case child.Kind == syntax.LeftParen:
			inside = true
			lastLine = child.Pos.Line
		case child.Kind == syntax.RightParen:
			return items, pending
		case !inside:
		case child.IsComment():
			if len(items) > 0 && len(pending) == 0 && child.Pos.Line == lastLine {
				last := items[len(items)-1]
				last.trailing = append(last.trailing, child)

				continue
			}

			pending = append(pending, child)
		case child.Kind == syntax.Comma:
			lastLine = child.Pos.Line
		case child.Kind == syntax.Colon:
		default:
			items = append(items, &item{node: child, leading: pending})
			pending = nil
			lastLine = endLine(child)
		}
	}

	return items, pending
}

func (p *Printer) convertItem(node *syntax.Node) doc.Doc {
	if node.Kind == syntax.Named {
		return p.convertNamed(node)
	}

	return p.expr(node)
}

// convertNamed prints `name: value`
func (p *Printer) convertNamed(node *syntax.Node) doc.Doc {
	named, _ := syntax.AsNamed(node)

	var before, after []*syntax.Node

	seenColon := false

	for _, child := range node.Children {
		switch {
		case child.Kind == syntax.Colon:
			seenColon = true
		case !child.IsComment():
		case seenColon:
			after = append(after, child)
		default:
			before = append(before, child)
		}
	}

	return doc.Concat(
		doc.Text(named.Name().Text),
		trailingComments(before),
		doc.Text(": "),
		inlineComments(after),
		p.expr(named.Value()),
	)
}

func hasChild(node *syntax.Node, kind syntax.Kind) bool {
	_, ok := node.Child(kind)
	return ok
}

// inlineComments prints comments that precede something on the same line:
// block comments are followed by a space, line comments by a line break
func inlineComments(comments []*syntax.Node) doc.Doc {
	parts := make([]doc.Doc, 0, len(comments)*2)

	for _, c := range comments {
		parts = append(parts, doc.Verbatim(c.Text))

		if c.Kind == syntax.LineComment {
			parts = append(parts, doc.HardLine)
		} else {
			parts = append(parts, doc.Text(" "))
		}
	}

	return doc.Concat(parts...)
}

// trailingComments prints comments that follow something, each after a space.
// The caller must break the line after a trailing line comment.
func trailingComments(comments []*syntax.Node) doc.Doc {
	parts := make([]doc.Doc, 0, len(comments)*2)

	for _, c := range comments {
		parts = append(parts, doc.Text(" "), doc.Verbatim(c.Text))
	}

	return doc.Concat(parts...)
}

func endsWithLineComment(comments []*syntax.Node) bool {
	return len(comments) > 0 && comments[len(comments)-1].Kind == syntax.LineComment
}
