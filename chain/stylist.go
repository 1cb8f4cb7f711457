package chain

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/shibukawa/tyfmt/doc"
	"github.com/shibukawa/tyfmt/syntax"
)

// ErrChainContract is the panic value (wrapped) raised when a classifier
// cannot render a node it is responsible for
var ErrChainContract = errors.New("chain contract violation")

// link is one visible step of a chain
type link struct {
	before    []*syntax.Node // comments ahead of the separator
	separator string
	after     []*syntax.Node // comments between separator and payload
	payload   doc.Doc
}

// Stylist builds the document of a resolved chain
type Stylist struct {
	classifier Classifier
	leaf       doc.Doc
	links      []*link
}

// NewStylist creates a Stylist for one kind of chain
func NewStylist(classifier Classifier) *Stylist {
	return &Stylist{classifier: classifier}
}

// Process renders the segments of a resolved chain. nodes is outermost first;
// segments are built from the root leaf outwards so that transparent nodes
// attach to the segment printed just before them.
func (s *Stylist) Process(nodes iter.Seq[*syntax.Node]) *Stylist {
	resolved := slices.Collect(nodes)
	if len(resolved) == 0 {
		panic(fmt.Errorf("%w: empty chain", ErrChainContract))
	}

	root := resolved[len(resolved)-1]

	leaf, ok := s.classifier.RenderLeaf(root)
	if !ok {
		panic(fmt.Errorf("%w: cannot render root %s", ErrChainContract, root.Kind))
	}

	s.leaf = leaf
	s.links = nil

	for i := len(resolved) - 2; i >= 0; i-- {
		node := resolved[i]

		payload, ok := s.classifier.RenderPayload(node)
		if !ok {
			panic(fmt.Errorf("%w: no payload for %s at %s", ErrChainContract, node.Kind, node.Pos))
		}

		if !s.classifier.IsLink(node) {
			s.extend(payload)
			continue
		}

		l := &link{payload: payload}

		var separators []string

		for _, child := range node.Children {
			switch {
			case s.classifier.IsSeparator(child):
				separators = append(separators, child.Text)
			case !child.IsComment():
			case len(separators) == 0:
				l.before = append(l.before, child)
			default:
				l.after = append(l.after, child)
			}
		}

		if len(separators) == 0 {
			panic(fmt.Errorf("%w: link %s at %s has no separator", ErrChainContract, node.Kind, node.Pos))
		}

		l.separator = strings.Join(separators, " ")
		s.links = append(s.links, l)
	}

	return s
}

// extend appends the contribution of a transparent node to the last segment
func (s *Stylist) extend(d doc.Doc) {
	if len(s.links) == 0 {
		s.leaf = doc.Concat(s.leaf, d)
		return
	}

	last := s.links[len(s.links)-1]
	last.payload = doc.Concat(last.payload, d)
}

// Links returns the number of visible links
func (s *Stylist) Links() int {
	return len(s.links)
}

// Doc returns the layout of the processed chain. A chain without links is
// its leaf. A single link under BreakSingle is always flat. Otherwise the
// renderer chooses between the flat and the broken form.
func (s *Stylist) Doc(style Style) doc.Doc {
	if len(s.links) == 0 {
		return s.leaf
	}

	flat := []doc.Doc{s.leaf}
	broken := []doc.Doc{}

	for _, l := range s.links {
		// a line comment in a flat link still breaks; keep what follows indented
		flat = append(flat, doc.Indent(l.flat(style)))
		broken = append(broken, doc.HardLine, l.broken(style))
	}

	if len(s.links) == 1 && style.BreakSingle {
		return doc.Concat(flat...)
	}

	return doc.Choice(
		doc.Concat(flat...),
		doc.Concat(s.leaf, doc.Indent(doc.Concat(broken...))),
	)
}

func (l *link) flat(style Style) doc.Doc {
	var parts []doc.Doc

	if len(l.before) > 0 {
		parts = append(parts, doc.Text(" "), comments(l.before))
	} else if style.SpaceAroundSeparator {
		parts = append(parts, doc.Text(" "))
	}

	parts = append(parts, doc.Text(l.separator), l.tail(style))

	return doc.Concat(parts...)
}

func (l *link) broken(style Style) doc.Doc {
	return doc.Concat(comments(l.before), doc.Text(l.separator), l.tail(style))
}

func (l *link) tail(style Style) doc.Doc {
	switch {
	case len(l.after) > 0:
		return doc.Concat(doc.Text(" "), comments(l.after), l.payload)
	case style.SpaceAroundSeparator:
		return doc.Concat(doc.Text(" "), l.payload)
	default:
		return l.payload
	}
}

// comments renders each comment followed by what must come after it: a space
// for block comments, a line break for line comments
func comments(nodes []*syntax.Node) doc.Doc {
	parts := make([]doc.Doc, 0, len(nodes)*2)

	for _, c := range nodes {
		parts = append(parts, doc.Text(c.Text))

		if c.Kind == syntax.LineComment {
			parts = append(parts, doc.HardLine)
		} else {
			parts = append(parts, doc.Text(" "))
		}
	}

	return doc.Concat(parts...)
}
