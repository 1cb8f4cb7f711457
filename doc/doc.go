// Package doc is a Wadler-style document algebra and a width-aware renderer.
//
// Documents are immutable values. Printers build them bottom-up and Render
// decides where lines break: a Group is printed flat when its whole content
// plus the rest of the current line fits within the width, broken otherwise.
package doc

// Doc is a layout document
type Doc interface {
	isDoc()
}

func (nilDoc) isDoc()   {}
func (text) isDoc()     {}
func (verbatim) isDoc() {}
func (line) isDoc()     {}
func (concat) isDoc()   {}
func (indent) isDoc()   {}
func (group) isDoc()    {}
func (choice) isDoc()   {}
func (ifBreak) isDoc()  {}

type nilDoc struct{}

// Nil is the empty document
var Nil Doc = nilDoc{}

type text string

// Text is a single-line literal
func Text(s string) Doc {
	if s == "" {
		return Nil
	}

	return text(s)
}

type verbatim string

// Verbatim is literal text that may span lines. It is emitted unchanged and
// never re-indented.
func Verbatim(s string) Doc {
	if s == "" {
		return Nil
	}

	return verbatim(s)
}

type lineKind int

const (
	lineSpace lineKind = iota // a space when flat
	lineSoft                  // nothing when flat
	lineHard                  // always breaks
)

type line struct {
	kind lineKind
}

var (
	// Line is a space when flat and a newline when broken
	Line Doc = line{lineSpace}
	// SoftLine is nothing when flat and a newline when broken
	SoftLine Doc = line{lineSoft}
	// HardLine always breaks and forces the enclosing groups to break
	HardLine Doc = line{lineHard}
)

type concat []Doc

// Concat places documents one after another
func Concat(docs ...Doc) Doc {
	var parts concat

	for _, d := range docs {
		switch d := d.(type) {
		case nilDoc:
		case concat:
			parts = append(parts, d...)
		default:
			parts = append(parts, d)
		}
	}

	switch len(parts) {
	case 0:
		return Nil
	case 1:
		return parts[0]
	default:
		return parts
	}
}

// Join places sep between docs
func Join(sep Doc, docs ...Doc) Doc {
	parts := make([]Doc, 0, len(docs)*2)

	for i, d := range docs {
		if i > 0 {
			parts = append(parts, sep)
		}

		parts = append(parts, d)
	}

	return Concat(parts...)
}

type indent struct {
	doc Doc
}

// Indent increases the indentation of the lines broken inside d by one level
func Indent(d Doc) Doc {
	if _, ok := d.(nilDoc); ok {
		return Nil
	}

	return indent{d}
}

type group struct {
	doc Doc
}

// Group lets the renderer print d flat when it fits
func Group(d Doc) Doc {
	switch d.(type) {
	case nilDoc, text, group:
		return d
	}

	return group{d}
}

type choice struct {
	flat   Doc
	broken Doc
}

// Choice prints flat when it fits on the line, otherwise broken. Unlike a
// Group, the two layouts can differ in more than their line breaks.
func Choice(flat, broken Doc) Doc {
	return choice{flat: flat, broken: broken}
}

type ifBreak struct {
	broken Doc
	flat   Doc
}

// IfBreak selects by the mode of the enclosing group
func IfBreak(broken, flat Doc) Doc {
	return ifBreak{broken: broken, flat: flat}
}
