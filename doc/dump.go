package doc

import (
	"fmt"
	"strings"
)

// Dump renders the structure of d for debugging
func Dump(d Doc) string {
	var b strings.Builder
	dump(&b, d)

	return b.String()
}

func dump(b *strings.Builder, d Doc) {
	switch d := d.(type) {
	case nilDoc:
		b.WriteString("nil")
	case text:
		fmt.Fprintf(b, "%q", string(d))
	case verbatim:
		fmt.Fprintf(b, "verbatim(%q)", string(d))
	case line:
		b.WriteString([...]string{"line", "softline", "hardline"}[d.kind])
	case concat:
		b.WriteString("[")

		for i, part := range d {
			if i > 0 {
				b.WriteString(" ")
			}

			dump(b, part)
		}

		b.WriteString("]")
	case indent:
		wrap(b, "indent", d.doc)
	case group:
		wrap(b, "group", d.doc)
	case choice:
		wrap(b, "choice", d.flat, d.broken)
	case ifBreak:
		wrap(b, "ifBreak", d.broken, d.flat)
	}
}

func wrap(b *strings.Builder, name string, docs ...Doc) {
	b.WriteString(name)
	b.WriteString("(")

	for i, d := range docs {
		if i > 0 {
			b.WriteString(", ")
		}

		dump(b, d)
	}

	b.WriteString(")")
}
