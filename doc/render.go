package doc

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/width"
)

// Default layout parameters
const (
	DefaultWidth       = 80
	DefaultIndentWidth = 2
)

// Options controls rendering
type Options struct {
	Width       int // maximum line width in columns
	IndentWidth int // spaces per indentation level
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}

	if o.IndentWidth <= 0 {
		o.IndentWidth = DefaultIndentWidth
	}

	return o
}

type mode int

const (
	modeBreak mode = iota
	modeFlat
)

type command struct {
	indent int
	mode   mode
	doc    Doc
}

// Render lays out d. Trailing spaces are removed from every line.
func Render(d Doc, opts Options) string {
	opts = opts.withDefaults()

	var out strings.Builder

	col := 0
	stack := []command{{indent: 0, mode: modeBreak, doc: d}}

	for len(stack) > 0 {
		cmd := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch d := cmd.doc.(type) {
		case nilDoc:
		case text:
			out.WriteString(string(d))
			col += Width(string(d))
		case verbatim:
			s := string(d)
			out.WriteString(s)

			if i := strings.LastIndexByte(s, '\n'); i >= 0 {
				col = Width(s[i+1:])
			} else {
				col += Width(s)
			}
		case concat:
			for i := len(d) - 1; i >= 0; i-- {
				stack = append(stack, command{cmd.indent, cmd.mode, d[i]})
			}
		case indent:
			stack = append(stack, command{cmd.indent + opts.IndentWidth, cmd.mode, d.doc})
		case group:
			next := command{cmd.indent, modeFlat, d.doc}
			if cmd.mode == modeBreak && !fits(next, stack, opts.Width-col) {
				next.mode = modeBreak
			}

			stack = append(stack, next)
		case choice:
			next := command{cmd.indent, modeFlat, d.flat}
			if cmd.mode == modeBreak && !fits(next, stack, opts.Width-col) {
				next = command{cmd.indent, modeBreak, d.broken}
			}

			stack = append(stack, next)
		case ifBreak:
			if cmd.mode == modeBreak {
				stack = append(stack, command{cmd.indent, cmd.mode, d.broken})
			} else {
				stack = append(stack, command{cmd.indent, cmd.mode, d.flat})
			}
		case line:
			if cmd.mode == modeFlat && d.kind != lineHard {
				if d.kind == lineSpace {
					out.WriteByte(' ')
					col++
				}

				continue
			}

			trimTrailingSpaces(&out)
			out.WriteByte('\n')
			out.WriteString(strings.Repeat(" ", cmd.indent))
			col = cmd.indent
		default:
			panic(fmt.Sprintf("doc: unknown document %T", d))
		}
	}

	trimTrailingSpaces(&out)

	return out.String()
}

// fits reports whether next, followed by the rest of the current line, fits in
// the remaining columns. rest is the pending command stack; its top is the
// last element.
func fits(next command, rest []command, remaining int) bool {
	stack := []command{next}
	restIndex := len(rest)

	for remaining >= 0 {
		if len(stack) == 0 {
			if restIndex == 0 {
				return true
			}

			restIndex--
			stack = append(stack, rest[restIndex])

			continue
		}

		cmd := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch d := cmd.doc.(type) {
		case nilDoc:
		case text:
			remaining -= Width(string(d))
		case verbatim:
			s := string(d)
			if i := strings.IndexByte(s, '\n'); i >= 0 {
				return remaining-Width(s[:i]) >= 0
			}

			remaining -= Width(s)
		case concat:
			for i := len(d) - 1; i >= 0; i-- {
				stack = append(stack, command{cmd.indent, cmd.mode, d[i]})
			}
		case indent:
			stack = append(stack, command{cmd.indent, cmd.mode, d.doc})
		case group:
			stack = append(stack, command{cmd.indent, cmd.mode, d.doc})
		case choice:
			if cmd.mode == modeFlat {
				stack = append(stack, command{cmd.indent, cmd.mode, d.flat})
			} else {
				stack = append(stack, command{cmd.indent, cmd.mode, d.broken})
			}
		case ifBreak:
			if cmd.mode == modeFlat {
				stack = append(stack, command{cmd.indent, cmd.mode, d.flat})
			} else {
				stack = append(stack, command{cmd.indent, cmd.mode, d.broken})
			}
		case line:
			if cmd.mode == modeBreak {
				return true
			}

			if d.kind == lineHard {
				return false
			}

			if d.kind == lineSpace {
				remaining--
			}
		}
	}

	return false
}

// Width is the number of terminal columns s occupies. East Asian wide and
// fullwidth runes count as two.
func Width(s string) int {
	w := 0

	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		s = s[size:]

		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			w += 2
		default:
			w++
		}
	}

	return w
}

func trimTrailingSpaces(b *strings.Builder) {
	s := b.String()

	trimmed := strings.TrimRight(s, " ")
	if len(trimmed) == len(s) {
		return
	}

	b.Reset()
	b.WriteString(trimmed)
}
