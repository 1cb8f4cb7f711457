package formatter

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shibukawa/tyfmt/chain"
	"github.com/shibukawa/tyfmt/doc"
	"github.com/shibukawa/tyfmt/parser"
	"github.com/shibukawa/tyfmt/printer"
)

// Option configures a Formatter
type Option func(*Formatter)

// WithWidth sets the maximum line width
func WithWidth(width int) Option {
	return func(f *Formatter) {
		f.width = width
	}
}

// WithIndentWidth sets the number of spaces per indentation level
func WithIndentWidth(width int) Option {
	return func(f *Formatter) {
		f.indentWidth = width
	}
}

// WithLogger sets the logger for layout tracing
func WithLogger(logger zerolog.Logger) Option {
	return func(f *Formatter) {
		f.logger = logger
	}
}

// Formatter formats typ-code source. It holds only options and is safe for
// concurrent use.
type Formatter struct {
	width       int
	indentWidth int
	logger      zerolog.Logger
}

// NewFormatter creates a new formatter
func NewFormatter(options ...Option) *Formatter {
	f := &Formatter{
		width:       doc.DefaultWidth,
		indentWidth: doc.DefaultIndentWidth,
		logger:      zerolog.Nop(),
	}

	for _, option := range options {
		option(f)
	}

	return f
}

// Format formats typ-code source
func (f *Formatter) Format(src string) (result string, err error) {
	root, err := parser.Parse(src)
	if err != nil {
		return "", fmt.Errorf("failed to parse: %w", err)
	}

	defer func() {
		r := recover()
		if r == nil {
			return
		}

		perr, ok := r.(error)
		if !ok || !(errors.Is(perr, chain.ErrChainContract) || errors.Is(perr, printer.ErrUnsupportedNode)) {
			panic(r)
		}

		result, err = "", fmt.Errorf("failed to print: %w", perr)
	}()

	d := printer.New(printer.WithLogger(f.logger)).Print(root)

	if f.logger.GetLevel() <= zerolog.TraceLevel {
		f.logger.Trace().Str("doc", doc.Dump(d)).Msg("document built")
	}

	result = doc.Render(d, doc.Options{Width: f.width, IndentWidth: f.indentWidth})

	f.logger.Debug().Int("width", f.width).Int("bytes", len(result)).Msg("formatted")

	return result, nil
}

// FormatFromReader formats typ-code from a reader and writes to a writer
func (f *Formatter) FormatFromReader(reader io.Reader, writer io.Writer) error {
	input, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	formatted, err := f.Format(string(input))
	if err != nil {
		return err
	}

	_, err = io.WriteString(writer, formatted)

	return err
}

// HasExtension reports whether the file name ends with one of the extensions
func HasExtension(filename string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(filename))

	for _, e := range extensions {
		if strings.ToLower(e) == ext {
			return true
		}
	}

	return false
}
