package formatter

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// DefaultLanguages are the fenced block info strings formatted in Markdown files
var DefaultLanguages = []string{"typc"}

// MarkdownFormatter formats typ-code fenced blocks within Markdown files
type MarkdownFormatter struct {
	formatter *Formatter
	languages []string
	markdown  goldmark.Markdown
}

// NewMarkdownFormatter creates a new Markdown formatter. Without languages
// the DefaultLanguages are used.
func NewMarkdownFormatter(formatter *Formatter, languages ...string) *MarkdownFormatter {
	if len(languages) == 0 {
		languages = DefaultLanguages
	}

	normalized := make([]string, len(languages))
	for i, lang := range languages {
		normalized[i] = strings.ToLower(lang)
	}

	return &MarkdownFormatter{
		formatter: formatter,
		languages: normalized,
		markdown:  goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// codeBlock is the byte range of a fenced block's content
type codeBlock struct {
	start  int
	stop   int
	prefix string
	code   string
}

// Format formats the typ-code blocks of a Markdown document. Everything
// outside the blocks is kept byte for byte; blocks that fail to format are
// left untouched.
func (f *MarkdownFormatter) Format(markdown string) (string, error) {
	content := []byte(markdown)

	blocks, err := f.findBlocks(content)
	if err != nil {
		return "", fmt.Errorf("error reading markdown: %w", err)
	}

	var result bytes.Buffer

	last := 0

	for _, block := range blocks {
		result.Write(content[last:block.start])

		formatted, err := f.formatter.Format(block.code)
		if err != nil {
			f.formatter.logger.Warn().Err(err).Int("offset", block.start).Msg("code block left as is")
			result.Write(content[block.start:block.stop])
		} else {
			result.WriteString(reindent(formatted, block.prefix))
		}

		last = block.stop
	}

	result.Write(content[last:])

	return result.String(), nil
}

func (f *MarkdownFormatter) findBlocks(content []byte) ([]codeBlock, error) {
	root := f.markdown.Parser().Parse(text.NewReader(content))

	var blocks []codeBlock

	err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		fenced, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}

		var info string
		if fenced.Info != nil {
			info = strings.ToLower(strings.TrimSpace(string(fenced.Info.Value(content))))
		}

		if fields := strings.Fields(info); len(fields) == 0 || !slices.Contains(f.languages, fields[0]) {
			return ast.WalkSkipChildren, nil
		}

		lines := fenced.Lines()
		if lines.Len() == 0 {
			return ast.WalkSkipChildren, nil
		}

		var code strings.Builder

		for i := range lines.Len() {
			line := lines.At(i)
			if line.Padding > 0 {
				// tabs expanded inside a container; the byte range is not contiguous
				return ast.WalkSkipChildren, nil
			}

			code.Write(line.Value(content))
		}

		start := lines.At(0).Start
		lineStart := bytes.LastIndexByte(content[:start], '\n') + 1

		blocks = append(blocks, codeBlock{
			start:  start,
			stop:   lines.At(lines.Len() - 1).Stop,
			prefix: string(content[lineStart:start]),
			code:   code.String(),
		})

		return ast.WalkSkipChildren, nil
	})

	return blocks, err
}

// reindent prefixes every line but the first with the container prefix
// (list indentation or blockquote markers). The first line's prefix is still
// in the surrounding text.
func reindent(code, prefix string) string {
	if prefix == "" {
		return code
	}

	lines := strings.Split(strings.TrimSuffix(code, "\n"), "\n")
	for i := 1; i < len(lines); i++ {
		if lines[i] == "" {
			lines[i] = strings.TrimRight(prefix, " \t")
		} else {
			lines[i] = prefix + lines[i]
		}
	}

	return strings.Join(lines, "\n") + "\n"
}

// FormatFromReader formats typ-code blocks from a reader and writes to a writer
func (f *MarkdownFormatter) FormatFromReader(reader io.Reader, writer io.Writer) error {
	input, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	formatted, err := f.Format(string(input))
	if err != nil {
		return fmt.Errorf("failed to format markdown: %w", err)
	}

	_, err = writer.Write([]byte(formatted))

	return err
}

// IsMarkdownFile checks if a file is a Markdown file
func IsMarkdownFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext == ".md" || ext == ".markdown"
}
