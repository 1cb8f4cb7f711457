package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
	"github.com/shibukawa/tyfmt/formatter"
)

var (
	ErrFileNotFormatted = errors.New("file is not formatted")
	ErrFormattingErrors = errors.New("some files had formatting errors")
	ErrOutputWithDir    = errors.New("--output cannot be used with a directory")
)

// FormatCmd represents the format command
type FormatCmd struct {
	Input  string `arg:"" optional:"" help:"Input file or directory (default: stdin)"`
	Output string `short:"o" help:"Output file (default: stdout, or overwrite input file)"`
	Write  bool   `short:"w" help:"Write result to input file instead of stdout"`
	Check  bool   `short:"c" help:"Check if files are formatted (exit 1 if not)"`
	Diff   bool   `short:"d" help:"Show diff instead of rewriting files"`
	Width  int    `help:"Maximum line width (overrides max_width)"`

	stdin  io.Reader
	stdout io.Writer
}

// formatters bundles the formatters and file filters of one run
type formatters struct {
	code       *formatter.Formatter
	markdown   *formatter.MarkdownFormatter
	extensions []string
}

// Run executes the format command
func (cmd *FormatCmd) Run(ctx *Context) error {
	config, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	width := config.MaxWidth
	if cmd.Width > 0 {
		width = cmd.Width
	}

	code := formatter.NewFormatter(
		formatter.WithWidth(width),
		formatter.WithIndentWidth(config.IndentWidth),
		formatter.WithLogger(ctx.Logger),
	)
	f := &formatters{
		code:       code,
		markdown:   formatter.NewMarkdownFormatter(code, config.Markdown.Languages...),
		extensions: config.Extensions,
	}

	if cmd.Input == "" {
		stdin := cmd.stdin
		if stdin == nil {
			stdin = os.Stdin
		}

		return cmd.formatStream(f, stdin, "<stdin>")
	}

	info, err := os.Stat(cmd.Input)
	if err != nil {
		return fmt.Errorf("failed to stat input: %w", err)
	}

	if info.IsDir() {
		if cmd.Output != "" {
			return ErrOutputWithDir
		}

		return cmd.formatDirectory(ctx, f, cmd.Input)
	}

	return cmd.formatFile(ctx, f, cmd.Input)
}

func (cmd *FormatCmd) out() io.Writer {
	if cmd.stdout != nil {
		return cmd.stdout
	}

	return os.Stdout
}

// format formats file content according to its type
func (cmd *FormatCmd) format(f *formatters, input, filename string) (string, error) {
	if formatter.IsMarkdownFile(filename) {
		formatted, err := f.markdown.Format(input)
		if err != nil {
			return "", fmt.Errorf("failed to format Markdown in %s: %w", filename, err)
		}

		return formatted, nil
	}

	formatted, err := f.code.Format(input)
	if err != nil {
		return "", fmt.Errorf("failed to format %s: %w", filename, err)
	}

	return formatted, nil
}

// formatStream formats stdin and writes to the output file or stdout
func (cmd *FormatCmd) formatStream(f *formatters, reader io.Reader, filename string) error {
	input, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	formatted, err := cmd.format(f, string(input), filename)
	if err != nil {
		return err
	}

	return cmd.emit(string(input), formatted, filename, "")
}

// emit handles check, diff and output modes for one formatted source.
// target is the file to rewrite in write mode.
func (cmd *FormatCmd) emit(input, formatted, filename, target string) error {
	switch {
	case cmd.Check:
		if input != formatted {
			color.Yellow("%s is not formatted", filename)
			return ErrFileNotFormatted
		}

		return nil
	case cmd.Diff:
		_, err := io.WriteString(cmd.out(), unifiedDiff(input, formatted, filename))
		return err
	case target != "":
		if input == formatted {
			return nil
		}

		return writeFileAtomic(target, formatted)
	case cmd.Output != "":
		err := os.WriteFile(cmd.Output, []byte(formatted), 0644)
		if err != nil {
			return fmt.Errorf("failed to create output file %s: %w", cmd.Output, err)
		}

		return nil
	}

	_, err := io.WriteString(cmd.out(), formatted)

	return err
}

// formatFile formats a single file
func (cmd *FormatCmd) formatFile(ctx *Context, f *formatters, filename string) error {
	if !formatter.HasExtension(filename, f.extensions) && !formatter.IsMarkdownFile(filename) {
		if !cmd.Check && !ctx.Quiet {
			color.Yellow("Skipping non typ-code file: %s", filename)
		}

		return nil
	}

	input, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", filename, err)
	}

	formatted, err := cmd.format(f, string(input), filename)
	if err != nil {
		return err
	}

	var target string
	if cmd.Write || cmd.Output == filename {
		target = filename
	}

	return cmd.emit(string(input), formatted, filename, target)
}

// formatDirectory formats all typ-code and Markdown files in a directory recursively
func (cmd *FormatCmd) formatDirectory(ctx *Context, f *formatters, dirPath string) error {
	var hasErrors, unformatted bool

	err := filepath.WalkDir(dirPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		if !formatter.HasExtension(path, f.extensions) && !formatter.IsMarkdownFile(path) {
			return nil
		}

		err = cmd.formatFile(ctx, f, path)
		if errors.Is(err, ErrFileNotFormatted) {
			unformatted = true
			return nil
		}

		if err != nil {
			color.Red("Error formatting %s: %v", path, err)

			hasErrors = true
			// Continue processing other files
			return nil
		}

		if cmd.Write && !ctx.Quiet {
			color.Green("Formatted: %s", path)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to walk directory: %w", err)
	}

	if hasErrors {
		return ErrFormattingErrors
	}

	if unformatted {
		return ErrFileNotFormatted
	}

	return nil
}

// unifiedDiff returns the unified diff between original and formatted
// content, or an empty string when they are equal
func unifiedDiff(original, formatted, filename string) string {
	if original == formatted {
		return ""
	}

	edits := myers.ComputeEdits(span.URIFromPath(filename), original, formatted)

	return fmt.Sprint(gotextdiff.ToUnified(filename+" (original)", filename+" (formatted)", original, edits))
}

// writeFileAtomic replaces the file through a temporary file in the same directory
func writeFileAtomic(filename, content string) error {
	tempFile, err := os.CreateTemp(filepath.Dir(filename), ".tyfmt-format-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	_, err = tempFile.WriteString(content)
	if closeErr := tempFile.Close(); err == nil {
		err = closeErr
	}

	if err != nil {
		os.Remove(tempFile.Name())
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}

	if info, statErr := os.Stat(filename); statErr == nil {
		_ = os.Chmod(tempFile.Name(), info.Mode().Perm())
	}

	err = os.Rename(tempFile.Name(), filename)
	if err != nil {
		os.Remove(tempFile.Name())
		return fmt.Errorf("failed to replace %s: %w", filename, err)
	}

	return nil
}

// Help returns help text for the format command
func (cmd *FormatCmd) Help() string {
	return `Format typ-code files and Markdown files with typ-code blocks.

Member-access chains and binary operator chains are kept on one line when they
fit within the maximum width. Otherwise every link moves to its own line,
indented one level below the chain root with the separator leading:

  items
    .filter(keep)
    .map(transform)

Comments inside chains stay attached to the link they were written next to.

For Markdown files, fenced blocks whose info string is one of the configured
markdown languages (default: ` + "```typc" + `) are formatted while the rest of
the document is preserved byte for byte.

Examples:
  # Format a single file and print to stdout
  tyfmt format main.typc
  tyfmt format README.md

  # Format a file in place
  tyfmt format -w main.typc

  # Format all files in a directory
  tyfmt format -w ./src/

  # Check if files are properly formatted
  tyfmt format -c ./src/

  # Show diff of what would be changed
  tyfmt format -d main.typc

  # Format from stdin with a narrower width
  cat main.typc | tyfmt format --width 60`
}
