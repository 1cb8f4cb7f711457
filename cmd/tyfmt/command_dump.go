package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/repr"
	"github.com/shibukawa/tyfmt/doc"
	"github.com/shibukawa/tyfmt/parser"
	"github.com/shibukawa/tyfmt/printer"
)

// DumpCmd represents the dump command
type DumpCmd struct {
	Input string `arg:"" optional:"" help:"Input file (default: stdin)"`
	Doc   bool   `help:"Print the layout document instead of the syntax tree"`
	Tree  bool   `short:"t" help:"Print the compact S-expression form of the syntax tree"`

	out io.Writer
}

// Run executes the dump command
func (cmd *DumpCmd) Run(ctx *Context) error {
	out := cmd.out
	if out == nil {
		out = os.Stdout
	}

	var (
		input []byte
		err   error
	)

	if cmd.Input == "" {
		input, err = io.ReadAll(os.Stdin)
	} else {
		input, err = os.ReadFile(cmd.Input)
	}

	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	root, err := parser.Parse(string(input))
	if err != nil {
		return fmt.Errorf("failed to parse: %w", err)
	}

	switch {
	case cmd.Doc:
		fmt.Fprintln(out, doc.Dump(printer.New(printer.WithLogger(ctx.Logger)).Print(root)))
	case cmd.Tree:
		fmt.Fprintln(out, root.String())
	default:
		fmt.Fprintln(out, repr.String(root, repr.Indent("  "), repr.OmitEmpty(true)))
	}

	return nil
}
