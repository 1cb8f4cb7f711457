package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/shibukawa/tyfmt"
)

// version is set at build time
var version = "v0.1.0"

// Context represents the global context for commands
type Context struct {
	Config  string
	Verbose bool
	Quiet   bool
	Logger  zerolog.Logger
}

// newLogger returns a console logger at debug level in verbose mode and a
// disabled one otherwise
func newLogger(verbose bool) zerolog.Logger {
	if !verbose {
		return zerolog.Nop()
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(zerolog.DebugLevel).
		With().Timestamp().Logger()
}

// CLI represents the command-line interface
var CLI struct {
	Config  string     `help:"Configuration file path" default:"tyfmt.yaml"`
	Verbose bool       `help:"Enable verbose output" short:"v"`
	Quiet   bool       `help:"Suppress output" short:"q"`
	Format  FormatCmd  `cmd:"" help:"Format typ-code files and Markdown code blocks"`
	Dump    DumpCmd    `cmd:"" help:"Print the syntax tree of a typ-code file"`
	Version VersionCmd `cmd:"" help:"Show version information"`
}

// VersionCmd represents the version command
type VersionCmd struct{}

// Run executes the version command
func (cmd *VersionCmd) Run() error {
	fmt.Println("tyfmt " + version)
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("tyfmt"),
		kong.Description("Chain-aware formatter for typ-code"),
		kong.UsageOnError(),
	)

	appCtx := &Context{
		Config:  CLI.Config,
		Verbose: CLI.Verbose,
		Quiet:   CLI.Quiet,
		Logger:  newLogger(CLI.Verbose),
	}

	err := ctx.Run(appCtx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(ctx *Context) (*tyfmt.Config, error) {
	config, err := tyfmt.LoadConfig(ctx.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	ctx.Logger.Debug().
		Str("path", ctx.Config).
		Int("max_width", config.MaxWidth).
		Int("indent_width", config.IndentWidth).
		Strs("extensions", config.Extensions).
		Msg("config loaded")

	return config, nil
}
