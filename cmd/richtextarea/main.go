// Package main is the entry point for the richtextarea tool.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/richtextarea/internal/app"
	"github.com/dshills/richtextarea/internal/config"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	ConfigPath string
	ScriptPath string
	LogLevel   string
	Markup     bool
	Page       string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load configuration: %v\n", err)
		return 1
	}
	if opts.LogLevel != "" {
		cfg.Logging.Level = opts.LogLevel
	}
	logger := app.NewLogger(os.Stderr, cfg.Logging)

	script := &app.Script{}
	if opts.ScriptPath != "" {
		f, err := os.Open(opts.ScriptPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		script, err = app.ParseScript(f)
		f.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	var page io.Reader = os.Stdin
	if opts.Page != "" && opts.Page != "-" {
		f, err := os.Open(opts.Page)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		defer f.Close()
		page = f
	}

	// Handle signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	res, err := app.New(cfg, app.WithLogger(logger)).Run(ctx, page, script)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if opts.Markup {
		fmt.Println(res.Markup)
	} else {
		fmt.Println(res.Value)
	}
	if !res.Valid {
		return 2
	}
	return 0
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file (.toml, .yaml)")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.ScriptPath, "script", "", "Interaction script (YAML)")
	flag.StringVar(&opts.ScriptPath, "s", "", "Interaction script (shorthand)")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.BoolVar(&opts.Markup, "markup", false, "Print the whole page instead of the field value")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "richtextarea - replay toolbar interactions against a rich text field\n\n")
		fmt.Fprintf(os.Stderr, "Usage: richtextarea [options] [page.html]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  richtextarea page.html                Print the initial field value\n")
		fmt.Fprintf(os.Stderr, "  richtextarea -s bold.yaml page.html   Replay a script\n")
		fmt.Fprintf(os.Stderr, "  richtextarea -markup < page.html      Print the bound page\n")
		fmt.Fprintf(os.Stderr, "\nExit status is 2 when the field is left invalid.\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("richtextarea %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	// Validate log level
	switch opts.LogLevel {
	case "", "debug", "info", "warn", "error":
		// Valid
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.LogLevel)
		os.Exit(1)
	}

	if flag.NArg() > 1 {
		fmt.Fprintf(os.Stderr, "Error: expected at most one page, got %d\n", flag.NArg())
		os.Exit(1)
	}
	opts.Page = flag.Arg(0)

	return opts
}
