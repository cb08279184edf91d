// Package main is the entry point for the patternkit command.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/patternkit/internal/config"
	"github.com/dshills/patternkit/internal/logging"
	"github.com/dshills/patternkit/internal/retry"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Exit codes.
const (
	exitOK        = 0
	exitError     = 1
	exitUsage     = 2
	exitCancelled = 130
)

// options holds the global flags.
type options struct {
	ConfigPath  string
	LogLevel    string
	ShowVersion bool
}

// env carries what every subcommand needs.
type env struct {
	cfg    *config.Config
	logger *slog.Logger
	stdout io.Writer
	stderr io.Writer
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("patternkit", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var opts options
	fs.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file")
	fs.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	fs.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.BoolVar(&opts.ShowVersion, "version", false, "Show version information")
	fs.BoolVar(&opts.ShowVersion, "v", false, "Show version information (shorthand)")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "patternkit - undo history and retry policy toolkit\n\n")
		fmt.Fprintf(stderr, "Usage: patternkit [options] <command> [args]\n\n")
		fmt.Fprintf(stderr, "Commands:\n")
		fmt.Fprintf(stderr, "  demo                 Run the history and retry demonstrations\n")
		fmt.Fprintf(stderr, "  script <file.lua>    Run a Lua session against a new document\n")
		fmt.Fprintf(stderr, "  retry [-fail N]      Run a simulated flaky operation under the configured policy\n")
		fmt.Fprintf(stderr, "\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	if opts.ShowVersion {
		fmt.Fprintf(stdout, "patternkit %s\n", version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return exitOK
	}

	if fs.NArg() == 0 {
		fs.Usage()
		return exitUsage
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: loading config: %v\n", err)
		return exitError
	}

	// Validate log level
	if opts.LogLevel != "" {
		if _, ok := logging.ParseLogLevel(opts.LogLevel); !ok {
			fmt.Fprintf(stderr, "Error: invalid log level %q\n", opts.LogLevel)
			return exitUsage
		}
		cfg.Logging.Level = opts.LogLevel
	}

	logCfg := logging.DefaultLoggerConfig()
	logCfg.Level = cfg.LogLevel()
	logCfg.Output = stderr
	logCfg.NoColor = cfg.Logging.NoColor

	e := &env{
		cfg:    cfg,
		logger: logging.New(logCfg),
		stdout: stdout,
		stderr: stderr,
	}

	cmd, cmdArgs := fs.Arg(0), fs.Args()[1:]
	switch cmd {
	case "demo":
		err = runDemo(ctx, e)
	case "script":
		err = runScript(ctx, e, cmdArgs)
	case "retry":
		err = runRetry(ctx, e, cmdArgs)
	default:
		fmt.Fprintf(stderr, "Error: unknown command %q\n", cmd)
		fs.Usage()
		return exitUsage
	}

	return exitCode(err, stderr)
}

func exitCode(err error, stderr io.Writer) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errUsage):
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	case errors.Is(err, retry.ErrCancelled), errors.Is(err, context.Canceled):
		fmt.Fprintf(stderr, "Cancelled: %v\n", err)
		return exitCancelled
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
}
