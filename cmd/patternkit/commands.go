package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dshills/patternkit/internal/document"
	"github.com/dshills/patternkit/internal/history"
	"github.com/dshills/patternkit/internal/logging"
	"github.com/dshills/patternkit/internal/retry"
	"github.com/dshills/patternkit/internal/script"
)

var errUsage = errors.New("usage")

func (e *env) newHistory() *history.Manager {
	return history.NewManager(
		history.WithMaxEntries(e.cfg.History.MaxEntries),
		history.WithLogger(logging.WithComponent(e.logger, "history")),
	)
}

// runDemo walks through the history manager and a retry execution.
func runDemo(ctx context.Context, e *env) error {
	out := e.stdout
	doc := document.New("")
	mgr := e.newHistory()

	fmt.Fprintln(out, "== History")
	for _, text := range []string{"A", "B", "C"} {
		mgr.SaveState(doc)
		doc.SetText(text)
		fmt.Fprintf(out, "edit      -> %q\n", doc.Text())
	}

	mgr.Undo(doc)
	fmt.Fprintf(out, "undo      -> %q\n", doc.Text())
	mgr.Undo(doc)
	fmt.Fprintf(out, "undo      -> %q\n", doc.Text())
	mgr.Redo(doc)
	fmt.Fprintf(out, "redo      -> %q\n", doc.Text())

	mgr.CreateCheckpoint("stable", doc)
	if err := doc.SetAttribute("bold", "true"); err != nil {
		return err
	}
	doc.Append(" (experimental)")
	fmt.Fprintf(out, "edit      -> %q [%s]\n", doc.Text(), doc.Format())

	mgr.RestoreCheckpoint("stable", doc)
	fmt.Fprintf(out, "restore   -> %q [%s]\n", doc.Text(), doc.Format())
	fmt.Fprintf(out, "redo ok?     %t\n", mgr.Redo(doc))
	fmt.Fprintf(out, "checkpoints  %v\n", mgr.ListCheckpoints())

	fmt.Fprintln(out)
	fmt.Fprintln(out, "== Retry")
	policy := retry.Exponential(3, 10*time.Millisecond)
	return simulate(ctx, e, policy, 2)
}

// runScript runs a Lua file against a fresh document.
func runScript(ctx context.Context, e *env, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: script <file.lua>", errUsage)
	}

	doc := document.New("")
	mgr := e.newHistory()

	s := script.NewSession(doc, mgr,
		script.WithOutput(e.stdout),
		script.WithLogger(logging.WithComponent(e.logger, "script")),
	)
	defer s.Close()

	if err := s.RunFile(ctx, args[0]); err != nil {
		return err
	}

	e.logger.Info("script finished",
		"file", args[0],
		"length", doc.Len(),
		"undo", mgr.UndoCount(),
		"redo", mgr.RedoCount(),
		"checkpoints", len(mgr.ListCheckpoints()),
	)
	return nil
}

// runRetry runs a simulated flaky operation under the configured policy.
func runRetry(ctx context.Context, e *env, args []string) error {
	fs := flag.NewFlagSet("retry", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	failures := fs.Int("fail", 2, "Number of times the operation fails before succeeding")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: retry [-fail N]: %v", errUsage, err)
	}
	if *failures < 0 {
		return fmt.Errorf("%w: -fail must not be negative", errUsage)
	}

	policy, err := retry.FromConfig(e.cfg.Retry)
	if err != nil {
		return err
	}
	return simulate(ctx, e, policy, *failures)
}

// simulate runs an operation that fails the given number of times.
func simulate(ctx context.Context, e *env, policy retry.Policy, failures int) error {
	out := e.stdout
	exec := retry.New(policy,
		retry.WithLogger(logging.WithComponent(e.logger, "retry")),
		retry.WithOnRetry(func(attempt int, err error, delay time.Duration) {
			fmt.Fprintf(out, "attempt %d failed: %v; retrying in %s\n", attempt, err, delay)
		}),
	)
	fmt.Fprintf(out, "policy: %v\n", exec.Policy())

	attempt := 0
	result, err := retry.DoValue(ctx, exec, func(context.Context) (string, error) {
		attempt++
		if attempt <= failures {
			return "", fmt.Errorf("simulated failure %d of %d", attempt, failures)
		}
		return fmt.Sprintf("succeeded on attempt %d", attempt), nil
	})
	if errors.Is(err, retry.ErrCancelled) {
		fmt.Fprintf(out, "cancelled: %v\n", err)
		return err
	}
	if err != nil {
		fmt.Fprintf(out, "gave up: %v\n", err)
		return err
	}

	fmt.Fprintln(out, result)
	return nil
}
