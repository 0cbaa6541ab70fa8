package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"errornet/pkg/crash"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var interruptAfter time.Duration

// demoFaults sind die auslösbaren Fehlerarten
var demoFaults = []string{"panic", "divide", "error", "interrupt", "goroutine"}

// demoCmd löst absichtlich einen Fehler aus, den der Reporter behandelt
var demoCmd = &cobra.Command{
	Use:   "demo [panic|divide|error|interrupt|goroutine]",
	Short: "Trigger a fault to see the crash reporter in action",
	Long: `Trigger a deliberate fault so the installed crash reporter handles it.

Faults:
  panic:      panic with a plain message
  divide:     integer division by zero (runtime error)
  error:      return an error all the way up to main
  interrupt:  wait for Ctrl+C, which passes through without a report
  goroutine:  panic inside a background goroutine

Examples:
  errornet demo divide
  errornet demo error --report-to https://example.com/issues
  errornet demo interrupt --after 2s
  errornet demo panic --error-log=false`,
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: demoFaults,
	RunE:      runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)

	demoCmd.Flags().DurationVar(&interruptAfter, "after", 0, "simulate Ctrl+C after this duration (interrupt only)")
}

func runDemo(cmd *cobra.Command, args []string) error {
	fault := args[0]
	if !isQuiet() {
		color.Cyan("🔥 Triggering fault: %s", fault)
	}
	logVerbose("report target: %q, error log: %v", reporter.Config().ReportTo, reporter.Config().ErrorLog)

	switch fault {
	case "panic":
		panic("demo panic: something went terribly wrong")
	case "divide":
		fmt.Fprintln(cmd.OutOrStdout(), divide(1, zero()))
		return nil
	case "error":
		return errors.New("demo error: configuration could not be loaded")
	case "interrupt":
		return waitForInterrupt(cmd.Context())
	case "goroutine":
		return runGoroutineFault()
	}
	return fmt.Errorf("unknown fault %q", fault)
}

// zero verhindert, dass der Compiler die Division konstant auswertet
func zero() int {
	return len(os.Args) * 0
}

func divide(a, b int) int {
	return a / b
}

// waitForInterrupt wartet auf Ctrl+C oder auf --after und meldet einen Abbruch
func waitForInterrupt(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt)
	defer stop()

	if interruptAfter > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, interruptAfter)
		defer cancel()
	}

	if !isQuiet() {
		color.Yellow("Press Ctrl+C to interrupt...")
	}
	<-ctx.Done()

	return fmt.Errorf("demo: %w", crash.ErrInterrupt)
}

// runGoroutineFault lässt eine Hintergrund-Goroutine paniken.
// Der Reporter beendet den Prozess, bevor done geschlossen wird.
func runGoroutineFault() error {
	done := make(chan struct{})
	crash.Go("demo-worker", func() {
		var m map[string]int
		m["boom"]++
		close(done)
	})

	select {
	case <-done:
		return nil
	case <-time.After(5 * time.Second):
		return errors.New("demo: goroutine fault did not terminate the process")
	}
}
