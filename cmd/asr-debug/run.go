package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/asr-runtime/asr"
	"github.com/wippyai/asr-runtime/session"
)

var (
	flagRunConfig string
	flagRunSet    []string
	flagRunPlain  bool
	flagRunSteps  int
)

var runCmd = &cobra.Command{
	Use:   "run <script.wasm>",
	Short: "Step a script against the debug timer",
	Long: `Load a script and step it at the tick rate it asks for. The timer
state, splits, game time and script log are shown in a terminal UI, or as
plain lines when stdout is not a terminal or --plain is given.

Controls:
  s       - Start the timer
  space   - Split
  k       - Skip split
  u       - Undo split
  p       - Pause / resume
  r       - Reset
  q       - Quit

Run file (--config):
  segments: [Forest, Castle, Final boss]
  settings:
    split_start: false
  steps: 600
  memory_limit_pages: 256`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&flagRunConfig, "config", "", "Path to a run file (YAML)")
	runCmd.Flags().StringArrayVar(&flagRunSet, "set", nil, "Override a setting, key=bool (repeatable)")
	runCmd.Flags().BoolVar(&flagRunPlain, "plain", false, "Print plain lines instead of the terminal UI")
	runCmd.Flags().IntVar(&flagRunSteps, "steps", -1, "Stop after this many steps (0 = until interrupted)")
}

func runRun(cmd *cobra.Command, args []string) error {
	plain := flagRunPlain || !term.IsTerminal(int(os.Stdout.Fd()))

	log, err := newLogger(!plain)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	installLogger(log)

	rf, err := loadRunFile(flagRunConfig)
	if err != nil {
		return err
	}
	if flagRunSteps >= 0 {
		rf.Steps = flagRunSteps
	}
	store, err := buildStore(rf, flagRunSet)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	host := newDebugHost(rf.Segments)
	cfg := &asr.Config{MemoryLimitPages: rf.MemoryLimitPages, Logger: log.Named("engine")}
	sess, err := session.Open(ctx, args[0], store, host, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = sess.Close(context.Background()) }()

	log.Debug("script loaded", zap.String("path", args[0]), zap.Int("steps", rf.Steps))

	if plain {
		return runPlain(ctx, os.Stdout, sess, host, rf.Steps)
	}
	p := tea.NewProgram(newRunModel(ctx, args[0], sess, host, rf.Steps), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

// runPlain steps sess until steps is reached (0 means forever) or ctx is
// done, printing host events and script messages as they appear.
func runPlain(ctx context.Context, out io.Writer, sess *session.Session, host *debugHost, steps int) error {
	var seenEvents, seenLogs int
	wait := time.NewTimer(0)
	defer wait.Stop()

	for n := 1; steps == 0 || n <= steps; n++ {
		select {
		case <-ctx.Done():
			return nil
		case <-wait.C:
		}

		if err := sess.Step(ctx); err != nil {
			fmt.Fprintf(out, "[%6d] step failed: %v\n", n, err)
		}
		for _, e := range host.events[seenEvents:] {
			fmt.Fprintf(out, "[%6d] %-11s %s  %s\n", n, host.state, formatDuration(host.Elapsed()), e)
		}
		for _, l := range host.logs[seenLogs:] {
			fmt.Fprintf(out, "[%6d] script: %s\n", n, l)
		}
		seenEvents, seenLogs = len(host.events), len(host.logs)

		wait.Reset(sess.TickRate())
	}
	return nil
}
