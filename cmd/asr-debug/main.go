// asr-debug runs auto splitter scripts against an in-process timer.
//
// Usage:
//
//	asr-debug run <script.wasm>       - Step a script and watch the timer
//	asr-debug settings <script.wasm>  - List the settings a script declares
//
// Global flags:
//
//	--log-level <level>  - Engine log level (default: warn)
//	--log-file <path>    - Write the engine log to a file instead of stderr
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/wippyai/asr-runtime/asr"
	"github.com/wippyai/asr-runtime/session"
)

var (
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "asr-debug",
	Short: "Run auto splitter scripts against a debug timer",
	Long: `asr-debug loads an auto splitter script, steps it at the rate the
script asks for and shows what it does to the timer.

Examples:
  asr-debug settings splitter.wasm
  asr-debug run splitter.wasm
  asr-debug run splitter.wasm --set split_start=false
  asr-debug run splitter.wasm --config run.yaml --plain`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Engine log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write the engine log to this file")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(settingsCmd)
}

// newLogger builds the engine logger. With quiet set and no log file the
// logger is a no-op so nothing draws over the TUI.
func newLogger(quiet bool) (*zap.Logger, error) {
	if quiet && flagLogFile == "" {
		return zap.NewNop(), nil
	}
	lvl, err := zapcore.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	zc := zap.NewDevelopmentConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.DisableStacktrace = true
	if flagLogFile != "" {
		zc.OutputPaths = []string{flagLogFile}
		zc.ErrorOutputPaths = []string{flagLogFile}
	} else {
		zc.OutputPaths = []string{"stderr"}
	}
	return zc.Build()
}

// installLogger points the library loggers at l.
func installLogger(l *zap.Logger) {
	asr.SetLogger(l.Named("engine"))
	session.SetLogger(l.Named("session"))
}
