// Package cli is the transport adapter: it reads one action as JSON from a
// flag or stdin, runs it through the executor, and prints the result to
// stdout as JSON.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Version is set at build time.
var Version = "dev"

// Debug enables verbose debug output.
var Debug bool

// NoColor disables color output.
var NoColor bool

// actionJSON holds the --json flag value; empty means read stdin.
var actionJSON string

// deviceSerial holds the --device flag value for multi-device setups.
var deviceSerial string

var rootCmd = &cobra.Command{
	Use:   "droidctl",
	Short: "Android action executor for AI agents",
	Long: `droidctl executes a single action (tap, type, home, back, wait, done)
against a connected Android device via adb and reports a structured JSON
result. It is the action step of an agent loop; the loop itself drives
repeated invocations and stops when it sees a "done" result.

Examples:
  echo '{"action":"tap","coordinates":[540,1200]}' | droidctl
  droidctl --json '{"action":"type","text":"hello world"}'
  droidctl --json '{"action":"home"}' --device emulator-5554`,
	Version:       Version,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runExecute,
}

func init() {
	rootCmd.Flags().StringVar(&actionJSON, "json", "", "Action JSON string (alternative to stdin)")
	rootCmd.Flags().StringVar(&deviceSerial, "device", "", "Target device serial (adb -s)")
	rootCmd.PersistentFlags().BoolVar(&Debug, "debug", false, "Enable verbose debug output")
	rootCmd.PersistentFlags().BoolVar(&NoColor, "no-color", false, "Disable color output")
	rootCmd.SetVersionTemplate(`droidctl version {{.Version}}
Repository: https://github.com/harish-garg/droidctl
Report issues: https://github.com/harish-garg/droidctl/issues/new
`)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExitError carries the process exit code for a failed invocation whose
// result has already been printed to stdout.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string { return e.Message }

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	// Flag-parse and other cobra errors.
	return 1
}

// IsPrintedError reports whether the error's result was already emitted on
// stdout, so main must not print it again.
func IsPrintedError(err error) bool {
	var exitErr *ExitError
	return errors.As(err, &exitErr)
}

// debugf logs a debug message to stderr if debug mode is enabled.
// stdout stays pure JSON.
func debugf(format string, args ...any) {
	if !Debug {
		return
	}
	if shouldUseColor() {
		color.New(color.FgCyan).Fprint(os.Stderr, "[DEBUG] ")
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	} else {
		fmt.Fprintf(os.Stderr, "[DEBUG] "+format+"\n", args...)
	}
}

// shouldUseColor determines if color output should be used based on flags
// and environment.
func shouldUseColor() bool {
	if NoColor {
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(os.Stderr.Fd()))
}

// isStdinTTY returns true if stdin is a terminal.
func isStdinTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
