package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harish-garg/droidctl/internal/audit"
	"github.com/harish-garg/droidctl/internal/executor"
)

// Exit codes: 0 success (done included), 1 missing or malformed input,
// 3 any validation, connectivity, command or unexpected error.
const (
	exitInput     = 1
	exitExecution = 3
)

func runExecute(cmd *cobra.Command, args []string) error {
	input := actionJSON
	if input == "" {
		if isStdinTTY() {
			fmt.Fprintln(os.Stderr, "Reading action JSON from stdin (Ctrl-D to finish)...")
		}
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return emit(executor.Result{
				Status:  executor.StatusError,
				Message: "Failed to read stdin: " + err.Error(),
			}, exitInput)
		}
		input = string(data)
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return emit(executor.Result{
			Status:  executor.StatusError,
			Message: "No action provided. Use --json flag or pipe JSON via stdin",
		}, exitInput)
	}

	var value any
	if err := json.Unmarshal([]byte(input), &value); err != nil {
		return emit(executor.Result{
			Status:  executor.StatusError,
			Message: "Invalid JSON: " + err.Error(),
		}, exitInput)
	}

	if obj, ok := value.(map[string]any); ok {
		if reason, ok := obj["reason"].(string); ok && reason != "" {
			debugf("action reason: %s", reason)
		}
	}

	bridge := bridgeFactory.NewBridge(deviceSerial)
	exec := executor.New(bridge, audit.New(audit.DefaultPath))
	result := exec.Execute(value)
	debugf("result: %s %s", result.Status, result.Message)

	if result.Status == executor.StatusError {
		return emit(result, exitExecution)
	}
	return emit(result, 0)
}

// emit prints the result as pretty-printed JSON to stdout on every path, so
// callers always parse a uniform response shape. A non-zero code becomes an
// ExitError for main to map.
func emit(result executor.Result, code int) error {
	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		// Result is a flat struct of strings; this cannot happen.
		return &ExitError{Code: exitExecution, Message: err.Error()}
	}
	fmt.Fprintln(os.Stdout, string(out))

	if code == 0 {
		return nil
	}
	return &ExitError{Code: code, Message: result.Message}
}
