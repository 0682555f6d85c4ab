package main

import (
	"fmt"
	"os"

	"github.com/harish-garg/droidctl/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		// The result JSON is already on stdout for execution errors;
		// only flag-parse failures still need printing.
		if !cli.IsPrintedError(err) {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		}
		os.Exit(cli.ExitCode(err))
	}
}
