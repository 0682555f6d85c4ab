package adb

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// defaultTimeout bounds a single adb invocation. Override with
// DROIDCTL_TIMEOUT (seconds).
const defaultTimeout = 10 * time.Second

// Client runs adb commands against one device. It satisfies the executor's
// Bridge interface. A Client with an empty path reports no device and fails
// every Run with ErrADBNotFound, so a missing binary reads the same as a
// disconnected device until a command is actually attempted.
type Client struct {
	path    string
	serial  string
	timeout time.Duration
}

// NewClient returns a client for the adb binary at path. serial targets one
// device when several are attached; empty means whichever device adb picks.
func NewClient(path, serial string) *Client {
	return &Client{
		path:    path,
		serial:  serial,
		timeout: timeoutFromEnv(),
	}
}

func timeoutFromEnv() time.Duration {
	if v := os.Getenv("DROIDCTL_TIMEOUT"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultTimeout
}

// Connected reports whether a device is attached and online. It parses
// `adb devices`, skipping the header line and counting only entries in the
// "device" state (offline and unauthorized entries do not qualify). When a
// serial is configured, only that device counts. Any failure to run adb
// reads as not connected.
func (c *Client) Connected() bool {
	stdout, _, code, err := c.exec("devices")
	if err != nil || code != 0 {
		return false
	}

	for i, line := range strings.Split(stdout, "\n") {
		// Skip the "List of devices attached" header
		if i == 0 || strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 || fields[1] != "device" {
			continue
		}
		if c.serial != "" && fields[0] != c.serial {
			continue
		}
		return true
	}
	return false
}

// Run executes one adb command and returns its trimmed stdout, stderr and
// exit code. A non-zero device-side exit code is not an error; err reports
// invocation faults only (binary missing, timeout, spawn failure). When a
// serial is configured the command is prefixed with `-s <serial>`.
func (c *Client) Run(args ...string) (stdout, stderr string, exitCode int, err error) {
	if c.serial != "" {
		args = append([]string{"-s", c.serial}, args...)
	}
	return c.exec(args...)
}

func (c *Client) exec(args ...string) (string, string, int, error) {
	if c.path == "" {
		return "", "", 0, ErrADBNotFound
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, c.path, args...)
	// Don't hang on orphaned output pipes after the kill signal.
	cmd.WaitDelay = time.Second
	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	runErr := cmd.Run()
	stdout := strings.TrimSpace(outBuf.String())
	stderr := strings.TrimSpace(errBuf.String())

	if runErr != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return stdout, stderr, 0, fmt.Errorf("adb command timed out after %s", c.timeout)
		}
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			return stdout, stderr, exitErr.ExitCode(), nil
		}
		return stdout, stderr, 0, fmt.Errorf("adb invocation failed: %w", runErr)
	}

	return stdout, stderr, 0, nil
}
