// Package audit appends one line per dispatch attempt to the execution log.
// The log is a write-only audit trail for external inspection; droidctl
// never reads it back.
package audit

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DefaultPath is the execution log location relative to the working directory.
const DefaultPath = "logs/execution.log"

// StatusSuccess is the status recorded for a completed dispatch.
const StatusSuccess = "SUCCESS"

// Log appends formatted entries to a fixed file path. Writes are best-effort:
// a failure to log must never turn a successful action into a failure, so
// every error is swallowed. Concurrent droidctl processes interleave entries
// at line granularity; no locking is attempted.
type Log struct {
	path string
	now  func() time.Time
}

// New returns a log writing to path. The containing directory is created on
// first write.
func New(path string) *Log {
	return &Log{path: path, now: time.Now}
}

// ErrorStatus formats the status column for a failed dispatch.
func ErrorStatus(detail string) string {
	return "ERROR: " + detail
}

// Record appends one entry in the form
//
//	[YYYY-MM-DD HH:MM:SS] ACTION: <type>(<details>) -> <status>
//
// A nil receiver and any filesystem error are silently ignored.
func (l *Log) Record(actionType, details, status string) {
	if l == nil {
		return
	}
	if dir := filepath.Dir(l.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return
		}
	}
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()

	timestamp := l.now().Format("2006-01-02 15:04:05")
	fmt.Fprintf(f, "[%s] ACTION: %s(%s) -> %s\n", timestamp, actionType, details, status)
}
