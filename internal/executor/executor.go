// Package executor turns one decoded action request into one adb command
// and reports a structured result: validate, gate on connectivity, dispatch,
// log, report.
package executor

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/harish-garg/droidctl/internal/action"
	"github.com/harish-garg/droidctl/internal/audit"
)

// Bridge is the device-bridge capability the executor needs: a connectivity
// check and a synchronous command runner. Implementations wrap the adb
// binary; tests substitute a fake.
type Bridge interface {
	// Connected reports whether a device is attached and online.
	Connected() bool
	// Run executes one bridge command. A non-zero device-side exit code is
	// returned in exitCode with err nil; err reports invocation faults only.
	Run(args ...string) (stdout, stderr string, exitCode int, err error)
}

// Result statuses.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Result is the uniform outcome of one execution, emitted as JSON. Success
// echoes the action kind; errors carry only the message.
type Result struct {
	Status  string `json:"status"`
	Action  string `json:"action,omitempty"`
	Message string `json:"message"`
}

func successResult(kind action.Kind, message string) Result {
	return Result{Status: StatusSuccess, Action: string(kind), Message: message}
}

func errorResult(message string) Result {
	return Result{Status: StatusError, Message: message}
}

// waitDuration is the fixed pause for the wait action.
const waitDuration = 2 * time.Second

// spaceEscape is adb's `input text` token for a literal space. The
// substitution is cosmetic to the transport: logs and messages carry the
// original text. Text already containing the token is passed through
// unchanged, so that edge stays lossy.
const spaceEscape = "%s"

// Executor runs one action against a device bridge. Every execution path
// yields exactly one Result and never panics; only paths that reach dispatch
// also write exactly one audit log entry.
type Executor struct {
	bridge Bridge
	log    *audit.Log
	sleep  func(time.Duration)
}

// New returns an executor over the given bridge, recording dispatch attempts
// to log.
func New(bridge Bridge, log *audit.Log) *Executor {
	return &Executor{
		bridge: bridge,
		log:    log,
		sleep:  time.Sleep,
	}
}

// Execute validates the untyped JSON value, confirms connectivity for
// device-touching actions, and dispatches. Validation and connectivity
// failures produce no log entry.
func (e *Executor) Execute(v any) Result {
	act, err := action.Decode(v)
	if err != nil {
		return errorResult(err.Error())
	}

	// wait and done need no device, so they bypass the gate.
	switch act.(type) {
	case action.Wait, action.Done:
	default:
		if !e.bridge.Connected() {
			return errorResult("No Android device connected")
		}
	}

	return e.dispatch(act)
}

// dispatch issues the device command for one validated action. Any fault
// below this point is caught here: nothing propagates to the caller beyond
// an error Result.
func (e *Executor) dispatch(act action.Action) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			detail := fmt.Sprintf("%v", r)
			e.log.Record(string(act.Kind()), "", audit.ErrorStatus(detail))
			res = errorResult("Execution error: " + detail)
		}
	}()

	switch a := act.(type) {
	case action.Tap:
		detail := strconv.Itoa(a.X) + "," + strconv.Itoa(a.Y)
		return e.deviceCommand(act.Kind(), detail,
			"Tap failed: ",
			fmt.Sprintf("Tapped at (%d, %d)", a.X, a.Y),
			"shell", "input", "tap", strconv.Itoa(a.X), strconv.Itoa(a.Y))

	case action.TypeText:
		encoded := strings.ReplaceAll(a.Text, " ", spaceEscape)
		return e.deviceCommand(act.Kind(), a.Text,
			"Type failed: ",
			"Typed: "+a.Text,
			"shell", "input", "text", encoded)

	case action.Home:
		return e.deviceCommand(act.Kind(), "",
			"Home failed: ",
			"Pressed Home button",
			"shell", "input", "keyevent", "KEYCODE_HOME")

	case action.Back:
		return e.deviceCommand(act.Kind(), "",
			"Back failed: ",
			"Pressed Back button",
			"shell", "input", "keyevent", "KEYCODE_BACK")

	case action.Wait:
		e.sleep(waitDuration)
		e.log.Record(string(act.Kind()), "2s", audit.StatusSuccess)
		return successResult(act.Kind(), "Waited 2 seconds")

	case action.Done:
		e.log.Record(string(act.Kind()), "", audit.StatusSuccess)
		return successResult(act.Kind(), "Goal achieved - task complete")
	}

	// Unreachable: action.Decode only produces the variants above.
	return errorResult(fmt.Sprintf("Execution error: unhandled action kind %q", act.Kind()))
}

// deviceCommand runs one bridge command and translates its outcome: each
// branch logs exactly once and builds exactly one result.
func (e *Executor) deviceCommand(kind action.Kind, detail, failPrefix, successMsg string, args ...string) Result {
	_, stderr, code, err := e.bridge.Run(args...)
	if err != nil {
		e.log.Record(string(kind), "", audit.ErrorStatus(err.Error()))
		return errorResult("Execution error: " + err.Error())
	}
	if code != 0 {
		e.log.Record(string(kind), detail, audit.ErrorStatus(stderr))
		return errorResult(failPrefix + stderr)
	}
	e.log.Record(string(kind), detail, audit.StatusSuccess)
	return successResult(kind, successMsg)
}
