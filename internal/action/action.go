// Package action defines the vocabulary of device actions droidctl accepts
// and the rules for decoding one from untyped JSON.
package action

import (
	"errors"
	"fmt"
	"strings"
)

// Kind identifies one of the recognized action types.
type Kind string

const (
	KindTap  Kind = "tap"
	KindType Kind = "type"
	KindHome Kind = "home"
	KindBack Kind = "back"
	KindWait Kind = "wait"
	KindDone Kind = "done"
)

// Kinds lists every recognized action type in documentation order.
var Kinds = []Kind{KindTap, KindType, KindHome, KindBack, KindWait, KindDone}

// Action is a single user-interface gesture or lifecycle signal to apply to
// the device. The set of implementations is closed: Tap, TypeText, Home,
// Back, Wait and Done.
type Action interface {
	Kind() Kind
}

// Tap presses the screen at pixel position (X, Y).
type Tap struct {
	X, Y int
}

func (Tap) Kind() Kind { return KindTap }

// TypeText enters Text into the focused input field.
type TypeText struct {
	Text string
}

func (TypeText) Kind() Kind { return KindType }

// Home presses the system Home button.
type Home struct{}

func (Home) Kind() Kind { return KindHome }

// Back presses the system Back button.
type Back struct{}

func (Back) Kind() Kind { return KindBack }

// Wait pauses for a fixed interval without touching the device.
type Wait struct{}

func (Wait) Kind() Kind { return KindWait }

// Done signals that the overall goal is achieved; the agent loop driving
// droidctl is expected to stop when it sees this kind.
type Done struct{}

func (Done) Kind() Kind { return KindDone }

// Decode validates an untyped JSON value and returns the concrete action.
// Validation is pure and the error text is the user-facing message reported
// in the result. An optional free-text "reason" property may accompany any
// action; it is advisory metadata for the calling agent and ignored here,
// as are all other unrecognized properties.
func Decode(v any) (Action, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, errors.New("Action must be a JSON object")
	}

	raw, ok := obj["action"]
	if !ok {
		return nil, errors.New("Missing 'action' field")
	}

	kind, _ := raw.(string)
	switch Kind(kind) {
	case KindTap:
		return decodeTap(obj)
	case KindType:
		return decodeType(obj)
	case KindHome:
		return Home{}, nil
	case KindBack:
		return Back{}, nil
	case KindWait:
		return Wait{}, nil
	case KindDone:
		return Done{}, nil
	default:
		return nil, fmt.Errorf("Invalid action type '%v'. Must be one of: %s", raw, kindList())
	}
}

// decodeTap requires a coordinates property holding exactly two numbers.
// Fractional pixel positions are truncated to integers.
func decodeTap(obj map[string]any) (Action, error) {
	raw, ok := obj["coordinates"]
	if !ok {
		return nil, errors.New("tap action requires 'coordinates' field")
	}

	pair, ok := raw.([]any)
	if !ok || len(pair) != 2 {
		return nil, errors.New("coordinates must be [x, y] array")
	}

	x, okX := pair[0].(float64)
	y, okY := pair[1].(float64)
	if !okX || !okY {
		return nil, errors.New("coordinates must be numeric")
	}

	return Tap{X: int(x), Y: int(y)}, nil
}

// decodeType requires a text property holding a string. The empty string is
// a valid payload.
func decodeType(obj map[string]any) (Action, error) {
	raw, ok := obj["text"]
	if !ok {
		return nil, errors.New("type action requires 'text' field")
	}

	text, ok := raw.(string)
	if !ok {
		return nil, errors.New("text must be a string")
	}

	return TypeText{Text: text}, nil
}

// kindList renders the valid kinds for the unknown-type error message.
func kindList() string {
	names := make([]string, len(Kinds))
	for i, k := range Kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}
