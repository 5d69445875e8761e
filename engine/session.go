package engine

import (
	"fmt"
	"strings"
)

// ============================================================================
// SESSION — Chart request state machine
// ============================================================================
//
//   Idle ──Compute──▶ Computing ──▶ Ready
//                              └──▶ NoData
//
// Every Compute starts over from the records it is given. Nothing from a
// previous Result is reused, so a change of dataset, dimension, style or
// canvas is just another Compute call.
// ============================================================================

// State is the display state of a chart request.
type State int

const (
	StateIdle State = iota
	StateComputing
	StateReady
	StateNoData
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateComputing:
		return "computing"
	case StateReady:
		return "ready"
	case StateNoData:
		return "no_data"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *State) UnmarshalText(b []byte) error {
	switch strings.ToLower(string(b)) {
	case "idle":
		*s = StateIdle
	case "computing":
		*s = StateComputing
	case "ready":
		*s = StateReady
	case "no_data", "nodata":
		*s = StateNoData
	default:
		return fmt.Errorf("unknown state %q", string(b))
	}
	return nil
}

// Terminal reports whether s is a display state a Compute can end in.
func (s State) Terminal() bool {
	return s == StateReady || s == StateNoData
}

// Session tracks one host chart through its states.
// A Session is not safe for concurrent use; give each chart its own.
type Session struct {
	opts   []Option
	state  State
	result *Result
}

// NewSession returns an idle session that applies opts to every Compute.
func NewSession(opts ...Option) *Session {
	return &Session{opts: opts}
}

// State returns the current state.
func (s *Session) State() State { return s.state }

// Result returns the last computed result, or nil while idle.
func (s *Session) Result() *Result { return s.result }

// Compute runs req against view and moves the session to Ready or NoData.
// On error the session returns to Idle and keeps no result.
func (s *Session) Compute(view RecordView, req ChartRequest) (*Result, error) {
	s.state = StateComputing
	s.result = nil

	res, err := Execute(view, req, s.opts...)
	if err != nil {
		s.state = StateIdle
		return nil, err
	}
	s.state = res.State
	s.result = res
	return res, nil
}

// Reset drops the last result and returns to Idle.
func (s *Session) Reset() {
	s.state = StateIdle
	s.result = nil
}
