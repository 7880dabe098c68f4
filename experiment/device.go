package experiment

import (
	"context"

	"github.com/cwbudde/algo-pulse/sequence"
)

// ExecOptions carries the timing parameters of one backend execution.
// Interval is the repetition period between shots and ControlWindow the
// time reserved for control pulses before readout, both in nanoseconds.
type ExecOptions struct {
	Shots         int
	Interval      float64
	ControlWindow float64
	Mode          MeasureMode
}

// RawResult is the backend's response to one execution: per-target
// kerneled I/Q values, one per shot.
type RawResult struct {
	IQ map[string][]complex128
}

// Backend is the hardware collaborator executing sequences. Execute blocks
// until raw samples are returned or a device-level timeout fires; at most
// one call is in flight per device session. Implementations must return
// exactly Shots values per target.
type Backend interface {
	Execute(ctx context.Context, seq *sequence.Sequence, opts ExecOptions) (*RawResult, error)
}
