// Package sequence assembles per-target waveforms into a single submission
// unit with uniform duration and a shared sample grid.
package sequence

import (
	"fmt"
	"sort"

	"github.com/cwbudde/algo-pulse/pulse"
)

// Errors returned by the sequence builder. Both wrap
// pulse.ErrInvalidParameter.
var (
	ErrEmpty          = fmt.Errorf("sequence: no entries: %w", pulse.ErrInvalidParameter)
	ErrSampleInterval = fmt.Errorf("sequence: incompatible sample intervals: %w", pulse.ErrInvalidParameter)
)

// Sequence maps target labels to waveforms that share one sample interval
// and one total duration. Build pads shorter entries with zero-amplitude
// samples, so no padding is ever left implicit.
type Sequence struct {
	dt        float64
	duration  float64
	targets   []string
	waveforms map[string]*pulse.Waveform
}

// Build normalizes every waveform-like entry onto the shared grid, computes
// the maximum duration across entries and pads all shorter entries to it.
func Build(entries map[string]pulse.Input, opts ...pulse.Option) (*Sequence, error) {
	if len(entries) == 0 {
		return nil, ErrEmpty
	}

	waveforms := make(map[string]*pulse.Waveform, len(entries))
	targets := make([]string, 0, len(entries))

	dt := 0.0
	maxDuration := 0.0
	for target, in := range entries {
		wf, err := pulse.Resolve(in, opts...)
		if err != nil {
			return nil, fmt.Errorf("sequence: target %q: %w", target, err)
		}
		if dt == 0 {
			dt = wf.SampleInterval()
		} else if wf.SampleInterval() != dt {
			return nil, fmt.Errorf("%w: target %q has interval %g, want %g",
				ErrSampleInterval, target, wf.SampleInterval(), dt)
		}
		if wf.Duration() > maxDuration {
			maxDuration = wf.Duration()
		}
		waveforms[target] = wf
		targets = append(targets, target)
	}
	sort.Strings(targets)

	for target, wf := range waveforms {
		if wf.Duration() == maxDuration {
			continue
		}
		padded, err := wf.PadTo(maxDuration)
		if err != nil {
			return nil, fmt.Errorf("sequence: target %q: %w", target, err)
		}
		waveforms[target] = padded
	}

	return &Sequence{
		dt:        dt,
		duration:  maxDuration,
		targets:   targets,
		waveforms: waveforms,
	}, nil
}

// Targets returns the target labels in sorted order.
func (s *Sequence) Targets() []string {
	out := make([]string, len(s.targets))
	copy(out, s.targets)
	return out
}

// Waveform returns the waveform for target, or nil if absent.
func (s *Sequence) Waveform(target string) *pulse.Waveform {
	return s.waveforms[target]
}

// Duration returns the uniform total duration in nanoseconds.
func (s *Sequence) Duration() float64 {
	return s.duration
}

// SampleInterval returns the shared sample period in nanoseconds.
func (s *Sequence) SampleInterval() float64 {
	return s.dt
}

// Size returns the number of targets.
func (s *Sequence) Size() int {
	return len(s.targets)
}

// Repeat returns a derived Sequence with every target waveform tiled n
// times. The repetition shapes the sequence; it is not an averaging axis.
func (s *Sequence) Repeat(n int) (*Sequence, error) {
	if n < 1 {
		return nil, fmt.Errorf("sequence: repeat count must be >= 1: %d: %w", n, pulse.ErrInvalidParameter)
	}
	waveforms := make(map[string]*pulse.Waveform, len(s.waveforms))
	for target, wf := range s.waveforms {
		repeated, err := wf.Repeat(n)
		if err != nil {
			return nil, fmt.Errorf("sequence: target %q: %w", target, err)
		}
		waveforms[target] = repeated
	}
	return &Sequence{
		dt:        s.dt,
		duration:  s.duration * float64(n),
		targets:   s.Targets(),
		waveforms: waveforms,
	}, nil
}

// Validate checks the internal duration invariant. It exists for callers
// that construct sequences indirectly and want a cheap sanity check before
// submission.
func (s *Sequence) Validate() error {
	if len(s.targets) == 0 {
		return ErrEmpty
	}
	for target, wf := range s.waveforms {
		if wf.Duration() != s.duration {
			return fmt.Errorf("sequence: target %q duration %g, want %g: %w",
				target, wf.Duration(), s.duration, pulse.ErrInvalidParameter)
		}
	}
	return nil
}
