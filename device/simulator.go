// Package device provides Backend implementations. The Simulator is a
// deterministic software backend for tests and offline development.
package device

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"math/rand"
	"sync"

	"github.com/cwbudde/algo-pulse/experiment"
	"github.com/cwbudde/algo-pulse/sequence"
)

// ErrInjected is returned once failure injection triggers.
var ErrInjected = errors.New("device: injected failure")

// Simulator is a deterministic Backend. Each target's kerneled response is
// the mean of its control waveform rotated by the target's registry
// frequency, plus seeded per-shot noise. Identical seeds give identical
// results.
type Simulator struct {
	registry *experiment.Registry
	seed     int64
	noise    float64

	mu         sync.Mutex
	executions int
	failAfter  int // fail on the n-th execution; 0 disables injection
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithSeed sets the deterministic noise seed.
func WithSeed(seed int64) Option {
	return func(s *Simulator) { s.seed = seed }
}

// WithNoise sets the per-shot noise amplitude.
func WithNoise(amplitude float64) Option {
	return func(s *Simulator) {
		if amplitude >= 0 {
			s.noise = amplitude
		}
	}
}

// FailAfter makes the n-th and every later Execute call fail. Used to
// exercise fail-fast sweep behavior.
func FailAfter(n int) Option {
	return func(s *Simulator) { s.failAfter = n }
}

// NewSimulator creates a Simulator reading frequencies from registry.
func NewSimulator(registry *experiment.Registry, opts ...Option) *Simulator {
	s := &Simulator{
		registry: registry,
		seed:     1,
		noise:    0.001,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Execute implements experiment.Backend.
func (s *Simulator) Execute(ctx context.Context, seq *sequence.Sequence, opts experiment.ExecOptions) (*experiment.RawResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("device: execute canceled: %w", err)
	}
	if opts.Shots < 1 {
		return nil, fmt.Errorf("device: shots must be >= 1: %d", opts.Shots)
	}

	s.mu.Lock()
	s.executions++
	if s.failAfter > 0 && s.executions >= s.failAfter {
		s.mu.Unlock()
		return nil, ErrInjected
	}
	execution := s.executions
	s.mu.Unlock()

	rng := rand.New(rand.NewSource(s.seed + int64(execution)))

	result := &experiment.RawResult{IQ: make(map[string][]complex128, seq.Size())}
	for _, target := range seq.Targets() {
		base := meanIQ(seq.Waveform(target).Values())

		// Rotate the response by the accumulated drive phase so frequency
		// overrides are observable in the simulated data.
		frequency, err := s.registry.Frequency(target)
		if err == nil {
			phase := 2 * math.Pi * frequency * seq.Duration()
			base *= cmplx.Exp(complex(0, phase))
		}

		shots := make([]complex128, opts.Shots)
		for i := range shots {
			shots[i] = base + complex(rng.NormFloat64()*s.noise, rng.NormFloat64()*s.noise)
		}
		result.IQ[target] = shots
	}
	return result, nil
}

func meanIQ(values []complex128) complex128 {
	if len(values) == 0 {
		return 0
	}
	var sum complex128
	for _, v := range values {
		sum += v
	}
	return sum / complex(float64(len(values)), 0)
}
