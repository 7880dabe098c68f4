package experiment

import (
	"context"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/cwbudde/algo-pulse/pulse"
	"github.com/cwbudde/algo-pulse/sequence"
)

// Default measurement parameters, in nanoseconds where applicable.
const (
	DefaultShots         = 1024
	DefaultInterval      = 150 * 1024
	DefaultControlWindow = 1024

	// intervalStep is the granularity the backend accepts for the shot
	// repetition period; requested intervals are rounded up to it.
	intervalStep = 10240
)

// Experiment drives measurements against a Backend. All measurement entry
// points are blocking and serialized; at most one backend execution is in
// flight per Experiment.
type Experiment struct {
	registry  *Registry
	backend   Backend
	log       *log.Logger
	defaults  measureConfig
	pulseOpts []pulse.Option

	mu sync.Mutex
}

type measureConfig struct {
	mode          MeasureMode
	shots         int
	interval      float64
	controlWindow float64
	repetitions   int
}

// Option configures an Experiment.
type Option func(*Experiment)

// WithLogger sets the progress logger. The default discards output.
func WithLogger(logger *log.Logger) Option {
	return func(e *Experiment) {
		if logger != nil {
			e.log = logger
		}
	}
}

// WithSampleInterval sets the sample period used when resolving raw
// waveform inputs, in nanoseconds.
func WithSampleInterval(dt float64) Option {
	return func(e *Experiment) {
		e.pulseOpts = append(e.pulseOpts, pulse.WithSampleInterval(dt))
	}
}

// WithDefaults overrides the per-call measurement defaults.
func WithDefaults(shots int, interval, controlWindow float64) Option {
	return func(e *Experiment) {
		if shots > 0 {
			e.defaults.shots = shots
		}
		if interval > 0 {
			e.defaults.interval = interval
		}
		if controlWindow > 0 {
			e.defaults.controlWindow = controlWindow
		}
	}
}

// New creates an Experiment bound to a target registry and a backend.
func New(registry *Registry, backend Backend, opts ...Option) *Experiment {
	e := &Experiment{
		registry: registry,
		backend:  backend,
		log:      log.New(io.Discard),
		defaults: measureConfig{
			mode:          ModeAvg,
			shots:         DefaultShots,
			interval:      DefaultInterval,
			controlWindow: DefaultControlWindow,
			repetitions:   1,
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// Registry returns the target registry owned by this Experiment.
func (e *Experiment) Registry() *Registry {
	return e.registry
}

// MeasureOption adjusts the parameters of a single measurement call.
type MeasureOption func(*measureConfig)

// WithMode selects avg or single collection.
func WithMode(mode MeasureMode) MeasureOption {
	return func(c *measureConfig) { c.mode = mode }
}

// WithShots sets the number of shots.
func WithShots(shots int) MeasureOption {
	return func(c *measureConfig) { c.shots = shots }
}

// WithInterval sets the shot repetition period in nanoseconds.
func WithInterval(interval float64) MeasureOption {
	return func(c *measureConfig) { c.interval = interval }
}

// WithControlWindow sets the control window in nanoseconds.
func WithControlWindow(window float64) MeasureOption {
	return func(c *measureConfig) { c.controlWindow = window }
}

// WithRepetitions tiles every target waveform n times before submission.
func WithRepetitions(n int) MeasureOption {
	return func(c *measureConfig) { c.repetitions = n }
}

func (e *Experiment) measureConfig(opts ...MeasureOption) measureConfig {
	cfg := e.defaults
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

func (c measureConfig) validate() error {
	if !c.mode.valid() {
		return fmt.Errorf("experiment: unknown measure mode %q: %w", c.mode, ErrInvalidParameter)
	}
	if c.shots < 1 {
		return fmt.Errorf("experiment: shots must be >= 1: %d: %w", c.shots, ErrInvalidParameter)
	}
	if c.interval <= 0 {
		return fmt.Errorf("experiment: interval must be > 0: %g: %w", c.interval, ErrInvalidParameter)
	}
	if c.controlWindow <= 0 {
		return fmt.Errorf("experiment: control window must be > 0: %g: %w", c.controlWindow, ErrInvalidParameter)
	}
	if c.repetitions < 1 {
		return fmt.Errorf("experiment: repetitions must be >= 1: %d: %w", c.repetitions, ErrInvalidParameter)
	}
	return nil
}

// alignInterval rounds the repetition period up to the backend's interval
// granularity, accounting for the control window.
func alignInterval(controlWindow, interval float64) float64 {
	return (math.Floor((controlWindow+interval)/intervalStep) + 1) * intervalStep
}

// Measure submits the given control waveforms once and collects shots
// repetitions. In avg mode the result holds the complex mean per target;
// in single mode it holds all per-shot values unaggregated.
func (e *Experiment) Measure(ctx context.Context, waveforms map[string]pulse.Input, opts ...MeasureOption) (*MeasureResult, error) {
	cfg := e.measureConfig(opts...)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	seq, err := sequence.Build(waveforms, e.pulseOpts...)
	if err != nil {
		return nil, err
	}
	return e.measureSequence(ctx, seq, cfg)
}

// MeasureSequence submits an already-built Sequence.
func (e *Experiment) MeasureSequence(ctx context.Context, seq *sequence.Sequence, opts ...MeasureOption) (*MeasureResult, error) {
	cfg := e.measureConfig(opts...)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if err := seq.Validate(); err != nil {
		return nil, err
	}
	return e.measureSequence(ctx, seq, cfg)
}

func (e *Experiment) measureSequence(ctx context.Context, seq *sequence.Sequence, cfg measureConfig) (*MeasureResult, error) {
	if cfg.repetitions > 1 {
		repeated, err := seq.Repeat(cfg.repetitions)
		if err != nil {
			return nil, err
		}
		seq = repeated
	}

	execOpts := ExecOptions{
		Shots:         cfg.shots,
		Interval:      alignInterval(cfg.controlWindow, cfg.interval),
		ControlWindow: cfg.controlWindow,
		Mode:          cfg.mode,
	}

	// Single in-flight execution per device session.
	e.mu.Lock()
	raw, err := e.backend.Execute(ctx, seq, execOpts)
	e.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDevice, err)
	}

	return e.foldRaw(raw, seq.Targets(), cfg)
}

func (e *Experiment) foldRaw(raw *RawResult, targets []string, cfg measureConfig) (*MeasureResult, error) {
	if raw == nil || len(raw.IQ) == 0 {
		return nil, fmt.Errorf("%w: backend returned no data", ErrDevice)
	}

	data := make(map[string]MeasureData, len(targets))
	for _, target := range targets {
		values, ok := raw.IQ[target]
		if !ok {
			return nil, fmt.Errorf("%w: target %q missing from backend response", ErrDevice, target)
		}
		if len(values) != cfg.shots {
			return nil, fmt.Errorf("%w: target %q returned %d values, want %d shots",
				ErrDevice, target, len(values), cfg.shots)
		}
		switch cfg.mode {
		case ModeAvg:
			var sum complex128
			for _, v := range values {
				sum += v
			}
			mean := sum / complex(float64(len(values)), 0)
			data[target] = MeasureData{Target: target, Values: []complex128{mean}}
		case ModeSingle:
			out := make([]complex128, len(values))
			copy(out, values)
			data[target] = MeasureData{Target: target, Values: out}
		}
	}

	return &MeasureResult{
		Mode:      cfg.mode,
		Data:      data,
		CreatedAt: time.Now(),
	}, nil
}

// RepeatSequence tiles every target waveform repetitions times, performs
// one measurement and returns the raw result. The repetition count shapes
// the sequence; it never becomes an averaging axis.
func (e *Experiment) RepeatSequence(ctx context.Context, waveforms map[string]pulse.Input, repetitions int, opts ...MeasureOption) (*MeasureResult, error) {
	opts = append(opts, WithRepetitions(repetitions))
	return e.Measure(ctx, waveforms, opts...)
}

// SequenceFunc builds the per-target waveforms for one sweep value.
type SequenceFunc func(x float64) (map[string]pulse.Input, error)

// SweepParameter evaluates fn for each value of sweepRange in the exact
// order supplied and measures the resulting sequence. The sweep is
// strictly sequential: point i+1 starts only after point i has returned.
//
// On a device error the sweep aborts and the partially filled result is
// returned together with the error (fail-fast; continuing past a failed
// point is deliberately not attempted).
func (e *Experiment) SweepParameter(ctx context.Context, fn SequenceFunc, sweepRange []float64, opts ...MeasureOption) (*SweepResult, error) {
	if fn == nil {
		return nil, fmt.Errorf("experiment: sequence function must not be nil: %w", ErrInvalidParameter)
	}
	if len(sweepRange) == 0 {
		return nil, fmt.Errorf("experiment: sweep range must not be empty: %w", ErrInvalidParameter)
	}
	cfg := e.measureConfig(opts...)
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	result := &SweepResult{
		Mode:      cfg.mode,
		CreatedAt: time.Now(),
	}
	for i, x := range sweepRange {
		waveforms, err := fn(x)
		if err != nil {
			return result, fmt.Errorf("experiment: sweep point %d (x=%g): %w", i, x, err)
		}
		seq, err := sequence.Build(waveforms, e.pulseOpts...)
		if err != nil {
			return result, fmt.Errorf("experiment: sweep point %d (x=%g): %w", i, x, err)
		}
		point, err := e.measureSequence(ctx, seq, cfg)
		if err != nil {
			return result, fmt.Errorf("experiment: sweep point %d (x=%g): %w", i, x, err)
		}
		result.SweepRange = append(result.SweepRange, x)
		result.Points = append(result.Points, point)
		e.log.Info("sweep point done", "index", i+1, "total", len(sweepRange), "value", x)
	}
	return result, nil
}

// RabiExperiment sweeps the duration of a constant drive pulse over
// timeRange (ns) for every target in amplitudes and collects the response
// at each duration.
func (e *Experiment) RabiExperiment(ctx context.Context, timeRange []float64, amplitudes map[string]float64, opts ...MeasureOption) (*SweepResult, error) {
	if len(amplitudes) == 0 {
		return nil, fmt.Errorf("experiment: no drive amplitudes: %w", ErrInvalidParameter)
	}
	fn := func(duration float64) (map[string]pulse.Input, error) {
		waveforms := make(map[string]pulse.Input, len(amplitudes))
		for target, amplitude := range amplitudes {
			wf, err := pulse.Rect{Duration: duration, Amplitude: amplitude}.Generate(e.pulseOpts...)
			if err != nil {
				return nil, err
			}
			waveforms[target] = wf
		}
		return waveforms, nil
	}
	return e.SweepParameter(ctx, fn, timeRange, opts...)
}

// ChevronResult holds one Rabi sweep per frequency detuning.
type ChevronResult struct {
	Detunings []float64 // GHz offsets from each target's nominal frequency
	TimeRange []float64
	Results   []*SweepResult
	CreatedAt time.Time
}

// ChevronExperiment runs a Rabi sweep at each frequency detuning, using a
// scoped override so every target's nominal frequency is restored after
// each point, even on failure. Fail-fast like SweepParameter.
func (e *Experiment) ChevronExperiment(ctx context.Context, detunings, timeRange []float64, amplitudes map[string]float64, opts ...MeasureOption) (*ChevronResult, error) {
	if len(detunings) == 0 {
		return nil, fmt.Errorf("experiment: detuning range must not be empty: %w", ErrInvalidParameter)
	}
	base := make(map[string]float64, len(amplitudes))
	for target := range amplitudes {
		f, err := e.registry.Frequency(target)
		if err != nil {
			return nil, err
		}
		base[target] = f
	}

	result := &ChevronResult{TimeRange: timeRange, CreatedAt: time.Now()}
	for i, df := range detunings {
		overrides := make(map[string]float64, len(base))
		for target, f := range base {
			overrides[target] = f + df
		}
		var sweep *SweepResult
		err := e.registry.WithOverrides(overrides, func() error {
			var innerErr error
			sweep, innerErr = e.RabiExperiment(ctx, timeRange, amplitudes, opts...)
			return innerErr
		})
		if err != nil {
			return result, fmt.Errorf("experiment: detuning %d (df=%g): %w", i, df, err)
		}
		result.Detunings = append(result.Detunings, df)
		result.Results = append(result.Results, sweep)
		e.log.Info("chevron detuning done", "index", i+1, "total", len(detunings), "detuning", df)
	}
	return result, nil
}
