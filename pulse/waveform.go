package pulse

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-vecmath"
)

// DefaultSampleInterval is the sample period in nanoseconds used when no
// explicit interval is configured. The control DACs this library targets
// run at 500 MSa/s, one sample every 2 ns.
const DefaultSampleInterval = 2.0

// gridTolerance bounds the floating point slack accepted when snapping a
// duration onto the sample grid.
const gridTolerance = 1e-9

// Option configures waveform construction.
type Option func(*config)

type config struct {
	dt float64
}

func defaultConfig() config {
	return config{dt: DefaultSampleInterval}
}

// WithSampleInterval sets the sample period in nanoseconds.
func WithSampleInterval(dt float64) Option {
	return func(c *config) {
		if dt > 0 {
			c.dt = dt
		}
	}
}

func applyOptions(opts ...Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Waveform is an immutable complex signal sampled on a fixed grid.
// The zero value is not usable; construct with New or a generator.
type Waveform struct {
	samples []complex128
	dt      float64
}

// New creates a Waveform from raw complex samples. The samples are copied.
func New(samples []complex128, opts ...Option) *Waveform {
	cfg := applyOptions(opts...)
	out := make([]complex128, len(samples))
	copy(out, samples)
	return &Waveform{samples: out, dt: cfg.dt}
}

// NumSamples returns the number of grid points spanned by duration, or an
// error when duration does not land on the grid.
func NumSamples(duration, dt float64) (int, error) {
	if dt <= 0 {
		return 0, fmt.Errorf("pulse: sample interval must be > 0: %g: %w", dt, ErrInvalidParameter)
	}
	if duration < 0 {
		return 0, fmt.Errorf("pulse: duration must be >= 0: %g: %w", duration, ErrInvalidParameter)
	}
	frac := duration / dt
	n := math.Round(frac)
	if math.Abs(frac-n) > gridTolerance*math.Max(1, frac) {
		return 0, fmt.Errorf("pulse: duration %g is not a multiple of the sample interval %g: %w",
			duration, dt, ErrInvalidParameter)
	}
	return int(n), nil
}

// Len returns the number of samples.
func (w *Waveform) Len() int {
	return len(w.samples)
}

// SampleInterval returns the sample period in nanoseconds.
func (w *Waveform) SampleInterval() float64 {
	return w.dt
}

// Duration returns the total duration in nanoseconds.
func (w *Waveform) Duration() float64 {
	return float64(len(w.samples)) * w.dt
}

// Values returns a copy of the complex samples.
func (w *Waveform) Values() []complex128 {
	out := make([]complex128, len(w.samples))
	copy(out, w.samples)
	return out
}

// Real returns the in-phase component of every sample.
func (w *Waveform) Real() []float64 {
	out := make([]float64, len(w.samples))
	for i, v := range w.samples {
		out[i] = real(v)
	}
	return out
}

// Imag returns the quadrature component of every sample.
func (w *Waveform) Imag() []float64 {
	out := make([]float64, len(w.samples))
	for i, v := range w.samples {
		out[i] = imag(v)
	}
	return out
}

// Magnitudes returns the per-sample magnitude sqrt(I^2 + Q^2).
func (w *Waveform) Magnitudes() []float64 {
	out := make([]float64, len(w.samples))
	vecmath.Magnitude(out, w.Real(), w.Imag())
	return out
}

// Powers returns the per-sample power I^2 + Q^2.
func (w *Waveform) Powers() []float64 {
	out := make([]float64, len(w.samples))
	vecmath.Power(out, w.Real(), w.Imag())
	return out
}

// Scale multiplies every sample by factor and returns a new Waveform of
// identical length and sample interval.
func (w *Waveform) Scale(factor complex128) (*Waveform, error) {
	if cmplx.IsInf(factor) || cmplx.IsNaN(factor) {
		return nil, fmt.Errorf("pulse: scale factor must be finite: %v: %w", factor, ErrInvalidParameter)
	}

	n := len(w.samples)
	re := w.Real()
	im := w.Imag()
	c := real(factor)
	d := imag(factor)

	// (a+bi)(c+di) computed on the I/Q planes:
	// I' = a*c - b*d, Q' = a*d + b*c
	outRe := make([]float64, n)
	outIm := make([]float64, n)
	tmp := make([]float64, n)

	vecmath.ScaleBlock(outRe, re, c)
	vecmath.ScaleBlock(tmp, im, -d)
	vecmath.AddBlockInPlace(outRe, tmp)

	vecmath.ScaleBlock(outIm, re, d)
	vecmath.ScaleBlock(tmp, im, c)
	vecmath.AddBlockInPlace(outIm, tmp)

	out := make([]complex128, n)
	for i := range out {
		out[i] = complex(outRe[i], outIm[i])
	}
	return &Waveform{samples: out, dt: w.dt}, nil
}

// ShiftPhase multiplies every sample by e^(i*theta) and returns a new
// Waveform of identical duration.
func (w *Waveform) ShiftPhase(theta float64) (*Waveform, error) {
	if err := validateFinite("phase", theta); err != nil {
		return nil, err
	}
	return w.Scale(cmplx.Exp(complex(0, theta)))
}

// Repeat returns a Waveform whose samples are the source samples tiled n
// times.
func (w *Waveform) Repeat(n int) (*Waveform, error) {
	if n < 1 {
		return nil, fmt.Errorf("pulse: repeat count must be >= 1: %d: %w", n, ErrInvalidParameter)
	}
	out := make([]complex128, 0, n*len(w.samples))
	for i := 0; i < n; i++ {
		out = append(out, w.samples...)
	}
	return &Waveform{samples: out, dt: w.dt}, nil
}

// PadTo appends zero-amplitude samples until the total duration matches
// duration. The target must land on the sample grid and must not be
// shorter than the current duration.
func (w *Waveform) PadTo(duration float64) (*Waveform, error) {
	n, err := NumSamples(duration, w.dt)
	if err != nil {
		return nil, err
	}
	if n < len(w.samples) {
		return nil, fmt.Errorf("pulse: pad target %g ns is shorter than current duration %g ns: %w",
			duration, w.Duration(), ErrInvalidParameter)
	}
	out := make([]complex128, n)
	copy(out, w.samples)
	return &Waveform{samples: out, dt: w.dt}, nil
}

// Concat returns the concatenation of w followed by each ws in order.
// All inputs must share the same sample interval.
func (w *Waveform) Concat(ws ...*Waveform) (*Waveform, error) {
	total := len(w.samples)
	for _, v := range ws {
		if v.dt != w.dt {
			return nil, fmt.Errorf("pulse: concat sample interval mismatch: %g vs %g: %w",
				v.dt, w.dt, ErrInvalidParameter)
		}
		total += len(v.samples)
	}
	out := make([]complex128, 0, total)
	out = append(out, w.samples...)
	for _, v := range ws {
		out = append(out, v.samples...)
	}
	return &Waveform{samples: out, dt: w.dt}, nil
}

// Reversed returns the time-reversed waveform.
func (w *Waveform) Reversed() *Waveform {
	n := len(w.samples)
	out := make([]complex128, n)
	for i := range out {
		out[i] = w.samples[n-1-i]
	}
	return &Waveform{samples: out, dt: w.dt}
}
