package pulse

import (
	"fmt"
	"math"
)

// Gaussian generates a Gaussian envelope centered at Duration/2 with peak
// magnitude Amplitude and standard deviation Sigma. All times are in ns.
type Gaussian struct {
	Duration  float64
	Amplitude float64
	Sigma     float64
}

// Validate checks the Gaussian parameters.
func (g Gaussian) Validate() error {
	if err := validateDuration(g.Duration); err != nil {
		return err
	}
	if err := validateFinite("amplitude", g.Amplitude); err != nil {
		return err
	}
	if g.Sigma <= 0 || math.IsInf(g.Sigma, 0) || math.IsNaN(g.Sigma) {
		return fmt.Errorf("pulse: sigma must be > 0: %g: %w", g.Sigma, ErrInvalidParameter)
	}
	return nil
}

// Generate samples the envelope on the configured grid.
func (g Gaussian) Generate(opts ...Option) (*Waveform, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	cfg := applyOptions(opts...)
	n, err := NumSamples(g.Duration, cfg.dt)
	if err != nil {
		return nil, err
	}

	center := g.Duration / 2
	out := make([]complex128, n)
	for i := range out {
		t := float64(i) * cfg.dt
		d := t - center
		out[i] = complex(g.Amplitude*math.Exp(-d*d/(2*g.Sigma*g.Sigma)), 0)
	}
	return &Waveform{samples: out, dt: cfg.dt}, nil
}

// FlatTop generates a pulse with raised-cosine rising and falling edges of
// length Tau and a flat plateau at Amplitude for Duration - 2*Tau.
//
// Raised-cosine edges are used rather than half-Gaussian ramps: they reach
// the plateau exactly at t = Tau, so the plateau level is attained without
// an envelope discontinuity.
type FlatTop struct {
	Duration  float64
	Amplitude float64
	Tau       float64
}

// Validate checks the FlatTop parameters.
func (f FlatTop) Validate() error {
	if err := validateDuration(f.Duration); err != nil {
		return err
	}
	if err := validateFinite("amplitude", f.Amplitude); err != nil {
		return err
	}
	if f.Tau < 0 || math.IsInf(f.Tau, 0) || math.IsNaN(f.Tau) {
		return fmt.Errorf("pulse: tau must be >= 0: %g: %w", f.Tau, ErrInvalidParameter)
	}
	if 2*f.Tau > f.Duration {
		return fmt.Errorf("pulse: rise and fall edges (2*tau = %g) exceed duration %g: %w",
			2*f.Tau, f.Duration, ErrInvalidParameter)
	}
	return nil
}

// Generate samples the envelope on the configured grid.
func (f FlatTop) Generate(opts ...Option) (*Waveform, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	cfg := applyOptions(opts...)
	n, err := NumSamples(f.Duration, cfg.dt)
	if err != nil {
		return nil, err
	}

	out := make([]complex128, n)
	for i := range out {
		t := float64(i) * cfg.dt
		var env float64
		switch {
		case f.Tau == 0:
			env = 1
		case t < f.Tau:
			env = 0.5 * (1 - math.Cos(math.Pi*t/f.Tau))
		case t > f.Duration-f.Tau:
			env = 0.5 * (1 - math.Cos(math.Pi*(f.Duration-t)/f.Tau))
		default:
			env = 1
		}
		out[i] = complex(f.Amplitude*env, 0)
	}
	return &Waveform{samples: out, dt: cfg.dt}, nil
}

// Rect generates a constant-amplitude pulse for Duration. A zero Duration
// yields an empty waveform.
type Rect struct {
	Duration  float64
	Amplitude float64
}

// Validate checks the Rect parameters.
func (r Rect) Validate() error {
	if r.Duration < 0 || math.IsInf(r.Duration, 0) || math.IsNaN(r.Duration) {
		return fmt.Errorf("pulse: duration must be >= 0: %g: %w", r.Duration, ErrInvalidParameter)
	}
	return validateFinite("amplitude", r.Amplitude)
}

// Generate samples the envelope on the configured grid.
func (r Rect) Generate(opts ...Option) (*Waveform, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	cfg := applyOptions(opts...)
	n, err := NumSamples(r.Duration, cfg.dt)
	if err != nil {
		return nil, err
	}

	out := make([]complex128, n)
	for i := range out {
		out[i] = complex(r.Amplitude, 0)
	}
	return &Waveform{samples: out, dt: cfg.dt}, nil
}

// Drag generates a DRAG pulse: a zero-bounded Gaussian envelope with its
// scaled time derivative on the quadrature component. Sigma is fixed at
// Duration/4. Beta is the derivative-correction coefficient.
type Drag struct {
	Duration  float64
	Amplitude float64
	Beta      float64
}

// Validate checks the Drag parameters.
func (d Drag) Validate() error {
	if err := validateDuration(d.Duration); err != nil {
		return err
	}
	if err := validateFinite("amplitude", d.Amplitude); err != nil {
		return err
	}
	return validateFinite("beta", d.Beta)
}

// Generate samples the pulse on the configured grid.
func (d Drag) Generate(opts ...Option) (*Waveform, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	cfg := applyOptions(opts...)
	n, err := NumSamples(d.Duration, cfg.dt)
	if err != nil {
		return nil, err
	}

	sigma := d.Duration / 4
	center := d.Duration / 2

	// Zero-bounded envelope: subtract the edge value and renormalize so the
	// pulse starts and ends at exactly zero with peak 1 at the center.
	edge := math.Exp(-center * center / (2 * sigma * sigma))
	norm := 1 - edge

	out := make([]complex128, n)
	for i := range out {
		t := float64(i) * cfg.dt
		dt := t - center
		g := math.Exp(-dt * dt / (2 * sigma * sigma))
		env := (g - edge) / norm
		deriv := -dt / (sigma * sigma) * g / norm
		out[i] = complex(d.Amplitude*env, d.Amplitude*d.Beta*deriv)
	}
	return &Waveform{samples: out, dt: cfg.dt}, nil
}
