package pulse

import "fmt"

// Input is a waveform-like value accepted at public boundaries. It is a
// closed set with three variants: IQ (raw complex samples), Real
// (real-valued samples with zero quadrature) and *Waveform.
type Input interface {
	waveform(cfg config) (*Waveform, error)
}

// IQ is a raw slice of complex samples on the configured grid.
type IQ []complex128

func (s IQ) waveform(cfg config) (*Waveform, error) {
	out := make([]complex128, len(s))
	copy(out, s)
	return &Waveform{samples: out, dt: cfg.dt}, nil
}

// Real is a slice of real samples with zero quadrature component.
type Real []float64

func (s Real) waveform(cfg config) (*Waveform, error) {
	out := make([]complex128, len(s))
	for i, v := range s {
		out[i] = complex(v, 0)
	}
	return &Waveform{samples: out, dt: cfg.dt}, nil
}

func (w *Waveform) waveform(config) (*Waveform, error) {
	if w == nil {
		return nil, fmt.Errorf("pulse: nil waveform: %w", ErrInvalidParameter)
	}
	return w, nil
}

// Resolve normalizes any waveform-like input into a canonical Waveform.
// Raw sample variants are placed on the configured grid; an existing
// Waveform keeps its own sample interval.
func Resolve(in Input, opts ...Option) (*Waveform, error) {
	if in == nil {
		return nil, fmt.Errorf("pulse: nil waveform input: %w", ErrInvalidParameter)
	}
	return in.waveform(applyOptions(opts...))
}
