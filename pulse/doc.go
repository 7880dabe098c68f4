// Package pulse provides sampled complex control waveforms and the
// generators used to synthesize them.
//
// A Waveform is an immutable sequence of complex I/Q samples on a fixed
// sample grid. Generators are parameter structs with a Validate and a
// Generate method:
//
//	g := pulse.Gaussian{Duration: 40, Amplitude: 0.5, Sigma: 10}
//	wf, err := g.Generate()
//
// Transforms never mutate in place; Scale, ShiftPhase, Repeat, PadTo and
// Concat all return new Waveforms.
//
// # Waveform-like inputs
//
// Public boundaries that consume waveforms accept three interchangeable
// forms via the Input interface:
//
//   - pulse.IQ: a raw slice of complex samples
//   - pulse.Real: a slice of real samples with zero quadrature
//   - *pulse.Waveform: a generated or composed waveform
//
// Resolve converts any of them into a canonical *Waveform.
package pulse
