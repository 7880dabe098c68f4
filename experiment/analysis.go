package experiment

import (
	"fmt"
	"math"
	"math/cmplx"

	algofft "github.com/cwbudde/algo-fft"
)

// Rotate multiplies every value by e^(i*theta) and returns a new slice.
// It is used to align the measurement axis before projecting onto one
// quadrature.
func Rotate(values []complex128, theta float64) []complex128 {
	factor := cmplx.Exp(complex(0, theta))
	out := make([]complex128, len(values))
	for i, v := range values {
		out[i] = v * factor
	}
	return out
}

// ShotStats summarizes the distribution of single-shot values on one
// quadrature axis.
type ShotStats struct {
	Length   int
	Mean     float64
	Variance float64
	StdDev   float64
	Min      float64
	Max      float64
}

// quadratureStats computes ShotStats in one pass using Welford's online
// update for numerical stability.
func quadratureStats(values []float64) ShotStats {
	n := len(values)
	if n == 0 {
		return ShotStats{}
	}

	mean := 0.0
	m2 := 0.0
	minV := values[0]
	maxV := values[0]
	for i, v := range values {
		delta := v - mean
		mean += delta / float64(i+1)
		m2 += delta * (v - mean)
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}

	variance := m2 / float64(n)
	return ShotStats{
		Length:   n,
		Mean:     mean,
		Variance: variance,
		StdDev:   math.Sqrt(variance),
		Min:      minV,
		Max:      maxV,
	}
}

// AnalyzeShots computes per-quadrature statistics of single-shot data,
// typically to characterize readout noise. The first result describes the
// I axis, the second the Q axis.
func AnalyzeShots(values []complex128) (i, q ShotStats) {
	re := make([]float64, len(values))
	im := make([]float64, len(values))
	for k, v := range values {
		re[k] = real(v)
		im[k] = imag(v)
	}
	return quadratureStats(re), quadratureStats(im)
}

// MeanIQ returns the complex mean of values.
func MeanIQ(values []complex128) complex128 {
	if len(values) == 0 {
		return 0
	}
	var sum complex128
	for _, v := range values {
		sum += v
	}
	return sum / complex(float64(len(values)), 0)
}

// flatTolerance bounds the relative deviation below which a de-meaned
// signal is treated as constant.
const flatTolerance = 1e-12

// DominantFrequency estimates the strongest oscillation frequency in a
// uniformly sampled signal via the peak FFT bin, excluding DC. dx is the
// sweep step between consecutive values. The result is in cycles per dx
// unit (e.g. GHz when dx is in ns).
func DominantFrequency(values []complex128, dx float64) (float64, error) {
	if len(values) < 2 {
		return 0, fmt.Errorf("experiment: need at least 2 values: %d: %w", len(values), ErrInvalidParameter)
	}
	if dx <= 0 {
		return 0, fmt.Errorf("experiment: step must be > 0: %g: %w", dx, ErrInvalidParameter)
	}

	// Remove the mean so a large DC offset cannot mask the oscillation.
	mean := MeanIQ(values)
	fftSize := nextPowerOf2(len(values))
	in := make([]complex128, fftSize)
	maxDev := 0.0
	for i, v := range values {
		in[i] = v - mean
		if a := cmplx.Abs(in[i]); a > maxDev {
			maxDev = a
		}
	}

	// A numerically constant signal has no dominant frequency; without this
	// check the peak search would report an arbitrary rounding-noise bin.
	if maxDev <= flatTolerance*(1+cmplx.Abs(mean)) {
		return 0, fmt.Errorf("experiment: signal has no oscillation: %w", ErrInvalidParameter)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return 0, fmt.Errorf("experiment: create FFT plan: %w", err)
	}
	freq := make([]complex128, fftSize)
	if err := plan.Forward(freq, in); err != nil {
		return 0, fmt.Errorf("experiment: forward FFT: %w", err)
	}

	peakBin := 1
	peakMag := 0.0
	for i := 1; i < fftSize; i++ {
		mag := cmplx.Abs(freq[i])
		if mag > peakMag {
			peakMag = mag
			peakBin = i
		}
	}

	// Bins above Nyquist are negative frequencies; report magnitude.
	if peakBin > fftSize/2 {
		peakBin = fftSize - peakBin
	}
	return float64(peakBin) / (float64(fftSize) * dx), nil
}

// RabiFrequency estimates the Rabi oscillation frequency of target from a
// duration sweep. The sweep range must be uniformly spaced.
func RabiFrequency(sweep *SweepResult, target string) (float64, error) {
	if sweep == nil || len(sweep.SweepRange) < 2 {
		return 0, fmt.Errorf("experiment: need at least 2 sweep points: %w", ErrInvalidParameter)
	}
	dx := sweep.SweepRange[1] - sweep.SweepRange[0]
	signals := sweep.Signals(target)
	if len(signals) != len(sweep.SweepRange) {
		return 0, fmt.Errorf("experiment: target %q missing from sweep points: %w", target, ErrInvalidParameter)
	}
	return DominantFrequency(signals, dx)
}

// nextPowerOf2 returns the next power of 2 >= n.
func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p *= 2
	}
	return p
}
