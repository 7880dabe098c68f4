package experiment

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-pulse/internal/testutil"
)

func TestRotate(t *testing.T) {
	values := []complex128{1, 1i}

	rotated := Rotate(values, math.Pi)
	testutil.RequireIQSliceNearlyEqual(t, rotated, []complex128{-1, -1i}, 1e-12)

	// Source untouched.
	require.Equal(t, complex128(1), values[0])
}

func TestMeanIQ(t *testing.T) {
	require.Equal(t, complex128(0), MeanIQ(nil))
	require.Equal(t, complex(1.5, 0.5), MeanIQ([]complex128{1, 2 + 1i}))
}

func TestAnalyzeShots(t *testing.T) {
	shots := []complex128{1 + 4i, 3 + 4i, 2 + 4i}

	i, q := AnalyzeShots(shots)

	require.Equal(t, 3, i.Length)
	require.InDelta(t, 2.0, i.Mean, 1e-12)
	require.InDelta(t, 2.0/3.0, i.Variance, 1e-12)
	require.InDelta(t, math.Sqrt(2.0/3.0), i.StdDev, 1e-12)
	require.Equal(t, 1.0, i.Min)
	require.Equal(t, 3.0, i.Max)

	require.InDelta(t, 4.0, q.Mean, 1e-12)
	require.InDelta(t, 0.0, q.Variance, 1e-12)
}

func TestAnalyzeShotsEmpty(t *testing.T) {
	i, q := AnalyzeShots(nil)
	require.Zero(t, i)
	require.Zero(t, q)
}

func TestDominantFrequency(t *testing.T) {
	// 64 points of e^(2*pi*i*f*x) sampled every 10 ns with f = 1/80 GHz
	// (exactly bin 8 of a 64-point FFT).
	const step = 10.0
	const freq = 1.0 / 80.0
	signal := testutil.OscillatingIQ(freq, step, 64)

	got, err := DominantFrequency(signal, step)
	require.NoError(t, err)
	require.InDelta(t, freq, got, 1e-9)
}

func TestDominantFrequencyIgnoresDC(t *testing.T) {
	const step = 10.0
	const freq = 1.0 / 80.0
	signal := testutil.OscillatingIQ(freq, step, 64)
	for i := range signal {
		signal[i] += 100 // large offset
	}

	got, err := DominantFrequency(signal, step)
	require.NoError(t, err)
	require.InDelta(t, freq, got, 1e-9)
}

func TestDominantFrequencyFlatSignal(t *testing.T) {
	// A constant signal has no oscillation; reporting a rounding-noise bin
	// would fabricate a frequency.
	flat := testutil.ConstantIQ(100+3i, 64)

	_, err := DominantFrequency(flat, 10.0)
	require.ErrorIs(t, err, ErrInvalidParameter)
	require.ErrorContains(t, err, "no oscillation")
}

func TestDominantFrequencyValidation(t *testing.T) {
	_, err := DominantFrequency([]complex128{1}, 1)
	require.ErrorIs(t, err, ErrInvalidParameter)

	_, err = DominantFrequency([]complex128{1, 2}, 0)
	require.ErrorIs(t, err, ErrInvalidParameter)
}

func TestRabiFrequency(t *testing.T) {
	const step = 10.0
	const freq = 1.0 / 80.0
	signal := testutil.OscillatingIQ(freq, step, 64)

	sweep := &SweepResult{Mode: ModeAvg}
	for i, v := range signal {
		sweep.SweepRange = append(sweep.SweepRange, float64(i)*step)
		sweep.Points = append(sweep.Points, &MeasureResult{
			Mode: ModeAvg,
			Data: map[string]MeasureData{"Q00": {Target: "Q00", Values: []complex128{v}}},
		})
	}

	got, err := RabiFrequency(sweep, "Q00")
	require.NoError(t, err)
	require.InDelta(t, freq, got, 1e-9)

	_, err = RabiFrequency(sweep, "QXX")
	require.ErrorIs(t, err, ErrInvalidParameter)
}
