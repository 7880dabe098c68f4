package testutil

import (
	"math"
	"math/rand"
)

// ConstantIQ generates a constant complex signal.
func ConstantIQ(value complex128, length int) []complex128 {
	out := make([]complex128, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// OscillatingIQ generates e^(2*pi*i*freq*step*n) samples, useful for
// spectral-estimate tests.
func OscillatingIQ(freq, step float64, length int) []complex128 {
	out := make([]complex128, length)
	for i := range out {
		phase := 2 * math.Pi * freq * step * float64(i)
		out[i] = complex(math.Cos(phase), math.Sin(phase))
	}
	return out
}

// DeterministicIQNoise generates complex noise with a fixed seed for
// reproducibility.
func DeterministicIQNoise(seed int64, amplitude float64, length int) []complex128 {
	out := make([]complex128, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = complex((rng.Float64()*2-1)*amplitude, (rng.Float64()*2-1)*amplitude)
	}
	return out
}
