package sequence

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-pulse/pulse"
)

func TestBuildPadsToMaxDuration(t *testing.T) {
	long, err := pulse.Rect{Duration: 40, Amplitude: 0.1}.Generate()
	if err != nil {
		t.Fatal(err)
	}

	seq, err := Build(map[string]pulse.Input{
		"Q00": pulse.IQ{0.01 + 0.01i, 0.01 + 0.01i}, // 4 ns
		"Q01": long,                                 // 40 ns
		"R00": pulse.Real{0.5},                      // 2 ns
	})
	if err != nil {
		t.Fatal(err)
	}

	if seq.Duration() != 40 {
		t.Fatalf("duration = %v, want 40", seq.Duration())
	}
	for _, target := range seq.Targets() {
		wf := seq.Waveform(target)
		if wf.Duration() != 40 {
			t.Fatalf("target %q duration = %v, want 40", target, wf.Duration())
		}
	}

	// Padding is zero-amplitude.
	q00 := seq.Waveform("Q00").Values()
	for i := 2; i < len(q00); i++ {
		if q00[i] != 0 {
			t.Fatalf("Q00 padding sample %d = %v, want 0", i, q00[i])
		}
	}
	// Original samples survive.
	if q00[0] != 0.01+0.01i {
		t.Fatalf("Q00 sample 0 = %v", q00[0])
	}
}

func TestBuildEmpty(t *testing.T) {
	if _, err := Build(nil); !errors.Is(err, ErrEmpty) {
		t.Fatalf("Build(nil) error = %v, want ErrEmpty", err)
	}
	if _, err := Build(map[string]pulse.Input{}); !errors.Is(err, pulse.ErrInvalidParameter) {
		t.Fatalf("empty build error should wrap pulse.ErrInvalidParameter")
	}
}

func TestBuildIntervalMismatch(t *testing.T) {
	a := pulse.New([]complex128{1}, pulse.WithSampleInterval(2))
	b := pulse.New([]complex128{1}, pulse.WithSampleInterval(1))

	_, err := Build(map[string]pulse.Input{"Q00": a, "Q01": b})
	if !errors.Is(err, ErrSampleInterval) {
		t.Fatalf("error = %v, want ErrSampleInterval", err)
	}
	if !errors.Is(err, pulse.ErrInvalidParameter) {
		t.Fatalf("interval mismatch should wrap pulse.ErrInvalidParameter")
	}
}

func TestBuildNilEntry(t *testing.T) {
	_, err := Build(map[string]pulse.Input{"Q00": nil})
	if !errors.Is(err, pulse.ErrInvalidParameter) {
		t.Fatalf("error = %v, want pulse.ErrInvalidParameter", err)
	}
}

func TestTargetsSorted(t *testing.T) {
	seq, err := Build(map[string]pulse.Input{
		"Q02": pulse.Real{1},
		"Q00": pulse.Real{1},
		"Q01": pulse.Real{1},
	})
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"Q00", "Q01", "Q02"}
	got := seq.Targets()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("targets = %v, want %v", got, want)
		}
	}
}

func TestRepeat(t *testing.T) {
	single, err := pulse.Rect{Duration: 20, Amplitude: 1}.Generate()
	if err != nil {
		t.Fatal(err)
	}
	seq, err := Build(map[string]pulse.Input{"Qxx": single})
	if err != nil {
		t.Fatal(err)
	}

	repeated, err := seq.Repeat(10)
	if err != nil {
		t.Fatal(err)
	}
	if repeated.Duration() != 200 {
		t.Fatalf("duration = %v, want 200", repeated.Duration())
	}
	if repeated.Waveform("Qxx").Duration() != 10*single.Duration() {
		t.Fatalf("waveform duration = %v, want %v", repeated.Waveform("Qxx").Duration(), 10*single.Duration())
	}

	if _, err := seq.Repeat(0); !errors.Is(err, pulse.ErrInvalidParameter) {
		t.Fatalf("Repeat(0) error = %v, want pulse.ErrInvalidParameter", err)
	}
}

func TestValidate(t *testing.T) {
	seq, err := Build(map[string]pulse.Input{"Q00": pulse.Real{1, 2}})
	if err != nil {
		t.Fatal(err)
	}
	if err := seq.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
}
