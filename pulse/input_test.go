package pulse

import (
	"errors"
	"testing"
)

func TestResolveIQ(t *testing.T) {
	in := IQ{0.1 + 0.1i, 0.2, 0.3i}

	wf, err := Resolve(in)
	if err != nil {
		t.Fatal(err)
	}
	if wf.Len() != 3 {
		t.Fatalf("len = %d, want 3", wf.Len())
	}
	if wf.SampleInterval() != DefaultSampleInterval {
		t.Fatalf("interval = %v, want default", wf.SampleInterval())
	}

	// The source slice must not be shared.
	in[0] = 9
	if wf.Values()[0] != 0.1+0.1i {
		t.Fatalf("resolved waveform shares backing array with input")
	}
}

func TestResolveReal(t *testing.T) {
	wf, err := Resolve(Real{0.5, -0.5}, WithSampleInterval(1))
	if err != nil {
		t.Fatal(err)
	}
	want := []complex128{0.5, -0.5}
	for i, v := range wf.Values() {
		if v != want[i] {
			t.Fatalf("index %d: got %v, want %v", i, v, want[i])
		}
	}
	if wf.SampleInterval() != 1 {
		t.Fatalf("interval = %v, want 1", wf.SampleInterval())
	}
}

func TestResolveWaveformPassthrough(t *testing.T) {
	src := New([]complex128{1, 2}, WithSampleInterval(4))

	wf, err := Resolve(src)
	if err != nil {
		t.Fatal(err)
	}
	// An existing waveform keeps its own grid, ignoring resolve options.
	if wf.SampleInterval() != 4 {
		t.Fatalf("interval = %v, want 4", wf.SampleInterval())
	}
}

func TestResolveNil(t *testing.T) {
	if _, err := Resolve(nil); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("Resolve(nil) error = %v, want ErrInvalidParameter", err)
	}
	var w *Waveform
	if _, err := Resolve(w); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("Resolve(nil waveform) error = %v, want ErrInvalidParameter", err)
	}
}
