package device

import (
	"context"
	"testing"

	"github.com/cwbudde/algo-pulse/experiment"
	"github.com/cwbudde/algo-pulse/pulse"
	"github.com/cwbudde/algo-pulse/sequence"
)

func testRegistry() *experiment.Registry {
	return experiment.NewRegistry(
		experiment.Target{Label: "Q00", Type: experiment.TargetQubit, Frequency: 7.648},
	)
}

func testSequence(t *testing.T) *sequence.Sequence {
	t.Helper()
	seq, err := sequence.Build(map[string]pulse.Input{
		"Q00": pulse.IQ{0.01 + 0.01i, 0.01 + 0.01i, 0.01 + 0.01i},
	})
	if err != nil {
		t.Fatal(err)
	}
	return seq
}

func TestSimulatorShotCount(t *testing.T) {
	sim := NewSimulator(testRegistry())

	raw, err := sim.Execute(context.Background(), testSequence(t), experiment.ExecOptions{
		Shots:    128,
		Interval: 10240,
		Mode:     experiment.ModeSingle,
	})
	if err != nil {
		t.Fatal(err)
	}

	values, ok := raw.IQ["Q00"]
	if !ok {
		t.Fatal("missing target Q00")
	}
	if len(values) != 128 {
		t.Fatalf("shots = %d, want 128", len(values))
	}
}

func TestSimulatorDeterministic(t *testing.T) {
	a := NewSimulator(testRegistry(), WithSeed(42))
	b := NewSimulator(testRegistry(), WithSeed(42))
	opts := experiment.ExecOptions{Shots: 16, Interval: 10240, Mode: experiment.ModeSingle}

	rawA, err := a.Execute(context.Background(), testSequence(t), opts)
	if err != nil {
		t.Fatal(err)
	}
	rawB, err := b.Execute(context.Background(), testSequence(t), opts)
	if err != nil {
		t.Fatal(err)
	}

	for i := range rawA.IQ["Q00"] {
		if rawA.IQ["Q00"][i] != rawB.IQ["Q00"][i] {
			t.Fatalf("non-deterministic at shot %d", i)
		}
	}
}

func TestSimulatorFailureInjection(t *testing.T) {
	sim := NewSimulator(testRegistry(), FailAfter(2))
	opts := experiment.ExecOptions{Shots: 1, Interval: 10240, Mode: experiment.ModeAvg}

	if _, err := sim.Execute(context.Background(), testSequence(t), opts); err != nil {
		t.Fatalf("first execution failed: %v", err)
	}
	if _, err := sim.Execute(context.Background(), testSequence(t), opts); err == nil {
		t.Fatal("second execution should fail")
	}
}

func TestSimulatorCanceledContext(t *testing.T) {
	sim := NewSimulator(testRegistry())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts := experiment.ExecOptions{Shots: 1, Interval: 10240, Mode: experiment.ModeAvg}
	if _, err := sim.Execute(ctx, testSequence(t), opts); err == nil {
		t.Fatal("expected error from canceled context")
	}
}

func TestSimulatorAgainstOrchestrator(t *testing.T) {
	registry := testRegistry()
	e := experiment.New(registry, NewSimulator(registry, WithNoise(0)))

	result, err := e.Measure(context.Background(), map[string]pulse.Input{
		"Q00": pulse.IQ{0.01 + 0.01i, 0.01 + 0.01i, 0.01 + 0.01i, 0.01 + 0.01i, 0.01 + 0.01i},
	}, experiment.WithMode(experiment.ModeAvg), experiment.WithShots(1000))
	if err != nil {
		t.Fatal(err)
	}

	d, ok := result.Data["Q00"]
	if !ok {
		t.Fatal("missing target Q00")
	}
	if len(d.Values) != 1 {
		t.Fatalf("avg mode values = %d, want 1", len(d.Values))
	}
}
