package experiment

import (
	"fmt"
	"sort"
	"sync"
)

// TargetType distinguishes control and readout channels.
type TargetType string

const (
	TargetQubit     TargetType = "qubit"
	TargetResonator TargetType = "resonator"
)

// Target identifies a control or readout channel and carries its nominal
// frequency in GHz.
type Target struct {
	Label     string
	Type      TargetType
	Frequency float64
}

// Registry holds the targets known to one device session. It is an
// explicit, passed-by-reference object owned by the Experiment; there is
// no process-wide registry.
type Registry struct {
	mu      sync.Mutex
	targets map[string]Target
}

// NewRegistry creates a Registry holding the given targets.
func NewRegistry(targets ...Target) *Registry {
	r := &Registry{targets: make(map[string]Target, len(targets))}
	for _, t := range targets {
		r.targets[t.Label] = t
	}
	return r
}

// Add inserts or replaces a target.
func (r *Registry) Add(t Target) error {
	if t.Label == "" {
		return fmt.Errorf("experiment: target label must not be empty: %w", ErrInvalidParameter)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.targets[t.Label] = t
	return nil
}

// Remove deletes a target. Removing an unknown label is a no-op.
func (r *Registry) Remove(label string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.targets, label)
}

// Target returns the target for label.
func (r *Registry) Target(label string) (Target, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.targets[label]
	return t, ok
}

// Labels returns all target labels in sorted order.
func (r *Registry) Labels() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.targets))
	for label := range r.targets {
		out = append(out, label)
	}
	sort.Strings(out)
	return out
}

// Frequency returns the current frequency of label in GHz.
func (r *Registry) Frequency(label string) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.targets[label]
	if !ok {
		return 0, fmt.Errorf("experiment: unknown target %q: %w", label, ErrInvalidParameter)
	}
	return t.Frequency, nil
}

// SetFrequency updates the frequency of label in GHz.
func (r *Registry) SetFrequency(label string, frequency float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.targets[label]
	if !ok {
		return fmt.Errorf("experiment: unknown target %q: %w", label, ErrInvalidParameter)
	}
	t.Frequency = frequency
	r.targets[label] = t
	return nil
}
