package experiment

import (
	"errors"
	"fmt"
	"sort"
)

type priorFrequency struct {
	label     string
	frequency float64
}

// Override records the prior frequencies of a set of targets so they can
// be restored later. Overrides nest: an inner Restore only touches the
// targets it overrode itself.
type Override struct {
	registry *Registry
	prior    []priorFrequency
	restored bool
}

// BeginOverride records the current frequency of every target in
// frequencies and applies the new values. Targets are applied in sorted
// label order so restoration order is deterministic. If any target is
// unknown, already-applied overrides are rolled back and an error wrapping
// ErrInvalidParameter is returned.
func (r *Registry) BeginOverride(frequencies map[string]float64) (*Override, error) {
	labels := make([]string, 0, len(frequencies))
	for label := range frequencies {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	ov := &Override{registry: r}
	for _, label := range labels {
		prior, err := r.Frequency(label)
		if err != nil {
			_ = ov.Restore()
			return nil, err
		}
		if err := r.SetFrequency(label, frequencies[label]); err != nil {
			_ = ov.Restore()
			return nil, err
		}
		ov.prior = append(ov.prior, priorFrequency{label: label, frequency: prior})
	}
	return ov, nil
}

// Restore puts every recorded frequency back, in reverse application
// order. A target that no longer exists yields an error wrapping ErrState
// for that step, but the remaining targets are still restored. Restore is
// idempotent; only the first call has an effect.
func (o *Override) Restore() error {
	if o.restored {
		return nil
	}
	o.restored = true

	var errs []error
	for i := len(o.prior) - 1; i >= 0; i-- {
		p := o.prior[i]
		if err := o.registry.SetFrequency(p.label, p.frequency); err != nil {
			errs = append(errs, fmt.Errorf("experiment: restore %q: %w", p.label, ErrState))
		}
	}
	return errors.Join(errs...)
}

// WithOverrides applies frequencies, runs fn and restores the prior values
// on every exit path. A restoration failure is joined onto fn's error.
func (r *Registry) WithOverrides(frequencies map[string]float64, fn func() error) (err error) {
	ov, err := r.BeginOverride(frequencies)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, ov.Restore())
	}()
	return fn()
}
