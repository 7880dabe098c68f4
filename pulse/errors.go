package pulse

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParameter reports malformed shape or transform parameters.
// All validation failures in this package wrap it, so callers can test
// with errors.Is.
var ErrInvalidParameter = errors.New("pulse: invalid parameter")

func validateDuration(duration float64) error {
	if duration <= 0 || math.IsInf(duration, 0) || math.IsNaN(duration) {
		return fmt.Errorf("pulse: duration must be > 0: %g: %w", duration, ErrInvalidParameter)
	}
	return nil
}

func validateFinite(name string, v float64) error {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return fmt.Errorf("pulse: %s must be finite: %g: %w", name, v, ErrInvalidParameter)
	}
	return nil
}
