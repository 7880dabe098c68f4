package experiment

import "errors"

// Errors returned by the orchestrator. Validation failures wrap
// ErrInvalidParameter, backend failures wrap ErrDevice and override
// restoration against a mutated registry wraps ErrState.
var (
	ErrInvalidParameter = errors.New("experiment: invalid parameter")
	ErrDevice           = errors.New("experiment: device failure")
	ErrState            = errors.New("experiment: stale registry state")
)
