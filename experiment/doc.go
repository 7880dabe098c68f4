// Package experiment orchestrates pulse measurements against a hardware
// backend: single measurements, repeated-pulse experiments and sequential
// parameter sweeps with result aggregation.
//
// An Experiment owns a target Registry and a Backend. Measure is blocking
// and serialized per Experiment instance; the backend is treated as a
// single-writer resource, so sweeps are strictly sequential.
//
// Frequencies can be overridden for the duration of a block with
// Registry.WithOverrides (or an explicit BeginOverride/Restore pair); prior
// values are restored on every exit path, including failure.
package experiment
