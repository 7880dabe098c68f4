package experiment

import "time"

// MeasureMode selects aggregated or per-shot collection.
type MeasureMode string

const (
	// ModeAvg folds all shots into one complex mean per target.
	ModeAvg MeasureMode = "avg"
	// ModeSingle keeps every shot's value per target.
	ModeSingle MeasureMode = "single"
)

func (m MeasureMode) valid() bool {
	return m == ModeAvg || m == ModeSingle
}

// MeasureData holds the values measured for one target: a single averaged
// value in avg mode, or one value per shot in single mode.
type MeasureData struct {
	Target string
	Values []complex128
}

// MeasureResult is the outcome of one measurement, keyed by target.
type MeasureResult struct {
	Mode      MeasureMode
	Data      map[string]MeasureData
	CreatedAt time.Time
}

// Value returns the first measured value for target. For avg mode this is
// the complex mean.
func (r *MeasureResult) Value(target string) (complex128, bool) {
	d, ok := r.Data[target]
	if !ok || len(d.Values) == 0 {
		return 0, false
	}
	return d.Values[0], true
}

// SweepResult aggregates per-point measurements along an ordered sweep
// axis. Points[i] corresponds to SweepRange[i]; on a fail-fast abort the
// slices hold only the completed points.
type SweepResult struct {
	Mode       MeasureMode
	SweepRange []float64
	Points     []*MeasureResult
	CreatedAt  time.Time
}

// Signals returns one value per completed sweep point for target: the
// averaged value in avg mode, the first shot in single mode.
func (s *SweepResult) Signals(target string) []complex128 {
	out := make([]complex128, 0, len(s.Points))
	for _, p := range s.Points {
		v, ok := p.Value(target)
		if !ok {
			continue
		}
		out = append(out, v)
	}
	return out
}

// Len returns the number of completed sweep points.
func (s *SweepResult) Len() int {
	return len(s.Points)
}
