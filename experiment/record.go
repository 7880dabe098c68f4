package experiment

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// iqPoint is the serialized form of one complex value. YAML has no complex
// scalar, so I and Q are stored explicitly.
type iqPoint struct {
	I float64 `yaml:"i"`
	Q float64 `yaml:"q"`
}

func toPoints(values []complex128) []iqPoint {
	out := make([]iqPoint, len(values))
	for i, v := range values {
		out[i] = iqPoint{I: real(v), Q: imag(v)}
	}
	return out
}

func fromPoints(points []iqPoint) []complex128 {
	out := make([]complex128, len(points))
	for i, p := range points {
		out[i] = complex(p.I, p.Q)
	}
	return out
}

type recordPoint struct {
	Data map[string][]iqPoint `yaml:"data"`
}

// Record is a named, human-described snapshot of a sweep result. Saving
// and loading preserves the shot and sweep structure exactly.
type Record struct {
	ID          string      `yaml:"id"`
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	CreatedAt   time.Time   `yaml:"created_at"`
	Mode        MeasureMode `yaml:"mode"`
	SweepRange  []float64   `yaml:"sweep_range"`
	Points      []recordPoint
}

// NewRecord snapshots a sweep result under a name and description.
func NewRecord(name, description string, sweep *SweepResult) (*Record, error) {
	if sweep == nil {
		return nil, fmt.Errorf("experiment: nil sweep result: %w", ErrInvalidParameter)
	}
	rec := &Record{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		CreatedAt:   time.Now(),
		Mode:        sweep.Mode,
		SweepRange:  append([]float64(nil), sweep.SweepRange...),
	}
	for _, p := range sweep.Points {
		rp := recordPoint{Data: make(map[string][]iqPoint, len(p.Data))}
		for target, d := range p.Data {
			rp.Data[target] = toPoints(d.Values)
		}
		rec.Points = append(rec.Points, rp)
	}
	return rec, nil
}

// SweepResult reconstructs the recorded sweep result.
func (r *Record) SweepResult() *SweepResult {
	out := &SweepResult{
		Mode:       r.Mode,
		SweepRange: append([]float64(nil), r.SweepRange...),
		CreatedAt:  r.CreatedAt,
	}
	for _, rp := range r.Points {
		data := make(map[string]MeasureData, len(rp.Data))
		for target, points := range rp.Data {
			data[target] = MeasureData{Target: target, Values: fromPoints(points)}
		}
		out.Points = append(out.Points, &MeasureResult{
			Mode:      r.Mode,
			Data:      data,
			CreatedAt: r.CreatedAt,
		})
	}
	return out
}

// RecordStore persists records as YAML files in one directory.
type RecordStore struct {
	dir string
}

// NewRecordStore creates the directory if needed.
func NewRecordStore(dir string) (*RecordStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("experiment: create record dir: %w", err)
	}
	return &RecordStore{dir: dir}, nil
}

// Save writes the record and returns its file path.
func (s *RecordStore) Save(rec *Record) (string, error) {
	if rec == nil {
		return "", fmt.Errorf("experiment: nil record: %w", ErrInvalidParameter)
	}
	data, err := yaml.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("experiment: encode record: %w", err)
	}
	path := filepath.Join(s.dir, rec.ID+".yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("experiment: write record: %w", err)
	}
	return path, nil
}

// Load reads a record by ID.
func (s *RecordStore) Load(id string) (*Record, error) {
	path := filepath.Join(s.dir, id+".yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("experiment: read record %q: %w", id, err)
	}
	var rec Record
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("experiment: decode record %q: %w", id, err)
	}
	return &rec, nil
}
