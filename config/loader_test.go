package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-pulse/experiment"
)

const sampleConfig = `
shots: 3000
targets:
  - label: Q00
    type: qubit
    frequency: 7.648
  - label: Q01
    type: qubit
    frequency: 8.275
  - label: R00
    type: resonator
    frequency: 10.332
`

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, ConfigFileName, sampleConfig)

	s, err := Load(path)
	require.NoError(t, err)

	// Explicit values.
	require.Equal(t, 3000, s.Shots)
	require.Len(t, s.Targets, 3)

	// Defaults fill unset fields.
	require.Equal(t, 2.0, s.SamplingPeriod)
	require.Equal(t, float64(experiment.DefaultInterval), s.Interval)
	require.Equal(t, float64(experiment.DefaultControlWindow), s.ControlWindow)
}

func TestLoadFromDir(t *testing.T) {
	path := writeConfig(t, ConfigFileNameAlt, sampleConfig)

	s, err := LoadFromDir(filepath.Dir(path))
	require.NoError(t, err)
	require.NotNil(t, s)
	require.Equal(t, 3000, s.Shots)

	s, err = LoadFromDir(t.TempDir())
	require.NoError(t, err)
	require.Nil(t, s)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad type", "targets:\n  - label: Q00\n    type: gate\n    frequency: 7.0\n"},
		{"empty label", "targets:\n  - label: \"\"\n    type: qubit\n    frequency: 7.0\n"},
		{"zero shots", "shots: 0\n"},
		{"negative interval", "interval: -1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, ConfigFileName, tt.content)
			_, err := Load(path)
			require.Error(t, err)
		})
	}
}

func TestRegistry(t *testing.T) {
	path := writeConfig(t, ConfigFileName, sampleConfig)

	s, err := Load(path)
	require.NoError(t, err)

	r := s.Registry()
	f, err := r.Frequency("Q00")
	require.NoError(t, err)
	require.Equal(t, 7.648, f)

	target, ok := r.Target("R00")
	require.True(t, ok)
	require.Equal(t, experiment.TargetResonator, target.Type)
}
