// Package config loads experiment settings and the target registry from
// YAML files.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/cwbudde/algo-pulse/experiment"
	"github.com/cwbudde/algo-pulse/pulse"
)

// ConfigFileName is the name of the settings file.
const ConfigFileName = "algopulse.yaml"

// ConfigFileNameAlt is the alternate name of the settings file.
const ConfigFileNameAlt = "algopulse.yml"

// TargetConfig describes one control or readout channel.
type TargetConfig struct {
	Label     string  `koanf:"label"`
	Type      string  `koanf:"type"`      // qubit or resonator
	Frequency float64 `koanf:"frequency"` // GHz
}

// Settings holds experiment defaults and the target list.
type Settings struct {
	SamplingPeriod float64        `koanf:"sampling_period"` // ns
	Shots          int            `koanf:"shots"`
	Interval       float64        `koanf:"interval"`       // ns
	ControlWindow  float64        `koanf:"control_window"` // ns
	Targets        []TargetConfig `koanf:"targets"`
}

func defaults() map[string]any {
	return map[string]any{
		"sampling_period": pulse.DefaultSampleInterval,
		"shots":           experiment.DefaultShots,
		"interval":        float64(experiment.DefaultInterval),
		"control_window":  float64(experiment.DefaultControlWindow),
	}
}

// Load reads settings from path, filling unset fields with defaults.
func Load(path string) (*Settings, error) {
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("config: load defaults: %w", err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("config: load %s: %w", path, err)
	}

	var s Settings
	if err := k.Unmarshal("", &s); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadFromDir looks for algopulse.yaml or algopulse.yml in dir.
// Returns nil, nil if no settings file is found.
func LoadFromDir(dir string) (*Settings, error) {
	path := findConfigFile(dir)
	if path == "" {
		return nil, nil
	}
	return Load(path)
}

func findConfigFile(dir string) string {
	yamlPath := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(yamlPath); err == nil {
		return yamlPath
	}

	ymlPath := filepath.Join(dir, ConfigFileNameAlt)
	if _, err := os.Stat(ymlPath); err == nil {
		return ymlPath
	}

	return ""
}

// Validate checks settings consistency.
func (s *Settings) Validate() error {
	if s.SamplingPeriod <= 0 {
		return fmt.Errorf("config: sampling_period must be > 0: %g", s.SamplingPeriod)
	}
	if s.Shots < 1 {
		return fmt.Errorf("config: shots must be >= 1: %d", s.Shots)
	}
	if s.Interval <= 0 {
		return fmt.Errorf("config: interval must be > 0: %g", s.Interval)
	}
	if s.ControlWindow <= 0 {
		return fmt.Errorf("config: control_window must be > 0: %g", s.ControlWindow)
	}
	for i, t := range s.Targets {
		if t.Label == "" {
			return fmt.Errorf("config: target %d: label must not be empty", i)
		}
		switch experiment.TargetType(t.Type) {
		case experiment.TargetQubit, experiment.TargetResonator:
		default:
			return fmt.Errorf("config: target %q: unknown type %q", t.Label, t.Type)
		}
	}
	return nil
}

// Registry builds a target registry from the settings.
func (s *Settings) Registry() *experiment.Registry {
	targets := make([]experiment.Target, len(s.Targets))
	for i, t := range s.Targets {
		targets[i] = experiment.Target{
			Label:     t.Label,
			Type:      experiment.TargetType(t.Type),
			Frequency: t.Frequency,
		}
	}
	return experiment.NewRegistry(targets...)
}
