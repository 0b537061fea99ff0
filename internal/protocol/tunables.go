package protocol

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tunables holds the optional knobs an operator can override via the -c
// flag: the alias urn's rebuild bounds, the multi-batched simulator's
// initial epoch length, and logging settings. None of these are simulation
// state — every field here is a constant for the whole run, not something
// that persists across runs.
type Tunables struct {
	Alias    AliasTunables    `yaml:"alias"`
	Epoch    EpochTunables    `yaml:"epoch"`
	Reporting ReportingTunables `yaml:"reporting"`
}

// AliasTunables overrides the alias urn's rebuild bounds.
type AliasTunables struct {
	Alpha float64 `yaml:"alpha"`
	Beta  float64 `yaml:"beta"`
}

// EpochTunables overrides the multi-batched simulator's initial epoch
// length. Zero means "use the derived default".
type EpochTunables struct {
	Initial uint64 `yaml:"initial"`
}

// ReportingTunables controls the structured logger's verbosity and output
// format.
type ReportingTunables struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// DefaultTunables returns the values used when no -c file is given.
func DefaultTunables() *Tunables {
	return &Tunables{
		Alias: AliasTunables{Alpha: 0.8, Beta: 1.5},
		Reporting: ReportingTunables{
			LogLevel:  "info",
			LogFormat: "text",
		},
	}
}

// LoadTunables reads tunables from a YAML file at path, layered over the
// defaults so a partial file only overrides what it mentions.
func LoadTunables(path string) (*Tunables, error) {
	cfg := DefaultTunables()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading tunables file: %v", ErrInvalidInput, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: parsing tunables file: %v", ErrInvalidInput, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the alpha/beta rebuild bounds match the alias urn's
// domain constraints.
func (t *Tunables) Validate() error {
	if t.Alias.Alpha <= 0 || t.Alias.Alpha >= 1 {
		return fmt.Errorf("%w: alias.alpha must be in (0,1), got %v", ErrInvalidInput, t.Alias.Alpha)
	}
	if t.Alias.Beta <= 1 {
		return fmt.Errorf("%w: alias.beta must be > 1, got %v", ErrInvalidInput, t.Alias.Beta)
	}
	return nil
}
