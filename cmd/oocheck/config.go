package main

import (
	"os"

	"github.com/goccy/go-yaml"
)

// config is the shape of an optional .oocheck.yaml, SPEC_FULL.md's
// DOMAIN STACK configuration surface. ReinsertLimit documents the
// Unifier's reinsertion discipline (spec.md §4.7) for operators tuning
// CLI behavior; the engine itself reinserts a constraint exactly once
// before reporting Ambiguous (internal/unify.reinsertOrFail) and does not
// take a runtime override, so this field is read and surfaced in
// --verbose output but does not change solving.
type config struct {
	ReinsertLimit int  `yaml:"reinsertLimit"`
	StrictRaises  bool `yaml:"strictRaises"`
}

func defaultConfig() config {
	return config{ReinsertLimit: 1, StrictRaises: false}
}

// loadConfig reads path if it exists, overlaying its fields onto the
// defaults; a missing file is not an error, mirroring an optional
// project-local config the teacher's cobra CLI does not need but this
// one's DOMAIN STACK calls for.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
