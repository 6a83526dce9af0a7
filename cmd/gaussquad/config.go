package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gaussquad/gaussquad/convergence"
)

// config is the content of a sweep configuration file.
// Command line flags take precedence over its values.
type config struct {
	Sweep     convergence.ParametersLiteral `yaml:"sweep"`
	Integrand string                        `yaml:"integrand"`
	Highlight []int                         `yaml:"highlight"`
	Tail      int                           `yaml:"tail"`
	Tolerance float64                       `yaml:"tolerance"`
	Plot      string                        `yaml:"plot,omitempty"`
}

func defaultConfig() config {
	return config{
		Sweep:     convergence.DefaultParametersLiteral,
		Integrand: "sin2",
		Highlight: []int{5, 20},
		Tail:      5,
		Tolerance: 1e-9,
	}
}

// loadConfig reads a YAML configuration file on top of the defaults.
// Unknown keys are rejected.
func loadConfig(path string) (cfg config, err error) {

	cfg = defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err = dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, nil
}

// marshalConfig returns the YAML form of cfg, as accepted by loadConfig.
func marshalConfig(cfg config) ([]byte, error) {
	return yaml.Marshal(cfg)
}
