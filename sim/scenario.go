package sim

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Scenario is one simulation run described as a YAML document.
// Loaded from disk via LoadScenario(path).
//
// Example:
//
//	seed: 42
//	reorder_point: 10
//	order_up_to: 100
//	demand_p: 0.4
//	initial_level: 50
//	num_paths: 100000
//	sim_length: 1000
//	chunks: 8
type Scenario struct {
	Seed         int64   `yaml:"seed"`
	ReorderPoint float64 `yaml:"reorder_point"`
	OrderUpTo    float64 `yaml:"order_up_to"`
	DemandP      float64 `yaml:"demand_p"`
	InitialLevel float64 `yaml:"initial_level"`
	NumPaths     int     `yaml:"num_paths"`
	SimLength    int     `yaml:"sim_length"`
	Chunks       int     `yaml:"chunks,omitempty"`
}

// LoadScenario reads and validates a scenario YAML file. A missing chunks
// field defaults to 1 (sequential) with a warning.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if sc.Chunks == 0 {
		logrus.Warnf("scenario %s has no chunks field; defaulting to 1 (sequential)", path)
		sc.Chunks = 1
	}
	if err := sc.Config().Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario %s: %w", path, err)
	}
	return &sc, nil
}

// Config converts the scenario to a run configuration.
func (sc *Scenario) Config() Config {
	return Config{
		Policy: Policy{
			ReorderPoint: sc.ReorderPoint,
			OrderUpTo:    sc.OrderUpTo,
		},
		DemandP:      sc.DemandP,
		InitialLevel: sc.InitialLevel,
		NumPaths:     sc.NumPaths,
		SimLength:    sc.SimLength,
		ChunkCount:   sc.Chunks,
		Seed:         sc.Seed,
	}
}
