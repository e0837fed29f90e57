package sim

import (
	"fmt"
	"math"
)

// Config describes one simulation run. Every public operation reads its
// Config once, validates it eagerly, and never mutates it; equal Configs
// (same Seed included) produce bit-identical output.
type Config struct {
	Policy       Policy  // (s, S) reorder-point policy
	DemandP      float64 // geometric demand success probability, in (0, 1]
	InitialLevel float64 // inventory on hand at period 0, must be >= 0
	NumPaths     int     // independent trajectories in the ensemble, >= 1
	SimLength    int     // periods per trajectory including period 0, >= 1
	ChunkCount   int     // parallel chunks for SimulateParallel, 1 <= ChunkCount <= NumPaths
	Seed         int64   // master seed for demand generation
}

// Validate checks every field, ChunkCount included. SimulateOne and
// SimulateBatch validate only the fields they consume, so a Config with a
// zero ChunkCount is fine for those operations.
func (c Config) Validate() error {
	if err := c.validateEnsemble(); err != nil {
		return err
	}
	return c.validateChunks()
}

// validatePath covers the fields every operation consumes.
func (c Config) validatePath() error {
	if err := c.Policy.Validate(); err != nil {
		return err
	}
	if !(c.DemandP > 0 && c.DemandP <= 1) {
		return fmt.Errorf("demand probability must be in (0, 1], got %v", c.DemandP)
	}
	if c.InitialLevel < 0 {
		return fmt.Errorf("initial level must be >= 0, got %v", c.InitialLevel)
	}
	if c.SimLength < 1 {
		return fmt.Errorf("sim length must be >= 1, got %d", c.SimLength)
	}
	return nil
}

func (c Config) validateEnsemble() error {
	if err := c.validatePath(); err != nil {
		return err
	}
	if c.NumPaths < 1 {
		return fmt.Errorf("num paths must be >= 1, got %d", c.NumPaths)
	}
	if c.NumPaths > math.MaxInt/c.SimLength {
		return fmt.Errorf("ensemble of %d x %d levels exceeds addressable memory", c.NumPaths, c.SimLength)
	}
	return nil
}

func (c Config) validateChunks() error {
	if c.ChunkCount < 1 {
		return fmt.Errorf("chunk count must be >= 1, got %d", c.ChunkCount)
	}
	if c.ChunkCount > c.NumPaths {
		return fmt.Errorf("chunk count %d exceeds path count %d; every chunk must own at least one path",
			c.ChunkCount, c.NumPaths)
	}
	return nil
}
