// sim/simulator.go
package sim

import "math/rand"

// Transition computes the next inventory level under pol given the current
// level x and the period's demand shock d.
//
// The reorder decision reads the pre-demand level: at or below the reorder
// point, stock is brought up to S and the same period's demand then depletes
// the freshly restocked level (the order arrives before demand is realized).
// Demand beyond available stock is lost, never backlogged, so the result is
// floored at 0. Pure and total for all x >= 0, d >= 0.
func Transition(x, d float64, pol Policy) float64 {
	level := x
	if x <= pol.ReorderPoint {
		level = pol.OrderUpTo
	}
	if d >= level {
		return 0
	}
	return level - d
}

// SimulateOne generates a single trajectory of length cfg.SimLength with
// index 0 set to cfg.InitialLevel. Demand draws come from the master-seed
// stream in time order, so the result equals row 0 of a NumPaths=1 batch run
// with the same seed. cfg.NumPaths and cfg.ChunkCount are ignored.
func SimulateOne(cfg Config) ([]float64, error) {
	if err := cfg.validatePath(); err != nil {
		return nil, err
	}
	sampler, err := NewGeometricSampler(cfg.DemandP)
	if err != nil {
		return nil, err
	}

	rng := NewPartitionedRNG(NewSimulationKey(cfg.Seed)).ForChunk(0)
	path := make([]float64, cfg.SimLength)
	path[0] = cfg.InitialLevel
	for t := 0; t < cfg.SimLength-1; t++ {
		d := float64(sampler.Sample(rng))
		path[t+1] = Transition(path[t], d, cfg.Policy)
	}
	return path, nil
}

// SimulateBatch generates cfg.NumPaths independent trajectories in lock-step
// time order: for each period it draws one batch of shocks (one per path, in
// path order) from the master-seed stream, then advances every path before
// moving to the next period. Time-major, path-minor ordering is an invariant
// callers may rely on for reproducibility. cfg.ChunkCount is ignored.
func SimulateBatch(cfg Config) (*Ensemble, error) {
	if err := cfg.validateEnsemble(); err != nil {
		return nil, err
	}
	sampler, err := NewGeometricSampler(cfg.DemandP)
	if err != nil {
		return nil, err
	}

	ens := newEnsemble(cfg.NumPaths, cfg.SimLength)
	rng := NewPartitionedRNG(NewSimulationKey(cfg.Seed)).ForChunk(0)
	simulateBlock(ens, cfg, sampler, rng)
	return ens, nil
}

// simulateBlock runs the time-major loop over every row of ens, drawing one
// batch of shocks per period from rng. Periods are strictly sequential and
// rows advance in index order within a period, so the draw order is fully
// determined by the block size and the stream. Paths never read each other's
// state, which is what makes the chunked decomposition in parallel.go valid.
func simulateBlock(ens *Ensemble, cfg Config, sampler DemandSampler, rng *rand.Rand) {
	for p := 0; p < ens.numPaths; p++ {
		ens.Row(p)[0] = cfg.InitialLevel
	}
	shocks := make([]int, ens.numPaths)
	for t := 0; t < ens.simLength-1; t++ {
		sampler.Fill(rng, shocks)
		for p := 0; p < ens.numPaths; p++ {
			row := ens.Row(p)
			row[t+1] = Transition(row[t], float64(shocks[p]), cfg.Policy)
		}
	}
}
