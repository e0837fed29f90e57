// Package sim simulates ensembles of inventory paths under an (s, S)
// reorder-point policy with geometric demand.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - simulator.go: the transition rule, the single-path simulator, and the
//     time-major batched multi-path simulator
//   - parallel.go: the coarse chunk dispatcher and the fine-grained baseline
//     it is measured against
//   - rng.go: master-seed and per-chunk stream derivation
//
// # Determinism
//
// Every operation takes a Config carrying an explicit seed and produces
// bit-identical output for equal Configs. Parallel chunks draw from isolated
// streams derived via ChunkSeed, so chunk results are independent of
// scheduling order and reproducible per chunk in isolation.
//
// # Extension points
//
//   - DemandSampler: demand shock generation; GeometricSampler is the
//     provided implementation
//
// Supporting pieces: policy.go (policy validation), config.go (run
// configuration), ensemble.go (the dense result buffer), scenario.go (YAML
// run descriptions for the CLI).
package sim
