package sim

// Ensemble is a dense, row-major collection of simulated inventory paths.
// Row p holds path p's levels for periods 0..SimLength-1. The backing buffer
// is allocated once per simulation call and is not mutated after the call
// returns.
type Ensemble struct {
	numPaths  int
	simLength int
	data      []float64
}

func newEnsemble(numPaths, simLength int) *Ensemble {
	return &Ensemble{
		numPaths:  numPaths,
		simLength: simLength,
		data:      make([]float64, numPaths*simLength),
	}
}

// NumPaths returns the number of rows.
func (e *Ensemble) NumPaths() int {
	return e.numPaths
}

// SimLength returns the number of periods per row.
func (e *Ensemble) SimLength() int {
	return e.simLength
}

// At returns the level of path p at period t.
func (e *Ensemble) At(p, t int) float64 {
	return e.data[p*e.simLength+t]
}

// Row returns path p's trajectory as a view over the shared backing buffer.
func (e *Ensemble) Row(p int) []float64 {
	off := p * e.simLength
	return e.data[off : off+e.simLength : off+e.simLength]
}

// Rows returns per-path views over the shared backing buffer, one slice per
// path in index order.
func (e *Ensemble) Rows() [][]float64 {
	rows := make([][]float64, e.numPaths)
	for p := range rows {
		rows[p] = e.Row(p)
	}
	return rows
}

// block returns the row range [lo, hi) as a view sharing the backing buffer.
// Parallel workers write through disjoint blocks, so the buffer itself needs
// no synchronization.
func (e *Ensemble) block(lo, hi int) *Ensemble {
	return &Ensemble{
		numPaths:  hi - lo,
		simLength: e.simLength,
		data:      e.data[lo*e.simLength : hi*e.simLength],
	}
}
