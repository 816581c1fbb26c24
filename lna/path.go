package lna

import (
	"gonum.org/v1/gonum/mat"
)

// Path is a sampled LNA path: the time grid plus the cumulative
// incidence of every event type at each grid point. Incidence is
// events x times, non-decreasing along the time axis by construction.
type Path struct {
	Times     TimeGrid
	Incidence *mat.Dense
}

// Matrix materializes the (events+1) x times layout with the time grid
// as row 0, the form consumed by the measurement process.
func (p *Path) Matrix() *mat.Dense {
	e, n := p.Incidence.Dims()
	out := mat.NewDense(e+1, n, nil)
	out.SetRow(0, p.Times)
	for i := 0; i < e; i++ {
		out.SetRow(i+1, p.Incidence.RawRowView(i))
	}
	return out
}

// PathState is the decomposition of an existing path used for density
// evaluation: the path itself, its stochastic residual, the
// deterministic drift, the residual conditional means, and the
// per-time-point diffusion covariance slices.
//
// Residual is rewritten in place by Density as reintegration proceeds;
// every other field is passed through untouched.
type PathState struct {
	LNAPath *mat.Dense

	// ResPath holds the sampled residual path, one row per time point,
	// column 0 the time.
	ResPath *mat.Dense

	Drift *mat.Dense

	// Residual holds the conditional means of the residual process, one
	// row per time point (no time column).
	Residual *mat.Dense

	// Diffusion holds one covariance slice per time point, index-aligned
	// with the grid. Slice 0 is never scored.
	Diffusion []*mat.SymDense

	// DataLogLik is the measurement-process log-likelihood attached to
	// the path; carried along unchanged.
	DataLogLik float64
}
