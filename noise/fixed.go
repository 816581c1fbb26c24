package noise

import (
	"gonum.org/v1/gonum/mat"
)

var _ Source = (*Fixed)(nil)

// Fixed replays a preset perturbation matrix. Used to pin down the
// randomness in tests and when re-mapping a stored path under new
// parameters.
type Fixed struct {
	M *mat.Dense
}

func (f *Fixed) Draw(rows, cols int) *mat.Dense {
	r, c := f.M.Dims()
	if r != rows || c != cols {
		panic("noise: fixed perturbation matrix has wrong shape")
	}
	return mat.DenseCopyOf(f.M)
}
