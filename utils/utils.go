package utils

import (
	"gonum.org/v1/gonum/mat"
)

// Identity matrix.
func Eye(n int) *mat.Dense {
	out := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		out.Set(i, i, 1)
	}
	return out
}

// Symmatu mirrors the upper triangle of a square matrix into a symmetric
// matrix, discarding the lower triangle. Numeric integration of the
// diffusion ODEs only keeps one triangle reliable, so the upper one is
// taken as canonical.
func Symmatu(a *mat.Dense) *mat.SymDense {
	n, _ := a.Dims()
	data := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			data[i*n+j] = a.At(i, j)
			data[j*n+i] = a.At(i, j)
		}
	}
	return mat.NewSymDense(n, data)
}

// ClampNonNeg zeroes every negative element of x in place.
func ClampNonNeg(x []float64) {
	for i, v := range x {
		if v < 0 {
			x[i] = 0
		}
	}
}
