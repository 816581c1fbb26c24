package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"

	"github.com/haoyuwlab/stemr/utils"
)

// TestEye verifies the identity matrix helper.
func TestEye(t *testing.T) {
	eye := utils.Eye(3)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			assert.Equal(t, want, eye.At(i, j))
		}
	}
}

// TestSymmatu_EqualsOwnTranspose verifies that the symmetrized matrix
// equals its own transpose exactly, even for an asymmetric input.
func TestSymmatu_EqualsOwnTranspose(t *testing.T) {
	a := mat.NewDense(2, 2, []float64{
		1.0, 0.3,
		0.2999999, 2.0, // lower triangle polluted by integration error
	})
	sym := utils.Symmatu(a)
	assert.True(t, mat.Equal(sym, sym.T()), "symmetrized matrix must equal its transpose")
	assert.Equal(t, 0.3, sym.At(1, 0), "upper triangle is canonical")
}

// TestClampNonNeg verifies in-place clamping of negative entries.
func TestClampNonNeg(t *testing.T) {
	x := []float64{-0.5, 0.0, 1.5, -1e-12}
	utils.ClampNonNeg(x)
	assert.Equal(t, []float64{0, 0, 1.5, 0}, x)
}
