package noise

import (
	"gonum.org/v1/gonum/mat"
)

// Source supplies the stochastic perturbations driving a path proposal.
// Draw returns a rows x cols matrix of independent standard-normal
// variates. Implementations must be injectable so that tests and
// reproducible runs can fix the randomness.
type Source interface {
	Draw(rows, cols int) *mat.Dense
}
