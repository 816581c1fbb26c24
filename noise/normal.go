package noise

import (
	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

var (
	normal *Normal
	_      Source = normal // Check that Normal respects the Source interface.
)

// Normal draws standard-normal perturbations from a seeded stream, so
// a path proposal is reproducible given the seed.
type Normal struct {
	dist distuv.Normal
}

func NewNormal(seed uint64) *Normal {
	return &Normal{
		dist: distuv.Normal{
			Mu:    0,
			Sigma: 1,
			Src:   rand.NewSource(seed),
		},
	}
}

func (n *Normal) Draw(rows, cols int) *mat.Dense {
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = n.dist.Rand()
	}
	return mat.NewDense(rows, cols, data)
}
