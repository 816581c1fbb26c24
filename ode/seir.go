package ode

import (
	"gonum.org/v1/gonum/mat"
)

var (
	seir *SEIR
	_    Model = seir
)

// SEIR extends SIR with a latent compartment. Events: exposure
// (S -> E) at rate beta*S*I/N, progression (E -> I) at rate sigma*E,
// and recovery (I -> R) at rate gamma*I.
//
// Parameter row layout: theta[0] = beta, theta[1] = sigma,
// theta[2] = gamma, volume block (S, E, I, R) at the schedule's offset.
type SEIR struct {
	stoich *mat.Dense
}

func NewSEIR() *SEIR {
	return &SEIR{
		stoich: mat.NewDense(4, 3, []float64{
			-1, 0, 0,
			1, -1, 0,
			0, 1, -1,
			0, 0, 1,
		}),
	}
}

func (m *SEIR) NumComps() int  { return 4 }
func (m *SEIR) NumEvents() int { return 3 }

func (m *SEIR) Stoich() *mat.Dense { return m.stoich }

func (m *SEIR) Rates(x, theta, out []float64) {
	n := x[0] + x[1] + x[2] + x[3]
	if n <= 0 {
		out[0], out[1], out[2] = 0, 0, 0
		return
	}
	out[0] = theta[0] * x[0] * x[2] / n
	out[1] = theta[1] * x[1]
	out[2] = theta[2] * x[2]
}

func (m *SEIR) RatesJacobian(x, theta []float64, out *mat.Dense) {
	n := x[0] + x[1] + x[2] + x[3]
	if n <= 0 {
		out.Zero()
		return
	}
	beta, sigma, gamma := theta[0], theta[1], theta[2]
	s, i := x[0], x[2]
	out.Zero()
	out.Set(0, 0, beta*i/n-beta*s*i/(n*n))
	out.Set(0, 1, -beta*s*i/(n*n))
	out.Set(0, 2, beta*s/n-beta*s*i/(n*n))
	out.Set(0, 3, -beta*s*i/(n*n))
	out.Set(1, 1, sigma)
	out.Set(2, 2, gamma)
}
