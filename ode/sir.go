package ode

import (
	"gonum.org/v1/gonum/mat"
)

var (
	sir *SIR
	_   Model = sir // Check that SIR respects the Model interface.
)

// SIR is the susceptible-infectious-removed model with frequency
// dependent transmission. Events: infection (S -> I) at rate
// beta*S*I/N and recovery (I -> R) at rate gamma*I.
//
// Parameter row layout: theta[0] = beta, theta[1] = gamma. The
// compartment volume block (S, I, R) lives wherever the schedule puts
// it; the moment systems read it through their initStart offset.
type SIR struct {
	stoich *mat.Dense
}

func NewSIR() *SIR {
	return &SIR{
		stoich: mat.NewDense(3, 2, []float64{
			-1, 0,
			1, -1,
			0, 1,
		}),
	}
}

func (m *SIR) NumComps() int  { return 3 }
func (m *SIR) NumEvents() int { return 2 }

func (m *SIR) Stoich() *mat.Dense { return m.stoich }

func (m *SIR) Rates(x, theta, out []float64) {
	n := x[0] + x[1] + x[2]
	if n <= 0 {
		out[0], out[1] = 0, 0
		return
	}
	out[0] = theta[0] * x[0] * x[1] / n
	out[1] = theta[1] * x[1]
}

func (m *SIR) RatesJacobian(x, theta []float64, out *mat.Dense) {
	n := x[0] + x[1] + x[2]
	if n <= 0 {
		out.Zero()
		return
	}
	beta, gamma := theta[0], theta[1]
	s, i := x[0], x[1]
	// d(beta*S*I/N)/dX, with N = S+I+R varying in every compartment.
	out.Set(0, 0, beta*i/n-beta*s*i/(n*n))
	out.Set(0, 1, beta*s/n-beta*s*i/(n*n))
	out.Set(0, 2, -beta*s*i/(n*n))
	out.Set(1, 0, 0)
	out.Set(1, 1, gamma)
	out.Set(1, 2, 0)
}
