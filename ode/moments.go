package ode

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

var (
	_ System = (*SampleSystem)(nil)
	_ System = (*DensitySystem)(nil)
)

// moments holds the pieces shared by the two moment systems: the
// compartment volumes implied by the current mean log increments, the
// event rates there, and the Jacobian of the log-scale drift.
type moments struct {
	model     Model
	initStart int

	x     []float64  // compartment volumes
	lam   []float64  // event rates
	jacX  *mat.Dense // d rates / d volumes (events x compartments)
	jacMu *mat.Dense // d drift / d mu (events x events)
}

func newMoments(model Model, initStart int) moments {
	e := model.NumEvents()
	c := model.NumComps()
	return moments{
		model:     model,
		initStart: initStart,
		x:         make([]float64, c),
		lam:       make([]float64, e),
		jacX:      mat.NewDense(e, c, nil),
		jacMu:     mat.NewDense(e, e, nil),
	}
}

// drift evaluates the log-scale drift of the counting process at mean
// log increments mu and writes it into dmu, leaving the rates in m.lam
// and the drift Jacobian in m.jacMu.
//
// With eta = log(1 + N) and d[N] = lambda dt, Ito's formula gives
//     d eta = exp(-eta) lambda dt - 1/2 exp(-2 eta) lambda dt,
// with lambda evaluated at X = X0 + S (exp(eta) - 1).
func (m *moments) drift(mu, dmu []float64, p *Params) {
	e := m.model.NumEvents()
	c := m.model.NumComps()
	theta := p.Values()
	stoich := m.model.Stoich()

	for i := 0; i < c; i++ {
		v := theta[m.initStart+i]
		for j := 0; j < e; j++ {
			v += stoich.At(i, j) * (math.Exp(mu[j]) - 1)
		}
		if v < 0 {
			v = 0
		}
		m.x[i] = v
	}
	m.model.Rates(m.x, theta, m.lam)
	m.model.RatesJacobian(m.x, theta, m.jacX)

	for i := 0; i < e; i++ {
		em := math.Exp(-mu[i])
		dmu[i] = (em - 0.5*em*em) * m.lam[i]
	}

	// jacMu[i][j] = d dmu[i] / d mu[j], through both the explicit
	// exp(-mu[i]) factors and the volumes X(mu).
	for i := 0; i < e; i++ {
		emi := math.Exp(-mu[i])
		w := emi - 0.5*emi*emi
		for j := 0; j < e; j++ {
			g := 0.0
			for k := 0; k < c; k++ {
				g += m.jacX.At(i, k) * stoich.At(k, j)
			}
			v := w * g * math.Exp(mu[j])
			if i == j {
				v += (-emi + emi*emi) * m.lam[i]
			}
			m.jacMu.Set(i, j, v)
		}
	}
}

// SampleSystem is the moment system integrated during forward path
// sampling: drift and diffusion of the log-transformed counting
// process. The caller restarts the state at zero at the beginning of
// every interval, so the integrated state is the increment over the
// interval rather than an absolute moment.
//
// State layout: [ mu (E) | Sigma (E x E, row-major) ].
type SampleSystem struct {
	moments
	fs *mat.Dense // scratch for F Sigma
}

// NewSampleSystem builds the sampling moment system for model.
// initStart is the column at which the compartment volume block begins
// within a bound parameter row.
func NewSampleSystem(model Model, initStart int) *SampleSystem {
	e := model.NumEvents()
	return &SampleSystem{
		moments: newMoments(model, initStart),
		fs:      mat.NewDense(e, e, nil),
	}
}

func (s *SampleSystem) Dim() int {
	e := s.model.NumEvents()
	return e + e*e
}

func (s *SampleSystem) Derivs(t float64, state, deriv []float64, p *Params) {
	e := s.model.NumEvents()
	s.drift(state[:e], deriv[:e], p)

	// d Sigma = F Sigma + (F Sigma)^T + diag(exp(-2 mu) lambda)
	sigma := mat.NewDense(e, e, state[e:])
	dsigma := mat.NewDense(e, e, deriv[e:])
	s.fs.Mul(s.jacMu, sigma)
	dsigma.Add(s.fs, s.fs.T())
	for i := 0; i < e; i++ {
		em := math.Exp(-state[i])
		dsigma.Set(i, i, dsigma.At(i, i)+em*em*s.lam[i])
	}
}

// DensitySystem is the reduced moment system integrated during density
// evaluation: the drift of the log-transformed process and the
// linearized residual, carried across intervals without restarting.
//
// State layout: [ mu (E) | r (E) ].
type DensitySystem struct {
	moments
}

func NewDensitySystem(model Model, initStart int) *DensitySystem {
	return &DensitySystem{moments: newMoments(model, initStart)}
}

func (s *DensitySystem) Dim() int {
	return 2 * s.model.NumEvents()
}

func (s *DensitySystem) Derivs(t float64, state, deriv []float64, p *Params) {
	e := s.model.NumEvents()
	s.drift(state[:e], deriv[:e], p)

	// d r = F r
	for i := 0; i < e; i++ {
		v := 0.0
		for j := 0; j < e; j++ {
			v += s.jacMu.At(i, j) * state[e+j]
		}
		deriv[e+i] = v
	}
}
