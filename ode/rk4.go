package ode

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

var (
	rk4 *RK4
	_   Integrator = rk4 // Check that RK4 respects the Integrator interface.
)

// RK4 integrates a System with the classical fourth-order Runge-Kutta
// scheme, using fixed steps that divide the interval evenly and never
// exceed the requested bound. A non-positive bound means a single step
// over the whole interval.
type RK4 struct {
	sys    System
	params *Params

	k1, k2, k3, k4, stage []float64
}

func NewRK4(sys System, params *Params) *RK4 {
	n := sys.Dim()
	return &RK4{
		sys:    sys,
		params: params,
		k1:     make([]float64, n),
		k2:     make([]float64, n),
		k3:     make([]float64, n),
		k4:     make([]float64, n),
		stage:  make([]float64, n),
	}
}

func (r *RK4) Integrate(state []float64, tLeft, tRight, step float64) {
	if tRight <= tLeft {
		return
	}
	n := 1
	if step > 0 {
		n = int(math.Ceil((tRight - tLeft) / step))
		if n < 1 {
			n = 1
		}
	}
	h := (tRight - tLeft) / float64(n)
	for i := 0; i < n; i++ {
		r.stepOnce(tLeft+float64(i)*h, h, state)
	}
}

func (r *RK4) stepOnce(t, h float64, state []float64) {
	r.sys.Derivs(t, state, r.k1, r.params)
	floats.AddScaledTo(r.stage, state, h/2, r.k1)
	r.sys.Derivs(t+h/2, r.stage, r.k2, r.params)
	floats.AddScaledTo(r.stage, state, h/2, r.k2)
	r.sys.Derivs(t+h/2, r.stage, r.k3, r.params)
	floats.AddScaledTo(r.stage, state, h, r.k3)
	r.sys.Derivs(t+h, r.stage, r.k4, r.params)
	for i := range state {
		state[i] += h / 6 * (r.k1[i] + 2*r.k2[i] + 2*r.k3[i] + r.k4[i])
	}
}
