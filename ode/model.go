package ode

import (
	"gonum.org/v1/gonum/mat"
)

// Model describes a compartmental Markov jump process: its event rates,
// their sensitivity to the compartment volumes, and the stoichiometry
// mapping events to volume changes. The moment systems are assembled
// from a Model, so adding a new compartmental model means implementing
// this interface and nothing else.
type Model interface {
	NumComps() int
	NumEvents() int

	// Stoich returns the compartments x events stoichiometry matrix.
	Stoich() *mat.Dense

	// Rates writes the event rates at compartment volumes x under the
	// parameter row theta into out (length NumEvents).
	Rates(x, theta, out []float64)

	// RatesJacobian writes the derivative of the event rates with
	// respect to the compartment volumes into out (events x compartments).
	RatesJacobian(x, theta []float64, out *mat.Dense)
}
