package ode

// System is a fixed-arity ODE system over a flat state buffer. The model
// moment equations (drift/diffusion for sampling, drift/residual for
// density evaluation) are Systems selected at construction time.
type System interface {
	// Dim is the length of the state buffer the system advances.
	Dim() int

	// Derivs writes the time derivative of state at time t into deriv.
	// Rate parameters are read from the bound Params.
	Derivs(t float64, state, deriv []float64, p *Params)
}

// Integrator advances a state buffer in place from tLeft to tRight,
// taking internal steps no larger than step. Implementations must be
// deterministic given identical inputs and bound parameters.
type Integrator interface {
	Integrate(state []float64, tLeft, tRight, step float64)
}
