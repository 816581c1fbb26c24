package lna

import "errors"

var (
	// ErrNotPositiveDefinite reports a diffusion or covariance matrix
	// that could not be factorized. It signals model or parameter
	// misspecification, is fatal to the current call, and is never
	// substituted or skipped; the orchestrating sampler decides what to
	// do with the rejected proposal.
	ErrNotPositiveDefinite = errors.New("lna: matrix not positive definite")

	// ErrDimensionMismatch reports inputs whose shapes are inconsistent
	// with the declared compartment and event counts.
	ErrDimensionMismatch = errors.New("lna: dimension mismatch")

	// ErrInvalidSchedule reports a parameter schedule whose rows or
	// update flags do not line up with the time grid.
	ErrInvalidSchedule = errors.New("lna: invalid parameter schedule")

	// ErrNotChronological reports a time grid that is not strictly
	// increasing.
	ErrNotChronological = errors.New("lna: time grid not strictly increasing")
)
