package lna

import (
	"fmt"

	"gonum.org/v1/gonum/stat/distmv"

	"github.com/haoyuwlab/stemr/ode"
)

// DefaultDensityStep bounds the integrator's internal step during
// density reintegration.
const DefaultDensityStep = 1.0

// Density recomputes the log-density of an existing path whose residual
// draws have been resampled, as happens during elliptical slice
// sampling. Only the reduced drift+residual moment system is
// reintegrated; state.Residual is rewritten in place with the refreshed
// conditional means, and every stored residual row is scored against
// them under the matching diffusion slice. The accumulated
// log-likelihood is returned; everything else in state passes through
// untouched.
//
// The integrator state is carried across intervals rather than
// restarted, and after each interval its residual half is overwritten
// with the path's actual stored residual, re-synchronizing the
// deterministic carry-forward to the sampled path so integration error
// does not compound.
//
// Density mutates the bound Params as a by-product; callers must not
// assume the binding is restored. A step of zero means
// DefaultDensityStep.
func Density(state *PathState, times TimeGrid, sched *Schedule,
	integ ode.Integrator, params *ode.Params, step float64) (float64, error) {

	if err := times.Validate(); err != nil {
		return 0, err
	}
	nTimes := len(times)
	resRows, nEvents := state.Residual.Dims()
	if resRows != nTimes {
		return 0, fmt.Errorf("%w: residual process has %d rows for %d time points",
			ErrDimensionMismatch, resRows, nTimes)
	}
	if r, c := state.ResPath.Dims(); r != nTimes || c != nEvents+1 {
		return 0, fmt.Errorf("%w: residual path is %dx%d, want %dx%d",
			ErrDimensionMismatch, r, c, nTimes, nEvents+1)
	}
	if len(state.Diffusion) != nTimes {
		return 0, fmt.Errorf("%w: %d diffusion slices for %d time points",
			ErrDimensionMismatch, len(state.Diffusion), nTimes)
	}
	if err := sched.validate(nTimes, 0, 0); err != nil {
		return 0, err
	}
	if step == 0 {
		step = DefaultDensityStep
	}

	// Bind the initial parameter row; row 0 is always honored.
	current := make([]float64, len(sched.Row(0)))
	copy(current, sched.Row(0))
	params.Set(current)

	stateVec := make([]float64, 2*nEvents)
	mean := make([]float64, nEvents)
	actual := make([]float64, nEvents)
	logLik := 0.0

	for j := 1; j < nTimes; j++ {
		tL := times[j-1]
		tR := times[j]

		if sched.UpdateAt[j-1] {
			copy(current, sched.Row(j-1))
			params.Set(current)
		}

		// Carried forward, not restarted: the drift half continues the
		// deterministic path from the previous interval.
		integ.Integrate(stateVec, tL, tR, step)

		copy(mean, stateVec[nEvents:])
		state.Residual.SetRow(j, mean)

		for i := 0; i < nEvents; i++ {
			actual[i] = state.ResPath.At(j, i+1)
		}

		norm, ok := distmv.NewNormal(mean, state.Diffusion[j], nil)
		if !ok {
			return 0, fmt.Errorf("%w: diffusion slice %d", ErrNotPositiveDefinite, j)
		}
		logLik += norm.LogProb(actual)

		// Re-synchronize the carried state to the sampled path.
		copy(stateVec[nEvents:], actual)
	}
	return logLik, nil
}
