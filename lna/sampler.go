package lna

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/haoyuwlab/stemr/noise"
	"github.com/haoyuwlab/stemr/ode"
	"github.com/haoyuwlab/stemr/utils"
)

// DefaultSampleStep bounds the integrator's internal step during
// forward sampling. Forward proposals use a small step to control
// integration bias; density reintegration tolerates a much larger one.
const DefaultSampleStep = 1e-3

// Sampler forward-simulates LNA paths on the natural cumulative
// incidence scale. A path is a deterministic function of the
// perturbation draws given the parameter schedule (non-centered
// parameterization), so the same draws can be re-mapped under new
// parameters without redrawing randomness.
//
// Sample mutates the bound Params as a by-product; callers must not
// assume the binding is restored.
type Sampler struct {
	Times    TimeGrid
	Schedule *Schedule

	// InitStart is the column at which the compartment volume block
	// begins within a schedule row.
	InitStart int

	// Stoich is the compartments x events stoichiometry matrix.
	Stoich *mat.Dense

	Integrator ode.Integrator
	Params     *ode.Params

	// Step bounds the integrator's internal step; zero means
	// DefaultSampleStep.
	Step float64

	// Noise supplies perturbations when Sample is called with nil draws.
	Noise noise.Source
}

// Sample draws a new path from the given perturbations, or from the
// configured noise source when draws is nil. It returns the path and
// the perturbations actually used; the caller keeps both, since
// elliptical slice sampling re-scores the same draws later. The input
// draws matrix is never mutated.
func (s *Sampler) Sample(draws *mat.Dense) (*Path, *mat.Dense, error) {
	if err := s.Times.Validate(); err != nil {
		return nil, nil, err
	}
	nComps, nEvents := s.Stoich.Dims()
	nTimes := len(s.Times)
	if err := s.Schedule.validate(nTimes, s.InitStart, nComps); err != nil {
		return nil, nil, err
	}
	if draws == nil {
		if s.Noise == nil {
			return nil, nil, fmt.Errorf("%w: nil draws and no noise source",
				ErrDimensionMismatch)
		}
		draws = s.Noise.Draw(nEvents, nTimes-1)
	}
	if r, c := draws.Dims(); r != nEvents || c != nTimes-1 {
		return nil, nil, fmt.Errorf("%w: draws are %dx%d, want %dx%d",
			ErrDimensionMismatch, r, c, nEvents, nTimes-1)
	}
	step := s.Step
	if step == 0 {
		step = DefaultSampleStep
	}

	// Bind the initial parameter row; row 0 is always honored.
	current := make([]float64, len(s.Schedule.Row(0)))
	copy(current, s.Schedule.Row(0))
	s.Params.Set(current)

	initVolumes := make([]float64, nComps)
	copy(initVolumes, current[s.InitStart:s.InitStart+nComps])

	stateVec := make([]float64, nEvents+nEvents*nEvents)
	drift := mat.NewVecDense(nEvents, nil)
	lower := mat.NewTriDense(nEvents, mat.Lower, nil)
	logInc := mat.NewVecDense(nEvents, nil)
	natInc := make([]float64, nEvents)
	cumInc := make([]float64, nEvents)
	volumes := make([]float64, nComps)
	var chol mat.Cholesky

	incidence := mat.NewDense(nEvents, nTimes, nil)

	for j := 0; j < nTimes-1; j++ {
		tL := s.Times[j]
		tR := s.Times[j+1]

		// Integrate the moment ODEs from zero over the interval, so the
		// integrator's output is the increment rather than the absolute
		// moment.
		for i := range stateVec {
			stateVec[i] = 0
		}
		s.Integrator.Integrate(stateVec, tL, tR, step)

		// Split the state buffer into drift and diffusion, keeping only
		// the reliable triangle of the latter.
		copy(drift.RawVector().Data, stateVec[:nEvents])
		diffusion := utils.Symmatu(mat.NewDense(nEvents, nEvents, stateVec[nEvents:]))

		if ok := chol.Factorize(diffusion); !ok {
			return nil, nil, fmt.Errorf("%w: diffusion matrix on [%g, %g]",
				ErrNotPositiveDefinite, tL, tR)
		}
		chol.LTo(lower)

		// log_inc = drift + L z_j
		logInc.MulVec(lower, draws.ColView(j))
		logInc.AddVec(logInc, drift)

		// Map to the natural scale; a negative increment is numerically
		// infeasible and is treated as "no occurrence".
		for i := 0; i < nEvents; i++ {
			v := math.Exp(logInc.AtVec(i)) - 1
			if v < 0 {
				v = 0
			}
			natInc[i] = v
		}

		floats.Add(cumInc, natInc)
		for i := 0; i < nEvents; i++ {
			incidence.Set(i, j+1, cumInc[i])
		}

		// volumes = initVolumes + S c_incid, clamped against
		// floating-point drift below zero.
		for i := 0; i < nComps; i++ {
			v := initVolumes[i]
			for k := 0; k < nEvents; k++ {
				v += s.Stoich.At(i, k) * cumInc[k]
			}
			volumes[i] = v
		}
		utils.ClampNonNeg(volumes)

		if s.Schedule.UpdateAt[j+1] {
			copy(current, s.Schedule.Row(j+1))
		}
		copy(current[s.InitStart:s.InitStart+nComps], volumes)
		s.Params.Set(current)
	}

	path := &Path{
		Times:     append(TimeGrid(nil), s.Times...),
		Incidence: incidence,
	}
	return path, draws, nil
}
