package lna_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/haoyuwlab/stemr/lna"
	"github.com/haoyuwlab/stemr/noise"
	"github.com/haoyuwlab/stemr/ode"
)

// constIntegrator writes a fixed drift and diffusion into the state
// buffer regardless of the interval, standing in for the moment ODEs.
type constIntegrator struct {
	drift []float64
	diff  []float64 // row-major events x events
}

func (c *constIntegrator) Integrate(state []float64, tLeft, tRight, step float64) {
	copy(state, c.drift)
	copy(state[len(c.drift):], c.diff)
}

// recordingIntegrator snapshots the bound parameters at every call
// before delegating to a constIntegrator.
type recordingIntegrator struct {
	constIntegrator
	params *ode.Params
	seen   [][]float64
}

func (r *recordingIntegrator) Integrate(state []float64, tLeft, tRight, step float64) {
	r.seen = append(r.seen, append([]float64(nil), r.params.Values()...))
	r.constIntegrator.Integrate(state, tLeft, tRight, step)
}

// siSampler wires a two-compartment (S, I), one-event sampler around
// the given integrator. Row layout: [beta, S, I], volume block at 1.
func siSampler(integ ode.Integrator, params *ode.Params) *lna.Sampler {
	return &lna.Sampler{
		Times: lna.TimeGrid{0, 1, 2},
		Schedule: &lna.Schedule{
			Rows: mat.NewDense(3, 3, []float64{
				0.5, 10, 5,
				0.5, 10, 5,
				0.5, 10, 5,
			}),
			UpdateAt: []bool{true, false, false},
		},
		InitStart:  1,
		Stoich:     mat.NewDense(2, 1, []float64{-1, 1}),
		Integrator: integ,
		Params:     params,
	}
}

// TestSample_ZeroPerturbationZeroDrift verifies the boundary case: all
// perturbations and drifts zero means exp(0)-1 = 0 incidence
// everywhere and untouched volumes.
func TestSample_ZeroPerturbationZeroDrift(t *testing.T) {
	params := ode.NewParams(3)
	integ := &constIntegrator{drift: []float64{0}, diff: []float64{0.01}}
	s := siSampler(integ, params)

	path, _, err := s.Sample(mat.NewDense(1, 2, []float64{0, 0}))
	require.NoError(t, err)

	assert.True(t, mat.Equal(mat.NewDense(1, 3, nil), path.Incidence),
		"zero log-increments must give zero incidence")
	assert.Equal(t, []float64{10, 5}, params.Values()[1:],
		"volumes must be unchanged from initial")
}

// TestSample_ConstantDrift verifies the exponential map and the volume
// update against hand-computed values.
func TestSample_ConstantDrift(t *testing.T) {
	params := ode.NewParams(3)
	integ := &constIntegrator{drift: []float64{0.1}, diff: []float64{0.01}}
	s := siSampler(integ, params)

	path, _, err := s.Sample(mat.NewDense(1, 2, []float64{0, 0}))
	require.NoError(t, err)

	inc := math.Exp(0.1) - 1
	assert.InDelta(t, inc, path.Incidence.At(0, 1), 1e-12)
	assert.InDelta(t, 2*inc, path.Incidence.At(0, 2), 1e-12)

	assert.InDelta(t, 10-2*inc, params.Values()[1], 1e-12, "S loses the incidence")
	assert.InDelta(t, 5+2*inc, params.Values()[2], 1e-12, "I gains the incidence")
}

// TestSample_Deterministic verifies bit-identical paths from identical
// inputs.
func TestSample_Deterministic(t *testing.T) {
	draws := mat.NewDense(1, 2, []float64{0.7, -1.2})
	integ := &constIntegrator{drift: []float64{0.05}, diff: []float64{0.02}}

	a, _, err := siSampler(integ, ode.NewParams(3)).Sample(draws)
	require.NoError(t, err)
	b, _, err := siSampler(integ, ode.NewParams(3)).Sample(draws)
	require.NoError(t, err)

	assert.True(t, mat.Equal(a.Incidence, b.Incidence))
}

// TestSample_MonotoneIncidence verifies the monotonicity and time-row
// output guarantees under random perturbations.
func TestSample_MonotoneIncidence(t *testing.T) {
	times := lna.TimeGrid{0, 0.5, 1, 1.5, 2, 2.5, 3}
	n := len(times)
	rows := mat.NewDense(n, 3, nil)
	for i := 0; i < n; i++ {
		rows.SetRow(i, []float64{0.5, 10, 5})
	}
	s := &lna.Sampler{
		Times:      times,
		Schedule:   &lna.Schedule{Rows: rows, UpdateAt: make([]bool, n)},
		InitStart:  1,
		Stoich:     mat.NewDense(2, 1, []float64{-1, 1}),
		Integrator: &constIntegrator{drift: []float64{0.05}, diff: []float64{0.01}},
		Params:     ode.NewParams(3),
		Noise:      noise.NewNormal(11),
	}

	path, draws, err := s.Sample(nil)
	require.NoError(t, err)
	require.NotNil(t, draws)

	r, c := draws.Dims()
	assert.Equal(t, 1, r)
	assert.Equal(t, n-1, c)

	for j := 1; j < n; j++ {
		assert.GreaterOrEqual(t, path.Incidence.At(0, j), path.Incidence.At(0, j-1),
			"cumulative incidence must be non-decreasing")
	}

	full := path.Matrix()
	for j := 0; j < n; j++ {
		assert.Equal(t, times[j], full.At(0, j), "row 0 must equal the time grid")
	}
}

// TestSample_NotPositiveDefinite verifies that a diffusion matrix with
// a negative eigenvalue aborts the call instead of returning a path.
func TestSample_NotPositiveDefinite(t *testing.T) {
	params := ode.NewParams(3)
	integ := &constIntegrator{drift: []float64{0.1}, diff: []float64{-0.01}}
	s := siSampler(integ, params)

	path, _, err := s.Sample(mat.NewDense(1, 2, []float64{0, 0}))
	assert.Nil(t, path)
	assert.ErrorIs(t, err, lna.ErrNotPositiveDefinite)
}

// TestSample_ParamUpdateIndexing verifies the schedule semantics: the
// row switch flagged at j+1 takes effect for the next interval, with
// the volume block overwritten by the simulated volumes.
func TestSample_ParamUpdateIndexing(t *testing.T) {
	params := ode.NewParams(3)
	integ := &recordingIntegrator{
		constIntegrator: constIntegrator{drift: []float64{0}, diff: []float64{0.01}},
		params:          params,
	}
	s := siSampler(integ, params)
	s.Schedule.Rows.SetRow(1, []float64{2.0, 999, 999})
	s.Schedule.UpdateAt = []bool{true, true, false}

	_, _, err := s.Sample(mat.NewDense(1, 2, []float64{0, 0}))
	require.NoError(t, err)

	require.Len(t, integ.seen, 2)
	assert.Equal(t, []float64{0.5, 10, 5}, integ.seen[0], "interval 0 runs under row 0")
	assert.Equal(t, []float64{2.0, 10, 5}, integ.seen[1],
		"interval 1 runs under row 1's rates with the simulated volumes")
}

// TestSample_FailFast covers the precondition checks.
func TestSample_FailFast(t *testing.T) {
	params := ode.NewParams(3)
	integ := &constIntegrator{drift: []float64{0}, diff: []float64{0.01}}

	s := siSampler(integ, params)
	_, _, err := s.Sample(mat.NewDense(2, 2, nil))
	assert.ErrorIs(t, err, lna.ErrDimensionMismatch, "wrongly shaped draws")

	s = siSampler(integ, params)
	s.Times = lna.TimeGrid{0, 2, 1}
	_, _, err = s.Sample(nil)
	assert.ErrorIs(t, err, lna.ErrNotChronological)

	s = siSampler(integ, params)
	s.Schedule.UpdateAt = []bool{true}
	_, _, err = s.Sample(nil)
	assert.ErrorIs(t, err, lna.ErrInvalidSchedule, "flag count must match the grid")

	s = siSampler(integ, params)
	s.InitStart = 2 // volume block would run past the row
	_, _, err = s.Sample(nil)
	assert.ErrorIs(t, err, lna.ErrDimensionMismatch)

	s = siSampler(integ, params)
	s.Noise = nil
	_, _, err = s.Sample(nil)
	assert.Error(t, err, "nil draws without a noise source")
}

// wrongShapeSource ignores the requested shape, standing in for a
// misbehaving custom noise source.
type wrongShapeSource struct{}

func (wrongShapeSource) Draw(rows, cols int) *mat.Dense {
	return mat.NewDense(2, 2, nil)
}

// TestSample_BadNoiseSourceShape verifies that draws coming from the
// noise source get the same fail-fast shape check as caller-supplied
// ones.
func TestSample_BadNoiseSourceShape(t *testing.T) {
	s := siSampler(&constIntegrator{drift: []float64{0}, diff: []float64{0.01}},
		ode.NewParams(3))
	s.Noise = wrongShapeSource{}

	path, _, err := s.Sample(nil)
	assert.Nil(t, path)
	assert.ErrorIs(t, err, lna.ErrDimensionMismatch)
}

// TestSample_DoesNotMutateDraws verifies that caller-supplied
// perturbations are returned as-is and never written to.
func TestSample_DoesNotMutateDraws(t *testing.T) {
	draws := mat.NewDense(1, 2, []float64{0.3, -0.4})
	want := mat.DenseCopyOf(draws)

	integ := &constIntegrator{drift: []float64{0.05}, diff: []float64{0.01}}
	_, got, err := siSampler(integ, ode.NewParams(3)).Sample(draws)
	require.NoError(t, err)

	assert.Same(t, draws, got)
	assert.True(t, mat.Equal(want, draws))
}
