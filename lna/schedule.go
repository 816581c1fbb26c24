package lna

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Schedule holds one row of rate parameters, constants and time-varying
// covariates per time point, plus the flags saying at which points the
// parameter binding must be refreshed. Row 0 is always bound at the
// start of a call, whatever UpdateAt[0] says.
type Schedule struct {
	Rows     *mat.Dense
	UpdateAt []bool
}

// Row returns a view of row j. The slice aliases the schedule's
// backing array.
func (s *Schedule) Row(j int) []float64 {
	return s.Rows.RawRowView(j)
}

// SetParameters broadcasts theta into the leading columns of every row,
// leaving constants, covariates and the volume block untouched.
func (s *Schedule) SetParameters(theta []float64) error {
	rows, cols := s.Rows.Dims()
	if len(theta) > cols {
		return fmt.Errorf("%w: %d parameters into %d schedule columns",
			ErrDimensionMismatch, len(theta), cols)
	}
	for i := 0; i < rows; i++ {
		copy(s.Rows.RawRowView(i)[:len(theta)], theta)
	}
	return nil
}

// validate fails fast before the integration loop starts. nComps may be
// zero when the caller does not read a volume block from the rows.
func (s *Schedule) validate(nTimes, initStart, nComps int) error {
	rows, cols := s.Rows.Dims()
	if rows != nTimes {
		return fmt.Errorf("%w: %d rows for %d time points",
			ErrInvalidSchedule, rows, nTimes)
	}
	if len(s.UpdateAt) != nTimes {
		return fmt.Errorf("%w: %d update flags for %d time points",
			ErrInvalidSchedule, len(s.UpdateAt), nTimes)
	}
	if initStart < 0 || initStart+nComps > cols {
		return fmt.Errorf("%w: volume block [%d, %d) outside row of length %d",
			ErrDimensionMismatch, initStart, initStart+nComps, cols)
	}
	return nil
}
