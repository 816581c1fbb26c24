package lna

import "fmt"

// TimeGrid is the ordered partition of the observation window. The LNA
// is propagated interval by interval between consecutive grid points.
type TimeGrid []float64

func (g TimeGrid) Validate() error {
	if len(g) < 2 {
		return fmt.Errorf("%w: need at least 2 time points, got %d",
			ErrDimensionMismatch, len(g))
	}
	for i := 1; i < len(g); i++ {
		if g[i] <= g[i-1] {
			return fmt.Errorf("%w: t[%d]=%g, t[%d]=%g",
				ErrNotChronological, i-1, g[i-1], i, g[i])
		}
	}
	return nil
}

// Intervals is the number of integration intervals in the grid.
func (g TimeGrid) Intervals() int {
	return len(g) - 1
}
