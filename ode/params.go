package ode

// Params binds the "current rate parameters" read by a System's
// derivatives. Exactly one row is bound at a time; the sampling and
// density loops re-bind it at the points dictated by the parameter
// schedule. One Params belongs to one call at a time: concurrent calls
// need independent instances.
type Params struct {
	data []float64
}

func NewParams(n int) *Params {
	return &Params{data: make([]float64, n)}
}

// Set copies row into the binding. The row must have the length the
// Params was created with.
func (p *Params) Set(row []float64) {
	if len(row) != len(p.data) {
		panic("ode: parameter row length mismatch")
	}
	copy(p.data, row)
}

// Values exposes the bound parameter vector. Systems read it during
// integration; callers must not hold the slice across a Set.
func (p *Params) Values() []float64 {
	return p.data
}

func (p *Params) Len() int {
	return len(p.data)
}
