package mathexpr

// Range is an arithmetic sequence with inclusive endpoints. A range with a
// positive step counts up while start <= end; a negative step counts down
// while start >= end. A range whose end is unreachable is empty.
type Range struct {
	Start, End, Step float64
}

func (r *Range) String() string {
	if r.Step != 1 {
		return formatNumber(r.Start) + ":" + formatNumber(r.Step) + ":" + formatNumber(r.End)
	}
	return formatNumber(r.Start) + ":" + formatNumber(r.End)
}

// Len returns the number of elements in the range.
func (r *Range) Len() int {
	switch {
	case r.Step > 0 && r.Start <= r.End:
		return int((r.End-r.Start)/r.Step) + 1
	case r.Step < 0 && r.Start >= r.End:
		return int((r.Start-r.End)/-r.Step) + 1
	}
	return 0
}

// Values materializes the range.
func (r *Range) Values() []float64 {
	n := r.Len()
	vals := make([]float64, n)
	x := r.Start
	for i := range vals {
		vals[i] = x
		x += r.Step
	}
	return vals
}

// toMatrix converts the range to a one-dimensional matrix of numbers.
func (r *Range) toMatrix() *Matrix {
	vals := r.Values()
	items := make([]Value, len(vals))
	for i, f := range vals {
		items[i] = Number(f)
	}
	return &Matrix{items: items}
}
