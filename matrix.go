package mathexpr

import (
	"strconv"
	"strings"
)

// Matrix is a nested-list matrix. A one-dimensional matrix holds scalar
// items; a two-dimensional matrix holds one matrix item per row, and so on
// for higher dimensions. The parser rejects literal rows separated by ";"
// that differ in length; items of a literal that are themselves matrices
// are not checked, so [[1, 2], [3]] is ragged. The subset machinery pads
// to rectangular shape when assignments resize.
type Matrix struct {
	items []Value
}

// NewMatrix creates a matrix holding the given items. The matrix takes
// ownership of the slice.
func NewMatrix(items []Value) *Matrix {
	return &Matrix{items: items}
}

// Items returns the items of the outermost dimension.
func (m *Matrix) Items() []Value {
	return m.items
}

// Size returns the length of each dimension. Dimensions nest through
// matrix items: the size of [[1,2],[3,4]] is [2, 2].
func (m *Matrix) Size() []int {
	size := []int{len(m.items)}
	if len(m.items) > 0 {
		if sub := m.items[0].Matrix(); sub != nil {
			size = append(size, sub.Size()...)
		}
	}
	return size
}

func (m *Matrix) String() string {
	parts := make([]string, len(m.items))
	for i, v := range m.items {
		parts[i] = v.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// clone returns a deep copy of the matrix.
func (m *Matrix) clone() *Matrix {
	items := make([]Value, len(m.items))
	for i, v := range m.items {
		if sub := v.Matrix(); sub != nil {
			items[i] = matrixValue(sub.clone())
			continue
		}
		items[i] = v
	}
	return &Matrix{items: items}
}

// get returns the element at a fully scalar 0-based index.
func (m *Matrix) get(idx []int) (Value, error) {
	cur := m
	for d, i := range idx {
		if i < 0 || i >= len(cur.items) {
			return Value{}, &IndexError{Index: i, Min: 0, Max: len(cur.items) - 1}
		}
		v := cur.items[i]
		if d == len(idx)-1 {
			return v, nil
		}
		sub := v.Matrix()
		if sub == nil {
			return Value{}, &DimensionError{A: strconv.Itoa(len(idx)), B: strconv.Itoa(d + 1)}
		}
		cur = sub
	}
	return Value{}, &DimensionError{A: strconv.Itoa(len(idx)), B: "0"}
}

// subsetGet selects the 0-based indices in dims, one list per dimension,
// keeping every dimension in the result.
func (m *Matrix) subsetGet(dims [][]int) (*Matrix, error) {
	d := dims[0]
	items := make([]Value, len(d))
	for j, i := range d {
		if i < 0 || i >= len(m.items) {
			return nil, &IndexError{Index: i, Min: 0, Max: len(m.items) - 1}
		}
		v := m.items[i]
		if len(dims) > 1 {
			sub := v.Matrix()
			if sub == nil {
				return nil, &DimensionError{A: strconv.Itoa(len(dims)), B: "1"}
			}
			sel, err := sub.subsetGet(dims[1:])
			if err != nil {
				return nil, err
			}
			v = matrixValue(sel)
		}
		items[j] = v
	}
	return &Matrix{items: items}, nil
}

// subsetSet assigns v to the selection dims, one list of 0-based indices
// per dimension, growing the matrix with zero fill where an index lies
// past the end. When a dimension selects more than one index, the
// corresponding level of v must be a matrix of matching length. The
// receiver is modified in place and renormalized to rectangular shape.
func (m *Matrix) subsetSet(dims [][]int, v Value) error {
	if err := m.setIn(dims, v); err != nil {
		return err
	}
	m.rectangularize()
	return nil
}

func (m *Matrix) setIn(dims [][]int, v Value) error {
	d := dims[0]
	for _, i := range d {
		if i < 0 {
			return &IndexError{Index: i, Min: 0, Max: len(m.items) - 1}
		}
	}
	for _, i := range d {
		for len(m.items) <= i {
			fill := Number(0)
			if len(dims) > 1 {
				fill = matrixValue(&Matrix{})
			}
			m.items = append(m.items, fill)
		}
	}
	for j, i := range d {
		vj, err := pickItem(v, j, len(d))
		if err != nil {
			return err
		}
		if len(dims) == 1 {
			m.items[i] = vj
			continue
		}
		sub := m.items[i].Matrix()
		if sub == nil {
			sub = &Matrix{}
		}
		if err := sub.setIn(dims[1:], vj); err != nil {
			return err
		}
		m.items[i] = matrixValue(sub)
	}
	return nil
}

// pickItem selects the j-th item of the assigned value for a dimension
// selecting count indices. A scalar stands for itself when the dimension
// selects a single index.
func pickItem(v Value, j, count int) (Value, error) {
	sub := v.Matrix()
	if sub == nil {
		if count == 1 {
			return v, nil
		}
		return Value{}, &DimensionError{A: "1", B: strconv.Itoa(count)}
	}
	if len(sub.items) != count {
		return Value{}, &DimensionError{A: strconv.Itoa(len(sub.items)), B: strconv.Itoa(count)}
	}
	return sub.items[j], nil
}

// rectangularize pads nested rows with zeros so that every row of a
// dimension has the length of the longest, restoring the rectangular
// invariant after a resizing assignment.
func (m *Matrix) rectangularize() {
	w := 0
	nested := false
	for _, v := range m.items {
		if sub := v.Matrix(); sub != nil {
			nested = true
			sub.rectangularize()
			if len(sub.items) > w {
				w = len(sub.items)
			}
		}
	}
	if !nested {
		return
	}
	for i, v := range m.items {
		sub := v.Matrix()
		if sub == nil {
			sub = &Matrix{items: []Value{v}}
		}
		for len(sub.items) < w {
			sub.items = append(sub.items, Number(0))
		}
		m.items[i] = matrixValue(sub)
	}
}

// transpose swaps the first two dimensions. A one-dimensional matrix is
// returned unchanged.
func (m *Matrix) transpose() (*Matrix, error) {
	if len(m.items) == 0 {
		return &Matrix{}, nil
	}
	first := m.items[0].Matrix()
	if first == nil {
		return m.clone(), nil
	}
	w := len(first.items)
	cols := make([]*Matrix, w)
	for i := range cols {
		cols[i] = &Matrix{items: make([]Value, len(m.items))}
	}
	for r, v := range m.items {
		row := v.Matrix()
		if row == nil || len(row.items) != w {
			got := "1"
			if row != nil {
				got = strconv.Itoa(len(row.items))
			}
			return nil, &DimensionError{A: strconv.Itoa(w), B: got}
		}
		for c, item := range row.items {
			cols[c].items[r] = item
		}
	}
	items := make([]Value, w)
	for i, col := range cols {
		items[i] = matrixValue(col)
	}
	return &Matrix{items: items}, nil
}

