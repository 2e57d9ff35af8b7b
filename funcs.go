package mathexpr

import (
	"math/big"
	"strconv"
	"strings"
)

// builtins is the standard host function table: the functions operators
// compile to, plus the function library.
var builtins = map[string]hostFunc{
	"add":             fnAdd,
	"subtract":        fnSubtract,
	"multiply":        fnMultiply,
	"divide":          fnDivide,
	"dotMultiply":     fnDotMultiply,
	"dotDivide":       fnDotDivide,
	"pow":             fnPow,
	"dotPow":          fnDotPow,
	"mod":             fnMod,
	"unaryMinus":      fnUnaryMinus,
	"unaryPlus":       fnUnaryPlus,
	"factorial":       fnFactorial,
	"transpose":       fnTranspose,
	"ctranspose":      fnTranspose,
	"equal":           fnEqual,
	"unequal":         fnUnequal,
	"smaller":         cmpFunc("smaller", func(c int) bool { return c < 0 }),
	"larger":          cmpFunc("larger", func(c int) bool { return c > 0 }),
	"smallerEq":       cmpFunc("smallerEq", func(c int) bool { return c <= 0 }),
	"largerEq":        cmpFunc("largerEq", func(c int) bool { return c >= 0 }),
	"and":             fnAnd,
	"or":              fnOr,
	"xor":             fnXor,
	"not":             fnNot,
	"bitAnd":          fnBitAnd,
	"bitOr":           fnBitOr,
	"leftShift":       fnLeftShift,
	"rightArithShift": fnRightArithShift,
	"to":              fnTo,
	"range":           fnRange,
	"matrix":          fnMatrix,
	"index":           fnIndex,
	"subset":          fnSubset,

	"sqrt":      unaryNumFunc("sqrt", sqrtNumber),
	"exp":       unaryNumFunc("exp", expNumber),
	"log":       unaryNumFunc("log", logNumber),
	"abs":       unaryNumFunc("abs", absNumber),
	"round":     unaryNumFunc("round", roundNumber),
	"floor":     unaryNumFunc("floor", floorNumber),
	"ceil":      unaryNumFunc("ceil", ceilNumber),
	"min":       extremumFunc("min", func(c int) bool { return c < 0 }),
	"max":       extremumFunc("max", func(c int) bool { return c > 0 }),
	"size":      fnSize,
	"concat":    fnConcat,
	"bignumber": fnBignumber,
	"number":    fnNumber,
	"string":    fnString,
	"unit":      fnUnit,
}

func needArgs(fn string, args []Value, want int) error {
	if len(args) != want {
		return &ArgumentsError{Fn: fn, Want: want, Got: len(args)}
	}
	return nil
}

// demote replaces a range with its materialized matrix, so that
// arithmetic and broadcasting treat ranges as vectors.
func demote(v Value) Value {
	if r := v.Range(); r != nil {
		return matrixValue(r.toMatrix())
	}
	return v
}

// map1 applies f to a scalar, or elementwise to a matrix.
func map1(v Value, f func(Value) (Value, error)) (Value, error) {
	v = demote(v)
	if m := v.Matrix(); m != nil {
		items := make([]Value, len(m.items))
		for i, it := range m.items {
			r, err := map1(it, f)
			if err != nil {
				return Value{}, err
			}
			items[i] = r
		}
		return matrixValue(&Matrix{items: items}), nil
	}
	return f(v)
}

// map2 applies f to scalars, broadcasting over matrix operands. Two
// matrices must agree in size at every level.
func map2(a, b Value, f func(a, b Value) (Value, error)) (Value, error) {
	a, b = demote(a), demote(b)
	am, bm := a.Matrix(), b.Matrix()
	switch {
	case am != nil && bm != nil:
		if len(am.items) != len(bm.items) {
			return Value{}, &DimensionError{A: strconv.Itoa(len(am.items)), B: strconv.Itoa(len(bm.items))}
		}
		items := make([]Value, len(am.items))
		for i := range am.items {
			r, err := map2(am.items[i], bm.items[i], f)
			if err != nil {
				return Value{}, err
			}
			items[i] = r
		}
		return matrixValue(&Matrix{items: items}), nil
	case am != nil:
		return map1(a, func(x Value) (Value, error) { return f(x, b) })
	case bm != nil:
		return map1(b, func(y Value) (Value, error) { return f(a, y) })
	}
	return f(a, b)
}

// numTypeError blames whichever operand is not numeric.
func numTypeError(fn string, a, b Value) error {
	got := a.kind
	if isNumeric(a) {
		got = b.kind
	}
	return &TypeError{Fn: fn, Want: "number", Got: got.String()}
}

func fnAdd(h *Host, args []Value) (Value, error) {
	if err := needArgs("add", args, 2); err != nil {
		return Value{}, err
	}
	return map2(args[0], args[1], func(a, b Value) (Value, error) {
		switch {
		case isNumeric(a) && isNumeric(b):
			return addNumbers(a, b, h.prec()), nil
		case a.kind == KindString && b.kind == KindString:
			return String(a.str + b.str), nil
		case a.kind == KindUnit && b.kind == KindUnit:
			u, err := addUnits(a.Unit(), b.Unit())
			if err != nil {
				return Value{}, err
			}
			return unitValue(u), nil
		}
		return Value{}, numTypeError("add", a, b)
	})
}

func fnSubtract(h *Host, args []Value) (Value, error) {
	if err := needArgs("subtract", args, 2); err != nil {
		return Value{}, err
	}
	return map2(args[0], args[1], func(a, b Value) (Value, error) {
		switch {
		case isNumeric(a) && isNumeric(b):
			return subNumbers(a, b, h.prec()), nil
		case a.kind == KindUnit && b.kind == KindUnit:
			u, err := subUnits(a.Unit(), b.Unit())
			if err != nil {
				return Value{}, err
			}
			return unitValue(u), nil
		}
		return Value{}, numTypeError("subtract", a, b)
	})
}

// mulScalar multiplies scalar operands, including unit scaling.
func mulScalar(h *Host, a, b Value) (Value, error) {
	switch {
	case isNumeric(a) && isNumeric(b):
		return mulNumbers(a, b, h.prec()), nil
	case a.kind == KindUnit && isNumeric(b):
		return unitValue(scaleUnit(a.Unit(), toFloat(b))), nil
	case isNumeric(a) && b.kind == KindUnit:
		return unitValue(scaleUnit(b.Unit(), toFloat(a))), nil
	}
	return Value{}, numTypeError("multiply", a, b)
}

// fnMultiply is the * operator: scalar multiplication, scaling of a
// matrix by a scalar, and the matrix product.
func fnMultiply(h *Host, args []Value) (Value, error) {
	if err := needArgs("multiply", args, 2); err != nil {
		return Value{}, err
	}
	a, b := demote(args[0]), demote(args[1])
	am, bm := a.Matrix(), b.Matrix()
	switch {
	case am != nil && bm != nil:
		return matMul(h, am, bm)
	case am != nil:
		return map1(a, func(x Value) (Value, error) { return mulScalar(h, x, b) })
	case bm != nil:
		return map1(b, func(y Value) (Value, error) { return mulScalar(h, a, y) })
	}
	return mulScalar(h, a, b)
}

// dot computes the inner product of two equal-length vectors.
func dot(h *Host, a, b []Value) (Value, error) {
	if len(a) != len(b) {
		return Value{}, &DimensionError{A: strconv.Itoa(len(a)), B: strconv.Itoa(len(b))}
	}
	sum := Number(0)
	for i := range a {
		p, err := mulScalar(h, a[i], b[i])
		if err != nil {
			return Value{}, err
		}
		if !isNumeric(p) {
			return Value{}, &TypeError{Fn: "multiply", Want: "number", Got: p.kind.String()}
		}
		sum = addNumbers(sum, p, h.prec())
	}
	return sum, nil
}

// matMul multiplies matrices. Vectors multiply as a dot product, a row
// vector against a matrix, or a matrix against a column vector.
func matMul(h *Host, a, b *Matrix) (Value, error) {
	asize, bsize := a.Size(), b.Size()
	a2, b2 := len(asize) > 1, len(bsize) > 1
	switch {
	case !a2 && !b2:
		return dot(h, a.items, b.items)
	case !a2:
		bt, err := b.transpose()
		if err != nil {
			return Value{}, err
		}
		items := make([]Value, len(bt.items))
		for i, col := range bt.items {
			v, err := dot(h, a.items, col.Matrix().items)
			if err != nil {
				return Value{}, err
			}
			items[i] = v
		}
		return matrixValue(&Matrix{items: items}), nil
	case !b2:
		items := make([]Value, len(a.items))
		for i, row := range a.items {
			rm := row.Matrix()
			if rm == nil {
				return Value{}, &DimensionError{A: "2", B: "1"}
			}
			v, err := dot(h, rm.items, b.items)
			if err != nil {
				return Value{}, err
			}
			items[i] = v
		}
		return matrixValue(&Matrix{items: items}), nil
	}
	if asize[1] != bsize[0] {
		return Value{}, &DimensionError{A: strconv.Itoa(asize[1]), B: strconv.Itoa(bsize[0])}
	}
	bt, err := b.transpose()
	if err != nil {
		return Value{}, err
	}
	rows := make([]Value, len(a.items))
	for r, row := range a.items {
		items := make([]Value, len(bt.items))
		for c, col := range bt.items {
			v, err := dot(h, row.Matrix().items, col.Matrix().items)
			if err != nil {
				return Value{}, err
			}
			items[c] = v
		}
		rows[r] = matrixValue(&Matrix{items: items})
	}
	return matrixValue(&Matrix{items: rows}), nil
}

func fnDivide(h *Host, args []Value) (Value, error) {
	if err := needArgs("divide", args, 2); err != nil {
		return Value{}, err
	}
	a, b := demote(args[0]), demote(args[1])
	if b.Matrix() != nil {
		return Value{}, &TypeError{Fn: "divide", Want: "number", Got: b.kind.String()}
	}
	return map1(a, func(x Value) (Value, error) {
		switch {
		case isNumeric(x) && isNumeric(b):
			return divNumbers(x, b, h.prec()), nil
		case x.kind == KindUnit && isNumeric(b):
			return unitValue(scaleUnit(x.Unit(), 1/toFloat(b))), nil
		case x.kind == KindUnit && b.kind == KindUnit:
			xu, bu := x.Unit(), b.Unit()
			if xu.def.base != bu.def.base {
				return Value{}, &DimensionError{A: xu.Name, B: bu.Name}
			}
			return Number(xu.base() / bu.base()), nil
		}
		return Value{}, numTypeError("divide", x, b)
	})
}

func numericMap2(fn string, h *Host, args []Value, f func(a, b Value, prec uint) Value) (Value, error) {
	if err := needArgs(fn, args, 2); err != nil {
		return Value{}, err
	}
	return map2(args[0], args[1], func(a, b Value) (Value, error) {
		if !isNumeric(a) || !isNumeric(b) {
			return Value{}, numTypeError(fn, a, b)
		}
		return f(a, b, h.prec()), nil
	})
}

func fnDotMultiply(h *Host, args []Value) (Value, error) {
	return numericMap2("dotMultiply", h, args, mulNumbers)
}

func fnDotDivide(h *Host, args []Value) (Value, error) {
	return numericMap2("dotDivide", h, args, divNumbers)
}

func fnDotPow(h *Host, args []Value) (Value, error) {
	return numericMap2("dotPow", h, args, powNumbers)
}

func fnMod(h *Host, args []Value) (Value, error) {
	return numericMap2("mod", h, args, modNumbers)
}

// fnPow is the ^ operator. A square matrix raises to a non-negative
// integer power by repeated multiplication.
func fnPow(h *Host, args []Value) (Value, error) {
	if err := needArgs("pow", args, 2); err != nil {
		return Value{}, err
	}
	a, b := demote(args[0]), demote(args[1])
	if m := a.Matrix(); m != nil {
		n, err := asInteger("pow", b)
		if err != nil {
			return Value{}, err
		}
		if n < 0 {
			return Value{}, &TypeError{Fn: "pow", Want: "non-negative integer", Got: b.String()}
		}
		size := m.Size()
		if len(size) != 2 || size[0] != size[1] {
			return Value{}, &DimensionError{A: strconv.Itoa(size[0]), B: strconv.Itoa(size[len(size)-1])}
		}
		acc := matrixValue(identity(size[0]))
		for ; n > 0; n-- {
			v, err := matMul(h, acc.Matrix(), m)
			if err != nil {
				return Value{}, err
			}
			acc = v
		}
		return acc, nil
	}
	if !isNumeric(a) || !isNumeric(b) {
		return Value{}, numTypeError("pow", a, b)
	}
	return powNumbers(a, b, h.prec()), nil
}

// identity returns the n by n identity matrix.
func identity(n int) *Matrix {
	rows := make([]Value, n)
	for r := range rows {
		items := make([]Value, n)
		for c := range items {
			if r == c {
				items[c] = Number(1)
				continue
			}
			items[c] = Number(0)
		}
		rows[r] = matrixValue(&Matrix{items: items})
	}
	return &Matrix{items: rows}
}

func fnUnaryMinus(h *Host, args []Value) (Value, error) {
	if err := needArgs("unaryMinus", args, 1); err != nil {
		return Value{}, err
	}
	return map1(args[0], func(v Value) (Value, error) {
		switch {
		case isNumeric(v):
			return negNumber(v, h.prec()), nil
		case v.kind == KindUnit:
			return unitValue(scaleUnit(v.Unit(), -1)), nil
		}
		return Value{}, &TypeError{Fn: "unaryMinus", Want: "number", Got: v.kind.String()}
	})
}

func fnUnaryPlus(h *Host, args []Value) (Value, error) {
	if err := needArgs("unaryPlus", args, 1); err != nil {
		return Value{}, err
	}
	return map1(args[0], func(v Value) (Value, error) {
		switch {
		case isNumeric(v), v.kind == KindUnit:
			return v, nil
		case v.kind == KindBool:
			if v.b {
				return Number(1), nil
			}
			return Number(0), nil
		}
		return Value{}, &TypeError{Fn: "unaryPlus", Want: "number", Got: v.kind.String()}
	})
}

func fnFactorial(h *Host, args []Value) (Value, error) {
	if err := needArgs("factorial", args, 1); err != nil {
		return Value{}, err
	}
	return map1(args[0], func(v Value) (Value, error) {
		if !isNumeric(v) {
			return Value{}, &TypeError{Fn: "factorial", Want: "number", Got: v.kind.String()}
		}
		return factorialNumber(v, h.prec())
	})
}

func fnTranspose(h *Host, args []Value) (Value, error) {
	if err := needArgs("transpose", args, 1); err != nil {
		return Value{}, err
	}
	v := demote(args[0])
	m := v.Matrix()
	if m == nil {
		return v, nil
	}
	t, err := m.transpose()
	if err != nil {
		return Value{}, err
	}
	return matrixValue(t), nil
}

// scalarEqual compares scalars: numerically when both operands are
// numeric, by magnitude in the base unit when both are units of the same
// quantity, by value otherwise.
func scalarEqual(h *Host, a, b Value) bool {
	if isNumeric(a) && isNumeric(b) {
		return cmpNumbers(a, b, h.prec()) == 0
	}
	if a.kind == KindUnit && b.kind == KindUnit {
		au, bu := a.Unit(), b.Unit()
		return au.def.base == bu.def.base && au.base() == bu.base()
	}
	return equalValues(a, b)
}

func fnEqual(h *Host, args []Value) (Value, error) {
	if err := needArgs("equal", args, 2); err != nil {
		return Value{}, err
	}
	return map2(args[0], args[1], func(a, b Value) (Value, error) {
		return Bool(scalarEqual(h, a, b)), nil
	})
}

func fnUnequal(h *Host, args []Value) (Value, error) {
	if err := needArgs("unequal", args, 2); err != nil {
		return Value{}, err
	}
	return map2(args[0], args[1], func(a, b Value) (Value, error) {
		return Bool(!scalarEqual(h, a, b)), nil
	})
}

// scalarCmp orders two scalars. Numbers order numerically, strings
// lexically, and units by magnitude in their common base.
func scalarCmp(fn string, h *Host, a, b Value) (int, error) {
	switch {
	case isNumeric(a) && isNumeric(b):
		return cmpNumbers(a, b, h.prec()), nil
	case a.kind == KindString && b.kind == KindString:
		return strings.Compare(a.str, b.str), nil
	case a.kind == KindUnit && b.kind == KindUnit:
		au, bu := a.Unit(), b.Unit()
		if au.def.base != bu.def.base {
			return 0, &DimensionError{A: au.Name, B: bu.Name}
		}
		switch {
		case au.base() < bu.base():
			return -1, nil
		case au.base() > bu.base():
			return 1, nil
		}
		return 0, nil
	}
	return 0, numTypeError(fn, a, b)
}

func cmpFunc(name string, ok func(c int) bool) hostFunc {
	return func(h *Host, args []Value) (Value, error) {
		if err := needArgs(name, args, 2); err != nil {
			return Value{}, err
		}
		return map2(args[0], args[1], func(a, b Value) (Value, error) {
			c, err := scalarCmp(name, h, a, b)
			if err != nil {
				return Value{}, err
			}
			return Bool(ok(c)), nil
		})
	}
}

func fnAnd(h *Host, args []Value) (Value, error) {
	if err := needArgs("and", args, 2); err != nil {
		return Value{}, err
	}
	a, err := h.truthy(args[0])
	if err != nil {
		return Value{}, err
	}
	b, err := h.truthy(args[1])
	if err != nil {
		return Value{}, err
	}
	return Bool(a && b), nil
}

func fnOr(h *Host, args []Value) (Value, error) {
	if err := needArgs("or", args, 2); err != nil {
		return Value{}, err
	}
	a, err := h.truthy(args[0])
	if err != nil {
		return Value{}, err
	}
	b, err := h.truthy(args[1])
	if err != nil {
		return Value{}, err
	}
	return Bool(a || b), nil
}

func fnXor(h *Host, args []Value) (Value, error) {
	if err := needArgs("xor", args, 2); err != nil {
		return Value{}, err
	}
	a, err := h.truthy(args[0])
	if err != nil {
		return Value{}, err
	}
	b, err := h.truthy(args[1])
	if err != nil {
		return Value{}, err
	}
	return Bool(a != b), nil
}

func fnNot(h *Host, args []Value) (Value, error) {
	if err := needArgs("not", args, 1); err != nil {
		return Value{}, err
	}
	a, err := h.truthy(args[0])
	if err != nil {
		return Value{}, err
	}
	return Bool(!a), nil
}

func intFunc(name string, f func(x, y int64) (int64, error)) hostFunc {
	return func(h *Host, args []Value) (Value, error) {
		if err := needArgs(name, args, 2); err != nil {
			return Value{}, err
		}
		return map2(args[0], args[1], func(a, b Value) (Value, error) {
			x, err := asInteger(name, a)
			if err != nil {
				return Value{}, err
			}
			y, err := asInteger(name, b)
			if err != nil {
				return Value{}, err
			}
			r, err := f(x, y)
			if err != nil {
				return Value{}, err
			}
			return Number(float64(r)), nil
		})
	}
}

var fnBitAnd = intFunc("bitAnd", func(x, y int64) (int64, error) { return x & y, nil })

var fnBitOr = intFunc("bitOr", func(x, y int64) (int64, error) { return x | y, nil })

var fnLeftShift = intFunc("leftShift", func(x, y int64) (int64, error) {
	if y < 0 || y > 63 {
		return 0, &TypeError{Fn: "leftShift", Want: "non-negative integer", Got: strconv.FormatInt(y, 10)}
	}
	return x << uint(y), nil
})

var fnRightArithShift = intFunc("rightArithShift", func(x, y int64) (int64, error) {
	if y < 0 || y > 63 {
		return 0, &TypeError{Fn: "rightArithShift", Want: "non-negative integer", Got: strconv.FormatInt(y, 10)}
	}
	return x >> uint(y), nil
})

// fnTo converts a unit to another unit, as in 2 cm to inch.
func fnTo(h *Host, args []Value) (Value, error) {
	if err := needArgs("to", args, 2); err != nil {
		return Value{}, err
	}
	a, b := args[0], args[1]
	if a.kind != KindUnit {
		return Value{}, &TypeError{Fn: "to", Want: "Unit", Got: a.kind.String()}
	}
	if b.kind != KindUnit {
		return Value{}, &TypeError{Fn: "to", Want: "Unit", Got: b.kind.String()}
	}
	u, err := a.Unit().to(b.Unit())
	if err != nil {
		return Value{}, err
	}
	return unitValue(u), nil
}

func unaryNumFunc(name string, f func(v Value, prec uint) Value) hostFunc {
	return func(h *Host, args []Value) (Value, error) {
		if err := needArgs(name, args, 1); err != nil {
			return Value{}, err
		}
		return map1(args[0], func(v Value) (Value, error) {
			if !isNumeric(v) {
				return Value{}, &TypeError{Fn: name, Want: "number", Got: v.kind.String()}
			}
			return f(v, h.prec()), nil
		})
	}
}

// extremumFunc builds min and max. A single matrix argument reduces over
// its elements; several arguments reduce over the argument list.
func extremumFunc(name string, better func(c int) bool) hostFunc {
	return func(h *Host, args []Value) (Value, error) {
		if len(args) == 0 {
			return Value{}, &ArgumentsError{Fn: name, Want: 1, Got: 0}
		}
		vals := args
		if len(args) == 1 {
			if m := demote(args[0]).Matrix(); m != nil {
				vals = flatten(m)
			}
		}
		if len(vals) == 0 {
			return Value{}, &ArgumentsError{Fn: name, Want: 1, Got: 0}
		}
		best := vals[0]
		for _, v := range vals[1:] {
			c, err := scalarCmp(name, h, v, best)
			if err != nil {
				return Value{}, err
			}
			if better(c) {
				best = v
			}
		}
		return best, nil
	}
}

// flatten lists the scalar elements of a matrix in row-major order.
func flatten(m *Matrix) []Value {
	var out []Value
	for _, v := range m.items {
		if sub := v.Matrix(); sub != nil {
			out = append(out, flatten(sub)...)
			continue
		}
		out = append(out, v)
	}
	return out
}

// fnSize returns the dimension lengths of its argument as a vector. A
// string has its length in characters; a scalar has no dimensions.
func fnSize(h *Host, args []Value) (Value, error) {
	if err := needArgs("size", args, 1); err != nil {
		return Value{}, err
	}
	v := demote(args[0])
	switch {
	case v.Matrix() != nil:
		size := v.Matrix().Size()
		items := make([]Value, len(size))
		for i, n := range size {
			items[i] = Number(float64(n))
		}
		return matrixValue(&Matrix{items: items}), nil
	case v.kind == KindString:
		n := len([]rune(v.str))
		return matrixValue(&Matrix{items: []Value{Number(float64(n))}}), nil
	}
	return matrixValue(&Matrix{}), nil
}

// fnConcat joins strings, or joins matrices along their last dimension.
func fnConcat(h *Host, args []Value) (Value, error) {
	if len(args) == 0 {
		return Value{}, &ArgumentsError{Fn: "concat", Want: 1, Got: 0}
	}
	if args[0].kind == KindString {
		var b strings.Builder
		for _, v := range args {
			if v.kind != KindString {
				return Value{}, &TypeError{Fn: "concat", Want: "string", Got: v.kind.String()}
			}
			b.WriteString(v.str)
		}
		return String(b.String()), nil
	}
	ms := make([]*Matrix, len(args))
	for i, v := range args {
		m := demote(v).Matrix()
		if m == nil {
			return Value{}, &TypeError{Fn: "concat", Want: "Matrix", Got: v.kind.String()}
		}
		ms[i] = m
	}
	out, err := concatMatrices(ms)
	if err != nil {
		return Value{}, err
	}
	return matrixValue(out), nil
}

func concatMatrices(ms []*Matrix) (*Matrix, error) {
	nested := len(ms[0].items) > 0 && ms[0].items[0].Matrix() != nil
	if !nested {
		var items []Value
		for _, m := range ms {
			items = append(items, m.clone().items...)
		}
		return &Matrix{items: items}, nil
	}
	rows := len(ms[0].items)
	for _, m := range ms[1:] {
		if len(m.items) != rows {
			return nil, &DimensionError{A: strconv.Itoa(rows), B: strconv.Itoa(len(m.items))}
		}
	}
	items := make([]Value, rows)
	for r := range items {
		parts := make([]*Matrix, len(ms))
		for i, m := range ms {
			sub := m.items[r].Matrix()
			if sub == nil {
				return nil, &DimensionError{A: "2", B: "1"}
			}
			parts[i] = sub
		}
		row, err := concatMatrices(parts)
		if err != nil {
			return nil, err
		}
		items[r] = matrixValue(row)
	}
	return &Matrix{items: items}, nil
}

// fnBignumber converts a number or numeric string to a BigNumber.
func fnBignumber(h *Host, args []Value) (Value, error) {
	if err := needArgs("bignumber", args, 1); err != nil {
		return Value{}, err
	}
	return map1(args[0], func(v Value) (Value, error) {
		switch v.kind {
		case KindNumber, KindBigNumber:
			return BigNumber(toBig(v, h.prec())), nil
		case KindString:
			z, _, err := big.ParseFloat(v.str, 10, h.prec(), big.ToNearestEven)
			if err != nil {
				return Value{}, &TypeError{Fn: "bignumber", Want: "number", Got: strconv.Quote(v.str)}
			}
			return BigNumber(z), nil
		}
		return Value{}, &TypeError{Fn: "bignumber", Want: "number", Got: v.kind.String()}
	})
}

// fnNumber converts its argument to a plain number. With a unit and a
// target unit, it returns the magnitude of the converted unit, as in
// number(5.08 cm, inch).
func fnNumber(h *Host, args []Value) (Value, error) {
	if len(args) == 2 {
		u, err := fnTo(h, args)
		if err != nil {
			return Value{}, err
		}
		return Number(u.Unit().Value), nil
	}
	if err := needArgs("number", args, 1); err != nil {
		return Value{}, err
	}
	return map1(args[0], func(v Value) (Value, error) {
		switch v.kind {
		case KindNumber, KindBigNumber:
			return Number(toFloat(v)), nil
		case KindBool:
			if v.b {
				return Number(1), nil
			}
			return Number(0), nil
		case KindString:
			f, err := strconv.ParseFloat(v.str, 64)
			if err != nil {
				return Value{}, &TypeError{Fn: "number", Want: "number", Got: strconv.Quote(v.str)}
			}
			return Number(f), nil
		}
		return Value{}, &TypeError{Fn: "number", Want: "number", Got: v.kind.String()}
	})
}

// display renders a value the way the string function does: like String,
// except that strings render without quotes.
func display(v Value) string {
	if v.kind == KindString {
		return v.str
	}
	return v.String()
}

func fnString(h *Host, args []Value) (Value, error) {
	if err := needArgs("string", args, 1); err != nil {
		return Value{}, err
	}
	return String(display(args[0])), nil
}

// fnUnit constructs a unit from a magnitude and a unit name, or from a
// string such as "5.08 cm".
func fnUnit(h *Host, args []Value) (Value, error) {
	switch len(args) {
	case 1:
		v := args[0]
		if v.kind != KindString {
			return Value{}, &TypeError{Fn: "unit", Want: "string", Got: v.kind.String()}
		}
		fields := strings.Fields(v.str)
		if len(fields) != 2 {
			return Value{}, &TypeError{Fn: "unit", Want: "string", Got: strconv.Quote(v.str)}
		}
		f, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return Value{}, &TypeError{Fn: "unit", Want: "number", Got: strconv.Quote(fields[0])}
		}
		u, ok := LookupUnit(f, fields[1])
		if !ok {
			return Value{}, &UndefinedSymbolError{Name: fields[1]}
		}
		return unitValue(u), nil
	case 2:
		v, name := args[0], args[1]
		if !isNumeric(v) {
			return Value{}, &TypeError{Fn: "unit", Want: "number", Got: v.kind.String()}
		}
		var uname string
		switch {
		case name.kind == KindString:
			uname = name.str
		case name.kind == KindUnit:
			uname = name.Unit().Name
		default:
			return Value{}, &TypeError{Fn: "unit", Want: "string", Got: name.kind.String()}
		}
		u, ok := LookupUnit(toFloat(v), uname)
		if !ok {
			return Value{}, &UndefinedSymbolError{Name: uname}
		}
		return unitValue(u), nil
	}
	return Value{}, &ArgumentsError{Fn: "unit", Want: 2, Got: len(args)}
}
