package mathexpr

import (
	"math/big"
	"strconv"
	"strings"
)

// Kind enumerates the kinds of value an expression can produce.
type Kind int

const (
	KindUndefined Kind = iota
	KindNull
	KindBool
	KindNumber
	KindBigNumber
	KindString
	KindUnit
	KindRange
	KindMatrix
	KindFunction
	KindResultSet
)

func (k Kind) String() string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindBigNumber:
		return "BigNumber"
	case KindString:
		return "string"
	case KindUnit:
		return "Unit"
	case KindRange:
		return "Range"
	case KindMatrix:
		return "Matrix"
	case KindFunction:
		return "function"
	case KindResultSet:
		return "ResultSet"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is a value produced by evaluating an expression. The zero Value is
// undefined.
type Value struct {
	kind Kind
	num  float64
	b    bool
	str  string
	obj  any
}

// Undefined is the value of an unset thing. It is distinct from Null, which
// is the value of the null constant.
func Undefined() Value {
	return Value{}
}

func Null() Value {
	return Value{kind: KindNull}
}

func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

func Number(f float64) Value {
	return Value{kind: KindNumber, num: f}
}

// BigNumber wraps an arbitrary-precision float. The Value takes ownership
// of x.
func BigNumber(x *big.Float) Value {
	return Value{kind: KindBigNumber, obj: x}
}

func String(s string) Value {
	return Value{kind: KindString, str: s}
}

func unitValue(u *Unit) Value {
	return Value{kind: KindUnit, obj: u}
}

func rangeValue(r *Range) Value {
	return Value{kind: KindRange, obj: r}
}

func matrixValue(m *Matrix) Value {
	return Value{kind: KindMatrix, obj: m}
}

func funcValue(f *Function) Value {
	return Value{kind: KindFunction, obj: f}
}

func resultSetValue(rs *ResultSet) Value {
	return Value{kind: KindResultSet, obj: rs}
}

// Kind returns the kind of the value.
func (v Value) Kind() Kind {
	return v.kind
}

// IsUndefined reports whether the value is undefined.
func (v Value) IsUndefined() bool {
	return v.kind == KindUndefined
}

// Num returns the value as a float64. It is meaningful only for number
// values.
func (v Value) Num() float64 {
	return v.num
}

// Big returns the value's arbitrary-precision float, or nil if the value
// is not a BigNumber.
func (v Value) Big() *big.Float {
	if v.kind != KindBigNumber {
		return nil
	}
	return v.obj.(*big.Float)
}

// Bool returns the value as a bool. It is meaningful only for boolean
// values.
func (v Value) Bool() bool {
	return v.b
}

// Str returns the value as a string. It is meaningful only for string
// values.
func (v Value) Str() string {
	return v.str
}

// Matrix returns the value's matrix, or nil if the value is not a matrix.
func (v Value) Matrix() *Matrix {
	if v.kind != KindMatrix {
		return nil
	}
	return v.obj.(*Matrix)
}

// Unit returns the value's unit, or nil if the value is not a unit.
func (v Value) Unit() *Unit {
	if v.kind != KindUnit {
		return nil
	}
	return v.obj.(*Unit)
}

// Range returns the value's range, or nil if the value is not a range.
func (v Value) Range() *Range {
	if v.kind != KindRange {
		return nil
	}
	return v.obj.(*Range)
}

// Func returns the value's function, or nil if the value is not a
// function.
func (v Value) Func() *Function {
	if v.kind != KindFunction {
		return nil
	}
	return v.obj.(*Function)
}

// Results returns the value's result set, or nil if the value is not a
// result set.
func (v Value) Results() *ResultSet {
	if v.kind != KindResultSet {
		return nil
	}
	return v.obj.(*ResultSet)
}

// String renders the value for display.
func (v Value) String() string {
	switch v.kind {
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindNumber:
		return formatNumber(v.num)
	case KindBigNumber:
		return v.obj.(*big.Float).Text('g', -1)
	case KindString:
		return strconv.Quote(v.str)
	case KindUnit:
		return v.obj.(*Unit).String()
	case KindRange:
		return v.obj.(*Range).String()
	case KindMatrix:
		return v.obj.(*Matrix).String()
	case KindFunction:
		return v.obj.(*Function).String()
	case KindResultSet:
		return v.obj.(*ResultSet).String()
	default:
		return "Kind(" + strconv.Itoa(int(v.kind)) + ")"
	}
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Function is a callable value: a user-defined function, a host function
// bound as a value, or a builtin.
type Function struct {
	// Name is the name the function was defined or registered under.
	Name string
	// Params are the parameter names of a user-defined function, nil for
	// native functions.
	Params []string
	// syntax is the call syntax for display, such as "f(x)". Empty for
	// native functions.
	syntax string
	// call invokes the function.
	call func(args []Value) (Value, error)
}

// Syntax returns the call syntax of the function, such as "f(x)", or the
// bare name for native functions.
func (f *Function) Syntax() string {
	if f.syntax != "" {
		return f.syntax
	}
	return f.Name
}

func (f *Function) String() string {
	return "function " + f.Syntax()
}

// Call invokes the function with the given arguments.
func (f *Function) Call(args []Value) (Value, error) {
	return f.call(args)
}

// ResultSet is the value of a block: the results of its visible
// statements, in order.
type ResultSet struct {
	Values []Value
}

func (rs *ResultSet) String() string {
	vals := make([]string, len(rs.Values))
	for i, v := range rs.Values {
		vals[i] = v.String()
	}
	return "[" + strings.Join(vals, ", ") + "]"
}

// equalValues reports deep equality of two values, used by the equal host
// function for operands that are neither both numeric nor both units.
func equalValues(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindUndefined, KindNull:
		return true
	case KindBool:
		return a.b == b.b
	case KindNumber:
		return a.num == b.num
	case KindBigNumber:
		return a.Big().Cmp(b.Big()) == 0
	case KindString:
		return a.str == b.str
	case KindUnit:
		au, bu := a.Unit(), b.Unit()
		return au.Name == bu.Name && au.Value == bu.Value
	case KindRange:
		ar, br := a.Range(), b.Range()
		return *ar == *br
	case KindMatrix:
		am, bm := a.Matrix(), b.Matrix()
		if len(am.items) != len(bm.items) {
			return false
		}
		for i := range am.items {
			if !equalValues(am.items[i], bm.items[i]) {
				return false
			}
		}
		return true
	case KindResultSet:
		ar, br := a.Results(), b.Results()
		if len(ar.Values) != len(br.Values) {
			return false
		}
		for i := range ar.Values {
			if !equalValues(ar.Values[i], br.Values[i]) {
				return false
			}
		}
		return true
	}
	return false
}
