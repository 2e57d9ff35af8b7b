package mathexpr

import (
	"math"
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// NumberMode selects the type that number literals compile to.
type NumberMode string

const (
	// ModeNumber compiles literals to float64 numbers.
	ModeNumber NumberMode = "number"
	// ModeBigNumber compiles literals to arbitrary-precision numbers.
	ModeBigNumber NumberMode = "BigNumber"
)

// DefaultPrecision is the precision in bits of BigNumber arithmetic when
// the host does not set one.
const DefaultPrecision = 128

// Host supplies everything an expression needs beyond its scope: the
// number configuration, and the function, constant, and unit tables that
// operators, calls, and symbols resolve against. Compiling binds a tree to
// a host; the same tree may be compiled against several hosts.
type Host struct {
	// Number selects how number literals compile. The zero value is
	// ModeNumber.
	Number NumberMode
	// Precision is the precision in bits of BigNumber arithmetic. Zero
	// means DefaultPrecision.
	Precision uint

	funcs map[string]hostFunc
}

// hostFunc implements a named host function.
type hostFunc func(h *Host, args []Value) (Value, error)

// DefaultHost returns a host with the standard function table and plain
// float64 numbers.
func DefaultHost() *Host {
	h := &Host{Number: ModeNumber, funcs: make(map[string]hostFunc, len(builtins))}
	for name, fn := range builtins {
		h.funcs[name] = fn
	}
	return h
}

// BigHost returns a host whose literals compile to BigNumbers with the
// given precision in bits.
func BigHost(prec uint) *Host {
	h := DefaultHost()
	h.Number = ModeBigNumber
	h.Precision = prec
	return h
}

func (h *Host) prec() uint {
	if h.Precision == 0 {
		return DefaultPrecision
	}
	return h.Precision
}

// Register installs fn as the implementation of the named host function,
// replacing any existing one. Passing nil removes the name.
func (h *Host) Register(name string, fn func(h *Host, args []Value) (Value, error)) {
	if fn == nil {
		delete(h.funcs, name)
		return
	}
	h.funcs[name] = fn
}

// Func returns the named host function wrapped as a callable value, or
// false if the host does not define it.
func (h *Host) Func(name string) (*Function, bool) {
	fn, ok := h.funcs[name]
	if !ok {
		return nil, false
	}
	return &Function{
		Name: name,
		call: func(args []Value) (Value, error) { return fn(h, args) },
	}, true
}

// call invokes the named host function.
func (h *Host) call(name string, args []Value) (Value, error) {
	fn, ok := h.funcs[name]
	if !ok {
		return Value{}, &UndefinedSymbolError{Name: name}
	}
	return fn(h, args)
}

// Constant returns the value of a named constant, or false. pi and e
// follow the host's number mode; Inf, Infinity and NaN are always plain
// numbers.
func (h *Host) Constant(name string) (Value, bool) {
	switch name {
	case "pi":
		if h.Number == ModeBigNumber {
			return BigNumber(bigPi(h.prec())), true
		}
		return Number(math.Pi), true
	case "e":
		if h.Number == ModeBigNumber {
			z := new(big.Float).SetPrec(h.prec())
			return BigNumber(bigfloat.Exp(z, big.NewFloat(1).SetPrec(h.prec()))), true
		}
		return Number(math.E), true
	case "true":
		return Bool(true), true
	case "false":
		return Bool(false), true
	case "null":
		return Null(), true
	case "Inf", "Infinity":
		return Number(math.Inf(1)), true
	case "NaN":
		return Number(math.NaN()), true
	}
	return Value{}, false
}

// lookup resolves a symbol: scope bindings shadow host constants, which
// shadow host functions, which shadow units.
func (h *Host) lookup(scope *Scope, name string) (Value, error) {
	if v, ok := scope.Get(name); ok {
		return v, nil
	}
	if v, ok := h.Constant(name); ok {
		return v, nil
	}
	if f, ok := h.Func(name); ok {
		return funcValue(f), nil
	}
	if u, ok := LookupUnit(1, name); ok {
		return unitValue(u), nil
	}
	return Value{}, &UndefinedSymbolError{Name: name}
}

// truthy converts a condition value to a bool. Booleans and numbers
// convert; undefined and null are false.
func (h *Host) truthy(v Value) (bool, error) {
	switch v.kind {
	case KindBool:
		return v.b, nil
	case KindNumber:
		return v.num != 0, nil
	case KindBigNumber:
		return v.Big().Sign() != 0, nil
	case KindUndefined, KindNull:
		return false, nil
	}
	return false, &TypeError{Fn: "boolean", Want: "boolean or number", Got: v.kind.String()}
}
