package mathexpr

import (
	"math"
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// The scalar numeric kernel. Each operation accepts plain numbers and
// BigNumbers and promotes to arbitrary precision when either operand is a
// BigNumber. Callers check operand kinds; these functions assume numeric
// arguments.

func isNumeric(v Value) bool {
	return v.kind == KindNumber || v.kind == KindBigNumber
}

// toBig converts a numeric value to a big.Float with the given precision.
func toBig(v Value, prec uint) *big.Float {
	if v.kind == KindBigNumber {
		return v.Big()
	}
	return big.NewFloat(v.num).SetPrec(prec)
}

// toFloat converts a numeric value to a float64, rounding BigNumbers.
func toFloat(v Value) float64 {
	if v.kind == KindBigNumber {
		f, _ := v.Big().Float64()
		return f
	}
	return v.num
}

func bothBig(a, b Value) bool {
	return a.kind == KindBigNumber || b.kind == KindBigNumber
}

func addNumbers(a, b Value, prec uint) Value {
	if bothBig(a, b) {
		z := new(big.Float).SetPrec(prec)
		return BigNumber(z.Add(toBig(a, prec), toBig(b, prec)))
	}
	return Number(a.num + b.num)
}

func subNumbers(a, b Value, prec uint) Value {
	if bothBig(a, b) {
		z := new(big.Float).SetPrec(prec)
		return BigNumber(z.Sub(toBig(a, prec), toBig(b, prec)))
	}
	return Number(a.num - b.num)
}

func mulNumbers(a, b Value, prec uint) Value {
	if bothBig(a, b) {
		z := new(big.Float).SetPrec(prec)
		return BigNumber(z.Mul(toBig(a, prec), toBig(b, prec)))
	}
	return Number(a.num * b.num)
}

func divNumbers(a, b Value, prec uint) Value {
	if bothBig(a, b) {
		x, y := toBig(a, prec), toBig(b, prec)
		if y.Sign() == 0 {
			// big.Float has no NaN and Quo panics on 0/0, so fall back to
			// IEEE semantics.
			xf, _ := x.Float64()
			return Number(xf / 0)
		}
		z := new(big.Float).SetPrec(prec)
		return BigNumber(z.Quo(x, y))
	}
	return Number(a.num / b.num)
}

// modNumbers computes x - y*floor(x/y), with mod(x, 0) = x.
func modNumbers(a, b Value, prec uint) Value {
	if bothBig(a, b) {
		x, y := toBig(a, prec), toBig(b, prec)
		if y.Sign() == 0 {
			return BigNumber(new(big.Float).SetPrec(prec).Set(x))
		}
		q := new(big.Float).SetPrec(prec).Quo(x, y)
		q = bigFloor(q, prec)
		z := new(big.Float).SetPrec(prec).Mul(q, y)
		return BigNumber(z.Sub(x, z))
	}
	x, y := a.num, b.num
	if y == 0 {
		return Number(x)
	}
	return Number(x - y*math.Floor(x/y))
}

func negNumber(a Value, prec uint) Value {
	if a.kind == KindBigNumber {
		return BigNumber(new(big.Float).SetPrec(prec).Neg(a.Big()))
	}
	return Number(-a.num)
}

func powNumbers(a, b Value, prec uint) Value {
	if bothBig(a, b) {
		x, y := toBig(a, prec), toBig(b, prec)
		switch {
		case x.Sign() == 0:
			switch {
			case y.Sign() > 0:
				return BigNumber(new(big.Float).SetPrec(prec))
			case y.Sign() == 0:
				return BigNumber(big.NewFloat(1).SetPrec(prec))
			default:
				return BigNumber(new(big.Float).SetPrec(prec).SetInf(false))
			}
		case x.Sign() < 0:
			yi, acc := y.Int64()
			if acc != big.Exact {
				return Number(math.NaN())
			}
			z := new(big.Float).SetPrec(prec)
			bigfloat.Pow(z, new(big.Float).SetPrec(prec).Neg(x), y)
			if yi&1 != 0 {
				z.Neg(z)
			}
			return BigNumber(z)
		}
		z := new(big.Float).SetPrec(prec)
		return BigNumber(bigfloat.Pow(z, x, y))
	}
	return Number(math.Pow(a.num, b.num))
}

func sqrtNumber(a Value, prec uint) Value {
	if a.kind == KindBigNumber {
		x := a.Big()
		if x.Sign() < 0 {
			return Number(math.NaN())
		}
		return BigNumber(new(big.Float).SetPrec(prec).Sqrt(x))
	}
	return Number(math.Sqrt(a.num))
}

func expNumber(a Value, prec uint) Value {
	if a.kind == KindBigNumber {
		z := new(big.Float).SetPrec(prec)
		return BigNumber(bigfloat.Exp(z, a.Big()))
	}
	return Number(math.Exp(a.num))
}

func logNumber(a Value, prec uint) Value {
	if a.kind == KindBigNumber {
		x := a.Big()
		if x.Sign() <= 0 {
			if x.Sign() == 0 {
				return Number(math.Inf(-1))
			}
			return Number(math.NaN())
		}
		z := new(big.Float).SetPrec(prec)
		return BigNumber(bigfloat.Log(z, x))
	}
	return Number(math.Log(a.num))
}

func absNumber(a Value, prec uint) Value {
	if a.kind == KindBigNumber {
		return BigNumber(new(big.Float).SetPrec(prec).Abs(a.Big()))
	}
	return Number(math.Abs(a.num))
}

// bigPi returns pi at the given precision.
func bigPi(prec uint) *big.Float {
	z := new(big.Float).SetPrec(prec)
	return bigfloat.Pi(z)
}

// bigFloor rounds toward negative infinity.
func bigFloor(x *big.Float, prec uint) *big.Float {
	i, acc := x.Int(nil)
	if acc == big.Above {
		i.Sub(i, big.NewInt(1))
	}
	return new(big.Float).SetPrec(prec).SetInt(i)
}

// bigCeil rounds toward positive infinity.
func bigCeil(x *big.Float, prec uint) *big.Float {
	i, acc := x.Int(nil)
	if acc == big.Below {
		i.Add(i, big.NewInt(1))
	}
	return new(big.Float).SetPrec(prec).SetInt(i)
}

// bigRound rounds half away from zero.
func bigRound(x *big.Float, prec uint) *big.Float {
	half := big.NewFloat(0.5).SetPrec(prec)
	z := new(big.Float).SetPrec(prec)
	if x.Sign() < 0 {
		return bigCeil(z.Sub(x, half), prec)
	}
	return bigFloor(z.Add(x, half), prec)
}

func floorNumber(a Value, prec uint) Value {
	if a.kind == KindBigNumber {
		return BigNumber(bigFloor(a.Big(), prec))
	}
	return Number(math.Floor(a.num))
}

func ceilNumber(a Value, prec uint) Value {
	if a.kind == KindBigNumber {
		return BigNumber(bigCeil(a.Big(), prec))
	}
	return Number(math.Ceil(a.num))
}

func roundNumber(a Value, prec uint) Value {
	if a.kind == KindBigNumber {
		return BigNumber(bigRound(a.Big(), prec))
	}
	return Number(math.Round(a.num))
}

// cmpNumbers returns -1, 0, or 1 ordering a against b.
func cmpNumbers(a, b Value, prec uint) int {
	if bothBig(a, b) {
		return toBig(a, prec).Cmp(toBig(b, prec))
	}
	switch {
	case a.num < b.num:
		return -1
	case a.num > b.num:
		return 1
	}
	return 0
}

func factorialNumber(a Value, prec uint) (Value, error) {
	if a.kind == KindBigNumber {
		x := a.Big()
		i, acc := x.Int64()
		if acc != big.Exact || i < 0 {
			return Value{}, &TypeError{Fn: "factorial", Want: "non-negative integer", Got: a.String()}
		}
		z := big.NewFloat(1).SetPrec(prec)
		f := new(big.Float).SetPrec(prec)
		for n := int64(2); n <= i; n++ {
			z.Mul(z, f.SetInt64(n))
		}
		return BigNumber(z), nil
	}
	n := a.num
	if n < 0 && n == math.Floor(n) {
		return Value{}, &TypeError{Fn: "factorial", Want: "non-negative integer", Got: formatNumber(n)}
	}
	if n == math.Floor(n) && n <= 170 {
		r := 1.0
		for i := 2.0; i <= n; i++ {
			r *= i
		}
		return Number(r), nil
	}
	return Number(math.Gamma(n + 1)), nil
}

// asInteger extracts an integer operand for the bitwise operations.
func asInteger(fn string, v Value) (int64, error) {
	switch v.kind {
	case KindNumber:
		if v.num != math.Trunc(v.num) || math.IsInf(v.num, 0) || math.IsNaN(v.num) {
			return 0, &TypeError{Fn: fn, Want: "integer number", Got: formatNumber(v.num)}
		}
		return int64(v.num), nil
	case KindBigNumber:
		i, acc := v.Big().Int64()
		if acc != big.Exact {
			return 0, &TypeError{Fn: fn, Want: "integer number", Got: v.String()}
		}
		return i, nil
	}
	return 0, &TypeError{Fn: fn, Want: "number", Got: v.kind.String()}
}
