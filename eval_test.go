package mathexpr_test

import (
	"math"
	"reflect"
	"testing"

	"github.com/athollus/mathexpr"
)

func TestEvalNumbers(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want float64
	}{
		{"arith", "2 + 6 / 3", 4},
		{"negpow", "-3^2", -9},
		{"powchain", "2^3^4", math.Pow(2, 81)},
		{"factorial", "3!^2", 36},
		{"mod", "8 mod 3", 2},
		{"sqrt", "sqrt(16)", 4},
		{"log", "log(e)", 1},
		{"exp", "exp(1)", math.E},
		{"abs", "abs(-5)", 5},
		{"round", "round(2.7)", 3},
		{"floor", "floor(2.7)", 2},
		{"ceil", "ceil(2.1)", 3},
		{"min", "min(3, 1, 2)", 1},
		{"max", "max(3, 1, 2)", 3},
		{"minmatrix", "min([3, 1, 2])", 1},
		{"pi", "pi", math.Pi},
		{"e", "e", math.E},
		{"shl", "4 << 1", 8},
		{"shr", "8 >> 2", 2},
		{"bitand", "5 & 3", 1},
		{"bitor", "5 | 3", 7},
		{"numberstring", `number("42")`, 42},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			v, err := mathexpr.Eval(c.src)
			if err != nil {
				t.Fatalf("failed to evaluate %q: %v", c.src, err)
			}
			if v.Kind() != mathexpr.KindNumber {
				t.Fatalf("evaluating %q: want a number, got %v %v", c.src, v.Kind(), v)
			}
			if got := v.Num(); got != c.want {
				t.Errorf("evaluating %q: want %v, got %v", c.src, c.want, got)
			}
		})
	}
}

func TestEvalDisplay(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"unitmul", "5.08 cm * 1000", "5080 cm"},
		{"unitfn", `unit("5.08 cm")`, "5.08 cm"},
		{"unitfn2", "unit(5.08, cm)", "5.08 cm"},
		{"relational", "2 < 3", "true"},
		{"strconcat", `"foo" + "bar"`, `"foobar"`},
		{"matrix", "[1, 2; 3, 4]", "[[1, 2], [3, 4]]"},
		{"transpose", "[1, 2; 3, 4]'", "[[1, 3], [2, 4]]"},
		{"dotmul", "[1, 2, 3] .* [4, 5, 6]", "[4, 10, 18]"},
		{"matrixpow", "[1, 1; 0, 1]^2", "[[1, 2], [0, 1]]"},
		{"range", "1:5", "1:5"},
		{"index", "[1, 2; 3, 4][2, 1]", "3"},
		{"indexrange", "[1, 2, 3, 4][2:3]", "[2, 3]"},
		{"indexend", "[1, 2, 3][end]", "3"},
		{"stringslice", `"hello"[end - 2 : -1 : 1]`, `"leh"`},
		{"conditional", `2 > 1 ? "yes" : "no"`, `"yes"`},
		{"andshort", "false and x", "false"},
		{"orshort", "true or x", "true"},
		{"size", "size([1, 2; 3, 4])", "[2, 2]"},
		{"sizestring", `size("hello")`, "[5]"},
		{"concat", "concat([1, 2], [3])", "[1, 2, 3]"},
		{"concatrows", "concat([1, 2; 3, 4], [5; 6])", "[[1, 2, 5], [3, 4, 6]]"},
		{"stringfn", "string(2.5)", `"2.5"`},
		{"block", "a = 3\nb = 4\na * b", "[3, 4, 12]"},
		{"blockhidden", "a = 3; a * 2", "[6]"},
		{"fnassign", "f(x) = x^2; f(3)", "[9]"},
		{"fnvalue", "f(x, y) = x + y", "function f(x, y)"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			v, err := mathexpr.Eval(c.src)
			if err != nil {
				t.Fatalf("failed to evaluate %q: %v", c.src, err)
			}
			if got := v.String(); got != c.want {
				t.Errorf("evaluating %q: want %q, got %q", c.src, c.want, got)
			}
		})
	}
}

func TestEvalConversion(t *testing.T) {
	// Unit scale factors are not exact binary fractions, so converted
	// magnitudes carry rounding noise.
	t.Run("unit", func(t *testing.T) {
		v, err := mathexpr.Eval("5.08 cm * 1000 to inch")
		if err != nil {
			t.Fatalf("failed to evaluate: %v", err)
		}
		u := v.Unit()
		if u == nil {
			t.Fatalf("want a unit, got %v %v", v.Kind(), v)
		}
		if u.Name != "inch" {
			t.Errorf("want inch, got %q", u.Name)
		}
		if math.Abs(u.Value-2000) > 1e-9 {
			t.Errorf("want 2000, got %v", u.Value)
		}
	})
	t.Run("number", func(t *testing.T) {
		v, err := mathexpr.Eval("number(5.08 cm, inch)")
		if err != nil {
			t.Fatalf("failed to evaluate: %v", err)
		}
		if got := v.Num(); math.Abs(got-2) > 1e-12 {
			t.Errorf("want 2, got %v", got)
		}
	})
}

func TestEvalScope(t *testing.T) {
	t.Run("carry", func(t *testing.T) {
		s := mathexpr.NewScope()
		if _, err := mathexpr.Eval("x = 7", s); err != nil {
			t.Fatalf("failed to assign: %v", err)
		}
		v, err := mathexpr.Eval("x + 1", s)
		if err != nil {
			t.Fatalf("failed to evaluate: %v", err)
		}
		if got := v.Num(); got != 8 {
			t.Errorf("want 8, got %v", got)
		}
	})
	t.Run("resize", func(t *testing.T) {
		s := mathexpr.NewScope()
		steps := []string{
			"a = [1, 2; 3, 4]",
			"a[2:3, 2:3] = [10, 11; 12, 13]",
		}
		for _, src := range steps {
			if _, err := mathexpr.Eval(src, s); err != nil {
				t.Fatalf("failed to evaluate %q: %v", src, err)
			}
		}
		v, err := mathexpr.Eval("a", s)
		if err != nil {
			t.Fatalf("failed to evaluate a: %v", err)
		}
		want := "[[1, 2, 0], [3, 10, 11], [0, 12, 13]]"
		if got := v.String(); got != want {
			t.Errorf("want %q, got %q", want, got)
		}
	})
	t.Run("stringupdate", func(t *testing.T) {
		s := mathexpr.NewScope()
		if _, err := mathexpr.Eval(`c = "cello"`, s); err != nil {
			t.Fatalf("failed to set c: %v", err)
		}
		if _, err := mathexpr.Eval(`c[1] = "H"`, s); err != nil {
			t.Fatalf("failed to update c: %v", err)
		}
		v, err := mathexpr.Eval("c", s)
		if err != nil {
			t.Fatalf("failed to evaluate c: %v", err)
		}
		if got := v.String(); got != `"Hello"` {
			t.Errorf("want %q, got %q", `"Hello"`, got)
		}
	})
	t.Run("lazy", func(t *testing.T) {
		s := mathexpr.NewScope()
		v, err := mathexpr.Eval("true ? (a = 2) : (b = 2)", s)
		if err != nil {
			t.Fatalf("failed to evaluate: %v", err)
		}
		if got := v.Num(); got != 2 {
			t.Errorf("want 2, got %v", got)
		}
		if _, ok := s.Get("a"); !ok {
			t.Error("true branch did not run: a is unset")
		}
		if _, ok := s.Get("b"); ok {
			t.Error("false branch ran: b is set")
		}
	})
	t.Run("capture", func(t *testing.T) {
		s := mathexpr.NewScope()
		for _, src := range []string{"a = 3", "f(x) = a * x"} {
			if _, err := mathexpr.Eval(src, s); err != nil {
				t.Fatalf("failed to evaluate %q: %v", src, err)
			}
		}
		v, err := mathexpr.Eval("f(2)", s)
		if err != nil {
			t.Fatalf("failed to evaluate f(2): %v", err)
		}
		if got := v.Num(); got != 6 {
			t.Errorf("want 6, got %v", got)
		}
		// The body reads a from the defining scope at call time, so
		// reassigning a changes what f computes.
		if _, err := mathexpr.Eval("a = 5", s); err != nil {
			t.Fatalf("failed to reassign a: %v", err)
		}
		v, err = mathexpr.Eval("f(2)", s)
		if err != nil {
			t.Fatalf("failed to evaluate f(2): %v", err)
		}
		if got := v.Num(); got != 10 {
			t.Errorf("want 10 after a = 5, got %v", got)
		}
	})
	t.Run("illegal", func(t *testing.T) {
		s := mathexpr.NewScope()
		s.Set("end", mathexpr.Number(3))
		_, err := mathexpr.Eval("2 + 2", s)
		if _, ok := err.(*mathexpr.IllegalScopeError); !ok {
			t.Fatalf("want IllegalScopeError, got %T %v", err, err)
		}
		if got := err.Error(); got != "Scope contains an illegal symbol" {
			t.Errorf("wrong message: %q", got)
		}
	})
	t.Run("toomany", func(t *testing.T) {
		_, err := mathexpr.Eval("2", mathexpr.NewScope(), mathexpr.NewScope())
		if _, ok := err.(*mathexpr.ArgumentsError); !ok {
			t.Fatalf("want ArgumentsError, got %T %v", err, err)
		}
		want := "Wrong number of arguments in function Eval (2 provided, 1 expected)"
		if got := err.Error(); got != want {
			t.Errorf("wrong message:\n\twant %q\n\tgot  %q", want, got)
		}
	})
}

func TestEvalErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		err  error
		msg  string
	}{
		{"undefined", "x + 1", new(mathexpr.UndefinedSymbolError), "Undefined symbol x"},
		{"arity", "sqrt(1, 2)", new(mathexpr.ArgumentsError), "Wrong number of arguments in function sqrt (2 provided, 1 expected)"},
		{"addstring", `2 + "a"`, new(mathexpr.TypeError), "Unexpected type of argument in function add (expected: number, actual: string)"},
		{"condstring", `"x" ? 1 : 2`, new(mathexpr.TypeError), "Unexpected type of argument in function boolean (expected: boolean or number, actual: string)"},
		{"indexhigh", "[1, 2][3]", new(mathexpr.IndexError), "Index out of range (3 > 2)"},
		{"indexlow", "[1, 2][0]", new(mathexpr.IndexError), "Index out of range (0 < 1)"},
		{"indexfrac", "[1, 2][1.5]", new(mathexpr.TypeError), "Unexpected type of argument in function index (expected: integer, actual: 1.5)"},
		{"notafunction", "a = 2; a(3)", new(mathexpr.TypeError), "Unexpected type of argument in function a (expected: function, actual: number)"},
		{"dimensions", "[1, 2] + [1, 2, 3]", new(mathexpr.DimensionError), "Dimension mismatch (2 != 3)"},
		{"unitdimensions", "5 cm + 2 s", new(mathexpr.DimensionError), "Dimension mismatch (cm != s)"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			v, err := mathexpr.Eval(c.src)
			if err == nil {
				t.Fatalf("%q evaluated to %v", c.src, v)
			}
			if reflect.TypeOf(err) != reflect.TypeOf(c.err) {
				t.Errorf("wrong error type from %q: want %T, got %T", c.src, c.err, err)
			}
			if got := err.Error(); got != c.msg {
				t.Errorf("wrong error message from %q:\n\twant %q\n\tgot  %q", c.src, c.msg, got)
			}
		})
	}
}

func TestEvalBig(t *testing.T) {
	host := mathexpr.BigHost(mathexpr.DefaultPrecision)
	eval := func(t *testing.T, src string) mathexpr.Value {
		t.Helper()
		n, err := mathexpr.Parse(src)
		if err != nil {
			t.Fatalf("failed to parse %q: %v", src, err)
		}
		c, err := mathexpr.Compile(n, host)
		if err != nil {
			t.Fatalf("failed to compile %q: %v", src, err)
		}
		v, err := c.Eval(nil)
		if err != nil {
			t.Fatalf("failed to evaluate %q: %v", src, err)
		}
		return v
	}

	t.Run("exact", func(t *testing.T) {
		v := eval(t, "0.1 + 0.2")
		if v.Kind() != mathexpr.KindBigNumber {
			t.Fatalf("want a BigNumber, got %v %v", v.Kind(), v)
		}
		if got := v.Big().Text('g', 5); got != "0.3" {
			t.Errorf("want 0.3, got %s", got)
		}
	})
	t.Run("pi", func(t *testing.T) {
		v := eval(t, "pi")
		if got := v.Big().Text('g', 10); got != "3.141592654" {
			t.Errorf("want 3.141592654, got %s", got)
		}
	})
	t.Run("promote", func(t *testing.T) {
		v := eval(t, "bignumber(1) + 2")
		if v.Kind() != mathexpr.KindBigNumber {
			t.Fatalf("want a BigNumber, got %v %v", v.Kind(), v)
		}
		if got := v.Big().Text('g', 5); got != "3" {
			t.Errorf("want 3, got %s", got)
		}
	})
}

func BenchmarkEval(b *testing.B) {
	b.Run("nums", func(b *testing.B) {
		b.ReportAllocs()
		n, err := mathexpr.Parse("2 + 3 * 4")
		if err != nil {
			b.Fatal(err)
		}
		c, err := mathexpr.Compile(n, nil)
		if err != nil {
			b.Fatal(err)
		}
		scope := mathexpr.NewScope()
		for i := 0; i < b.N; i++ {
			c.Eval(scope)
		}
	})
	b.Run("vars", func(b *testing.B) {
		b.ReportAllocs()
		n, err := mathexpr.Parse("x + y * z")
		if err != nil {
			b.Fatal(err)
		}
		c, err := mathexpr.Compile(n, nil)
		if err != nil {
			b.Fatal(err)
		}
		scope := mathexpr.NewScope()
		scope.Set("x", mathexpr.Number(2))
		scope.Set("y", mathexpr.Number(3))
		scope.Set("z", mathexpr.Number(4))
		for i := 0; i < b.N; i++ {
			c.Eval(scope)
		}
	})
}
