package mathexpr_test

import (
	"math"
	"testing"

	"github.com/athollus/mathexpr"
)

func evalWith(t *testing.T, host *mathexpr.Host, src string) (mathexpr.Value, error) {
	t.Helper()
	n, err := mathexpr.Parse(src)
	if err != nil {
		t.Fatalf("failed to parse %q: %v", src, err)
	}
	c, err := mathexpr.Compile(n, host)
	if err != nil {
		t.Fatalf("failed to compile %q: %v", src, err)
	}
	return c.Eval(nil)
}

func TestHostRegister(t *testing.T) {
	host := mathexpr.DefaultHost()
	host.Register("double", func(h *mathexpr.Host, args []mathexpr.Value) (mathexpr.Value, error) {
		if len(args) != 1 {
			return mathexpr.Value{}, &mathexpr.ArgumentsError{Fn: "double", Want: 1, Got: len(args)}
		}
		return mathexpr.Number(2 * args[0].Num()), nil
	})

	v, err := evalWith(t, host, "double(21)")
	if err != nil {
		t.Fatalf("failed to evaluate: %v", err)
	}
	if got := v.Num(); got != 42 {
		t.Errorf("want 42, got %v", got)
	}

	host.Register("sqrt", nil)
	_, err = evalWith(t, host, "sqrt(4)")
	if _, ok := err.(*mathexpr.UndefinedSymbolError); !ok {
		t.Fatalf("want UndefinedSymbolError, got %T %v", err, err)
	}
	if got := err.Error(); got != "Undefined symbol sqrt" {
		t.Errorf("wrong message: %q", got)
	}
}

func TestUnits(t *testing.T) {
	t.Run("display", func(t *testing.T) {
		cases := []struct {
			src, want string
		}{
			{"1 inch to cm", "2.54 cm"},
			{"1 km to m", "1000 m"},
			{"2 cm < 1 inch", "true"},
			{"100 cm == 1 m", "true"},
			{"2 cm + 1 inch", "4.54 cm"},
		}
		for _, c := range cases {
			v, err := mathexpr.Eval(c.src)
			if err != nil {
				t.Fatalf("failed to evaluate %q: %v", c.src, err)
			}
			if got := v.String(); got != c.want {
				t.Errorf("evaluating %q: want %q, got %q", c.src, c.want, got)
			}
		}
	})
	t.Run("magnitude", func(t *testing.T) {
		v, err := mathexpr.Eval("number(1 ft, inch)")
		if err != nil {
			t.Fatalf("failed to evaluate: %v", err)
		}
		// The scale factors are not exact binary fractions.
		if got := v.Num(); math.Abs(got-12) > 1e-9 {
			t.Errorf("want 12, got %v", got)
		}
	})
	t.Run("unknown", func(t *testing.T) {
		_, err := mathexpr.Eval("5 florps")
		if _, ok := err.(*mathexpr.UndefinedSymbolError); !ok {
			t.Fatalf("want UndefinedSymbolError, got %T %v", err, err)
		}
		if got := err.Error(); got != "Undefined symbol florps" {
			t.Errorf("wrong message: %q", got)
		}
	})
	t.Run("incompatible", func(t *testing.T) {
		_, err := mathexpr.Eval("1 cm to s")
		if _, ok := err.(*mathexpr.DimensionError); !ok {
			t.Fatalf("want DimensionError, got %T %v", err, err)
		}
		if got := err.Error(); got != "Dimension mismatch (cm != s)" {
			t.Errorf("wrong message: %q", got)
		}
	})
}

func TestBroadcast(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"scalar", "[1, 2; 3, 4] + 10", "[[11, 12], [13, 14]]"},
		{"scalarleft", "2 * [1, 2]", "[2, 4]"},
		{"elementwise", "[1, 2] + [10, 20]", "[11, 22]"},
		{"range", "(1:3) + 1", "[2, 3, 4]"},
		{"equal", "[1, 2] == [1, 3]", "[true, false]"},
		{"unequal", "[1, 2] != [1, 3]", "[false, true]"},
		{"compare", "[1, 5] < [2, 2]", "[true, false]"},
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

func TestLogic(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"not 0", "true"},
		{"not 2", "false"},
		{"not null", "true"},
		{"1 xor 0", "true"},
		{"true xor true", "false"},
		{"true and 2", "true"},
		{"false or 0", "false"},
	}
	for _, c := range cases {
		v, err := mathexpr.Eval(c.src)
		if err != nil {
			t.Fatalf("failed to evaluate %q: %v", c.src, err)
		}
		if got := v.String(); got != c.want {
			t.Errorf("evaluating %q: want %q, got %q", c.src, c.want, got)
		}
	}
}

func TestFactorial(t *testing.T) {
	t.Run("gamma", func(t *testing.T) {
		v, err := mathexpr.Eval("2.5!")
		if err != nil {
			t.Fatalf("failed to evaluate: %v", err)
		}
		if got, want := v.Num(), math.Gamma(3.5); got != want {
			t.Errorf("want %v, got %v", want, got)
		}
	})
	t.Run("negative", func(t *testing.T) {
		_, err := mathexpr.Eval("(-1)!")
		if _, ok := err.(*mathexpr.TypeError); !ok {
			t.Fatalf("want TypeError, got %T %v", err, err)
		}
		want := "Unexpected type of argument in function factorial (expected: non-negative integer, actual: -1)"
		if got := err.Error(); got != want {
			t.Errorf("wrong message:\n\twant %q\n\tgot  %q", want, got)
		}
	})
}

func TestConversions(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"numbool", "number(true)", "1"},
		{"strmatrix", "string([1, 2])", `"[1, 2]"`},
		{"strstr", `string("hi")`, `"hi"`},
		{"concatstrings", `concat("foo", "bar", "!")`, `"foobar!"`},
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
	t.Run("badstring", func(t *testing.T) {
		_, err := mathexpr.Eval(`number("forty")`)
		if _, ok := err.(*mathexpr.TypeError); !ok {
			t.Fatalf("want TypeError, got %T %v", err, err)
		}
		want := `Unexpected type of argument in function number (expected: number, actual: "forty")`
		if got := err.Error(); got != want {
			t.Errorf("wrong message:\n\twant %q\n\tgot  %q", want, got)
		}
	})
}

func TestConcatDimensions(t *testing.T) {
	_, err := mathexpr.Eval("concat([1, 2; 3, 4], [5, 6; 7, 8; 9, 10])")
	if _, ok := err.(*mathexpr.DimensionError); !ok {
		t.Fatalf("want DimensionError, got %T %v", err, err)
	}
	if got := err.Error(); got != "Dimension mismatch (2 != 3)" {
		t.Errorf("wrong message: %q", got)
	}
}
