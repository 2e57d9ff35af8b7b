package mathexpr_test

import (
	"testing"

	"github.com/athollus/mathexpr"
)

func FuzzEval(f *testing.F) {
	f.Add("x")
	f.Add("x^2 + 1")
	f.Add("[1, 2; 3, 4] * x")
	f.Add("1:x")
	f.Add("1×2")
	f.Fuzz(func(t *testing.T, s string) {
		scope := mathexpr.NewScope()
		scope.Set("x", mathexpr.Number(2))
		mathexpr.Eval(s, scope)
	})
}
