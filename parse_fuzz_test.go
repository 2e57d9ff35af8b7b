package mathexpr_test

import (
	"testing"

	"github.com/athollus/mathexpr"
)

func FuzzParse(f *testing.F) {
	f.Add("x")
	f.Add("2 + 3 * 4")
	f.Add("[1, 2; 3, 4][2, 1]")
	f.Add(`a = "hi"; a[1]`)
	f.Add("1×2")
	f.Fuzz(func(t *testing.T, s string) {
		n, err := mathexpr.Parse(s)
		if err != nil {
			return
		}
		// Whatever parses must stringify to something that parses again.
		if _, err := mathexpr.Parse(n.String()); err != nil {
			t.Fatalf("%q -> %q failed to parse: %v", s, n.String(), err)
		}
	})
}
