package mathexpr_test

import (
	"fmt"
	"math"

	"github.com/athollus/mathexpr"
)

func Example() {
	v, _ := mathexpr.Eval("1.2 * (2 + 4.5)")
	fmt.Println(v)
	v, _ = mathexpr.Eval("5.08 cm + 2 inch")
	fmt.Println(v)
	v, _ = mathexpr.Eval(`2 > 1 ? "yes" : "no"`)
	fmt.Println(v)

	// Output:
	// 7.8
	// 10.16 cm
	// "yes"
}

func ExampleScope() {
	scope := mathexpr.NewScope()
	mathexpr.Eval("x = 7", scope)
	v, _ := mathexpr.Eval("x^2 + 1", scope)
	fmt.Println(v)

	// Output:
	// 50
}

func ExampleHost_Register() {
	host := mathexpr.DefaultHost()
	host.Register("hypot", func(h *mathexpr.Host, args []mathexpr.Value) (mathexpr.Value, error) {
		if len(args) != 2 {
			return mathexpr.Value{}, &mathexpr.ArgumentsError{Fn: "hypot", Want: 2, Got: len(args)}
		}
		return mathexpr.Number(math.Hypot(args[0].Num(), args[1].Num())), nil
	})

	n, _ := mathexpr.Parse("hypot(3, 4)")
	c, _ := mathexpr.Compile(n, host)
	v, _ := c.Eval(nil)
	fmt.Println(v)

	// Output:
	// 5
}

func ExampleCustomNode() {
	opt := mathexpr.CustomNode("answer", func(args []mathexpr.Node) (mathexpr.Node, error) {
		return &mathexpr.ConstantNode{Value: "42", Kind: mathexpr.ConstNumber}, nil
	})
	n, _ := mathexpr.Parse("answer / 2", opt)
	fmt.Println(n)
	v, _ := mathexpr.Eval(n.String())
	fmt.Println(v)

	// Output:
	// 42 / 2
	// 21
}
