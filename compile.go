package mathexpr

import (
	"math/big"
	"strconv"
)

// Evaluable is a compiled expression bound to a host. Evaluating runs it
// against a scope; the same Evaluable may run against many scopes.
type Evaluable func(scope *Scope) (Value, error)

func compileAll(host *Host, nodes []Node) ([]Evaluable, error) {
	evs := make([]Evaluable, len(nodes))
	for i, n := range nodes {
		ev, err := n.Compile(host)
		if err != nil {
			return nil, err
		}
		evs[i] = ev
	}
	return evs, nil
}

func evalAll(evs []Evaluable, scope *Scope) ([]Value, error) {
	vals := make([]Value, len(evs))
	for i, ev := range evs {
		v, err := ev(scope)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return vals, nil
}

func (n *ConstantNode) Compile(host *Host) (Evaluable, error) {
	var v Value
	switch n.Kind {
	case ConstNumber:
		if host.Number == ModeBigNumber {
			z, _, err := big.ParseFloat(n.Value, 10, host.prec(), big.ToNearestEven)
			if err != nil {
				return nil, &PartError{Part: n.Value, Col: 1}
			}
			v = BigNumber(z)
			break
		}
		f, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			return nil, &PartError{Part: n.Value, Col: 1}
		}
		v = Number(f)
	case ConstString:
		v = String(n.Value)
	case ConstBool:
		v = Bool(n.Value == "true")
	case ConstUndefined:
		v = Undefined()
	}
	return func(*Scope) (Value, error) { return v, nil }, nil
}

func (n *SymbolNode) Compile(host *Host) (Evaluable, error) {
	name := n.Name
	return func(scope *Scope) (Value, error) {
		return host.lookup(scope, name)
	}, nil
}

func (n *OperatorNode) Compile(host *Host) (Evaluable, error) {
	args, err := compileAll(host, n.Args)
	if err != nil {
		return nil, err
	}
	// and and or evaluate their right operand only when the left leaves
	// the outcome open.
	if len(args) == 2 {
		switch n.Fn {
		case "and":
			return func(scope *Scope) (Value, error) {
				return shortCircuit(host, args, scope, false)
			}, nil
		case "or":
			return func(scope *Scope) (Value, error) {
				return shortCircuit(host, args, scope, true)
			}, nil
		}
	}
	fn := n.Fn
	return func(scope *Scope) (Value, error) {
		vals, err := evalAll(args, scope)
		if err != nil {
			return Value{}, err
		}
		return host.call(fn, vals)
	}, nil
}

// shortCircuit evaluates and or or: when the left operand already decides
// the result, the right operand does not evaluate.
func shortCircuit(host *Host, args []Evaluable, scope *Scope, stopOn bool) (Value, error) {
	l, err := args[0](scope)
	if err != nil {
		return Value{}, err
	}
	lt, err := host.truthy(l)
	if err != nil {
		return Value{}, err
	}
	if lt == stopOn {
		return Bool(stopOn), nil
	}
	r, err := args[1](scope)
	if err != nil {
		return Value{}, err
	}
	rt, err := host.truthy(r)
	if err != nil {
		return Value{}, err
	}
	return Bool(rt), nil
}

func (n *ConditionalNode) Compile(host *Host) (Evaluable, error) {
	cond, err := n.Cond.Compile(host)
	if err != nil {
		return nil, err
	}
	t, err := n.True.Compile(host)
	if err != nil {
		return nil, err
	}
	f, err := n.False.Compile(host)
	if err != nil {
		return nil, err
	}
	return func(scope *Scope) (Value, error) {
		c, err := cond(scope)
		if err != nil {
			return Value{}, err
		}
		ok, err := host.truthy(c)
		if err != nil {
			return Value{}, err
		}
		if ok {
			return t(scope)
		}
		return f(scope)
	}, nil
}

func (n *RangeNode) Compile(host *Host) (Evaluable, error) {
	parts := []Node{n.Start}
	if n.Step != nil {
		parts = append(parts, n.Step)
	}
	parts = append(parts, n.End)
	evs, err := compileAll(host, parts)
	if err != nil {
		return nil, err
	}
	return func(scope *Scope) (Value, error) {
		vals, err := evalAll(evs, scope)
		if err != nil {
			return Value{}, err
		}
		return host.call("range", vals)
	}, nil
}

// fnRange builds an inclusive range from (start, end) or (start, step, end).
func fnRange(h *Host, args []Value) (Value, error) {
	if len(args) != 2 && len(args) != 3 {
		return Value{}, &ArgumentsError{Fn: "range", Want: 2, Got: len(args)}
	}
	r := Range{Step: 1}
	var err error
	if r.Start, err = rangeBound(args[0]); err != nil {
		return Value{}, err
	}
	if len(args) == 3 {
		if r.Step, err = rangeBound(args[1]); err != nil {
			return Value{}, err
		}
	}
	if r.End, err = rangeBound(args[len(args)-1]); err != nil {
		return Value{}, err
	}
	return rangeValue(&r), nil
}

func rangeBound(v Value) (float64, error) {
	if !isNumeric(v) {
		return 0, &TypeError{Fn: "range", Want: "number", Got: v.kind.String()}
	}
	return toFloat(v), nil
}

func (n *ArrayNode) Compile(host *Host) (Evaluable, error) {
	items, err := compileAll(host, n.Items)
	if err != nil {
		return nil, err
	}
	return func(scope *Scope) (Value, error) {
		vals, err := evalAll(items, scope)
		if err != nil {
			return Value{}, err
		}
		return host.call("matrix", vals)
	}, nil
}

// fnMatrix builds a matrix from its arguments in row-major order.
func fnMatrix(h *Host, args []Value) (Value, error) {
	return matrixValue(NewMatrix(args)), nil
}

func (n *ParenthesisNode) Compile(host *Host) (Evaluable, error) {
	return n.Inner.Compile(host)
}

func (n *BlockNode) Compile(host *Host) (Evaluable, error) {
	evs := make([]Evaluable, len(n.Entries))
	visible := make([]bool, len(n.Entries))
	for i, e := range n.Entries {
		ev, err := e.Node.Compile(host)
		if err != nil {
			return nil, err
		}
		evs[i] = ev
		visible[i] = e.Visible
	}
	return func(scope *Scope) (Value, error) {
		rs := &ResultSet{}
		for i, ev := range evs {
			v, err := ev(scope)
			if err != nil {
				return Value{}, err
			}
			if visible[i] {
				rs.Values = append(rs.Values, v)
			}
		}
		return resultSetValue(rs), nil
	}, nil
}

func (n *AssignmentNode) Compile(host *Host) (Evaluable, error) {
	value, err := n.Value.Compile(host)
	if err != nil {
		return nil, err
	}
	name := n.Name
	return func(scope *Scope) (Value, error) {
		v, err := value(scope)
		if err != nil {
			return Value{}, err
		}
		scope.Set(name, v)
		return v, nil
	}, nil
}

func (n *FunctionAssignmentNode) Compile(host *Host) (Evaluable, error) {
	body, err := n.Body.Compile(host)
	if err != nil {
		return nil, err
	}
	name, params, syntax := n.Name, n.Params, n.Syntax()
	return func(scope *Scope) (Value, error) {
		f := &Function{
			Name:   name,
			Params: params,
			syntax: syntax,
			call: func(args []Value) (Value, error) {
				if len(args) != len(params) {
					return Value{}, &ArgumentsError{Fn: name, Want: len(params), Got: len(args)}
				}
				inner := scope.child()
				for i, p := range params {
					inner.Set(p, args[i])
				}
				return body(inner)
			},
		}
		v := funcValue(f)
		scope.Set(name, v)
		return v, nil
	}, nil
}

func (n *FunctionNode) Compile(host *Host) (Evaluable, error) {
	args, err := compileAll(host, n.Args)
	if err != nil {
		return nil, err
	}
	name := n.Name
	return func(scope *Scope) (Value, error) {
		vals, err := evalAll(args, scope)
		if err != nil {
			return Value{}, err
		}
		v, err := host.lookup(scope, name)
		if err != nil {
			return Value{}, err
		}
		f := v.Func()
		if f == nil {
			return Value{}, &TypeError{Fn: name, Want: "function", Got: v.kind.String()}
		}
		return f.Call(vals)
	}, nil
}

// dimSel is a resolved index dimension: the selected 0-based indices, and
// whether the dimension was written as a single scalar.
type dimSel struct {
	idxs   []int
	scalar bool
}

// resolveDim converts one evaluated dimension to 0-based indices.
func resolveDim(v Value) (dimSel, error) {
	switch {
	case isNumeric(v):
		i, err := indexInt(v)
		if err != nil {
			return dimSel{}, err
		}
		return dimSel{idxs: []int{i}, scalar: true}, nil
	case v.Range() != nil:
		r := v.Range()
		vals := r.Values()
		idxs := make([]int, len(vals))
		for j, f := range vals {
			i, err := indexInt(Number(f))
			if err != nil {
				return dimSel{}, err
			}
			idxs[j] = i
		}
		return dimSel{idxs: idxs}, nil
	case v.Matrix() != nil:
		items := flatten(v.Matrix())
		idxs := make([]int, len(items))
		for j, it := range items {
			if !isNumeric(it) {
				return dimSel{}, &TypeError{Fn: "index", Want: "integer", Got: it.kind.String()}
			}
			i, err := indexInt(it)
			if err != nil {
				return dimSel{}, err
			}
			idxs[j] = i
		}
		return dimSel{idxs: idxs}, nil
	}
	return dimSel{}, &TypeError{Fn: "index", Want: "integer", Got: v.kind.String()}
}

// indexInt converts a 1-based numeric index to a 0-based int.
func indexInt(v Value) (int, error) {
	f := toFloat(v)
	if f != float64(int(f)) {
		return 0, &TypeError{Fn: "index", Want: "integer", Got: formatNumber(f)}
	}
	return int(f) - 1, nil
}

// evalDims evaluates index dimensions against scope, binding the
// pseudo-symbol end to the size of each dimension while that dimension
// evaluates.
func evalDims(dims []Evaluable, size []int, scope *Scope) ([]Value, error) {
	vals := make([]Value, len(dims))
	for i, ev := range dims {
		n := 0
		if i < len(size) {
			n = size[i]
		}
		child := scope.child()
		child.Set("end", Number(float64(n)))
		v, err := ev(child)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return vals, nil
}

// indexSizes reports the per-dimension sizes of an indexable value.
func indexSizes(v Value) []int {
	switch {
	case v.Matrix() != nil:
		return v.Matrix().Size()
	case v.kind == KindString:
		return []int{len([]rune(v.str))}
	}
	return nil
}

// shiftIndexErr rewrites a 0-based index error to the 1-based surface.
func shiftIndexErr(err error) error {
	if ie, ok := err.(*IndexError); ok {
		return ie.shift(1)
	}
	return err
}

func (n *IndexNode) Compile(host *Host) (Evaluable, error) {
	obj, err := n.Object.Compile(host)
	if err != nil {
		return nil, err
	}
	dims, err := compileAll(host, n.Dims)
	if err != nil {
		return nil, err
	}
	return func(scope *Scope) (Value, error) {
		v, err := obj(scope)
		if err != nil {
			return Value{}, err
		}
		v = demote(v)
		dvals, err := evalDims(dims, indexSizes(v), scope)
		if err != nil {
			return Value{}, err
		}
		r, err := host.call("index", append([]Value{v}, dvals...))
		if err != nil {
			return Value{}, shiftIndexErr(err)
		}
		return r, nil
	}, nil
}

// fnIndex selects a subset of a matrix or string. The first argument is
// the indexed value, the rest the per-dimension selections. Out-of-range
// errors carry 0-based bounds; index syntax shifts them to the 1-based
// surface.
func fnIndex(h *Host, args []Value) (Value, error) {
	if len(args) == 0 {
		return Value{}, &ArgumentsError{Fn: "index", Want: 1, Got: 0}
	}
	v, dims := args[0], args[1:]
	if len(dims) == 0 {
		return v, nil
	}
	switch {
	case v.Matrix() != nil:
		m := v.Matrix()
		size := m.Size()
		if len(dims) > len(size) {
			return Value{}, &DimensionError{A: strconv.Itoa(len(dims)), B: strconv.Itoa(len(size))}
		}
		sels := make([]dimSel, len(dims))
		for i, d := range dims {
			sel, err := resolveDim(d)
			if err != nil {
				return Value{}, err
			}
			sels[i] = sel
		}
		if allScalar(sels) {
			idx := make([]int, len(sels))
			for i, s := range sels {
				idx[i] = s.idxs[0]
			}
			return m.get(idx)
		}
		lists := make([][]int, len(sels))
		for i, s := range sels {
			lists[i] = s.idxs
		}
		sub, err := m.subsetGet(lists)
		if err != nil {
			return Value{}, err
		}
		return matrixValue(sub), nil
	case v.kind == KindString:
		if len(dims) != 1 {
			return Value{}, &DimensionError{A: strconv.Itoa(len(dims)), B: "1"}
		}
		sel, err := resolveDim(dims[0])
		if err != nil {
			return Value{}, err
		}
		runes := []rune(v.str)
		out := make([]rune, len(sel.idxs))
		for j, i := range sel.idxs {
			if i < 0 || i >= len(runes) {
				return Value{}, &IndexError{Index: i, Min: 0, Max: len(runes) - 1}
			}
			out[j] = runes[i]
		}
		return String(string(out)), nil
	}
	return Value{}, &TypeError{Fn: "index", Want: "Matrix", Got: v.kind.String()}
}

func allScalar(sels []dimSel) bool {
	for _, s := range sels {
		if !s.scalar {
			return false
		}
	}
	return true
}

func (n *UpdateNode) Compile(host *Host) (Evaluable, error) {
	dims, err := compileAll(host, n.Index.Dims)
	if err != nil {
		return nil, err
	}
	value, err := n.Value.Compile(host)
	if err != nil {
		return nil, err
	}
	name := n.Name
	return func(scope *Scope) (Value, error) {
		v, err := value(scope)
		if err != nil {
			return Value{}, err
		}
		cur, ok := scope.Get(name)
		if !ok {
			return Value{}, &UndefinedSymbolError{Name: name}
		}
		cur = demote(cur)
		dvals, err := evalDims(dims, indexSizes(cur), scope)
		if err != nil {
			return Value{}, err
		}
		callArgs := append([]Value{cur}, dvals...)
		callArgs = append(callArgs, v)
		r, err := host.call("subset", callArgs)
		if err != nil {
			return Value{}, shiftIndexErr(err)
		}
		scope.Set(name, r)
		return r, nil
	}, nil
}

// fnSubset replaces a subset of a matrix or string and returns the new
// container. The first argument is the container, the last the
// replacement, and the arguments between them the per-dimension
// selections. Out-of-range errors carry 0-based bounds, as with index.
func fnSubset(h *Host, args []Value) (Value, error) {
	if len(args) < 3 {
		return Value{}, &ArgumentsError{Fn: "subset", Want: 3, Got: len(args)}
	}
	v, dims, repl := args[0], args[1:len(args)-1], args[len(args)-1]
	switch {
	case v.Matrix() != nil:
		m := v.Matrix().clone()
		lists := make([][]int, len(dims))
		for i, d := range dims {
			sel, err := resolveDim(d)
			if err != nil {
				return Value{}, err
			}
			lists[i] = sel.idxs
		}
		if err := m.subsetSet(lists, demote(repl)); err != nil {
			return Value{}, err
		}
		return matrixValue(m), nil
	case v.kind == KindString:
		s, err := updateString(v.str, dims, repl)
		if err != nil {
			return Value{}, err
		}
		return String(s), nil
	}
	return Value{}, &TypeError{Fn: "index", Want: "Matrix", Got: v.kind.String()}
}

// updateString replaces the selected characters of a string with the
// characters of the assigned string.
func updateString(s string, dims []Value, v Value) (string, error) {
	if len(dims) != 1 {
		return "", &DimensionError{A: strconv.Itoa(len(dims)), B: "1"}
	}
	if v.kind != KindString {
		return "", &TypeError{Fn: "index", Want: "string", Got: v.kind.String()}
	}
	sel, err := resolveDim(dims[0])
	if err != nil {
		return "", err
	}
	runes := []rune(s)
	repl := []rune(v.str)
	if len(repl) != len(sel.idxs) {
		return "", &DimensionError{A: strconv.Itoa(len(sel.idxs)), B: strconv.Itoa(len(repl))}
	}
	for j, i := range sel.idxs {
		if i < 0 {
			return "", &IndexError{Index: i, Min: 0, Max: len(runes) - 1}
		}
		for len(runes) <= i {
			runes = append(runes, ' ')
		}
		runes[i] = repl[j]
	}
	return string(runes), nil
}
