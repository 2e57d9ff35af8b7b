package mathexpr

// Parse parses a single expression or statement block and returns its tree.
// The tree is independent of any host or scope; compile it against a host
// to evaluate it.
func Parse(src string, opts ...ParseOption) (Node, error) {
	return newParser(src, opts...).parse()
}

// ParseAll parses each source string and returns the trees in order. The
// first parse error aborts.
func ParseAll(srcs []string, opts ...ParseOption) ([]Node, error) {
	nodes := make([]Node, len(srcs))
	for i, src := range srcs {
		n, err := Parse(src, opts...)
		if err != nil {
			return nil, err
		}
		nodes[i] = n
	}
	return nodes, nil
}

// Compiled is an expression bound to a host, ready to evaluate against any
// number of scopes.
type Compiled struct {
	ev   Evaluable
	host *Host
}

// Compile binds a tree to a host. A nil host means DefaultHost.
func Compile(n Node, host *Host) (*Compiled, error) {
	if host == nil {
		host = DefaultHost()
	}
	ev, err := n.Compile(host)
	if err != nil {
		return nil, err
	}
	return &Compiled{ev: ev, host: host}, nil
}

// Eval evaluates the compiled expression against scope. A nil scope
// evaluates against a fresh empty scope.
func (c *Compiled) Eval(scope *Scope) (Value, error) {
	if scope == nil {
		scope = NewScope()
	}
	if name := scope.illegal(); name != "" {
		return Value{}, &IllegalScopeError{Name: name}
	}
	return c.ev(scope)
}

// Eval parses, compiles against the default host, and evaluates src. At
// most one scope may be given; none means a fresh empty scope.
func Eval(src string, scopes ...*Scope) (Value, error) {
	if len(scopes) > 1 {
		return Value{}, &ArgumentsError{Fn: "Eval", Want: 1, Got: len(scopes)}
	}
	n, err := Parse(src)
	if err != nil {
		return Value{}, err
	}
	c, err := Compile(n, nil)
	if err != nil {
		return Value{}, err
	}
	var scope *Scope
	if len(scopes) == 1 {
		scope = scopes[0]
	}
	return c.Eval(scope)
}
