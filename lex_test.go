package mathexpr

import "testing"

func TestScan(t *testing.T) {
	cases := []struct {
		src    string
		tokens []token
	}{
		// spaces and comments
		{"", nil},
		{" \t \r ", nil},
		{"# only a comment", nil},
		{"2 # trailing", []token{{text: "2", kind: tokenNumber, pos: 1}}},
		// numbers
		{"0", []token{{text: "0", kind: tokenNumber, pos: 1}}},
		{"9876543210", []token{{text: "9876543210", kind: tokenNumber, pos: 1}}},
		{"1 0", []token{{text: "1", kind: tokenNumber, pos: 1}, {text: "0", kind: tokenNumber, pos: 3}}},
		{"1.0", []token{{text: "1.0", kind: tokenNumber, pos: 1}}},
		{".1", []token{{text: ".1", kind: tokenNumber, pos: 1}}},
		{"1e3", []token{{text: "1e3", kind: tokenNumber, pos: 1}}},
		{"1e+3", []token{{text: "1e+3", kind: tokenNumber, pos: 1}}},
		{"1e-3", []token{{text: "1e-3", kind: tokenNumber, pos: 1}}},
		{".1e1", []token{{text: ".1e1", kind: tokenNumber, pos: 1}}},
		// malformed numbers stay one token for the parser to reject
		{"3.2.2", []token{{text: "3.2.2", kind: tokenNumber, pos: 1}}},
		{"32e", []token{{text: "32e", kind: tokenNumber, pos: 1}}},
		{".", []token{{text: ".", kind: tokenNumber, pos: 1}}},
		// an exponent marker that starts an identifier splits off
		{"2exp", []token{{text: "2", kind: tokenNumber, pos: 1}, {text: "exp", kind: tokenSymbol, pos: 2}}},
		{"2e3x", []token{{text: "2e3", kind: tokenNumber, pos: 1}, {text: "x", kind: tokenSymbol, pos: 4}}},
		// negative literals are unary minus applications
		{"-1", []token{{text: "-", kind: tokenOp, pos: 1}, {text: "1", kind: tokenNumber, pos: 2}}},
		// symbols
		{"e", []token{{text: "e", kind: tokenSymbol, pos: 1}}},
		{"e1", []token{{text: "e1", kind: tokenSymbol, pos: 1}}},
		{"_1234_", []token{{text: "_1234_", kind: tokenSymbol, pos: 1}}},
		{"π", []token{{text: "π", kind: tokenSymbol, pos: 1}}},
		{"to", []token{{text: "to", kind: tokenSymbol, pos: 1}}},
		// strings
		{`"hi"`, []token{{text: "hi", kind: tokenString, pos: 1}}},
		{`""`, []token{{text: "", kind: tokenString, pos: 1}}},
		{`"hi`, []token{{text: `"hi`, kind: tokenUnknown, pos: 1}}},
		// operators, longest match first
		{"==", []token{{text: "==", kind: tokenOp, pos: 1}}},
		{"= =", []token{{text: "=", kind: tokenOp, pos: 1}, {text: "=", kind: tokenOp, pos: 3}}},
		{"<=>=", []token{{text: "<=", kind: tokenOp, pos: 1}, {text: ">=", kind: tokenOp, pos: 3}}},
		{"<<>>", []token{{text: "<<", kind: tokenOp, pos: 1}, {text: ">>", kind: tokenOp, pos: 3}}},
		{".*", []token{{text: ".*", kind: tokenOp, pos: 1}}},
		{".^", []token{{text: ".^", kind: tokenOp, pos: 1}}},
		{".'", []token{{text: ".'", kind: tokenOp, pos: 1}}},
		{"a--b", []token{
			{text: "a", kind: tokenSymbol, pos: 1},
			{text: "-", kind: tokenOp, pos: 2},
			{text: "-", kind: tokenOp, pos: 3},
			{text: "b", kind: tokenSymbol, pos: 4},
		}},
		{"1+0", []token{
			{text: "1", kind: tokenNumber, pos: 1},
			{text: "+", kind: tokenOp, pos: 2},
			{text: "0", kind: tokenNumber, pos: 3},
		}},
		// statement terminators
		{"1;2", []token{
			{text: "1", kind: tokenNumber, pos: 1},
			{text: ";", kind: tokenEOL, pos: 2},
			{text: "2", kind: tokenNumber, pos: 3},
		}},
		{"1\n2", []token{
			{text: "1", kind: tokenNumber, pos: 1},
			{text: "\n", kind: tokenEOL, pos: 2},
			{text: "2", kind: tokenNumber, pos: 3},
		}},
		// unrecognized characters run together
		{"$", []token{{text: "$", kind: tokenUnknown, pos: 1}}},
		{"$@", []token{{text: "$@", kind: tokenUnknown, pos: 1}}},
		{"a$", []token{{text: "a", kind: tokenSymbol, pos: 1}, {text: "$", kind: tokenUnknown, pos: 2}}},
		{"$a", []token{{text: "$", kind: tokenUnknown, pos: 1}, {text: "a", kind: tokenSymbol, pos: 2}}},
	}

	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			sc := scan(c.src)
			for _, want := range c.tokens {
				got := sc.current()
				if got.kind == tokenEOF {
					t.Fatalf("scanning %q: want token %v, got EOF", c.src, want)
				}
				if got != want {
					t.Errorf("scanning %q: want %v, got %v", c.src, want, got)
				}
				sc.advance()
			}
			if got := sc.current(); got.kind != tokenEOF {
				t.Errorf("scanning %q: extra token %v", c.src, got)
			}
		})
	}
}

func TestScanNesting(t *testing.T) {
	// Inside brackets, newlines are whitespace.
	sc := scan("(1\n2")
	if got := sc.current(); !got.is("(") {
		t.Fatalf("want ( token, got %v", got)
	}
	sc.openBracket()
	sc.advance()
	if got := sc.current(); got.text != "1" {
		t.Fatalf("want number 1, got %v", got)
	}
	sc.advance()
	if got := sc.current(); got.kind != tokenNumber || got.text != "2" {
		t.Errorf("newline inside bracket should be skipped, got %v", got)
	}
	sc.closeBracket()
}

func TestScanPeek(t *testing.T) {
	sc := scan("a + b")
	if got := sc.peek(); !got.is("+") {
		t.Errorf("peek: want +, got %v", got)
	}
	if got := sc.current(); got.text != "a" {
		t.Errorf("peek moved the cursor: current is %v", got)
	}
}
