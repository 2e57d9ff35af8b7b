package mathexpr

import "strconv"

// token is a single lexical unit of an expression, carrying its 1-based
// character offset in the source.
type token struct {
	text string
	kind tokenKind
	pos  int
}

func (t token) String() string {
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.pos)
}

// is reports whether the token is an operator or delimiter with the given
// text.
func (t token) is(text string) bool {
	return t.kind == tokenOp && t.text == text
}

// isWord reports whether the token is a symbol with the given text. Word
// operators like to and mod scan as symbols and are promoted by the parser.
func (t token) isWord(text string) bool {
	return t.kind == tokenSymbol && t.text == text
}

type tokenKind int

const (
	tokenNone tokenKind = iota
	// tokenEOF indicates the end of the input.
	tokenEOF
	// tokenEOL terminates a statement, either a newline or ;.
	tokenEOL
	// tokenNumber is a numeric literal, possibly malformed; validation
	// happens when the literal is consumed by the parser.
	tokenNumber
	// tokenSymbol is an identifier: a variable, function, or unit name, or
	// a word operator such as to or mod.
	tokenSymbol
	// tokenString is the contents of a double-quoted string literal,
	// without the quotes.
	tokenString
	// tokenOp is an operator or delimiter from the fixed table.
	tokenOp
	// tokenUnknown is a run of characters the scanner does not recognize,
	// or an unterminated string including its opening quote.
	tokenUnknown
)

func (k tokenKind) String() string {
	switch k {
	case tokenNone:
		return "None"
	case tokenEOF:
		return "EOF"
	case tokenEOL:
		return "EOL"
	case tokenNumber:
		return "Number"
	case tokenSymbol:
		return "Symbol"
	case tokenString:
		return "String"
	case tokenOp:
		return "Op"
	case tokenUnknown:
		return "Unknown"
	default:
		return "tokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}
