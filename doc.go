// Package mathexpr implements a parser and evaluator for mathematical
// expressions.
//
// The syntax is close to what you'd type into a calculator session:
// "2 + 6 / 3", "a = 3", "f(x) = x^2", "5.08 cm * 1000 to inch". Adjacent
// terms multiply, so "2 a" and "(1 + 2)(3 + 4)" work without a * sign.
// Statements separated by newlines or semicolons evaluate in order against
// a shared scope, with semicolons suppressing a statement's output, and an
// expression may spread across lines inside brackets or after a binary
// operator.
//
// Parse an expression once and evaluate it against many scopes, or use the
// Eval shortcut for one-off calculations. Indexing on the expression surface
// is one-based, with the pseudo-symbol end naming the size of the dimension
// being indexed.
package mathexpr
