// Package pluralforms parses and evaluates gettext "Plural-Forms" header
// expressions: a restricted C-like arithmetic/logical expression over a
// single free variable n, e.g.
//
//	n%10==1 && n%100!=11 ? 0 : n%10>=2 && n%10<=4 && (n%100<10 || n%100>=20) ? 1 : 2
//
// Parse compiles such an expression into an immutable AST (Node); Node.Eval
// computes the plural form index for a given n. Node.String renders the
// canonical fully-parenthesized form used for debugging and round-trip
// testing.
package pluralforms
