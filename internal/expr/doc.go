// Package expr compiles formula text into an expression tree over the
// iterate z and the plane coordinate c.
//
// Grammar, lowest precedence first:
//
//	sum     = product { ("+" | "-") product }
//	product = unary { ("*" | "/") unary }
//	unary   = ("-" | "+") unary | power
//	power   = primary [ "^" unary ]
//	primary = number | number "i" | "z" | "c" | "i" | "pi" | "e"
//	        | name "(" sum ")" | "(" sum ")"
//
// "^" is right-associative and binds tighter than unary minus, so -z^2 is
// -(z^2) and z^2^3 is z^(2^3). Function names come from a fixed registry;
// see [Functions].
//
// Failures are reported as *[ParseError]; use errors.Is with the Err*
// sentinels to branch on the kind.
package expr
