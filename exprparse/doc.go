// Package exprparse reads a small textual DSL into cnf.Formula values, for
// the cnfdemo CLI and for readable test fixtures.
//
// A formula is a conjunction of clauses separated by '&'; a clause is a
// disjunction of atoms separated by '|', optionally wrapped in parentheses.
// An atom names a variable and an assertion about it:
//
//	x:string            the var x satisfies the "string" assertion
//	x:!string           x does not satisfy "string" (negated)
//	x:falsy:zero         the falsy-marker variant of assertion "zero" on x
//
// Example:
//
//	x:string & (y:!null | z:falsy:zero)
package exprparse
