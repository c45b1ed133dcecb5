// Package cnf implements a propositional-logic engine over opaque type
// assertions.
//
// A Clause is a disjunction of per-variable possibility lists; a Formula is
// an ordered conjunction of clauses (CNF). The package exposes four pure
// operations on that representation: Simplify removes redundant or
// resolvable clauses from a CNF, Negate turns a CNF into the CNF of its
// logical complement, Truths extracts single-valued facts per variable from
// a CNF, and CombineOred merges two CNFs under logical disjunction.
//
// The engine knows nothing about what an assertion means; it only needs the
// Assertion contract (render, negate, is-negation-of, is-negation, falsy) to
// do textual resolution. It performs no I/O and holds no state across calls:
// every operation takes clause values in and returns fresh clause values
// out, so it is safe to call concurrently on disjoint inputs.
package cnf
