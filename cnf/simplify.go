package cnf

// Limits bounds the work the engine will do before giving up and returning
// an empty/unchanged result rather than risk exponential blow-up on a
// pathological input. The zero value is not useful; use DefaultLimits or a
// copy of it with individual fields overridden.
type Limits struct {
	// SimplifyMaxClauses is the hard ceiling on input size to Simplify.
	// Exceeding it returns an empty formula.
	SimplifyMaxClauses int
	// SimplifyUnknownOnlyThreshold: beyond this many clauses, if every
	// clause mentions only unknown ('*'-prefixed) vars, Simplify returns
	// the input unchanged rather than attempt resolution over it.
	SimplifyUnknownOnlyThreshold int
	// SimplifyThreeWayMax bounds the clause count eligible for the
	// three-way resolution pass (step 5); the pass is O(n^3): each pair of
	// clauses is checked against every clause in the set.
	SimplifyThreeWayMax int
	// GroupMaxClauses bounds the distributive expansion performed by
	// GroupImpossibilities; exceeding it returns ComplicatedExpression.
	GroupMaxClauses int
	// CombineMaxClauses bounds the per-side clause count CombineOred will
	// accept before giving up and returning an empty formula.
	CombineMaxClauses int
}

// DefaultLimits are the engine's compiled-in ceilings.
var DefaultLimits = Limits{
	SimplifyMaxClauses:           65536,
	SimplifyUnknownOnlyThreshold: 50,
	SimplifyThreeWayMax:          256,
	GroupMaxClauses:              20000,
	CombineMaxClauses:            60000,
}

// Simplify reduces a CNF formula to a logically equivalent but hopefully
// smaller one, using DefaultLimits. It never mutates its input.
func Simplify(input Formula) Formula {
	return SimplifyWithLimits(input, DefaultLimits)
}

// SimplifyWithLimits is Simplify parameterized by explicit resource ceilings.
func SimplifyWithLimits(input Formula, limits Limits) Formula {
	if len(input) > limits.SimplifyMaxClauses {
		return Formula{}
	}
	if len(input) > limits.SimplifyUnknownOnlyThreshold && allUnknownVars(input) {
		return input
	}

	clauses := dedupeByHash(input)
	clauses = resolveComplementaryLiterals(clauses)
	clauses = subsume(clauses)
	if n := len(clauses); n > 2 && n < limits.SimplifyThreeWayMax {
		clauses = threeWayResolve(clauses)
	}
	return clauses
}

// allUnknownVars reports whether every var key in every clause of f begins
// with '*'.
func allUnknownVars(f Formula) bool {
	for _, c := range f {
		for v := range c.possibilities {
			if !v.unknown() {
				return false
			}
		}
	}
	return true
}

// dedupeByHash deduplicates clauses by content hash, keeping the first
// occurrence, after making each clause's own possibility lists unique.
func dedupeByHash(input Formula) Formula {
	seen := make(map[string]bool, len(input))
	out := make(Formula, 0, len(input))
	for _, c := range input {
		uc := c.MakeUnique()
		if seen[uc.hash] {
			continue
		}
		seen[uc.hash] = true
		out = append(out, uc)
	}
	return out
}

// resolveComplementaryLiterals implements step 3 of the simplifier: unit
// resolution over complementary literals, for both the multi-key pairwise
// case and the unit-clause case.
func resolveComplementaryLiterals(clauses Formula) Formula {
	working := make(Formula, len(clauses))
	copy(working, clauses)

	for i, a := range working {
		if a == nil || a.wedge || !a.reconcilable {
			continue
		}
		if a.PairCount() > 1 {
			working[i] = resolvePairwiseOpposing(working, i)
		} else if a.PairCount() == 1 {
			resolveUnitAgainstOthers(working, i)
		}
	}

	out := make(Formula, 0, len(working))
	for _, c := range working {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}

// resolvePairwiseOpposing handles: A has more than one (var, assertion)
// pair. Look for another reconcilable non-wedge clause B with the same key
// set, disagreeing on exactly one key, where that key is a singleton mutual
// negation in A and B. If found, drop that key from A.
func resolvePairwiseOpposing(working Formula, idx int) *Clause {
	a := working[idx]
	for j, b := range working {
		if j == idx || b == nil || b.wedge || !b.reconcilable {
			continue
		}
		if !sameKeySet(a, b) {
			continue
		}
		var disagreeing []VarKey
		for v := range a.possibilities {
			if !sameRenderedSet(a.possibilityStrings[v], b.possibilityStrings[v]) {
				disagreeing = append(disagreeing, v)
			}
		}
		if len(disagreeing) != 1 {
			continue
		}
		k := disagreeing[0]
		la := a.possibilities[k]
		lb := b.possibilities[k]
		if len(la) != 1 || len(lb) != 1 || !la[0].IsNegationOf(lb[0]) {
			continue
		}
		if reduced, ok := a.RemovePossibilities(k); ok && reduced != nil {
			return reduced
		}
	}
	return a
}

// resolveUnitAgainstOthers handles: A is a unit clause {v: [t]}. For every
// other clause B containing key v, drop from B's v-list any possibility
// textually equal to the negation of t. If that empties B's v-list, drop
// the key entirely (and the clause, if that empties it too).
func resolveUnitAgainstOthers(working Formula, idx int) {
	a := working[idx]
	var v VarKey
	var t Assertion
	for k, list := range a.possibilities {
		v, t = k, list[0]
	}
	negRendered := t.Negate().Render()

	for j, b := range working {
		if j == idx || b == nil {
			continue
		}
		list, ok := b.possibilities[v]
		if !ok {
			continue
		}
		kept := make([]Assertion, 0, len(list))
		matched := false
		for _, p := range list {
			if p.Render() == negRendered {
				matched = true
				continue
			}
			kept = append(kept, p)
		}
		if !matched {
			continue
		}
		if len(kept) == 0 {
			reduced, ok := b.RemovePossibilities(v)
			if !ok {
				working[j] = nil
				continue
			}
			working[j] = reduced
			continue
		}
		newPoss := make(map[VarKey][]Assertion, len(b.possibilities))
		for k2, l2 := range b.possibilities {
			if k2 == v {
				continue
			}
			newPoss[k2] = l2
		}
		newPoss[v] = kept
		working[j] = buildClause(newPoss, b.creatingConditionalID, b.creatingObjectID, b.wedge, b.reconcilable, b.generated, b.redefinedVars)
	}
}

func sameKeySet(a, b *Clause) bool {
	if len(a.possibilities) != len(b.possibilities) {
		return false
	}
	for v := range a.possibilities {
		if _, ok := b.possibilities[v]; !ok {
			return false
		}
	}
	return true
}

func sameRenderedSet(a, b map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for s := range a {
		if _, ok := b[s]; !ok {
			return false
		}
	}
	return true
}

// subsume implements step 4: remove any clause implied by a stronger one
// already present. Wedges neither subsume nor are subsumed.
func subsume(clauses Formula) Formula {
	n := len(clauses)
	removed := make([]bool, n)
	for i, a := range clauses {
		if a.wedge || removed[i] {
			continue
		}
		for j, b := range clauses {
			if i == j || b.wedge || removed[j] {
				continue
			}
			if a.Contains(b) {
				if b.Contains(a) && j < i {
					continue
				}
				removed[i] = true
				break
			}
		}
	}
	out := make(Formula, 0, n)
	for i, c := range clauses {
		if !removed[i] {
			out = append(out, c)
		}
	}
	return out
}

// threeWayResolve implements step 5: for every pair of reconcilable,
// non-wedge clauses sharing at least one var key, where every shared key is
// a mutual-negation singleton in both, the shared keys could also be
// eliminated by a synthetic clause joining the two clauses' remaining
// literals; if that synthetic clause is already present verbatim, it is
// redundant and removed.
func threeWayResolve(clauses Formula) Formula {
	n := len(clauses)
	toRemove := make(map[string]bool)
	for i := 0; i < n; i++ {
		a := clauses[i]
		if a.wedge || !a.reconcilable {
			continue
		}
		for j := i + 1; j < n; j++ {
			b := clauses[j]
			if b.wedge || !b.reconcilable {
				continue
			}
			shared := sharedKeys(a, b)
			if len(shared) == 0 {
				continue
			}
			if !allSharedAreOpposingSingletons(a, b, shared) {
				continue
			}
			synthPoss := unionNonShared(a, b, shared)
			if len(synthPoss) == 0 {
				continue
			}
			synthHash := computeHash(synthPoss, false, true, false)
			for _, c := range clauses {
				if c.hash == synthHash {
					toRemove[c.hash] = true
				}
			}
		}
	}
	if len(toRemove) == 0 {
		return clauses
	}
	out := make(Formula, 0, n)
	for _, c := range clauses {
		if !toRemove[c.hash] {
			out = append(out, c)
		}
	}
	return out
}

func sharedKeys(a, b *Clause) []VarKey {
	var keys []VarKey
	for v := range a.possibilities {
		if _, ok := b.possibilities[v]; ok {
			keys = append(keys, v)
		}
	}
	return keys
}

func allSharedAreOpposingSingletons(a, b *Clause, shared []VarKey) bool {
	for _, v := range shared {
		la := a.possibilities[v]
		lb := b.possibilities[v]
		if len(la) != 1 || len(lb) != 1 || !la[0].IsNegationOf(lb[0]) {
			return false
		}
	}
	return true
}

func unionNonShared(a, b *Clause, shared []VarKey) map[VarKey][]Assertion {
	isShared := make(map[VarKey]bool, len(shared))
	for _, v := range shared {
		isShared[v] = true
	}
	out := make(map[VarKey][]Assertion)
	for v, list := range a.possibilities {
		if !isShared[v] {
			out[v] = list
		}
	}
	for v, list := range b.possibilities {
		if !isShared[v] {
			out[v] = list
		}
	}
	return out
}
