package cnf

// GroupImpossibilities distributes the impossibilities of a list of clauses
// into the CNF of their negated conjunction: the distributive expansion of
// ANDing one impossibility from each input clause. Every clause in input
// must already have CalculateNegation applied, or InvalidState is returned.
//
// GroupImpossibilities uses DefaultLimits; see GroupImpossibilitiesWithLimits
// to override the growth ceiling.
func GroupImpossibilities(input Formula) (Formula, error) {
	return GroupImpossibilitiesWithLimits(input, DefaultLimits)
}

// GroupImpossibilitiesWithLimits is GroupImpossibilities parameterized by an
// explicit growth ceiling.
func GroupImpossibilitiesWithLimits(input Formula, limits Limits) (Formula, error) {
	if len(input) == 0 {
		return nil, &InvalidState{Reason: "GroupImpossibilitiesWithLimits called with no clauses"}
	}
	for _, c := range input {
		if _, ok := c.Impossibilities(); !ok {
			return nil, &InvalidState{Reason: "GroupImpossibilitiesWithLimits: clause has no computed impossibilities"}
		}
	}

	working := make(Formula, len(input))
	copy(working, input)

	last := working[len(working)-1]
	working = working[:len(working)-1]

	result := seedFromImpossibilities(last)
	counter := len(result)
	if counter > limits.GroupMaxClauses {
		return nil, &ComplicatedExpression{Limit: limits.GroupMaxClauses, Size: counter}
	}

	for i := len(working) - 1; i >= 0; i-- {
		next := working[i]
		imp, _ := next.Impossibilities()

		var grown Formula
		for _, g := range result {
			for v, list := range imp {
				for _, a := range list {
					counter++
					if counter > limits.GroupMaxClauses {
						return nil, &ComplicatedExpression{Limit: limits.GroupMaxClauses, Size: counter}
					}
					merged, keep := mergeImpossibility(g, v, a)
					if !keep {
						continue
					}
					grown = append(grown, merged)
				}
			}
		}
		result = grown
	}
	return result, nil
}

// seedFromImpossibilities produces one unit clause per (var, impossible
// assertion) pair of c, the seed for the cross-product expansion.
func seedFromImpossibilities(c *Clause) Formula {
	imp, _ := c.Impossibilities()
	var out Formula
	for v, list := range imp {
		for _, a := range list {
			out = append(out, NewClause(map[VarKey][]Assertion{v: {a}}, c.creatingConditionalID, c.creatingObjectID, Generated()))
		}
	}
	return out
}

// mergeImpossibility merges (v, a) into g's possibilities, per the cross-
// product step: the new var list is [a] unioned with g's existing list for
// v. If the union contains a mutual-negation pair, both are pruned (the
// var's disjunct is vacuously satisfiable, so it contributes nothing and is
// dropped); if that empties every var entry, the whole candidate clause is
// dropped (keep=false).
func mergeImpossibility(g *Clause, v VarKey, a Assertion) (merged *Clause, keep bool) {
	newPoss := make(map[VarKey][]Assertion, len(g.possibilities)+1)
	for k, list := range g.possibilities {
		newPoss[k] = list
	}
	existing := newPoss[v]
	candidate := make([]Assertion, 0, len(existing)+1)
	candidate = append(candidate, a)
	candidate = append(candidate, existing...)

	pruned, hadPair := pruneMutualNegation(candidate)
	if hadPair && len(pruned) == 0 {
		delete(newPoss, v)
	} else {
		newPoss[v] = pruned
	}
	if len(newPoss) == 0 {
		return nil, false
	}
	return buildClause(newPoss, g.creatingConditionalID, g.creatingObjectID, false, true, true, nil), true
}

// pruneMutualNegation drops the first pair of mutually-negating assertions
// found in list, reporting whether one was found.
func pruneMutualNegation(list []Assertion) ([]Assertion, bool) {
	for i := 0; i < len(list); i++ {
		for j := i + 1; j < len(list); j++ {
			if list[i].IsNegationOf(list[j]) || list[j].IsNegationOf(list[i]) {
				out := make([]Assertion, 0, len(list)-2)
				for k, x := range list {
					if k == i || k == j {
						continue
					}
					out = append(out, x)
				}
				return out, true
			}
		}
	}
	return list, false
}
