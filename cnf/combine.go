package cnf

// CombineOred merges two CNF formulae under logical disjunction, producing
// a CNF for L ∨ R via pairwise clause disjunction, using DefaultLimits.
// conditionalObjectID is the provenance id of the control-flow merge point
// (e.g. the join after an if/else) that required the combination.
func CombineOred(l, r Formula, conditionalObjectID int) Formula {
	return CombineOredWithLimits(l, r, conditionalObjectID, DefaultLimits)
}

// CombineOredWithLimits is CombineOred parameterized by an explicit per-side
// clause count ceiling.
func CombineOredWithLimits(l, r Formula, conditionalObjectID int, limits Limits) Formula {
	if len(l) > limits.CombineMaxClauses || len(r) > limits.CombineMaxClauses {
		return Formula{}
	}
	if len(l) == 0 || len(r) == 0 {
		// An empty CNF denotes "trivially true"; ORing True with anything
		// is True, so the combination carries no constraint either.
		return Formula{}
	}

	dedupe := len(l) > 1 && len(r) > 1
	eitherMultiSided := len(l) > 1 || len(r) > 1
	allDoubleWedge := true
	anyDoubleWedge := false
	var out Formula

	for _, lc := range l {
		for _, rc := range r {
			if lc.wedge && rc.wedge {
				anyDoubleWedge = true
				continue
			}
			allDoubleWedge = false
			if merged, ok := combinePair(lc, rc, conditionalObjectID, dedupe, eitherMultiSided); ok {
				out = append(out, merged)
			}
		}
	}
	if allDoubleWedge {
		return Formula{NewWedgeClause(nextWedgeID(), nextWedgeID())}
	}
	if anyDoubleWedge {
		out = append(out, NewWedgeClause(nextWedgeID(), nextWedgeID()))
	}
	return out
}

// combinePair builds the disjoint union of one clause from each side of an
// OR-combination. dedupe applies only when both sides had more than one
// clause; generated is forced true when either side did.
func combinePair(l, r *Clause, mergePointID int, dedupe, eitherMultiSided bool) (*Clause, bool) {
	merged := make(map[VarKey][]Assertion, l.Len()+r.Len())
	for v, list := range l.possibilities {
		if r.IsRedefined(v) {
			continue
		}
		merged[v] = append([]Assertion{}, list...)
	}
	for v, list := range r.possibilities {
		merged[v] = append(merged[v], list...)
	}

	if dedupe {
		for v, list := range merged {
			merged[v] = dedupeAssertions(list)
		}
	}

	for _, list := range merged {
		if len(list) == 2 && list[0].IsNegationOf(list[1]) {
			return nil, false
		}
	}

	reconcilable := l.reconcilable && r.reconcilable && !l.wedge && !r.wedge
	generated := l.generated || r.generated || eitherMultiSided

	condID := mergePointID
	if l.creatingConditionalID == r.creatingConditionalID {
		condID = l.creatingConditionalID
	}

	if len(merged) == 0 {
		return NewWedgeClause(condID, mergePointID), true
	}

	var opts []ClauseOption
	if !reconcilable {
		opts = append(opts, Unreconcilable())
	}
	if generated {
		opts = append(opts, Generated())
	}
	return NewClause(merged, condID, mergePointID, opts...), true
}

// dedupeAssertions removes duplicate renderings from list, preserving
// first-occurrence order.
func dedupeAssertions(list []Assertion) []Assertion {
	seen := make(map[string]struct{}, len(list))
	out := make([]Assertion, 0, len(list))
	for _, a := range list {
		r := a.Render()
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, a)
	}
	return out
}

// NegateTypes applies DNF-style negation to a per-variable AND-of-ORs
// mapping such as the one produced by Truths: for each var, if there is
// more than one conjunct and every conjunct is a single assertion (i.e. the
// shape is really just a flat conjunction), De Morgan's law turns it into a
// single disjunction of negations. If there is exactly one conjunct (the
// shape is really just a flat disjunction), each disjunct becomes its own
// negated singleton conjunct. Any other shape (a genuine mix of conjunction
// and disjunction) can't be negated by this simple transform, so the var is
// dropped from the result.
func NegateTypes(input map[VarKey][][]Assertion) map[VarKey][][]Assertion {
	out := make(map[VarKey][][]Assertion, len(input))
	for v, ands := range input {
		if len(ands) == 0 {
			continue
		}
		allUnit := true
		for _, or := range ands {
			if len(or) != 1 {
				allUnit = false
				break
			}
		}
		switch {
		case len(ands) > 1 && allUnit:
			negated := make([]Assertion, len(ands))
			for i, or := range ands {
				negated[i] = or[0].Negate()
			}
			out[v] = [][]Assertion{negated}
		case len(ands) == 1:
			or := ands[0]
			expanded := make([][]Assertion, len(or))
			for i, a := range or {
				expanded[i] = []Assertion{a.Negate()}
			}
			out[v] = expanded
		default:
			// Mixed AND/OR shape: no simple negation, drop the var.
		}
	}
	return out
}
