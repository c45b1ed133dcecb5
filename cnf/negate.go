package cnf

// Negate turns a CNF formula into the CNF of its logical complement, using
// DefaultLimits. The result is never empty: an exhausted negation (nothing
// reconcilable to negate, or the negation collapsing to nothing useful)
// returns a single wedge clause with fresh provenance rather than an empty
// formula, so callers never have to special-case "no information" against
// "trivially true".
func Negate(input Formula) (Formula, error) {
	return NegateWithLimits(input, DefaultLimits)
}

// NegateWithLimits is Negate parameterized by explicit resource ceilings.
func NegateWithLimits(input Formula, limits Limits) (Formula, error) {
	var reconcilable Formula
	for _, c := range input {
		if c.reconcilable {
			reconcilable = append(reconcilable, c)
		}
	}
	if len(reconcilable) == 0 {
		return freshWedgeFormula(), nil
	}

	negated := make(Formula, len(reconcilable))
	for i, c := range reconcilable {
		negated[i] = c.CalculateNegation()
	}

	grouped, err := GroupImpossibilitiesWithLimits(negated, limits)
	if err != nil {
		return nil, err
	}
	if len(grouped) == 0 {
		return freshWedgeFormula(), nil
	}

	simplified := SimplifyWithLimits(grouped, limits)
	if len(simplified) == 0 {
		return freshWedgeFormula(), nil
	}
	return simplified, nil
}

func freshWedgeFormula() Formula {
	return Formula{NewWedgeClause(nextWedgeID(), nextWedgeID())}
}
