package cnf

// TruthSet maps a variable to the disjunctions of assertions known to hold
// for it: each entry is itself a list of assertions meaning "at least one of
// these holds"; multiple entries for the same var are implicitly conjoined.
type TruthSet map[VarKey][][]Assertion

// clone returns a shallow copy of the disjunction list for v, safe to store
// independently of subsequent mutation of the source TruthSet's slice.
func (t TruthSet) clone(v VarKey) [][]Assertion {
	src := t[v]
	out := make([][]Assertion, len(src))
	copy(out, src)
	return out
}

// Truths reads single-valued facts per variable out of a CNF formula, using
// creatingConditionalID (if non-nil) to additionally report which facts are
// attributable to that particular conditional, and condReferencedVarIDs (if
// non-nil) as an in-out set of vars the analyzer currently treats as
// directly referenced by the condition being analyzed: entries are deleted
// from it when a generated multi-possibility clause supplies the only
// evidence for a var, since that evidence did not come from a direct
// reference to the var in source.
//
// Truths never mutates input.
func Truths(input Formula, creatingConditionalID *int, condReferencedVarIDs map[VarKey]struct{}) (truths, activeTruths TruthSet) {
	truths = make(TruthSet)
	matched := make(map[VarKey]struct{})

	for _, c := range input {
		if !c.reconcilable || c.Len() != 1 {
			continue
		}
		var v VarKey
		var list []Assertion
		for k, l := range c.possibilities {
			v, list = k, l
		}
		if v.unknown() {
			continue
		}

		isMatch := creatingConditionalID != nil && c.creatingConditionalID == *creatingConditionalID

		switch {
		case len(list) == 1:
			t := list[0]
			if c.IsRedefined(v) {
				truths[v] = [][]Assertion{{t}}
			} else {
				truths[v] = append(truths[v], []Assertion{t})
			}
			if isMatch {
				matched[v] = struct{}{}
			}

		default:
			positiveLike := 0
			for _, a := range list {
				if a.IsFalsy() || !a.IsNegation() {
					positiveLike++
				}
			}
			if positiveLike != len(list) {
				continue
			}
			disjunct := make([]Assertion, len(list))
			copy(disjunct, list)
			truths[v] = [][]Assertion{disjunct}
			if c.generated && len(list) > 1 && condReferencedVarIDs != nil {
				delete(condReferencedVarIDs, v)
			}
			if isMatch {
				matched[v] = struct{}{}
			}
		}
	}

	activeTruths = make(TruthSet, len(matched))
	for v := range matched {
		activeTruths[v] = truths.clone(v)
	}
	return truths, activeTruths
}
