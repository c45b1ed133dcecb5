package cnf

import (
	"errors"
	"testing"
)

func TestGroupImpossibilitiesRequiresNegationComputed(t *testing.T) {
	plain := unitClause("x", NewAssertion("a"), 1, 1)
	_, err := GroupImpossibilities(Formula{plain})
	var invalid *InvalidState
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidState, got %v", err)
	}
}

func TestGroupImpossibilitiesRequiresNonEmptyInput(t *testing.T) {
	_, err := GroupImpossibilities(nil)
	var invalid *InvalidState
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidState for empty input, got %v", err)
	}
}

func TestGroupImpossibilitiesDistributesCrossProduct(t *testing.T) {
	c1 := unitClause("x", NewAssertion("a"), 1, 1).CalculateNegation()
	c2 := NewClause(map[VarKey][]Assertion{
		"y": {NewAssertion("b"), NewAssertion("c")},
	}, 1, 2).CalculateNegation()

	got, err := GroupImpossibilities(Formula{c1, c2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 clauses (1 x 2 cross product), got %d: %v", len(got), render(got))
	}
	for _, c := range got {
		xs, ok := c.Possibilities("x")
		if !ok || len(xs) != 1 || xs[0].Render() != "!a" {
			t.Fatalf("expected every generated clause to carry x:!a, got %s", c)
		}
	}
}

func TestGroupImpossibilitiesOverflow(t *testing.T) {
	// Five clauses, each with 10 alternatives on a distinct var: the cross
	// product would reach 10^5 = 100000, well past the 20000 ceiling.
	var clauses Formula
	for i := 0; i < 5; i++ {
		var alts []Assertion
		for j := 0; j < 10; j++ {
			alts = append(alts, NewAssertion(namedAlt(i, j)))
		}
		c := NewClause(map[VarKey][]Assertion{VarKey(namedVar(i)): alts}, 1, i)
		clauses = append(clauses, c.CalculateNegation())
	}
	_, err := GroupImpossibilities(clauses)
	var complicated *ComplicatedExpression
	if !errors.As(err, &complicated) {
		t.Fatalf("expected ComplicatedExpression on overflow, got %v", err)
	}
}

func namedVar(i int) string  { return "v" + string(rune('a'+i)) }
func namedAlt(i, j int) string {
	return "alt" + string(rune('a'+i)) + string(rune('0'+j))
}

func TestGroupImpossibilitiesPrunesMutualNegationPairs(t *testing.T) {
	// c1 (original possibility x:a) negates to impossibility x:!a.
	// c2 (original possibility x:!a, y:b) negates to impossibilities
	// x:a, y:!b. Seeding from c2 produces two branches: one carrying x:a,
	// one carrying y:!b. Merging c1's x:!a into the x:a branch cancels
	// that branch outright (tautologous disjunct, both literals on x
	// dropped, and x was its only key), leaving only the y:!b branch
	// (now also carrying x:!a) in the result.
	c1 := unitClause("x", NewAssertion("a"), 1, 1).CalculateNegation()
	c2 := NewClause(map[VarKey][]Assertion{
		"x": {NewNegatedAssertion("a")},
		"y": {NewAssertion("b")},
	}, 1, 2).CalculateNegation()

	got, err := GroupImpossibilities(Formula{c1, c2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected the cancelling branch to vanish, leaving one clause, got %v", render(got))
	}
	xs, ok := got[0].Possibilities("x")
	if !ok || len(xs) != 1 || xs[0].Render() != "!a" {
		t.Fatalf("expected surviving clause to carry x:!a, got %s", got[0])
	}
	ys, ok := got[0].Possibilities("y")
	if !ok || len(ys) != 1 || ys[0].Render() != "!b" {
		t.Fatalf("expected surviving clause to carry y:!b, got %s", got[0])
	}
}
