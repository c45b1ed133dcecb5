package cnf

import "testing"

func unitClause(v VarKey, a Assertion, condID, objID int) *Clause {
	return NewClause(map[VarKey][]Assertion{v: {a}}, condID, objID)
}

func TestClauseHashStableAndContentAddressed(t *testing.T) {
	c1 := NewClause(map[VarKey][]Assertion{
		"x": {NewAssertion("str"), NewAssertion("int")},
	}, 1, 1)
	c2 := NewClause(map[VarKey][]Assertion{
		"x": {NewAssertion("str"), NewAssertion("int")},
	}, 2, 5)
	if c1.Hash() != c2.Hash() {
		t.Fatalf("expected equal hashes for equivalent possibilities, got %q vs %q", c1.Hash(), c2.Hash())
	}
	c3 := NewClause(map[VarKey][]Assertion{
		"x": {NewAssertion("int"), NewAssertion("str")},
	}, 1, 1)
	if c1.Hash() != c3.Hash() {
		t.Fatalf("expected hash to be independent of list order, got %q vs %q", c1.Hash(), c3.Hash())
	}
	c4 := NewClause(map[VarKey][]Assertion{
		"x": {NewAssertion("str")},
	}, 1, 1)
	if c1.Hash() == c4.Hash() {
		t.Fatalf("expected different content to hash differently")
	}
}

func TestClauseHashDependsOnFlags(t *testing.T) {
	base := NewClause(map[VarKey][]Assertion{"x": {NewAssertion("str")}}, 1, 1)
	gen := NewClause(map[VarKey][]Assertion{"x": {NewAssertion("str")}}, 1, 1, Generated())
	if base.Hash() == gen.Hash() {
		t.Fatalf("expected generated flag to change the hash")
	}
}

func TestMakeUniqueDeduplicatesPreservingOrder(t *testing.T) {
	a, b := NewAssertion("a"), NewAssertion("b")
	c := NewClause(map[VarKey][]Assertion{"x": {a, b, a}}, 1, 1)
	uc := c.MakeUnique()
	list, ok := uc.Possibilities("x")
	if !ok || len(list) != 2 || list[0].Render() != "a" || list[1].Render() != "b" {
		t.Fatalf("unexpected deduplicated list: %v", list)
	}
}

func TestMakeUniqueNoopReturnsSamePointer(t *testing.T) {
	c := NewClause(map[VarKey][]Assertion{"x": {NewAssertion("a")}}, 1, 1)
	if c.MakeUnique() != c {
		t.Fatalf("expected MakeUnique to return the same clause when already unique")
	}
}

func TestRemovePossibilities(t *testing.T) {
	c := NewClause(map[VarKey][]Assertion{
		"x": {NewAssertion("a")},
		"y": {NewAssertion("b")},
	}, 1, 1)
	reduced, ok := c.RemovePossibilities("x")
	if !ok {
		t.Fatalf("expected ok=true")
	}
	if _, present := reduced.Possibilities("x"); present {
		t.Fatalf("expected x removed")
	}
	if _, present := reduced.Possibilities("y"); !present {
		t.Fatalf("expected y to remain")
	}

	unit := NewClause(map[VarKey][]Assertion{"x": {NewAssertion("a")}}, 1, 1)
	_, ok = unit.RemovePossibilities("x")
	if ok {
		t.Fatalf("expected removing the only key to report not-ok")
	}
}

func TestAddPossibilities(t *testing.T) {
	c := NewClause(map[VarKey][]Assertion{"x": {NewAssertion("a")}}, 1, 1)
	grown := c.AddPossibilities("x", []Assertion{NewAssertion("b")})
	list, _ := grown.Possibilities("x")
	if len(list) != 2 {
		t.Fatalf("expected 2 possibilities, got %d", len(list))
	}
	if _, present := c.Possibilities("x"); !present {
		t.Fatalf("receiver must stay untouched")
	}
	if orig, _ := c.Possibilities("x"); len(orig) != 1 {
		t.Fatalf("original clause possibilities mutated: %v", orig)
	}
}

func TestContainsSubsumption(t *testing.T) {
	weak := NewClause(map[VarKey][]Assertion{
		"x": {NewAssertion("a")},
		"y": {NewAssertion("b")},
	}, 1, 1)
	strong := NewClause(map[VarKey][]Assertion{"x": {NewAssertion("a")}}, 1, 1)
	if !weak.Contains(strong) {
		t.Fatalf("expected weak clause to contain the strong (subset) clause")
	}
	if strong.Contains(weak) {
		t.Fatalf("strong clause must not contain the weak (superset) clause")
	}
}

func TestContainsNeverTrueForWedges(t *testing.T) {
	w := NewWedgeClause(1, 1)
	other := NewClause(map[VarKey][]Assertion{"x": {NewAssertion("a")}}, 1, 1)
	if w.Contains(other) || other.Contains(w) {
		t.Fatalf("wedges must neither subsume nor be subsumed")
	}
}

func TestEqualHashImpliesMutualContains(t *testing.T) {
	c1 := NewClause(map[VarKey][]Assertion{
		"x": {NewAssertion("a"), NewAssertion("b")},
	}, 1, 1)
	c2 := NewClause(map[VarKey][]Assertion{
		"x": {NewAssertion("b"), NewAssertion("a")},
	}, 2, 9)
	if c1.Hash() != c2.Hash() {
		t.Fatalf("expected equal hashes for equivalent possibilities")
	}
	if !c1.Contains(c2) || !c2.Contains(c1) {
		t.Fatalf("expected clauses with equal hash to mutually contain each other")
	}
}

func TestCalculateNegation(t *testing.T) {
	c := NewClause(map[VarKey][]Assertion{"x": {NewAssertion("a")}}, 1, 1)
	if _, ok := c.Impossibilities(); ok {
		t.Fatalf("expected no impossibilities before CalculateNegation")
	}
	neg := c.CalculateNegation()
	imp, ok := neg.Impossibilities()
	if !ok {
		t.Fatalf("expected impossibilities after CalculateNegation")
	}
	list := imp["x"]
	if len(list) != 1 || list[0].Render() != "!a" {
		t.Fatalf("unexpected negation: %v", list)
	}
}
