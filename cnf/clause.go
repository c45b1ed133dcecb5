package cnf

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// A Clause is one disjunction in a CNF formula: possibilities maps each
// variable touched by the clause to the non-empty list of assertions that
// would satisfy it, and the clause as a whole is the OR of every
// (var, assertion) pair across every list. A clause naming a single var with
// a single assertion is a unit clause.
//
// Clause values are immutable once constructed; every operation that looks
// like a mutation (MakeUnique, RemovePossibilities, AddPossibilities,
// CalculateNegation) returns a new *Clause and leaves the receiver
// untouched, so a Clause can be shared freely across concurrent callers.
type Clause struct {
	possibilities      map[VarKey][]Assertion
	possibilityStrings map[VarKey]map[string]struct{}
	impossibilities    map[VarKey][]Assertion // nil until CalculateNegation runs

	wedge         bool
	reconcilable  bool
	generated     bool
	redefinedVars map[VarKey]struct{}

	creatingConditionalID int
	creatingObjectID      int

	hash string
}

// ClauseOption configures optional Clause construction flags.
type ClauseOption func(*clauseOpts)

type clauseOpts struct {
	wedge         bool
	unreconcilable bool
	generated     bool
	redefinedVars []VarKey
}

// Wedge marks the constructed clause as a wedge: an always-satisfiable
// marker clause meaning "no information", inert with respect to every
// simplification rule.
func Wedge() ClauseOption { return func(o *clauseOpts) { o.wedge = true } }

// Unreconcilable marks the clause as ineligible for simplification,
// negation's resolution step, and truth extraction.
func Unreconcilable() ClauseOption { return func(o *clauseOpts) { o.unreconcilable = true } }

// Generated marks the clause as produced by a logical transformation
// (negation, OR-combination) rather than read directly from source.
func Generated() ClauseOption { return func(o *clauseOpts) { o.generated = true } }

// RedefinedVars marks vars whose prior facts must not carry across this
// clause: the truth extractor treats a unit fact about a redefined var as
// replacing, rather than accumulating with, any earlier fact about it.
func RedefinedVars(vars ...VarKey) ClauseOption {
	return func(o *clauseOpts) { o.redefinedVars = vars }
}

// NewClause builds a Clause from a possibilities mapping. Every inner list
// must be non-empty; NewClause panics otherwise, since an empty-but-present
// key violates the representation's first invariant and signals a caller
// bug rather than a recoverable condition.
func NewClause(possibilities map[VarKey][]Assertion, creatingConditionalID, creatingObjectID int, opts ...ClauseOption) *Clause {
	var o clauseOpts
	for _, opt := range opts {
		opt(&o)
	}
	for v, list := range possibilities {
		if len(list) == 0 {
			panic(fmt.Sprintf("cnf: empty possibility list for var %q", v))
		}
	}
	redefined := make(map[VarKey]struct{}, len(o.redefinedVars))
	for _, v := range o.redefinedVars {
		redefined[v] = struct{}{}
	}
	return buildClause(possibilities, creatingConditionalID, creatingObjectID, o.wedge, !o.unreconcilable, o.generated, redefined)
}

// NewWedgeClause returns a fresh wedge clause carrying the given provenance.
func NewWedgeClause(creatingConditionalID, creatingObjectID int) *Clause {
	return buildClause(nil, creatingConditionalID, creatingObjectID, true, true, false, nil)
}

// buildClause is the single place that computes possibilityStrings and hash,
// so every "modification" that returns a new Clause stays consistent with
// invariant 2 (hash determined purely by rendered possibilities + flags).
func buildClause(possibilities map[VarKey][]Assertion, creatingConditionalID, creatingObjectID int, wedge, reconcilable, generated bool, redefinedVars map[VarKey]struct{}) *Clause {
	strs := make(map[VarKey]map[string]struct{}, len(possibilities))
	for v, list := range possibilities {
		set := make(map[string]struct{}, len(list))
		for _, a := range list {
			set[a.Render()] = struct{}{}
		}
		strs[v] = set
	}
	return &Clause{
		possibilities:         possibilities,
		possibilityStrings:    strs,
		wedge:                 wedge,
		reconcilable:          reconcilable,
		generated:             generated,
		redefinedVars:         redefinedVars,
		creatingConditionalID: creatingConditionalID,
		creatingObjectID:      creatingObjectID,
		hash:                  computeHash(possibilities, wedge, reconcilable, generated),
	}
}

func computeHash(possibilities map[VarKey][]Assertion, wedge, reconcilable, generated bool) string {
	keys := make([]string, 0, len(possibilities))
	for v := range possibilities {
		keys = append(keys, string(v))
	}
	sort.Strings(keys)

	h := sha256.New()
	for _, k := range keys {
		list := possibilities[VarKey(k)]
		rendered := make([]string, len(list))
		for i, a := range list {
			rendered[i] = a.Render()
		}
		sort.Strings(rendered)
		fmt.Fprintf(h, "%s=%s;", k, strings.Join(rendered, "\x1f"))
	}
	fmt.Fprintf(h, "w=%t;r=%t;g=%t", wedge, reconcilable, generated)
	return hex.EncodeToString(h.Sum(nil))
}

// Hash returns the clause's content-addressed identity.
func (c *Clause) Hash() string { return c.hash }

// Equal reports whether c and other share the same content hash.
func (c *Clause) Equal(other *Clause) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.hash == other.hash
}

// IsWedge reports whether c is a wedge marker clause.
func (c *Clause) IsWedge() bool { return c.wedge }

// IsReconcilable reports whether c may participate in simplification,
// negation's resolution step, and truth extraction.
func (c *Clause) IsReconcilable() bool { return c.reconcilable }

// IsGenerated reports whether c was produced by a logical transformation
// rather than read directly from source.
func (c *Clause) IsGenerated() bool { return c.generated }

// IsRedefined reports whether v is in c's redefined-vars set.
func (c *Clause) IsRedefined(v VarKey) bool {
	_, ok := c.redefinedVars[v]
	return ok
}

// CreatingConditionalID returns the provenance id of the conditional that
// produced this clause.
func (c *Clause) CreatingConditionalID() int { return c.creatingConditionalID }

// CreatingObjectID returns the provenance id of the syntactic object that
// produced this clause.
func (c *Clause) CreatingObjectID() int { return c.creatingObjectID }

// VarKeys returns the clause's variable keys, in no particular order.
func (c *Clause) VarKeys() []VarKey {
	keys := make([]VarKey, 0, len(c.possibilities))
	for v := range c.possibilities {
		keys = append(keys, v)
	}
	return keys
}

// Len returns the number of variable keys in the clause.
func (c *Clause) Len() int { return len(c.possibilities) }

// PairCount returns the total number of (var, assertion) pairs across every
// key: the clause is a unit clause iff this is 1.
func (c *Clause) PairCount() int {
	n := 0
	for _, list := range c.possibilities {
		n += len(list)
	}
	return n
}

// Possibilities returns the assertion list for v, and whether v is present.
// The returned slice must not be mutated.
func (c *Clause) Possibilities(v VarKey) ([]Assertion, bool) {
	list, ok := c.possibilities[v]
	return list, ok
}

// AllPossibilities returns the clause's full possibilities mapping. Callers
// must not mutate the returned map or its slices.
func (c *Clause) AllPossibilities() map[VarKey][]Assertion { return c.possibilities }

// Impossibilities returns the clause's precomputed negations, and whether
// CalculateNegation has been run.
func (c *Clause) Impossibilities() (map[VarKey][]Assertion, bool) {
	return c.impossibilities, c.impossibilities != nil
}

// hasString reports whether assertion rendered as s is among v's
// possibilities.
func (c *Clause) hasString(v VarKey, s string) bool {
	set, ok := c.possibilityStrings[v]
	if !ok {
		return false
	}
	_, ok = set[s]
	return ok
}

// MakeUnique returns a clause whose per-var possibility lists are
// deduplicated by rendered form, preserving first-occurrence order. Returns
// the receiver unchanged (same pointer) if nothing needed deduplication.
func (c *Clause) MakeUnique() *Clause {
	changed := false
	newPoss := make(map[VarKey][]Assertion, len(c.possibilities))
	for v, list := range c.possibilities {
		seen := make(map[string]struct{}, len(list))
		dedup := make([]Assertion, 0, len(list))
		for _, a := range list {
			r := a.Render()
			if _, ok := seen[r]; ok {
				changed = true
				continue
			}
			seen[r] = struct{}{}
			dedup = append(dedup, a)
		}
		newPoss[v] = dedup
	}
	if !changed {
		return c
	}
	return buildClause(newPoss, c.creatingConditionalID, c.creatingObjectID, c.wedge, c.reconcilable, c.generated, c.redefinedVars)
}

// RemovePossibilities returns a clause without var's key, and true, unless
// that would leave an empty clause, in which case it returns nil, false.
func (c *Clause) RemovePossibilities(v VarKey) (*Clause, bool) {
	if _, ok := c.possibilities[v]; !ok {
		return c, true
	}
	if len(c.possibilities) == 1 {
		return nil, false
	}
	newPoss := make(map[VarKey][]Assertion, len(c.possibilities)-1)
	for k, list := range c.possibilities {
		if k == v {
			continue
		}
		newPoss[k] = list
	}
	return buildClause(newPoss, c.creatingConditionalID, c.creatingObjectID, c.wedge, c.reconcilable, c.generated, c.redefinedVars), true
}

// AddPossibilities returns a clause with extras unioned into var's list.
func (c *Clause) AddPossibilities(v VarKey, extras []Assertion) *Clause {
	newPoss := make(map[VarKey][]Assertion, len(c.possibilities)+1)
	for k, list := range c.possibilities {
		newPoss[k] = list
	}
	existing := newPoss[v]
	merged := make([]Assertion, 0, len(existing)+len(extras))
	merged = append(merged, existing...)
	merged = append(merged, extras...)
	newPoss[v] = merged
	return buildClause(newPoss, c.creatingConditionalID, c.creatingObjectID, c.wedge, c.reconcilable, c.generated, c.redefinedVars)
}

// Contains reports whether every (var, assertion) pair in other is present
// in c: in resolution terms, other implies c, so a clause set containing
// both c and other can drop c as redundant (subsumption).
func (c *Clause) Contains(other *Clause) bool {
	if c.wedge || other.wedge {
		return false
	}
	for v, strs := range other.possibilityStrings {
		selfStrs, ok := c.possibilityStrings[v]
		if !ok {
			return false
		}
		for s := range strs {
			if _, ok := selfStrs[s]; !ok {
				return false
			}
		}
	}
	return true
}

// CalculateNegation returns a clause identical to c but with impossibilities
// populated: the per-var list of negations of every possibility.
func (c *Clause) CalculateNegation() *Clause {
	imp := make(map[VarKey][]Assertion, len(c.possibilities))
	for v, list := range c.possibilities {
		negs := make([]Assertion, len(list))
		for i, a := range list {
			negs[i] = a.Negate()
		}
		imp[v] = negs
	}
	nc := *c
	nc.impossibilities = imp
	return &nc
}

// String renders the clause in "(x:a ∨ y:b)"-style notation for debugging.
func (c *Clause) String() string {
	if c.wedge {
		return "(wedge)"
	}
	keys := make([]string, 0, len(c.possibilities))
	for v := range c.possibilities {
		keys = append(keys, string(v))
	}
	sort.Strings(keys)
	var terms []string
	for _, k := range keys {
		for _, a := range c.possibilities[VarKey(k)] {
			terms = append(terms, k+":"+a.Render())
		}
	}
	if len(terms) == 0 {
		return "(true)"
	}
	return "(" + strings.Join(terms, " ∨ ") + ")"
}

// Formula is an ordered conjunction of clauses.
type Formula []*Clause

// String renders the formula in "(..) ∧ (..)"-style notation.
func (f Formula) String() string {
	if len(f) == 0 {
		return "(true)"
	}
	parts := make([]string, len(f))
	for i, c := range f {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ∧ ")
}
