package cnf

// VarKey identifies a variable an assertion is made about. Keys beginning
// with '*' denote unknown/synthetic variables introduced by the analyzer
// rather than named program variables; the simplifier treats clauses built
// entirely out of such keys as too unstructured to be worth resolving.
type VarKey string

// unknown reports whether k names a synthetic, analyzer-internal variable.
func (k VarKey) unknown() bool {
	return len(k) > 0 && k[0] == '*'
}

// Assertion is an atomic predicate about a single variable, e.g. "x is a
// string" or "y is not nil". The engine treats assertions as opaque: it
// never inspects anything but their rendered form and the operations below.
//
// Implementations are expected to be comparable by Render: two assertions
// with identical rendered forms are considered the same literal.
type Assertion interface {
	// Render returns the canonical textual form of the assertion, used for
	// equality, hashing, and resolution.
	Render() string

	// Negate returns the logical complement of the assertion.
	Negate() Assertion

	// IsNegationOf reports whether the receiver is the logical complement
	// of other.
	IsNegationOf(other Assertion) bool

	// IsNegation reports whether this assertion is itself a negative form
	// (e.g. "is not a string" rather than "is a string").
	IsNegation() bool

	// IsFalsy reports whether this assertion is the "falsy" marker variant
	// consulted by the truth extractor when deciding whether a disjunction
	// of possibilities amounts to a single positive fact.
	IsFalsy() bool
}

// stringAssertion is a minimal reference Assertion keyed by a plain name.
// It is the implementation used by exprparse and by this package's own
// tests; a real embedding analyzer supplies its own Assertion backed by
// its type system.
type stringAssertion struct {
	name     string
	negative bool
	falsy    bool
}

// NewAssertion returns the positive assertion "name".
func NewAssertion(name string) Assertion {
	return stringAssertion{name: name}
}

// NewNegatedAssertion returns the negative assertion "not name".
func NewNegatedAssertion(name string) Assertion {
	return stringAssertion{name: name, negative: true}
}

// NewFalsyAssertion returns the falsy-marker assertion for name.
func NewFalsyAssertion(name string) Assertion {
	return stringAssertion{name: name, falsy: true}
}

func (a stringAssertion) Render() string {
	switch {
	case a.falsy:
		return "falsy:" + a.name
	case a.negative:
		return "!" + a.name
	default:
		return a.name
	}
}

func (a stringAssertion) Negate() Assertion {
	if a.falsy {
		return stringAssertion{name: a.name, negative: false}
	}
	return stringAssertion{name: a.name, negative: !a.negative}
}

func (a stringAssertion) IsNegationOf(other Assertion) bool {
	if other == nil {
		return false
	}
	return a.Negate().Render() == other.Render()
}

func (a stringAssertion) IsNegation() bool { return a.negative }

func (a stringAssertion) IsFalsy() bool { return a.falsy }
