package rules

// Matcher is a node of the boolean combinator tree. It owns its children;
// trees are built once and never modified.
type Matcher struct {
	predicate Predicate
	or        []Matcher
	and       []Matcher
	not       bool
}

// NewMatcher builds a Matcher node. The branch slices are copied.
func NewMatcher(predicate Predicate, or, and []Matcher, not bool) Matcher {
	return Matcher{
		predicate: predicate,
		or:        append([]Matcher(nil), or...),
		and:       append([]Matcher(nil), and...),
		not:       not,
	}
}

// Match is shorthand for a Matcher with no branches
func Match(predicate Predicate) Matcher {
	return Matcher{predicate: predicate}
}

// Predicate returns the node's own predicate
func (m Matcher) Predicate() Predicate { return m.predicate }

// Or returns a copy of the or-branches
func (m Matcher) Or() []Matcher { return append([]Matcher(nil), m.or...) }

// And returns a copy of the and-branches
func (m Matcher) And() []Matcher { return append([]Matcher(nil), m.and...) }

// Negated reports whether the predicate result is inverted
func (m Matcher) Negated() bool { return m.not }

// Matches evaluates the tree against line.
//
// The predicate result is XORed with the not flag. Or-branches are then
// folded in until the result turns true, and-branches after that until it
// turns false. Branches past the short-circuit point are not evaluated, so
// their errors never surface. Any other error aborts immediately.
func (m Matcher) Matches(line, path string) (bool, error) {
	result, err := m.predicate.Matches(line, path)
	if err != nil {
		return false, err
	}
	result = result != m.not

	for _, branch := range m.or {
		if result {
			break
		}
		matched, err := branch.Matches(line, path)
		if err != nil {
			return false, err
		}
		result = result || matched
	}

	for _, branch := range m.and {
		if !result {
			break
		}
		matched, err := branch.Matches(line, path)
		if err != nil {
			return false, err
		}
		result = result && matched
	}

	return result, nil
}
