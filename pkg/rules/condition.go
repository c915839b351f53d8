package rules

// Condition pairs a Matcher with the Result to emit when it matches.
// If the rule fails, the else-Condition is checked instead, which gives
// if / else-if / else chains of any length. Each Condition exclusively
// owns the rest of its chain.
type Condition struct {
	rule      Matcher
	then      Result
	echoInput bool
	otherwise *Condition
}

// NewCondition builds a Condition. otherwise may be nil; when set it is
// copied so the chain is never shared with the caller.
func NewCondition(rule Matcher, then Result, echoInput bool, otherwise *Condition) Condition {
	c := Condition{
		rule:      rule,
		then:      then,
		echoInput: echoInput,
	}
	if otherwise != nil {
		next := *otherwise
		c.otherwise = &next
	}
	return c
}

// Rule returns the condition's matcher
func (c Condition) Rule() Matcher { return c.rule }

// Then returns the result rendered on a match
func (c Condition) Then() Result { return c.then }

// EchoInput reports whether `{}` in the result is replaced by the line
func (c Condition) EchoInput() bool { return c.echoInput }

// Else returns the next condition in the chain, if any
func (c Condition) Else() (Condition, bool) {
	if c.otherwise == nil {
		return Condition{}, false
	}
	return *c.otherwise, true
}

// Depth returns the number of conditions in the chain starting at c
func (c Condition) Depth() int {
	depth := 1
	for next := c.otherwise; next != nil; next = next.otherwise {
		depth++
	}
	return depth
}

// Check evaluates the chain against line. At most one Result is rendered:
// the first condition whose rule matches wins. When nothing matches the
// output is empty.
func (c Condition) Check(line, path string) (string, error) {
	for cond := &c; cond != nil; cond = cond.otherwise {
		matched, err := cond.rule.Matches(line, path)
		if err != nil {
			return "", err
		}
		if matched {
			return cond.then.Render(line, cond.echoInput), nil
		}
	}
	return "", nil
}
