package rules

import (
	"fmt"

	"github.com/arthur-debert/logpeek/pkg/errors"
)

// WalkFunc is called for every Matcher node. loc names the node's position,
// e.g. "conditions[1].else.if.or[0]".
type WalkFunc func(loc string, m Matcher) error

// Walk visits every Matcher in cfg depth first, in evaluation order,
// including else-branches no line may ever reach. It stops at the first
// error returned by fn.
func (c Config) Walk(fn WalkFunc) error {
	for i, cond := range c.conditions {
		if err := cond.walk(fmt.Sprintf("conditions[%d]", i), fn); err != nil {
			return err
		}
	}
	return nil
}

func (c Condition) walk(loc string, fn WalkFunc) error {
	for cond := &c; cond != nil; cond = cond.otherwise {
		if err := cond.rule.walk(loc+".if", fn); err != nil {
			return err
		}
		loc += ".else"
	}
	return nil
}

func (m Matcher) walk(loc string, fn WalkFunc) error {
	if err := fn(loc, m); err != nil {
		return err
	}
	for i, branch := range m.or {
		if err := branch.walk(fmt.Sprintf("%s.or[%d]", loc, i), fn); err != nil {
			return err
		}
	}
	for i, branch := range m.and {
		if err := branch.walk(fmt.Sprintf("%s.and[%d]", loc, i), fn); err != nil {
			return err
		}
	}
	return nil
}

// Validate compiles every predicate in cfg up front. Evaluation compiles
// lazily, so without this a bad pattern in a rarely taken else-branch only
// fails on the first line that reaches it. The returned error carries the
// node location in its "location" detail.
func Validate(cfg Config) error {
	return cfg.Walk(func(loc string, m Matcher) error {
		if err := m.predicate.Compile(); err != nil {
			return errors.Locate(err, loc, "location", loc)
		}
		return nil
	})
}

// Stats summarizes the shape of a Config
type Stats struct {
	Conditions int // top-level conditions
	Branches   int // conditions including else-branches
	Matchers   int // matcher nodes
	Patterns   int // predicates that need compiling
}

// Summarize counts the nodes of cfg
func Summarize(cfg Config) Stats {
	s := Stats{Conditions: len(cfg.conditions)}
	for _, cond := range cfg.conditions {
		s.Branches += cond.Depth()
	}
	_ = cfg.Walk(func(_ string, m Matcher) error {
		s.Matchers++
		switch m.predicate.kind {
		case KindRegex, KindKeywords, KindExpr:
			s.Patterns++
		}
		return nil
	})
	return s
}
