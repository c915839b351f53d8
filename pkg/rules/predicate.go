package rules

import (
	"strconv"
	"strings"

	"github.com/arthur-debert/logpeek/pkg/errors"
)

// PredicateKind tags the variant held by a Predicate
type PredicateKind int

// The zero value is AlwaysFalse so an empty Predicate never matches.
const (
	KindAlwaysFalse PredicateKind = iota
	KindAlwaysTrue
	KindRegex
	KindKeywords
	KindExpr
)

// String returns the tag used for the kind in rule documents
func (k PredicateKind) String() string {
	switch k {
	case KindAlwaysFalse:
		return "AlwaysFalse"
	case KindAlwaysTrue:
		return "AlwaysTrue"
	case KindRegex:
		return "Re"
	case KindKeywords:
		return "Keywords"
	case KindExpr:
		return "Expr"
	default:
		return "Unknown"
	}
}

// Predicate is the leaf of a Matcher tree. It decides whether a single line
// matches. Which fields are meaningful depends on Kind.
type Predicate struct {
	kind            PredicateKind
	pattern         string   // Regex and Expr
	words           []string // Keywords
	caseInsensitive bool     // Keywords
}

// NewRegex returns a predicate matching lines that contain a match of pattern
// anywhere. The pattern is not compiled until it is first evaluated.
func NewRegex(pattern string) Predicate {
	return Predicate{kind: KindRegex, pattern: pattern}
}

// AlwaysTrue returns a predicate that matches every line
func AlwaysTrue() Predicate {
	return Predicate{kind: KindAlwaysTrue}
}

// AlwaysFalse returns a predicate that matches no line
func AlwaysFalse() Predicate {
	return Predicate{kind: KindAlwaysFalse}
}

// NewKeywords returns a predicate matching lines containing any of words
func NewKeywords(words []string, caseInsensitive bool) Predicate {
	return Predicate{
		kind:            KindKeywords,
		words:           append([]string(nil), words...),
		caseInsensitive: caseInsensitive,
	}
}

// NewExpr returns a predicate backed by a CEL expression over the string
// variables `line` and `path`. Non-boolean results count as no match.
func NewExpr(expr string) Predicate {
	return Predicate{kind: KindExpr, pattern: expr}
}

// Kind returns the variant tag
func (p Predicate) Kind() PredicateKind { return p.kind }

// Pattern returns the regex or expression source, empty for other kinds
func (p Predicate) Pattern() string { return p.pattern }

// Words returns a copy of the keyword list
func (p Predicate) Words() []string { return append([]string(nil), p.words...) }

// CaseInsensitive reports whether keyword matching ignores ASCII case
func (p Predicate) CaseInsensitive() bool { return p.caseInsensitive }

// Matches reports whether line matches. path identifies the source of the
// line and is empty when unknown; only expression predicates look at it.
func (p Predicate) Matches(line, path string) (bool, error) {
	switch p.kind {
	case KindAlwaysTrue:
		return true, nil
	case KindAlwaysFalse:
		return false, nil
	case KindRegex:
		re, err := compileRegex(p.pattern)
		if err != nil {
			return false, err
		}
		return re.MatchString(line), nil
	case KindKeywords:
		ac, err := compileKeywords(p.words, p.caseInsensitive)
		if err != nil {
			return false, err
		}
		return len(ac.FindAll(line)) > 0, nil
	case KindExpr:
		return evalExpr(p.pattern, line, path)
	default:
		return false, errors.Newf(errors.ErrInternal, "unknown predicate kind %d", int(p.kind))
	}
}

// Compile builds whatever the predicate needs to evaluate, reporting
// pattern errors without evaluating a line.
func (p Predicate) Compile() error {
	var err error
	switch p.kind {
	case KindRegex:
		_, err = compileRegex(p.pattern)
	case KindKeywords:
		_, err = compileKeywords(p.words, p.caseInsensitive)
	case KindExpr:
		_, err = compileExpr(p.pattern)
	case KindAlwaysTrue, KindAlwaysFalse:
	default:
		err = errors.Newf(errors.ErrInternal, "unknown predicate kind %d", int(p.kind))
	}
	return err
}

// Describe returns a short human readable form, used in trees and logs
func (p Predicate) Describe() string {
	switch p.kind {
	case KindRegex, KindExpr:
		return p.kind.String() + " " + strconv.Quote(p.pattern)
	case KindKeywords:
		quoted := make([]string, len(p.words))
		for i, w := range p.words {
			quoted[i] = strconv.Quote(w)
		}
		s := p.kind.String() + " [" + strings.Join(quoted, ", ") + "]"
		if p.caseInsensitive {
			s += " (ignore case)"
		}
		return s
	default:
		return p.kind.String()
	}
}
