package rules

import (
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/arthur-debert/logpeek/pkg/errors"
	"github.com/google/cel-go/cel"
	ahocorasick "github.com/petar-dambovaliev/aho-corasick"
)

// Compiled forms are cached process wide, keyed by their source text.
// Trees stay immutable; failed compilations are never cached so the
// error surfaces on every evaluation that reaches the pattern.
var (
	regexCache   sync.Map // pattern -> *regexp.Regexp
	keywordCache sync.Map // key -> *ahocorasick.AhoCorasick
	exprCache    sync.Map // expr -> cel.Program
)

// exprCostLimit bounds the work a single expression evaluation may do
const exprCostLimit = 1000000

var exprEnv = sync.OnceValues(func() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("line", cel.StringType),
		cel.Variable("path", cel.StringType),
	)
})

func compileRegex(pattern string) (*regexp.Regexp, error) {
	if re, ok := regexCache.Load(pattern); ok {
		return re.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidPattern, "invalid regular expression %q", pattern).
			WithDetail("kind", KindRegex.String()).
			WithDetail("pattern", pattern)
	}
	actual, _ := regexCache.LoadOrStore(pattern, re)
	return actual.(*regexp.Regexp), nil
}

func keywordKey(words []string, caseInsensitive bool) string {
	return strconv.FormatBool(caseInsensitive) + "\x00" + strings.Join(words, "\x00")
}

func compileKeywords(words []string, caseInsensitive bool) (*ahocorasick.AhoCorasick, error) {
	if len(words) == 0 {
		return nil, errors.New(errors.ErrInvalidPattern, "keyword predicate needs at least one word").
			WithDetail("kind", KindKeywords.String())
	}
	for _, w := range words {
		if w == "" {
			return nil, errors.New(errors.ErrInvalidPattern, "keyword predicate contains an empty word").
				WithDetail("kind", KindKeywords.String())
		}
	}

	key := keywordKey(words, caseInsensitive)
	if ac, ok := keywordCache.Load(key); ok {
		return ac.(*ahocorasick.AhoCorasick), nil
	}

	builder := ahocorasick.NewAhoCorasickBuilder(ahocorasick.Opts{
		AsciiCaseInsensitive: caseInsensitive,
		MatchKind:            ahocorasick.LeftMostLongestMatch,
		DFA:                  true,
	})
	built := builder.Build(words)
	actual, _ := keywordCache.LoadOrStore(key, &built)
	return actual.(*ahocorasick.AhoCorasick), nil
}

func compileExpr(expr string) (cel.Program, error) {
	if prg, ok := exprCache.Load(expr); ok {
		return prg.(cel.Program), nil
	}

	env, err := exprEnv()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to create expression environment")
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, errors.Wrapf(issues.Err(), errors.ErrInvalidPattern, "invalid expression %q", expr).
			WithDetail("kind", KindExpr.String()).
			WithDetail("pattern", expr)
	}

	prg, err := env.Program(ast, cel.CostLimit(exprCostLimit))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidPattern, "invalid expression %q", expr).
			WithDetail("kind", KindExpr.String()).
			WithDetail("pattern", expr)
	}

	actual, _ := exprCache.LoadOrStore(expr, prg)
	return actual.(cel.Program), nil
}

func evalExpr(expr, line, path string) (bool, error) {
	prg, err := compileExpr(expr)
	if err != nil {
		return false, err
	}

	out, _, err := prg.Eval(map[string]any{
		"line": line,
		"path": path,
	})
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrMatchFailed, "expression %q failed", expr).
			WithDetail("kind", KindExpr.String()).
			WithDetail("pattern", expr)
	}

	matched, ok := out.Value().(bool)
	return ok && matched, nil
}
