package rules

import (
	"strings"

	"github.com/arthur-debert/logpeek/pkg/logging"
	"github.com/rs/zerolog"
)

// Config is an ordered set of Conditions. Order matters: outputs are
// concatenated in declaration order.
type Config struct {
	conditions []Condition
}

// NewConfig builds a Config from conditions, copying the slice
func NewConfig(conditions ...Condition) Config {
	return Config{conditions: append([]Condition(nil), conditions...)}
}

// NewSingleRule builds the common one-rule Config: a single regex, an
// inversion flag, an output template and the input echo flag. There are
// no branches and no else-chain.
func NewSingleRule(pattern string, not bool, output string, echoInput bool) Config {
	return NewConfig(NewCondition(
		NewMatcher(NewRegex(pattern), nil, nil, not),
		NewBasicResult(output),
		echoInput,
		nil,
	))
}

// Conditions returns a copy of the conditions in declaration order
func (c Config) Conditions() []Condition {
	return append([]Condition(nil), c.conditions...)
}

// Len returns the number of top-level conditions
func (c Config) Len() int { return len(c.conditions) }

// Check evaluates every condition against line and joins the non-empty
// outputs, each followed by a newline. Conditions with empty output add
// nothing. The first error aborts the whole line and no partial output is
// returned.
func (c Config) Check(line, path string) (string, error) {
	var out strings.Builder
	for i, cond := range c.conditions {
		res, err := cond.Check(line, path)
		if err != nil {
			return "", err
		}
		if res == "" {
			continue
		}
		if zerolog.GlobalLevel() <= zerolog.TraceLevel {
			logger := logging.GetLogger("rules.config")
			logger.Trace().
				Int("condition", i).
				Str("path", path).
				Msg("Condition matched")
		}
		out.WriteString(res)
		out.WriteByte('\n')
	}
	return out.String(), nil
}
