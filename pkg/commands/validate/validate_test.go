package validate_test

import (
	"strings"
	"testing"

	"github.com/arthur-debert/logpeek/pkg/commands/validate"
	"github.com/arthur-debert/logpeek/pkg/errors"
	"github.com/arthur-debert/logpeek/pkg/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_OK(t *testing.T) {
	cfg := rules.NewConfig(
		rules.NewCondition(
			rules.NewMatcher(rules.NewRegex("a"), []rules.Matcher{rules.Match(rules.AlwaysFalse())}, nil, false),
			rules.NewBasicResult("A"), false, nil,
		),
		rules.NewSingleRule("b", true, "B", false).Conditions()[0],
	)

	res, err := validate.Validate(validate.Options{Config: cfg})
	require.NoError(t, err)
	assert.Equal(t, "ok: 2 conditions, 2 predicates", res.Message())
	assert.Equal(t, 3, res.Stats.Matchers)
}

func TestValidate_ReportsLocation(t *testing.T) {
	otherwise := rules.NewCondition(
		rules.NewMatcher(rules.AlwaysTrue(), nil, []rules.Matcher{rules.Match(rules.NewRegex("[z-a]"))}, false),
		rules.NewBasicResult(""), false, nil,
	)
	cfg := rules.NewConfig(rules.NewCondition(rules.Match(rules.NewRegex("fine")), rules.NewBasicResult(""), false, &otherwise))

	res, err := validate.Validate(validate.Options{Config: cfg})
	require.Error(t, err)
	assert.Nil(t, res)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidPattern))
	assert.Equal(t, "conditions[0].else.if.and[0]", errors.GetErrorDetails(err)["location"])
	assert.Contains(t, err.Error(), "conditions[0].else.if.and[0]")
	assert.Equal(t, 1, strings.Count(err.Error(), "[INVALID_PATTERN]"), err.Error())
}
