package rules_test

import (
	"testing"

	"github.com/arthur-debert/logpeek/pkg/errors"
	"github.com/arthur-debert/logpeek/pkg/rules"
	"github.com/arthur-debert/logpeek/pkg/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_MultipleConditionsJoinOutputs(t *testing.T) {
	cfg := rules.NewConfig(
		rules.NewCondition(re("test"), rules.NewBasicResult("T"), false, nil),
		rules.NewCondition(re("Message"), rules.NewBasicResult("M"), false, nil),
	)

	tests := map[string]string{
		"test: Message":    "T\nM\n",
		"warning: Message": "M\n",
		"nothing":          "",
	}
	for line, want := range tests {
		out, err := cfg.Check(line, "")
		require.NoError(t, err)
		assert.Equal(t, want, out, line)
	}
}

func TestConfig_EmptyOutputsAddNothing(t *testing.T) {
	cfg := rules.NewConfig(
		rules.NewCondition(constant(true), rules.NewBasicResult(""), false, nil),
		rules.NewCondition(constant(true), rules.NewBasicResult("x"), false, nil),
		rules.NewCondition(constant(true), rules.NewBasicResult(""), false, nil),
	)

	out, err := cfg.Check("line", "")
	require.NoError(t, err)
	assert.Equal(t, "x\n", out)
}

func TestConfig_Empty(t *testing.T) {
	var cfg rules.Config
	assert.Equal(t, 0, cfg.Len())

	out, err := cfg.Check("line", "")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestConfig_ErrorDiscardsPartialOutput(t *testing.T) {
	cfg := rules.NewConfig(
		rules.NewCondition(constant(true), rules.NewBasicResult("first"), false, nil),
		rules.NewCondition(failing(), rules.NewBasicResult("never"), false, nil),
	)

	out, err := cfg.Check("line", "")
	require.Error(t, err)
	assert.Empty(t, out)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidPattern))
}

func TestConfig_EveryConditionIsEvaluated(t *testing.T) {
	// a later failing condition is reached even after an earlier match
	cfg := rules.NewConfig(
		rules.NewCondition(constant(true), rules.NewBasicResult("first"), false, nil),
		rules.NewCondition(constant(false), rules.NewBasicResult("skip"), false, nil),
		rules.NewCondition(failing(), rules.NewBasicResult("never"), false, nil),
	)

	_, err := cfg.Check("line", "")
	assert.Error(t, err)
}

func TestNewSingleRule(t *testing.T) {
	cfg := rules.NewSingleRule("test", false, "Found test in {}", true)
	require.Equal(t, 1, cfg.Len())

	out, err := cfg.Check("test: Message", "")
	require.NoError(t, err)
	assert.Equal(t, "Found test in test: Message\n", out)

	inverted := rules.NewSingleRule("test", true, "not a test: {}", true)
	out, err = inverted.Check("warning", "")
	require.NoError(t, err)
	assert.Equal(t, "not a test: warning\n", out)

	out, err = inverted.Check("test", "")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestConfig_ConditionsReturnsCopy(t *testing.T) {
	cfg := rules.NewSingleRule("test", false, "T", false)
	conds := cfg.Conditions()
	conds[0] = rules.NewCondition(constant(false), rules.NewBasicResult("changed"), false, nil)

	out, err := cfg.Check("test", "")
	require.NoError(t, err)
	assert.Equal(t, "T\n", out)
}

func TestConfig_TraceLogsUseComponentLogger(t *testing.T) {
	buf := testutil.CaptureLogs(t, zerolog.TraceLevel)

	_, err := rules.NewSingleRule("a", false, "hit", false).Check("a", "app.log")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"component":"rules.config"`)
	assert.Contains(t, buf.String(), `"message":"Condition matched"`)
	assert.Contains(t, buf.String(), `"path":"app.log"`)
}

func TestConfig_NoTraceLogsBelowTraceLevel(t *testing.T) {
	buf := testutil.CaptureLogs(t, zerolog.DebugLevel)

	_, err := rules.NewSingleRule("a", false, "hit", false).Check("a", "")
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}
