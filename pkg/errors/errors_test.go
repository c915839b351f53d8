package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/arthur-debert/logpeek/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "invalid_pattern_error",
			code:    errors.ErrInvalidPattern,
			message: "bad regex",
			wantStr: "[INVALID_PATTERN] bad regex",
		},
		{
			name:    "invalid_input_error",
			code:    errors.ErrInvalidInput,
			message: "no rule given",
			wantStr: "[INVALID_INPUT] no rule given",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.NotNil(t, err.Details, "details should be initialized")
			assert.Equal(t, tt.wantStr, err.Error())
		})
	}
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrConfigParse, "unknown format %q", "ini")
	assert.Equal(t, `unknown format "ini"`, err.Message)
}

func TestWrap(t *testing.T) {
	baseErr := stderrors.New("base error")

	t.Run("wrap_non_nil_error", func(t *testing.T) {
		err := errors.Wrap(baseErr, errors.ErrInternal, "internal error")

		assert.Equal(t, errors.ErrInternal, err.Code)
		assert.Same(t, baseErr, err.Wrapped)
		assert.Equal(t, "[INTERNAL] internal error: base error", err.Error())
	})

	t.Run("wrap_nil_error_returns_nil", func(t *testing.T) {
		assert.Nil(t, errors.Wrap(nil, errors.ErrInternal, "internal error"))
		assert.Nil(t, errors.Wrapf(nil, errors.ErrInternal, "internal %s", "error"))
	})
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrInvalidPattern, "bad").
		WithDetail("pattern", "(").
		WithDetail("kind", "Re")

	assert.Equal(t, "(", err.Details["pattern"])
	assert.Equal(t, "Re", errors.GetErrorDetails(err)["kind"])
	assert.Nil(t, errors.GetErrorDetails(stderrors.New("plain")))
}

func TestIs(t *testing.T) {
	err1 := errors.New(errors.ErrFileAccess, "error 1")
	err2 := errors.New(errors.ErrFileAccess, "error 2")
	err3 := errors.New(errors.ErrInternal, "error 3")

	assert.True(t, err1.Is(err2), "same code should be equal")
	assert.False(t, err1.Is(err3), "different codes should not be equal")
	assert.True(t, stderrors.Is(err1, err2), "errors.Is should use the code")
}

func TestIsErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     errors.ErrorCode
		expected bool
	}{
		{"matching_code", errors.New(errors.ErrConfigParse, "x"), errors.ErrConfigParse, true},
		{"different_code", errors.New(errors.ErrConfigParse, "x"), errors.ErrInternal, false},
		{"wrapped_error", errors.Wrap(stderrors.New("base"), errors.ErrFileAccess, "denied"), errors.ErrFileAccess, true},
		{"fmt_wrapped", fmt.Errorf("outer: %w", errors.New(errors.ErrInvalidPattern, "x")), errors.ErrInvalidPattern, true},
		{"standard_error", stderrors.New("standard error"), errors.ErrInternal, false},
		{"nil_error", nil, errors.ErrInternal, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, errors.IsErrorCode(tt.err, tt.code))
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, errors.ErrMatchFailed, errors.GetErrorCode(errors.New(errors.ErrMatchFailed, "x")))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(stderrors.New("standard error")))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(nil))
}

func TestErrorChaining(t *testing.T) {
	rootCause := stderrors.New("root cause")
	fileErr := errors.Wrap(rootCause, errors.ErrFileAccess, "cannot read file")
	configErr := errors.Wrap(fileErr, errors.ErrConfigLoad, "failed to load config")

	assert.True(t, errors.IsErrorCode(configErr, errors.ErrConfigLoad))

	var lpErr *errors.LogpeekError
	if assert.True(t, stderrors.As(configErr.Unwrap(), &lpErr)) {
		assert.Equal(t, errors.ErrFileAccess, lpErr.Code)
	}
	assert.True(t, stderrors.Is(configErr, rootCause))
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, errors.ExitOK},
		{"invalid_pattern", errors.New(errors.ErrInvalidPattern, "x"), errors.ExitDataErr},
		{"match_failed", errors.New(errors.ErrMatchFailed, "x"), errors.ExitDataErr},
		{"config_parse", errors.New(errors.ErrConfigParse, "x"), errors.ExitConfig},
		{"config_load", errors.New(errors.ErrConfigLoad, "x"), errors.ExitConfig},
		{"file_access", errors.New(errors.ErrFileAccess, "x"), errors.ExitNoInput},
		{"file_write", errors.New(errors.ErrFileWrite, "x"), errors.ExitIOErr},
		{"invalid_input", errors.New(errors.ErrInvalidInput, "x"), errors.ExitUsage},
		{"internal", errors.New(errors.ErrInternal, "x"), errors.ExitSoftware},
		{"plain", stderrors.New("boom"), errors.ExitSoftware},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errors.ExitCode(tt.err))
		})
	}
}

func TestExitCodesAreDistinctPerKind(t *testing.T) {
	// pattern, document and resource failures must stay distinguishable
	codes := map[int]errors.ErrorCode{}
	for _, c := range []errors.ErrorCode{errors.ErrInvalidPattern, errors.ErrConfigParse, errors.ErrFileAccess, errors.ErrInvalidInput} {
		status := errors.ExitCode(errors.New(c, "x"))
		prev, dup := codes[status]
		assert.False(t, dup, "%s shares exit status %d with %s", c, status, prev)
		codes[status] = c
	}
}

func TestLocate(t *testing.T) {
	cause := stderrors.New("missing closing )")
	base := errors.Wrap(cause, errors.ErrInvalidPattern, "invalid regular expression").
		WithDetail("pattern", "(")

	located := errors.Locate(base, "line 3", "line", 3)
	assert.Equal(t, errors.ErrInvalidPattern, located.Code)
	assert.Equal(t, "[INVALID_PATTERN] line 3: invalid regular expression: missing closing )", located.Error())
	assert.Equal(t, 3, located.Details["line"])
	assert.Equal(t, "(", located.Details["pattern"])
	assert.True(t, stderrors.Is(located, cause))

	// the original is left untouched
	assert.NotContains(t, base.Details, "line")
	assert.Equal(t, "invalid regular expression", base.Message)

	plain := errors.Locate(cause, "line 1", "line", 1)
	assert.Equal(t, errors.ErrUnknown, plain.Code)
	assert.Equal(t, 1, plain.Details["line"])

	assert.Nil(t, errors.Locate(nil, "line 1", "line", 1))
}
