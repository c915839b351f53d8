package logpeek_test

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/logpeek/cmd/logpeek"
	"github.com/arthur-debert/logpeek/pkg/errors"
	"github.com/arthur-debert/logpeek/pkg/testutil"
	"github.com/stretchr/testify/assert"
)

type result struct {
	code   int
	stdout string
	stderr string
}

func run(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	var out, errOut bytes.Buffer
	code := logpeek.Execute(context.Background(), args, strings.NewReader(stdin), &out, &errOut)
	return result{code: code, stdout: out.String(), stderr: errOut.String()}
}

var twoRules = testutil.ConfigJSON(
	testutil.RuleJSON("test", false, "T", false),
	testutil.RuleJSON("Message", false, "M", false),
)

func TestCheck_PrimitiveFlags(t *testing.T) {
	testutil.NewTestEnvironment(t)

	r := run(t, "test: Message\nwarning: Message\n", "-r", "test", "-o", "Found test in {}", "-p")
	assert.Equal(t, errors.ExitOK, r.code, r.stderr)
	assert.Equal(t, "Found test in test: Message\n\n", r.stdout)
}

func TestCheck_NotFlag(t *testing.T) {
	testutil.NewTestEnvironment(t)

	r := run(t, "test: Message\nwarning: Message\n", "-n", "-r", "test", "-o", "{}", "-p")
	assert.Equal(t, errors.ExitOK, r.code)
	assert.Equal(t, "warning: Message\n\n", r.stdout)
}

func TestCheck_NoEchoKeepsPlaceholder(t *testing.T) {
	testutil.NewTestEnvironment(t)

	r := run(t, "test\n", "-r", "test", "-o", "Found test in {}")
	assert.Equal(t, "Found test in {}\n\n", r.stdout)
}

func TestCheck_InputFile(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	input := env.WriteFile("app.log", "one\ntwo error\nthree\n")

	r := run(t, "ignored stdin error\n", input, "-r", "error", "-o", "{}", "-p")
	assert.Equal(t, errors.ExitOK, r.code, r.stderr)
	assert.Equal(t, "two error\n\n", r.stdout)
}

func TestCheck_PathIsPassedToRules(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	input := env.WriteFile("app.log", "line\n")
	inline := `{"conditions":[{"if_match":{"kind":{"Expr":{"expr":"path.endsWith('app.log')"}}},"then":{"Basic":{"message":"{}"}},"output_input":true}]}`

	r := run(t, "", input, "-j", inline)
	assert.Equal(t, errors.ExitOK, r.code, r.stderr)
	assert.Equal(t, "line\n\n", r.stdout)

	r = run(t, "line\n", "-j", inline)
	assert.Equal(t, errors.ExitOK, r.code, r.stderr)
	assert.Empty(t, r.stdout)
}

func TestCheck_RuleSourcePrecedence(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	file := env.WriteFile("rules.json", twoRules)

	t.Run("config_file_wins", func(t *testing.T) {
		r := run(t, "test: Message\nwarning: Message\n", "-c", file, "-j", `{"conditions":[]}`, "-r", "x", "-o", "flags")
		assert.Equal(t, errors.ExitOK, r.code, r.stderr)
		assert.Equal(t, "T\nM\n\nM\n\n", r.stdout)
	})

	t.Run("inline_json_beats_flags", func(t *testing.T) {
		r := run(t, "test\n", "-j", twoRules, "-r", "test", "-o", "flags")
		assert.Equal(t, "T\n\n", r.stdout)
	})

	t.Run("settings_default_file", func(t *testing.T) {
		env.WriteSettings("toml", "[rules]\ndefault_file = \""+filepath.ToSlash(file)+"\"\n")
		defer env.RemoveSettings()

		r := run(t, "warning: Message\n")
		assert.Equal(t, errors.ExitOK, r.code, r.stderr)
		assert.Equal(t, "M\n\n", r.stdout)

		// any rule flag bypasses the default file
		r = run(t, "warning: Message\n", "-r", "warning", "-o", "W")
		assert.Equal(t, "W\n\n", r.stdout)
	})
}

func TestCheck_YAMLConfigFile(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	file := env.WriteFile("rules.yaml", `conditions:
  - if_match:
      kind:
        Keywords:
          words: [timeout, refused]
          case_insensitive: true
    then:
      Basic:
        message: "network: {}"
    output_input: true
`)

	r := run(t, "Connection REFUSED\nok\n", "-c", file)
	assert.Equal(t, errors.ExitOK, r.code, r.stderr)
	assert.Equal(t, "network: Connection REFUSED\n\n", r.stdout)
}

func TestCheck_PrintJSON(t *testing.T) {
	testutil.NewTestEnvironment(t)

	r := run(t, "", "-r", "test", "-o", "out", "--print-json")
	assert.Equal(t, errors.ExitOK, r.code, r.stderr)
	assert.JSONEq(t, `{"conditions":[{"if_match":{"kind":{"Re":{"expr":"test"}},"or":[],"and":[],"not":false},
		"then":{"Basic":{"message":"out"}},"output_input":false,"else_then":null}]}`, r.stdout)
	assert.True(t, strings.HasSuffix(r.stdout, "}\n"))
}

func TestCheck_Stats(t *testing.T) {
	testutil.NewTestEnvironment(t)

	r := run(t, "a\nb\na\n", "-r", "a", "-o", "hit", "--stats")
	assert.Equal(t, errors.ExitOK, r.code)
	assert.Contains(t, r.stderr, "3 lines read, 2 matched in")
}

func TestCheck_ExitCodes(t *testing.T) {
	env := testutil.NewTestEnvironment(t)

	tests := []struct {
		name  string
		stdin string
		args  []string
		code  int
		err   string
	}{
		{"invalid_pattern", "line\n", []string{"-r", "(", "-o", "x"}, errors.ExitDataErr, "[INVALID_PATTERN]"},
		{"malformed_json", "", []string{"-j", `{"conditions":[{}]}`}, errors.ExitConfig, "[CONFIG_PARSE]"},
		{"missing_config_file", "", []string{"-c", filepath.Join(env.Root, "missing.json")}, errors.ExitNoInput, "[FILE_ACCESS]"},
		{"missing_input_file", "", []string{filepath.Join(env.Root, "missing.log"), "-r", "x"}, errors.ExitNoInput, "[FILE_ACCESS]"},
		{"too_many_args", "", []string{"a.log", "b.log"}, errors.ExitUsage, "[INVALID_INPUT]"},
		{"unknown_flag", "", []string{"--bogus"}, errors.ExitUsage, "[INVALID_INPUT]"},
		{"bad_color", "", []string{"--color", "rainbow"}, errors.ExitConfig, "[CONFIG_LOAD]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := run(t, tt.stdin, tt.args...)
			assert.Equal(t, tt.code, r.code, r.stderr)
			assert.Contains(t, r.stderr, "Error: "+tt.err)
		})
	}
}

func TestCheck_ErrorKeepsEarlierOutput(t *testing.T) {
	testutil.NewTestEnvironment(t)
	inline := `{"conditions":[{"if_match":{"kind":{"Re":{"expr":"ok"}}},"then":{"Basic":{"message":"{}"}},"output_input":true,
		"else_then":{"if_match":{"kind":{"Re":{"expr":"("}}},"then":{"Basic":{"message":""}},"output_input":false}}]}`

	r := run(t, "ok 1\nbad\nok 2\n", "-j", inline)
	assert.Equal(t, errors.ExitDataErr, r.code)
	assert.Equal(t, "ok 1\n\n", r.stdout)
}

func TestCheck_StrictFailsBeforeOutput(t *testing.T) {
	testutil.NewTestEnvironment(t)
	inline := `{"conditions":[{"if_match":{"kind":"AlwaysTrue"},"then":{"Basic":{"message":"x"}},"output_input":false,
		"else_then":{"if_match":{"kind":{"Re":{"expr":"("}}},"then":{"Basic":{"message":""}},"output_input":false}}]}`

	r := run(t, "line\n", "-j", inline)
	assert.Equal(t, errors.ExitOK, r.code)
	assert.Equal(t, "x\n\n", r.stdout)

	r = run(t, "line\n", "-j", inline, "--strict")
	assert.Equal(t, errors.ExitDataErr, r.code)
	assert.Empty(t, r.stdout)
}

func TestValidateCmd(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	file := env.WriteFile("rules.json", twoRules)

	r := run(t, "", "validate", "-c", file)
	assert.Equal(t, errors.ExitOK, r.code, r.stderr)
	assert.Equal(t, "ok: 2 conditions, 2 predicates\n", r.stdout)

	inline := `{"conditions":[{"if_match":{"kind":"AlwaysTrue","or":[{"kind":{"Re":{"expr":"["}}}]},"then":{"Basic":{"message":""}},"output_input":false}]}`
	r = run(t, "", "validate", "-j", inline)
	assert.Equal(t, errors.ExitDataErr, r.code)
	assert.Contains(t, r.stderr, "conditions[0].if.or[0]")
}

func TestShowCmd(t *testing.T) {
	testutil.NewTestEnvironment(t)

	t.Run("yaml", func(t *testing.T) {
		r := run(t, "", "show", "-r", "^ERROR", "-o", "error: {}", "-p", "--format", "yaml")
		assert.Equal(t, errors.ExitOK, r.code, r.stderr)
		assert.Contains(t, r.stdout, "expr: ^ERROR")
		assert.Contains(t, r.stdout, "output_input: true")
	})

	t.Run("default_json", func(t *testing.T) {
		r := run(t, "", "show", "-r", "x")
		assert.Equal(t, errors.ExitOK, r.code, r.stderr)
		assert.Contains(t, r.stdout, `"Re":{"expr":"x"}`)
	})

	t.Run("tree", func(t *testing.T) {
		r := run(t, "", "show", "-n", "-r", "x", "--format", "tree")
		assert.Equal(t, errors.ExitOK, r.code, r.stderr)
		assert.Contains(t, r.stdout, `if NOT Re "x"`)
	})

	t.Run("bad_format", func(t *testing.T) {
		r := run(t, "", "show", "--format", "xml")
		assert.Equal(t, errors.ExitUsage, r.code)
	})
}

func TestVersionCmd(t *testing.T) {
	testutil.NewTestEnvironment(t)

	r := run(t, "", "version")
	assert.Equal(t, errors.ExitOK, r.code)
	assert.True(t, strings.HasPrefix(r.stdout, "logpeek dev"))
}

func TestCompletionCmd(t *testing.T) {
	testutil.NewTestEnvironment(t)

	r := run(t, "", "completion", "bash")
	assert.Equal(t, errors.ExitOK, r.code, r.stderr)
	assert.Contains(t, r.stdout, "logpeek")
}

func TestHelpTopics(t *testing.T) {
	testutil.NewTestEnvironment(t)

	r := run(t, "", "help", "topics")
	assert.Equal(t, errors.ExitOK, r.code, r.stderr)
	for _, topic := range []string{"rules", "templates", "exit-codes"} {
		assert.Contains(t, r.stdout, "  "+topic+"\n")
	}

	r = run(t, "", "help", "exit-codes")
	assert.Equal(t, errors.ExitOK, r.code, r.stderr)
	assert.Contains(t, r.stdout, "Exit codes")
}
