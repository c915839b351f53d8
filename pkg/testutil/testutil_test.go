package testutil_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/logpeek/pkg/testutil"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTestEnvironment(t *testing.T) {
	env := testutil.NewTestEnvironment(t)

	assert.Equal(t, filepath.Dir(env.ConfigDir), os.Getenv("XDG_CONFIG_HOME"))
	assert.Equal(t, filepath.Dir(env.StateDir), os.Getenv("XDG_STATE_HOME"))
	assert.Equal(t, "1", os.Getenv("NO_COLOR"))

	path := env.WriteSettings("toml", "[rules]\nstrict = true\n")
	assert.Equal(t, filepath.Join(env.ConfigDir, "config.toml"), path)

	env.RemoveSettings()
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestWriteFile(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	path := env.WriteFile("nested/dir/in.log", "hello\n")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(data))
}

func TestConfigJSON(t *testing.T) {
	doc := testutil.ConfigJSON(
		testutil.RuleJSON(`"quoted"`, true, "out {}", false),
		testutil.RuleJSON("b", false, "", true),
	)

	var parsed struct {
		Conditions []map[string]any `json:"conditions"`
	}
	require.NoError(t, json.Unmarshal([]byte(doc), &parsed))
	require.Len(t, parsed.Conditions, 2)
	assert.Equal(t, true, parsed.Conditions[0]["if_match"].(map[string]any)["not"])
	assert.Nil(t, parsed.Conditions[1]["else_then"])
}

func TestCaptureLogs(t *testing.T) {
	buf := testutil.CaptureLogs(t, zerolog.DebugLevel)
	log.Debug().Msg("captured")
	log.Trace().Msg("dropped")

	assert.Contains(t, buf.String(), `"message":"captured"`)
	assert.NotContains(t, buf.String(), "dropped")
}
