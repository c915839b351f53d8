package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// TestEnvironment is a temporary directory tree wired into the XDG
// variables logpeek reads, so settings and log files never touch the
// real home directory
type TestEnvironment struct {
	// Root is the temporary base directory
	Root string
	// ConfigDir is where the user settings file is looked up
	ConfigDir string
	// StateDir receives the log file
	StateDir string

	t *testing.T
}

// NewTestEnvironment creates the directories and sets XDG_CONFIG_HOME,
// XDG_STATE_HOME and NO_COLOR for the duration of the test
func NewTestEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()

	root := t.TempDir()
	env := &TestEnvironment{
		Root:      root,
		ConfigDir: filepath.Join(root, "config", "logpeek"),
		StateDir:  filepath.Join(root, "state", "logpeek"),
		t:         t,
	}

	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(root, "state"))
	t.Setenv("NO_COLOR", "1")

	return env
}

// WriteFile writes content to name below Root and returns its path
func (e *TestEnvironment) WriteFile(name, content string) string {
	e.t.Helper()
	return WriteFile(e.t, e.Root, name, content)
}

// WriteSettings writes the user settings file config.<ext>
func (e *TestEnvironment) WriteSettings(ext, content string) string {
	e.t.Helper()
	return WriteFile(e.t, e.ConfigDir, "config."+ext, content)
}

// RemoveSettings deletes any user settings file
func (e *TestEnvironment) RemoveSettings() {
	e.t.Helper()
	for _, ext := range []string{"toml", "yaml", "yml"} {
		err := os.Remove(filepath.Join(e.ConfigDir, "config."+ext))
		if err != nil && !os.IsNotExist(err) {
			e.t.Fatalf("failed to remove settings: %v", err)
		}
	}
}

// WriteFile writes content to dir/name, creating dir, and returns the path
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}
