package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func runInitIn(t *testing.T, dir string) error {
	t.Helper()

	originalWD, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(originalWD)) })

	cmd := newRootCmd()
	cmd.AddCommand(newInitCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"init"})

	return cmd.Execute()
}

func TestInitCmd_WritesDarkskinSettings(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, runInitIn(t, dir))

	contents, err := os.ReadFile(filepath.Join(dir, configFileName))
	require.NoError(t, err)

	var settings map[string]any
	require.NoError(t, yaml.Unmarshal(contents, &settings))

	section := func(name string) map[string]any {
		t.Helper()
		require.Contains(t, settings, name)
		out, ok := settings[name].(map[string]any)
		require.True(t, ok, "%s is not a mapping", name)

		return out
	}

	assert.Contains(t, section("image"), "max_size")
	assert.Contains(t, section("search"), "file_name")
	assert.Contains(t, section("search"), "parallel")
	assert.Contains(t, section("patch"), "backup")
	assert.Contains(t, settings, configVersionKey)
}

func TestInitCmd_KeepsExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, configFileName)
	require.NoError(t, os.WriteFile(path, []byte("ui:\n  plain: true\n"), 0o644))

	require.Error(t, runInitIn(t, dir))

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "ui:\n  plain: true\n", string(contents))
}
