package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKV(t *testing.T) {
	input := strings.Join([]string{
		"shared_assets:  /opt/assets  ",
		"  project_dir : /home/me/game",
		"no separator here",
		": empty key",
		"url: http://localhost:8080",
		"",
		"project_dir: /override",
	}, "\n")

	got := ParseKV(strings.NewReader(input))

	assert.Equal(t, map[string]string{
		"shared_assets": "/opt/assets",
		"project_dir":   "/override",
		"url":           "http://localhost:8080",
	}, got)
}

func TestLoadKV_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.txt")

	kv, err := LoadKV(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfigFileUnavailable))
	assert.NotNil(t, kv)
	assert.Empty(t, kv)

	var cfe *ConfigFileUnavailableError
	require.ErrorAs(t, err, &cfe)
	assert.Equal(t, path, cfe.Path)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadKV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.txt")
	require.NoError(t, os.WriteFile(path, []byte("working_dir: /work\n"), 0o644))

	kv, err := LoadKV(path)
	require.NoError(t, err)
	assert.Equal(t, "/work", kv["working_dir"])
}

func TestLoadSymbols(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export_functions.txt")
	content := "  create_instance_Hud \n\n# comment\ncreate_instance_Player\r\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	symbols, err := LoadSymbols(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"create_instance_Hud", "create_instance_Player"}, symbols)

	_, err = LoadSymbols(filepath.Join(t.TempDir(), "none.txt"))
	assert.ErrorIs(t, err, ErrConfigFileUnavailable)
}
