package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultSettings_Valid(t *testing.T) {
	assert.NoError(t, DefaultSettings().Validate())
}

func TestLoadSettings_Formats(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"toml", "demon.toml", "frame_rate = 30\ngame_view_style = \"center\"\nwatch = true\n"},
		{"yaml", "demon.yaml", "frame_rate: 30\ngame_view_style: center\nwatch: true\n"},
		{"yml", "demon.yml", "frame_rate: 30\ngame_view_style: center\nwatch: true\n"},
		{"json", "demon.json", `{"frame_rate": 30, "game_view_style": "center", "watch": true}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := LoadSettings(writeFile(t, tt.file, tt.content))
			require.NoError(t, err)
			assert.Equal(t, 30, s.FrameRate)
			assert.Equal(t, "center", s.GameViewStyle)
			assert.True(t, s.Watch)
			// Untouched fields keep their defaults.
			assert.Equal(t, 0.6, s.GameViewSize)
			assert.Equal(t, "create_instance_Editor_", s.EditorPrefix)
		})
	}
}

func TestLoadSettings_Errors(t *testing.T) {
	_, err := LoadSettings(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, ErrConfigFileUnavailable)

	_, err = LoadSettings(writeFile(t, "demon.ini", "x=1"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	s, err := LoadSettings(writeFile(t, "demon.toml", "frame_rate = ["))
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, DefaultSettings(), s)
}

func TestApplyEnvFrom(t *testing.T) {
	s := DefaultSettings()
	err := ApplyEnvFrom(&s, map[string]string{
		"DEMON_LOG_LEVEL":      "debug",
		"DEMON_FRAME_RATE":     "24",
		"DEMON_GAME_VIEW_SIZE": "0.5",
		"DEMON_WATCH":          "true",
		"LOG_LEVEL":            "error",
	})
	require.NoError(t, err)

	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, 24, s.FrameRate)
	assert.Equal(t, 0.5, s.GameViewSize)
	assert.True(t, s.Watch)
	assert.Equal(t, "export_functions.txt", s.SymbolFile)
}

func TestApplyEnvFrom_BadValue(t *testing.T) {
	s := DefaultSettings()
	assert.Error(t, ApplyEnvFrom(&s, map[string]string{"DEMON_FRAME_RATE": "fast"}))
}

func TestSettings_Validate(t *testing.T) {
	tests := []struct {
		name  string
		field string
		edit  func(*Settings)
	}{
		{"level", "log_level", func(s *Settings) { s.LogLevel = "loud" }},
		{"format", "log_format", func(s *Settings) { s.LogFormat = "xml" }},
		{"frame rate", "frame_rate", func(s *Settings) { s.FrameRate = 0 }},
		{"style", "game_view_style", func(s *Settings) { s.GameViewStyle = "middle" }},
		{"size zero", "game_view_size", func(s *Settings) { s.GameViewSize = 0 }},
		{"size big", "game_view_size", func(s *Settings) { s.GameViewSize = 1.5 }},
		{"animation", "view_animation_seconds", func(s *Settings) { s.ViewAnimationSeconds = -1 }},
		{"lua timeout", "lua_timeout_ms", func(s *Settings) { s.LuaTimeoutMillis = -1 }},
		{"prefix", "editor_prefix", func(s *Settings) { s.EditorPrefix = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.edit(&s)
			err := s.Validate()
			require.ErrorIs(t, err, ErrValidationFailed)

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}
