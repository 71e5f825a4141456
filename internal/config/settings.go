package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "DEMON_"

// Settings configures the shell.
type Settings struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level" yaml:"log_level" json:"log_level" env:"LOG_LEVEL"`
	// LogFormat is console or json.
	LogFormat string `toml:"log_format" yaml:"log_format" json:"log_format" env:"LOG_FORMAT"`

	// ConfigFile is the key/value file.
	ConfigFile string `toml:"config_file" yaml:"config_file" json:"config_file" env:"CONFIG_FILE"`
	// SymbolFile lists the factory symbols, one per line.
	SymbolFile string `toml:"symbol_file" yaml:"symbol_file" json:"symbol_file" env:"SYMBOL_FILE"`
	// GameModule is loaded when game mode is entered.
	GameModule string `toml:"game_module" yaml:"game_module" json:"game_module" env:"GAME_MODULE"`
	// EditorModule is loaded at startup.
	EditorModule string `toml:"editor_module" yaml:"editor_module" json:"editor_module" env:"EDITOR_MODULE"`
	// EditorPrefix selects the editor symbols from the symbol list.
	EditorPrefix string `toml:"editor_prefix" yaml:"editor_prefix" json:"editor_prefix" env:"EDITOR_PREFIX"`

	// FrameRate is the target frames per second of interactive drivers.
	FrameRate int `toml:"frame_rate" yaml:"frame_rate" json:"frame_rate" env:"FRAME_RATE"`

	// GameViewStyle is center, bottom_left, bottom_right, top_left or top_right.
	GameViewStyle string `toml:"game_view_style" yaml:"game_view_style" json:"game_view_style" env:"GAME_VIEW_STYLE"`
	// GameViewSize is the initial and minimum view size, in (0, 1].
	GameViewSize float64 `toml:"game_view_size" yaml:"game_view_size" json:"game_view_size" env:"GAME_VIEW_SIZE"`
	// ViewAnimationSeconds is the duration of view size tweens. Zero snaps.
	ViewAnimationSeconds float64 `toml:"view_animation_seconds" yaml:"view_animation_seconds" json:"view_animation_seconds" env:"VIEW_ANIMATION_SECONDS"`

	// SuppressPointerOverUI drops pointer events from triggers while the
	// pointer is over the UI panel.
	SuppressPointerOverUI bool `toml:"suppress_pointer_over_ui" yaml:"suppress_pointer_over_ui" json:"suppress_pointer_over_ui" env:"SUPPRESS_POINTER_OVER_UI"`

	// LuaTimeoutMillis bounds each call into a Lua module.
	LuaTimeoutMillis int `toml:"lua_timeout_ms" yaml:"lua_timeout_ms" json:"lua_timeout_ms" env:"LUA_TIMEOUT_MS"`

	// MetricsAddr serves Prometheus metrics when set.
	MetricsAddr string `toml:"metrics_addr" yaml:"metrics_addr" json:"metrics_addr" env:"METRICS_ADDR"`
	// Watch reloads scripts when module files or the symbol list change.
	Watch bool `toml:"watch" yaml:"watch" json:"watch" env:"WATCH"`
}

// DefaultSettings returns the built-in settings.
func DefaultSettings() Settings {
	return Settings{
		LogLevel:              "info",
		LogFormat:             "console",
		ConfigFile:            "config.txt",
		SymbolFile:            "export_functions.txt",
		GameModule:            "builtin",
		EditorModule:          "builtin",
		EditorPrefix:          "create_instance_Editor_",
		FrameRate:             60,
		GameViewStyle:         "bottom_left",
		GameViewSize:          0.6,
		ViewAnimationSeconds:  0.15,
		SuppressPointerOverUI: true,
		LuaTimeoutMillis:      2000,
	}
}

// LoadSettings reads the settings file at path over DefaultSettings. The
// decoder is chosen by extension. A missing file yields the defaults and a
// *ConfigFileUnavailableError.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		return s, &ConfigFileUnavailableError{Path: path, Err: err}
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, &s)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &s)
	case ".json":
		err = json.Unmarshal(data, &s)
	default:
		return s, fmt.Errorf("%s: %w %q", path, ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return DefaultSettings(), &ParseError{Path: path, Message: err.Error(), Err: err}
	}
	return s, nil
}

// ApplyEnv overlays DEMON_* environment variables onto s.
func ApplyEnv(s *Settings) error {
	return env.ParseWithOptions(s, env.Options{Prefix: EnvPrefix})
}

// ApplyEnvFrom overlays variables from environ instead of the process
// environment.
func ApplyEnvFrom(s *Settings, environ map[string]string) error {
	return env.ParseWithOptions(s, env.Options{Prefix: EnvPrefix, Environment: environ})
}

var viewStyles = map[string]bool{
	"center":       true,
	"bottom_left":  true,
	"bottom_right": true,
	"top_left":     true,
	"top_right":    true,
}

// Validate checks the settings.
func (s Settings) Validate() error {
	switch strings.ToLower(s.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return &ValidationError{Field: "log_level", Message: "unknown level", Value: s.LogLevel}
	}
	if s.LogFormat != "console" && s.LogFormat != "json" {
		return &ValidationError{Field: "log_format", Message: "must be console or json", Value: s.LogFormat}
	}
	if s.FrameRate < 1 || s.FrameRate > 1000 {
		return &ValidationError{Field: "frame_rate", Message: "must be in [1, 1000]", Value: s.FrameRate}
	}
	if !viewStyles[s.GameViewStyle] {
		return &ValidationError{Field: "game_view_style", Message: "unknown style", Value: s.GameViewStyle}
	}
	if s.GameViewSize <= 0 || s.GameViewSize > 1 {
		return &ValidationError{Field: "game_view_size", Message: "must be in (0, 1]", Value: s.GameViewSize}
	}
	if s.ViewAnimationSeconds < 0 {
		return &ValidationError{Field: "view_animation_seconds", Message: "must not be negative", Value: s.ViewAnimationSeconds}
	}
	if s.LuaTimeoutMillis < 0 {
		return &ValidationError{Field: "lua_timeout_ms", Message: "must not be negative", Value: s.LuaTimeoutMillis}
	}
	if s.EditorPrefix == "" {
		return &ValidationError{Field: "editor_prefix", Message: "must not be empty", Value: s.EditorPrefix}
	}
	return nil
}
