package main

import (
	"errors"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/dshills/demon/internal/app"
	"github.com/dshills/demon/internal/config"
)

// resolveSettings layers the settings file, DEMON_* variables and the
// flags that were set, in that order. A missing settings file is not an
// error; warnings collects it for logging once the logger exists.
func resolveSettings(cmd *cobra.Command) (s config.Settings, warnings []error, err error) {
	path, _ := cmd.Flags().GetString("settings")
	s, err = config.LoadSettings(path)
	switch {
	case errors.Is(err, config.ErrConfigFileUnavailable):
		warnings = append(warnings, err)
	case err != nil:
		return s, nil, err
	}

	if err := config.ApplyEnv(&s); err != nil {
		return s, nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		s.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-format") {
		s.LogFormat, _ = flags.GetString("log-format")
	}
	overrides := []struct {
		flag string
		dst  *string
	}{
		{"config", &s.ConfigFile},
		{"symbols", &s.SymbolFile},
		{"game-module", &s.GameModule},
		{"editor-module", &s.EditorModule},
		{"view", &s.GameViewStyle},
		{"metrics-addr", &s.MetricsAddr},
	}
	for _, o := range overrides {
		if flags.Lookup(o.flag) != nil && flags.Changed(o.flag) {
			*o.dst, _ = flags.GetString(o.flag)
		}
	}
	if flags.Lookup("fps") != nil && flags.Changed("fps") {
		s.FrameRate, _ = flags.GetInt("fps")
	}
	if flags.Lookup("watch") != nil && flags.Changed("watch") {
		s.Watch, _ = flags.GetBool("watch")
	}

	if err := s.Validate(); err != nil {
		return s, nil, err
	}
	return s, warnings, nil
}

// newLogger builds the process logger. The terminal driver owns stdout, so
// logs go to stderr unless a log file is given.
func newLogger(s config.Settings, out io.Writer) zerolog.Logger {
	if out == nil {
		out = os.Stderr
	}
	cfg := app.DefaultLoggerConfig()
	cfg.Level = app.ParseLogLevel(s.LogLevel)
	cfg.JSON = s.LogFormat == "json"
	cfg.Output = out
	return app.NewLogger(cfg)
}
