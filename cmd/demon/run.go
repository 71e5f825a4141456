package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/dshills/demon/internal/app"
	"github.com/dshills/demon/internal/config"
	"github.com/dshills/demon/internal/plugin"
	"github.com/dshills/demon/internal/renderer/backend"
	"github.com/dshills/demon/internal/scripts/stock"
)

// Driver names accepted by --driver.
const (
	driverTerminal = "terminal"
	driverHeadless = "headless"
	driverWindow   = "window"
)

const shutdownTimeout = 5 * time.Second

type runFlags struct {
	driver  string
	frames  int
	logFile string
}

func newRunCmd() *cobra.Command {
	var rf runFlags
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start the shell",
		Example: `  # Run in the terminal with the built-in scripts
  demon run

  # Run 600 frames without a display, exporting metrics
  demon run --driver headless --frames 600 --metrics-addr :9100

  # Load game scripts from a Lua file and reload them on change
  demon run --game-module scripts/game.lua --watch`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShell(cmd, rf)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&rf.driver, "driver", "d", driverTerminal, "frame driver (terminal, headless, window)")
	f.IntVar(&rf.frames, "frames", 0, "frames to run with the headless driver (0 runs until quit)")
	f.StringVar(&rf.logFile, "log-file", "", "write logs to this file (terminal driver default: demon.log)")
	f.String("config", "", "key/value configuration file")
	f.String("symbols", "", "symbol list file")
	f.String("game-module", "", "game script module")
	f.String("editor-module", "", "editor script module")
	f.String("view", "", "game view style (center, bottom_left, bottom_right, top_left, top_right)")
	f.String("metrics-addr", "", "serve Prometheus metrics on this address")
	f.Int("fps", 0, "frame rate")
	f.Bool("watch", false, "reload scripts when their files change")
	return cmd
}

func runShell(cmd *cobra.Command, rf runFlags) error {
	settings, warnings, err := resolveSettings(cmd)
	if err != nil {
		return err
	}

	out, closeLog, err := logOutput(rf)
	if err != nil {
		return err
	}
	defer closeLog()
	logger := newLogger(settings, out)
	for _, w := range warnings {
		logger.Warn().Err(w).Msg("using default settings")
	}

	driver, err := newDriver(rf, settings)
	if err != nil {
		return err
	}

	scripts := plugin.NewRegistry()
	if err := stock.Register(scripts); err != nil {
		return err
	}

	opts := app.DefaultOptions()
	opts.Settings = settings
	application, err := app.New(opts, app.WithLogger(logger), app.WithRegistry(scripts))
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if settings.MetricsAddr != "" {
		srv := serveMetrics(settings.MetricsAddr, application, logger)
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			_ = srv.Shutdown(sctx)
		}()
	}

	logger.Info().Str("driver", rf.driver).Str("version", version).Msg("starting")
	runErr := driver.Run(ctx, application)

	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := application.Shutdown(sctx); err != nil {
		logger.Error().Err(err).Msg("shutdown incomplete")
	}
	logger.Info().Uint64("frames", application.FrameIndex()).Msg("stopped")
	return runErr
}

// logOutput picks the log destination. The terminal driver draws on
// stdout, so its logs default to a file.
func logOutput(rf runFlags) (io.Writer, func(), error) {
	path := rf.logFile
	if path == "" && rf.driver == driverTerminal {
		path = "demon.log"
	}
	if path == "" {
		return os.Stderr, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

func newDriver(rf runFlags, s config.Settings) (app.Driver, error) {
	switch rf.driver {
	case driverTerminal:
		term, err := backend.NewTerminal()
		if err != nil {
			return nil, fmt.Errorf("failed to create terminal: %w", err)
		}
		return app.NewTerminalDriver(term, s.FrameRate), nil
	case driverHeadless:
		return &app.HeadlessDriver{Frames: rf.frames, DT: 1 / float64(s.FrameRate)}, nil
	case driverWindow:
		return windowDriver(s)
	default:
		return nil, fmt.Errorf("unknown driver %q", rf.driver)
	}
}

func serveMetrics(addr string, application *app.Application, logger zerolog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", app.Handler(application.Registry()))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Str("addr", addr).Msg("metrics server stopped")
		}
	}()
	logger.Info().Str("addr", addr).Msg("serving metrics")
	return srv
}
