package app

import (
	"context"
	"errors"

	"github.com/dshills/demon/internal/event"
	"github.com/dshills/demon/internal/renderer/backend"
	"github.com/dshills/demon/internal/renderer/layout"
	"github.com/dshills/demon/internal/task"
)

// EngineOwner owns the shell's own subscriptions and tasks.
const EngineOwner = "ENGINE"

// ScriptsUnloadTask unloads the game scripts one frame after game mode is
// left, so the frame that left it finishes with the scripts intact.
const ScriptsUnloadTask = "ScriptsUnloadTask"

// Shell key bindings.
const (
	KeyToggleGame = "shift-g"
	KeyExit       = "shift-e"
	KeyEscape     = "escape"
	KeyGrowView   = "shift-i"
	KeyShrinkView = "shift-d"
)

var viewKeys = []struct {
	key   string
	style layout.Style
}{
	{"shift-1", layout.BottomLeft},
	{"shift-2", layout.BottomRight},
	{"shift-3", layout.TopLeft},
	{"shift-4", layout.TopRight},
	{"shift-5", layout.Center},
}

// bindEngineKeys subscribes the shell bindings.
func (app *Application) bindEngineKeys() {
	for _, vk := range viewKeys {
		style := vk.style
		app.bus.Subscribe(EngineOwner, vk.key, func() { app.SetViewStyle(style) })
	}
	app.bus.Subscribe(EngineOwner, KeyGrowView, app.GrowView)
	app.bus.Subscribe(EngineOwner, KeyShrinkView, app.ShrinkView)
	if !app.bus.HasEvent(EngineOwner, KeyToggleGame) {
		app.bus.Subscribe(EngineOwner, KeyToggleGame, app.onToggleGame)
	}
	app.bindExit()
	app.bus.Subscribe(EngineOwner, KeyEscape, app.onEscape)
	app.bus.Subscribe(EngineOwner, event.WindowEvent, app.updateGameView)
	app.bus.Subscribe(EngineOwner, event.ScriptsChanged, app.onScriptsChanged)
	app.bus.Subscribe(EngineOwner, backend.FocusOut, app.pointer.forget)
}

func (app *Application) bindExit() {
	if !app.bus.HasEvent(EngineOwner, KeyExit) {
		app.bus.Subscribe(EngineOwner, KeyExit, app.RequestQuit)
	}
}

func (app *Application) onToggleGame() {
	if err := app.ToggleGameMode(app.ctx); err != nil {
		app.logger.Error().Err(err).Msg("game mode toggle failed")
	}
}

// onEscape leaves game mode, or quits from the editor.
func (app *Application) onEscape() {
	if app.GameMode() {
		if err := app.ExitGameMode(app.ctx); err != nil {
			app.logger.Error().Err(err).Msg("exit game mode failed")
		}
		return
	}
	app.RequestQuit()
}

func (app *Application) onScriptsChanged() {
	// Errors are logged and counted by ReloadScripts.
	_ = app.ReloadScripts(app.ctx)
}

// EnableGameMode loads the game scripts named in the symbol list and
// triggers game_mode_enabled. Game mode is entered even when the load
// fails; the error is returned. The exit key is released to the game while
// it runs.
func (app *Application) EnableGameMode(ctx context.Context) error {
	app.mu.Lock()
	if app.gameMode || app.shutdown {
		app.mu.Unlock()
		return nil
	}
	app.gameMode = true
	app.mu.Unlock()

	// An unload still pending from the previous exit must run first so the
	// script names are free again.
	if app.tasks.Remove(ScriptsUnloadTask) {
		app.unloadGameScripts(ctx)
	}

	app.bus.UnsubscribeEvent(EngineOwner, KeyExit)
	err := app.loadGameScripts(ctx)
	if err != nil {
		app.logger.Error().Err(err).Str("module", app.settings.GameModule).Msg("game scripts not loaded")
	}

	app.metrics.setGameMode(true)
	app.logger.Info().Strs("scripts", app.game.Names()).Msg("game mode enabled")
	app.bus.Trigger(event.GameModeEnabled)
	return err
}

// ExitGameMode triggers game_mode_disabled and schedules the game scripts
// to be unloaded on the next frame.
func (app *Application) ExitGameMode(ctx context.Context) error {
	app.mu.Lock()
	if !app.gameMode {
		app.mu.Unlock()
		return nil
	}
	app.gameMode = false
	app.mu.Unlock()

	app.bus.Trigger(event.GameModeDisabled)

	err := app.tasks.Add(task.Task{
		Name:  ScriptsUnloadTask,
		Owner: EngineOwner,
		Delay: 1,
		Fn: func(task.Frame) task.Status {
			app.unloadGameScripts(app.ctx)
			return task.Done
		},
	})
	if err != nil && !errors.Is(err, task.ErrDuplicateTask) {
		// Without the task the scripts are unloaded now.
		app.logger.Warn().Err(err).Msg("cannot schedule script unload")
		app.unloadGameScripts(ctx)
	}

	app.bindExit()
	app.metrics.setGameMode(false)
	app.logger.Info().Msg("game mode disabled")
	return nil
}

// ToggleGameMode enables or exits game mode.
func (app *Application) ToggleGameMode(ctx context.Context) error {
	if app.GameMode() {
		return app.ExitGameMode(ctx)
	}
	return app.EnableGameMode(ctx)
}

func (app *Application) unloadGameScripts(ctx context.Context) {
	if err := app.game.UnloadAll(ctx); err != nil {
		app.logger.Error().Err(err).Msg("game scripts unload failed")
	}
}

// SetViewStyle places the game view.
func (app *Application) SetViewStyle(style layout.Style) {
	app.view.SetStyle(style)
	app.updateGameView()
}

// GrowView enlarges the game view by one step.
func (app *Application) GrowView() {
	app.view.Grow()
	app.updateGameView()
}

// ShrinkView reduces the game view by one step.
func (app *Application) ShrinkView() {
	app.view.Shrink()
	app.updateGameView()
}

// GameRegion returns the game view in pointer-region coordinates.
func (app *Application) GameRegion() layout.Rect {
	return app.view.Rect().Region()
}

func (app *Application) updateGameView() {
	app.metrics.setViewSize(app.view.Size())
	r := app.view.Rect()
	app.logger.Debug().
		Str("style", app.view.Style().String()).
		Float64("size", app.view.Size()).
		Float64("left", r.Left).
		Float64("bottom", r.Bottom).
		Msg("game view updated")
}
