package app

import (
	"context"
	"time"

	"github.com/dshills/demon/internal/event"
	"github.com/dshills/demon/internal/renderer/layout"
	"github.com/dshills/demon/internal/script"
	"github.com/dshills/demon/internal/task"
)

// Frame runs one tick:
//
//	watch events -> post raw events -> view animation -> render_ui
//	  -> DispatchFrameEvents -> Tasks.Poll
//
// It returns ErrQuit once an exit was requested and ErrShutdown after
// Shutdown.
func (app *Application) Frame(ctx context.Context, dt float64, events []event.Event) error {
	if app.isShutdown() {
		return ErrShutdown
	}
	if app.quit.Load() {
		return ErrQuit
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	start := time.Now()
	app.ctx = ctx
	app.frame++
	app.elapsed += dt

	app.drainWatcher()
	for _, ev := range events {
		app.noteWindow(ev)
		app.bus.Post(ev)
	}

	if app.view.Update(dt) {
		app.metrics.setViewSize(app.view.Size())
	}

	app.panel.Reset()
	app.bus.Trigger(event.RenderUI)

	suppress := app.settings.SuppressPointerOverUI && app.pointer.OverUI()
	app.bus.DispatchFrameEvents(suppress)

	app.tasks.Poll(task.Frame{Index: app.frame, DT: dt, Time: start})

	app.metrics.observeFrame(time.Since(start).Seconds())
	if app.quit.Load() {
		return ErrQuit
	}
	return nil
}

// drainWatcher turns pending file changes into one scripts-changed event.
func (app *Application) drainWatcher() {
	if app.watcher == nil {
		return
	}
	changed := false
	for {
		select {
		case ev := <-app.watcher.Events():
			app.logger.Info().Str("path", ev.Path).Str("op", ev.Op.String()).Msg("script file changed")
			changed = true
		default:
			if changed {
				app.bus.PostName(event.ScriptsChanged)
			}
			return
		}
	}
}

// noteWindow records the size carried by a window event.
func (app *Application) noteWindow(ev event.Event) {
	if ev.Name != event.WindowEvent {
		return
	}
	w, okW := paramInt(ev, 0)
	h, okH := paramInt(ev, 1)
	if okW && okH {
		app.width, app.height = int(w), int(h)
	}
}

func paramInt(ev event.Event, i int) (int64, bool) {
	p, ok := ev.Param(i)
	if !ok {
		return 0, false
	}
	return p.Int()
}

// UpdatePointer records the pointer at cell x, y of a cols by rows window.
func (app *Application) UpdatePointer(x, y, cols, rows int) {
	nx, ny := layout.Normalize(x, y, cols, rows)
	app.pointer.move(nx, ny, !app.uiCells.Empty() && app.uiCells.Contains(x, y))
}

// MovePointer records the pointer in normalized window coordinates, y up.
func (app *Application) MovePointer(x, y float64, overUI bool) {
	app.pointer.move(x, y, overUI)
}

// SetPointerCentered records whether the pointer is locked to the window
// center.
func (app *Application) SetPointerCentered(on bool) {
	app.pointer.setCentered(on)
}

// SetUIBounds records the cells covered by the UI panel.
func (app *Application) SetUIBounds(c layout.Cells) {
	app.uiCells = c
}

// PointerState is the pointer context handed to scripts, plus whether the
// pointer is over the UI panel.
type PointerState interface {
	script.PointerState
	OverUI() bool
}

// Pointer returns the pointer state handed to scripts.
func (app *Application) Pointer() PointerState {
	return app.pointer
}
