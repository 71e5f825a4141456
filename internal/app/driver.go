package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/demon/internal/event"
	"github.com/dshills/demon/internal/renderer/backend"
	"github.com/dshills/demon/internal/renderer/layout"
)

// Driver feeds frames to an application until it quits or ctx is done.
type Driver interface {
	Run(ctx context.Context, app *Application) error
}

// DefaultDT is the frame delta used when none is configured.
const DefaultDT = 1.0 / 60

// HeadlessDriver runs frames back to back without a display.
type HeadlessDriver struct {
	// Frames is the number of frames to run. Zero runs until the
	// application quits or ctx is done.
	Frames int

	// DT is the delta reported for every frame. Zero uses DefaultDT.
	DT float64

	// Events are the raw events fed to each frame, keyed by frame index
	// starting at 1.
	Events map[uint64][]event.Event

	// OnFrame runs after each frame.
	OnFrame func(index uint64)
}

// Run implements Driver. ErrQuit and a done ctx end the run without error.
func (d *HeadlessDriver) Run(ctx context.Context, app *Application) error {
	dt := d.DT
	if dt <= 0 {
		dt = DefaultDT
	}

	for i := uint64(1); d.Frames <= 0 || i <= uint64(d.Frames); i++ {
		if ctx.Err() != nil {
			return nil
		}
		err := app.Frame(ctx, dt, d.Events[i])
		if d.OnFrame != nil {
			d.OnFrame(i)
		}
		switch {
		case errors.Is(err, ErrQuit), errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return nil
		case err != nil:
			return err
		}
	}
	return nil
}

// TerminalDriver runs the application in a terminal at a fixed frame rate.
// It draws the game view outline, the UI panel and a status line.
type TerminalDriver struct {
	backend    backend.Backend
	translator *backend.Translator
	fps        int
}

// NewTerminalDriver creates a driver drawing to b at fps frames per
// second. A non-positive fps uses 60.
func NewTerminalDriver(b backend.Backend, fps int) *TerminalDriver {
	if fps <= 0 {
		fps = 60
	}
	return &TerminalDriver{
		backend:    b,
		translator: backend.NewTranslator(),
		fps:        fps,
	}
}

// Run implements Driver.
func (d *TerminalDriver) Run(ctx context.Context, app *Application) error {
	if err := d.backend.Init(); err != nil {
		return &InitError{Component: "terminal", Err: err}
	}
	defer d.backend.Shutdown()

	w, h := d.backend.Size()
	pending := []event.Event{event.New(event.WindowEvent, event.Int(int64(w)), event.Int(int64(h)))}

	ticker := time.NewTicker(time.Second / time.Duration(d.fps))
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now

			evs := append(pending, d.translator.Frame(d.backend.Poll())...)
			pending = nil
			if err := d.Step(ctx, app, dt, evs); err != nil {
				if errors.Is(err, ErrQuit) || ctx.Err() != nil {
					return nil
				}
				return err
			}
		}
	}
}

// Step runs one frame with evs and redraws.
func (d *TerminalDriver) Step(ctx context.Context, app *Application, dt float64, evs []event.Event) error {
	if x, y, ok := d.translator.Pointer(); ok {
		cols, rows := d.backend.Size()
		app.UpdatePointer(x, y, cols, rows)
	}
	if err := app.Frame(ctx, dt, evs); err != nil {
		return err
	}
	d.draw(app)
	return nil
}

var (
	gameStyle   = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	panelStyle  = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	statusStyle = tcell.StyleDefault.Reverse(true)
)

func (d *TerminalDriver) draw(app *Application) {
	cols, rows := d.backend.Size()
	d.backend.Clear()

	title := "game"
	if app.GameMode() {
		title = "game (playing)"
	}
	d.backend.DrawBox(app.View().Rect().ToCells(cols, rows), title, gameStyle)

	lines := app.Panel().Lines()
	var ui layout.Cells
	if len(lines) > 0 {
		width := 0
		for _, l := range lines {
			width = max(width, len([]rune(l)))
		}
		ui = layout.Cells{X: 0, Y: 0, W: min(width+2, cols), H: min(len(lines)+2, rows-1)}
		d.backend.DrawBox(ui, "ui", panelStyle)
		for i, l := range lines {
			if i+1 >= ui.H-1 {
				break
			}
			d.backend.DrawText(1, i+1, l, panelStyle)
		}
	}
	app.SetUIBounds(ui)

	mode := "editor"
	if app.GameMode() {
		mode = "game"
	}
	status := fmt.Sprintf(" demon | %s | scripts %d | frame %d | shift-g game  shift-1..5 view  shift-i/d size  shift-e quit ",
		mode, app.EditorLoader().Len()+app.GameLoader().Len(), app.FrameIndex())
	d.backend.DrawText(0, rows-1, status, statusStyle)
	d.backend.Show()
}
