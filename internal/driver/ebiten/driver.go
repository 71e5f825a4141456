//go:build ebiten

// Package ebiten runs the shell in a desktop window. Build with -tags ebiten.
package ebiten

import (
	"context"
	"errors"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/dshills/demon/internal/app"
	"github.com/dshills/demon/internal/event"
	"github.com/dshills/demon/internal/renderer/backend"
)

// Debug font cell size used by ebitenutil.DebugPrintAt.
const (
	glyphW = 6
	glyphH = 16
)

var (
	backgroundColor = color.RGBA{R: 0x1e, G: 0x1e, B: 0x24, A: 0xff}
	gameColor       = color.RGBA{R: 0x20, G: 0x60, B: 0x30, A: 0xff}
	playingColor    = color.RGBA{R: 0x30, G: 0x90, B: 0x40, A: 0xff}
	panelColor      = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xc0}
)

var mouseButtons = []struct {
	button ebiten.MouseButton
	name   string
}{
	{ebiten.MouseButtonLeft, "mouse1"},
	{ebiten.MouseButtonMiddle, "mouse2"},
	{ebiten.MouseButtonRight, "mouse3"},
}

// Driver runs the application inside an ebiten window.
type Driver struct {
	Title  string
	Width  int
	Height int
}

// New returns a driver opening a w by h window.
func New(title string, w, h int) *Driver {
	return &Driver{Title: title, Width: w, Height: h}
}

// Run implements app.Driver.
func (d *Driver) Run(ctx context.Context, a *app.Application) error {
	ebiten.SetWindowTitle(d.Title)
	ebiten.SetWindowSize(d.Width, d.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(a.Settings().FrameRate)

	g := &game{app: a, ctx: ctx, pressed: make(map[ebiten.Key]string)}
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

type game struct {
	app *app.Application
	ctx context.Context

	// pressed keeps the name a key had when pressed so its release matches
	// even if modifiers changed in between.
	pressed map[ebiten.Key]string
	keys    []ebiten.Key

	w, h   int
	sized  bool
	uiRect image.Rectangle
	events []event.Event
}

func (g *game) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}
	g.collectKeys()
	g.collectMouse()
	g.updatePointer()

	evs := g.events
	g.events = nil
	err := g.app.Frame(g.ctx, 1/float64(ebiten.TPS()), evs)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, app.ErrQuit), g.ctx.Err() != nil:
		return ebiten.Termination
	default:
		return err
	}
}

func (g *game) post(name string) {
	g.events = append(g.events, event.New(name))
}

func (g *game) collectKeys() {
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)
	control := ebiten.IsKeyPressed(ebiten.KeyControl)

	g.keys = inpututil.AppendJustPressedKeys(g.keys[:0])
	for _, k := range g.keys {
		if name := keyName(k, shift, control); name != "" {
			g.pressed[k] = name
			g.post(name)
		}
	}
	g.keys = inpututil.AppendJustReleasedKeys(g.keys[:0])
	for _, k := range g.keys {
		if name, ok := g.pressed[k]; ok {
			delete(g.pressed, k)
			g.post(name + backend.ReleaseSuffix)
		}
	}
}

func (g *game) collectMouse() {
	for _, mb := range mouseButtons {
		if inpututil.IsMouseButtonJustPressed(mb.button) {
			g.post(mb.name)
		}
		if inpututil.IsMouseButtonJustReleased(mb.button) {
			g.post(mb.name + backend.ReleaseSuffix)
		}
	}
	switch _, dy := ebiten.Wheel(); {
	case dy > 0:
		g.post(backend.MouseWheelUp)
	case dy < 0:
		g.post(backend.MouseWheelDown)
	}
}

func (g *game) updatePointer() {
	g.app.SetPointerCentered(ebiten.CursorMode() == ebiten.CursorModeCaptured)
	if g.w == 0 || g.h == 0 {
		return
	}
	x, y := ebiten.CursorPosition()
	overUI := image.Pt(x, y).In(g.uiRect)
	g.app.MovePointer(float64(x)/float64(g.w), 1-float64(y)/float64(g.h), overUI)
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	r := g.app.View().Rect()
	view := image.Rect(
		int(r.Left*float64(g.w)), int((1-r.Top)*float64(g.h)),
		int(r.Right*float64(g.w)), int((1-r.Bottom)*float64(g.h)),
	)
	fill := gameColor
	if g.app.GameMode() {
		fill = playingColor
	}
	if sub, ok := screen.SubImage(view).(*ebiten.Image); ok {
		sub.Fill(fill)
	}

	lines := g.app.Panel().Lines()
	g.uiRect = image.Rectangle{}
	if len(lines) == 0 {
		return
	}
	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	g.uiRect = image.Rect(0, 0, (width+2)*glyphW, (len(lines)+1)*glyphH)
	if sub, ok := screen.SubImage(g.uiRect).(*ebiten.Image); ok {
		sub.Fill(panelColor)
	}
	for i, l := range lines {
		ebitenutil.DebugPrintAt(screen, l, glyphW, i*glyphH+glyphH/2)
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if !g.sized || outsideWidth != g.w || outsideHeight != g.h {
		g.w, g.h, g.sized = outsideWidth, outsideHeight, true
		g.events = append(g.events, event.New(event.WindowEvent,
			event.Int(int64(outsideWidth)), event.Int(int64(outsideHeight))))
	}
	return outsideWidth, outsideHeight
}
