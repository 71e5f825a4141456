package backend

import (
	"strings"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/demon/internal/event"
)

// Raw event names produced by the translator.
const (
	MouseMove      = "mouse-move"
	MouseWheelUp   = "mouse-wheel-up"
	MouseWheelDown = "mouse-wheel-down"
	FocusIn        = "focus-in"
	FocusOut       = "focus-out"
	ReleaseSuffix  = "-up"
)

// shiftedDigits maps US layout shifted digit keys back to their digit.
var shiftedDigits = map[rune]rune{
	'!': '1', '@': '2', '#': '3', '$': '4', '%': '5',
	'^': '6', '&': '7', '*': '8', '(': '9', ')': '0',
}

var specialKeys = map[tcell.Key]string{
	tcell.KeyEscape:     "escape",
	tcell.KeyEnter:      "enter",
	tcell.KeyTab:        "tab",
	tcell.KeyBacktab:    "shift-tab",
	tcell.KeyBackspace:  "backspace",
	tcell.KeyBackspace2: "backspace",
	tcell.KeyDelete:     "delete",
	tcell.KeyInsert:     "insert",
	tcell.KeyHome:       "home",
	tcell.KeyEnd:        "end",
	tcell.KeyPgUp:       "page_up",
	tcell.KeyPgDn:       "page_down",
	tcell.KeyUp:         "arrow_up",
	tcell.KeyDown:       "arrow_down",
	tcell.KeyLeft:       "arrow_left",
	tcell.KeyRight:      "arrow_right",
	tcell.KeyF1:         "f1",
	tcell.KeyF2:         "f2",
	tcell.KeyF3:         "f3",
	tcell.KeyF4:         "f4",
	tcell.KeyF5:         "f5",
	tcell.KeyF6:         "f6",
	tcell.KeyF7:         "f7",
	tcell.KeyF8:         "f8",
	tcell.KeyF9:         "f9",
	tcell.KeyF10:        "f10",
	tcell.KeyF11:        "f11",
	tcell.KeyF12:        "f12",
}

// mouseButtons maps tcell buttons to engine names: 1 left, 2 middle,
// 3 right.
var mouseButtons = []struct {
	mask tcell.ButtonMask
	name string
}{
	{tcell.Button1, "mouse1"},
	{tcell.Button3, "mouse2"},
	{tcell.Button2, "mouse3"},
}

// Translator turns tcell events into raw event names.
//
// Terminals do not report key release, so every key press is followed by a
// synthetic release ("a" then "a-up") at the start of the next frame.
type Translator struct {
	released []string
	buttons  tcell.ButtonMask

	x, y       int
	hasPointer bool
}

// NewTranslator creates a translator.
func NewTranslator() *Translator {
	return &Translator{}
}

// Frame translates one frame's worth of events. Releases for keys pressed
// in the previous frame come first.
func (t *Translator) Frame(evs []tcell.Event) []event.Event {
	out := make([]event.Event, 0, len(t.released)+len(evs))
	for _, name := range t.released {
		out = append(out, event.New(name+ReleaseSuffix))
	}
	t.released = t.released[:0]

	for _, ev := range evs {
		out = t.translate(out, ev)
	}
	return out
}

// Pointer returns the last pointer cell and whether one has been seen
// since focus was last lost.
func (t *Translator) Pointer() (x, y int, ok bool) {
	return t.x, t.y, t.hasPointer
}

func (t *Translator) translate(out []event.Event, ev tcell.Event) []event.Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		name := KeyName(e)
		if name == "" {
			return out
		}
		t.released = append(t.released, name)
		return append(out, event.New(name))

	case *tcell.EventMouse:
		return t.mouse(out, e)

	case *tcell.EventResize:
		w, h := e.Size()
		return append(out, event.New(event.WindowEvent, event.Int(int64(w)), event.Int(int64(h))))

	case *tcell.EventFocus:
		if e.Focused {
			return append(out, event.New(FocusIn))
		}
		// The last position is stale until the next mouse event.
		t.hasPointer = false
		return append(out, event.New(FocusOut))
	}
	return out
}

func (t *Translator) mouse(out []event.Event, e *tcell.EventMouse) []event.Event {
	x, y := e.Position()
	if !t.hasPointer || x != t.x || y != t.y {
		t.x, t.y, t.hasPointer = x, y, true
		out = append(out, event.New(MouseMove, event.Int(int64(x)), event.Int(int64(y))))
	}

	btns := e.Buttons()
	for _, b := range mouseButtons {
		was := t.buttons&b.mask != 0
		is := btns&b.mask != 0
		switch {
		case is && !was:
			out = append(out, event.New(b.name))
		case was && !is:
			out = append(out, event.New(b.name+ReleaseSuffix))
		}
	}
	t.buttons = btns & (tcell.Button1 | tcell.Button2 | tcell.Button3)

	if btns&tcell.WheelUp != 0 {
		out = append(out, event.New(MouseWheelUp))
	}
	if btns&tcell.WheelDown != 0 {
		out = append(out, event.New(MouseWheelDown))
	}
	return out
}

// KeyName returns the engine name of a key event, or "" when the key has
// none.
func KeyName(e *tcell.EventKey) string {
	var name string
	switch k := e.Key(); {
	case k == tcell.KeyRune:
		name = runeName(e.Rune())
	case specialKeys[k] != "":
		name = specialKeys[k]
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		return "control-" + string(rune('a'+int(k-tcell.KeyCtrlA)))
	case k == tcell.KeyCtrlSpace:
		return "control-space"
	default:
		return ""
	}
	if name == "" {
		return ""
	}

	mods := e.Modifiers()
	if mods&tcell.ModAlt != 0 {
		name = "alt-" + name
	}
	if mods&tcell.ModCtrl != 0 {
		name = "control-" + name
	}
	return name
}

func runeName(r rune) string {
	switch {
	case r == ' ':
		return "space"
	case unicode.IsUpper(r):
		return "shift-" + string(unicode.ToLower(r))
	case shiftedDigits[r] != 0:
		return "shift-" + string(shiftedDigits[r])
	case unicode.IsPrint(r):
		return strings.ToLower(string(r))
	default:
		return ""
	}
}
