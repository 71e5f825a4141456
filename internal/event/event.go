package event

import (
	"fmt"
	"strings"
)

// Well-known event names emitted by the shell.
const (
	GameModeEnabled  = "game_mode_enabled"
	GameModeDisabled = "game_mode_disabled"
	RenderUI         = "render_ui"
	WindowEvent      = "window-event"
	ScriptsChanged   = "scripts-changed"
)

// ParamKind identifies the type held by a Param.
type ParamKind uint8

// Parameter kinds.
const (
	ParamInt ParamKind = iota
	ParamFloat
	ParamString
	ParamHandle
)

// String returns the kind name.
func (k ParamKind) String() string {
	switch k {
	case ParamInt:
		return "int"
	case ParamFloat:
		return "float"
	case ParamString:
		return "string"
	case ParamHandle:
		return "handle"
	default:
		return "unknown"
	}
}

// Param is a typed event parameter.
type Param struct {
	kind ParamKind
	i    int64
	f    float64
	s    string
	h    any
}

// Int creates an integer parameter.
func Int(v int64) Param { return Param{kind: ParamInt, i: v} }

// Float creates a floating point parameter.
func Float(v float64) Param { return Param{kind: ParamFloat, f: v} }

// String creates a text parameter.
func String(v string) Param { return Param{kind: ParamString, s: v} }

// Handle creates an opaque handle parameter.
func Handle(v any) Param { return Param{kind: ParamHandle, h: v} }

// Kind returns the parameter kind.
func (p Param) Kind() ParamKind { return p.kind }

// Int returns the integer value if the parameter holds one.
func (p Param) Int() (int64, bool) { return p.i, p.kind == ParamInt }

// Float returns the floating point value if the parameter holds one.
func (p Param) Float() (float64, bool) { return p.f, p.kind == ParamFloat }

// Text returns the string value if the parameter holds one.
func (p Param) Text() (string, bool) { return p.s, p.kind == ParamString }

// Handle returns the opaque value if the parameter holds one.
func (p Param) Handle() (any, bool) { return p.h, p.kind == ParamHandle }

// String formats the parameter for logs.
func (p Param) String() string {
	switch p.kind {
	case ParamInt:
		return fmt.Sprintf("%d", p.i)
	case ParamFloat:
		return fmt.Sprintf("%g", p.f)
	case ParamString:
		return fmt.Sprintf("%q", p.s)
	case ParamHandle:
		return fmt.Sprintf("<%T>", p.h)
	default:
		return "?"
	}
}

// Event is a named occurrence produced by the frame driver. Events live for
// one frame: they are queued, dispatched and discarded.
type Event struct {
	Name   string
	Params []Param
}

// New creates an event with the given name and parameters.
func New(name string, params ...Param) Event {
	return Event{Name: name, Params: params}
}

// Param returns the i-th parameter, or false if it does not exist.
func (e Event) Param(i int) (Param, bool) {
	if i < 0 || i >= len(e.Params) {
		return Param{}, false
	}
	return e.Params[i], true
}

// String formats the event for logs.
func (e Event) String() string {
	if len(e.Params) == 0 {
		return e.Name
	}
	parts := make([]string, len(e.Params))
	for i, p := range e.Params {
		parts[i] = p.String()
	}
	return e.Name + "(" + strings.Join(parts, ", ") + ")"
}

// IsPointerEvent reports whether name denotes a pointer/mouse-class event.
// It is the default classifier used by DispatchFrameEvents.
func IsPointerEvent(name string) bool {
	return strings.HasPrefix(name, "mouse")
}
