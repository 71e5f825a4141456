//go:build ebiten

package ebiten

import (
	"strings"
	"unicode"

	"github.com/hajimehoshi/ebiten/v2"
)

// keyName returns the engine name of k with the held modifiers, or ""
// for keys that only act as modifiers.
func keyName(k ebiten.Key, shift, control bool) string {
	name := baseName(k)
	if name == "" {
		return ""
	}
	if shift {
		name = "shift-" + name
	}
	if control {
		name = "control-" + name
	}
	return name
}

func baseName(k ebiten.Key) string {
	s := k.String()
	switch {
	case s == "":
		return ""
	case isModifier(s):
		return ""
	case len(s) == 1:
		return strings.ToLower(s)
	case strings.HasPrefix(s, "Digit"):
		return strings.TrimPrefix(s, "Digit")
	}
	return snake(s)
}

func isModifier(s string) bool {
	for _, p := range []string{"Shift", "Control", "Alt", "Meta"} {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// snake turns ArrowUp into arrow_up and F12 into f12.
func snake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
