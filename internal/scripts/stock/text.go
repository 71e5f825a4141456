package stock

import (
	"strconv"
	"strings"

	"github.com/dshills/demon/internal/script"
)

// DefaultText is shown when the text_node_text setting is unset.
const DefaultText = "Every day in every way I am getting better and better."

// DefaultWrap is the wrap width when text_node_wrap is unset or invalid.
const DefaultWrap = 30

// TextNode prints a word-wrapped line of text on every UI pass. The text
// and width come from the text_node_text and text_node_wrap settings.
type TextNode struct {
	*script.Script
	lines []string
}

// NewTextNode is the TextNode factory.
func NewTextNode(host *script.Host) script.Behavior {
	t := &TextNode{}
	t.Script = script.New(TextNodeName, host, t)
	return t
}

// OnStart wraps the configured text.
func (t *TextNode) OnStart() error {
	width, err := strconv.Atoi(t.Host().Setting("text_node_wrap", ""))
	if err != nil || width <= 0 {
		width = DefaultWrap
	}
	t.lines = Wrap(t.Host().Setting("text_node_text", DefaultText), width)
	return nil
}

// RenderUI implements script.UIRenderer.
func (t *TextNode) RenderUI(ui script.UI) {
	for _, l := range t.lines {
		ui.Print(l)
	}
}

// Wrap breaks s into lines of at most width runes at word boundaries.
// Words longer than width get a line of their own.
func Wrap(s string, width int) []string {
	var lines []string
	var cur strings.Builder
	n := 0
	for _, w := range strings.Fields(s) {
		wl := len([]rune(w))
		if n > 0 && n+1+wl > width {
			lines = append(lines, cur.String())
			cur.Reset()
			n = 0
		}
		if n > 0 {
			cur.WriteByte(' ')
			n++
		}
		cur.WriteString(w)
		n += wl
	}
	if n > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}
