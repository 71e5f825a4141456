package app

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPanel(t *testing.T) {
	p := NewPanel(3)

	p.Print("one")
	p.Print("two\nthree\nfour")
	assert.Equal(t, []string{"one", "two", "three"}, p.Lines())
	assert.Equal(t, 3, p.Len())

	p.Reset()
	assert.Empty(t, p.Lines())
	p.Print("again")
	assert.Equal(t, []string{"again"}, p.Lines())
}

func TestPanel_DefaultCap(t *testing.T) {
	p := NewPanel(0)
	for i := 0; i < DefaultPanelLines+5; i++ {
		p.Print(fmt.Sprint(i))
	}
	assert.Equal(t, DefaultPanelLines, p.Len())
}
