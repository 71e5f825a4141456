package plugin

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSymbolHelpers(t *testing.T) {
	assert.Equal(t, "create_instance_Hud", SymbolFor("Hud"))
	assert.Equal(t, "Hud", ScriptName("create_instance_Hud"))
	assert.Equal(t, "other", ScriptName("other"))

	syms := []string{
		"create_instance_Editor_Overlay",
		"create_instance_Player",
		"create_instance_Editor_Grid",
		"create_instance_Hud",
	}
	editor := "create_instance_Editor_"
	assert.Equal(t, []string{"create_instance_Editor_Overlay", "create_instance_Editor_Grid"}, FilterSymbols(syms, editor))
	assert.Equal(t, []string{"create_instance_Player", "create_instance_Hud"}, ExcludeSymbols(syms, editor))
	assert.Nil(t, FilterSymbols(nil, editor))
}

func TestUniqueSymbols(t *testing.T) {
	got := uniqueSymbols([]string{"b", " a", "b", "", "  ", "a"})
	assert.Equal(t, []string{"b", "a"}, got)
}

func TestErrorMessages(t *testing.T) {
	cause := errors.New("no such file")

	err := error(&ModuleLoadError{Path: "game.so", Err: cause})
	assert.Equal(t, `load module "game.so": no such file`, err.Error())
	assert.ErrorIs(t, err, cause)

	err = &SymbolResolutionError{Path: "game.so", Missing: []string{"create_instance_A", "create_instance_B"}}
	assert.Equal(t, `module "game.so": unresolved symbols: create_instance_A, create_instance_B`, err.Error())

	err = &InstanceCreationError{Path: "game.so", Symbol: "create_instance_A"}
	assert.Equal(t, `module "game.so": create_instance_A returned no instance`, err.Error())
	assert.ErrorIs(t, err, ErrInstanceCreation)

	err = &DuplicateScriptNameError{Path: "game.so", Name: "A"}
	assert.Equal(t, `module "game.so": script name "A" already in use`, err.Error())

	assert.Nil(t, MissingSymbols(cause))
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "unloaded", StateUnloaded.String())
	assert.Equal(t, "loading", StateLoading.String())
	assert.Equal(t, "loaded", StateLoaded.String())
	assert.Equal(t, "unloading", StateUnloading.String())
	assert.Equal(t, "unknown", State(42).String())
	assert.True(t, StateLoading.IsBusy())
	assert.False(t, StateLoaded.IsBusy())
	assert.Equal(t, "reloaded", EventReloaded.String())
}
