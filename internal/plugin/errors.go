package plugin

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/demon/internal/script"
)

// Loader errors.
var (
	// ErrModuleLoad matches every *ModuleLoadError.
	ErrModuleLoad = errors.New("module load failed")

	// ErrSymbolResolution matches every *SymbolResolutionError.
	ErrSymbolResolution = errors.New("symbol resolution failed")

	// ErrInstanceCreation matches every *InstanceCreationError.
	ErrInstanceCreation = errors.New("instance creation failed")

	// ErrDuplicateScriptName matches every *DuplicateScriptNameError.
	ErrDuplicateScriptName = errors.New("duplicate script name")

	// ErrNotFound is returned by Get for an unknown script name. It is the
	// same sentinel Host.Find reports.
	ErrNotFound = script.ErrNotFound

	// ErrLoaderBusy is returned when Load, UnloadAll or Reload is entered
	// while another of them is running.
	ErrLoaderBusy = errors.New("loader is busy")

	// ErrSymbolNotFound is returned by Module.Lookup for an unknown symbol.
	ErrSymbolNotFound = errors.New("symbol not found")

	// ErrModuleClosed is returned by Module.Lookup after Close.
	ErrModuleClosed = errors.New("module is closed")

	// ErrNoModuleSystem is returned by Router when no system handles a path.
	ErrNoModuleSystem = errors.New("no module system for path")
)

// ModuleLoadError reports that a module could not be opened.
type ModuleLoadError struct {
	Path string
	Err  error
}

func (e *ModuleLoadError) Error() string {
	return fmt.Sprintf("load module %q: %v", e.Path, e.Err)
}

// Unwrap returns ErrModuleLoad and the cause.
func (e *ModuleLoadError) Unwrap() []error {
	return causes(ErrModuleLoad, e.Err)
}

// SymbolResolutionError reports the factory symbols a module lacks.
type SymbolResolutionError struct {
	Path    string
	Missing []string
}

func (e *SymbolResolutionError) Error() string {
	return fmt.Sprintf("module %q: unresolved symbols: %s", e.Path, strings.Join(e.Missing, ", "))
}

// Unwrap returns ErrSymbolResolution.
func (e *SymbolResolutionError) Unwrap() error {
	return ErrSymbolResolution
}

// InstanceCreationError reports that a factory produced no usable
// instance, or that the instance failed to start.
type InstanceCreationError struct {
	Path   string
	Symbol string
	Err    error
}

func (e *InstanceCreationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("module %q: %s returned no instance", e.Path, e.Symbol)
	}
	return fmt.Sprintf("module %q: %s: %v", e.Path, e.Symbol, e.Err)
}

// Unwrap returns ErrInstanceCreation and the cause, if any.
func (e *InstanceCreationError) Unwrap() []error {
	return causes(ErrInstanceCreation, e.Err)
}

// DuplicateScriptNameError reports two instances claiming the same name.
type DuplicateScriptNameError struct {
	Path string
	Name string
}

func (e *DuplicateScriptNameError) Error() string {
	return fmt.Sprintf("module %q: script name %q already in use", e.Path, e.Name)
}

// Unwrap returns ErrDuplicateScriptName.
func (e *DuplicateScriptNameError) Unwrap() error {
	return ErrDuplicateScriptName
}

// MissingSymbols returns the unresolved symbols carried by err, if any.
func MissingSymbols(err error) []string {
	var symErr *SymbolResolutionError
	if errors.As(err, &symErr) {
		return symErr.Missing
	}
	return nil
}

func causes(sentinel, err error) []error {
	if err == nil {
		return []error{sentinel}
	}
	return []error{sentinel, err}
}
