package plugin

// State is the lifecycle state of a Loader.
type State int

// Loader states.
const (
	// StateUnloaded - No module is loaded.
	StateUnloaded State = iota

	// StateLoading - A load pass is running.
	StateLoading

	// StateLoaded - At least one module is loaded and its scripts started.
	StateLoaded

	// StateUnloading - Scripts are being torn down.
	StateUnloading
)

// String returns a string representation of the state.
func (s State) String() string {
	switch s {
	case StateUnloaded:
		return "unloaded"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateUnloading:
		return "unloading"
	default:
		return "unknown"
	}
}

// IsBusy reports whether a pass is in progress.
func (s State) IsBusy() bool {
	return s == StateLoading || s == StateUnloading
}
