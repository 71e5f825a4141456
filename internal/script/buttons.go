package script

import "maps"

// Button maps one raw event to an input flag level.
type Button struct {
	// Flag is the input flag the event drives, e.g. "forward".
	Flag string

	// Down is the level the flag takes when the event arrives.
	Down bool
}

// ButtonMap maps raw event names to flag updates:
//
//	script.ButtonMap{
//	    "w":    {Flag: "forward", Down: true},
//	    "w-up": {Flag: "forward", Down: false},
//	}
type ButtonMap map[string]Button

// Flags returns the distinct flag names referenced by m.
func (m ButtonMap) Flags() []string {
	seen := make(map[string]struct{}, len(m))
	var flags []string
	for _, b := range m {
		if _, ok := seen[b.Flag]; ok {
			continue
		}
		seen[b.Flag] = struct{}{}
		flags = append(flags, b.Flag)
	}
	return flags
}

// RegisterButtons installs m as the button table. Every flag it names is
// reset to false; flags of a previous table are forgotten.
func (s *Script) RegisterButtons(m ButtonMap) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.buttons = maps.Clone(m)
	s.input = make(map[string]bool, len(m))
	for _, f := range m.Flags() {
		s.input[f] = false
	}
}

// HandleButton applies the button table to a raw event name. It reports
// whether the event was mapped.
func (s *Script) HandleButton(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.buttons[name]
	if !ok {
		return false
	}
	s.input[b.Flag] = b.Down
	return true
}

// Input returns a copy of the input flags.
func (s *Script) Input() map[string]bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.input)
}

// IsDown reports the level of flag. Unknown flags are up.
func (s *Script) IsDown(flag string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.input[flag]
}
