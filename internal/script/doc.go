// Package script provides the lifecycle base for scripted behaviors.
//
// A behavior is a named object created by a plugin factory. It receives a
// Host with the shared services it may touch (event bus, task manager,
// pointer state, UI panel) and wires itself into them on Start:
//
//   - a per-frame task named "<name>Task", run only while the pointer is
//     over the game viewport, or over the editor and centered
//   - an all-events listener named "<name>EventListener" that feeds the
//     button table and the behavior's OnEvent hook
//   - subscriptions, owned by the behavior name, to "game_mode_disabled"
//     (stops the update task) and "render_ui" (runs the UI hook)
//
// Stop undoes all of it. Concrete behaviors embed *Script and pass
// themselves as impl so the optional hook interfaces are discovered:
//
//	type Player struct {
//	    *script.Script
//	}
//
//	func NewPlayer(h *script.Host) script.Behavior {
//	    p := &Player{}
//	    p.Script = script.New("Player", h, p)
//	    return p
//	}
//
//	func (p *Player) OnUpdate(dt float64) { ... }
//
// Behaviors that are not Go types, such as interpreted modules, assemble
// themselves from function fields with NewFuncBehavior.
package script
