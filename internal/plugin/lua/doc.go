// Package lua provides a Lua module system for scripted behaviors.
//
// A Lua module is a single file. It is run once when opened, in a
// sandboxed gopher-lua state, and defines global factory functions named
// after the script they create:
//
//	function create_instance_Spinner(host)
//	    local self = {
//	        name = "Spinner",
//	        buttons = {
//	            a        = { "left", true },
//	            ["a-up"] = { "left", false },
//	        },
//	    }
//	    local angle = 0
//
//	    function self.update(dt)
//	        if host.is_down("left") then angle = angle + 90 * dt end
//	    end
//
//	    function self.render()
//	        host.print(string.format("angle %.1f", angle))
//	    end
//
//	    return self
//	end
//
// The returned table may define start, update(dt), event(name), render
// and stop functions; missing ones are skipped. The host table passed to
// the factory exposes accept(event, fn), trigger(event), print(line),
// is_down(flag), dt(), setting(key, default) and log(msg).
//
// # Sandbox
//
// Only the base, table, string and math libraries are opened. dofile,
// loadfile, load and loadstring are removed and require only resolves
// the opened libraries. Every call into Lua runs with an execution
// timeout.
//
// # Threading
//
// A gopher-lua state is not goroutine-safe. Modules must be used from the
// frame goroutine, which is how the loader and the event bus drive them.
package lua
