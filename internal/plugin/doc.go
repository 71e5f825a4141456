// Package plugin loads scripted behaviors from modules.
//
// A module is anything that can resolve factory symbols by name: a Go
// shared object, a Lua file, a Go source file, or an in-process Registry.
// Each factory symbol is named "create_instance_<ScriptName>" and creates
// one behavior when called with the shared script.Host.
//
// # Loading
//
// Loader.Load is all-or-nothing. It opens the module, resolves every
// requested symbol, constructs one instance per symbol, records the
// instances by their self-reported names and starts them. If any step
// fails, the pass is rolled back: instances already created are stopped
// and destroyed, the module is closed and the loader is left as it was.
//
//	loader := plugin.NewLoader(router, plugin.WithLogger(log))
//	err := loader.Load(ctx, []string{
//	    "create_instance_Hud",
//	    "create_instance_Player",
//	}, "scripts/game.so", host)
//
//	hud, err := loader.Get("Hud")
//
//	loader.UnloadAll(ctx)
//
// Failures are reported with typed errors: *ModuleLoadError,
// *SymbolResolutionError (carries the missing symbols),
// *InstanceCreationError and *DuplicateScriptNameError. Get reports
// ErrNotFound for unknown names.
//
// # Module systems
//
// ModuleSystem abstracts "open module, resolve symbol, close module".
// Registry serves factories compiled into the binary; Router picks a
// system by file extension. Subpackages native, lua and gosrc provide the
// file-backed systems.
//
// # Threading
//
// A Loader is driven from the frame goroutine. Get may be called from
// anywhere. Load, UnloadAll and Reload refuse to run while another of them
// is in progress and return ErrLoaderBusy.
package plugin
