package lua

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/demon/internal/script"
)

// instance binds one Lua instance table to its Go behavior.
type instance struct {
	state    *State
	host     *script.Host
	table    *lua.LTable
	behavior *script.FuncBehavior
}

// hostTable builds the host API handed to the factory.
func (i *instance) hostTable() *lua.LTable {
	L := i.state.L
	return L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"accept":  i.luaAccept,
		"trigger": i.luaTrigger,
		"print":   i.luaPrint,
		"is_down": i.luaIsDown,
		"dt":      i.luaDT,
		"setting": i.luaSetting,
		"log":     i.luaLog,
	})
}

func (i *instance) luaAccept(L *lua.LState) int {
	name := L.CheckString(1)
	fn := L.CheckFunction(2)
	if i.behavior == nil {
		L.RaiseError("accept(%q) called before the instance was created", name)
		return 0
	}
	i.behavior.Accept(name, func() {
		if _, err := i.state.Call(fn, 0); err != nil {
			i.behavior.Logger().Error().Err(err).Str("event", name).Msg("lua callback failed")
		}
	})
	return 0
}

func (i *instance) luaTrigger(L *lua.LState) int {
	name := L.CheckString(1)
	if i.host != nil && i.host.Bus != nil {
		i.host.Bus.Trigger(name)
	}
	return 0
}

func (i *instance) luaPrint(L *lua.LState) int {
	line := L.CheckString(1)
	if i.host != nil && i.host.UI != nil {
		i.host.UI.Print(line)
	}
	return 0
}

func (i *instance) luaIsDown(L *lua.LState) int {
	flag := L.CheckString(1)
	down := i.behavior != nil && i.behavior.IsDown(flag)
	L.Push(lua.LBool(down))
	return 1
}

func (i *instance) luaDT(L *lua.LState) int {
	dt := 0.0
	if i.behavior != nil {
		dt = i.behavior.DT()
	}
	L.Push(lua.LNumber(dt))
	return 1
}

func (i *instance) luaSetting(L *lua.LState) int {
	key := L.CheckString(1)
	def := L.OptString(2, "")
	L.Push(lua.LString(i.host.Setting(key, def)))
	return 1
}

func (i *instance) luaLog(L *lua.LState) int {
	msg := L.CheckString(1)
	if i.behavior != nil {
		i.behavior.Logger().Info().Msg(msg)
	}
	return 0
}

// funcs maps the instance table's methods onto script.Funcs.
func (i *instance) funcs(name string, buttons script.ButtonMap) script.Funcs {
	return script.Funcs{
		Name:    name,
		Buttons: buttons,
		Start: func(*script.Script) error {
			return i.method("start")
		},
		Update: func(s *script.Script, dt float64) {
			i.logged(s, "update", lua.LNumber(dt))
		},
		Event: func(s *script.Script, ev string) {
			i.logged(s, "event", lua.LString(ev))
		},
		Render: func(s *script.Script, _ script.UI) {
			i.logged(s, "render")
		},
		Stop: func(s *script.Script) {
			i.logged(s, "stop")
		},
	}
}

// method calls the instance table's function field name, if present.
func (i *instance) method(name string, args ...lua.LValue) error {
	fn, ok := i.table.RawGetString(name).(*lua.LFunction)
	if !ok {
		return nil
	}
	if _, err := i.state.Call(fn, 0, args...); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

func (i *instance) logged(s *script.Script, name string, args ...lua.LValue) {
	if err := i.method(name, args...); err != nil {
		s.Logger().Error().Err(err).Msg("lua hook failed")
	}
}

// parseButtons reads a button table:
//
//	{ w = { "forward", true }, ["w-up"] = { flag = "forward", down = false } }
func parseButtons(v lua.LValue) (script.ButtonMap, error) {
	if v == lua.LNil {
		return nil, nil
	}
	tbl, ok := v.(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("buttons must be a table, got %s", v.Type())
	}

	buttons := make(script.ButtonMap)
	var err error
	tbl.ForEach(func(k, entry lua.LValue) {
		if err != nil {
			return
		}
		ev, ok := k.(lua.LString)
		if !ok {
			err = fmt.Errorf("button key must be a string, got %s", k.Type())
			return
		}
		e, ok := entry.(*lua.LTable)
		if !ok {
			err = fmt.Errorf("button %q must be a table", string(ev))
			return
		}
		flag := e.RawGetString("flag")
		down := e.RawGetString("down")
		if flag == lua.LNil {
			flag = e.RawGetInt(1)
			down = e.RawGetInt(2)
		}
		if flag.Type() != lua.LTString {
			err = fmt.Errorf("button %q has no flag", string(ev))
			return
		}
		buttons[string(ev)] = script.Button{Flag: flag.String(), Down: lua.LVAsBool(down)}
	})
	if err != nil {
		return nil, err
	}
	return buttons, nil
}
