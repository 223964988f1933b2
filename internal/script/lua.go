package script

import (
	"fmt"
	"log/slog"

	"github.com/mlange-42/ark/ecs"
	lua "github.com/yuin/gopher-lua"

	"github.com/Versifine/cellstage/internal/vmath"
)

const (
	worldTypeName  = "world"
	entityTypeName = "entity"
)

// LuaModule is a Module backed by a single Lua state. Like the rest of the
// control loop it must only be used from one goroutine.
type LuaModule struct {
	state *lua.LState
	name  string
}

// LoadLuaModule runs the file once so its global functions become callable.
func LoadLuaModule(path string) (*LuaModule, error) {
	m := newLuaModule(path)
	if err := m.state.DoFile(path); err != nil {
		m.Close()
		return nil, fmt.Errorf("load script module %s: %w", path, err)
	}
	return m, nil
}

func LoadLuaModuleString(name, source string) (*LuaModule, error) {
	m := newLuaModule(name)
	if err := m.state.DoString(source); err != nil {
		m.Close()
		return nil, fmt.Errorf("load script module %s: %w", name, err)
	}
	return m, nil
}

func newLuaModule(name string) *LuaModule {
	L := lua.NewState()
	m := &LuaModule{state: L, name: name}
	m.registerTypes()
	return m
}

func (m *LuaModule) Name() string {
	return m.name
}

func (m *LuaModule) Close() {
	if m != nil && m.state != nil {
		m.state.Close()
		m.state = nil
	}
}

// Execute calls a global function in protected mode. Lua errors are logged
// and reported as Failed.
func (m *LuaModule) Execute(name string, args ...any) Result {
	if m == nil || m.state == nil {
		return Failed
	}
	L := m.state

	fn := L.GetGlobal(name)
	if fn.Type() != lua.LTFunction {
		slog.Warn("Script function not found", "module", m.name, "function", name)
		return NotFound
	}

	values := make([]lua.LValue, 0, len(args))
	for i, arg := range args {
		v, err := m.toLua(arg)
		if err != nil {
			slog.Warn("Script argument not supported", "module", m.name, "function", name, "index", i, "error", err)
			return Failed
		}
		values = append(values, v)
	}

	if err := L.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}, values...); err != nil {
		slog.Warn("Script function failed", "module", m.name, "function", name, "error", err)
		return Failed
	}
	return Success
}

func (m *LuaModule) toLua(arg any) (lua.LValue, error) {
	L := m.state
	switch v := arg.(type) {
	case nil:
		return lua.LNil, nil
	case lua.LValue:
		return v, nil
	case ecs.Entity:
		return m.newEntity(v), nil
	case Host:
		ud := L.NewUserData()
		ud.Value = v
		L.SetMetatable(ud, L.GetTypeMetatable(worldTypeName))
		return ud, nil
	case vmath.Vec3:
		return vec3Table(L, v), nil
	case vmath.Vec2:
		t := L.NewTable()
		t.RawSetString("x", lua.LNumber(v.X))
		t.RawSetString("y", lua.LNumber(v.Y))
		return t, nil
	case float64:
		return lua.LNumber(v), nil
	case int:
		return lua.LNumber(v), nil
	case uint64:
		return lua.LNumber(v), nil
	case string:
		return lua.LString(v), nil
	case bool:
		return lua.LBool(v), nil
	default:
		return nil, fmt.Errorf("unsupported argument type %T", arg)
	}
}

func (m *LuaModule) newEntity(e ecs.Entity) *lua.LUserData {
	L := m.state
	ud := L.NewUserData()
	ud.Value = e
	L.SetMetatable(ud, L.GetTypeMetatable(entityTypeName))
	return ud
}

func vec3Table(L *lua.LState, v vmath.Vec3) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("x", lua.LNumber(v.X))
	t.RawSetString("y", lua.LNumber(v.Y))
	t.RawSetString("z", lua.LNumber(v.Z))
	return t
}
