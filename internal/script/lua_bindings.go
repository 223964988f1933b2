package script

import (
	"fmt"
	"log/slog"

	"github.com/mlange-42/ark/ecs"
	lua "github.com/yuin/gopher-lua"

	"github.com/Versifine/cellstage/internal/vmath"
)

func (m *LuaModule) registerTypes() {
	L := m.state

	worldMT := L.NewTypeMetatable(worldTypeName)
	L.SetField(worldMT, "__index", L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"setControl": worldSetControl,
		"log":        m.worldLog,
	}))

	entityMT := L.NewTypeMetatable(entityTypeName)
	L.SetField(entityMT, "__index", L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"id": entityID,
	}))
	L.SetField(entityMT, "__tostring", L.NewFunction(entityString))

	L.SetGlobal("vec3", L.NewFunction(newVec3))
}

// world:setControl(entity, movement, look)
func worldSetControl(L *lua.LState) int {
	host := checkHost(L, 1)
	e := checkEntity(L, 2)
	movement := checkVec3(L, 3)
	look := checkVec3(L, 4)
	if err := host.SetControl(e, movement, look); err != nil {
		L.RaiseError("setControl: %s", err.Error())
	}
	return 0
}

// world:log(message)
func (m *LuaModule) worldLog(L *lua.LState) int {
	checkHost(L, 1)
	slog.Info("Script log", "module", m.name, "message", L.CheckString(2))
	return 0
}

func entityID(L *lua.LState) int {
	e := checkEntity(L, 1)
	L.Push(lua.LNumber(e.ID()))
	return 1
}

func entityString(L *lua.LState) int {
	e := checkEntity(L, 1)
	L.Push(lua.LString(fmt.Sprintf("entity(%d)", e.ID())))
	return 1
}

// vec3(x, y, z)
func newVec3(L *lua.LState) int {
	v := vmath.Vec3{
		X: float64(L.OptNumber(1, 0)),
		Y: float64(L.OptNumber(2, 0)),
		Z: float64(L.OptNumber(3, 0)),
	}
	L.Push(vec3Table(L, v))
	return 1
}

func checkHost(L *lua.LState, n int) Host {
	ud := L.CheckUserData(n)
	host, ok := ud.Value.(Host)
	if !ok {
		L.ArgError(n, "world expected")
	}
	return host
}

func checkEntity(L *lua.LState, n int) ecs.Entity {
	ud := L.CheckUserData(n)
	e, ok := ud.Value.(ecs.Entity)
	if !ok {
		L.ArgError(n, "entity expected")
	}
	return e
}

func checkVec3(L *lua.LState, n int) vmath.Vec3 {
	t := L.CheckTable(n)
	return vmath.Vec3{
		X: float64(lua.LVAsNumber(t.RawGetString("x"))),
		Y: float64(lua.LVAsNumber(t.RawGetString("y"))),
		Z: float64(lua.LVAsNumber(t.RawGetString("z"))),
	}
}
