package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// registerAPI registers the Lua constructors as globals.
func registerAPI(L *lua.LState, coll *collector) {
	// Game { title = "...", ... }
	L.SetGlobal("Game", L.NewFunction(func(L *lua.LState) int {
		coll.game = L.CheckTable(1)
		return 0
	}))

	// Place "id" { ... } — curried: Place("id") returns a function
	// that takes a table.
	L.SetGlobal("Place", curried(L, &coll.places))

	// Person "id" { ... } — curried.
	L.SetGlobal("Person", curried(L, &coll.people))

	// Business "id" { ... } — curried.
	L.SetGlobal("Business", curried(L, &coll.businesses))

	// Intent "name" { ... } — curried; extends the command vocabulary.
	L.SetGlobal("Intent", curried(L, &coll.intents))
}

func curried(L *lua.LState, dst *[]rawDef) *lua.LFunction {
	return L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			*dst = append(*dst, rawDef{id: id, table: tbl})
			return 0
		}))
		return 1
	})
}
