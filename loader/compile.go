package loader

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/mlowen/simcore/sim"
	"github.com/mlowen/simcore/types"
)

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	if s, ok := tbl.RawGetString(key).(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getInt returns an int field from a Lua table, or 0 if missing.
func getInt(tbl *lua.LTable, key string) int {
	if n, ok := tbl.RawGetString(key).(lua.LNumber); ok {
		return int(n)
	}
	return 0
}

// getTable returns a table field from a Lua table, or nil if missing.
func getTable(tbl *lua.LTable, key string) *lua.LTable {
	if t, ok := tbl.RawGetString(key).(*lua.LTable); ok {
		return t
	}
	return nil
}

// tableToStringMap converts a Lua table to a map[string]string.
func tableToStringMap(tbl *lua.LTable) map[string]string {
	if tbl == nil {
		return nil
	}
	m := map[string]string{}
	tbl.ForEach(func(k, v lua.LValue) {
		if ks, ok := k.(lua.LString); ok {
			if vs, ok := v.(lua.LString); ok {
				m[string(ks)] = string(vs)
			}
		}
	})
	return m
}

// tableToStringSlice converts a Lua array table to a []string.
func tableToStringSlice(tbl *lua.LTable) []string {
	if tbl == nil {
		return nil
	}
	var out []string
	for i := 1; i <= tbl.MaxN(); i++ {
		if s, ok := tbl.RawGetInt(i).(lua.LString); ok {
			out = append(out, string(s))
		}
	}
	return out
}

// compile converts all collected Lua data into a sim.Defs.
func compile(coll *collector) (*sim.Defs, error) {
	defs := &sim.Defs{
		Places:     map[string]types.PlaceDef{},
		People:     map[string]types.PersonDef{},
		Businesses: map[string]types.BusinessDef{},
	}

	if coll.game == nil {
		return nil, fmt.Errorf("no Game{} definition found")
	}
	defs.Game = compileGame(coll.game)

	for _, raw := range coll.places {
		if _, exists := defs.Places[raw.id]; exists {
			return nil, fmt.Errorf("duplicate place %q", raw.id)
		}
		defs.Places[raw.id] = compilePlace(raw)
	}
	for _, raw := range coll.people {
		if _, exists := defs.People[raw.id]; exists {
			return nil, fmt.Errorf("duplicate person %q", raw.id)
		}
		defs.People[raw.id] = compilePerson(raw)
	}
	for _, raw := range coll.businesses {
		if _, exists := defs.Businesses[raw.id]; exists {
			return nil, fmt.Errorf("duplicate business %q", raw.id)
		}
		defs.Businesses[raw.id] = compileBusiness(raw)
	}
	for _, raw := range coll.intents {
		defs.Intents = append(defs.Intents, compileIntent(raw))
	}

	return defs, nil
}

func compileGame(tbl *lua.LTable) types.GameDef {
	return types.GameDef{
		Title:    getString(tbl, "title"),
		Author:   getString(tbl, "author"),
		Version:  getString(tbl, "version"),
		Start:    getString(tbl, "start"),
		Intro:    getString(tbl, "intro"),
		Currency: getString(tbl, "currency"),
	}
}

func compilePlace(raw rawDef) types.PlaceDef {
	return types.PlaceDef{
		ID:          raw.id,
		Name:        getString(raw.table, "name"),
		Description: getString(raw.table, "description"),
		Exits:       tableToStringMap(getTable(raw.table, "exits")),
		Wage:        getInt(raw.table, "wage"),
		MealPrice:   getInt(raw.table, "meal_price"),
	}
}

func compilePerson(raw rawDef) types.PersonDef {
	return types.PersonDef{
		ID:       raw.id,
		Name:     getString(raw.table, "name"),
		Location: getString(raw.table, "location"),
		Topics:   tableToStringMap(getTable(raw.table, "topics")),
		Default:  getString(raw.table, "default"),
	}
}

func compileBusiness(raw rawDef) types.BusinessDef {
	return types.BusinessDef{
		ID:       raw.id,
		Name:     getString(raw.table, "name"),
		Location: getString(raw.table, "location"),
		Price:    getInt(raw.table, "price"),
		Income:   getInt(raw.table, "income"),
	}
}

func compileIntent(raw rawDef) types.IntentDef {
	return types.IntentDef{
		Name:     raw.id,
		Keywords: tableToStringSlice(getTable(raw.table, "keywords")),
		Patterns: tableToStringSlice(getTable(raw.table, "patterns")),
		Slots:    tableToStringSlice(getTable(raw.table, "slots")),
		Priority: getInt(raw.table, "priority"),
	}
}
