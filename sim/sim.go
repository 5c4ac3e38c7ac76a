package sim

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mlowen/simcore/engine"
	"github.com/mlowen/simcore/engine/vocab"
	"github.com/mlowen/simcore/types"
)

// Game binds the town definitions, the mutable world, and the
// interpreter session into one playable unit.
type Game struct {
	Defs    *Defs
	World   *World
	session *engine.Session
}

// New creates a game over the given definitions. Content-declared
// intents are registered on top of the default vocabulary; a malformed
// content intent is reported, not fatal.
func New(defs *Defs) (*Game, []error) {
	g := &Game{
		Defs:  defs,
		World: NewWorld(defs),
	}
	g.session = engine.New(vocab.DefaultRegistry(), g.Context, g.Apply)

	var errs []error
	for _, def := range defs.Intents {
		if err := g.session.RegisterIntent(def); err != nil {
			errs = append(errs, err)
		}
	}
	return g, errs
}

// Session exposes the interpreter session (save/restore, diagnostics).
func (g *Game) Session() *engine.Session {
	return g.session
}

// Handle runs one raw input line through the interpreter.
func (g *Game) Handle(input string) types.Result {
	return g.session.Handle(input)
}

// Context supplies the recognition vocabulary derived from content:
// every place is a known location, every person a known character.
func (g *Game) Context() types.Context {
	ctx := types.Context{
		Locations:  make(map[string]types.Ref, len(g.Defs.Places)),
		Characters: make(map[string]types.Ref, len(g.Defs.People)),
	}
	for id, p := range g.Defs.Places {
		ctx.Locations[id] = types.Ref{Name: p.Name}
	}
	for id, p := range g.Defs.People {
		ctx.Characters[id] = types.Ref{Name: p.Name}
	}
	return ctx
}

// Apply executes one canonical command against the world.
func (g *Game) Apply(cmd types.Command) []string {
	switch cmd.Name {
	case "move":
		return g.handleMove(cmd)
	case "talk":
		return g.handleTalk(cmd)
	case "examine":
		return g.handleExamine(cmd)
	case "look":
		return g.handleLook()
	case "work":
		return g.handleWork()
	case "sleep":
		return g.handleSleep(cmd)
	case "eat":
		return g.handleEat(cmd)
	case "loan":
		return g.handleLoan(cmd)
	case "apply":
		return g.handleApply()
	case "buy":
		return g.handleBuy(cmd)
	default:
		return g.handleContentIntent(cmd)
	}
}

// place returns the current place definition.
func (g *Game) place() types.PlaceDef {
	return g.Defs.Places[g.World.Location]
}

// peopleAt lists person ids present at a place, sorted for stable
// output.
func (g *Game) peopleAt(placeID string) []string {
	var ids []string
	for id, p := range g.Defs.People {
		if p.Location == placeID {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// businessesAt lists business ids located at a place, sorted.
func (g *Game) businessesAt(placeID string) []string {
	var ids []string
	for id, b := range g.Defs.Businesses {
		if b.Location == placeID {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// resolvePerson finds a person by id, exact name, or name fragment.
func (g *Game) resolvePerson(ref string) (types.PersonDef, bool) {
	ref = strings.ToLower(strings.TrimSpace(ref))
	if ref == "" {
		return types.PersonDef{}, false
	}
	if p, ok := g.Defs.People[ref]; ok {
		return p, true
	}
	var ids []string
	for id := range g.Defs.People {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		name := strings.ToLower(g.Defs.People[id].Name)
		if name == ref || strings.Contains(name, ref) || strings.Contains(ref, name) {
			return g.Defs.People[id], true
		}
	}
	return types.PersonDef{}, false
}

// resolvePlace finds a place by id or name, same rules as people.
func (g *Game) resolvePlace(ref string) (types.PlaceDef, bool) {
	ref = strings.ToLower(strings.TrimSpace(ref))
	if ref == "" {
		return types.PlaceDef{}, false
	}
	if p, ok := g.Defs.Places[ref]; ok {
		return p, true
	}
	var ids []string
	for id := range g.Defs.Places {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		name := strings.ToLower(g.Defs.Places[id].Name)
		if name == ref || strings.Contains(name, ref) || strings.Contains(ref, name) {
			return g.Defs.Places[id], true
		}
	}
	return types.PlaceDef{}, false
}

// resolveBusiness finds a business by id or name.
func (g *Game) resolveBusiness(ref string) (types.BusinessDef, bool) {
	ref = strings.ToLower(strings.TrimSpace(ref))
	if ref == "" {
		return types.BusinessDef{}, false
	}
	if b, ok := g.Defs.Businesses[ref]; ok {
		return b, true
	}
	var ids []string
	for id := range g.Defs.Businesses {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		name := strings.ToLower(g.Defs.Businesses[id].Name)
		if name == ref || strings.Contains(name, ref) || strings.Contains(ref, name) {
			return g.Defs.Businesses[id], true
		}
	}
	return types.BusinessDef{}, false
}

func money(n int) string {
	return fmt.Sprintf("$%d", n)
}
