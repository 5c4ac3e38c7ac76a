// Package sim is the thin simulation layer that executes canonical
// commands: a small-business life sim with a clock, money, energy, a
// job, loans, and purchasable businesses. It is the consumer side of
// the interpreter — handlers receive commands and may open follow-up
// dialogue before a command is allowed to complete.
package sim

import "github.com/mlowen/simcore/types"

// LoanRate is the flat interest applied to every loan, in percent.
const LoanRate = 10

// MaxDebt caps how much the bank will ever let the player owe.
const MaxDebt = 50_000

const (
	maxEnergy        = 100
	energyPerRest    = 10 // restored per hour slept
	energyPerShift   = 25
	shiftHours       = 8
	mealEnergy       = 15
	dayStartHour     = 7
	defaultStartCash = 120
)

// Defs holds the immutable town definitions, usually loaded from Lua.
type Defs struct {
	Game       types.GameDef
	Places     map[string]types.PlaceDef
	People     map[string]types.PersonDef
	Businesses map[string]types.BusinessDef
	Intents    []types.IntentDef // vocabulary extensions from content
}

// World is the complete mutable simulation state.
type World struct {
	Day         int
	Hour        int
	Money       int
	Energy      int
	Location    string
	Job         string // place id where employed, "" = unemployed
	LoanBalance int
	Owned       []string // business ids
}

// NewWorld creates the day-one state for the given definitions.
func NewWorld(defs *Defs) *World {
	return &World{
		Day:      1,
		Hour:     dayStartHour,
		Money:    defaultStartCash,
		Energy:   maxEnergy,
		Location: defs.Game.Start,
	}
}

// Owns reports whether a business id is in the owned list.
func (w *World) Owns(id string) bool {
	for _, o := range w.Owned {
		if o == id {
			return true
		}
	}
	return false
}

// advance moves the clock forward and reports how many midnights
// passed.
func (w *World) advance(hours int) int {
	w.Hour += hours
	days := 0
	for w.Hour >= 24 {
		w.Hour -= 24
		w.Day++
		days++
	}
	return days
}

func (w *World) spendEnergy(n int) {
	w.Energy -= n
	if w.Energy < 0 {
		w.Energy = 0
	}
}

func (w *World) restoreEnergy(n int) {
	w.Energy += n
	if w.Energy > maxEnergy {
		w.Energy = maxEnergy
	}
}
