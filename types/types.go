// Package types defines the shared data structures for the simcore
// interpreter. This package contains only type definitions — no logic,
// no methods.
package types

import "time"

// IntentDef declares one recognizable intent: the words and phrase
// fragments that signal it, the entity slots it may populate, and its
// priority weight in scoring (higher = more weight).
type IntentDef struct {
	Name     string
	Keywords []string
	Patterns []string
	Slots    []string // ordered entity-slot names, drawn from the fixed kind set
	Priority int
}

// EntityKind enumerates the closed set of entity kinds the extractor
// understands. Slot names in IntentDef.Slots map 1:1 onto these.
type EntityKind int

const (
	KindLocation EntityKind = iota
	KindCharacter
	KindAmount
	KindDuration
	KindDirection
	KindTopic
	KindTarget
	KindBusiness
)

// Entity is one extracted value, tagged by kind. Only the fields the
// kind needs are populated:
//
//	location/character    — Key (resolved id), Name (display name), Confidence
//	amount/duration       — Number
//	direction             — Text (one of the direction enum)
//	topic/target/business — Text (free-form, trimmed)
type Entity struct {
	Kind       EntityKind
	Key        string
	Name       string
	Text       string
	Number     int
	Confidence float64
}

// Recognition is the result of classifying and extracting one input.
// Ephemeral: it exists for a single input cycle.
type Recognition struct {
	Intent     string // "unknown" is a valid value
	Entities   map[string]Entity
	Raw        string
	Confidence float64 // always within [0.0, 1.0]
	Time       time.Time
}

// Command is the canonical record handed to simulation handlers,
// independent of the original wording. Absent fields hold zero values.
type Command struct {
	Name      string
	Target    string // resolved id or free-form target
	Topic     string
	Direction string
	Amount    int // positive when present
	Duration  int // hours, positive when present
	Raw       string
	Confirmed bool // set when a confirmation dialogue approved this command
}

// Ref is a named reference supplied by the content layer.
type Ref struct {
	Name string
}

// Context carries the content-derived vocabulary for one recognition
// call. Characters may be empty before content loads.
type Context struct {
	Locations  map[string]Ref
	Characters map[string]Ref
}

// Result is the output of handling one input line.
type Result struct {
	Recognition Recognition
	Command     Command
	Output      []string
}

// GameDef holds game metadata from Lua.
type GameDef struct {
	Title    string
	Author   string
	Version  string
	Start    string // starting place ID
	Intro    string
	Currency string
}

// PlaceDef is the base definition of a place in the town.
type PlaceDef struct {
	ID          string
	Name        string
	Description string
	Exits       map[string]string // direction → place_id
	Wage        int               // per-hour pay if the place offers work
	MealPrice   int               // cost of eating here, 0 = no food
}

// PersonDef is the base definition of a character.
type PersonDef struct {
	ID       string
	Name     string
	Location string
	Topics   map[string]string // topic → line of dialogue
	Default  string            // line used when no topic matches
}

// BusinessDef is a purchasable business.
type BusinessDef struct {
	ID       string
	Name     string
	Location string
	Price    int
	Income   int // per-day passive income once owned
}
