// Package save implements JSON serialization of a play session: the
// world, the command log, and the unknown-input log. A pending
// dialogue state is deliberately not persisted — it can hold live
// callbacks — so loading always resumes with no dialogue pending.
package save

import (
	"encoding/json"

	"github.com/mlowen/simcore/sim"
)

// SaveData is the JSON-serializable save format.
type SaveData struct {
	Version       string   `json:"version"`
	Game          string   `json:"game"`
	SessionID     string   `json:"session_id"`
	Day           int      `json:"day"`
	Hour          int      `json:"hour"`
	Money         int      `json:"money"`
	Energy        int      `json:"energy"`
	Location      string   `json:"location"`
	Job           string   `json:"job"`
	LoanBalance   int      `json:"loan_balance"`
	Owned         []string `json:"owned"`
	CommandLog    []string `json:"command_log"`
	UnknownInputs []string `json:"unknown_inputs"`
}

// Save serializes the game state to JSON bytes.
func Save(g *sim.Game) ([]byte, error) {
	w := g.World
	data := SaveData{
		Version:       g.Defs.Game.Version,
		Game:          g.Defs.Game.Title,
		SessionID:     g.Session().ID,
		Day:           w.Day,
		Hour:          w.Hour,
		Money:         w.Money,
		Energy:        w.Energy,
		Location:      w.Location,
		Job:           w.Job,
		LoanBalance:   w.LoanBalance,
		Owned:         w.Owned,
		CommandLog:    g.Session().CommandLog,
		UnknownInputs: g.Session().UnknownInputs(),
	}
	return json.MarshalIndent(data, "", "  ")
}

// Load deserializes JSON bytes into SaveData.
func Load(data []byte) (*SaveData, error) {
	var sd SaveData
	if err := json.Unmarshal(data, &sd); err != nil {
		return nil, err
	}
	if sd.Owned == nil {
		sd.Owned = []string{}
	}
	if sd.CommandLog == nil {
		sd.CommandLog = []string{}
	}
	if sd.UnknownInputs == nil {
		sd.UnknownInputs = []string{}
	}
	return &sd, nil
}

// Apply restores loaded save data onto a game. Any pending dialogue
// state is cleared.
func Apply(g *sim.Game, sd *SaveData) {
	w := g.World
	w.Day = sd.Day
	w.Hour = sd.Hour
	w.Money = sd.Money
	w.Energy = sd.Energy
	w.Location = sd.Location
	w.Job = sd.Job
	w.LoanBalance = sd.LoanBalance
	w.Owned = sd.Owned

	g.Session().CommandLog = sd.CommandLog
	g.Session().RestoreUnknownInputs(sd.UnknownInputs)
	g.Session().Dialogue().Clear()
}
