// Package cli provides terminal I/O, output formatting, and
// meta-command dispatch for the simcore interpreter.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mlowen/simcore/engine/save"
	"github.com/mlowen/simcore/sim"
	"github.com/mlowen/simcore/types"
)

// CLI handles terminal interaction with the player.
type CLI struct {
	Game      *sim.Game
	In        io.Reader
	Out       io.Writer
	SaveDir   string
	Trace     bool
	EchoInput bool // echo each input line after the prompt (for script playback)
}

// New creates a CLI wired to the given game.
func New(g *sim.Game) *CLI {
	home, _ := os.UserHomeDir()
	return &CLI{
		Game:    g,
		In:      os.Stdin,
		Out:     os.Stdout,
		SaveDir: filepath.Join(home, ".simcore", "saves"),
	}
}

// Run starts the play loop. It shows the intro, describes the starting
// place, then loops: prompt → input → dispatch → output.
func (c *CLI) Run() {
	if c.Game.Defs.Game.Intro != "" {
		c.printLine(c.Game.Defs.Game.Intro)
		c.printLine("")
	}

	c.printResult(c.Game.Handle("look"))

	scanner := bufio.NewScanner(c.In)
	for {
		c.print(c.prompt())
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		// Meta-commands start with '/'.
		if strings.HasPrefix(input, "/") {
			if c.handleMeta(input) {
				return // /quit
			}
			continue
		}

		result := c.Game.Handle(input)
		c.printResult(result)

		if c.Trace {
			c.printTrace(result)
		}
	}
}

// prompt marks pending dialogue with "?" so the player can tell a
// follow-up question from a fresh turn.
func (c *CLI) prompt() string {
	if c.Game.Session().Dialogue().Active() {
		return "? "
	}
	return "> "
}

// handleMeta dispatches meta-commands. Returns true if the game should
// exit.
func (c *CLI) handleMeta(input string) bool {
	parts := strings.Fields(input)
	cmd := parts[0]
	var arg string
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch cmd {
	case "/quit", "/exit":
		c.printSystem("Goodbye.")
		return true

	case "/save":
		c.cmdSave(arg)

	case "/load":
		c.cmdLoad(arg)

	case "/help":
		c.cmdHelp()

	case "/state":
		c.cmdState()

	case "/unknowns":
		c.cmdUnknowns(arg)

	case "/trace":
		c.Trace = !c.Trace
		if c.Trace {
			c.printSystem("Trace output enabled.")
		} else {
			c.printSystem("Trace output disabled.")
		}

	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd))
	}

	return false
}

func (c *CLI) cmdSave(name string) {
	if name == "" {
		name = "quicksave"
	}

	data, err := save.Save(c.Game)
	if err != nil {
		c.printSystem(fmt.Sprintf("Save failed: %v", err))
		return
	}

	if err := os.MkdirAll(c.SaveDir, 0o755); err != nil {
		c.printSystem(fmt.Sprintf("Save failed: %v", err))
		return
	}

	path := filepath.Join(c.SaveDir, name+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		c.printSystem(fmt.Sprintf("Save failed: %v", err))
		return
	}

	c.printSystem(fmt.Sprintf("Game saved to %s.", name))
}

func (c *CLI) cmdLoad(name string) {
	if name == "" {
		name = "quicksave"
	}

	path := filepath.Join(c.SaveDir, name+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		c.printSystem(fmt.Sprintf("Load failed: %v", err))
		return
	}

	sd, err := save.Load(data)
	if err != nil {
		c.printSystem(fmt.Sprintf("Load failed: %v", err))
		return
	}

	save.Apply(c.Game, sd)
	c.printSystem(fmt.Sprintf("Game loaded from %s (day %d).", name, sd.Day))

	c.printResult(c.Game.Handle("look"))
}

func (c *CLI) cmdHelp() {
	help := []string{
		"System:",
		"  /save [name]   — Save game (default: quicksave)",
		"  /load [name]   — Load game (default: quicksave)",
		"  /quit          — Exit game",
		"  /help          — Show this help",
		"  /state         — Debug: dump current state",
		"  /unknowns      — Show unrecognized inputs (/unknowns clear to reset)",
		"  /trace         — Toggle parser trace output",
		"",
		"Things you can say (free text works too):",
		"  look                  — Describe where you are",
		"  go to <place>         — Move around town",
		"  talk to <person> about <topic>",
		"  examine <thing>       — Take a closer look",
		"  apply                 — Ask for a job where you are",
		"  work                  — Work a shift",
		"  eat                   — Have a meal",
		"  sleep [N hours]       — Rest up",
		"  borrow <amount>       — Take out a loan",
		"  buy <business>        — Make an offer",
		"",
		"While being asked something: answer it, or 'cancel' to drop it.",
	}
	for _, line := range help {
		c.printLine(line)
	}
}

func (c *CLI) cmdState() {
	w := c.Game.World
	c.printSystem(fmt.Sprintf("Day %d, %02d:00", w.Day, w.Hour))
	c.printSystem(fmt.Sprintf("Location: %s", w.Location))
	c.printSystem(fmt.Sprintf("Money: $%d  Energy: %d", w.Money, w.Energy))
	if w.Job != "" {
		c.printSystem(fmt.Sprintf("Job: %s", w.Job))
	}
	if w.LoanBalance > 0 {
		c.printSystem(fmt.Sprintf("Debt: $%d", w.LoanBalance))
	}
	if len(w.Owned) > 0 {
		c.printSystem(fmt.Sprintf("Owned: %v", w.Owned))
	}
}

func (c *CLI) cmdUnknowns(arg string) {
	if arg == "clear" {
		c.Game.Session().ClearUnknownInputs()
		c.printSystem("Unknown-input log cleared.")
		return
	}
	entries := c.Game.Session().UnknownInputs()
	if len(entries) == 0 {
		c.printSystem("No unrecognized inputs recorded.")
		return
	}
	c.printSystem(fmt.Sprintf("%d unrecognized input(s):", len(entries)))
	for _, e := range entries {
		c.printLine("  " + e)
	}
}

func (c *CLI) printTrace(result types.Result) {
	rec := result.Recognition
	if rec.Intent != "" {
		c.printSystem(fmt.Sprintf("[trace] intent=%s confidence=%.2f", rec.Intent, rec.Confidence))
		for slot, ent := range rec.Entities {
			c.printSystem(fmt.Sprintf("[trace]   %s: key=%q text=%q n=%d conf=%.2f",
				slot, ent.Key, ent.Text, ent.Number, ent.Confidence))
		}
	}
	if result.Command.Name != "" {
		c.printSystem(fmt.Sprintf("[trace] command=%+v", result.Command))
	}
}

func (c *CLI) printResult(result types.Result) {
	for _, line := range result.Output {
		c.printLine(line)
	}
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}
