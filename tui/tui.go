package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mlowen/simcore/engine/save"
	"github.com/mlowen/simcore/sim"
	"github.com/mlowen/simcore/types"
)

// rawLine stores an unstyled output line with its classification, so
// we can re-wrap and re-style when the terminal is resized.
type rawLine struct {
	text     string
	kind     lineKind
	isInput  bool // true for echoed player input
	isSystem bool // true for system messages
}

// Model is the Bubble Tea model for the simcore TUI.
type Model struct {
	game *sim.Game

	viewport viewport.Model
	input    textinput.Model
	history  *History

	rawLines []rawLine // accumulated output lines (unstyled, for re-wrapping)

	width    int
	height   int
	ready    bool
	trace    bool
	quitting bool
	saveDir  string
}

// gameOutputMsg carries output from the interpreter into the Update
// loop.
type gameOutputMsg struct {
	input    string   // echoed player input (empty for intro)
	lines    []string // output lines
	isSystem bool     // true for meta-command output
}

// New creates a TUI model wired to the given game.
func New(g *sim.Game) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 256
	ti.PromptStyle = styleInputPrompt

	home, _ := os.UserHomeDir()
	return Model{
		game:    g,
		input:   ti,
		history: NewHistory(100),
		saveDir: filepath.Join(home, ".simcore", "saves"),
	}
}

// Run starts the Bubble Tea program.
func Run(g *sim.Game) error {
	m := New(g)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

// Init returns the initial command that produces intro text and the
// first look around.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.initialOutput())
}

func (m Model) initialOutput() tea.Cmd {
	return func() tea.Msg {
		game := m.game.Defs.Game
		var lines []string

		lines = append(lines, game.Title+" v"+game.Version+" by "+game.Author)
		lines = append(lines, "")

		if game.Intro != "" {
			lines = append(lines, game.Intro)
			lines = append(lines, "")
		}

		result := m.game.Handle("look")
		lines = append(lines, result.Output...)

		return gameOutputMsg{lines: lines}
	}
}

// Update handles messages (key presses, window resize, game output).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		vpHeight := m.height - 2 // 1 status bar + 1 input line
		if vpHeight < 1 {
			vpHeight = 1
		}

		if !m.ready {
			m.viewport = viewport.New(m.width, vpHeight)
			m.viewport.KeyMap = viewportKeyMap()
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = vpHeight
		}

		m.refreshViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			return m.handleEnter()

		case "up":
			if older, ok := m.history.Older(); ok {
				m.input.SetValue(older)
				m.input.CursorEnd()
			}
			return m, nil

		case "down":
			if newer, ok := m.history.Newer(); ok {
				m.input.SetValue(newer)
				m.input.CursorEnd()
			} else {
				m.input.SetValue("")
			}
			return m, nil

		case "pgup", "pgdown":
			var vpCmd tea.Cmd
			m.viewport, vpCmd = m.viewport.Update(msg)
			return m, vpCmd
		}

	case gameOutputMsg:
		m = m.appendOutput(msg)
	}

	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	cmds = append(cmds, inputCmd)

	return m, tea.Batch(cmds...)
}

// handleEnter processes the submitted input line.
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")

	if input == "" {
		return m, nil
	}

	m.history.Push(input)
	m.history.ResetCursor()

	// Meta-commands.
	if strings.HasPrefix(input, "/") {
		output, quit := m.handleMeta(input)
		m = m.appendOutput(gameOutputMsg{input: input, lines: output, isSystem: true})
		if quit {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	result := m.game.Handle(input)
	output := result.Output
	if m.trace {
		output = append(output, formatTrace(result)...)
	}
	m = m.appendOutput(gameOutputMsg{input: input, lines: output})

	// Mark pending dialogue in the prompt.
	if m.game.Session().Dialogue().Active() {
		m.input.Prompt = "? "
	} else {
		m.input.Prompt = "> "
	}
	return m, nil
}

// appendOutput adds lines to the transcript and refreshes the
// viewport.
func (m Model) appendOutput(msg gameOutputMsg) Model {
	if msg.input != "" {
		m.rawLines = append(m.rawLines, rawLine{
			text: "> " + msg.input, isInput: true,
		})
	}

	for _, line := range msg.lines {
		rl := rawLine{text: line, isSystem: msg.isSystem}
		if !msg.isSystem {
			rl.kind = classifyLine(line)
		}
		m.rawLines = append(m.rawLines, rl)
	}

	// Blank line separator between turns.
	m.rawLines = append(m.rawLines, rawLine{})

	m.refreshViewport()

	return m
}

// refreshViewport re-wraps and re-styles all raw lines at the current
// width and updates the viewport content.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}

	width := m.width
	if width < 10 {
		width = 10
	}

	var styled []string
	for _, rl := range m.rawLines {
		if rl.text == "" {
			styled = append(styled, "")
			continue
		}

		wrapped := wordWrap(rl.text, width)

		switch {
		case rl.isInput:
			styled = append(styled, stylePlayerInput.Render(wrapped))
		case rl.isSystem:
			styled = append(styled, styledSystemMsg(wrapped))
		default:
			styled = append(styled, renderLineKind(wrapped, rl.kind))
		}
	}

	m.viewport.SetContent(strings.Join(styled, "\n"))
	m.viewport.GotoBottom()
}

// wordWrap wraps text to fit within the given width, breaking at word
// boundaries.
func wordWrap(text string, width int) string {
	if width <= 0 || len(text) <= width {
		return text
	}

	var result strings.Builder
	words := strings.Fields(text)
	lineLen := 0

	for i, word := range words {
		wLen := len(word)

		if i == 0 {
			result.WriteString(word)
			lineLen = wLen
			continue
		}

		if lineLen+1+wLen > width {
			result.WriteString("\n")
			result.WriteString(word)
			lineLen = wLen
		} else {
			result.WriteString(" ")
			result.WriteString(word)
			lineLen += 1 + wLen
		}
	}

	return result.String()
}

// View renders the full TUI layout: viewport + status bar + input.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	return m.viewport.View() + "\n" + m.renderStatusBar() + "\n" + m.input.View()
}

// handleMeta dispatches meta-commands. Returns output lines and quit
// flag.
func (m *Model) handleMeta(input string) ([]string, bool) {
	parts := strings.Fields(input)
	cmd := parts[0]
	var arg string
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch cmd {
	case "/quit", "/exit":
		return []string{"Goodbye."}, true

	case "/save":
		return m.cmdSave(arg), false

	case "/load":
		return m.cmdLoad(arg), false

	case "/help":
		return m.cmdHelp(), false

	case "/state":
		return m.cmdState(), false

	case "/unknowns":
		return m.cmdUnknowns(arg), false

	case "/trace":
		m.trace = !m.trace
		if m.trace {
			return []string{"Trace output enabled."}, false
		}
		return []string{"Trace output disabled."}, false

	default:
		return []string{fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd)}, false
	}
}

func (m *Model) cmdSave(name string) []string {
	if name == "" {
		name = "quicksave"
	}

	data, err := save.Save(m.game)
	if err != nil {
		return []string{fmt.Sprintf("Save failed: %v", err)}
	}

	if err := os.MkdirAll(m.saveDir, 0o755); err != nil {
		return []string{fmt.Sprintf("Save failed: %v", err)}
	}

	path := filepath.Join(m.saveDir, name+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return []string{fmt.Sprintf("Save failed: %v", err)}
	}

	return []string{fmt.Sprintf("Game saved to %s.", name)}
}

func (m *Model) cmdLoad(name string) []string {
	if name == "" {
		name = "quicksave"
	}

	path := filepath.Join(m.saveDir, name+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		return []string{fmt.Sprintf("Load failed: %v", err)}
	}

	sd, err := save.Load(data)
	if err != nil {
		return []string{fmt.Sprintf("Load failed: %v", err)}
	}

	save.Apply(m.game, sd)
	m.input.Prompt = "> "

	output := []string{fmt.Sprintf("Game loaded from %s (day %d).", name, sd.Day)}
	result := m.game.Handle("look")
	output = append(output, result.Output...)
	return output
}

func (m *Model) cmdHelp() []string {
	return []string{
		"System:",
		"  /save [name]   — Save game (default: quicksave)",
		"  /load [name]   — Load game (default: quicksave)",
		"  /quit          — Exit game",
		"  /help          — Show this help",
		"  /state         — Debug: dump current state",
		"  /unknowns      — Show unrecognized inputs",
		"  /trace         — Toggle parser trace output",
		"",
		"Things you can say (free text works too):",
		"  look, go to <place>, talk to <person> about <topic>,",
		"  examine <thing>, apply, work, eat, sleep [N hours],",
		"  borrow <amount>, buy <business>",
		"",
		"While being asked something: answer it, or 'cancel' to drop it.",
		"",
		"Navigation: PgUp/PgDn to scroll, Up/Down for command history",
	}
}

func (m *Model) cmdState() []string {
	w := m.game.World
	output := []string{
		fmt.Sprintf("Day %d, %02d:00", w.Day, w.Hour),
		fmt.Sprintf("Location: %s", w.Location),
		fmt.Sprintf("Money: $%d  Energy: %d", w.Money, w.Energy),
	}
	if w.Job != "" {
		output = append(output, fmt.Sprintf("Job: %s", w.Job))
	}
	if w.LoanBalance > 0 {
		output = append(output, fmt.Sprintf("Debt: $%d", w.LoanBalance))
	}
	if len(w.Owned) > 0 {
		output = append(output, fmt.Sprintf("Owned: %v", w.Owned))
	}
	return output
}

func (m *Model) cmdUnknowns(arg string) []string {
	if arg == "clear" {
		m.game.Session().ClearUnknownInputs()
		return []string{"Unknown-input log cleared."}
	}
	entries := m.game.Session().UnknownInputs()
	if len(entries) == 0 {
		return []string{"No unrecognized inputs recorded."}
	}
	output := []string{fmt.Sprintf("%d unrecognized input(s):", len(entries))}
	return append(output, entries...)
}

func formatTrace(result types.Result) []string {
	var lines []string
	rec := result.Recognition
	if rec.Intent != "" {
		lines = append(lines, fmt.Sprintf("[trace] intent=%s confidence=%.2f", rec.Intent, rec.Confidence))
		for slot, ent := range rec.Entities {
			lines = append(lines, fmt.Sprintf("[trace]   %s: key=%q text=%q n=%d conf=%.2f",
				slot, ent.Key, ent.Text, ent.Number, ent.Confidence))
		}
	}
	if result.Command.Name != "" {
		lines = append(lines, fmt.Sprintf("[trace] command=%+v", result.Command))
	}
	return lines
}

// viewportKeyMap returns a viewport keymap with Up/Down disabled (we
// use those for input history).
func viewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		Up:           key.NewBinding(key.WithDisabled()),
		Down:         key.NewBinding(key.WithDisabled()),
	}
}
