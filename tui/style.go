package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleNarrative = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleYouSee = lipgloss.NewStyle().
			Bold(true)

	styleExits = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleSpeech = lipgloss.NewStyle().
			Foreground(lipgloss.Color("228"))

	stylePrompt = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81"))

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleTrace = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindNarrative lineKind = iota
	kindYouSee
	kindExits
	kindSpeech
	kindPrompt
	kindSystem
	kindError
	kindTrace
)

// classifyLine determines what kind of output line this is.
func classifyLine(line string) lineKind {
	switch {
	case strings.HasPrefix(line, "[trace]"):
		return kindTrace
	case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
		return kindSystem
	case strings.HasPrefix(line, "You see:"):
		return kindYouSee
	case strings.HasPrefix(line, "Exits:"):
		return kindExits
	case strings.HasSuffix(line, "?"), strings.HasSuffix(line, "(yes/no)"):
		return kindPrompt
	case strings.HasPrefix(line, "You can't"),
		strings.HasPrefix(line, "You don't"),
		strings.HasPrefix(line, "You're not sure"),
		strings.HasPrefix(line, "You need"):
		return kindError
	case containsQuotedSpeech(line):
		return kindSpeech
	default:
		return kindNarrative
	}
}

// containsQuotedSpeech checks if a line contains character dialogue in
// single quotes.
func containsQuotedSpeech(line string) bool {
	inQuote := false
	quoteLen := 0
	for _, r := range line {
		if r == '\'' {
			if inQuote && quoteLen > 5 {
				return true
			}
			inQuote = !inQuote
			quoteLen = 0
		} else if inQuote {
			quoteLen++
		}
	}
	return false
}

// renderLineKind applies the style for a given lineKind.
func renderLineKind(line string, kind lineKind) string {
	switch kind {
	case kindYouSee:
		return styledYouSee(line)
	case kindExits:
		return styleExits.Render(line)
	case kindSpeech:
		return styleSpeech.Render(line)
	case kindPrompt:
		return stylePrompt.Render(line)
	case kindSystem:
		return styleSystem.Render(line)
	case kindError:
		return styleError.Render(line)
	case kindTrace:
		return styleTrace.Render(line)
	default:
		return styleNarrative.Render(line)
	}
}

// styledYouSee renders "You see: name1, name2" with the names bold.
func styledYouSee(line string) string {
	const prefix = "You see: "
	if !strings.HasPrefix(line, prefix) {
		return styleNarrative.Render(line)
	}
	return styleNarrative.Render(prefix) + styleYouSee.Render(line[len(prefix):])
}

// styledSystemMsg renders a system message in gray with brackets.
func styledSystemMsg(text string) string {
	return styleSystem.Render("[" + text + "]")
}
