package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderStatusBar produces a full-width inverted status line showing
// the current place, clock, money, energy, and debt.
func (m Model) renderStatusBar() string {
	w := m.game.World

	placeName := w.Location
	if place, ok := m.game.Defs.Places[w.Location]; ok && place.Name != "" {
		placeName = place.Name
	}

	left := fmt.Sprintf(" %s | Day %d, %02d:00", placeName, w.Day, w.Hour)

	parts := []string{
		fmt.Sprintf("$%d", w.Money),
		fmt.Sprintf("Energy %d", w.Energy),
	}
	if w.LoanBalance > 0 {
		parts = append(parts, fmt.Sprintf("Debt $%d", w.LoanBalance))
	}
	if len(w.Owned) > 0 {
		parts = append(parts, fmt.Sprintf("Businesses %d", len(w.Owned)))
	}
	right := strings.Join(parts, " | ") + " "

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}
