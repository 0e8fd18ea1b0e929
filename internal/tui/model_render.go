package tui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/gtondello/ShopifyProductSearchApp/internal/core/styles"
	"github.com/gtondello/ShopifyProductSearchApp/internal/core/wizard"
)

// View renders the model.
func (m Model) View() tea.View {
	if m.quitting {
		return tea.NewView("")
	}

	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render composes the header, the active step and any open modal.
func (m Model) render() string {
	w, h := m.width, m.height
	if w == 0 {
		w = 80
	}
	if h == 0 {
		h = 24
	}

	if m.coord.Step() == wizard.Reviewing {
		main := lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(w), m.review.View())
		return m.review.Overlay(main, w, h)
	}

	main := lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(w), m.selection.View())
	return m.selection.Overlay(main, w, h)
}

// renderHeader renders the step breadcrumb and a divider.
func (m Model) renderHeader(width int) string {
	step1, step2 := styles.StepActiveStyle, styles.StepInactiveStyle
	if m.coord.Step() == wizard.Reviewing {
		step1, step2 = step2, step1
	}

	crumbs := step1.Render("1. Select products") +
		" " + styles.TextMutedStyle.Render(styles.GlyphSeparator) + " " +
		step2.Render("2. Confirm selection")

	if m.coord.CanResume() {
		crumbs += styles.TextMutedStyle.Render("  (tab to resume review)")
	}

	right := styles.TextMutedStyle.Render(strings.TrimSpace(m.opts.Shop + " " + m.opts.Build.Short()))
	gap := max(width-lipgloss.Width(crumbs)-lipgloss.Width(right)-2, 1)

	header := " " + crumbs + strings.Repeat(" ", gap) + right
	divider := styles.DividerStyle.Render(strings.Repeat("─", max(width, 1)))
	return header + "\n" + divider
}
