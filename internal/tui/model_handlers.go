package tui

import (
	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"

	"github.com/gtondello/ShopifyProductSearchApp/internal/core/wizard"
	"github.com/gtondello/ShopifyProductSearchApp/internal/tui/views/review"
	"github.com/gtondello/ShopifyProductSearchApp/internal/tui/views/selection"
)

// --- Window ---

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	m.selection.SetSize(msg.Width, m.contentHeight())
	m.review.SetSize(msg.Width, m.contentHeight())
	return m, nil
}

func (m Model) contentHeight() int {
	return max(m.height-headerLines, 1)
}

// --- Step transitions ---

func (m Model) handleConfirmed(msg selection.ConfirmedMsg) (tea.Model, tea.Cmd) {
	if err := m.coord.Confirm(msg.Records, msg.Snapshot); err != nil {
		log.Warn().Err(err).Msg("ignoring confirmation")
		return m, nil
	}

	log.Info().Int("count", len(msg.Records)).Msg("selection confirmed")
	m.parked = nil
	m.openReview()
	return m, nil
}

func (m Model) handleBack() (tea.Model, tea.Cmd) {
	if err := m.coord.Back(); err != nil {
		log.Warn().Err(err).Msg("ignoring back")
		return m, nil
	}

	snap, ok := m.coord.ControllerSnapshot()
	if m.parked != nil {
		snap, ok = *m.parked, true
		m.parked = nil
	}
	if !ok {
		m.selection = selection.New(m.opts.Source, m.opts.Navigator)
	} else {
		m.selection = selection.Restore(snap, m.opts.Source, m.opts.Navigator)
	}
	m.selection.SetSize(m.width, m.contentHeight())
	return m, m.selection.Init()
}

func (m Model) handleResume() (tea.Model, tea.Cmd) {
	live := m.selection.Controller().Snapshot()
	if err := m.coord.Resume(); err != nil {
		return m, nil
	}
	m.parked = &live
	m.openReview()
	return m, nil
}

// openReview rebuilds the review view from the coordinator. A fresh view
// starts scrolled to the top.
func (m *Model) openReview() {
	display := m.coord.ReviewDisplay(review.DefaultDisplay())
	m.review = review.New(m.coord.SelectedRecords(), display, m.opts.Navigator)
	m.review.SetSize(m.width, m.contentHeight())
}

// --- Input ---

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()
	if keyStr == keyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	if !m.stepCapturesKeys() {
		switch keyStr {
		case "q":
			m.quitting = true
			return m, tea.Quit
		case "tab":
			if m.coord.Step() == wizard.Selecting && m.coord.CanResume() {
				return m.handleResume()
			}
		}
	}

	return m.routeToStep(msg)
}

// stepCapturesKeys reports whether the active step needs raw key input.
func (m Model) stepCapturesKeys() bool {
	if m.coord.Step() == wizard.Reviewing {
		return m.review.HasModal()
	}
	return m.selection.HasEditorFocus() || m.selection.HasModal()
}

func (m Model) routeToStep(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.coord.Step() == wizard.Reviewing {
		m.review, cmd = m.review.Update(msg)
	} else {
		m.selection, cmd = m.selection.Update(msg)
	}
	return m, cmd
}
