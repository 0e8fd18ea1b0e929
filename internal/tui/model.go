// Package tui hosts the interactive product selection wizard.
package tui

import (
	tea "charm.land/bubbletea/v2"

	"github.com/gtondello/ShopifyProductSearchApp/internal/core/catalog"
	"github.com/gtondello/ShopifyProductSearchApp/internal/core/wizard"
	"github.com/gtondello/ShopifyProductSearchApp/internal/tui/views/review"
	"github.com/gtondello/ShopifyProductSearchApp/internal/tui/views/selection"
)

const (
	keyCtrlC = "ctrl+c"
	// breadcrumb and divider
	headerLines = 2
)

// Options configures the wizard model.
type Options struct {
	Source    catalog.Source       // Product query endpoint
	Navigator selection.Navigator  // Opens products in the admin (optional)
	Shop      string               // Shown in the header
	Build     BuildInfo
}

// Model is the root Bubble Tea model. It owns the wizard coordinator and the
// view of the active step.
type Model struct {
	opts      Options
	coord     *wizard.Coordinator
	selection selection.View
	review    review.View
	// parked holds the selection table left by Resume, so the following
	// Back returns to it instead of the confirmed snapshot.
	parked    *catalog.Snapshot
	width     int
	height    int
	quitting  bool
}

// New creates the wizard model in the selection step.
func New(opts Options) Model {
	return Model{
		opts:      opts,
		coord:     wizard.New(),
		selection: selection.New(opts.Source, opts.Navigator),
	}
}

// Init loads the first product page.
func (m Model) Init() tea.Cmd {
	return m.selection.Init()
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)

	// Step transitions
	case selection.ConfirmedMsg:
		return m.handleConfirmed(msg)
	case review.BackMsg:
		return m.handleBack()
	case review.DisplayStateChangedMsg:
		m.coord.RecordReviewState(msg.Display)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.routeToStep(msg)
}

// Coordinator exposes the wizard state machine.
func (m Model) Coordinator() *wizard.Coordinator {
	return m.coord
}
