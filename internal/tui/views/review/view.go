package review

import (
	"context"
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"

	"github.com/gtondello/ShopifyProductSearchApp/internal/core/catalog"
	"github.com/gtondello/ShopifyProductSearchApp/internal/core/styles"
	"github.com/gtondello/ShopifyProductSearchApp/internal/tui/components"
	"github.com/gtondello/ShopifyProductSearchApp/internal/tui/components/producttable"
	"github.com/gtondello/ShopifyProductSearchApp/internal/tui/views/selection"
)

const (
	navigateTimeout = 10 * time.Second
	// table header, summary box, help line
	chromeLines = 6
)

// DisplayStateChangedMsg carries the display state after every sort or
// description toggle.
type DisplayStateChangedMsg struct {
	Display catalog.DisplayState
}

// BackMsg asks the wizard to return to the selection step.
type BackMsg struct{}

type navigatedMsg struct {
	title string
	err   error
}

// View is the Bubble Tea sub-model for the review step.
type View struct {
	ctrl   *Controller
	nav    selection.Navigator
	keys   keyMap
	detail *components.DetailModal
	help   *components.HelpDialog
	notice string
	width  int
	height int
}

// New creates a review view over records, seeded from display.
func New(records []catalog.Record, display catalog.DisplayState, nav selection.Navigator) View {
	return View{
		ctrl: NewController(records, display),
		nav:  nav,
		keys: defaultKeyMap(),
	}
}

// Init implements the sub-model contract; the review step has no startup work.
func (v View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the review view.
func (v View) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case navigatedMsg:
		status := "Opened " + msg.title + " in admin"
		if msg.err != nil {
			log.Error().Err(msg.err).Msg("failed to open product")
			status = "Open failed: " + msg.err.Error()
		}
		if v.detail != nil {
			v.detail.SetStatus(status)
		} else {
			v.notice = status
		}
		return v, nil
	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return v, nil
}

// View renders the review step.
func (v View) View() string {
	var b strings.Builder
	b.WriteString(v.renderTable())
	b.WriteString("\n")
	b.WriteString(v.renderSummary())
	b.WriteString("\n")
	b.WriteString(components.ShortHelp(v.keys.shortHelp()...))
	return b.String()
}

// Overlay renders an open modal over background.
func (v View) Overlay(background string, width, height int) string {
	switch {
	case v.detail != nil:
		return v.detail.Overlay(background, width, height, "[↑/↓] scroll  [o] open in admin  [esc] close")
	case v.help != nil:
		return v.help.Overlay(background, width, height)
	default:
		return background
	}
}

// HasModal reports whether a modal is open.
func (v View) HasModal() bool {
	return v.detail != nil || v.help != nil
}

// SetSize updates the view dimensions.
func (v *View) SetSize(width, height int) {
	v.width = width
	v.height = height
}

// Controller exposes the underlying controller.
func (v View) Controller() *Controller {
	return v.ctrl
}

func (v View) handleKey(msg tea.KeyMsg) (View, tea.Cmd) {
	if v.detail != nil {
		switch msg.String() {
		case "esc", "enter", "q":
			v.detail = nil
		case "up", "k":
			v.detail.ScrollUp()
		case "down", "j":
			v.detail.ScrollDown()
		case "o":
			return v, v.navigate(v.detail.Record())
		default:
			v.detail.UpdateViewport(msg)
		}
		return v, nil
	}

	if v.help != nil {
		if key.Matches(msg, v.keys.Help) || msg.String() == "esc" || msg.String() == "q" {
			v.help = nil
		}
		return v, nil
	}

	v.notice = ""

	switch {
	case key.Matches(msg, v.keys.Up):
		v.ctrl.MoveUp(v.visibleRecords())
	case key.Matches(msg, v.keys.Down):
		v.ctrl.MoveDown(v.visibleRecords())
	case key.Matches(msg, v.keys.Sort):
		d := v.ctrl.Display()
		return v, displayChanged(v.ctrl.SetSort(nextSortColumn(d.SortColumnIndex), d.SortDirection))
	case key.Matches(msg, v.keys.Reverse):
		d := v.ctrl.Display()
		return v, displayChanged(v.ctrl.SetSort(d.SortColumnIndex, d.SortDirection.Flip()))
	case key.Matches(msg, v.keys.Descriptions):
		return v, displayChanged(v.ctrl.ToggleShowDescriptions())
	case key.Matches(msg, v.keys.Details):
		if r := v.ctrl.Current(); r != nil {
			modal := components.NewDetailModal(*r, orDefault(v.width, 80), orDefault(v.height, 24))
			v.detail = &modal
		}
	case key.Matches(msg, v.keys.Open):
		if r := v.ctrl.Current(); r != nil {
			return v, v.navigate(*r)
		}
	case key.Matches(msg, v.keys.Back):
		return v, func() tea.Msg { return BackMsg{} }
	case key.Matches(msg, v.keys.Help):
		v.help = components.NewHelpDialog("Confirm selection",
			components.HelpDialogSection{Title: "Keys", Bindings: v.keys.fullHelp()},
		)
	}
	return v, nil
}

func displayChanged(d catalog.DisplayState) tea.Cmd {
	return func() tea.Msg {
		return DisplayStateChangedMsg{Display: d}
	}
}

func (v View) navigate(r catalog.Record) tea.Cmd {
	nav := v.nav
	return func() tea.Msg {
		if nav == nil {
			return nil
		}
		ctx, cancel := context.WithTimeout(context.Background(), navigateTimeout)
		defer cancel()
		return navigatedMsg{title: r.Title, err: nav.NavigateToRecordDetail(ctx, r.ID)}
	}
}

func (v View) visibleRecords() int {
	lines := max(v.height-chromeLines, 1)
	if v.ctrl.Display().ShowDescriptions {
		lines /= 2
	}
	return max(lines, 1)
}

func cells(r catalog.Record) []string {
	img := styles.GlyphNoImage
	if r.HasImage() {
		img = styles.GlyphImage
	}
	return []string{img, styles.TextStrongStyle.Render(r.Title), r.ProductType, r.Vendor, r.TagList()}
}

func (v View) renderTable() string {
	if v.ctrl.Len() == 0 {
		return "  " + styles.TextMutedStyle.Render("No products selected")
	}

	d := v.ctrl.Display()
	table := producttable.Table{
		Columns: []producttable.Column{
			{Title: "", Width: 1},
			{Title: "Product", Sortable: true},
			{Title: "Type", Width: 16, Sortable: true},
			{Title: "Vendor", Width: 16, Sortable: true},
			{Title: "Tags"},
		},
		Rows:            producttable.Interleave(v.ctrl.Records(), cells, d.ShowDescriptions),
		DescriptionFrom: colProduct,
		SortColumn:      d.SortColumnIndex,
		SortDirection:   d.SortDirection,
		Cursor:          v.ctrl.Cursor(),
		Offset:          v.ctrl.Offset(),
		Limit:           v.visibleRecords(),
		Width:           orDefault(v.width, 80),
	}
	return table.Render()
}

func (v View) renderSummary() string {
	text := fmt.Sprintf("%d products selected.", v.ctrl.Len())
	if v.ctrl.Display().ShowDescriptions {
		text += " Product descriptions are shown."
	} else {
		text += " Product descriptions are hidden."
	}
	if v.notice != "" {
		text += " " + v.notice
	}
	return styles.SummaryStyle.Render(text)
}

func orDefault(n, def int) int {
	if n == 0 {
		return def
	}
	return n
}
