package selection

import (
	"context"
	"strings"
	"time"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/rs/zerolog/log"

	"github.com/gtondello/ShopifyProductSearchApp/internal/core/catalog"
	"github.com/gtondello/ShopifyProductSearchApp/internal/core/styles"
	"github.com/gtondello/ShopifyProductSearchApp/internal/tui/components"
	"github.com/gtondello/ShopifyProductSearchApp/internal/tui/components/producttable"
)

const (
	queryTimeout = 10 * time.Second
	// filter line, table header, summary box, footer, help line
	chromeLines = 8
)

// Navigator opens the admin page of a product.
type Navigator interface {
	NavigateToRecordDetail(ctx context.Context, id string) error
}

// ConfirmedMsg is emitted when the user continues with a non-empty selection.
type ConfirmedMsg struct {
	Records  []catalog.Record
	Snapshot catalog.Snapshot
}

type filterTimerMsg struct {
	token uint64
}

type pageLoadedMsg struct {
	seq     uint64
	records []catalog.Record
	err     error
}

type navigatedMsg struct {
	title string
	err   error
}

// View is the Bubble Tea sub-model for the product selection step.
type View struct {
	ctrl     *Controller
	source   catalog.Source
	nav      Navigator
	keys     keyMap
	input    textinput.Model
	spinner  spinner.Model
	detail   *components.DetailModal
	help     *components.HelpDialog
	notice   string
	restored bool
	now      func() time.Time
	width    int
	height   int
}

// New creates a selection view with default state.
func New(source catalog.Source, nav Navigator) View {
	return newView(NewController(), source, nav, false)
}

// Restore creates a selection view from a snapshot taken by Confirm.
func Restore(snap catalog.Snapshot, source catalog.Source, nav Navigator) View {
	v := newView(NewControllerFrom(snap), source, nav, true)
	v.input.SetValue(v.ctrl.FilterText())
	return v
}

func newView(ctrl *Controller, source catalog.Source, nav Navigator, restored bool) View {
	input := textinput.New()
	input.Prompt = "Search: "
	input.Placeholder = "Filter products by title, type or vendor"
	inputStyles := textinput.DefaultStyles(true)
	inputStyles.Focused.Prompt = styles.TextPrimaryBoldStyle
	inputStyles.Blurred.Prompt = styles.TextMutedStyle
	inputStyles.Cursor.Color = styles.ColorPrimary
	input.SetStyles(inputStyles)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.TextPrimaryStyle

	return View{
		ctrl:     ctrl,
		source:   source,
		nav:      nav,
		keys:     defaultKeyMap(),
		input:    input,
		spinner:  s,
		restored: restored,
		now:      time.Now,
	}
}

// Init loads the first page. Restored views render their snapshot page and
// only pick up a debounce or query that was outstanding when it was taken.
func (v View) Init() tea.Cmd {
	if !v.restored {
		return tea.Batch(v.spinner.Tick, v.load(v.ctrl.Begin()))
	}
	if timer, ok := v.ctrl.ResumeDebounce(v.now()); ok {
		return scheduleTimer(timer)
	}
	if req, ok := v.ctrl.ResumeQuery(); ok {
		return tea.Batch(v.spinner.Tick, v.load(req))
	}
	return nil
}

// Update handles messages for the selection view.
func (v View) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case filterTimerMsg:
		req, ok := v.ctrl.Fire(msg.token)
		if !ok {
			return v, nil
		}
		return v, tea.Batch(v.spinner.Tick, v.load(req))
	case pageLoadedMsg:
		return v.handlePageLoaded(msg)
	case navigatedMsg:
		return v.handleNavigated(msg)
	case spinner.TickMsg:
		if !v.ctrl.Loading() {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd
	case tea.KeyMsg:
		return v.handleKey(msg)
	}

	if v.input.Focused() {
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}
	return v, nil
}

// View renders the selection step.
func (v View) View() string {
	var b strings.Builder

	b.WriteString(v.renderFilterLine())
	b.WriteString("\n")
	b.WriteString(v.renderBody())
	b.WriteString("\n")
	b.WriteString(v.renderSummary())
	b.WriteString("\n")
	b.WriteString(v.renderFooter())
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

// HasEditorFocus reports whether key presses go to the search input.
func (v View) HasEditorFocus() bool {
	return v.input.Focused()
}

// HasModal reports whether a modal is open.
func (v View) HasModal() bool {
	return v.detail != nil || v.help != nil
}

// SetSize updates the view dimensions.
func (v *View) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.input.SetWidth(max(width-lipgloss.Width(v.input.Prompt)-4, 10))
	v.ctrl.SetSize(v.visibleRecords())
}

// Controller exposes the underlying controller.
func (v View) Controller() *Controller {
	return v.ctrl
}

func (v View) handlePageLoaded(msg pageLoadedMsg) (View, tea.Cmd) {
	if !v.ctrl.Apply(msg.seq, msg.records, msg.err) {
		log.Debug().Uint64("seq", msg.seq).Msg("dropping stale product page")
		return v, nil
	}
	if msg.err != nil {
		log.Warn().Err(msg.err).Uint64("seq", msg.seq).Msg("product query failed")
	}
	v.ctrl.SetSize(v.visibleRecords())
	return v, nil
}

func (v View) handleNavigated(msg navigatedMsg) (View, tea.Cmd) {
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
}

func (v View) handleKey(msg tea.KeyMsg) (View, tea.Cmd) {
	switch {
	case v.detail != nil:
		return v.handleDetailKey(msg)
	case v.help != nil:
		if key.Matches(msg, v.keys.Help) || msg.String() == "esc" || msg.String() == "q" {
			v.help = nil
		}
		return v, nil
	case v.input.Focused():
		return v.handleInputKey(msg)
	}
	return v.handleNormalKey(msg)
}

func (v View) handleDetailKey(msg tea.KeyMsg) (View, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter", "q":
		v.detail = nil
		return v, nil
	case "up", "k":
		v.detail.ScrollUp()
		return v, nil
	case "down", "j":
		v.detail.ScrollDown()
		return v, nil
	case "o":
		return v, v.navigate(v.detail.Record())
	default:
		v.detail.UpdateViewport(msg)
		return v, nil
	}
}

func (v View) handleInputKey(msg tea.KeyMsg) (View, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter", "down":
		v.input.Blur()
		return v, nil
	}

	before := v.input.Value()
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	if v.input.Value() == before {
		return v, cmd
	}

	timer := v.ctrl.SetFilterText(v.input.Value(), v.now())
	return v, tea.Batch(cmd, scheduleTimer(timer))
}

func (v View) handleNormalKey(msg tea.KeyMsg) (View, tea.Cmd) {
	v.notice = ""

	switch {
	case key.Matches(msg, v.keys.Filter):
		cmd := v.input.Focus()
		return v, cmd
	case key.Matches(msg, v.keys.ClearFilter):
		v.input.SetValue("")
		return v, scheduleTimer(v.ctrl.ClearFilter(v.now()))
	case key.Matches(msg, v.keys.Up):
		v.ctrl.MoveUp(v.visibleRecords())
	case key.Matches(msg, v.keys.Down):
		v.ctrl.MoveDown(v.visibleRecords())
	case key.Matches(msg, v.keys.Toggle):
		if r := v.ctrl.Current(); r != nil {
			v.ctrl.ToggleSelect(r.ID, !v.ctrl.IsSelected(r.ID))
		}
	case key.Matches(msg, v.keys.SelectAll):
		v.ctrl.ToggleSelectAll(v.ctrl.SelectAllState() != Checked)
	case key.Matches(msg, v.keys.Sort):
		d := v.ctrl.Display()
		return v, tea.Batch(v.spinner.Tick, v.load(v.ctrl.SetSort(nextSortColumn(d.SortColumnIndex), d.SortDirection)))
	case key.Matches(msg, v.keys.Reverse):
		d := v.ctrl.Display()
		return v, tea.Batch(v.spinner.Tick, v.load(v.ctrl.SetSort(d.SortColumnIndex, d.SortDirection.Flip())))
	case key.Matches(msg, v.keys.Descriptions):
		v.ctrl.ToggleShowDescriptions()
		v.ctrl.SetSize(v.visibleRecords())
	case key.Matches(msg, v.keys.Details):
		if r := v.ctrl.Current(); r != nil {
			modal := components.NewDetailModal(*r, v.modalWidth(), v.modalHeight())
			v.detail = &modal
		}
	case key.Matches(msg, v.keys.Open):
		if r := v.ctrl.Current(); r != nil {
			return v, v.navigate(*r)
		}
	case key.Matches(msg, v.keys.Continue):
		return v.confirm()
	case key.Matches(msg, v.keys.Help):
		v.help = components.NewHelpDialog("Select products",
			components.HelpDialogSection{Title: "Keys", Bindings: v.keys.fullHelp()},
		)
	}
	return v, nil
}

func (v View) confirm() (View, tea.Cmd) {
	records, snap, ok := v.ctrl.Confirm()
	if !ok {
		v.notice = "Please select some products to continue"
		return v, nil
	}
	return v, func() tea.Msg {
		return ConfirmedMsg{Records: records, Snapshot: snap}
	}
}

func (v View) load(req Request) tea.Cmd {
	source := v.source
	return func() tea.Msg {
		if source == nil {
			return pageLoadedMsg{seq: req.Seq}
		}
		ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
		defer cancel()

		start := time.Now()
		records, err := source.Products(ctx, req.Query)
		log.Debug().
			Uint64("seq", req.Seq).
			Stringer("query", req.Query).
			Int("count", len(records)).
			Dur("took", time.Since(start)).
			Msg("product query finished")
		return pageLoadedMsg{seq: req.Seq, records: records, err: err}
	}
}

func (v View) navigate(r catalog.Record) tea.Cmd {
	nav := v.nav
	return func() tea.Msg {
		if nav == nil {
			return nil
		}
		ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
		defer cancel()
		return navigatedMsg{title: r.Title, err: nav.NavigateToRecordDetail(ctx, r.ID)}
	}
}

func scheduleTimer(t Timer) tea.Cmd {
	return tea.Tick(t.Delay, func(time.Time) tea.Msg {
		return filterTimerMsg{token: t.Token}
	})
}

func (v View) visibleRecords() int {
	lines := max(v.height-chromeLines, 1)
	if v.ctrl.Display().ShowDescriptions {
		lines /= 2
	}
	return max(lines, 1)
}

func (v View) modalWidth() int {
	if v.width == 0 {
		return 80
	}
	return v.width
}

func (v View) modalHeight() int {
	if v.height == 0 {
		return 24
	}
	return v.height
}

func (v View) renderFilterLine() string {
	line := v.input.View()
	if !v.ctrl.FilterSettled() {
		line += "  " + styles.TextMutedStyle.Render("(waiting for input)")
	}
	return styles.FilterLineStyle.Render(line)
}

func (v View) renderBody() string {
	if v.ctrl.Loading() {
		return "  " + v.spinner.View() + " " + styles.TextMutedStyle.Render("Loading products...")
	}
	if err := v.ctrl.Err(); err != nil {
		return "  " + styles.TextErrorStyle.Render(err.Error())
	}
	if len(v.ctrl.Page()) == 0 {
		return "  " + styles.TextMutedStyle.Render("No products found")
	}

	display := v.ctrl.Display()
	table := producttable.Table{
		Columns:         columns(v.ctrl.SelectAllState()),
		Rows:            producttable.Interleave(v.ctrl.Page(), cellsFor(v.ctrl.IsSelected), display.ShowDescriptions),
		DescriptionFrom: colProduct,
		SortColumn:      display.SortColumnIndex,
		SortDirection:   display.SortDirection,
		Cursor:          v.ctrl.Cursor(),
		Selected: func(i int) bool {
			return v.ctrl.IsSelected(v.ctrl.Page()[i].ID)
		},
		Offset: v.ctrl.Offset(),
		Limit:  v.visibleRecords(),
		Width:  v.modalWidth(),
	}
	return table.Render()
}

func (v View) renderSummary() string {
	text := summaryText(v.ctrl.Selection().Len(), len(v.ctrl.Page()))
	if v.ctrl.Display().ShowDescriptions {
		text += " Product descriptions are shown."
	} else {
		text += " Product descriptions are hidden."
	}
	return styles.SummaryStyle.Render(text)
}

func (v View) renderFooter() string {
	if v.ctrl.Selection().Len() == 0 {
		notice := v.notice
		if notice == "" {
			notice = "Please select some products to continue"
		}
		return " " + styles.ButtonOffStyle.Render("Continue") + "  " + styles.TextWarningStyle.Render(notice)
	}

	footer := " " + styles.ButtonStyle.Render("Continue")
	if v.notice != "" {
		footer += "  " + styles.TextMutedStyle.Render(v.notice)
	}
	return footer
}
