package selection

import (
	"slices"
	"sync/atomic"
	"time"

	"github.com/gtondello/ShopifyProductSearchApp/internal/core/catalog"
)

const (
	// DebounceInterval is the quiet period after the last keystroke before the
	// filter is committed.
	DebounceInterval = 500 * time.Millisecond
	// ClearDelay is the pause between clearing the filter and re-querying.
	ClearDelay = 100 * time.Millisecond
)

// CheckState is the value of a tri-state checkbox.
type CheckState int

const (
	Unchecked CheckState = iota
	Checked
	Indeterminate
)

// Timer is an armed deferred action. Only the most recently armed timer is
// live; firing any other token is a no-op.
type Timer struct {
	Token uint64
	Delay time.Duration
	Due   time.Time
}

// Request is a query tagged with its issue sequence number.
type Request struct {
	Seq   uint64
	Query catalog.Query
}

// ids issues request sequence numbers and timer tokens. They are unique
// across controllers, so a controller rebuilt from a snapshot never accepts a
// response or timer addressed to its predecessor.
var ids atomic.Uint64

type timerKind int

const (
	timerNone timerKind = iota
	timerCommit
	timerClear
)

// Controller manages the query, selection and display state of the product
// selection table. It contains pure data logic with no Bubble Tea dependencies.
type Controller struct {
	query     catalog.QueryState
	selection catalog.SelectionState
	display   catalog.DisplayState
	page      []catalog.Record

	seq     uint64 // last issued request
	loading bool
	stale   bool // restored page predates the query
	err     error

	pendingToken uint64
	pendingKind  timerKind

	cursor int
	offset int
}

// DefaultDisplay is the display state of a fresh selection table.
func DefaultDisplay() catalog.DisplayState {
	return catalog.DisplayState{
		SortColumnIndex:  2,
		SortDirection:    catalog.Ascending,
		ShowDescriptions: true,
	}
}

// NewController creates a controller with default state.
func NewController() *Controller {
	return &Controller{
		query:   catalog.DefaultQueryState(),
		display: DefaultDisplay(),
	}
}

// NewControllerFrom creates a controller restored from snap.
func NewControllerFrom(snap catalog.Snapshot) *Controller {
	c := NewController()
	c.Restore(snap)
	return c
}

// SetFilterText records the live filter text and re-arms the debounce timer.
func (c *Controller) SetFilterText(text string, now time.Time) Timer {
	c.query.FilterText = &text
	return c.arm(timerCommit, DebounceInterval, now)
}

// ClearFilter drops both the live and committed filter and arms the short
// re-query timer. Any pending debounce is cancelled.
func (c *Controller) ClearFilter(now time.Time) Timer {
	c.query.FilterText = nil
	c.query.CommittedFilter = nil
	return c.arm(timerClear, ClearDelay, now)
}

// Pending reports whether a timer is armed.
func (c *Controller) Pending() bool {
	return c.pendingKind != timerNone
}

// Fire handles an elapsed timer. It returns the query to issue when token is
// the live timer, and false for superseded timers.
func (c *Controller) Fire(token uint64) (Request, bool) {
	if c.pendingKind == timerNone || token != c.pendingToken {
		return Request{}, false
	}

	if c.pendingKind == timerCommit {
		c.query.CommittedFilter = clonePtr(c.query.FilterText)
	}
	c.pendingKind = timerNone
	c.pendingToken = 0

	return c.Begin(), true
}

// SetSort changes the server-side ordering and returns the re-query.
func (c *Controller) SetSort(column int, direction catalog.Direction) Request {
	c.query.SortKey = catalog.SortKeyForColumn(column)
	c.query.SortDescending = direction == catalog.Descending
	c.display.SortColumnIndex = column
	c.display.SortDirection = direction
	return c.Begin()
}

// Begin issues a new request for the committed query parameters. Results of
// earlier requests are discarded from now on.
func (c *Controller) Begin() Request {
	c.seq = ids.Add(1)
	c.loading = true
	return Request{Seq: c.seq, Query: c.query.Query()}
}

// Apply stores the result of request seq. It returns false and leaves the
// state untouched when seq is not the latest issued request.
func (c *Controller) Apply(seq uint64, records []catalog.Record, err error) bool {
	if seq != c.seq {
		return false
	}

	c.loading = false
	if err != nil {
		c.err = err
		return true
	}

	c.err = nil
	c.stale = false
	c.page = records
	c.prune()
	c.clampCursor()
	return true
}

// prune drops selected ids that are not on the current page.
func (c *Controller) prune() {
	kept := c.selection.SelectedIDs[:0:0]
	for _, id := range c.selection.SelectedIDs {
		if c.onPage(id) {
			kept = append(kept, id)
		}
	}
	c.selection.SelectedIDs = kept
}

// ToggleSelect adds or removes id. Ids that are not on the current page are
// ignored.
func (c *Controller) ToggleSelect(id string, checked bool) {
	if checked {
		if c.onPage(id) && !c.selection.Has(id) {
			c.selection.SelectedIDs = append(c.selection.SelectedIDs, id)
		}
		return
	}
	c.selection.SelectedIDs = slices.DeleteFunc(c.selection.SelectedIDs, func(s string) bool {
		return s == id
	})
}

// ToggleSelectAll selects every record on the current page, or clears the
// selection.
func (c *Controller) ToggleSelectAll(checked bool) {
	if !checked {
		c.selection.SelectedIDs = nil
		return
	}
	pageIDs := make([]string, 0, len(c.page))
	for _, r := range c.page {
		pageIDs = append(pageIDs, r.ID)
	}
	c.selection.SelectedIDs = pageIDs
}

// SelectAllState returns the tri-state value of the select-all checkbox.
func (c *Controller) SelectAllState() CheckState {
	n := c.selection.Len()
	switch {
	case n == 0:
		return Unchecked
	case n == len(c.page):
		return Checked
	default:
		return Indeterminate
	}
}

// ToggleShowDescriptions flips the description rows.
func (c *Controller) ToggleShowDescriptions() {
	c.display.ShowDescriptions = !c.display.ShowDescriptions
}

// Confirm returns the selected records in page order and a snapshot of the
// table. It returns false when nothing is selected.
func (c *Controller) Confirm() ([]catalog.Record, catalog.Snapshot, bool) {
	selected := c.SelectedRecords()
	if len(selected) == 0 {
		return nil, catalog.Snapshot{}, false
	}
	return selected, c.Snapshot(), true
}

// SelectedRecords returns the selected records in page order.
func (c *Controller) SelectedRecords() []catalog.Record {
	out := make([]catalog.Record, 0, c.selection.Len())
	for _, r := range c.page {
		if c.selection.Has(r.ID) {
			out = append(out, r)
		}
	}
	return out
}

// Snapshot captures the full table state.
func (c *Controller) Snapshot() catalog.Snapshot {
	return catalog.Snapshot{
		Query:     c.query,
		Selection: c.selection,
		Display:   c.display,
		Page:      c.page,
		Stale:     c.stale || c.loading || c.Pending(),
	}.Clone()
}

// Restore replaces the table state with snap. Pending timers and in-flight
// requests of this controller are abandoned; ResumeDebounce and ResumeQuery
// re-issue the work that was outstanding when snap was taken.
func (c *Controller) Restore(snap catalog.Snapshot) {
	snap = snap.Clone()
	c.query = snap.Query
	c.selection = snap.Selection
	c.display = snap.Display
	c.page = snap.Page
	c.stale = snap.Stale
	c.err = nil
	c.loading = false
	c.seq = ids.Add(1)
	c.pendingKind = timerNone
	c.pendingToken = 0
	c.cursor = 0
	c.offset = 0
}

// ResumeDebounce re-arms the debounce timer when the live filter is ahead of
// the committed one, so the committed filter converges again.
func (c *Controller) ResumeDebounce(now time.Time) (Timer, bool) {
	if c.FilterSettled() {
		return Timer{}, false
	}
	c.stale = false
	return c.arm(timerCommit, DebounceInterval, now), true
}

// ResumeQuery re-issues the query when the restored page predates it.
func (c *Controller) ResumeQuery() (Request, bool) {
	if !c.stale || c.Pending() {
		return Request{}, false
	}
	c.stale = false
	return c.Begin(), true
}

// Query returns the query state.
func (c *Controller) Query() catalog.QueryState {
	return c.query.Clone()
}

// Selection returns the selection state.
func (c *Controller) Selection() catalog.SelectionState {
	return c.selection.Clone()
}

// Display returns the display state.
func (c *Controller) Display() catalog.DisplayState {
	return c.display
}

// Page returns the last applied page.
func (c *Controller) Page() []catalog.Record {
	return c.page
}

// IsSelected reports whether id is selected.
func (c *Controller) IsSelected(id string) bool {
	return c.selection.Has(id)
}

// Loading reports whether the latest request is still in flight.
func (c *Controller) Loading() bool {
	return c.loading
}

// Err returns the error of the latest request, if it failed.
func (c *Controller) Err() error {
	return c.err
}

// FilterText returns the live filter text.
func (c *Controller) FilterText() string {
	if c.query.FilterText == nil {
		return ""
	}
	return *c.query.FilterText
}

// FilterSettled reports whether the committed filter has caught up with the
// live filter.
func (c *Controller) FilterSettled() bool {
	return c.query.TextValue() == c.query.CommittedValue()
}

// MoveUp moves the cursor up one record.
func (c *Controller) MoveUp(visible int) {
	if c.cursor > 0 {
		c.cursor--
		c.clampOffset(visible)
	}
}

// MoveDown moves the cursor down one record.
func (c *Controller) MoveDown(visible int) {
	if c.cursor < len(c.page)-1 {
		c.cursor++
		c.clampOffset(visible)
	}
}

// Cursor returns the index of the highlighted record.
func (c *Controller) Cursor() int {
	return c.cursor
}

// Offset returns the index of the first visible record.
func (c *Controller) Offset() int {
	return c.offset
}

// Current returns the highlighted record, or nil if the page is empty.
func (c *Controller) Current() *catalog.Record {
	if c.cursor < 0 || c.cursor >= len(c.page) {
		return nil
	}
	return &c.page[c.cursor]
}

// SetSize clamps the scroll offset after a size change.
func (c *Controller) SetSize(visible int) {
	c.clampOffset(visible)
}

func (c *Controller) arm(kind timerKind, delay time.Duration, now time.Time) Timer {
	c.pendingToken = ids.Add(1)
	c.pendingKind = kind
	return Timer{Token: c.pendingToken, Delay: delay, Due: now.Add(delay)}
}

func (c *Controller) onPage(id string) bool {
	for _, r := range c.page {
		if r.ID == id {
			return true
		}
	}
	return false
}

func (c *Controller) clampCursor() {
	if c.cursor >= len(c.page) {
		c.cursor = max(len(c.page)-1, 0)
	}
	if c.offset > c.cursor {
		c.offset = c.cursor
	}
}

func (c *Controller) clampOffset(visible int) {
	if visible < 1 {
		visible = 1
	}
	if c.cursor < c.offset {
		c.offset = c.cursor
	} else if c.cursor >= c.offset+visible {
		c.offset = c.cursor - visible + 1
	}

	maxOffset := max(len(c.page)-visible, 0)
	if c.offset > maxOffset {
		c.offset = maxOffset
	}
	if c.offset < 0 {
		c.offset = 0
	}
}

func clonePtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
