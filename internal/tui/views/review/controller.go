package review

import (
	"cmp"
	"slices"

	"github.com/gtondello/ShopifyProductSearchApp/internal/core/catalog"
)

// Column indexes of the review table.
const (
	colImage = iota
	colProduct
	colType
	colVendor
	colTags
)

var sortableColumns = []int{colProduct, colType, colVendor}

// DefaultDisplay is the display state on first entry to the review step.
func DefaultDisplay() catalog.DisplayState {
	return catalog.DisplayState{
		SortColumnIndex:  colProduct,
		SortDirection:    catalog.Ascending,
		ShowDescriptions: true,
	}
}

// Controller re-sorts a frozen record sequence in memory.
type Controller struct {
	frozen  []catalog.Record
	sorted  []catalog.Record
	display catalog.DisplayState

	cursor int
	offset int
}

// NewController creates a controller over records, seeded from display.
func NewController(records []catalog.Record, display catalog.DisplayState) *Controller {
	c := &Controller{frozen: slices.Clone(records), display: display}
	c.sorted = SortRecords(c.frozen, display.SortColumnIndex, display.SortDirection)
	return c
}

// SortRecords returns a stably sorted copy of records. Column 2 sorts by
// product type, column 3 by vendor and anything else by title. Strings are
// compared byte-wise.
func SortRecords(records []catalog.Record, column int, direction catalog.Direction) []catalog.Record {
	field := sortField(column)
	out := slices.Clone(records)
	slices.SortStableFunc(out, func(a, b catalog.Record) int {
		c := cmp.Compare(field(a), field(b))
		if direction == catalog.Descending {
			return -c
		}
		return c
	})
	return out
}

func sortField(column int) func(catalog.Record) string {
	switch column {
	case colType:
		return func(r catalog.Record) string { return r.ProductType }
	case colVendor:
		return func(r catalog.Record) string { return r.Vendor }
	default:
		return func(r catalog.Record) string { return r.Title }
	}
}

// SetSort re-sorts the records and returns the new display state.
func (c *Controller) SetSort(column int, direction catalog.Direction) catalog.DisplayState {
	c.display.SortColumnIndex = column
	c.display.SortDirection = direction
	c.sorted = SortRecords(c.frozen, column, direction)
	return c.display
}

// ToggleShowDescriptions flips the description rows and returns the new
// display state.
func (c *Controller) ToggleShowDescriptions() catalog.DisplayState {
	c.display.ShowDescriptions = !c.display.ShowDescriptions
	return c.display
}

// Records returns the records in display order.
func (c *Controller) Records() []catalog.Record {
	return c.sorted
}

// Display returns the display state.
func (c *Controller) Display() catalog.DisplayState {
	return c.display
}

// Len returns the number of records.
func (c *Controller) Len() int {
	return len(c.sorted)
}

// Current returns the highlighted record, or nil when empty.
func (c *Controller) Current() *catalog.Record {
	if c.cursor < 0 || c.cursor >= len(c.sorted) {
		return nil
	}
	return &c.sorted[c.cursor]
}

// Cursor returns the highlighted index.
func (c *Controller) Cursor() int { return c.cursor }

// Offset returns the first visible index.
func (c *Controller) Offset() int { return c.offset }

// MoveUp moves the cursor up.
func (c *Controller) MoveUp(visible int) {
	if c.cursor > 0 {
		c.cursor--
		c.clampOffset(visible)
	}
}

// MoveDown moves the cursor down.
func (c *Controller) MoveDown(visible int) {
	if c.cursor < len(c.sorted)-1 {
		c.cursor++
		c.clampOffset(visible)
	}
}

func (c *Controller) clampOffset(visible int) {
	visible = max(visible, 1)
	if c.cursor < c.offset {
		c.offset = c.cursor
	} else if c.cursor >= c.offset+visible {
		c.offset = c.cursor - visible + 1
	}
	c.offset = max(min(c.offset, len(c.sorted)-visible), 0)
}

func nextSortColumn(current int) int {
	for i, col := range sortableColumns {
		if col == current {
			return sortableColumns[(i+1)%len(sortableColumns)]
		}
	}
	return sortableColumns[0]
}
