package selection

import (
	"strconv"

	"github.com/gtondello/ShopifyProductSearchApp/internal/core/catalog"
	"github.com/gtondello/ShopifyProductSearchApp/internal/core/styles"
	"github.com/gtondello/ShopifyProductSearchApp/internal/tui/components"
	"github.com/gtondello/ShopifyProductSearchApp/internal/tui/components/producttable"
)

// Column indexes of the selection table. Sort keys are derived from these by
// catalog.SortKeyForColumn.
const (
	colCheckbox = iota
	colImage
	colProduct
	colInventory
	colType
	colVendor
	colTags
)

var sortableColumns = []int{colProduct, colInventory, colType, colVendor}

func columns(state CheckState) []producttable.Column {
	return []producttable.Column{
		{Title: checkGlyph(state), Width: 3},
		{Title: "", Width: 1},
		{Title: "Product", Sortable: true},
		{Title: "Inventory", Width: 26, Sortable: true},
		{Title: "Type", Width: 14, Sortable: true},
		{Title: "Vendor", Width: 14, Sortable: true},
		{Title: "Tags"},
	}
}

func checkGlyph(state CheckState) string {
	switch state {
	case Checked:
		return styles.GlyphChecked
	case Indeterminate:
		return styles.GlyphIndeterminate
	default:
		return styles.GlyphUnchecked
	}
}

func imageGlyph(r catalog.Record) string {
	if r.HasImage() {
		return styles.GlyphImage
	}
	return styles.GlyphNoImage
}

func inventoryCell(r catalog.Record) string {
	text := components.InventoryText(r)
	if r.TotalInventory <= 0 {
		return styles.TextWarningStyle.Render(text)
	}
	return text
}

// cellsFor returns the cell builder for the current selection.
func cellsFor(isSelected func(id string) bool) producttable.CellFunc {
	return func(r catalog.Record) []string {
		check := styles.GlyphUnchecked
		if isSelected(r.ID) {
			check = styles.GlyphChecked
		}
		return []string{
			check,
			imageGlyph(r),
			styles.TextStrongStyle.Render(r.Title),
			inventoryCell(r),
			r.ProductType,
			r.Vendor,
			r.TagList(),
		}
	}
}

// nextSortColumn cycles through the sortable columns.
func nextSortColumn(current int) int {
	for i, c := range sortableColumns {
		if c == current {
			return sortableColumns[(i+1)%len(sortableColumns)]
		}
	}
	return sortableColumns[0]
}

func summaryText(selected, total int) string {
	if selected > 0 {
		return strconv.Itoa(selected) + " of " + strconv.Itoa(total) + " products selected."
	}
	return "Showing " + strconv.Itoa(total) + " products."
}
