package producttable

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gtondello/ShopifyProductSearchApp/internal/core/catalog"
)

func titleCells(r catalog.Record) []string {
	return []string{r.Title, r.Vendor}
}

func sample() []catalog.Record {
	return []catalog.Record{
		{ID: "1", Title: "Bag", Vendor: "Acme", DescriptionHTML: "<p>Canvas tote</p>"},
		{ID: "2", Title: "Hat", Vendor: "Zinc", DescriptionHTML: "<p>Wool <b>beanie</b></p>"},
		{ID: "3", Title: "Mug", Vendor: "Acme"},
	}
}

func TestInterleave_RowCounts(t *testing.T) {
	records := sample()

	hidden := Interleave(records, titleCells, false)
	assert.Len(t, hidden, len(records))

	shown := Interleave(records, titleCells, true)
	assert.Len(t, shown, 2*len(records))

	assert.Empty(t, Interleave(nil, titleCells, true))
}

func TestInterleave_DescriptionFollowsOwner(t *testing.T) {
	rows := Interleave(sample(), titleCells, true)

	for i := 0; i < len(rows); i += 2 {
		primary, desc := rows[i], rows[i+1]
		assert.Equal(t, RowPrimary, primary.Kind)
		assert.Equal(t, RowDescription, desc.Kind)
		assert.Equal(t, primary.Index, desc.Index)
		assert.Equal(t, i/2, primary.Index)
	}

	assert.Equal(t, "Wool beanie", rows[3].Text)
	assert.Equal(t, []string{"Hat", "Zinc"}, rows[2].Cells)
}

func TestInterleave_RecomputedAfterReorder(t *testing.T) {
	records := sample()
	before := Interleave(records, titleCells, true)

	reversed := []catalog.Record{records[2], records[1], records[0]}
	after := Interleave(reversed, titleCells, true)

	assert.Equal(t, "Canvas tote", before[1].Text)
	assert.Equal(t, "Canvas tote", after[5].Text)
	assert.Equal(t, 2, after[5].Index)
}

func newTable(show bool) Table {
	return Table{
		Columns: []Column{
			{Title: "Product", Width: 10, Sortable: true},
			{Title: "Vendor", Width: 8, Sortable: true},
		},
		Rows:            Interleave(sample(), titleCells, show),
		DescriptionFrom: 1,
		SortColumn:      0,
		SortDirection:   catalog.Ascending,
		Cursor:          -1,
		Width:           40,
	}
}

func plainLines(s string) []string {
	return strings.Split(ansi.Strip(s), "\n")
}

func TestTable_Render(t *testing.T) {
	t.Run("header shows sort direction", func(t *testing.T) {
		tbl := newTable(false)
		lines := plainLines(tbl.Render())
		assert.Contains(t, lines[0], "Product ▲")

		tbl.SortColumn = 1
		tbl.SortDirection = catalog.Descending
		lines = plainLines(tbl.Render())
		assert.Contains(t, lines[0], "Vendor ▼")
		assert.NotContains(t, lines[0], "▲")
	})

	t.Run("line per row plus header", func(t *testing.T) {
		assert.Len(t, plainLines(newTable(false).Render()), 4)
		assert.Len(t, plainLines(newTable(true).Render()), 7)
	})

	t.Run("description indented past leading columns", func(t *testing.T) {
		lines := plainLines(newTable(true).Render())
		require.Len(t, lines, 7)
		assert.True(t, strings.HasPrefix(lines[2], strings.Repeat(" ", cursorWidth+10+cellGap)+"Canvas tote"), lines[2])
		assert.Contains(t, lines[6], "No description")
	})

	t.Run("cursor marks the record", func(t *testing.T) {
		tbl := newTable(false)
		tbl.Cursor = 1
		lines := plainLines(tbl.Render())
		assert.True(t, strings.HasPrefix(lines[2], "┃ Hat"), lines[2])
		assert.True(t, strings.HasPrefix(lines[1], "  Bag"), lines[1])
	})

	t.Run("window by record", func(t *testing.T) {
		tbl := newTable(true)
		tbl.Offset = 1
		tbl.Limit = 1
		lines := plainLines(tbl.Render())
		require.Len(t, lines, 3)
		assert.Contains(t, lines[1], "Hat")
		assert.Contains(t, lines[2], "Wool beanie")
	})
}

func TestFit(t *testing.T) {
	assert.Equal(t, "ab   ", fit("ab", 5, false))
	assert.Equal(t, "   ab", fit("ab", 5, true))
	assert.Equal(t, "abcd…", fit("abcdefgh", 5, false))
	assert.Equal(t, "", fit("abc", 0, false))
}

func TestTable_FlexColumns(t *testing.T) {
	tbl := Table{
		Columns: []Column{{Title: "A", Width: 4}, {Title: "B"}},
		Width:   30,
	}
	widths := tbl.columnWidths()
	assert.Equal(t, []int{4, 30 - cursorWidth - cellGap - 4}, widths)

	tbl.Width = 5
	assert.Equal(t, minFlexWidth, tbl.columnWidths()[1])
}
