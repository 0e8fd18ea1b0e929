package producttable

import (
	"strings"

	lipgloss "charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/gtondello/ShopifyProductSearchApp/internal/core/catalog"
	"github.com/gtondello/ShopifyProductSearchApp/internal/core/styles"
)

const (
	cellGap     = 2
	cursorWidth = 2
	ellipsis    = "…"
)

// Column describes one table column. A Width of zero makes the column absorb
// whatever space the fixed columns leave.
type Column struct {
	Title    string
	Width    int
	Sortable bool
	Right    bool
}

// Table is a render-only description of a product table.
type Table struct {
	Columns []Column
	Rows    []Row

	// DescriptionFrom is the first column a description row spans.
	DescriptionFrom int

	SortColumn    int
	SortDirection catalog.Direction

	// Cursor is the highlighted record index, or -1.
	Cursor   int
	Selected func(index int) bool

	// Offset and Limit window the table by record index. A zero Limit
	// renders every record.
	Offset int
	Limit  int

	Width int
}

// Render returns the header and every row inside the record window.
func (t Table) Render() string {
	widths := t.columnWidths()

	lines := make([]string, 0, len(t.Rows)+1)
	lines = append(lines, t.renderHeader(widths))

	for _, row := range t.Rows {
		if row.Index < t.Offset {
			continue
		}
		if t.Limit > 0 && row.Index >= t.Offset+t.Limit {
			break
		}
		lines = append(lines, t.renderRow(row, widths))
	}

	return strings.Join(lines, "\n")
}

func (t Table) renderHeader(widths []int) string {
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", cursorWidth))

	for i, col := range t.Columns {
		if i > 0 {
			b.WriteString(strings.Repeat(" ", cellGap))
		}

		title := col.Title
		style := styles.TableHeaderStyle
		if col.Sortable && i == t.SortColumn {
			glyph := styles.GlyphSortAsc
			if t.SortDirection == catalog.Descending {
				glyph = styles.GlyphSortDesc
			}
			title += " " + glyph
			style = styles.TableHeaderSortedStyle
		}
		b.WriteString(style.Render(fit(title, widths[i], col.Right)))
	}

	return b.String()
}

func (t Table) renderRow(row Row, widths []int) string {
	prefix := strings.Repeat(" ", cursorWidth)
	if row.Index == t.Cursor {
		prefix = styles.TableCursorStyle.Render(styles.GlyphCursor) + " "
	}

	if row.Kind == RowDescription {
		indent := 0
		for i := 0; i < t.DescriptionFrom && i < len(widths); i++ {
			indent += widths[i] + cellGap
		}
		span := max(t.contentWidth(widths)-indent, 1)
		text := row.Text
		if text == "" {
			text = "No description"
		}
		return prefix + strings.Repeat(" ", indent) + styles.TableDescriptionStyle.Render(fit(text, span, false))
	}

	cells := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		var v string
		if i < len(row.Cells) {
			v = row.Cells[i]
		}
		cells[i] = fit(v, widths[i], col.Right)
	}
	line := strings.Join(cells, strings.Repeat(" ", cellGap))

	if t.Selected != nil && t.Selected(row.Index) {
		line = styles.TableRowSelectedStyle.Render(line)
	}
	return prefix + line
}

// columnWidths resolves flexible columns against the table width.
func (t Table) columnWidths() []int {
	widths := make([]int, len(t.Columns))
	fixed, flex := 0, 0
	for i, col := range t.Columns {
		widths[i] = col.Width
		if col.Width == 0 {
			flex++
		}
		fixed += col.Width
	}

	if flex == 0 {
		return widths
	}

	gaps := cellGap * max(len(t.Columns)-1, 0)
	remaining := t.Width - cursorWidth - gaps - fixed
	share := max(remaining/flex, minFlexWidth)
	for i, col := range t.Columns {
		if col.Width == 0 {
			widths[i] = share
		}
	}
	return widths
}

const minFlexWidth = 8

func (t Table) contentWidth(widths []int) int {
	total := cellGap * max(len(widths)-1, 0)
	for _, w := range widths {
		total += w
	}
	return total
}

// fit truncates s to width cells and pads it to exactly width.
func fit(s string, width int, right bool) string {
	if width <= 0 {
		return ""
	}
	s = ansi.Truncate(s, width, ellipsis)
	pad := width - lipgloss.Width(s)
	if pad <= 0 {
		return s
	}
	if right {
		return strings.Repeat(" ", pad) + s
	}
	return s + strings.Repeat(" ", pad)
}
