package styles

// Table glyphs.
var (
	GlyphChecked       = "[x]"
	GlyphUnchecked     = "[ ]"
	GlyphIndeterminate = "[-]"
	GlyphImage         = "▣"
	GlyphNoImage       = "·"
	GlyphCursor        = "┃"
	GlyphSortAsc       = "▲"
	GlyphSortDesc      = "▼"
	GlyphSeparator     = "›"
)
