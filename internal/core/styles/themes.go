package styles

import (
	"image/color"
	"sort"

	lipgloss "charm.land/lipgloss/v2"
)

// Palette defines a minimal semantic theme palette.
type Palette struct {
	Primary    color.Color
	Secondary  color.Color
	Foreground color.Color
	Muted      color.Color
	Background color.Color
	Surface    color.Color
	Success    color.Color
	Warning    color.Color
	Error      color.Color
}

// DefaultTheme is the name of the default theme.
const DefaultTheme = "polaris"

// themes holds the built-in named palettes.
var themes = map[string]Palette{
	"polaris": {
		Primary:    lipgloss.Color("#95bf47"), // shopify green
		Secondary:  lipgloss.Color("#5e8e3e"),
		Foreground: lipgloss.Color("#e3e3e3"),
		Muted:      lipgloss.Color("#8a8a8a"),
		Background: lipgloss.Color("#1a1a1a"),
		Surface:    lipgloss.Color("#303030"),
		Success:    lipgloss.Color("#29845a"),
		Warning:    lipgloss.Color("#ffb800"),
		Error:      lipgloss.Color("#e51c00"),
	},
	"polaris-light": {
		Primary:    lipgloss.Color("#008060"),
		Secondary:  lipgloss.Color("#2c6ecb"),
		Foreground: lipgloss.Color("#202223"),
		Muted:      lipgloss.Color("#6d7175"),
		Background: lipgloss.Color("#f6f6f7"),
		Surface:    lipgloss.Color("#e1e3e5"),
		Success:    lipgloss.Color("#007f5f"),
		Warning:    lipgloss.Color("#b98900"),
		Error:      lipgloss.Color("#d72c0d"),
	},
	"gruvbox": {
		Primary:    lipgloss.Color("#83a598"),
		Secondary:  lipgloss.Color("#8ec07c"),
		Foreground: lipgloss.Color("#ebdbb2"),
		Muted:      lipgloss.Color("#665c54"),
		Background: lipgloss.Color("#282828"),
		Surface:    lipgloss.Color("#3c3836"),
		Success:    lipgloss.Color("#b8bb26"),
		Warning:    lipgloss.Color("#fabd2f"),
		Error:      lipgloss.Color("#fb4934"),
	},
}

// ThemeNames returns sorted names of all built-in themes.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetPalette returns the palette for the given theme name.
func GetPalette(name string) (Palette, bool) {
	p, ok := themes[name]
	return p, ok
}
