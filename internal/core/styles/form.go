package styles

import (
	"image/color"

	"github.com/charmbracelet/huh"
	lipglossv1 "github.com/charmbracelet/lipgloss"
)

// FormTheme returns a huh theme derived from the active palette. Forms are
// rendered with lipgloss v1 styles so palette colors are converted to hex.
func FormTheme() *huh.Theme {
	t := huh.ThemeBase()

	var (
		fg        = formColor(ColorForeground)
		primary   = formColor(ColorPrimary)
		secondary = formColor(ColorSecondary)
		muted     = formColor(ColorMuted)
		bg        = formColor(ColorBackground)
		surface   = formColor(ColorSurface)
		errc      = formColor(ColorError)
	)

	t.Focused.Base = t.Focused.Base.BorderForeground(muted)
	t.Focused.Card = t.Focused.Base
	t.Focused.Title = t.Focused.Title.Foreground(primary).Bold(true)
	t.Focused.NoteTitle = t.Focused.NoteTitle.Foreground(primary).Bold(true).MarginBottom(1)
	t.Focused.Description = t.Focused.Description.Foreground(muted)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(errc)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(errc)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(secondary)
	t.Focused.Option = t.Focused.Option.Foreground(fg)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(secondary)
	t.Focused.FocusedButton = t.Focused.FocusedButton.Foreground(bg).Background(primary)
	t.Focused.BlurredButton = t.Focused.BlurredButton.Foreground(fg).Background(surface)
	t.Focused.Next = t.Focused.FocusedButton
	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(secondary)
	t.Focused.TextInput.Placeholder = t.Focused.TextInput.Placeholder.Foreground(muted)
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(secondary)

	t.Blurred = t.Focused
	t.Blurred.Base = t.Focused.Base.BorderStyle(lipglossv1.HiddenBorder())
	t.Blurred.Card = t.Blurred.Base
	t.Blurred.NextIndicator = lipglossv1.NewStyle()
	t.Blurred.PrevIndicator = lipglossv1.NewStyle()

	t.Group.Title = t.Focused.Title
	t.Group.Description = t.Focused.Description

	return t
}

// formColor converts a palette color to a lipgloss v1 color. Unset colors
// fall back to the terminal default.
func formColor(c color.Color) lipglossv1.TerminalColor {
	hex := colorHexPtr(c)
	if hex == nil {
		return lipglossv1.NoColor{}
	}
	return lipglossv1.Color(*hex)
}
