package styles

import "github.com/charmbracelet/huh"

// FormTheme returns a huh theme derived from the active palette.
func FormTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = t.Focused.Title.Foreground(Current.Primary).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(Current.Muted)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(Current.Secondary)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(Current.Success)
	t.Focused.FocusedButton = t.Focused.FocusedButton.Background(Current.Primary)
	t.Blurred.Title = t.Blurred.Title.Foreground(Current.Muted)

	return t
}
