// Package styles provides shared lipgloss styles for CLI and TUI components.
package styles

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Palette defines a minimal semantic theme palette.
type Palette struct {
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Surface    lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
}

// DefaultTheme is the name of the default theme.
const DefaultTheme = "tokyo-night"

// themes holds the built-in named palettes.
var themes = map[string]Palette{
	"tokyo-night": {
		Primary:    lipgloss.Color("#7aa2f7"),
		Secondary:  lipgloss.Color("#7dcfff"),
		Foreground: lipgloss.Color("#c0caf5"),
		Muted:      lipgloss.Color("#565f89"),
		Surface:    lipgloss.Color("#3b4261"),
		Success:    lipgloss.Color("#9ece6a"),
		Warning:    lipgloss.Color("#e0af68"),
		Error:      lipgloss.Color("#f7768e"),
	},
	"gruvbox": {
		Primary:    lipgloss.Color("#83a598"),
		Secondary:  lipgloss.Color("#8ec07c"),
		Foreground: lipgloss.Color("#ebdbb2"),
		Muted:      lipgloss.Color("#665c54"),
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

// GetPalette returns the named palette, or the default palette and false
// when the name is unknown.
func GetPalette(name string) (Palette, bool) {
	p, ok := themes[name]
	if !ok {
		return themes[DefaultTheme], false
	}
	return p, true
}

// Current is the active palette. SetTheme swaps it at startup before any
// styles are rendered.
var Current = themes[DefaultTheme]

// SetTheme sets the active palette and rebuilds the derived styles.
func SetTheme(p Palette) {
	Current = p
	rebuild()
}

// Derived styles used by the CLI and TUI. Rebuilt whenever the theme changes.
var (
	TitleStyle   lipgloss.Style
	SuccessStyle lipgloss.Style
	WarningStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	MutedStyle   lipgloss.Style
	DoneStyle    lipgloss.Style
	BlockedStyle lipgloss.Style
	CursorStyle  lipgloss.Style
)

func rebuild() {
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(Current.Primary)
	SuccessStyle = lipgloss.NewStyle().Foreground(Current.Success)
	WarningStyle = lipgloss.NewStyle().Foreground(Current.Warning)
	ErrorStyle = lipgloss.NewStyle().Foreground(Current.Error)
	MutedStyle = lipgloss.NewStyle().Foreground(Current.Muted)
	DoneStyle = lipgloss.NewStyle().Foreground(Current.Muted).Strikethrough(true)
	BlockedStyle = lipgloss.NewStyle().Foreground(Current.Warning).Italic(true)
	CursorStyle = lipgloss.NewStyle().Foreground(Current.Secondary).Bold(true)
}

func init() {
	rebuild()
}
