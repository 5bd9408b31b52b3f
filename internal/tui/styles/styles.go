// ABOUTME: Shared lipgloss styles and theme palettes for the TUI
// ABOUTME: A Styles value is rebuilt whenever the theme preference changes

package styles

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/careervista/careervista-cli/internal/session"
)

// Palette is the set of colors one theme draws with.
type Palette struct {
	Name      string
	Primary   lipgloss.Color
	Accent    lipgloss.Color
	Secondary lipgloss.Color
	Warning   lipgloss.Color
	Danger    lipgloss.Color
	Info      lipgloss.Color
	Muted     lipgloss.Color
	Text      lipgloss.Color
	Surface   lipgloss.Color
}

var (
	Dark = Palette{
		Name:      "dark",
		Primary:   lipgloss.Color("#7C3AED"), // Purple
		Accent:    lipgloss.Color("#8B5CF6"),
		Secondary: lipgloss.Color("#10B981"), // Green
		Warning:   lipgloss.Color("#F59E0B"), // Amber
		Danger:    lipgloss.Color("#EF4444"), // Red
		Info:      lipgloss.Color("#3B82F6"), // Blue
		Muted:     lipgloss.Color("#6B7280"),
		Text:      lipgloss.Color("#F9FAFB"),
		Surface:   lipgloss.Color("#374151"),
	}

	Light = Palette{
		Name:      "light",
		Primary:   lipgloss.Color("#6D28D9"),
		Accent:    lipgloss.Color("#7C3AED"),
		Secondary: lipgloss.Color("#047857"),
		Warning:   lipgloss.Color("#B45309"),
		Danger:    lipgloss.Color("#B91C1C"),
		Info:      lipgloss.Color("#1D4ED8"),
		Muted:     lipgloss.Color("#4B5563"),
		Text:      lipgloss.Color("#111827"),
		Surface:   lipgloss.Color("#D1D5DB"),
	}
)

// PaletteFor picks the palette for a theme. "system" follows the
// terminal background.
func PaletteFor(t session.Theme, darkBackground bool) Palette {
	switch t {
	case session.ThemeLight:
		return Light
	case session.ThemeDark:
		return Dark
	}
	if darkBackground {
		return Dark
	}
	return Light
}

// Styles are the rendered styles for one palette.
type Styles struct {
	Palette Palette

	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	OK          lipgloss.Style
	Warn        lipgloss.Style
	Error       lipgloss.Style
	Info        lipgloss.Style
	Panel       lipgloss.Style
	ActivePanel lipgloss.Style
	Help        lipgloss.Style
	Key         lipgloss.Style
	Label       lipgloss.Style
	Value       lipgloss.Style
	Border      lipgloss.Style
	Selected    lipgloss.Style
	Link        lipgloss.Style
}

// New builds the style set for p.
func New(p Palette) Styles {
	return Styles{
		Palette: p,

		Title:    lipgloss.NewStyle().Bold(true).Foreground(p.Primary).MarginBottom(1),
		Subtitle: lipgloss.NewStyle().Foreground(p.Muted).MarginBottom(1),

		OK:    lipgloss.NewStyle().Foreground(p.Secondary).Bold(true),
		Warn:  lipgloss.NewStyle().Foreground(p.Warning).Bold(true),
		Error: lipgloss.NewStyle().Foreground(p.Danger).Bold(true),
		Info:  lipgloss.NewStyle().Foreground(p.Info),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Muted).
			Padding(1, 2),
		ActivePanel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Primary).
			Padding(1, 2),

		Help:     lipgloss.NewStyle().Foreground(p.Muted).MarginTop(1),
		Key:      lipgloss.NewStyle().Foreground(p.Accent).Bold(true),
		Label:    lipgloss.NewStyle().Foreground(p.Muted),
		Value:    lipgloss.NewStyle().Foreground(p.Text).Bold(true),
		Border:   lipgloss.NewStyle().Foreground(p.Muted),
		Selected: lipgloss.NewStyle().Foreground(p.Primary).Bold(true),
		Link:     lipgloss.NewStyle().Foreground(p.Info).Underline(true),
	}
}

// Huh returns a huh theme drawn from the same palette, so embedded forms
// match the rest of the screen.
func (s Styles) Huh() *huh.Theme {
	p := s.Palette
	t := huh.ThemeBase()

	t.Group.Title = lipgloss.NewStyle().Foreground(p.Primary).Bold(true).MarginBottom(1)
	t.Group.Description = lipgloss.NewStyle().Foreground(p.Muted).MarginBottom(1)

	t.Focused.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(p.Primary)
	t.Focused.Title = lipgloss.NewStyle().Foreground(p.Accent).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(p.Muted)
	t.Focused.ErrorIndicator = lipgloss.NewStyle().Foreground(p.Danger).SetString(" *")
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(p.Danger)

	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(p.Primary).SetString("> ")
	t.Focused.Option = lipgloss.NewStyle().Foreground(p.Text)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(p.Primary).Bold(true)

	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(p.Primary)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(p.Muted)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(p.Primary)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(p.Text)

	t.Blurred = t.Focused
	t.Blurred.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.HiddenBorder()).
		BorderLeft(true)
	t.Blurred.Title = lipgloss.NewStyle().Foreground(p.Muted)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(p.Muted).SetString("  ")
	t.Blurred.Option = lipgloss.NewStyle().Foreground(p.Muted)

	return t
}
