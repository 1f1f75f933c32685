package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/ragdeck/ragdeck/internal/prefs"
)

// Theme defines colors for the UI.
type Theme struct {
	Name string

	Background string
	Surface    string

	Border      string
	BorderFocus string

	SelectionBg   string
	SelectionText string

	Text    string
	Muted   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		AccentText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),

		SuccessText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),

		WarningText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),

		DangerText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		InfoText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Info)),

		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),

		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.SelectionText)),

		Pane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)).
			Padding(0, 1),

		PaneFocus: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.BorderFocus)).
			Padding(0, 1),

		Modal: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color(t.BorderFocus)).
			Padding(1, 2),
	}
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	Header   lipgloss.Style
	Footer   lipgloss.Style
	Selected lipgloss.Style

	Pane      lipgloss.Style
	PaneFocus lipgloss.Style
	Modal     lipgloss.Style
}

var themes = map[string]Theme{
	"Dracula":  draculaTheme(),
	"Light":    lightTheme(),
	"Contrast": contrastTheme(),
}

var themeOrder = []string{"Dracula", "Light", "Contrast"}

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return draculaTheme()
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	return themeOrder
}

// ThemeForPrefs resolves the active theme. The high-contrast
// preference wins over the named theme.
func ThemeForPrefs(p prefs.Prefs) Theme {
	if p.HighContrast {
		return contrastTheme()
	}
	return GetTheme(p.Theme)
}

func draculaTheme() Theme {
	// Dracula palette: https://draculatheme.com/contribute
	return Theme{
		Name: "Dracula",

		Background: "#282a36",
		Surface:    "#343746",

		Border:      "#44475a",
		BorderFocus: "#bd93f9",

		SelectionBg:   "#44475a",
		SelectionText: "#f8f8f2",

		Text:    "#f8f8f2",
		Muted:   "#6272a4",
		Accent:  "#bd93f9",
		Success: "#50fa7b",
		Warning: "#f1fa8c",
		Danger:  "#ff5555",
		Info:    "#8be9fd",
	}
}

func lightTheme() Theme {
	return Theme{
		Name: "Light",

		Background: "#fafafa",
		Surface:    "#eeeeee",

		Border:      "#d0d0d0",
		BorderFocus: "#6200aa",

		SelectionBg:   "#d7d7ff",
		SelectionText: "#1a1a1a",

		Text:    "#1a1a1a",
		Muted:   "#6a6a6a",
		Accent:  "#6200aa",
		Success: "#1a7f37",
		Warning: "#9a6700",
		Danger:  "#cf222e",
		Info:    "#0969da",
	}
}

func contrastTheme() Theme {
	// High-contrast palette for low-vision use. Pure black and white
	// with saturated accents.
	return Theme{
		Name: "Contrast",

		Background: "#000000",
		Surface:    "#000000",

		Border:      "#ffffff",
		BorderFocus: "#ffff00",

		SelectionBg:   "#ffffff",
		SelectionText: "#000000",

		Text:    "#ffffff",
		Muted:   "#c0c0c0",
		Accent:  "#ffff00",
		Success: "#00ff00",
		Warning: "#ffff00",
		Danger:  "#ff4040",
		Info:    "#00ffff",
	}
}
