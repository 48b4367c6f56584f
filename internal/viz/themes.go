package viz

import "github.com/charmbracelet/lipgloss"

// Theme colors the side panel and the canvas frame. Curve colors always come
// from the category palette.
type Theme struct {
	Name    string
	Title   lipgloss.Color
	Accent  lipgloss.Color
	Border  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Warning lipgloss.Color
}

var (
	ThemeInk = Theme{
		Name:    "ink",
		Title:   lipgloss.Color("#fdb913"),
		Accent:  lipgloss.Color("#008585"),
		Border:  lipgloss.Color("#39515b"),
		Text:    lipgloss.Color("#e8e8e8"),
		Muted:   lipgloss.Color("#6b7b80"),
		Warning: lipgloss.Color("#e641b6"),
	}

	ThemeNewsprint = Theme{
		Name:    "newsprint",
		Title:   lipgloss.Color("#ffffff"),
		Accent:  lipgloss.Color("#c8dbd4"),
		Border:  lipgloss.Color("#888888"),
		Text:    lipgloss.Color("#dddddd"),
		Muted:   lipgloss.Color("#777777"),
		Warning: lipgloss.Color("#ffaa00"),
	}

	ThemeTide = Theme{
		Name:    "tide",
		Title:   lipgloss.Color("#00a8cc"),
		Accent:  lipgloss.Color("#ffd700"),
		Border:  lipgloss.Color("#0077be"),
		Text:    lipgloss.Color("#e0f0ff"),
		Muted:   lipgloss.Color("#4488aa"),
		Warning: lipgloss.Color("#ff4444"),
	}

	ThemeDusk = Theme{
		Name:    "dusk",
		Title:   lipgloss.Color("#ff6b6b"),
		Accent:  lipgloss.Color("#feca57"),
		Border:  lipgloss.Color("#8b6b8c"),
		Text:    lipgloss.Color("#fff5f5"),
		Muted:   lipgloss.Color("#8b6b8c"),
		Warning: lipgloss.Color("#ff4757"),
	}

	Themes = []Theme{ThemeInk, ThemeNewsprint, ThemeTide, ThemeDusk}
)

// GetTheme returns a theme by name, falling back to the first theme.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// NextTheme returns the theme after name, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}
