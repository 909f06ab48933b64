package theme

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines customizable colors for rendering the widget.
type Theme struct {
	AccentColor     string `json:"accentColor"`
	FaintColor      string `json:"faintColor"`
	BorderColor     string `json:"borderColor"`
	BackgroundColor string `json:"backgroundColor"`
	ErrorColor      string `json:"errorColor"`
}

func darkTheme() Theme {
	return Theme{
		AccentColor:     "63",
		FaintColor:      "244",
		BorderColor:     "240",
		BackgroundColor: "236",
		ErrorColor:      "196",
	}
}

func lightTheme() Theme {
	return Theme{
		AccentColor:     "27",
		FaintColor:      "244",
		BorderColor:     "250",
		BackgroundColor: "255",
		ErrorColor:      "9",
	}
}

// Default returns the dark theme.
func Default() Theme {
	return darkTheme()
}

// Get returns the requested base theme.
func Get(name string) Theme {
	if name == "light" {
		return lightTheme()
	}
	return darkTheme()
}

// Load starts from the base theme and merges theme.json from dir, keeping
// defaults for empty fields.
func Load(dir, base string) Theme {
	t := Get(base)
	if dir == "" {
		return t
	}
	b, err := os.ReadFile(filepath.Join(dir, "theme.json"))
	if err != nil {
		return t
	}
	var u Theme
	if err := json.Unmarshal(b, &u); err != nil {
		return t
	}
	if u.AccentColor != "" {
		t.AccentColor = u.AccentColor
	}
	if u.FaintColor != "" {
		t.FaintColor = u.FaintColor
	}
	if u.BorderColor != "" {
		t.BorderColor = u.BorderColor
	}
	if u.BackgroundColor != "" {
		t.BackgroundColor = u.BackgroundColor
	}
	if u.ErrorColor != "" {
		t.ErrorColor = u.ErrorColor
	}
	return t
}

func (t Theme) Accent(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.AccentColor)).Render(s)
}

func (t Theme) Faint(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.FaintColor)).Render(s)
}

func (t Theme) Error(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.ErrorColor)).Render(s)
}

// Box returns the media container style for the active tunes.
func (t Theme) Box(width int, border, background bool) lipgloss.Style {
	st := lipgloss.NewStyle().Width(width)
	if border {
		st = st.Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color(t.BorderColor)).Width(width - 2)
	}
	if background {
		st = st.Background(lipgloss.Color(t.BackgroundColor)).Padding(0, 1)
	}
	return st
}
