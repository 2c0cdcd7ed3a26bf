package gamedata

import "github.com/gdamore/tcell/v2"

// ThemeDef holds the hex colors used to draw the map.
type ThemeDef struct {
	Player   string `json:"player"`
	Pit      string `json:"pit"`
	EmptyPit string `json:"emptyPit"`
	Selected string `json:"selected"`
	Grid     string `json:"grid"`
	Text     string `json:"text"`
}

// Palette is a ThemeDef resolved to tcell colors.
type Palette struct {
	Player   tcell.Color
	Pit      tcell.Color
	EmptyPit tcell.Color
	Selected tcell.Color
	Grid     tcell.Color
	Text     tcell.Color
}

// LoadTheme loads the theme from the embedded theme.json file.
func LoadTheme() (ThemeDef, error) {
	return Load[ThemeDef]("theme.json")
}

// Palette resolves every theme color. Unparseable entries fall back to the
// given default.
func (t ThemeDef) Palette(fallback tcell.Color) Palette {
	resolve := func(hex string) tcell.Color {
		color, err := ParseHexColor(hex)
		if err != nil {
			return fallback
		}
		return color
	}
	return Palette{
		Player:   resolve(t.Player),
		Pit:      resolve(t.Pit),
		EmptyPit: resolve(t.EmptyPit),
		Selected: resolve(t.Selected),
		Grid:     resolve(t.Grid),
		Text:     resolve(t.Text),
	}
}

// DefaultPalette loads the embedded theme, falling back to white for any
// color that cannot be loaded.
func DefaultPalette() Palette {
	theme, err := LoadTheme()
	if err != nil {
		return ThemeDef{}.Palette(tcell.ColorWhite)
	}
	return theme.Palette(tcell.ColorWhite)
}
