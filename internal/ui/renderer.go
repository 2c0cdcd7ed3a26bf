package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/geopits/internal/entity"
	"github.com/samdwyer/geopits/internal/gamedata"
	"github.com/samdwyer/geopits/internal/world"
)

// cellWidth is the number of screen columns per map cell.
const cellWidth = 3

// View is everything the renderer needs for one frame.
type View struct {
	Board    *world.Board
	Here     *world.Cell   // Cell under the player
	Pits     []*world.Cell // Visible pits
	Selected *world.Cell   // Pit targeted by poke/place, may be nil
	Player   *entity.Player
	Mode     string
	Message  string
}

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen  *Screen
	palette gamedata.Palette
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen, palette gamedata.Palette) *Renderer {
	return &Renderer{screen: screen, palette: palette}
}

// Render draws the neighborhood grid, the player, and the status panel.
// North is up: rows run from the highest i to the lowest.
func (r *Renderer) Render(v View) {
	r.screen.Clear()

	radius := v.Board.VisibilityRadius()
	pits := make(map[[2]int]*world.Cell, len(v.Pits))
	for _, c := range v.Pits {
		pits[[2]int{c.I, c.J}] = c
	}

	gridStyle := tcell.StyleDefault.Foreground(r.palette.Grid)
	for row := 0; row <= 2*radius; row++ {
		i := v.Here.I + radius - row
		for col := 0; col <= 2*radius; col++ {
			j := v.Here.J - radius + col
			x := col * cellWidth

			glyph, style := '·', gridStyle
			if pit, ok := pits[[2]int{i, j}]; ok {
				glyph, style = r.pitGlyph(pit)
				if pit == v.Selected {
					sel := tcell.StyleDefault.Foreground(r.palette.Selected).Bold(true)
					r.screen.SetContent(x, row, '[', sel)
					r.screen.SetContent(x+2, row, ']', sel)
				}
			}
			if i == v.Here.I && j == v.Here.J {
				glyph = v.Player.Symbol
				style = tcell.StyleDefault.Foreground(r.palette.Player).Bold(true)
			}
			r.screen.SetContent(x+1, row, glyph, style)
		}
	}

	r.renderStatus(v, 2*radius+2)
	r.screen.Show()
}

// pitGlyph returns the marker for a pit: its coin count, '+' above nine, or
// 'o' when empty.
func (r *Renderer) pitGlyph(pit *world.Cell) (rune, tcell.Style) {
	switch n := pit.Value(); {
	case n == 0:
		return 'o', tcell.StyleDefault.Foreground(r.palette.EmptyPit)
	case n > 9:
		return '+', tcell.StyleDefault.Foreground(r.palette.Pit).Bold(true)
	default:
		return rune('0' + n), tcell.StyleDefault.Foreground(r.palette.Pit).Bold(true)
	}
}

// renderStatus draws the text panel below the grid starting at row y.
func (r *Renderer) renderStatus(v View, y int) {
	text := tcell.StyleDefault.Foreground(r.palette.Text)
	lat, lng := v.Player.Position()

	r.screen.DrawText(0, y, fmt.Sprintf("%.4f,%.4f  cell %s  [%s]", lat, lng, v.Here, v.Mode), text)

	if pit := v.Selected; pit != nil {
		r.screen.DrawText(0, y+1, fmt.Sprintf("There is a pit here at %q. It has value %d.", pit.String(), pit.Value()), text)
		r.screen.DrawText(0, y+2, entity.DescribeCoins(pit.Coins), text)
	} else {
		r.screen.DrawText(0, y+1, "No pits in sight.", text)
	}

	purse := "No coins yet..."
	if v.Player.Purse.Len() > 0 {
		purse = fmt.Sprintf("Purse (%d): %s", v.Player.Purse.Len(), entity.DescribeCoins(v.Player.Purse.Coins()))
	}
	r.screen.DrawText(0, y+3, purse, text)
	r.screen.DrawText(0, y+4, v.Message, text)
	r.screen.DrawText(0, y+6, "arrows/hjkl move  tab select  p poke  d place  g track  q quit", text)
}
