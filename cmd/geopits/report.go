package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/samdwyer/geopits/internal/entity"
	"github.com/samdwyer/geopits/internal/exchange"
	"github.com/samdwyer/geopits/internal/world"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	cellStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("14")).
			Width(20)

	coinStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))
)

// ScanCmd prints the pits around a point without starting the game.
type ScanCmd struct {
	At     string `placeholder:"LAT,LNG" help:"Point to scan (defaults to the configured start location)"`
	Coins  bool   `help:"List each coin in every pit"`
	Radius int    `default:"-1" help:"Visibility radius in cells (overrides config)"`
}

// Run performs the scan.
func (c *ScanCmd) Run(rc *runContext) error {
	if c.Radius >= 0 {
		rc.cfg.VisibilityRadius = c.Radius
	}
	start, err := rc.resolveStart("", c.At)
	if err != nil {
		return err
	}

	board := world.NewBoard(rc.cfg.BoardOptions())
	p := world.Point{Lat: start.Lat, Lng: start.Lng}
	writeScan(rc.stdout, board, p, c.Coins)
	return nil
}

// writeScan renders the neighborhood of p as a table.
func writeScan(w io.Writer, board *world.Board, p world.Point, coins bool) {
	here := board.CellForPoint(p)
	pits := board.CellsNearPoint(p)

	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("Pits near %s (cell %s, radius %d)", p, here, board.VisibilityRadius())))
	if len(pits) == 0 {
		fmt.Fprintln(w, dimStyle.Render("No pits in sight."))
		return
	}

	fmt.Fprintln(w, cellStyle.Render("CELL")+"COINS")
	for _, pit := range pits {
		line := cellStyle.Render(pit.String()) + coinStyle.Render(fmt.Sprint(pit.Value()))
		if pit == here {
			line += dimStyle.Render("  (here)")
		}
		fmt.Fprintln(w, line)
		if coins && pit.Value() > 0 {
			fmt.Fprintln(w, dimStyle.Render("  "+entity.DescribeCoins(pit.Coins)))
		}
	}
	fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("%d pits, %d coins", len(pits), exchange.Total(pits, nil))))
}

// LocationsCmd lists the embedded start locations.
type LocationsCmd struct{}

// Run prints the registry.
func (c *LocationsCmd) Run(rc *runContext) error {
	fmt.Fprintln(rc.stdout, headerStyle.Render("Start locations"))
	for _, loc := range rc.locations.All() {
		route := dimStyle.Render("no route")
		if loc.HasRoute() {
			route = dimStyle.Render(fmt.Sprintf("route of %d points", len(loc.Route)))
		}
		marker := "  "
		if loc.ID == rc.cfg.Start {
			marker = "* "
		}
		fmt.Fprintf(rc.stdout, "%s%s%s  %s\n",
			marker,
			cellStyle.Render(loc.ID),
			coinStyle.Render(fmt.Sprintf("%.4f,%.4f", loc.Lat, loc.Lng)),
			route)
		fmt.Fprintln(rc.stdout, dimStyle.Render("    "+loc.Name))
	}
	return nil
}
