package world

import (
	"math"

	"github.com/samdwyer/geopits/internal/entity"
	"github.com/samdwyer/geopits/internal/luck"
)

const (
	// Default board parameters
	DefaultTileDegrees      = 1e-4 // Width of one cell in degrees
	DefaultVisibilityRadius = 8    // Neighborhood half-width in cells
	DefaultSpawnProbability = 0.1  // Chance a cell holds a pit
	DefaultMaxInitialCoins  = 3    // New pits mint [0, n) coins

	// MinTileDegrees is the smallest tile size a Board accepts.
	MinTileDegrees = 1e-6

	// maxIndex bounds cell indices so they stay exact in a float64.
	maxIndex = 1 << 53
)

// Options configures a Board.
type Options struct {
	TileDegrees      float64
	VisibilityRadius int
	SpawnProbability float64
	MaxInitialCoins  int
}

// DefaultOptions returns the standard board parameters.
func DefaultOptions() Options {
	return Options{
		TileDegrees:      DefaultTileDegrees,
		VisibilityRadius: DefaultVisibilityRadius,
		SpawnProbability: DefaultSpawnProbability,
		MaxInitialCoins:  DefaultMaxInitialCoins,
	}
}

// Board maps continuous points to canonical cells and decides which nearby
// cells hold pits.
//
// Cells live in an arena and are located through a packed coordinate index.
// A Board is not safe for concurrent use.
type Board struct {
	tileDegrees      float64
	visibilityRadius int
	spawnProbability float64
	maxInitialCoins  int

	index map[cellKey]int // (i, j) -> arena slot
	arena []*Cell        // registered cells, in registration order
}

// NewBoard creates an empty board. Zero or negative option values fall back to
// the defaults, except SpawnProbability and MaxInitialCoins where zero is a
// meaningful setting. Positive tile sizes below MinTileDegrees are raised to it.
func NewBoard(opts Options) *Board {
	switch {
	case !(opts.TileDegrees > 0) || math.IsInf(opts.TileDegrees, 1):
		opts.TileDegrees = DefaultTileDegrees
	case opts.TileDegrees < MinTileDegrees:
		opts.TileDegrees = MinTileDegrees
	}
	if opts.VisibilityRadius < 0 {
		opts.VisibilityRadius = DefaultVisibilityRadius
	}
	if opts.MaxInitialCoins < 0 {
		opts.MaxInitialCoins = 0
	}

	return &Board{
		tileDegrees:      opts.TileDegrees,
		visibilityRadius: opts.VisibilityRadius,
		spawnProbability: opts.SpawnProbability,
		maxInitialCoins:  opts.MaxInitialCoins,
		index:            make(map[cellKey]int),
		arena:            make([]*Cell, 0),
	}
}

// TileDegrees returns the width of one cell in degrees.
func (b *Board) TileDegrees() float64 { return b.tileDegrees }

// VisibilityRadius returns the neighborhood half-width in cells.
func (b *Board) VisibilityRadius() int { return b.visibilityRadius }

// SpawnProbability returns the pit spawn threshold.
func (b *Board) SpawnProbability() float64 { return b.spawnProbability }

// CellForPoint returns the canonical cell containing the point.
// Coordinates are divided by the tile size and rounded half up, so every
// point maps to exactly one cell. NaN coordinates map to index 0 and
// infinities to the outermost index on their side.
func (b *Board) CellForPoint(p Point) *Cell {
	i := roundHalfUp(p.Lat / b.tileDegrees)
	j := roundHalfUp(p.Lng / b.tileDegrees)
	return b.Cell(i, j)
}

// CellsNearPoint returns the pit cells in the square neighborhood around the
// point's cell, scanning rows of i and then columns of j.
func (b *Board) CellsNearPoint(p Point) []*Cell {
	origin := b.CellForPoint(p)
	r := b.visibilityRadius

	var result []*Cell
	for i := origin.I - r; i <= origin.I+r; i++ {
		for j := origin.J - r; j <= origin.J+r; j++ {
			if b.Spawns(i, j) {
				result = append(result, b.Cell(i, j))
			}
		}
	}
	return result
}

// Spawns reports whether the oracle places a pit at (i, j).
func (b *Board) Spawns(i, j int) bool {
	return luck.Below(luck.TagPit, i, j, b.spawnProbability)
}

// Cell returns the canonical cell for (i, j), registering it on first access.
// A newly registered pit is minted its initial coins.
func (b *Board) Cell(i, j int) *Cell {
	key := cellKey{i, j}
	if slot, ok := b.index[key]; ok {
		return b.arena[slot]
	}

	cell := &Cell{I: i, J: j, Coins: make([]entity.Coin, 0)}
	if b.Spawns(i, j) {
		cell.Pit = true
		b.mint(cell)
	}

	b.index[key] = len(b.arena)
	b.arena = append(b.arena, cell)
	return cell
}

// Lookup returns the registered cell for (i, j) without creating it.
func (b *Board) Lookup(i, j int) (*Cell, bool) {
	slot, ok := b.index[cellKey{i, j}]
	if !ok {
		return nil, false
	}
	return b.arena[slot], true
}

// Known returns every registered cell in registration order.
func (b *Board) Known() []*Cell {
	out := make([]*Cell, len(b.arena))
	copy(out, b.arena)
	return out
}

// Len returns the number of registered cells.
func (b *Board) Len() int {
	return len(b.arena)
}

// CellCenter returns the point at the center of the cell.
func (b *Board) CellCenter(c *Cell) Point {
	return Point{
		Lat: float64(c.I) * b.tileDegrees,
		Lng: float64(c.J) * b.tileDegrees,
	}
}

// CellBounds returns the square of one tile width centered on the cell.
// This is the region CellForPoint maps onto the cell.
func (b *Board) CellBounds(c *Cell) Bounds {
	center := b.CellCenter(c)
	half := b.tileDegrees / 2
	return Bounds{
		South: center.Lat - half,
		West:  center.Lng - half,
		North: center.Lat + half,
		East:  center.Lng + half,
	}
}

// mint fills a new pit with its initial coins.
func (b *Board) mint(cell *Cell) {
	n := luck.Intn(luck.TagInitialValue, cell.I, cell.J, b.maxInitialCoins)
	for serial := 0; serial < n; serial++ {
		cell.Coins = append(cell.Coins, entity.Coin{X: cell.I, Y: cell.J, Index: serial})
	}
}

// roundHalfUp rounds to the nearest integer, with halves going toward
// positive infinity. The result is clamped to ±maxIndex.
func roundHalfUp(x float64) int {
	switch {
	case math.IsNaN(x):
		return 0
	case x >= maxIndex:
		return maxIndex
	case x <= -maxIndex:
		return -maxIndex
	}
	f := math.Floor(x)
	if x-f >= 0.5 {
		f++
	}
	return int(f)
}
