// Package world provides the tile grid laid over the map and the registry of
// canonical cells.
package world

import "fmt"

// Point is a continuous map position in degrees.
type Point struct {
	Lat float64
	Lng float64
}

// String returns the point as "lat,lng".
func (p Point) String() string {
	return fmt.Sprintf("%.6f,%.6f", p.Lat, p.Lng)
}

// Bounds is the lat/lng rectangle covered by a cell.
type Bounds struct {
	South, West float64
	North, East float64
}

// Contains returns true if the point lies inside the bounds.
// The south and west edges are inclusive, the north and east edges exclusive.
func (b Bounds) Contains(p Point) bool {
	return p.Lat >= b.South && p.Lat < b.North && p.Lng >= b.West && p.Lng < b.East
}
