package entity

// Player represents the explorer walking the map.
type Player struct {
	Lat, Lng float64 // Current position in degrees
	Symbol   rune    // Display symbol
	Purse    *Purse  // Coins being carried
}

// NewPlayer creates a new player at the given position with an empty purse.
func NewPlayer(lat, lng float64) *Player {
	return &Player{
		Lat:    lat,
		Lng:    lng,
		Symbol: '@',
		Purse:  NewPurse(),
	}
}

// Move updates the player position by the given delta in degrees.
func (p *Player) Move(dLat, dLng float64) {
	p.Lat += dLat
	p.Lng += dLng
}

// MoveTo places the player at an absolute position.
func (p *Player) MoveTo(lat, lng float64) {
	p.Lat = lat
	p.Lng = lng
}

// Position returns the current latitude and longitude.
func (p *Player) Position() (float64, float64) {
	return p.Lat, p.Lng
}
