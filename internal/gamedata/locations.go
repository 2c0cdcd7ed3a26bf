package gamedata

import "errors"

// LocationDef defines a named starting point loaded from JSON.
type LocationDef struct {
	ID    string       `json:"id"`    // Unique identifier (e.g., "merrill")
	Name  string       `json:"name"`  // Display name
	Lat   float64      `json:"lat"`   // Latitude in degrees
	Lng   float64      `json:"lng"`   // Longitude in degrees
	Route [][2]float64 `json:"route"` // Optional lat/lng points replayed in tracking mode
}

// HasRoute returns true if the location defines a tracking route.
func (l *LocationDef) HasRoute() bool {
	return len(l.Route) > 0
}

// LocationsFile represents the structure of locations.json.
type LocationsFile struct {
	Locations []LocationDef `json:"locations"`
}

// LoadLocations loads location definitions from the embedded locations.json file.
func LoadLocations() ([]LocationDef, error) {
	file, err := Load[LocationsFile]("locations.json")
	if err != nil {
		return nil, err
	}
	return file.Locations, nil
}

// LocationRegistry holds loaded locations and provides lookup utilities.
type LocationRegistry struct {
	locations map[string]*LocationDef
	all       []LocationDef
}

// NewLocationRegistry creates a registry from loaded location definitions.
func NewLocationRegistry(locations []LocationDef) *LocationRegistry {
	registry := &LocationRegistry{
		locations: make(map[string]*LocationDef),
		all:       locations,
	}
	for i := range locations {
		registry.locations[locations[i].ID] = &locations[i]
	}
	return registry
}

// LoadLocationRegistry loads and creates a registry from the embedded locations.json.
func LoadLocationRegistry() (*LocationRegistry, error) {
	locations, err := LoadLocations()
	if err != nil {
		return nil, err
	}
	if len(locations) == 0 {
		return nil, errors.New("no locations loaded from locations.json")
	}
	return NewLocationRegistry(locations), nil
}

// GetByID returns the location with the given ID, or nil if not found.
func (r *LocationRegistry) GetByID(id string) *LocationDef {
	return r.locations[id]
}

// All returns all location definitions.
func (r *LocationRegistry) All() []LocationDef {
	return r.all
}

// Count returns the number of locations in the registry.
func (r *LocationRegistry) Count() int {
	return len(r.all)
}
