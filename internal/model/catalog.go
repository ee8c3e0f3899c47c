package model

// Catalog rows are pure reference data: sport types, playground types
// and the geographic hierarchy Country→State→City.  They feed facility
// filtering and are effectively immutable within a request, so reads
// never need locking.

// Sport corresponds to a row in the `sports` table.
type Sport struct {
	ID   uint64 // sports.id
	Name string // sports.name
}

// PlaygroundType corresponds to a row in the `playground_types` table
// (e.g. indoor court, outdoor turf).
type PlaygroundType struct {
	ID   uint64 // playground_types.id
	Name string // playground_types.name
}

// Country corresponds to a row in the `countries` table.
type Country struct {
	ID   uint64 // countries.id
	Name string // countries.name
}

// State corresponds to a row in the `states` table.
type State struct {
	ID        uint64 // states.id
	CountryID uint64 // states.country_id
	Name      string // states.name
}

// City corresponds to a row in the `cities` table.  Facilities reference
// a city; state and country are reachable through the hierarchy.
type City struct {
	ID      uint64 // cities.id
	StateID uint64 // cities.state_id
	Name    string // cities.name
}
