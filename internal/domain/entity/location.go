// Package entity contains the core business objects of the project.
package entity

import (
	"math"

	"github.com/paulmach/orb"
)

// WorldBound is the valid coordinate range, longitude first as in orb.
var WorldBound = orb.Bound{
	Min: orb.Point{-180, -90},
	Max: orb.Point{180, 90},
}

// Location is a geographic point with a human-readable address.
type Location struct {
	Lat     float64 `json:"lat"`     // Latitude in degrees, [-90, 90].
	Lng     float64 `json:"lng"`     // Longitude in degrees, [-180, 180].
	Address string  `json:"address"` // Free-form street address.
}

// LocationFromPoint builds a Location from an orb point (lng, lat).
func LocationFromPoint(p orb.Point, address string) Location {
	return Location{
		Lat:     p.Lat(),
		Lng:     p.Lon(),
		Address: address,
	}
}

// Point returns the location as an orb point.
func (l Location) Point() orb.Point {
	return orb.Point{l.Lng, l.Lat}
}

// InBounds reports whether both coordinates lie within WorldBound.
// NaN coordinates are never in bounds.
func (l Location) InBounds() bool {
	if math.IsNaN(l.Lat) || math.IsNaN(l.Lng) {
		return false
	}

	return WorldBound.Contains(l.Point())
}

// Clone returns a copy of l, or nil.
func (l *Location) Clone() *Location {
	if l == nil {
		return nil
	}
	cloned := *l

	return &cloned
}

// LocationInput is a submitted home location. The coordinates are pointers so
// an omitted one can be told apart from 0.
type LocationInput struct {
	Lat     *float64 `json:"lat"`
	Lng     *float64 `json:"lng"`
	Address string   `json:"address"`
}

// NewLocationInput builds a submission with both coordinates present.
func NewLocationInput(lat, lng float64, address string) *LocationInput {
	return &LocationInput{Lat: &lat, Lng: &lng, Address: address}
}

// Location converts the submission, reading a missing coordinate as 0.
// Callers validate first.
func (in *LocationInput) Location() *Location {
	if in == nil {
		return nil
	}

	loc := &Location{Address: in.Address}
	if in.Lat != nil {
		loc.Lat = *in.Lat
	}
	if in.Lng != nil {
		loc.Lng = *in.Lng
	}

	return loc
}

// Clone returns a deep copy of in, or nil.
func (in *LocationInput) Clone() *LocationInput {
	if in == nil {
		return nil
	}

	cloned := &LocationInput{Address: in.Address}
	if in.Lat != nil {
		lat := *in.Lat
		cloned.Lat = &lat
	}
	if in.Lng != nil {
		lng := *in.Lng
		cloned.Lng = &lng
	}

	return cloned
}
