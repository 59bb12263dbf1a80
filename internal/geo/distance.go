// Package geo implements great-circle proximity search over an in-memory
// working set. All internal math is in kilometers; miles are converted at the
// boundary.
package geo

import (
	"math"
)

const (
	// Earth mean radius in kilometers.
	earthRadiusKm = 6371.0088

	kmPerMile = 1.609344
)

func MilesToKm(miles float64) float64 { return miles * kmPerMile }

func KmToMiles(km float64) float64 { return km / kmPerMile }

// Point is a geographic coordinate pair in degrees.
type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Valid reports whether the point lies in the lat/lng domain. The zero pair
// is treated as missing data, not a real location in the Gulf of Guinea.
func (p Point) Valid() bool {
	if p.Latitude == 0 && p.Longitude == 0 {
		return false
	}
	return p.Latitude >= -90 && p.Latitude <= 90 &&
		p.Longitude >= -180 && p.Longitude <= 180
}

// DistanceKm returns the haversine great-circle distance between two points.
func DistanceKm(a, b Point) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Asin(math.Min(1, math.Sqrt(h)))

	return earthRadiusKm * c
}
