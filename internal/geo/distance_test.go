package geo

import (
	"math"
	"testing"
)

var (
	newYork    = Point{Latitude: 40.7128, Longitude: -74.0060}
	losAngeles = Point{Latitude: 34.0522, Longitude: -118.2437}
)

func TestUnitConversion_RoundTrip(t *testing.T) {
	for _, miles := range []float64{0, 1, 25, 500, 3000} {
		back := KmToMiles(MilesToKm(miles))
		if math.Abs(back-miles) > 1e-9 {
			t.Fatalf("round trip drifted: %f -> %f", miles, back)
		}
	}
	if km := MilesToKm(1); math.Abs(km-1.609344) > 1e-9 {
		t.Fatalf("expected 1 mile = 1.609344 km, got %f", km)
	}
}

func TestPointValid(t *testing.T) {
	if (Point{}).Valid() {
		t.Fatal("zero pair must be treated as missing data")
	}
	if (Point{Latitude: 91, Longitude: 0.1}).Valid() {
		t.Fatal("latitude out of range must be invalid")
	}
	if (Point{Latitude: 0.1, Longitude: -181}).Valid() {
		t.Fatal("longitude out of range must be invalid")
	}
	if !newYork.Valid() {
		t.Fatal("real coordinates must be valid")
	}
}

func TestDistanceKm_Identity(t *testing.T) {
	if d := DistanceKm(newYork, newYork); d != 0 {
		t.Fatalf("distance to self must be 0, got %f", d)
	}
}

func TestDistanceKm_Symmetry(t *testing.T) {
	ab := DistanceKm(newYork, losAngeles)
	ba := DistanceKm(losAngeles, newYork)
	if math.Abs(ab-ba) > 1e-9 {
		t.Fatalf("distance must be symmetric: %f vs %f", ab, ba)
	}
}

func TestDistanceKm_KnownDistance(t *testing.T) {
	// Great-circle NYC to LA is roughly 3936 km.
	d := DistanceKm(newYork, losAngeles)
	if d < 3900 || d > 3970 {
		t.Fatalf("NYC-LA distance out of expected range: %f km", d)
	}
}
