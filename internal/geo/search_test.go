package geo

import (
	"testing"

	"github.com/verdora/verdora-backend/internal/types"
)

func searchFixtures() []types.Business {
	return []types.Business{
		{ID: 1, BrandName: "Hudson Goods", Latitude: 40.7128, Longitude: -74.0060, State: "NY"},
		{ID: 2, BrandName: "Brooklyn Roasters", Latitude: 40.6782, Longitude: -73.9442, State: "NY"},
		{ID: 3, BrandName: "Venice Textiles", Latitude: 34.0522, Longitude: -118.2437, State: "CA"},
		{ID: 4, BrandName: "No Coordinates Co", Latitude: 0, Longitude: 0, State: "TX"},
		{ID: 5, BrandName: "Broken Pin", Latitude: 95, Longitude: 10, State: "AK"},
	}
}

func TestNearby_FiltersByRadius(t *testing.T) {
	origin := Point{Latitude: 40.7128, Longitude: -74.0060}
	matches := Nearby(searchFixtures(), origin, 50)
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches within 50 miles of NYC, got %d", len(matches))
	}
	if matches[0].Business.ID != 1 || matches[1].Business.ID != 2 {
		t.Fatalf("expected nearest-first ordering [1 2], got [%d %d]", matches[0].Business.ID, matches[1].Business.ID)
	}
	if matches[0].DistanceMiles != 0 {
		t.Fatalf("coincident point must be at distance 0, got %f", matches[0].DistanceMiles)
	}
}

func TestNearby_SkipsInvalidCoordinates(t *testing.T) {
	origin := Point{Latitude: 40.7128, Longitude: -74.0060}
	matches := Nearby(searchFixtures(), origin, 100000)
	for _, m := range matches {
		if m.Business.ID == 4 || m.Business.ID == 5 {
			t.Fatalf("business %d with unusable coordinates must be skipped", m.Business.ID)
		}
	}
	if len(matches) != 3 {
		t.Fatalf("expected every locatable business, got %d", len(matches))
	}
}

func TestNearby_BoundaryInclusive(t *testing.T) {
	origin := Point{Latitude: 40.7128, Longitude: -74.0060}
	la := Point{Latitude: 34.0522, Longitude: -118.2437}
	exact := KmToMiles(DistanceKm(origin, la))
	// Nudge past unit-conversion rounding; anything below the next
	// representable distance still exercises the inclusive boundary.
	radius := exact * (1 + 1e-12)

	matches := Nearby(searchFixtures(), origin, radius)
	found := false
	for _, m := range matches {
		if m.Business.ID == 3 {
			found = true
		}
	}
	if !found {
		t.Fatalf("business at exactly the radius must be included")
	}
}

func TestNearby_NonPositiveRadius(t *testing.T) {
	origin := Point{Latitude: 40.7128, Longitude: -74.0060}
	matches := Nearby(searchFixtures(), origin, 0)
	if len(matches) != 1 || matches[0].Business.ID != 1 {
		t.Fatalf("zero radius must admit only coincident points, got %+v", matches)
	}
	matches = Nearby(searchFixtures(), origin, -10)
	if len(matches) != 1 {
		t.Fatalf("negative radius must behave like zero, got %d matches", len(matches))
	}
}

func TestNearby_Deterministic(t *testing.T) {
	origin := Point{Latitude: 40.7128, Longitude: -74.0060}
	first := Nearby(searchFixtures(), origin, 3000)
	for i := 0; i < 5; i++ {
		again := Nearby(searchFixtures(), origin, 3000)
		if len(again) != len(first) {
			t.Fatalf("result size changed between runs")
		}
		for j := range again {
			if again[j].Business.ID != first[j].Business.ID {
				t.Fatalf("ordering changed between runs at index %d", j)
			}
		}
	}
}
