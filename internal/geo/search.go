package geo

import (
	"sort"

	"github.com/verdora/verdora-backend/internal/types"
)

// Match is a business annotated with its computed distance from the search
// origin.
type Match struct {
	Business      types.Business `json:"business"`
	DistanceMiles float64        `json:"distance_miles"`
}

// Nearby returns every business whose great-circle distance to origin is
// within radiusMiles, ordered nearest first with an id tiebreak so results
// are reproducible. Records with missing or out-of-range coordinates are
// skipped. A non-positive radius admits only coincident points.
func Nearby(businesses []types.Business, origin Point, radiusMiles float64) []Match {
	radiusKm := MilesToKm(radiusMiles)
	if radiusKm < 0 {
		radiusKm = 0
	}

	matches := make([]Match, 0)
	for _, b := range businesses {
		p := Point{Latitude: b.Latitude, Longitude: b.Longitude}
		if !p.Valid() {
			continue
		}
		km := DistanceKm(origin, p)
		if km <= radiusKm {
			matches = append(matches, Match{Business: b, DistanceMiles: KmToMiles(km)})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].DistanceMiles != matches[j].DistanceMiles {
			return matches[i].DistanceMiles < matches[j].DistanceMiles
		}
		return matches[i].Business.ID < matches[j].Business.ID
	})
	return matches
}
