package services

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/verdora/verdora-backend/internal/apierr"
	"github.com/verdora/verdora-backend/internal/geo"
	"github.com/verdora/verdora-backend/internal/logger"
	"github.com/verdora/verdora-backend/internal/repos"
	"github.com/verdora/verdora-backend/internal/requestdata"
	"github.com/verdora/verdora-backend/internal/types"
)

const (
	minSearchRadiusMiles = 5.0
	maxSearchRadiusMiles = 500.0
)

// GeoSearchRequest describes one radius search. Either an explicit
// latitude/longitude pair or a city+state pair must be supplied; explicit
// coordinates win when both are present.
type GeoSearchRequest struct {
	City        string   `json:"city"`
	State       string   `json:"state"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	RadiusMiles float64  `json:"radius_miles"`
	MinScore    float64  `json:"min_score"`
}

type GeoSearchResult struct {
	Origin      geo.Point   `json:"origin"`
	RadiusMiles float64     `json:"radius_miles"`
	Matches     []geo.Match `json:"matches"`
}

type GeoSearchService interface {
	Search(ctx context.Context, req GeoSearchRequest) (*GeoSearchResult, error)
}

type geoSearchService struct {
	db           *gorm.DB
	log          *logger.Logger
	businessRepo repos.BusinessRepo
	interactions InteractionService
}

func NewGeoSearchService(db *gorm.DB, log *logger.Logger, businessRepo repos.BusinessRepo, interactions InteractionService) GeoSearchService {
	return &geoSearchService{
		db:           db,
		log:          log.With("service", "GeoSearchService"),
		businessRepo: businessRepo,
		interactions: interactions,
	}
}

func (gs *geoSearchService) Search(ctx context.Context, req GeoSearchRequest) (*GeoSearchResult, error) {
	if req.RadiusMiles < minSearchRadiusMiles || req.RadiusMiles > maxSearchRadiusMiles {
		return nil, apierr.InvalidFilterValue(fmt.Errorf("radius_miles must be between %.0f and %.0f", minSearchRadiusMiles, maxSearchRadiusMiles))
	}
	if req.MinScore < 0 || req.MinScore > 100 {
		return nil, apierr.InvalidFilterValue(fmt.Errorf("min_score must be between 0 and 100"))
	}

	origin, originState, err := gs.resolveOrigin(ctx, req)
	if err != nil {
		return nil, err
	}

	candidates, err := gs.businessRepo.AllWithCoordinates(ctx, nil)
	if err != nil {
		return nil, err
	}

	matches := geo.Nearby(candidates, origin, req.RadiusMiles)
	if req.MinScore > 0 {
		filtered := matches[:0]
		for _, m := range matches {
			if m.Business.SustainabilityScore >= req.MinScore {
				filtered = append(filtered, m)
			}
		}
		matches = filtered
	}
	if matches == nil {
		matches = []geo.Match{}
	}

	if userID := requestdata.UserID(ctx); userID != 0 && len(matches) > 0 {
		// Attribute the search to the nearest match so personalization
		// learns the region actually explored.
		nearest := matches[0].Business
		state := nearest.State
		if state == "" {
			state = originState
		}
		payload := InteractionPayload{SustainabilityScore: &nearest.SustainabilityScore}
		if state != "" {
			payload.State = &state
		}
		gs.interactions.Record(ctx, userID, types.InteractionSearchLocation, payload)
	}

	return &GeoSearchResult{Origin: origin, RadiusMiles: req.RadiusMiles, Matches: matches}, nil
}

// resolveOrigin turns the request into a concrete origin point, geocoding
// city+state through the directory itself when no coordinates are given.
func (gs *geoSearchService) resolveOrigin(ctx context.Context, req GeoSearchRequest) (geo.Point, string, error) {
	state := strings.ToUpper(strings.TrimSpace(req.State))

	if req.Latitude != nil && req.Longitude != nil {
		origin := geo.Point{Latitude: *req.Latitude, Longitude: *req.Longitude}
		if !origin.Valid() {
			return geo.Point{}, "", apierr.InvalidFilterValue(fmt.Errorf("invalid origin coordinates"))
		}
		return origin, state, nil
	}

	city := strings.TrimSpace(req.City)
	if city == "" || state == "" {
		return geo.Point{}, "", apierr.InvalidFilterValue(fmt.Errorf("either latitude/longitude or city and state are required"))
	}
	anchor, err := gs.businessRepo.FirstByCityState(ctx, nil, city, state)
	if err != nil {
		return geo.Point{}, "", err
	}
	if anchor == nil {
		return geo.Point{}, "", apierr.NotFound(fmt.Errorf("no known location for %s, %s", city, state))
	}
	origin := geo.Point{Latitude: anchor.Latitude, Longitude: anchor.Longitude}
	if !origin.Valid() {
		return geo.Point{}, "", apierr.NotFound(fmt.Errorf("no usable coordinates for %s, %s", city, state))
	}
	return origin, state, nil
}
