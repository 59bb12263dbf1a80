package services

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/verdora/verdora-backend/internal/cache"
	"github.com/verdora/verdora-backend/internal/logger"
	"github.com/verdora/verdora-backend/internal/query"
	"github.com/verdora/verdora-backend/internal/repos"
	"github.com/verdora/verdora-backend/internal/types"
)

// BusinessPage is one page of directory results with its pagination envelope.
type BusinessPage struct {
	Businesses []types.Business `json:"businesses"`
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	PerPage    int              `json:"per_page"`
	PageCount  int              `json:"page_count"`
}

// FilterOptions enumerates the values the filter UI can offer.
type FilterOptions struct {
	States     []string `json:"states"`
	Cities     []string `json:"cities"`
	Categories []string `json:"categories"`
}

type DirectoryService interface {
	ListBusinesses(ctx context.Context, filter query.Filter, sort query.Sort, page query.Page) (*BusinessPage, error)
	FilterOptions(ctx context.Context) (*FilterOptions, error)
	MetricsSummary(ctx context.Context) (*repos.MetricsSummary, error)
	TopByMetric(ctx context.Context, metric string, limit int) ([]types.Business, error)
	StateAverages(ctx context.Context) ([]repos.StateAverage, error)
}

type directoryService struct {
	db           *gorm.DB
	log          *logger.Logger
	businessRepo repos.BusinessRepo
	cache        cache.Cache
}

func NewDirectoryService(db *gorm.DB, log *logger.Logger, businessRepo repos.BusinessRepo, c cache.Cache) DirectoryService {
	return &directoryService{
		db:           db,
		log:          log.With("service", "DirectoryService"),
		businessRepo: businessRepo,
		cache:        c,
	}
}

// cached runs fill on a cache miss and stores the JSON-encoded result under
// key. Cache failures in either direction degrade to the store path; an
// undecodable entry is treated as a miss and overwritten.
func cached[T any](ctx context.Context, ds *directoryService, key string, ttl time.Duration, fill func() (T, error)) (T, error) {
	var zero T
	if raw, ok := ds.cache.Get(ctx, key); ok {
		var out T
		if err := json.Unmarshal(raw, &out); err == nil {
			return out, nil
		}
		ds.log.Warn("Discarding undecodable cache entry", "key", key)
	}
	out, err := fill()
	if err != nil {
		return zero, err
	}
	if raw, err := json.Marshal(out); err == nil {
		ds.cache.Set(ctx, key, raw, ttl)
	}
	return out, nil
}

func (ds *directoryService) ListBusinesses(ctx context.Context, filter query.Filter, sort query.Sort, page query.Page) (*BusinessPage, error) {
	key := cache.Key("businesses", filter.CacheKey(), sort.CacheKey(), page.CacheKey())
	return cached(ctx, ds, key, cache.TTLListing, func() (*BusinessPage, error) {
		businesses, total, err := ds.businessRepo.List(ctx, nil, filter, sort, page)
		if err != nil {
			return nil, err
		}
		if businesses == nil {
			businesses = []types.Business{}
		}
		return &BusinessPage{
			Businesses: businesses,
			TotalCount: total,
			Page:       page.Number,
			PerPage:    page.Size,
			PageCount:  query.PageCount(total, page.Size),
		}, nil
	})
}

func (ds *directoryService) FilterOptions(ctx context.Context) (*FilterOptions, error) {
	key := cache.Key("filter-options")
	return cached(ctx, ds, key, cache.TTLAggregate, func() (*FilterOptions, error) {
		states, err := ds.businessRepo.DistinctStates(ctx, nil)
		if err != nil {
			return nil, err
		}
		cities, err := ds.businessRepo.DistinctCities(ctx, nil)
		if err != nil {
			return nil, err
		}
		categories, err := ds.businessRepo.DistinctCategories(ctx, nil)
		if err != nil {
			return nil, err
		}
		return &FilterOptions{States: states, Cities: cities, Categories: categories}, nil
	})
}

func (ds *directoryService) MetricsSummary(ctx context.Context) (*repos.MetricsSummary, error) {
	key := cache.Key("metrics-summary")
	return cached(ctx, ds, key, cache.TTLAggregate, func() (*repos.MetricsSummary, error) {
		return ds.businessRepo.MetricsSummary(ctx, nil)
	})
}

func (ds *directoryService) TopByMetric(ctx context.Context, metric string, limit int) ([]types.Business, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	column, err := query.MetricColumn(metric)
	if err != nil {
		return nil, err
	}
	key := cache.Key("top-performers", column, strconv.Itoa(limit))
	return cached(ctx, ds, key, cache.TTLAggregate, func() ([]types.Business, error) {
		return ds.businessRepo.TopByMetric(ctx, nil, metric, limit)
	})
}

func (ds *directoryService) StateAverages(ctx context.Context) ([]repos.StateAverage, error) {
	key := cache.Key("state-averages")
	return cached(ctx, ds, key, cache.TTLAggregate, func() ([]repos.StateAverage, error) {
		return ds.businessRepo.StateAverages(ctx, nil)
	})
}
