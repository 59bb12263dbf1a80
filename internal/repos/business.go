package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/verdora/verdora-backend/internal/logger"
	"github.com/verdora/verdora-backend/internal/query"
	"github.com/verdora/verdora-backend/internal/types"
)

// CategoryCount is one row of the top-categories aggregate, ordered by count
// descending.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

type MetricsSummary struct {
	TotalBusinesses   int64           `json:"total_businesses"`
	AvgSustainability float64         `json:"avg_sustainability"`
	AvgEcoScore       float64         `json:"avg_eco_score"`
	StatesCoverage    int64           `json:"states_coverage"`
	TopCategories     []CategoryCount `json:"top_categories"`
}

type StateAverage struct {
	State             string  `json:"state"`
	AvgSustainability float64 `json:"avg_sustainability"`
	BusinessCount     int64   `json:"business_count"`
}

type BusinessRepo interface {
	CreateBatch(ctx context.Context, tx *gorm.DB, businesses []*types.Business) error
	List(ctx context.Context, tx *gorm.DB, filter query.Filter, sort query.Sort, page query.Page) ([]types.Business, int64, error)
	AllWithCoordinates(ctx context.Context, tx *gorm.DB) ([]types.Business, error)
	FirstByCityState(ctx context.Context, tx *gorm.DB, city, state string) (*types.Business, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uint) ([]types.Business, error)
	DistinctStates(ctx context.Context, tx *gorm.DB) ([]string, error)
	DistinctCities(ctx context.Context, tx *gorm.DB) ([]string, error)
	DistinctCategories(ctx context.Context, tx *gorm.DB) ([]string, error)
	MetricsSummary(ctx context.Context, tx *gorm.DB) (*MetricsSummary, error)
	TopByMetric(ctx context.Context, tx *gorm.DB, metric string, limit int) ([]types.Business, error)
	StateAverages(ctx context.Context, tx *gorm.DB) ([]StateAverage, error)
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
}

type businessRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBusinessRepo(db *gorm.DB, baseLog *logger.Logger) BusinessRepo {
	return &businessRepo{db: db, log: baseLog.With("repo", "BusinessRepo")}
}

func (r *businessRepo) handle(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *businessRepo) CreateBatch(ctx context.Context, tx *gorm.DB, businesses []*types.Business) error {
	if len(businesses) == 0 {
		return nil
	}
	return r.handle(tx).WithContext(ctx).Create(&businesses).Error
}

// List returns one page of matches plus the total count, both computed from
// the same predicate inside a single read transaction. Pages past the end
// come back empty with the true total.
func (r *businessRepo) List(ctx context.Context, tx *gorm.DB, filter query.Filter, sort query.Sort, page query.Page) ([]types.Business, int64, error) {
	var results []types.Business
	var total int64

	err := withReadRetry(ctx, r.log, "List", func() error {
		results = results[:0]
		return r.handle(tx).WithContext(ctx).Transaction(func(txn *gorm.DB) error {
			if err := txn.Model(&types.Business{}).Scopes(filter.Scope()).Count(&total).Error; err != nil {
				return err
			}
			return txn.Model(&types.Business{}).
				Scopes(filter.Scope()).
				Order(sort.OrderClause()).
				Limit(page.Size).
				Offset(page.Offset()).
				Find(&results).Error
		})
	})
	if err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

func (r *businessRepo) AllWithCoordinates(ctx context.Context, tx *gorm.DB) ([]types.Business, error) {
	var results []types.Business
	err := withReadRetry(ctx, r.log, "AllWithCoordinates", func() error {
		results = results[:0]
		return r.handle(tx).WithContext(ctx).
			Where("latitude IS NOT NULL AND longitude IS NOT NULL").
			Order("id ASC").
			Find(&results).Error
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *businessRepo) FirstByCityState(ctx context.Context, tx *gorm.DB, city, state string) (*types.Business, error) {
	var result types.Business
	err := withReadRetry(ctx, r.log, "FirstByCityState", func() error {
		return r.handle(tx).WithContext(ctx).
			Where("city = ? AND state = ?", city, state).
			Order("id ASC").
			First(&result).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (r *businessRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uint) ([]types.Business, error) {
	var results []types.Business
	if len(ids) == 0 {
		return results, nil
	}
	err := withReadRetry(ctx, r.log, "GetByIDs", func() error {
		results = results[:0]
		return r.handle(tx).WithContext(ctx).
			Where("id IN ?", ids).
			Find(&results).Error
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *businessRepo) DistinctStates(ctx context.Context, tx *gorm.DB) ([]string, error) {
	return r.distinctColumn(ctx, tx, "state")
}

func (r *businessRepo) DistinctCities(ctx context.Context, tx *gorm.DB) ([]string, error) {
	return r.distinctColumn(ctx, tx, "city")
}

func (r *businessRepo) DistinctCategories(ctx context.Context, tx *gorm.DB) ([]string, error) {
	return r.distinctColumn(ctx, tx, "category")
}

func (r *businessRepo) distinctColumn(ctx context.Context, tx *gorm.DB, column string) ([]string, error) {
	var values []string
	err := withReadRetry(ctx, r.log, "distinct "+column, func() error {
		values = values[:0]
		return r.handle(tx).WithContext(ctx).
			Model(&types.Business{}).
			Distinct(column).
			Where(column+" <> ''").
			Order(column + " ASC").
			Pluck(column, &values).Error
	})
	if err != nil {
		return nil, err
	}
	return values, nil
}

func (r *businessRepo) MetricsSummary(ctx context.Context, tx *gorm.DB) (*MetricsSummary, error) {
	var summary MetricsSummary
	err := withReadRetry(ctx, r.log, "MetricsSummary", func() error {
		summary = MetricsSummary{}
		return r.handle(tx).WithContext(ctx).Transaction(func(txn *gorm.DB) error {
			model := func() *gorm.DB { return txn.Model(&types.Business{}) }
			if err := model().Count(&summary.TotalBusinesses).Error; err != nil {
				return err
			}
			var avgs struct {
				AvgSustainability float64
				AvgEcoScore       float64
			}
			if err := model().
				Select("COALESCE(AVG(sustainability_score), 0) AS avg_sustainability, COALESCE(AVG(eco_materials_score), 0) AS avg_eco_score").
				Scan(&avgs).Error; err != nil {
				return err
			}
			summary.AvgSustainability = avgs.AvgSustainability
			summary.AvgEcoScore = avgs.AvgEcoScore
			if err := model().Distinct("state").Where("state <> ''").Count(&summary.StatesCoverage).Error; err != nil {
				return err
			}
			return model().
				Select("category, COUNT(id) AS count").
				Where("category <> ''").
				Group("category").
				Order("count DESC").
				Limit(5).
				Scan(&summary.TopCategories).Error
		})
	})
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

func (r *businessRepo) TopByMetric(ctx context.Context, tx *gorm.DB, metric string, limit int) ([]types.Business, error) {
	column, err := query.MetricColumn(metric)
	if err != nil {
		return nil, err
	}
	var results []types.Business
	err = withReadRetry(ctx, r.log, "TopByMetric", func() error {
		results = results[:0]
		return r.handle(tx).WithContext(ctx).
			Order(column + " DESC, id ASC").
			Limit(limit).
			Find(&results).Error
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *businessRepo) StateAverages(ctx context.Context, tx *gorm.DB) ([]StateAverage, error) {
	var results []StateAverage
	err := withReadRetry(ctx, r.log, "StateAverages", func() error {
		results = results[:0]
		return r.handle(tx).WithContext(ctx).
			Model(&types.Business{}).
			Select("state, AVG(sustainability_score) AS avg_sustainability, COUNT(id) AS business_count").
			Where("state <> ''").
			Group("state").
			Order("state ASC").
			Scan(&results).Error
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *businessRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	var count int64
	err := withReadRetry(ctx, r.log, "Count", func() error {
		return r.handle(tx).WithContext(ctx).Model(&types.Business{}).Count(&count).Error
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}
