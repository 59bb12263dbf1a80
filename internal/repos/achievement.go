package repos

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/verdora/verdora-backend/internal/logger"
	"github.com/verdora/verdora-backend/internal/types"
)

type AchievementRepo interface {
	SeedCatalog(ctx context.Context, tx *gorm.DB, achievements []*types.Achievement) error
	GetAll(ctx context.Context, tx *gorm.DB) ([]types.Achievement, error)
	Award(ctx context.Context, tx *gorm.DB, userID, achievementID uint) error
	ListForUser(ctx context.Context, tx *gorm.DB, userID uint) ([]types.UserAchievement, error)
}

type achievementRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAchievementRepo(db *gorm.DB, baseLog *logger.Logger) AchievementRepo {
	return &achievementRepo{db: db, log: baseLog.With("repo", "AchievementRepo")}
}

func (r *achievementRepo) handle(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// SeedCatalog inserts badge definitions, leaving existing rows untouched so
// startup seeding stays idempotent.
func (r *achievementRepo) SeedCatalog(ctx context.Context, tx *gorm.DB, achievements []*types.Achievement) error {
	if len(achievements) == 0 {
		return nil
	}
	return r.handle(tx).WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).
		Create(&achievements).Error
}

func (r *achievementRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]types.Achievement, error) {
	var results []types.Achievement
	err := withReadRetry(ctx, r.log, "GetAll", func() error {
		results = results[:0]
		return r.handle(tx).WithContext(ctx).
			Order("category ASC, level ASC, id ASC").
			Find(&results).Error
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *achievementRepo) Award(ctx context.Context, tx *gorm.DB, userID, achievementID uint) error {
	row := types.UserAchievement{
		UserID:        userID,
		AchievementID: achievementID,
		EarnedAt:      time.Now().UTC(),
	}
	return r.handle(tx).WithContext(ctx).Create(&row).Error
}

func (r *achievementRepo) ListForUser(ctx context.Context, tx *gorm.DB, userID uint) ([]types.UserAchievement, error) {
	var results []types.UserAchievement
	err := withReadRetry(ctx, r.log, "ListForUser", func() error {
		results = results[:0]
		return r.handle(tx).WithContext(ctx).
			Preload("Achievement").
			Where("user_id = ?", userID).
			Order("earned_at DESC, id DESC").
			Find(&results).Error
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}
