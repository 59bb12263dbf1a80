package repos

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/verdora/verdora-backend/internal/logger"
	"github.com/verdora/verdora-backend/internal/types"
)

type FavoriteRepo interface {
	Add(ctx context.Context, tx *gorm.DB, userID, businessID uint) error
	Remove(ctx context.Context, tx *gorm.DB, userID, businessID uint) error
	ListByUser(ctx context.Context, tx *gorm.DB, userID uint) ([]types.UserFavorite, error)
}

type favoriteRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFavoriteRepo(db *gorm.DB, baseLog *logger.Logger) FavoriteRepo {
	return &favoriteRepo{db: db, log: baseLog.With("repo", "FavoriteRepo")}
}

func (r *favoriteRepo) handle(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// Add is idempotent: favoriting an already-favorited business is a no-op.
func (r *favoriteRepo) Add(ctx context.Context, tx *gorm.DB, userID, businessID uint) error {
	row := types.UserFavorite{
		UserID:     userID,
		BusinessID: businessID,
		CreatedAt:  time.Now().UTC(),
	}
	return r.handle(tx).WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "business_id"}},
			DoNothing: true,
		}).
		Create(&row).Error
}

func (r *favoriteRepo) Remove(ctx context.Context, tx *gorm.DB, userID, businessID uint) error {
	return r.handle(tx).WithContext(ctx).
		Where("user_id = ? AND business_id = ?", userID, businessID).
		Delete(&types.UserFavorite{}).Error
}

func (r *favoriteRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uint) ([]types.UserFavorite, error) {
	var results []types.UserFavorite
	err := withReadRetry(ctx, r.log, "ListByUser", func() error {
		results = results[:0]
		return r.handle(tx).WithContext(ctx).
			Preload("Business").
			Where("user_id = ?", userID).
			Order("created_at DESC, id DESC").
			Find(&results).Error
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}
