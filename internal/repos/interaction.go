package repos

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/verdora/verdora-backend/internal/logger"
	"github.com/verdora/verdora-backend/internal/types"
)

// InteractionRepo is append-only: rows are inserted and read, never updated
// or deleted.
type InteractionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, interaction *types.UserInteraction) error
	ListByUserSince(ctx context.Context, tx *gorm.DB, userID uint, since time.Time) ([]types.UserInteraction, error)
}

type interactionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewInteractionRepo(db *gorm.DB, baseLog *logger.Logger) InteractionRepo {
	return &interactionRepo{db: db, log: baseLog.With("repo", "InteractionRepo")}
}

func (r *interactionRepo) handle(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *interactionRepo) Create(ctx context.Context, tx *gorm.DB, interaction *types.UserInteraction) error {
	return r.handle(tx).WithContext(ctx).Create(interaction).Error
}

func (r *interactionRepo) ListByUserSince(ctx context.Context, tx *gorm.DB, userID uint, since time.Time) ([]types.UserInteraction, error) {
	var results []types.UserInteraction
	err := withReadRetry(ctx, r.log, "ListByUserSince", func() error {
		results = results[:0]
		return r.handle(tx).WithContext(ctx).
			Where("user_id = ? AND created_at >= ?", userID, since).
			Order("created_at DESC, id DESC").
			Find(&results).Error
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}
