package repos

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/verdora/verdora-backend/internal/logger"
	"github.com/verdora/verdora-backend/internal/types"
)

type UserRepo interface {
	Create(ctx context.Context, tx *gorm.DB, user *types.User) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.User, error)
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.User, error)
	EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error)
	UsernameExists(ctx context.Context, tx *gorm.DB, username string) (bool, error)
	TouchLastLogin(ctx context.Context, tx *gorm.DB, id uint, at time.Time) error
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	return &userRepo{db: db, log: baseLog.With("repo", "UserRepo")}
}

func (r *userRepo) handle(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// Create is a write: no retry, so a transient failure can never turn into a
// duplicate row.
func (r *userRepo) Create(ctx context.Context, tx *gorm.DB, user *types.User) error {
	return r.handle(tx).WithContext(ctx).Create(user).Error
}

func (r *userRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.User, error) {
	var user types.User
	err := withReadRetry(ctx, r.log, "GetByID", func() error {
		return r.handle(tx).WithContext(ctx).First(&user, id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.User, error) {
	var user types.User
	err := withReadRetry(ctx, r.log, "GetByEmail", func() error {
		return r.handle(tx).WithContext(ctx).Where("email = ?", email).First(&user).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	return r.columnExists(ctx, tx, "email", email)
}

func (r *userRepo) UsernameExists(ctx context.Context, tx *gorm.DB, username string) (bool, error) {
	return r.columnExists(ctx, tx, "username", username)
}

func (r *userRepo) columnExists(ctx context.Context, tx *gorm.DB, column, value string) (bool, error) {
	var count int64
	err := withReadRetry(ctx, r.log, "exists "+column, func() error {
		return r.handle(tx).WithContext(ctx).
			Model(&types.User{}).
			Where(column+" = ?", value).
			Count(&count).Error
	})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepo) TouchLastLogin(ctx context.Context, tx *gorm.DB, id uint, at time.Time) error {
	return r.handle(tx).WithContext(ctx).
		Model(&types.User{}).
		Where("id = ?", id).
		Update("last_login", at).Error
}
