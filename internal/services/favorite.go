package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/verdora/verdora-backend/internal/apierr"
	"github.com/verdora/verdora-backend/internal/logger"
	"github.com/verdora/verdora-backend/internal/repos"
	"github.com/verdora/verdora-backend/internal/types"
)

type FavoriteService interface {
	Add(ctx context.Context, userID, businessID uint) error
	Remove(ctx context.Context, userID, businessID uint) error
	List(ctx context.Context, userID uint) ([]types.UserFavorite, error)
}

type favoriteService struct {
	db           *gorm.DB
	log          *logger.Logger
	favoriteRepo repos.FavoriteRepo
	businessRepo repos.BusinessRepo
}

func NewFavoriteService(db *gorm.DB, log *logger.Logger, favoriteRepo repos.FavoriteRepo, businessRepo repos.BusinessRepo) FavoriteService {
	return &favoriteService{
		db:           db,
		log:          log.With("service", "FavoriteService"),
		favoriteRepo: favoriteRepo,
		businessRepo: businessRepo,
	}
}

func (fs *favoriteService) Add(ctx context.Context, userID, businessID uint) error {
	businesses, err := fs.businessRepo.GetByIDs(ctx, nil, []uint{businessID})
	if err != nil {
		return err
	}
	if len(businesses) == 0 {
		return apierr.NotFound(fmt.Errorf("business %d not found", businessID))
	}
	if err := fs.favoriteRepo.Add(ctx, nil, userID, businessID); err != nil {
		return repos.MapError(err)
	}
	return nil
}

func (fs *favoriteService) Remove(ctx context.Context, userID, businessID uint) error {
	if err := fs.favoriteRepo.Remove(ctx, nil, userID, businessID); err != nil {
		return repos.MapError(err)
	}
	return nil
}

func (fs *favoriteService) List(ctx context.Context, userID uint) ([]types.UserFavorite, error) {
	favorites, err := fs.favoriteRepo.ListByUser(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	if favorites == nil {
		favorites = []types.UserFavorite{}
	}
	return favorites, nil
}
