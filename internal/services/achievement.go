package services

import (
	"context"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/verdora/verdora-backend/internal/logger"
	"github.com/verdora/verdora-backend/internal/repos"
	"github.com/verdora/verdora-backend/internal/types"
)

// seedAchievements is the initial badge catalog. Icon assets live in the
// frontend; rows carry a stable icon identifier.
func seedAchievements() []*types.Achievement {
	return []*types.Achievement{
		{
			Name:        "Explorer I",
			Description: "Discover your first 5 sustainable businesses",
			Icon:        "explorer",
			Criteria:    datatypes.JSON(`{"businesses_viewed": 5}`),
			Points:      100,
			Category:    "exploration",
			Level:       1,
		},
		{
			Name:        "Explorer II",
			Description: "Discover 25 sustainable businesses",
			Icon:        "explorer",
			Criteria:    datatypes.JSON(`{"businesses_viewed": 25}`),
			Points:      250,
			Category:    "exploration",
			Level:       2,
		},
		{
			Name:        "Eco Warrior I",
			Description: "Find 5 businesses with 90%+ sustainability score",
			Icon:        "eco_warrior",
			Criteria:    datatypes.JSON(`{"high_sustainability_count": 5}`),
			Points:      150,
			Category:    "sustainability",
			Level:       1,
		},
		{
			Name:        "Community Leader I",
			Description: "Explore sustainable businesses in 5 different states",
			Icon:        "community_leader",
			Criteria:    datatypes.JSON(`{"states_visited": 5}`),
			Points:      200,
			Category:    "community",
			Level:       1,
		},
	}
}

type AchievementService interface {
	SeedCatalog(ctx context.Context) error
	List(ctx context.Context) ([]types.Achievement, error)
	ListForUser(ctx context.Context, userID uint) ([]types.UserAchievement, error)
}

type achievementService struct {
	db              *gorm.DB
	log             *logger.Logger
	achievementRepo repos.AchievementRepo
}

func NewAchievementService(db *gorm.DB, log *logger.Logger, achievementRepo repos.AchievementRepo) AchievementService {
	return &achievementService{
		db:              db,
		log:             log.With("service", "AchievementService"),
		achievementRepo: achievementRepo,
	}
}

func (s *achievementService) SeedCatalog(ctx context.Context) error {
	if err := s.achievementRepo.SeedCatalog(ctx, nil, seedAchievements()); err != nil {
		return repos.MapError(err)
	}
	return nil
}

func (s *achievementService) List(ctx context.Context) ([]types.Achievement, error) {
	achievements, err := s.achievementRepo.GetAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	if achievements == nil {
		achievements = []types.Achievement{}
	}
	return achievements, nil
}

func (s *achievementService) ListForUser(ctx context.Context, userID uint) ([]types.UserAchievement, error) {
	earned, err := s.achievementRepo.ListForUser(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	if earned == nil {
		earned = []types.UserAchievement{}
	}
	return earned, nil
}
