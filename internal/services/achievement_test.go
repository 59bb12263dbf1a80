package services

import (
	"context"
	"testing"

	"github.com/verdora/verdora-backend/internal/logger"
	"github.com/verdora/verdora-backend/internal/repos"
)

func TestAchievement_SeedIdempotent(t *testing.T) {
	db := newTestDB(t)
	log := logger.NewNop()
	repo := repos.NewAchievementRepo(db, log)
	as := NewAchievementService(db, log, repo)
	ctx := context.Background()

	if err := as.SeedCatalog(ctx); err != nil {
		t.Fatalf("first seed failed: %v", err)
	}
	if err := as.SeedCatalog(ctx); err != nil {
		t.Fatalf("repeated seed must be a no-op, got %v", err)
	}

	achievements, err := as.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(achievements) != 4 {
		t.Fatalf("expected 4 seeded badges, got %d", len(achievements))
	}
}

func TestAchievement_ListForUser(t *testing.T) {
	db := newTestDB(t)
	log := logger.NewNop()
	repo := repos.NewAchievementRepo(db, log)
	as := NewAchievementService(db, log, repo)
	ctx := context.Background()

	if err := as.SeedCatalog(ctx); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	all, err := as.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if err := repo.Award(ctx, nil, 1, all[0].ID); err != nil {
		t.Fatalf("Award failed: %v", err)
	}

	earned, err := as.ListForUser(ctx, 1)
	if err != nil {
		t.Fatalf("ListForUser failed: %v", err)
	}
	if len(earned) != 1 {
		t.Fatalf("expected 1 earned badge, got %d", len(earned))
	}
	if earned[0].Achievement == nil || earned[0].Achievement.Name != all[0].Name {
		t.Fatalf("earned badge must preload its definition, got %+v", earned[0])
	}

	other, err := as.ListForUser(ctx, 2)
	if err != nil {
		t.Fatalf("ListForUser failed: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("other users must not see the badge, got %d", len(other))
	}
}
