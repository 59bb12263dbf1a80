package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/verdora/verdora-backend/internal/logger"
	"github.com/verdora/verdora-backend/internal/repos"
	"github.com/verdora/verdora-backend/internal/types"
)

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func TestInteraction_RecordAndHistory(t *testing.T) {
	db := newTestDB(t)
	log := logger.NewNop()
	is := NewInteractionService(db, log, repos.NewInteractionRepo(db, log))
	ctx := context.Background()

	is.Record(ctx, 1, types.InteractionViewBusiness, InteractionPayload{
		Category:            strPtr("Clothing"),
		SustainabilityScore: floatPtr(80),
	})
	is.Record(ctx, 1, types.InteractionViewBusiness, InteractionPayload{
		Category:            strPtr("Clothing"),
		SustainabilityScore: floatPtr(60),
	})
	is.Record(ctx, 1, types.InteractionSearchLocation, InteractionPayload{State: strPtr("NY")})
	is.Record(ctx, 1, types.InteractionFilterCategory, InteractionPayload{Category: strPtr("Beauty")})
	is.Record(ctx, 2, types.InteractionViewBusiness, InteractionPayload{Category: strPtr("Food")})

	summary, err := is.History(ctx, 1, 0)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(summary.Interactions) != 4 {
		t.Fatalf("expected 4 interactions for user 1, got %d", len(summary.Interactions))
	}
	if summary.CategoryViewCounts["Clothing"] != 2 || summary.CategoryViewCounts["Beauty"] != 1 {
		t.Fatalf("unexpected category counts %v", summary.CategoryViewCounts)
	}
	if len(summary.StatesSearched) != 1 || summary.StatesSearched[0] != "NY" {
		t.Fatalf("unexpected states %v", summary.StatesSearched)
	}
	if summary.AvgSustainabilityScore != 70 {
		t.Fatalf("expected avg 70 over viewed businesses, got %f", summary.AvgSustainabilityScore)
	}
	if len(summary.RecentDescriptions) != 4 {
		t.Fatalf("expected 4 descriptions, got %v", summary.RecentDescriptions)
	}
}

func TestInteraction_RecentDescriptionsCapped(t *testing.T) {
	db := newTestDB(t)
	log := logger.NewNop()
	is := NewInteractionService(db, log, repos.NewInteractionRepo(db, log))
	ctx := context.Background()

	for i := 0; i < 8; i++ {
		is.Record(ctx, 1, types.InteractionFilterCategory, InteractionPayload{
			Category: strPtr(fmt.Sprintf("Category %d", i)),
		})
	}
	summary, err := is.History(ctx, 1, 0)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(summary.RecentDescriptions) != 5 {
		t.Fatalf("expected 5 recent descriptions, got %d", len(summary.RecentDescriptions))
	}
}

func TestInteraction_WindowExcludesOldRows(t *testing.T) {
	db := newTestDB(t)
	log := logger.NewNop()
	repo := repos.NewInteractionRepo(db, log)
	is := NewInteractionService(db, log, repo)
	ctx := context.Background()

	old := &types.UserInteraction{
		UserID:          1,
		InteractionType: types.InteractionSearchLocation,
		State:           strPtr("TX"),
		CreatedAt:       time.Now().UTC().Add(-45 * 24 * time.Hour),
	}
	if err := repo.Create(ctx, nil, old); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	is.Record(ctx, 1, types.InteractionSearchLocation, InteractionPayload{State: strPtr("NY")})

	summary, err := is.History(ctx, 1, 0)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(summary.Interactions) != 1 {
		t.Fatalf("expected only the recent interaction, got %d", len(summary.Interactions))
	}
	if len(summary.StatesSearched) != 1 || summary.StatesSearched[0] != "NY" {
		t.Fatalf("stale rows leaked into aggregates: %v", summary.StatesSearched)
	}
}

func TestInteraction_InvalidKindDropped(t *testing.T) {
	db := newTestDB(t)
	log := logger.NewNop()
	is := NewInteractionService(db, log, repos.NewInteractionRepo(db, log))
	ctx := context.Background()

	is.Record(ctx, 1, "clicked_banner", InteractionPayload{})
	is.Record(ctx, 0, types.InteractionViewBusiness, InteractionPayload{})

	summary, err := is.History(ctx, 1, 0)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(summary.Interactions) != 0 {
		t.Fatalf("invalid events must not be stored, got %d rows", len(summary.Interactions))
	}
}

// failingInteractionRepo simulates a broken store.
type failingInteractionRepo struct{}

func (failingInteractionRepo) Create(ctx context.Context, tx *gorm.DB, interaction *types.UserInteraction) error {
	return fmt.Errorf("store is down")
}

func (failingInteractionRepo) ListByUserSince(ctx context.Context, tx *gorm.DB, userID uint, since time.Time) ([]types.UserInteraction, error) {
	return nil, fmt.Errorf("store is down")
}

func TestInteraction_RecordSwallowsStoreFailure(t *testing.T) {
	is := NewInteractionService(nil, logger.NewNop(), failingInteractionRepo{})

	// Must not panic or surface the failure.
	is.Record(context.Background(), 1, types.InteractionViewBusiness, InteractionPayload{})
}

func TestInteraction_RecordSurvivesCancelledContext(t *testing.T) {
	db := newTestDB(t)
	log := logger.NewNop()
	is := NewInteractionService(db, log, repos.NewInteractionRepo(db, log))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	is.Record(ctx, 1, types.InteractionViewBusiness, InteractionPayload{Category: strPtr("Food")})

	summary, err := is.History(context.Background(), 1, 0)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(summary.Interactions) != 1 {
		t.Fatalf("a cancelled page load must not lose the event, got %d rows", len(summary.Interactions))
	}
}
