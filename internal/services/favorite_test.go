package services

import (
	"context"
	"testing"

	"github.com/verdora/verdora-backend/internal/apierr"
	"github.com/verdora/verdora-backend/internal/logger"
	"github.com/verdora/verdora-backend/internal/repos"
	"github.com/verdora/verdora-backend/internal/types"
)

func newTestFavorites(t *testing.T) (FavoriteService, uint) {
	t.Helper()
	db := newTestDB(t)
	log := logger.NewNop()
	businessRepo := repos.NewBusinessRepo(db, log)
	favoriteRepo := repos.NewFavoriteRepo(db, log)

	business := &types.Business{BrandName: "Hudson Goods", State: "NY"}
	if err := businessRepo.CreateBatch(context.Background(), nil, []*types.Business{business}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	return NewFavoriteService(db, log, favoriteRepo, businessRepo), business.ID
}

func TestFavorite_AddListRemove(t *testing.T) {
	fs, businessID := newTestFavorites(t)
	ctx := context.Background()

	if err := fs.Add(ctx, 1, businessID); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	// Favoriting twice is a no-op, not an error.
	if err := fs.Add(ctx, 1, businessID); err != nil {
		t.Fatalf("repeated Add must be idempotent, got %v", err)
	}

	favorites, err := fs.List(ctx, 1)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(favorites) != 1 {
		t.Fatalf("expected 1 favorite, got %d", len(favorites))
	}
	if favorites[0].Business == nil || favorites[0].Business.BrandName != "Hudson Goods" {
		t.Fatalf("favorite must preload its business, got %+v", favorites[0])
	}

	if err := fs.Remove(ctx, 1, businessID); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	favorites, err = fs.List(ctx, 1)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(favorites) != 0 {
		t.Fatalf("expected empty list after remove, got %d", len(favorites))
	}
}

func TestFavorite_UnknownBusiness(t *testing.T) {
	fs, _ := newTestFavorites(t)

	if err := fs.Add(context.Background(), 1, 9999); !apierr.Is(err, apierr.CodeNotFound) {
		t.Fatalf("expected not_found for unknown business, got %v", err)
	}
}
