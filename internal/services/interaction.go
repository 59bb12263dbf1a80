package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/verdora/verdora-backend/internal/logger"
	"github.com/verdora/verdora-backend/internal/repos"
	"github.com/verdora/verdora-backend/internal/types"
)

// DefaultHistoryWindow bounds how far back aggregation looks when callers do
// not say otherwise.
const DefaultHistoryWindow = 30 * 24 * time.Hour

// InteractionPayload carries the optional detail fields of an event. Which
// fields are meaningful depends on the interaction kind.
type InteractionPayload struct {
	BusinessID          *uint
	Category            *string
	State               *string
	SustainabilityScore *float64
}

// HistorySummary is the aggregated view of one user's recent activity.
type HistorySummary struct {
	Interactions           []types.UserInteraction `json:"interactions"`
	RecentDescriptions     []string                `json:"recent_descriptions"`
	CategoryViewCounts     map[string]int          `json:"category_view_counts"`
	StatesSearched         []string                `json:"states_searched"`
	AvgSustainabilityScore float64                 `json:"avg_sustainability_score"`
}

type InteractionService interface {
	// Record appends one event. It never blocks the caller's flow and never
	// reports failure; a lost event only degrades personalization.
	Record(ctx context.Context, userID uint, kind string, payload InteractionPayload)
	History(ctx context.Context, userID uint, window time.Duration) (*HistorySummary, error)
}

type interactionService struct {
	db              *gorm.DB
	log             *logger.Logger
	interactionRepo repos.InteractionRepo
	recordTimeout   time.Duration
}

func NewInteractionService(db *gorm.DB, log *logger.Logger, interactionRepo repos.InteractionRepo) InteractionService {
	return &interactionService{
		db:              db,
		log:             log.With("service", "InteractionService"),
		interactionRepo: interactionRepo,
		recordTimeout:   5 * time.Second,
	}
}

func validInteractionKind(kind string) bool {
	switch kind {
	case types.InteractionViewBusiness, types.InteractionSearchLocation, types.InteractionFilterCategory:
		return true
	}
	return false
}

func (is *interactionService) Record(ctx context.Context, userID uint, kind string, payload InteractionPayload) {
	if userID == 0 {
		return
	}
	if !validInteractionKind(kind) {
		is.log.Warn("Dropping interaction with unknown kind", "kind", kind, "user_id", userID)
		return
	}
	// Detach from the request context: a cancelled page load must not lose
	// the event, and an insert error must not surface to the caller.
	recCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), is.recordTimeout)
	defer cancel()

	row := &types.UserInteraction{
		UserID:              userID,
		InteractionType:     kind,
		BusinessID:          payload.BusinessID,
		Category:            payload.Category,
		State:               payload.State,
		SustainabilityScore: payload.SustainabilityScore,
		CreatedAt:           time.Now().UTC(),
	}
	if err := is.interactionRepo.Create(recCtx, nil, row); err != nil {
		is.log.Warn("Failed to record interaction", "kind", kind, "user_id", userID, "error", err)
	}
}

func (is *interactionService) History(ctx context.Context, userID uint, window time.Duration) (*HistorySummary, error) {
	if window <= 0 {
		window = DefaultHistoryWindow
	}
	since := time.Now().UTC().Add(-window)
	interactions, err := is.interactionRepo.ListByUserSince(ctx, nil, userID, since)
	if err != nil {
		return nil, err
	}
	return summarize(interactions), nil
}

// summarize folds a newest-first interaction slice into the aggregate shape
// the recommendation prompt and the profile page consume.
func summarize(interactions []types.UserInteraction) *HistorySummary {
	summary := &HistorySummary{
		Interactions:       interactions,
		RecentDescriptions: []string{},
		CategoryViewCounts: map[string]int{},
		StatesSearched:     []string{},
	}

	states := map[string]struct{}{}
	var scoreSum float64
	var scoreCount int

	for _, it := range interactions {
		if desc := describeInteraction(it); desc != "" && len(summary.RecentDescriptions) < 5 {
			summary.RecentDescriptions = append(summary.RecentDescriptions, desc)
		}
		if it.Category != nil && *it.Category != "" {
			summary.CategoryViewCounts[*it.Category]++
		}
		if it.State != nil && *it.State != "" {
			states[*it.State] = struct{}{}
		}
		if it.InteractionType == types.InteractionViewBusiness && it.SustainabilityScore != nil {
			scoreSum += *it.SustainabilityScore
			scoreCount++
		}
	}

	for state := range states {
		summary.StatesSearched = append(summary.StatesSearched, state)
	}
	sort.Strings(summary.StatesSearched)

	if scoreCount > 0 {
		summary.AvgSustainabilityScore = scoreSum / float64(scoreCount)
	}
	return summary
}

func describeInteraction(it types.UserInteraction) string {
	switch it.InteractionType {
	case types.InteractionViewBusiness:
		if it.Category != nil && *it.Category != "" {
			return fmt.Sprintf("Viewed %s business", *it.Category)
		}
		return "Viewed a business"
	case types.InteractionSearchLocation:
		if it.State != nil && *it.State != "" {
			return fmt.Sprintf("Searched businesses in %s", *it.State)
		}
		return "Searched businesses nearby"
	case types.InteractionFilterCategory:
		if it.Category != nil && *it.Category != "" {
			return fmt.Sprintf("Explored %s category", *it.Category)
		}
	}
	return ""
}
