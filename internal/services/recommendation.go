package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/verdora/verdora-backend/internal/cache"
	"github.com/verdora/verdora-backend/internal/logger"
	"github.com/verdora/verdora-backend/internal/platform/openai"
)

const recommendationSystemPrompt = "You are a sustainability advisor helping users discover eco-friendly businesses. Respond with a single JSON object."

// BusinessRecommendation is one personalized suggestion.
type BusinessRecommendation struct {
	Type           string `json:"type"`
	Recommendation string `json:"recommendation"`
	Reason         string `json:"reason"`
}

// Recommendations is the full personalization payload. All three fields are
// always present, possibly empty, so the consumer never branches on shape.
type Recommendations struct {
	BusinessRecommendations []BusinessRecommendation `json:"business_recommendations"`
	SustainabilityTips      []string                 `json:"sustainability_tips"`
	SuggestedCategories     []string                 `json:"suggested_categories"`
}

type RecommendationService interface {
	// GenerateForUser returns personalized recommendations from the user's
	// recent activity. Generation failures degrade to a valid fallback
	// payload rather than an error; only a store failure is reported.
	GenerateForUser(ctx context.Context, userID uint) (*Recommendations, error)
}

type recommendationService struct {
	db           *gorm.DB
	log          *logger.Logger
	interactions InteractionService
	ai           openai.Client
	cache        cache.Cache
}

func NewRecommendationService(db *gorm.DB, log *logger.Logger, interactions InteractionService, ai openai.Client, c cache.Cache) RecommendationService {
	return &recommendationService{
		db:           db,
		log:          log.With("service", "RecommendationService"),
		interactions: interactions,
		ai:           ai,
		cache:        c,
	}
}

func (rs *recommendationService) GenerateForUser(ctx context.Context, userID uint) (*Recommendations, error) {
	key := cache.Key("recommendations", "user="+strconv.FormatUint(uint64(userID), 10))
	if raw, ok := rs.cache.Get(ctx, key); ok {
		var out Recommendations
		if err := json.Unmarshal(raw, &out); err == nil {
			return &out, nil
		}
	}

	history, err := rs.interactions.History(ctx, userID, DefaultHistoryWindow)
	if err != nil {
		return nil, err
	}

	var result *Recommendations
	if len(history.CategoryViewCounts) == 0 && len(history.StatesSearched) == 0 {
		result = gettingStartedRecommendations()
	} else {
		result = rs.generate(ctx, userID, history)
	}

	if raw, err := json.Marshal(result); err == nil {
		rs.cache.Set(ctx, key, raw, cache.TTLPersonalization)
	}
	return result, nil
}

func (rs *recommendationService) generate(ctx context.Context, userID uint, history *HistorySummary) *Recommendations {
	if rs.ai == nil {
		return fallbackRecommendations()
	}
	raw, err := rs.ai.GenerateJSON(ctx, recommendationSystemPrompt, buildRecommendationPrompt(history))
	if err != nil {
		rs.log.Warn("Recommendation generation failed", "user_id", userID, "error", err)
		return fallbackRecommendations()
	}
	result, err := decodeRecommendations(raw)
	if err != nil {
		rs.log.Warn("Discarding malformed recommendation payload", "user_id", userID, "error", err)
		return fallbackRecommendations()
	}
	return result
}

// buildRecommendationPrompt renders the user's aggregated activity into the
// instruction the model answers.
func buildRecommendationPrompt(history *HistorySummary) string {
	var categories []string
	for category, count := range history.CategoryViewCounts {
		categories = append(categories, fmt.Sprintf("%s (%d views)", category, count))
	}
	sort.Strings(categories)

	var b strings.Builder
	b.WriteString("Based on this user's activity on a sustainable business directory, generate personalized recommendations.\n\n")
	b.WriteString("User activity summary:\n")
	b.WriteString("- Categories explored: " + joinOrNone(categories) + "\n")
	b.WriteString("- States searched: " + joinOrNone(history.StatesSearched) + "\n")
	b.WriteString(fmt.Sprintf("- Average sustainability score of viewed businesses: %.1f\n", history.AvgSustainabilityScore))
	b.WriteString("- Recent interactions: " + joinOrNone(history.RecentDescriptions) + "\n\n")
	b.WriteString("Respond with a JSON object containing exactly these keys:\n")
	b.WriteString(`- "business_recommendations": array of objects with "type", "recommendation", and "reason" strings` + "\n")
	b.WriteString(`- "sustainability_tips": array of short actionable tip strings` + "\n")
	b.WriteString(`- "suggested_categories": array of category name strings the user has not explored yet` + "\n")
	return b.String()
}

func joinOrNone(values []string) string {
	if len(values) == 0 {
		return "none"
	}
	return strings.Join(values, ", ")
}

// decodeRecommendations validates the model output against the payload
// contract. Any shape violation is an error so the caller can fall back.
func decodeRecommendations(raw map[string]any) (*Recommendations, error) {
	encoded, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	var result Recommendations
	if err := json.Unmarshal(encoded, &result); err != nil {
		return nil, err
	}
	if result.BusinessRecommendations == nil && result.SustainabilityTips == nil && result.SuggestedCategories == nil {
		return nil, fmt.Errorf("payload carries none of the expected keys")
	}
	normalizeRecommendations(&result)
	return &result, nil
}

func normalizeRecommendations(r *Recommendations) {
	if r.BusinessRecommendations == nil {
		r.BusinessRecommendations = []BusinessRecommendation{}
	}
	if r.SustainabilityTips == nil {
		r.SustainabilityTips = []string{}
	}
	if r.SuggestedCategories == nil {
		r.SuggestedCategories = []string{}
	}
}

// gettingStartedRecommendations covers users with no recorded activity yet.
func gettingStartedRecommendations() *Recommendations {
	return &Recommendations{
		BusinessRecommendations: []BusinessRecommendation{
			{
				Type:           "getting_started",
				Recommendation: "Start exploring sustainable businesses",
				Reason:         "Browse the directory and view a few businesses to unlock personalized recommendations",
			},
		},
		SustainabilityTips: []string{
			"Look for businesses with high sustainability scores",
			"Check certifications when comparing similar businesses",
		},
		SuggestedCategories: []string{"Clothing", "Beauty", "Home Goods"},
	}
}

// fallbackRecommendations keeps the payload contract intact when generation
// is unavailable.
func fallbackRecommendations() *Recommendations {
	return &Recommendations{
		BusinessRecommendations: []BusinessRecommendation{},
		SustainabilityTips:      []string{"Focus on businesses with high sustainability scores"},
		SuggestedCategories:     []string{},
	}
}
