package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/verdora/verdora-backend/internal/requestdata"
	"github.com/verdora/verdora-backend/internal/services"
)

type RecommendationHandler struct {
	recommendationService services.RecommendationService
}

func NewRecommendationHandler(recommendationService services.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{recommendationService: recommendationService}
}

func (rh *RecommendationHandler) Generate(c *gin.Context) {
	userID := requestdata.UserID(c.Request.Context())
	recommendations, err := rh.recommendationService.GenerateForUser(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, recommendations)
}
