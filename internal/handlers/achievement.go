package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/verdora/verdora-backend/internal/requestdata"
	"github.com/verdora/verdora-backend/internal/services"
)

type AchievementHandler struct {
	achievementService services.AchievementService
}

func NewAchievementHandler(achievementService services.AchievementService) *AchievementHandler {
	return &AchievementHandler{achievementService: achievementService}
}

func (ah *AchievementHandler) List(c *gin.Context) {
	achievements, err := ah.achievementService.List(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"achievements": achievements})
}

func (ah *AchievementHandler) ListForUser(c *gin.Context) {
	userID := requestdata.UserID(c.Request.Context())
	earned, err := ah.achievementService.ListForUser(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"achievements": earned})
}
