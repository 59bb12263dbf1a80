package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/verdora/verdora-backend/internal/requestdata"
	"github.com/verdora/verdora-backend/internal/services"
)

type InteractionHandler struct {
	interactionService services.InteractionService
}

func NewInteractionHandler(interactionService services.InteractionService) *InteractionHandler {
	return &InteractionHandler{interactionService: interactionService}
}

// Record accepts a tracking event. It always returns 200 for a well-formed
// body; a lost event must never surface as a failed page action.
func (ih *InteractionHandler) Record(c *gin.Context) {
	var req struct {
		InteractionType     string   `json:"interaction_type"`
		BusinessID          *uint    `json:"business_id"`
		Category            *string  `json:"category"`
		State               *string  `json:"state"`
		SustainabilityScore *float64 `json:"sustainability_score"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "invalid request body")
		return
	}
	userID := requestdata.UserID(c.Request.Context())
	ih.interactionService.Record(c.Request.Context(), userID, req.InteractionType, services.InteractionPayload{
		BusinessID:          req.BusinessID,
		Category:            req.Category,
		State:               req.State,
		SustainabilityScore: req.SustainabilityScore,
	})
	RespondOK(c, gin.H{"recorded": true})
}

func (ih *InteractionHandler) History(c *gin.Context) {
	userID := requestdata.UserID(c.Request.Context())
	window := services.DefaultHistoryWindow
	if raw := c.Query("window_days"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil || days < 1 || days > 365 {
			RespondBadRequest(c, "window_days must be an integer between 1 and 365")
			return
		}
		window = time.Duration(days) * 24 * time.Hour
	}
	summary, err := ih.interactionService.History(c.Request.Context(), userID, window)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, summary)
}
