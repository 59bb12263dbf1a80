package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/verdora/verdora-backend/internal/query"
	"github.com/verdora/verdora-backend/internal/requestdata"
	"github.com/verdora/verdora-backend/internal/services"
	"github.com/verdora/verdora-backend/internal/types"
)

type BusinessHandler struct {
	directoryService   services.DirectoryService
	interactionService services.InteractionService
}

func NewBusinessHandler(directoryService services.DirectoryService, interactionService services.InteractionService) *BusinessHandler {
	return &BusinessHandler{directoryService: directoryService, interactionService: interactionService}
}

// List serves the paginated, filtered, sorted directory view.
func (bh *BusinessHandler) List(c *gin.Context) {
	filter, err := query.ParseFilter(map[string]string{
		"search":    c.Query("search"),
		"state":     c.Query("state"),
		"category":  c.Query("category"),
		"min_score": c.Query("min_score"),
		"max_score": c.Query("max_score"),
	})
	if err != nil {
		RespondError(c, err)
		return
	}
	sort, err := query.ParseSort(c.Query("sort_by"), c.Query("sort_order"))
	if err != nil {
		RespondError(c, err)
		return
	}
	page, err := query.ParsePage(c.Query("page"), c.Query("per_page"))
	if err != nil {
		RespondError(c, err)
		return
	}

	result, err := bh.directoryService.ListBusinesses(c.Request.Context(), filter, sort, page)
	if err != nil {
		RespondError(c, err)
		return
	}

	if userID := requestdata.UserID(c.Request.Context()); userID != 0 && filter.Category != "" {
		category := filter.Category
		bh.interactionService.Record(c.Request.Context(), userID, types.InteractionFilterCategory,
			services.InteractionPayload{Category: &category})
	}

	RespondOK(c, result)
}

func (bh *BusinessHandler) FilterOptions(c *gin.Context) {
	options, err := bh.directoryService.FilterOptions(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, options)
}
