package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/verdora/verdora-backend/internal/services"
)

type GeoSearchHandler struct {
	geoSearchService services.GeoSearchService
}

func NewGeoSearchHandler(geoSearchService services.GeoSearchService) *GeoSearchHandler {
	return &GeoSearchHandler{geoSearchService: geoSearchService}
}

func (gh *GeoSearchHandler) SearchNearby(c *gin.Context) {
	var req services.GeoSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "invalid request body")
		return
	}
	result, err := gh.geoSearchService.Search(c.Request.Context(), req)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, result)
}
