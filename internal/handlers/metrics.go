package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/verdora/verdora-backend/internal/services"
)

type MetricsHandler struct {
	directoryService services.DirectoryService
}

func NewMetricsHandler(directoryService services.DirectoryService) *MetricsHandler {
	return &MetricsHandler{directoryService: directoryService}
}

func (mh *MetricsHandler) Summary(c *gin.Context) {
	summary, err := mh.directoryService.MetricsSummary(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, summary)
}

func (mh *MetricsHandler) TopPerformers(c *gin.Context) {
	metric := c.DefaultQuery("metric", "sustainability_score")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	businesses, err := mh.directoryService.TopByMetric(c.Request.Context(), metric, limit)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"metric": metric, "businesses": businesses})
}

func (mh *MetricsHandler) StateAverages(c *gin.Context) {
	averages, err := mh.directoryService.StateAverages(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"states": averages})
}
