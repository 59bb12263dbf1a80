package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/verdora/verdora-backend/internal/requestdata"
	"github.com/verdora/verdora-backend/internal/services"
)

type FavoriteHandler struct {
	favoriteService services.FavoriteService
}

func NewFavoriteHandler(favoriteService services.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService}
}

func businessIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("businessID"), 10, 64)
	if err != nil || id == 0 {
		RespondBadRequest(c, "businessID must be a positive integer")
		return 0, false
	}
	return uint(id), true
}

func (fh *FavoriteHandler) Add(c *gin.Context) {
	businessID, ok := businessIDParam(c)
	if !ok {
		return
	}
	userID := requestdata.UserID(c.Request.Context())
	if err := fh.favoriteService.Add(c.Request.Context(), userID, businessID); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"favorited": true})
}

func (fh *FavoriteHandler) Remove(c *gin.Context) {
	businessID, ok := businessIDParam(c)
	if !ok {
		return
	}
	userID := requestdata.UserID(c.Request.Context())
	if err := fh.favoriteService.Remove(c.Request.Context(), userID, businessID); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"favorited": false})
}

func (fh *FavoriteHandler) List(c *gin.Context) {
	userID := requestdata.UserID(c.Request.Context())
	favorites, err := fh.favoriteService.List(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"favorites": favorites})
}
