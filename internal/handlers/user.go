package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/verdora/verdora-backend/internal/apierr"
	"github.com/verdora/verdora-backend/internal/repos"
	"github.com/verdora/verdora-backend/internal/requestdata"
)

type UserHandler struct {
	userRepo repos.UserRepo
}

func NewUserHandler(userRepo repos.UserRepo) *UserHandler {
	return &UserHandler{userRepo: userRepo}
}

func (uh *UserHandler) GetCurrent(c *gin.Context) {
	userID := requestdata.UserID(c.Request.Context())
	user, err := uh.userRepo.GetByID(c.Request.Context(), nil, userID)
	if err != nil {
		RespondError(c, err)
		return
	}
	if user == nil {
		RespondError(c, apierr.NotFound(fmt.Errorf("user %d not found", userID)))
		return
	}
	RespondOK(c, gin.H{"user": user})
}
