package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/verdora/verdora-backend/internal/apierr"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// RespondError writes the taxonomy status and code carried by err, falling
// back to a 500 for errors that escaped classification.
func RespondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	code := ""
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	if apiErr := apierr.From(err); apiErr != nil {
		status = apiErr.Status
		code = apiErr.Code
	}
	c.JSON(status, ErrorEnvelope{Error: APIError{Message: msg, Code: code}})
}

// RespondBadRequest covers malformed request bodies and path parameters that
// never reach a service.
func RespondBadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorEnvelope{Error: APIError{Message: msg, Code: apierr.CodeInvalidFilterValue}})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
