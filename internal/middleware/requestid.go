package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/verdora/verdora-backend/internal/requestdata"
)

// AttachRequestContext seeds every request with mutable request data and a
// request id, echoed back in the X-Request-ID header.
func AttachRequestContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx := requestdata.WithRequestData(c.Request.Context(), &requestdata.RequestData{RequestID: requestID})
		c.Request = c.Request.WithContext(ctx)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}
