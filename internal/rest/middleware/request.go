package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wildpine/wildpine/internal/types"
)

// RequestIDMiddleware adds a unique request ID to each request
func RequestIDMiddleware(c *gin.Context) {
	requestID := c.GetHeader(types.HeaderRequestID)
	if requestID == "" {
		requestID = uuid.New().String()
	}

	c.Request = c.Request.WithContext(
		types.SetRequestID(c.Request.Context(), requestID),
	)
	c.Header(types.HeaderRequestID, requestID)
	c.Next()
}
