package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"forgebase.backend/pkg/utils"
)

const RequestIDKey = "request_id"

// RequestID assigns every request a unique ID, honoring an inbound
// X-Request-ID from upstream proxies.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = utils.GenerateUUIDv7().String()
		}

		c.Set(RequestIDKey, id)
		c.Header("X-Request-ID", id)

		// Plain string key so logger.WithContext(c.Request.Context())
		// can pick it up.
		ctx := context.WithValue(c.Request.Context(), "request_id", id) //nolint:staticcheck
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
