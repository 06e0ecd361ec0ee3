package middleware

import (
	"github.com/gin-gonic/gin"
	"forgebase.backend/internal/domain/entities"
	domainerrors "forgebase.backend/internal/domain/errors"
	"forgebase.backend/internal/interfaces/http/response"
)

// RequireCapabilities denies requests whose resolved key does not grant
// every listed capability. Requests that carry no resolved key (the
// optional gate let them through anonymously) and empty requirement
// lists both pass; the denial echoes the required and granted sets.
func RequireCapabilities(required ...entities.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(required) == 0 {
			c.Next()
			return
		}

		key, ok := GetAPIKey(c)
		if !ok {
			c.Next()
			return
		}

		if !key.HasCapabilities(required) {
			response.AbortError(c, domainerrors.InsufficientPermissions(
				entities.CapabilityStrings(required),
				entities.CapabilityStrings(key.Capabilities),
			))
			return
		}

		c.Next()
	}
}
