package middleware

import (
	"context"
	"regexp"

	"github.com/gin-gonic/gin"
	"forgebase.backend/internal/domain/entities"
	domainerrors "forgebase.backend/internal/domain/errors"
	"forgebase.backend/internal/interfaces/http/response"
	"forgebase.backend/internal/usecases"
	"forgebase.backend/pkg/apikey"
)

const (
	// ApiKeyHeader carries the API key secret
	ApiKeyHeader = "X-API-Key"
	// ProjectIDHeader carries the legacy project identifier used by
	// format-only verification
	ProjectIDHeader = "X-Project-ID"

	// ApiKeyCtxKey is the context key for the resolved key entity
	ApiKeyCtxKey = "apiKey"
	// ProjectCtxKey is the context key for the resolved project entity
	ProjectCtxKey = "apiKeyProject"
)

// VerificationLevel selects how much the key gate proves about the
// presented credential before letting the request through.
type VerificationLevel int

const (
	// VerificationStrict requires a resolvable active key; the resolved
	// key and project are attached to the request context.
	VerificationStrict VerificationLevel = iota
	// VerificationOptional resolves the key when one is present;
	// anonymous and unresolvable requests pass with nothing attached.
	VerificationOptional
	// VerificationFormatOnly checks credential shape without touching
	// the store; nothing is attached.
	VerificationFormatOnly
)

// legacyProjectIDPattern is the shape of pre-migration project
// identifiers accepted by format-only verification.
var legacyProjectIDPattern = regexp.MustCompile(`^[a-f0-9]{24}$`)

// KeyAuth authenticates requests by API key at the given verification
// level. Strict resolution also bumps the key's last_used_at off the
// request path.
func KeyAuth(apiKeyUsecase *usecases.ApiKeyUsecase, level VerificationLevel) gin.HandlerFunc {
	return func(c *gin.Context) {
		secret := c.GetHeader(ApiKeyHeader)

		switch level {
		case VerificationFormatOnly:
			if secret == "" {
				response.AbortError(c, domainerrors.MissingKey())
				return
			}
			if !apikey.IsValidFormat(secret) {
				response.AbortError(c, domainerrors.InvalidKey())
				return
			}
			if pid := c.GetHeader(ProjectIDHeader); pid != "" && !legacyProjectIDPattern.MatchString(pid) {
				response.AbortError(c, domainerrors.MalformedIdentifier("X-Project-ID must be a 24 character hex string"))
				return
			}

		case VerificationOptional:
			if secret != "" {
				// A missing or unresolvable key is not a failure here;
				// downstream code branches on whether a key is attached.
				if key, err := apiKeyUsecase.Authenticate(c.Request.Context(), secret); err == nil {
					attachKey(c, key)
				}
			}

		default: // VerificationStrict
			if secret == "" {
				response.AbortError(c, domainerrors.MissingKey())
				return
			}
			key, err := apiKeyUsecase.Authenticate(c.Request.Context(), secret)
			if err != nil {
				response.AbortError(c, err)
				return
			}
			attachKey(c, key)
			go apiKeyUsecase.TouchLastUsed(context.Background(), key.ID)
		}

		c.Next()
	}
}

func attachKey(c *gin.Context, key *entities.ApiKey) {
	c.Set(ApiKeyCtxKey, key)
	if key.Project != nil {
		c.Set(ProjectCtxKey, key.Project)
	}
}

// GetAPIKey gets the resolved API key from context
func GetAPIKey(c *gin.Context) (*entities.ApiKey, bool) {
	v, exists := c.Get(ApiKeyCtxKey)
	if !exists {
		return nil, false
	}
	return v.(*entities.ApiKey), true
}

// GetProject gets the resolved project from context
func GetProject(c *gin.Context) (*entities.Project, bool) {
	v, exists := c.Get(ProjectCtxKey)
	if !exists {
		return nil, false
	}
	return v.(*entities.Project), true
}
