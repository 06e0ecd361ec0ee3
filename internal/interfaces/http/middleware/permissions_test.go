package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"forgebase.backend/internal/domain/entities"
	"forgebase.backend/internal/interfaces/http/middleware"
)

func newPermissionsRouter(key *entities.ApiKey, required ...entities.Capability) *gin.Engine {
	r := gin.New()
	r.GET("/v1/resource",
		func(c *gin.Context) {
			if key != nil {
				c.Set(middleware.ApiKeyCtxKey, key)
			}
		},
		middleware.RequireCapabilities(required...),
		func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) },
	)
	return r
}

func servePermissions(r *gin.Engine) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/v1/resource", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireCapabilities_Allowed(t *testing.T) {
	key := &entities.ApiKey{
		ID:           uuid.New(),
		Capabilities: []entities.Capability{entities.CapabilityAuth, entities.CapabilityDatabase},
	}
	r := newPermissionsRouter(key, entities.CapabilityDatabase)

	w := servePermissions(r)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireCapabilities_DeniedEchoesBothSets(t *testing.T) {
	key := &entities.ApiKey{
		ID:           uuid.New(),
		Capabilities: []entities.Capability{entities.CapabilityAuth},
	}
	r := newPermissionsRouter(key, entities.CapabilityDatabase, entities.CapabilityStorage)

	w := servePermissions(r)
	assert.Equal(t, http.StatusForbidden, w.Code)

	body := decodeError(t, w)
	assert.Equal(t, "insufficient_permissions", body["error"])
	assert.ElementsMatch(t, []interface{}{"database", "storage"}, body["required"])
	assert.ElementsMatch(t, []interface{}{"auth"}, body["current"])
}

func TestRequireCapabilities_NoKeyPasses(t *testing.T) {
	// Anonymous requests that survived the optional gate are not the
	// permission gate's problem.
	r := newPermissionsRouter(nil, entities.CapabilityStorage)

	w := servePermissions(r)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireCapabilities_EmptyRequirementPasses(t *testing.T) {
	key := &entities.ApiKey{ID: uuid.New()}
	r := newPermissionsRouter(key)

	w := servePermissions(r)
	assert.Equal(t, http.StatusOK, w.Code)
}
