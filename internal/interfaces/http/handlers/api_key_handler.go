package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"forgebase.backend/internal/domain/entities"
	domainerrors "forgebase.backend/internal/domain/errors"
	"forgebase.backend/internal/interfaces/http/response"
	"forgebase.backend/internal/usecases"
)

// ApiKeyHandler handles API key management endpoints
type ApiKeyHandler struct {
	apiKeyUsecase *usecases.ApiKeyUsecase
}

// NewApiKeyHandler creates a new API key handler
func NewApiKeyHandler(apiKeyUsecase *usecases.ApiKeyUsecase) *ApiKeyHandler {
	return &ApiKeyHandler{apiKeyUsecase: apiKeyUsecase}
}

// Create mints a key for a project. This response is the only place the
// full secret ever appears; store it now or never.
// POST /api/v1/projects/:projectId/keys
func (h *ApiKeyHandler) Create(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	projectID, ok := parseIDParam(c, "projectId")
	if !ok {
		return
	}

	var input entities.CreateApiKeyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	resp, err := h.apiKeyUsecase.CreateKey(c.Request.Context(), projectID, userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

// List returns a project's keys, masked
// GET /api/v1/projects/:projectId/keys
func (h *ApiKeyHandler) List(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	projectID, ok := parseIDParam(c, "projectId")
	if !ok {
		return
	}

	keys, err := h.apiKeyUsecase.ListKeys(c.Request.Context(), projectID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"keys": keys})
}

// Get returns one owned key, masked
// GET /api/v1/keys/:keyId
func (h *ApiKeyHandler) Get(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	keyID, ok := parseIDParam(c, "keyId")
	if !ok {
		return
	}

	key, err := h.apiKeyUsecase.GetKey(c.Request.Context(), keyID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, key)
}

// Update applies a partial update to an owned key
// PATCH /api/v1/keys/:keyId
func (h *ApiKeyHandler) Update(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	keyID, ok := parseIDParam(c, "keyId")
	if !ok {
		return
	}

	var input entities.UpdateApiKeyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	key, err := h.apiKeyUsecase.UpdateKey(c.Request.Context(), keyID, userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, key)
}

// Delete removes an owned key
// DELETE /api/v1/keys/:keyId
func (h *ApiKeyHandler) Delete(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	keyID, ok := parseIDParam(c, "keyId")
	if !ok {
		return
	}

	if err := h.apiKeyUsecase.DeleteKey(c.Request.Context(), keyID, userID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "API key deleted"})
}
