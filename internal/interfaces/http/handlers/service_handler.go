package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	domainerrors "forgebase.backend/internal/domain/errors"
	"forgebase.backend/internal/interfaces/http/middleware"
	"forgebase.backend/internal/interfaces/http/response"
	"forgebase.backend/pkg/utils"
)

// ServiceHandler serves the key-scoped service surface (/v1/...). The
// handlers answer with project-scoped placeholder payloads; their job
// here is exercising the gate, permission and usage pipeline that every
// real service call flows through.
type ServiceHandler struct{}

// NewServiceHandler creates a new service handler
func NewServiceHandler() *ServiceHandler {
	return &ServiceHandler{}
}

// VerifyToken answers an end-user token verification call
// POST /v1/auth/verify
func (h *ServiceHandler) VerifyToken(c *gin.Context) {
	var input struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	project, _ := middleware.GetProject(c)
	response.Success(c, http.StatusOK, gin.H{
		"valid":      true,
		"projectId":  project.ID,
		"verifiedAt": time.Now().UTC(),
	})
}

// ListUsers answers an end-user directory call
// GET /v1/auth/users
func (h *ServiceHandler) ListUsers(c *gin.Context) {
	project, _ := middleware.GetProject(c)
	response.Success(c, http.StatusOK, gin.H{
		"projectId": project.ID,
		"users":     []gin.H{},
		"total":     0,
	})
}

// Query answers a database query call
// POST /v1/database/query
func (h *ServiceHandler) Query(c *gin.Context) {
	var input struct {
		Table  string                 `json:"table" binding:"required"`
		Filter map[string]interface{} `json:"filter"`
		Limit  int                    `json:"limit"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	project, _ := middleware.GetProject(c)
	response.Success(c, http.StatusOK, gin.H{
		"projectId": project.ID,
		"table":     input.Table,
		"rows":      []gin.H{},
		"count":     0,
	})
}

// Insert answers a database insert call
// POST /v1/database/insert
func (h *ServiceHandler) Insert(c *gin.Context) {
	var input struct {
		Table    string                 `json:"table" binding:"required"`
		Document map[string]interface{} `json:"document" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"table":      input.Table,
		"insertedId": utils.GenerateUUIDv7(),
	})
}

// ListFiles answers a storage listing call
// GET /v1/storage/files
func (h *ServiceHandler) ListFiles(c *gin.Context) {
	project, _ := middleware.GetProject(c)
	response.Success(c, http.StatusOK, gin.H{
		"projectId": project.ID,
		"files":     []gin.H{},
		"prefix":    c.Query("prefix"),
	})
}

// UploadFile answers a storage upload call
// POST /v1/storage/upload
func (h *ServiceHandler) UploadFile(c *gin.Context) {
	var input struct {
		Name        string `json:"name" binding:"required"`
		ContentType string `json:"contentType"`
		Size        int64  `json:"size"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"fileId":     utils.GenerateUUIDv7(),
		"name":       input.Name,
		"uploadedAt": time.Now().UTC(),
	})
}
