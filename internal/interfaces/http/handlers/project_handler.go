package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"forgebase.backend/internal/domain/entities"
	domainerrors "forgebase.backend/internal/domain/errors"
	"forgebase.backend/internal/interfaces/http/middleware"
	"forgebase.backend/internal/interfaces/http/response"
	"forgebase.backend/internal/usecases"
	"forgebase.backend/pkg/utils"
)

// ProjectHandler handles project CRUD endpoints
type ProjectHandler struct {
	projectUsecase *usecases.ProjectUsecase
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projectUsecase *usecases.ProjectUsecase) *ProjectHandler {
	return &ProjectHandler{projectUsecase: projectUsecase}
}

// parseIDParam reads a UUID path parameter, distinguishing a malformed
// shape from a missing resource.
func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.Error(c, domainerrors.MalformedIdentifier(name+" must be a valid UUID"))
		return uuid.Nil, false
	}
	return id, true
}

func requireUser(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return uuid.Nil, false
	}
	return userID, true
}

// Create handles project creation
// POST /api/v1/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var input entities.CreateProjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	project, err := h.projectUsecase.CreateProject(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, project)
}

// List returns the caller's projects, paginated
// GET /api/v1/projects?page=1&limit=20
func (h *ProjectHandler) List(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	projects, err := h.projectUsecase.ListProjects(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	var query utils.PaginationParams
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}
	params := utils.GetPaginationParams(query.Page, query.Limit)
	meta := utils.CalculateMeta(int64(len(projects)), params.Page, params.Limit)

	page := projects
	if params.Limit > 0 {
		start := params.CalculateOffset()
		if start > len(projects) {
			start = len(projects)
		}
		end := start + params.Limit
		if end > len(projects) {
			end = len(projects)
		}
		page = projects[start:end]
	}

	response.Success(c, http.StatusOK, gin.H{"projects": page, "pagination": meta})
}

// Get returns one owned project
// GET /api/v1/projects/:projectId
func (h *ProjectHandler) Get(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	projectID, ok := parseIDParam(c, "projectId")
	if !ok {
		return
	}

	project, err := h.projectUsecase.GetProject(c.Request.Context(), projectID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, project)
}

// Update applies a partial update to an owned project
// PATCH /api/v1/projects/:projectId
func (h *ProjectHandler) Update(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	projectID, ok := parseIDParam(c, "projectId")
	if !ok {
		return
	}

	var input entities.UpdateProjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	project, err := h.projectUsecase.UpdateProject(c.Request.Context(), projectID, userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, project)
}

// Delete removes an owned project and its keys
// DELETE /api/v1/projects/:projectId
func (h *ProjectHandler) Delete(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	projectID, ok := parseIDParam(c, "projectId")
	if !ok {
		return
	}

	if err := h.projectUsecase.DeleteProject(c.Request.Context(), projectID, userID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "project deleted"})
}
