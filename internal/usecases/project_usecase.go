package usecases

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"forgebase.backend/internal/domain/entities"
	domainerrors "forgebase.backend/internal/domain/errors"
	"forgebase.backend/internal/domain/repositories"
)

// ProjectUsecase handles project CRUD and ownership checks
type ProjectUsecase struct {
	projectRepo repositories.ProjectRepository
	apiKeyRepo  repositories.ApiKeyRepository
}

// NewProjectUsecase creates a new project usecase
func NewProjectUsecase(projectRepo repositories.ProjectRepository, apiKeyRepo repositories.ApiKeyRepository) *ProjectUsecase {
	return &ProjectUsecase{
		projectRepo: projectRepo,
		apiKeyRepo:  apiKeyRepo,
	}
}

// CreateProject creates a project for the owner
func (u *ProjectUsecase) CreateProject(ctx context.Context, userID uuid.UUID, input *entities.CreateProjectInput) (*entities.Project, error) {
	env := input.Environment
	if env == "" {
		env = "live"
	}

	project := &entities.Project{
		UserID:      userID,
		Name:        input.Name,
		Description: input.Description,
		Environment: env,
		IsActive:    true,
	}
	if err := u.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// ListProjects lists the owner's projects
func (u *ProjectUsecase) ListProjects(ctx context.Context, userID uuid.UUID) ([]*entities.Project, error) {
	return u.projectRepo.ListByUserID(ctx, userID)
}

// GetProject loads a project the caller owns. Distinguishes "not found"
// from "exists but owned by someone else".
func (u *ProjectUsecase) GetProject(ctx context.Context, projectID, userID uuid.UUID) (*entities.Project, error) {
	project, err := u.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("project not found")
		}
		return nil, err
	}
	if project.UserID != userID {
		return nil, domainerrors.Forbidden("project belongs to another user")
	}
	return project, nil
}

// UpdateProject applies a partial update to an owned project
func (u *ProjectUsecase) UpdateProject(ctx context.Context, projectID, userID uuid.UUID, input *entities.UpdateProjectInput) (*entities.Project, error) {
	project, err := u.GetProject(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		project.Name = *input.Name
	}
	if input.Description != nil {
		project.Description = *input.Description
	}
	if input.IsActive != nil {
		project.IsActive = *input.IsActive
	}

	if err := u.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// DeleteProject removes an owned project and hard-deletes its keys.
// Usage records keep their dangling references and age out on retention.
func (u *ProjectUsecase) DeleteProject(ctx context.Context, projectID, userID uuid.UUID) error {
	if _, err := u.GetProject(ctx, projectID, userID); err != nil {
		return err
	}
	if err := u.apiKeyRepo.DeleteByProjectID(ctx, projectID); err != nil {
		return err
	}
	return u.projectRepo.Delete(ctx, projectID)
}
