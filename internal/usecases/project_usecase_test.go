package usecases_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"forgebase.backend/internal/domain/entities"
	domainerrors "forgebase.backend/internal/domain/errors"
	"forgebase.backend/internal/usecases"
)

func TestProjectUsecase_CreateProject(t *testing.T) {
	mockProjectRepo := new(MockProjectRepository)
	mockApiKeyRepo := new(MockApiKeyRepository)
	uc := usecases.NewProjectUsecase(mockProjectRepo, mockApiKeyRepo)
	ctx := context.Background()
	userID := uuid.New()

	mockProjectRepo.On("Create", ctx, mock.AnythingOfType("*entities.Project")).Return(nil).Once()

	project, err := uc.CreateProject(ctx, userID, &entities.CreateProjectInput{Name: "My App"})
	require.NoError(t, err)
	assert.Equal(t, userID, project.UserID)
	assert.Equal(t, "live", project.Environment, "environment defaults to live")
	assert.True(t, project.IsActive)
	mockProjectRepo.AssertExpectations(t)
}

func TestProjectUsecase_GetProject_Ownership(t *testing.T) {
	mockProjectRepo := new(MockProjectRepository)
	mockApiKeyRepo := new(MockApiKeyRepository)
	uc := usecases.NewProjectUsecase(mockProjectRepo, mockApiKeyRepo)
	ctx := context.Background()

	owner := uuid.New()
	project := &entities.Project{ID: uuid.New(), UserID: owner, Name: "Mine"}

	mockProjectRepo.On("GetByID", ctx, project.ID).Return(project, nil)

	got, err := uc.GetProject(ctx, project.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, project.ID, got.ID)

	_, err = uc.GetProject(ctx, project.ID, uuid.New())
	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.CodeForbidden, appErr.Code)

	missing := uuid.New()
	mockProjectRepo.On("GetByID", ctx, missing).Return(nil, domainerrors.ErrNotFound).Once()
	_, err = uc.GetProject(ctx, missing, owner)
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.CodeNotFound, appErr.Code)
}

func TestProjectUsecase_UpdateProject(t *testing.T) {
	mockProjectRepo := new(MockProjectRepository)
	mockApiKeyRepo := new(MockApiKeyRepository)
	uc := usecases.NewProjectUsecase(mockProjectRepo, mockApiKeyRepo)
	ctx := context.Background()

	owner := uuid.New()
	project := &entities.Project{ID: uuid.New(), UserID: owner, Name: "Old", IsActive: true}

	mockProjectRepo.On("GetByID", ctx, project.ID).Return(project, nil).Once()
	mockProjectRepo.On("Update", ctx, project).Return(nil).Once()

	name := "New Name"
	inactive := false
	got, err := uc.UpdateProject(ctx, project.ID, owner, &entities.UpdateProjectInput{
		Name:     &name,
		IsActive: &inactive,
	})
	require.NoError(t, err)
	assert.Equal(t, "New Name", got.Name)
	assert.False(t, got.IsActive)
	mockProjectRepo.AssertExpectations(t)
}

func TestProjectUsecase_DeleteProject_CascadesKeys(t *testing.T) {
	mockProjectRepo := new(MockProjectRepository)
	mockApiKeyRepo := new(MockApiKeyRepository)
	uc := usecases.NewProjectUsecase(mockProjectRepo, mockApiKeyRepo)
	ctx := context.Background()

	owner := uuid.New()
	project := &entities.Project{ID: uuid.New(), UserID: owner}

	mockProjectRepo.On("GetByID", ctx, project.ID).Return(project, nil).Once()
	mockApiKeyRepo.On("DeleteByProjectID", ctx, project.ID).Return(nil).Once()
	mockProjectRepo.On("Delete", ctx, project.ID).Return(nil).Once()

	require.NoError(t, uc.DeleteProject(ctx, project.ID, owner))
	mockProjectRepo.AssertExpectations(t)
	mockApiKeyRepo.AssertExpectations(t)
}
