package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"forgebase.backend/internal/domain/entities"
	domainerrors "forgebase.backend/internal/domain/errors"
)

func TestUserRepository_CRUD(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &entities.User{
		Email:        "owner@example.com",
		Name:         "Owner",
		PasswordHash: "$2a$12$hash",
	}
	require.NoError(t, repo.Create(ctx, user))
	require.NotEqual(t, uuid.Nil, user.ID)

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "owner@example.com", got.Email)

	got, err = repo.GetByEmail(ctx, "owner@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = repo.GetByEmail(ctx, "stranger@example.com")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	dup := &entities.User{Email: "owner@example.com", Name: "Imposter", PasswordHash: "x"}
	assert.ErrorIs(t, repo.Create(ctx, dup), domainerrors.ErrAlreadyExists)

	user.Name = "Renamed Owner"
	require.NoError(t, repo.Update(ctx, user))
	got, err = repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed Owner", got.Name)

	ghost := &entities.User{ID: uuid.New(), Name: "Ghost"}
	assert.ErrorIs(t, repo.Update(ctx, ghost), domainerrors.ErrNotFound)
}

func TestProjectRepository_CRUD(t *testing.T) {
	db := newTestDB(t)
	createProjectTable(t, db)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	project := &entities.Project{
		UserID:      userID,
		Name:        "My App",
		Description: "demo backend",
		IsActive:    true,
	}
	require.NoError(t, repo.Create(ctx, project))
	assert.Equal(t, "live", project.Environment, "environment defaults to live")

	other := &entities.Project{UserID: userID, Name: "Second", Environment: "test", IsActive: true}
	require.NoError(t, repo.Create(ctx, other))

	// A project for another user is not listed.
	foreign := &entities.Project{UserID: uuid.New(), Name: "Foreign", IsActive: true}
	require.NoError(t, repo.Create(ctx, foreign))

	projects, err := repo.ListByUserID(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, projects, 2)

	project.Name = "My App v2"
	project.IsActive = false
	require.NoError(t, repo.Update(ctx, project))
	got, err := repo.GetByID(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, "My App v2", got.Name)
	assert.False(t, got.IsActive)

	require.NoError(t, repo.Delete(ctx, project.ID))
	_, err = repo.GetByID(ctx, project.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, project.ID), domainerrors.ErrNotFound)
}
