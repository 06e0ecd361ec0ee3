package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"forgebase.backend/internal/domain/entities"
	domainerrors "forgebase.backend/internal/domain/errors"
	"forgebase.backend/internal/domain/repositories"
	"forgebase.backend/internal/infrastructure/models"
	"forgebase.backend/pkg/utils"
)

// projectRepo implements repositories.ProjectRepository
type projectRepo struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *gorm.DB) repositories.ProjectRepository {
	return &projectRepo{db: db}
}

// Create creates a new project
func (r *projectRepo) Create(ctx context.Context, project *entities.Project) error {
	if project.ID == uuid.Nil {
		project.ID = utils.GenerateUUIDv7()
	}
	now := time.Now()
	if project.CreatedAt.IsZero() {
		project.CreatedAt = now
		project.UpdatedAt = now
	}
	if project.Environment == "" {
		project.Environment = "live"
	}

	m := &models.Project{
		ID:          project.ID,
		UserID:      project.UserID,
		Name:        project.Name,
		Description: project.Description,
		Environment: project.Environment,
		IsActive:    project.IsActive,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}
	return r.db.WithContext(ctx).Create(m).Error
}

// GetByID gets a project by ID
func (r *projectRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.Project, error) {
	var m models.Project
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// ListByUserID lists a user's projects, newest first
func (r *projectRepo) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.Project, error) {
	var ms []models.Project
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&ms).Error; err != nil {
		return nil, err
	}

	projects := make([]*entities.Project, 0, len(ms))
	for i := range ms {
		projects = append(projects, r.toEntity(&ms[i]))
	}
	return projects, nil
}

// Update updates mutable project fields
func (r *projectRepo) Update(ctx context.Context, project *entities.Project) error {
	updates := map[string]interface{}{
		"name":        project.Name,
		"description": project.Description,
		"is_active":   project.IsActive,
		"updated_at":  time.Now(),
	}
	res := r.db.WithContext(ctx).Model(&models.Project{}).Where("id = ?", project.ID).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Delete soft-deletes a project
func (r *projectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Project{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *projectRepo) toEntity(m *models.Project) *entities.Project {
	e := &entities.Project{
		ID:          m.ID,
		UserID:      m.UserID,
		Name:        m.Name,
		Description: m.Description,
		Environment: m.Environment,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if m.DeletedAt.Valid {
		t := m.DeletedAt.Time
		e.DeletedAt = &t
	}
	return e
}
