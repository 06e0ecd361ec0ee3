package repositories

import (
	"context"
	"encoding/json"
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

// apiKeyRepo implements repositories.ApiKeyRepository
type apiKeyRepo struct {
	db *gorm.DB
}

// NewApiKeyRepository creates a new API key repository
func NewApiKeyRepository(db *gorm.DB) repositories.ApiKeyRepository {
	return &apiKeyRepo{db: db}
}

// Create persists a new key. A unique violation on the secret column maps
// to ErrDuplicateSecret so the caller can retry generation.
func (r *apiKeyRepo) Create(ctx context.Context, key *entities.ApiKey) error {
	if key.ID == uuid.Nil {
		key.ID = utils.GenerateUUIDv7()
	}
	now := time.Now()
	if key.CreatedAt.IsZero() {
		key.CreatedAt = now
		key.UpdatedAt = now
	}

	perms, err := marshalCapabilities(key.Capabilities)
	if err != nil {
		return err
	}

	m := &models.ApiKey{
		ID:          key.ID,
		ProjectID:   key.ProjectID,
		Name:        key.Name,
		Description: key.Description,
		Key:         key.Key,
		KeyMasked:   key.KeyMasked,
		Permissions: perms,
		IsActive:    key.IsActive,
		LastUsedAt:  key.LastUsedAt,
		CreatedAt:   key.CreatedAt,
		UpdatedAt:   key.UpdatedAt,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if isDuplicateErr(err) {
			return domainerrors.ErrDuplicateSecret
		}
		return err
	}
	return nil
}

// FindBySecret does the per-request exact-match lookup, preloading the
// owning project so the auth gate can detect orphaned keys.
func (r *apiKeyRepo) FindBySecret(ctx context.Context, secret string) (*entities.ApiKey, error) {
	var m models.ApiKey
	if err := r.db.WithContext(ctx).Preload("Project").Where("key = ?", secret).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m)
}

// FindByID gets a key by ID
func (r *apiKeyRepo) FindByID(ctx context.Context, id uuid.UUID) (*entities.ApiKey, error) {
	var m models.ApiKey
	if err := r.db.WithContext(ctx).Preload("Project").Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m)
}

// ListByProjectID lists a project's keys, newest first
func (r *apiKeyRepo) ListByProjectID(ctx context.Context, projectID uuid.UUID) ([]*entities.ApiKey, error) {
	var ms []models.ApiKey
	if err := r.db.WithContext(ctx).Where("project_id = ?", projectID).Order("created_at DESC").Find(&ms).Error; err != nil {
		return nil, err
	}

	keys := make([]*entities.ApiKey, 0, len(ms))
	for i := range ms {
		key, err := r.toEntity(&ms[i])
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// Update updates mutable key fields; the secret itself is immutable
func (r *apiKeyRepo) Update(ctx context.Context, key *entities.ApiKey) error {
	perms, err := marshalCapabilities(key.Capabilities)
	if err != nil {
		return err
	}

	updates := map[string]interface{}{
		"name":        key.Name,
		"description": key.Description,
		"permissions": perms,
		"is_active":   key.IsActive,
		"updated_at":  time.Now(),
	}
	res := r.db.WithContext(ctx).Model(&models.ApiKey{}).Where("id = ?", key.ID).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// TouchLastUsed is a single-column best-effort update
func (r *apiKeyRepo) TouchLastUsed(ctx context.Context, id uuid.UUID, when time.Time) error {
	return r.db.WithContext(ctx).Model(&models.ApiKey{}).Where("id = ?", id).
		Update("last_used_at", when).Error
}

// Delete hard-deletes a key; its usage records are left to age out
func (r *apiKeyRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.ApiKey{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// DeleteByProjectID hard-deletes all keys of a project
func (r *apiKeyRepo) DeleteByProjectID(ctx context.Context, projectID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("project_id = ?", projectID).Delete(&models.ApiKey{}).Error
}

func (r *apiKeyRepo) toEntity(m *models.ApiKey) (*entities.ApiKey, error) {
	caps, err := unmarshalCapabilities(m.Permissions)
	if err != nil {
		return nil, err
	}

	e := &entities.ApiKey{
		ID:           m.ID,
		ProjectID:    m.ProjectID,
		Name:         m.Name,
		Description:  m.Description,
		Key:          m.Key,
		KeyMasked:    m.KeyMasked,
		Capabilities: caps,
		IsActive:     m.IsActive,
		LastUsedAt:   m.LastUsedAt,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.Project.ID != uuid.Nil {
		e.Project = &entities.Project{
			ID:          m.Project.ID,
			UserID:      m.Project.UserID,
			Name:        m.Project.Name,
			Description: m.Project.Description,
			Environment: m.Project.Environment,
			IsActive:    m.Project.IsActive,
			CreatedAt:   m.Project.CreatedAt,
			UpdatedAt:   m.Project.UpdatedAt,
		}
	}
	return e, nil
}

func marshalCapabilities(caps []entities.Capability) (string, error) {
	if caps == nil {
		caps = []entities.Capability{}
	}
	raw, err := json.Marshal(caps)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func unmarshalCapabilities(raw string) ([]entities.Capability, error) {
	if raw == "" {
		return []entities.Capability{}, nil
	}
	var caps []entities.Capability
	if err := json.Unmarshal([]byte(raw), &caps); err != nil {
		return nil, err
	}
	return caps, nil
}
