package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"forgebase.backend/internal/domain/entities"
	domainerrors "forgebase.backend/internal/domain/errors"
	"forgebase.backend/internal/domain/repositories"
	"forgebase.backend/pkg/apikey"
	"forgebase.backend/pkg/logger"
)

// ApiKeyUsecase handles API key lifecycle and request authentication
type ApiKeyUsecase struct {
	apiKeyRepo    repositories.ApiKeyRepository
	projectRepo   repositories.ProjectRepository
	keyByteLength int
}

// NewApiKeyUsecase creates a new API key usecase. byteLength falls back to
// the generator default when non-positive.
func NewApiKeyUsecase(apiKeyRepo repositories.ApiKeyRepository, projectRepo repositories.ProjectRepository, byteLength int) *ApiKeyUsecase {
	if byteLength <= 0 {
		byteLength = apikey.DefaultByteLength
	}
	return &ApiKeyUsecase{
		apiKeyRepo:    apiKeyRepo,
		projectRepo:   projectRepo,
		keyByteLength: byteLength,
	}
}

// CreateKey mints a key for an owned project. The response is the only
// place the full secret ever appears; a duplicate secret from the
// generator is retried once before giving up.
func (u *ApiKeyUsecase) CreateKey(ctx context.Context, projectID, userID uuid.UUID, input *entities.CreateApiKeyInput) (*entities.CreateApiKeyResponse, error) {
	project, err := u.ownedProject(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}

	caps, ok := entities.ParseCapabilities(input.Permissions)
	if !ok {
		return nil, domainerrors.BadRequest("unknown permission; valid values are auth, database, storage")
	}
	if len(caps) == 0 {
		caps = append(caps, entities.AllCapabilities...)
	}

	var key *entities.ApiKey
	for attempt := 0; attempt < 2; attempt++ {
		secret, err := apikey.Generate(project.Environment, u.keyByteLength)
		if err != nil {
			return nil, domainerrors.InternalError(err)
		}

		key = &entities.ApiKey{
			ProjectID:    projectID,
			Name:         input.Name,
			Description:  input.Description,
			Key:          secret,
			KeyMasked:    apikey.Mask(secret),
			Capabilities: caps,
			IsActive:     true,
		}
		err = u.apiKeyRepo.Create(ctx, key)
		if err == nil {
			return &entities.CreateApiKeyResponse{
				ID:           key.ID,
				ProjectID:    key.ProjectID,
				Name:         key.Name,
				Key:          secret,
				Capabilities: key.Capabilities,
				CreatedAt:    key.CreatedAt,
			}, nil
		}
		if !errors.Is(err, domainerrors.ErrDuplicateSecret) {
			return nil, err
		}
		logger.Warn(ctx, "Generated API key collided, retrying",
			zap.String("projectId", projectID.String()),
		)
	}
	return nil, domainerrors.DuplicateSecret()
}

// ListKeys lists a project's keys, masked
func (u *ApiKeyUsecase) ListKeys(ctx context.Context, projectID, userID uuid.UUID) ([]*entities.ApiKey, error) {
	if _, err := u.ownedProject(ctx, projectID, userID); err != nil {
		return nil, err
	}
	keys, err := u.apiKeyRepo.ListByProjectID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	for _, k := range keys {
		mask(k)
	}
	return keys, nil
}

// GetKey loads one owned key, masked
func (u *ApiKeyUsecase) GetKey(ctx context.Context, keyID, userID uuid.UUID) (*entities.ApiKey, error) {
	key, err := u.ownedKey(ctx, keyID, userID)
	if err != nil {
		return nil, err
	}
	mask(key)
	return key, nil
}

// UpdateKey applies a partial update to an owned key. The secret itself
// is immutable; rotate by deleting and recreating.
func (u *ApiKeyUsecase) UpdateKey(ctx context.Context, keyID, userID uuid.UUID, input *entities.UpdateApiKeyInput) (*entities.ApiKey, error) {
	key, err := u.ownedKey(ctx, keyID, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		key.Name = *input.Name
	}
	if input.Description != nil {
		key.Description = *input.Description
	}
	if input.Permissions != nil {
		caps, ok := entities.ParseCapabilities(input.Permissions)
		if !ok {
			return nil, domainerrors.BadRequest("unknown permission; valid values are auth, database, storage")
		}
		key.Capabilities = caps
	}
	if input.IsActive != nil {
		key.IsActive = *input.IsActive
	}

	if err := u.apiKeyRepo.Update(ctx, key); err != nil {
		return nil, err
	}
	mask(key)
	return key, nil
}

// DeleteKey removes an owned key
func (u *ApiKeyUsecase) DeleteKey(ctx context.Context, keyID, userID uuid.UUID) error {
	if _, err := u.ownedKey(ctx, keyID, userID); err != nil {
		return err
	}
	return u.apiKeyRepo.Delete(ctx, keyID)
}

// Authenticate resolves a presented secret to an active key and its
// project. Malformed and unknown secrets, inactive keys, and inactive
// projects all collapse to the same invalid_key answer so a caller
// cannot probe which secrets exist; a key whose project row is gone
// is reported as orphaned.
func (u *ApiKeyUsecase) Authenticate(ctx context.Context, secret string) (*entities.ApiKey, error) {
	if !apikey.IsValidFormat(secret) {
		return nil, domainerrors.InvalidKey()
	}

	key, err := u.apiKeyRepo.FindBySecret(ctx, secret)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.InvalidKey()
		}
		return nil, err
	}
	if !key.IsActive {
		return nil, domainerrors.InvalidKey()
	}
	if key.Project == nil {
		return nil, domainerrors.OrphanedKey()
	}
	if !key.Project.IsActive {
		return nil, domainerrors.InvalidKey()
	}
	return key, nil
}

// TouchLastUsed records that a key was just used. Best effort: failures
// are logged and never surfaced to the request path.
func (u *ApiKeyUsecase) TouchLastUsed(ctx context.Context, keyID uuid.UUID) {
	if err := u.apiKeyRepo.TouchLastUsed(ctx, keyID, time.Now()); err != nil {
		logger.Warn(ctx, "Failed to update key last_used_at",
			zap.String("keyId", keyID.String()),
			zap.Error(err),
		)
	}
}

func (u *ApiKeyUsecase) ownedProject(ctx context.Context, projectID, userID uuid.UUID) (*entities.Project, error) {
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

func (u *ApiKeyUsecase) ownedKey(ctx context.Context, keyID, userID uuid.UUID) (*entities.ApiKey, error) {
	key, err := u.apiKeyRepo.FindByID(ctx, keyID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("API key not found")
		}
		return nil, err
	}
	if _, err := u.ownedProject(ctx, key.ProjectID, userID); err != nil {
		return nil, err
	}
	return key, nil
}

func mask(k *entities.ApiKey) {
	k.KeyMasked = apikey.Mask(k.Key)
	k.Key = ""
}
