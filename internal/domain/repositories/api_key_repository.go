package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"forgebase.backend/internal/domain/entities"
)

type ApiKeyRepository interface {
	Create(ctx context.Context, key *entities.ApiKey) error
	// FindBySecret is an exact-match lookup on the unique secret column.
	// It runs on every authenticated request and preloads the project.
	FindBySecret(ctx context.Context, secret string) (*entities.ApiKey, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entities.ApiKey, error)
	ListByProjectID(ctx context.Context, projectID uuid.UUID) ([]*entities.ApiKey, error)
	Update(ctx context.Context, key *entities.ApiKey) error
	// TouchLastUsed updates only last_used_at; callers treat failure as
	// non-fatal.
	TouchLastUsed(ctx context.Context, id uuid.UUID, when time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByProjectID(ctx context.Context, projectID uuid.UUID) error
}
