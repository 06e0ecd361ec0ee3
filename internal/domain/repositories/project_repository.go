package repositories

import (
	"context"

	"github.com/google/uuid"
	"forgebase.backend/internal/domain/entities"
)

type ProjectRepository interface {
	Create(ctx context.Context, project *entities.Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Project, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.Project, error)
	Update(ctx context.Context, project *entities.Project) error
	Delete(ctx context.Context, id uuid.UUID) error
}
