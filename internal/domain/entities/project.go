package entities

import (
	"time"

	"github.com/google/uuid"
)

// Project represents a tenant project owned by a dashboard user. API keys
// are minted against a project and usage records roll up to it.
type Project struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"userId"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Environment string     `json:"environment"`
	IsActive    bool       `json:"isActive"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	DeletedAt   *time.Time `json:"-"`
}

// CreateProjectInput represents input for creating a project
type CreateProjectInput struct {
	Name        string `json:"name" binding:"required,min=2,max=100"`
	Description string `json:"description" binding:"max=500"`
	Environment string `json:"environment" binding:"omitempty,oneof=live test"`
}

// UpdateProjectInput represents a partial project update
type UpdateProjectInput struct {
	Name        *string `json:"name" binding:"omitempty,min=2,max=100"`
	Description *string `json:"description" binding:"omitempty,max=500"`
	IsActive    *bool   `json:"isActive"`
}
