package models

import (
	"time"

	"github.com/google/uuid"
)

type ApiKey struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProjectID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"type:varchar(100);not null"`
	Description string    `gorm:"type:varchar(500)"`
	Key         string    `gorm:"type:varchar(80);uniqueIndex;not null"` // lookup runs per request
	KeyMasked   string    `gorm:"type:varchar(20);not null"`
	Permissions string    `gorm:"type:text;not null"` // JSON array of capability tags
	IsActive    bool      `gorm:"default:true;not null"`
	LastUsedAt  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Project     Project `gorm:"foreignKey:ProjectID"`
}
