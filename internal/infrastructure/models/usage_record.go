package models

import (
	"time"

	"github.com/google/uuid"
)

// UsageRecord rows are insert-only; retention deletes by created_at.
type UsageRecord struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	ApiKeyID       uuid.UUID `gorm:"type:uuid;not null;index"`
	ProjectID      uuid.UUID `gorm:"type:uuid;not null;index:idx_usage_project_created"`
	Endpoint       string    `gorm:"type:varchar(255);not null"`
	Method         string    `gorm:"type:varchar(10);not null"`
	StatusCode     int       `gorm:"not null"`
	ResponseTimeMS int       `gorm:"not null"`
	UserAgent      string    `gorm:"type:varchar(500)"`
	IPAddress      string    `gorm:"type:varchar(45)"`
	ErrorMessage   string    `gorm:"type:varchar(500)"`
	RequestSize    int64
	ResponseSize   int64
	Metadata       string    `gorm:"type:text"`
	CreatedAt      time.Time `gorm:"index:idx_usage_project_created;index"`
}
