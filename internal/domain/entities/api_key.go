package entities

import (
	"time"

	"github.com/google/uuid"
)

// Capability is a permission tag an API key may hold
type Capability string

const (
	CapabilityAuth     Capability = "auth"
	CapabilityDatabase Capability = "database"
	CapabilityStorage  Capability = "storage"
)

// AllCapabilities lists every known capability tag
var AllCapabilities = []Capability{CapabilityAuth, CapabilityDatabase, CapabilityStorage}

// ParseCapabilities validates raw capability strings against the known set
// and collapses duplicates, preserving first-seen order.
func ParseCapabilities(raw []string) ([]Capability, bool) {
	seen := make(map[Capability]bool, len(raw))
	out := make([]Capability, 0, len(raw))
	for _, r := range raw {
		c := Capability(r)
		switch c {
		case CapabilityAuth, CapabilityDatabase, CapabilityStorage:
		default:
			return nil, false
		}
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out, true
}

// CapabilityStrings converts a capability set to plain strings
func CapabilityStrings(caps []Capability) []string {
	out := make([]string, len(caps))
	for i, c := range caps {
		out[i] = string(c)
	}
	return out
}

// ApiKey represents a scoped bearer key for a project. The raw secret is
// never serialized; KeyMasked is the display form.
type ApiKey struct {
	ID           uuid.UUID    `json:"id"`
	ProjectID    uuid.UUID    `json:"projectId"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Key          string       `json:"-"`
	KeyMasked    string       `json:"key"`
	Capabilities []Capability `json:"permissions"`
	IsActive     bool         `json:"isActive"`
	LastUsedAt   *time.Time   `json:"lastUsedAt,omitempty"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`

	Project *Project `json:"-"`
}

// HasCapabilities reports whether the key grants every required capability
func (k *ApiKey) HasCapabilities(required []Capability) bool {
	granted := make(map[Capability]bool, len(k.Capabilities))
	for _, c := range k.Capabilities {
		granted[c] = true
	}
	for _, c := range required {
		if !granted[c] {
			return false
		}
	}
	return true
}

// CreateApiKeyInput represents input for minting a key
type CreateApiKeyInput struct {
	Name        string   `json:"name" binding:"required,min=2,max=100"`
	Description string   `json:"description" binding:"max=500"`
	Permissions []string `json:"permissions"`
}

// UpdateApiKeyInput represents a partial key update
type UpdateApiKeyInput struct {
	Name        *string  `json:"name" binding:"omitempty,min=2,max=100"`
	Description *string  `json:"description" binding:"omitempty,max=500"`
	Permissions []string `json:"permissions"`
	IsActive    *bool    `json:"isActive"`
}

// CreateApiKeyResponse carries the full secret exactly once, at creation
type CreateApiKeyResponse struct {
	ID           uuid.UUID    `json:"id"`
	ProjectID    uuid.UUID    `json:"projectId"`
	Name         string       `json:"name"`
	Key          string       `json:"key"`
	Capabilities []Capability `json:"permissions"`
	CreatedAt    time.Time    `json:"createdAt"`
}
