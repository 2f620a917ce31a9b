package domain

import "time"

// AuditFields holds the standard timestamps for mutable domain entities.
type AuditFields struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
