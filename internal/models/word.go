package models

import (
	"time"

	"github.com/google/uuid"
)

// SensitiveWord is one persisted dictionary entry. Word holds the
// normalized form; Tier is "low", "medium" or "high".
type SensitiveWord struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	Word      string     `json:"word" db:"word"`
	Tier      string     `json:"tier" db:"tier"`
	CreatedBy *uuid.UUID `json:"created_by,omitempty" db:"created_by"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}
