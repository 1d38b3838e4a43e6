package models

import (
	"time"

	"github.com/google/uuid"
)

// Report is a stored rendering of one analysis. Only the artifact and its
// location are recorded; verification history itself is not persisted.
type Report struct {
	ID          uuid.UUID `json:"id"`
	ContentHash string    `json:"content_hash"`
	Domain      string    `json:"domain"`
	Mode        string    `json:"verification_mode"`
	StoragePath string    `json:"storage_path"`
	CreatedAt   time.Time `json:"created_at"`
}
