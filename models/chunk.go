package models

import (
	"github.com/google/uuid"
)

// CorpusChunk is a chunk of the knowledge corpus stored in Postgres with a
// pgvector embedding. Distance is populated by vector searches.
type CorpusChunk struct {
	ID             uuid.UUID `json:"id"`
	SourceDocument string    `json:"source_document"`
	ChunkIndex     int       `json:"chunk_index"`
	Text           string    `json:"text"`
	Distance       float64   `json:"distance,omitempty"`
}
