package repository

import (
	"context"
	"fmt"
	"strings"

	"clarion-backend/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// CorpusChunkRepository handles database operations for knowledge-base chunks
type CorpusChunkRepository struct {
	db *pgxpool.Pool
}

// NewCorpusChunkRepository creates a new corpus chunk repository
func NewCorpusChunkRepository(db *pgxpool.Pool) *CorpusChunkRepository {
	return &CorpusChunkRepository{db: db}
}

// formatVector formats an embedding vector as a string for pgx
func formatVector(embedding []float64) string {
	if len(embedding) == 0 {
		return "[]"
	}
	var parts []string
	for _, v := range embedding {
		parts = append(parts, fmt.Sprintf("%.6f", v))
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// SearchSimilar returns the chunks nearest to the query embedding
// embedding: Query embedding vector (768 dimensions)
// limit: Maximum number of chunks to return
func (r *CorpusChunkRepository) SearchSimilar(
	ctx context.Context,
	embedding []float64,
	limit int,
) ([]models.CorpusChunk, error) {
	if len(embedding) != 768 {
		return nil, fmt.Errorf("embedding must be 768 dimensions, got %d", len(embedding))
	}

	vectorStr := formatVector(embedding)

	query := `
		SELECT
			id,
			source_document,
			chunk_index,
			chunk_text,
			embedding <=> $1::vector AS distance
		FROM corpus_chunks
		ORDER BY
			embedding <=> $1::vector
		LIMIT $2`

	rows, err := r.db.Query(ctx, query, vectorStr, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query corpus chunks: %w", err)
	}
	defer rows.Close()

	var chunks []models.CorpusChunk
	for rows.Next() {
		var chunk models.CorpusChunk
		err := rows.Scan(
			&chunk.ID,
			&chunk.SourceDocument,
			&chunk.ChunkIndex,
			&chunk.Text,
			&chunk.Distance,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan corpus chunk: %w", err)
		}
		chunks = append(chunks, chunk)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating corpus chunks: %w", err)
	}
	return chunks, nil
}

// Insert stores one chunk with its embedding
func (r *CorpusChunkRepository) Insert(
	ctx context.Context,
	chunk models.CorpusChunk,
	embedding []float64,
) error {
	if len(embedding) != 768 {
		return fmt.Errorf("embedding must be 768 dimensions, got %d", len(embedding))
	}

	query := `
		INSERT INTO corpus_chunks (id, source_document, chunk_index, chunk_text, embedding)
		VALUES ($1, $2, $3, $4, $5::vector)`

	_, err := r.db.Exec(ctx, query,
		chunk.ID,
		chunk.SourceDocument,
		chunk.ChunkIndex,
		chunk.Text,
		formatVector(embedding),
	)
	if err != nil {
		return fmt.Errorf("failed to insert corpus chunk: %w", err)
	}
	return nil
}

// CountBySource returns how many chunks exist for a source document
func (r *CorpusChunkRepository) CountBySource(ctx context.Context, sourceDocument string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		"SELECT COUNT(*) FROM corpus_chunks WHERE source_document = $1",
		sourceDocument,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count corpus chunks: %w", err)
	}
	return count, nil
}
