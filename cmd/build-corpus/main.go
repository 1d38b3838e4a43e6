// Command build-corpus chunks the knowledge-base documents, embeds each
// chunk, and loads them into the corpus_chunks table for vector retrieval.
package main

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"clarion-backend/embedding"
	"clarion-backend/models"
	"clarion-backend/repository"
	"clarion-backend/textproc"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

const (
	chunkSize    = 300
	chunkOverlap = 50
	batchSize    = 50
)

func main() {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../../.env"); err != nil {
			log.Printf("Warning: No .env file found, using environment variables")
		}
	}

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		log.Fatal("GEMINI_API_KEY environment variable is required")
	}

	connString := os.Getenv("DATABASE_URL")
	if connString == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	corpusDir := os.Getenv("CORPUS_DIR")
	if corpusDir == "" {
		corpusDir = "./kb"
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := createSchema(ctx, pool); err != nil {
		log.Fatalf("Failed to create schema: %v", err)
	}

	repo := repository.NewCorpusChunkRepository(pool)
	embedder := embedding.NewClient(apiKey)

	files, err := os.ReadDir(corpusDir)
	if err != nil {
		log.Fatalf("Failed to read corpus directory: %v", err)
	}

	for _, file := range files {
		if file.IsDir() {
			continue
		}
		filename := file.Name()
		ext := strings.ToLower(filepath.Ext(filename))
		if ext != ".md" && ext != ".txt" {
			continue
		}

		log.Printf("Processing: %s", filename)

		existing, err := repo.CountBySource(ctx, filename)
		if err != nil {
			log.Printf("Error checking existing chunks for %s: %v", filename, err)
			continue
		}
		if existing > 0 {
			log.Printf("Skipping %s (already processed: %d chunks)", filename, existing)
			continue
		}

		content, err := os.ReadFile(filepath.Join(corpusDir, filename))
		if err != nil {
			log.Printf("Error reading %s: %v", filename, err)
			continue
		}

		chunks := textproc.ChunkText(string(content), chunkSize, chunkOverlap)
		if len(chunks) == 0 {
			log.Printf("Skipping %s (no content)", filename)
			continue
		}
		log.Printf("Generated %d chunks", len(chunks))

		if err := embedAndStore(ctx, repo, embedder, filename, chunks); err != nil {
			log.Printf("Error storing %s: %v", filename, err)
			continue
		}
		log.Printf("Stored %s (%d chunks)", filename, len(chunks))

		// Rate limiting between documents
		time.Sleep(2 * time.Second)
	}

	log.Println("Corpus build complete")
}

func embedAndStore(
	ctx context.Context,
	repo *repository.CorpusChunkRepository,
	embedder *embedding.Client,
	filename string,
	chunks []string,
) error {
	for start := 0; start < len(chunks); start += batchSize {
		end := start + batchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[start:end]

		embeddings, err := embedder.EmbedBatch(ctx, batch)
		if err != nil {
			return err
		}
		for i, text := range batch {
			chunk := models.CorpusChunk{
				ID:             uuid.New(),
				SourceDocument: filename,
				ChunkIndex:     start + i,
				Text:           text,
			}
			if err := repo.Insert(ctx, chunk, embeddings[i]); err != nil {
				return err
			}
		}
	}
	return nil
}

func createSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS vector"); err != nil {
		log.Printf("Warning: Failed to create pgvector extension: %v", err)
	}

	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS corpus_chunks (
			id UUID PRIMARY KEY,
			source_document TEXT NOT NULL,
			chunk_index INT NOT NULL,
			chunk_text TEXT NOT NULL,
			embedding vector(768) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS reports (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			content_hash TEXT NOT NULL,
			domain TEXT NOT NULL,
			verification_mode TEXT NOT NULL,
			storage_path TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	return err
}
