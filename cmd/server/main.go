package main

import (
	"context"
	"log"
	"os"

	"clarion-backend/assistant"
	"clarion-backend/embedding"
	"clarion-backend/handlers"
	"clarion-backend/inference"
	"clarion-backend/repository"
	"clarion-backend/search"
	"clarion-backend/service"
	"clarion-backend/storage"
	"clarion-backend/verifier"

	"github.com/gin-gonic/gin"
	"github.com/google/generative-ai-go/genai"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"google.golang.org/api/option"
)

func main() {
	// Load .env file from project root (relative to cmd/server/)
	// Try current directory first, then project root
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../../.env"); err != nil {
			log.Printf("Warning: No .env file found, using environment variables")
		}
	}

	// Postgres is optional: without it retrieval runs on the in-memory
	// index and report lookup is disabled.
	db := initPostgres()
	if db != nil {
		defer db.Close()
	}

	reportStorage, err := storage.NewStorageFromEnv()
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	log.Println("Storage initialized")

	geminiClient := initGemini()
	assistantSvc := assistant.NewClient(geminiClient)

	corpusDir := os.Getenv("CORPUS_DIR")
	if corpusDir == "" {
		corpusDir = "./kb"
	}
	var retrievalOpts []verifier.RetrievalOption
	var reportRepo *repository.ReportRepository
	if db != nil {
		retrievalOpts = append(retrievalOpts, verifier.RetrievalWithVectorStore(
			repository.NewCorpusChunkRepository(db),
			embedding.NewClient(os.Getenv("GEMINI_API_KEY")),
		))
		reportRepo = repository.NewReportRepository(db)
	}

	analysisService := service.NewAnalysisService(
		service.AnalysisWithRetrieval(verifier.NewRetrievalVerifier(corpusDir, retrievalOpts...)),
		service.AnalysisWithWeb(verifier.NewWebVerifier(search.NewDuckDuckGo(os.Getenv("SEARCH_BASE_URL")))),
		service.AnalysisWithAssistant(verifier.NewAssistantVerifier(assistantSvc)),
		service.AnalysisWithPhishing(verifier.NewPhishingVerifier(inference.NewClient(
			os.Getenv("INFERENCE_BASE_URL"),
			os.Getenv("INFERENCE_MODEL_ID"),
			os.Getenv("INFERENCE_API_TOKEN"),
		))),
		service.AnalysisWithAssistantService(assistantSvc),
	)

	analyzeHandler := handlers.NewAnalyzeHandler(analysisService)
	reportHandler := handlers.NewReportHandler(analysisService, reportRepo, reportStorage)

	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		api.POST("/analyze", analyzeHandler.Analyze)

		api.POST("/reports", reportHandler.CreateReport)
		api.GET("/reports", reportHandler.ListReports)
		api.GET("/reports/:id", reportHandler.GetReport)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

func initPostgres() *pgxpool.Pool {
	connString := os.Getenv("DATABASE_URL")
	if connString == "" {
		log.Println("DATABASE_URL not set; running without Postgres")
		return nil
	}

	pool, err := pgxpool.New(context.Background(), connString)
	if err != nil {
		log.Fatalf("Failed to initialize Postgres: %v", err)
	}
	if err := pool.Ping(context.Background()); err != nil {
		log.Fatalf("Failed to ping Postgres: %v", err)
	}

	// Enable pgvector extension
	ctx := context.Background()
	_, err = pool.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS vector")
	if err != nil {
		log.Printf("Warning: Failed to create pgvector extension: %v", err)
		log.Println("This may be normal if extension is already installed or requires superuser privileges")
	} else {
		log.Println("pgvector extension enabled")
	}

	log.Println("Postgres connection established with pgvector support")
	return pool
}

func initGemini() *genai.Client {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		log.Println("Warning: GEMINI_API_KEY not set; assistant verification disabled")
		return nil
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		log.Fatalf("Failed to initialize Gemini: %v", err)
	}

	log.Println("Gemini client initialized")
	return client
}
