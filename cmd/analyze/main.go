// Command analyze runs the verification pipeline once over a file or stdin
// and prints the result as JSON. Useful for corpus tuning without a server.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"clarion-backend/assistant"
	"clarion-backend/inference"
	"clarion-backend/search"
	"clarion-backend/service"
	"clarion-backend/verifier"

	"github.com/google/generative-ai-go/genai"
	"github.com/joho/godotenv"
	"google.golang.org/api/option"
)

func main() {
	domain := flag.String("domain", service.DomainNormalNews, "content domain: fact_check, normal_news, or scam_phishing")
	corpusDir := flag.String("corpus", "./kb", "knowledge base directory for offline retrieval")
	inputFile := flag.String("file", "", "file to analyze (default: stdin)")
	offline := flag.Bool("offline", false, "skip web and assistant backends")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../../.env"); err != nil {
			log.Printf("Warning: No .env file found, using environment variables")
		}
	}

	text, err := readInput(*inputFile)
	if err != nil {
		log.Fatalf("Failed to read input: %v", err)
	}

	opts := []service.AnalysisOption{
		service.AnalysisWithRetrieval(verifier.NewRetrievalVerifier(*corpusDir)),
	}
	if !*offline {
		assistantSvc := assistant.NewClient(initGemini())
		opts = append(opts,
			service.AnalysisWithWeb(verifier.NewWebVerifier(search.NewDuckDuckGo(os.Getenv("SEARCH_BASE_URL")))),
			service.AnalysisWithAssistant(verifier.NewAssistantVerifier(assistantSvc)),
			service.AnalysisWithPhishing(verifier.NewPhishingVerifier(inference.NewClient(
				os.Getenv("INFERENCE_BASE_URL"),
				os.Getenv("INFERENCE_MODEL_ID"),
				os.Getenv("INFERENCE_API_TOKEN"),
			))),
			service.AnalysisWithAssistantService(assistantSvc),
		)
	}

	result, err := service.NewAnalysisService(opts...).Analyze(context.Background(), service.AnalysisRequest{
		Text:   text,
		Domain: *domain,
	})
	if err != nil {
		log.Fatalf("Analysis failed: %v", err)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode result: %v", err)
	}
	fmt.Println(string(out))
}

func readInput(path string) (string, error) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}

func initGemini() *genai.Client {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil
	}
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		log.Printf("Warning: Gemini client unavailable: %v", err)
		return nil
	}
	return client
}
