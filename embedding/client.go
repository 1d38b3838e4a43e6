// Package embedding generates text embeddings through the Gemini embedding
// API for the vector-backed retrieval mode.
package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"
)

var ErrEmbeddingFailed = errors.New("failed to generate embedding")

const (
	embedAPI = "https://generativelanguage.googleapis.com/v1beta/models/gemini-embedding-001:embedContent"
	batchAPI = "https://generativelanguage.googleapis.com/v1beta/models/gemini-embedding-001:batchEmbedContents"

	// Dimensions must match the vector column of the corpus table.
	Dimensions = 768

	maxRetries     = 3
	initialBackoff = 2 * time.Second
)

type embedRequest struct {
	Model                string       `json:"model"`
	Content              contentInput `json:"content"`
	TaskType             string       `json:"task_type,omitempty"`
	OutputDimensionality int          `json:"output_dimensionality,omitempty"`
}

type contentInput struct {
	Parts []partInput `json:"parts"`
}

type partInput struct {
	Text string `json:"text"`
}

type embedResponse struct {
	Embedding embedValues `json:"embedding"`
}

type embedValues struct {
	Values []float64 `json:"values"`
}

type batchRequest struct {
	Requests []embedRequest `json:"requests"`
}

// The batch API returns values without the nested "embedding" key.
type batchResponse struct {
	Embeddings []embedValues `json:"embeddings"`
}

// Client calls the Gemini embedding API.
type Client struct {
	apiKey string
	client *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey: apiKey,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// EmbedQuery embeds a retrieval query, normalized to unit length.
func (c *Client) EmbedQuery(ctx context.Context, text string) ([]float64, error) {
	reqBody := embedRequest{
		Model: "models/gemini-embedding-001",
		Content: contentInput{
			Parts: []partInput{{Text: text}},
		},
		TaskType:             "RETRIEVAL_QUERY",
		OutputDimensionality: Dimensions,
	}
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	var apiResp embedResponse
	if err := c.post(ctx, embedAPI, jsonData, &apiResp); err != nil {
		return nil, err
	}
	return normalize(apiResp.Embedding.Values), nil
}

// EmbedBatch embeds corpus passages in one batch call, preserving order.
func (c *Client) EmbedBatch(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	requests := make([]embedRequest, 0, len(texts))
	for _, text := range texts {
		requests = append(requests, embedRequest{
			Model: "models/gemini-embedding-001",
			Content: contentInput{
				Parts: []partInput{{Text: text}},
			},
			TaskType:             "RETRIEVAL_DOCUMENT",
			OutputDimensionality: Dimensions,
		})
	}
	jsonData, err := json.Marshal(batchRequest{Requests: requests})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal batch request: %w", err)
	}

	var apiResp batchResponse
	if err := c.post(ctx, batchAPI, jsonData, &apiResp); err != nil {
		return nil, err
	}
	if len(apiResp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("batch returned %d embeddings for %d texts", len(apiResp.Embeddings), len(texts))
	}

	out := make([][]float64, 0, len(texts))
	for _, e := range apiResp.Embeddings {
		out = append(out, normalize(e.Values))
	}
	return out, nil
}

// post sends the request with exponential backoff, decoding into result on
// success. 400 and 401 are never retried.
func (c *Client) post(ctx context.Context, url string, body []byte, result interface{}) error {
	backoff := initialBackoff
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
			backoff *= 2
		}

		req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(body))
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("x-goog-api-key", c.apiKey)

		resp, err := c.client.Do(req)
		if err != nil {
			if attempt == maxRetries-1 {
				return fmt.Errorf("failed to send request after %d attempts: %w", maxRetries, err)
			}
			continue
		}

		if resp.StatusCode == http.StatusOK {
			err := json.NewDecoder(resp.Body).Decode(result)
			resp.Body.Close()
			if err != nil {
				if attempt == maxRetries-1 {
					return fmt.Errorf("failed to decode response: %w", err)
				}
				continue
			}
			return nil
		}
		resp.Body.Close()

		if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnauthorized {
			return fmt.Errorf("API error: %d", resp.StatusCode)
		}
		if attempt == maxRetries-1 {
			return fmt.Errorf("API error after %d attempts: %d", maxRetries, resp.StatusCode)
		}
	}
	return ErrEmbeddingFailed
}

func normalize(values []float64) []float64 {
	norm := 0.0
	for _, v := range values {
		norm += v * v
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range values {
			values[i] /= norm
		}
	}
	return values
}
