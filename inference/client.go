// Package inference wraps the phishing text-classification model behind an
// HTTP inference server (HuggingFace text-classification wire format). The
// model is addressed by a fixed identifier and supports batched inference.
package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

// DefaultModelID is the phishing classifier the original deployment ships.
const DefaultModelID = "ElSlay/BERT-Phishing-Email-Model"

// Prediction is the label distribution for one input text.
type Prediction struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Client talks to a text-classification inference endpoint.
type Client struct {
	baseURL string
	modelID string
	token   string
	client  *http.Client

	checkOnce sync.Once
	usable    bool
}

// NewClient builds an inference client. An empty baseURL means the backend is
// unconfigured and Available will report false.
func NewClient(baseURL, modelID, token string) *Client {
	if modelID == "" {
		modelID = DefaultModelID
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		modelID: modelID,
		token:   token,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Configured reports whether an endpoint was supplied at all.
func (c *Client) Configured() bool {
	return c != nil && c.baseURL != ""
}

// Available probes the model endpoint once and caches the answer. A model
// that cannot be reached is reported unavailable, never as an error.
func (c *Client) Available(ctx context.Context) bool {
	if !c.Configured() {
		return false
	}
	c.checkOnce.Do(func() {
		// A one-item classification doubles as the load check.
		_, err := c.Classify(ctx, []string{"ping"})
		c.usable = err == nil
	})
	return c.usable
}

// Classify runs one batched inference call over texts, preserving order.
// Each entry of the reply is the full label distribution for that text.
func (c *Client) Classify(ctx context.Context, texts []string) ([][]Prediction, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("inference endpoint not configured")
	}
	if len(texts) == 0 {
		return nil, nil
	}

	reqBody := map[string]interface{}{
		"inputs": texts,
	}
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal inference request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s", c.baseURL, c.modelID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create inference request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("inference request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("inference API error: %d - %s", resp.StatusCode, string(body))
	}

	var predictions [][]Prediction
	if err := json.NewDecoder(resp.Body).Decode(&predictions); err != nil {
		return nil, fmt.Errorf("failed to decode inference response: %w", err)
	}
	if len(predictions) != len(texts) {
		return nil, fmt.Errorf("inference returned %d results for %d inputs", len(predictions), len(texts))
	}
	return predictions, nil
}

// PhishingProbability extracts the phishing-class probability from one label
// distribution. The model card labels phishing as LABEL_1.
func PhishingProbability(dist []Prediction) float64 {
	for _, p := range dist {
		switch strings.ToLower(p.Label) {
		case "phishing", "scam", "label_1", "1":
			return p.Score
		}
	}
	// Two-class fallback: whatever is not the legitimate label.
	for _, p := range dist {
		switch strings.ToLower(p.Label) {
		case "legitimate", "label_0", "0":
			return 1.0 - p.Score
		}
	}
	return 0.0
}
