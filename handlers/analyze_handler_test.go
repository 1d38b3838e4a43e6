package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"clarion-backend/service"

	"github.com/gin-gonic/gin"
)

func analyzeRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewAnalyzeHandler(service.NewAnalysisService())
	r.POST("/api/analyze", h.Analyze)
	return r
}

func TestAnalyzeEndpoint(t *testing.T) {
	body, _ := json.Marshal(AnalyzeRequest{
		Text:   "NASA confirmed that the mission launched in 2022.",
		Domain: service.DomainNormalNews,
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	analyzeRouter().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp struct {
		Success bool `json:"success"`
		Result  struct {
			VerificationMode string `json:"verification_mode"`
		} `json:"result"`
		StyleSignals struct {
			Misinformation struct {
				RiskScore float64 `json:"risk_score"`
			} `json:"misinformation"`
		} `json:"style_signals"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success {
		t.Error("success = false")
	}
	if resp.Result.VerificationMode != "offline" {
		t.Errorf("mode = %q, want offline with no backends configured", resp.Result.VerificationMode)
	}
}

func TestAnalyzeEndpointInvalidDomain(t *testing.T) {
	body := []byte(`{"text": "something", "domain": "weather"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	analyzeRouter().ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if !bytes.Contains(w.Body.Bytes(), []byte("INVALID_DOMAIN")) {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestAnalyzeEndpointBadJSON(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	analyzeRouter().ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}
