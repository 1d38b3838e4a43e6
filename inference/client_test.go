package inference

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClassify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models/"+DefaultModelID {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		var req struct {
			Inputs []string `json:"inputs"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		out := make([][]Prediction, len(req.Inputs))
		for i := range req.Inputs {
			out[i] = []Prediction{
				{Label: "LABEL_1", Score: 0.91},
				{Label: "LABEL_0", Score: 0.09},
			}
		}
		json.NewEncoder(w).Encode(out)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", "")
	preds, err := c.Classify(context.Background(), []string{"click here to verify your account", "meeting at noon"})
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if len(preds) != 2 {
		t.Fatalf("got %d prediction sets, want 2", len(preds))
	}
	if p := PhishingProbability(preds[0]); p != 0.91 {
		t.Errorf("PhishingProbability = %v, want 0.91", p)
	}
}

func TestClassifyServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model loading", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", "")
	if _, err := c.Classify(context.Background(), []string{"x"}); err == nil {
		t.Fatal("expected error on 503")
	}
}

func TestUnconfigured(t *testing.T) {
	c := NewClient("", "", "")
	if c.Configured() {
		t.Error("empty baseURL should not be configured")
	}
	if c.Available(context.Background()) {
		t.Error("unconfigured client should not be available")
	}
}

func TestPhishingProbabilityFallback(t *testing.T) {
	tests := []struct {
		name string
		dist []Prediction
		want float64
	}{
		{"named phishing label", []Prediction{{Label: "phishing", Score: 0.7}}, 0.7},
		{"legitimate complement", []Prediction{{Label: "legitimate", Score: 0.8}}, 0.19999999999999996},
		{"unknown labels", []Prediction{{Label: "other", Score: 0.5}}, 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PhishingProbability(tt.dist); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
