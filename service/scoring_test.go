package service

import (
	"strings"
	"testing"

	"clarion-backend/models"
)

func vr(claim string, v models.Verdict) models.VerdictResult {
	return models.VerdictResult{Claim: claim, Verdict: v, Evidence: []string{}}
}

func TestComputeFactCheckMetrics(t *testing.T) {
	tests := []struct {
		name           string
		verdicts       []models.VerdictResult
		wantCorrect    int
		wantIncorrect  int
		wantConfidence float64
		wantSummary    string
	}{
		{
			name:           "all supported",
			verdicts:       []models.VerdictResult{vr("a", models.VerdictSupported), vr("b", models.VerdictSupported)},
			wantCorrect:    2,
			wantConfidence: 0.95,
			wantSummary:    SummaryCorrect,
		},
		{
			name:           "all refuted",
			verdicts:       []models.VerdictResult{vr("a", models.VerdictRefuted)},
			wantIncorrect:  1,
			wantConfidence: 0.95,
			wantSummary:    SummaryIncorrect,
		},
		{
			name: "mixed",
			verdicts: []models.VerdictResult{
				vr("a", models.VerdictSupported),
				vr("b", models.VerdictRefuted),
				vr("c", models.VerdictUnknown),
				vr("d", models.VerdictUnknown),
			},
			wantCorrect:    1,
			wantIncorrect:  1,
			wantConfidence: 0.5,
			wantSummary:    SummaryMixed,
		},
		{
			name:           "all unknown",
			verdicts:       []models.VerdictResult{vr("a", models.VerdictUnknown), vr("b", models.VerdictUnknown)},
			wantConfidence: 0.2,
			wantSummary:    SummaryUnverifiable,
		},
		{
			name:           "no claims",
			verdicts:       nil,
			wantConfidence: 0.0,
			wantSummary:    SummaryUnverifiable,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := ComputeFactCheckMetrics(tt.verdicts)
			if m.CorrectCount != tt.wantCorrect {
				t.Errorf("correct = %d, want %d", m.CorrectCount, tt.wantCorrect)
			}
			if m.IncorrectCount != tt.wantIncorrect {
				t.Errorf("incorrect = %d, want %d", m.IncorrectCount, tt.wantIncorrect)
			}
			if m.ResponseConfidence != tt.wantConfidence {
				t.Errorf("confidence = %v, want %v", m.ResponseConfidence, tt.wantConfidence)
			}
			if m.Summary != tt.wantSummary {
				t.Errorf("summary = %q, want %q", m.Summary, tt.wantSummary)
			}
			if len(m.TopReasons) == 0 || len(m.TopReasons) > maxTopReasons {
				t.Errorf("reasons count = %d", len(m.TopReasons))
			}
		})
	}
}

func TestComputeFactCheckMetricsReasons(t *testing.T) {
	m := ComputeFactCheckMetrics([]models.VerdictResult{
		vr("The Earth orbits the Sun.", models.VerdictSupported),
		vr("Vitamin C cures the common cold.", models.VerdictRefuted),
	})
	if !strings.Contains(m.TopReasons[0], `"The Earth orbits the Sun."`) {
		t.Errorf("reason[0] = %q, want the supported claim quoted", m.TopReasons[0])
	}
	if !strings.Contains(m.TopReasons[1], "not supported by evidence") {
		t.Errorf("reason[1] = %q", m.TopReasons[1])
	}
}

func TestComputeFactCheckMetricsNoClaimsReason(t *testing.T) {
	m := ComputeFactCheckMetrics(nil)
	if len(m.TopReasons) != 1 || m.TopReasons[0] != "No claims to verify" {
		t.Errorf("reasons = %v", m.TopReasons)
	}
}

func TestComputeFactCheckMetricsTruncatesLongClaims(t *testing.T) {
	long := strings.Repeat("x", 200)
	m := ComputeFactCheckMetrics([]models.VerdictResult{vr(long, models.VerdictSupported)})
	if !strings.Contains(m.TopReasons[0], strings.Repeat("x", 77)+"...") {
		t.Errorf("long claim not truncated: %q", m.TopReasons[0])
	}
	if strings.Contains(m.TopReasons[0], strings.Repeat("x", 80)) {
		t.Errorf("claim exceeds truncation bound: %q", m.TopReasons[0])
	}
}
