package report

import (
	"strings"
	"testing"

	"clarion-backend/models"
	"clarion-backend/verifier"
)

func sampleResult() *models.PipelineResult {
	return &models.PipelineResult{
		CorrectCount:       1,
		IncorrectCount:     1,
		ResponseConfidence: 0.95,
		TopReasons:         []string{`1 claim(s) correct (supported by evidence): "The Earth orbits the Sun."`},
		FactCheckSummary:   "Mixed",
		Claims: []models.VerdictResult{
			{Claim: "The Earth orbits the Sun.", Verdict: models.VerdictSupported, Evidence: []string{"Astronomy texts agree."}, Similarity: 0.9},
			{Claim: "Vitamin C cures colds.", Verdict: models.VerdictRefuted, Evidence: []string{"Trials found no effect."}, Similarity: 0.85},
		},
		Misinformation:    models.MisinformationResult{RiskScore: 0.5, Reasons: []string{"Trials found no effect."}},
		SocialEngineering: models.SocialEngineeringResult{RiskLevel: models.RiskMedium, RedFlags: []string{"One claim refuted"}, SaferRewriteSuggestion: "Cross-check with trusted sources."},
		VerificationMode:  verifier.ModeWeb,
	}
}

func TestRenderHTML(t *testing.T) {
	out, err := RenderHTML(sampleResult(), Options{
		SourceURL:   "https://example.org/article",
		SourceLabel: "Example article",
		InputText:   "The Earth orbits the Sun. Vitamin C cures colds.",
	})
	if err != nil {
		t.Fatalf("RenderHTML: %v", err)
	}
	for _, want := range []string{
		"<title>Clarion Report</title>",
		"Fact check summary:</strong> Mixed",
		"Confidence in response:</strong> 95%",
		"Internet (DuckDuckGo)",
		"verdict-supported",
		"verdict-refuted",
		"risk-medium",
		`<a href="https://example.org/article">Example article</a>`,
		"Safer approach:",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestRenderHTMLEscapesInput(t *testing.T) {
	r := sampleResult()
	r.Claims[0].Claim = `<script>alert("x")</script>`
	out, err := RenderHTML(r, Options{InputText: "<b>bold</b>"})
	if err != nil {
		t.Fatalf("RenderHTML: %v", err)
	}
	if strings.Contains(out, `<script>alert`) {
		t.Error("claim text was not escaped")
	}
	if strings.Contains(out, "<b>bold</b>") {
		t.Error("input text was not escaped")
	}
}

func TestRenderHTMLNoClaims(t *testing.T) {
	r := &models.PipelineResult{VerificationMode: verifier.ModeOffline}
	out, err := RenderHTML(r, Options{})
	if err != nil {
		t.Fatalf("RenderHTML: %v", err)
	}
	if !strings.Contains(out, "No claims extracted.") {
		t.Error("missing empty-claims placeholder")
	}
	if !strings.Contains(out, "No claims to verify") {
		t.Error("missing default summary")
	}
	if !strings.Contains(out, "Local knowledge base") {
		t.Error("missing offline mode label")
	}
}
