// Package service orchestrates the analysis pipeline: claim extraction, the
// verification cascade, aggregation, and risk derivation.
package service

import (
	"context"
	"errors"
	"log"

	"clarion-backend/assistant"
	"clarion-backend/claims"
	"clarion-backend/detect"
	"clarion-backend/models"
	"clarion-backend/textproc"
	"clarion-backend/verifier"
)

// Content domains steering the cascade order.
const (
	DomainFactCheck    = "fact_check"
	DomainNormalNews   = "normal_news"
	DomainScamPhishing = "scam_phishing"
)

// modeWebAssistant marks web verification finalized by assistant synthesis.
const modeWebAssistant = "web+assistant"

const (
	maxCitations      = 20
	maxSyntheticClaim = 2000
)

var ErrUnknownDomain = errors.New("unknown content domain")

// AnalysisRequest is one document to analyze.
type AnalysisRequest struct {
	Text   string `json:"text"`
	Domain string `json:"domain"`
}

// AnalysisService runs the verification cascade. Backends are optional;
// whatever is configured is tried in the domain's order and the first backend
// that produces usable verdicts wins.
type AnalysisService struct {
	retrieval    verifier.Verifier
	web          verifier.Verifier
	assistantV   verifier.Verifier
	phishing     verifier.Verifier
	assistantSvc assistant.Service
}

// AnalysisOption configures an AnalysisService.
type AnalysisOption func(*AnalysisService)

func AnalysisWithRetrieval(v verifier.Verifier) AnalysisOption {
	return func(s *AnalysisService) { s.retrieval = v }
}

func AnalysisWithWeb(v verifier.Verifier) AnalysisOption {
	return func(s *AnalysisService) { s.web = v }
}

func AnalysisWithAssistant(v verifier.Verifier) AnalysisOption {
	return func(s *AnalysisService) { s.assistantV = v }
}

func AnalysisWithPhishing(v verifier.Verifier) AnalysisOption {
	return func(s *AnalysisService) { s.phishing = v }
}

// AnalysisWithAssistantService enables summary synthesis after successful web
// verification of news content.
func AnalysisWithAssistantService(svc assistant.Service) AnalysisOption {
	return func(s *AnalysisService) { s.assistantSvc = svc }
}

func NewAnalysisService(opts ...AnalysisOption) *AnalysisService {
	s := &AnalysisService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// cascade returns the backends to try, in order, for a content domain.
func (s *AnalysisService) cascade(domain string) ([]verifier.Verifier, error) {
	switch domain {
	case DomainFactCheck:
		return []verifier.Verifier{s.assistantV, s.web, s.retrieval}, nil
	case DomainNormalNews:
		return []verifier.Verifier{s.web, s.assistantV, s.retrieval}, nil
	case DomainScamPhishing:
		return []verifier.Verifier{s.phishing, s.assistantV, s.web, s.retrieval}, nil
	default:
		return nil, ErrUnknownDomain
	}
}

// Analyze runs the full pipeline over one document.
func (s *AnalysisService) Analyze(ctx context.Context, req AnalysisRequest) (*models.PipelineResult, error) {
	result := &models.PipelineResult{
		VerificationMode: verifier.ModeOffline,
		SocialEngineering: models.SocialEngineeringResult{
			RiskLevel: models.RiskLow,
			RedFlags:  []string{},
		},
		Misinformation: models.MisinformationResult{Reasons: []string{}},
		AIDetection:    models.AIDetectionResult{Indicators: []string{}},
	}
	if textproc.IsEmptyInput(req.Text) {
		result.TopReasons = []string{"No input provided"}
		return result, nil
	}

	order, err := s.cascade(req.Domain)
	if err != nil {
		return nil, err
	}

	text := textproc.CleanText(req.Text)
	result.RawText = text

	claimBlocks := claims.Extract(text, claims.DefaultMaxClaims)
	if len(claimBlocks) == 0 {
		// Verification always gets something to chew on.
		claimBlocks = []string{textproc.Truncate(text, maxSyntheticClaim)}
	}

	verdicts, polarity, mode := s.runCascade(ctx, order, text, claimBlocks)
	result.VerificationMode = mode
	result.Claims = verdicts
	result.Citations = extractCitations(verdicts)

	for _, v := range verdicts {
		for _, ev := range v.Evidence {
			result.EvidencePassages = append(result.EvidencePassages, models.EvidencePassage{
				Claim:      v.Claim,
				Passage:    ev,
				Similarity: v.Similarity,
				Verdict:    v.Verdict,
			})
		}
	}

	var synthesized *assistant.Synthesis
	if req.Domain == DomainNormalNews && mode == verifier.ModeWeb && s.assistantSvc != nil && s.assistantSvc.Configured() {
		if syn, err := assistant.Synthesize(ctx, s.assistantSvc, verdicts); err == nil {
			synthesized = &syn
			result.VerificationMode = modeWebAssistant
			result.Citations = mergeCitations(result.Citations, syn.Citations)
		} else {
			log.Printf("synthesis skipped: %v", err)
		}
	}

	result.Misinformation = DeriveMisinformation(verdicts, polarity, result.VerificationMode)
	result.SocialEngineering = DeriveSocialEngineering(verdicts, polarity, result.VerificationMode)
	result.AIDetection = detect.AIGenerated(text)

	metrics := ComputeFactCheckMetrics(verdicts)
	result.CorrectCount = metrics.CorrectCount
	result.IncorrectCount = metrics.IncorrectCount
	result.ResponseConfidence = metrics.ResponseConfidence
	result.TopReasons = metrics.TopReasons
	result.FactCheckSummary = metrics.Summary
	// The synthesis summary replaces the label, but the reasons stay the
	// computed ones so they always name the actual claims.
	if synthesized != nil {
		result.FactCheckSummary = synthesized.Summary
	}

	return result, nil
}

// runCascade tries each backend in order and returns the first usable verdict
// set. When everything fails, every claim comes back Unknown under factual
// polarity and the offline mode label.
func (s *AnalysisService) runCascade(ctx context.Context, order []verifier.Verifier, text string, claimBlocks []string) ([]models.VerdictResult, models.Polarity, string) {
	for _, v := range order {
		if v == nil || !v.Available(ctx) {
			continue
		}
		input := claimBlocks
		if v.Polarity() == models.PolaritySafety {
			// The classifier reads the whole message; isolated claims
			// lose the phishing framing.
			input = []string{textproc.Truncate(text, maxSyntheticClaim)}
		}
		outcome := v.VerifyClaims(ctx, input)
		if outcome.Status == verifier.StatusOK && len(outcome.Verdicts) > 0 {
			return outcome.Verdicts, v.Polarity(), v.Name()
		}
		if outcome.Reason != "" {
			log.Printf("verifier %s passed over: %s", v.Name(), outcome.Reason)
		}
	}

	fallback := make([]models.VerdictResult, 0, len(claimBlocks))
	for _, c := range claimBlocks {
		fallback = append(fallback, models.VerdictResult{
			Claim:      c,
			Verdict:    models.VerdictUnknown,
			Evidence:   []string{},
			Similarity: 0.0,
		})
	}
	return fallback, models.PolarityFactual, verifier.ModeOffline
}

// extractCitations pulls unique URLs out of verdict evidence, in order of
// first appearance.
func extractCitations(verdicts []models.VerdictResult) []string {
	seen := make(map[string]bool)
	var urls []string
	for _, v := range verdicts {
		for _, ev := range v.Evidence {
			for _, u := range textproc.ExtractURLs(ev) {
				if !seen[u] {
					seen[u] = true
					urls = append(urls, u)
				}
			}
		}
	}
	if len(urls) > maxCitations {
		urls = urls[:maxCitations]
	}
	return urls
}

func mergeCitations(existing, extra []string) []string {
	seen := make(map[string]bool, len(existing))
	for _, u := range existing {
		seen[u] = true
	}
	for _, u := range extra {
		if u != "" && !seen[u] {
			seen[u] = true
			existing = append(existing, u)
		}
	}
	return existing
}
