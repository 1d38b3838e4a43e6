package models

// RiskLevel for the social engineering record.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// MisinformationResult is the misinformation risk derived from verifier verdicts.
type MisinformationResult struct {
	RiskScore float64  `json:"risk_score"`
	Reasons   []string `json:"reasons"`
}

// SocialEngineeringResult is the safe/unsafe reading of the verdict set.
type SocialEngineeringResult struct {
	RiskLevel              RiskLevel `json:"risk_level"`
	RedFlags               []string  `json:"red_flags"`
	SaferRewriteSuggestion string    `json:"safer_rewrite_suggestion"`
}

// AIDetectionResult estimates how likely the text is machine-generated.
type AIDetectionResult struct {
	AILikelihood float64  `json:"ai_likelihood"`
	Indicators   []string `json:"indicators"`
}

// EvidencePassage is one retrieved/collected evidence snippet, flattened out
// of the per-claim verdicts for display.
type EvidencePassage struct {
	Claim      string  `json:"claim"`
	Passage    string  `json:"passage"`
	Similarity float64 `json:"similarity"`
	Verdict    Verdict `json:"verdict"`
}

// PipelineResult is the aggregate output of one analysis call. It is built
// once per request and never mutated afterwards; nothing here is persisted.
type PipelineResult struct {
	CorrectCount       int                     `json:"correct_count"`
	IncorrectCount     int                     `json:"incorrect_count"`
	ResponseConfidence float64                 `json:"response_confidence"`
	TopReasons         []string                `json:"top_reasons"`
	FactCheckSummary   string                  `json:"fact_check_summary"`
	Claims             []VerdictResult         `json:"claims"`
	Misinformation     MisinformationResult    `json:"misinformation"`
	SocialEngineering  SocialEngineeringResult `json:"social_engineering"`
	AIDetection        AIDetectionResult       `json:"ai_detection"`
	EvidencePassages   []EvidencePassage       `json:"evidence_passages"`
	RawText            string                  `json:"raw_text"`
	VerificationMode   string                  `json:"verification_mode"`
	Citations          []string                `json:"citations"`
}
