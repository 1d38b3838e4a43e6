package models

// Verdict is the shared factual verdict vocabulary produced by all verifier
// backends. Misclassification is assigned only by the retrieval and web
// backends: it marks evidence that looked relevant but had no entity overlap
// with the claim, which is a different signal from "no evidence exists".
type Verdict string

const (
	VerdictSupported         Verdict = "Supported"
	VerdictRefuted           Verdict = "Refuted"
	VerdictUnknown           Verdict = "Unknown"
	VerdictMisclassification Verdict = "Misclassification"
)

// Polarity declares how a backend's verdicts map onto safe/unsafe. Fact-check
// style backends use Supported = evidence agrees; the phishing classifier uses
// Supported = classified as phishing. Each backend reports its polarity
// explicitly so risk derivation never has to infer it from the mode label.
type Polarity string

const (
	// PolarityFactual: Refuted means the content is unsafe (a false claim).
	PolarityFactual Polarity = "factual"
	// PolaritySafety: Supported means the content is unsafe (flagged as phishing).
	PolaritySafety Polarity = "safety"
)

// SafetyVerdict is the polarity-resolved reading of a Verdict.
type SafetyVerdict string

const (
	SafetyFlagged SafetyVerdict = "Flagged"
	SafetyClear   SafetyVerdict = "Clear"
	SafetyUnknown SafetyVerdict = "Unknown"
)

// MapToSafety resolves a factual verdict into a safety verdict under the
// given polarity. Misclassification carries no safety signal and maps to
// Unknown under either polarity.
func MapToSafety(v Verdict, p Polarity) SafetyVerdict {
	switch v {
	case VerdictSupported:
		if p == PolaritySafety {
			return SafetyFlagged
		}
		return SafetyClear
	case VerdictRefuted:
		if p == PolaritySafety {
			return SafetyClear
		}
		return SafetyFlagged
	default:
		return SafetyUnknown
	}
}

// VerdictResult is the canonical output of any verifier backend for one claim.
type VerdictResult struct {
	Claim      string   `json:"claim"`
	Verdict    Verdict  `json:"verdict"`
	Evidence   []string `json:"evidence"`
	Similarity float64  `json:"similarity"`
}
