package service

import (
	"fmt"

	"clarion-backend/models"
)

// unsafeCounts tallies a verdict set through its polarity: under safety
// polarity Supported means "this is phishing" and is the unsafe verdict,
// under factual polarity Refuted is.
func unsafeCounts(verdicts []models.VerdictResult, polarity models.Polarity) (unsafe, safe, unknown int) {
	for _, v := range verdicts {
		switch models.MapToSafety(v.Verdict, polarity) {
		case models.SafetyFlagged:
			unsafe++
		case models.SafetyClear:
			safe++
		default:
			unknown++
		}
	}
	return unsafe, safe, unknown
}

func isUnsafe(v models.VerdictResult, polarity models.Polarity) bool {
	return models.MapToSafety(v.Verdict, polarity) == models.SafetyFlagged
}

// DeriveSocialEngineering turns the winning backend's verdicts into a
// safe/unsafe risk assessment.
func DeriveSocialEngineering(verdicts []models.VerdictResult, polarity models.Polarity, mode string) models.SocialEngineeringResult {
	if len(verdicts) == 0 {
		return models.SocialEngineeringResult{
			RiskLevel:              models.RiskLow,
			RedFlags:               []string{"No claims to verify; no AI verdict available."},
			SaferRewriteSuggestion: "No content was verified by any backend.",
		}
	}

	unsafe, _, unknown := unsafeCounts(verdicts, polarity)

	var redFlags []string
	for _, v := range verdicts {
		switch {
		case isUnsafe(v, polarity) && len(v.Evidence) > 0:
			if ev := v.Evidence[0]; ev != "" {
				redFlags = append(redFlags, clip(ev, 200))
			} else {
				redFlags = append(redFlags, fmt.Sprintf("Claim flagged: %s...", clip(v.Claim, 80)))
			}
		case v.Verdict == models.VerdictUnknown && len(v.Evidence) > 0:
			if ev := v.Evidence[0]; len(ev) > 150 {
				redFlags = append(redFlags, fmt.Sprintf("Unclear: %s...", clip(ev, 150)))
			} else {
				redFlags = append(redFlags, ev)
			}
		}
	}
	if len(redFlags) == 0 && unsafe > 0 {
		redFlags = []string{fmt.Sprintf("%d claim(s) flagged as unsafe by %s", unsafe, mode)}
	}
	if len(redFlags) == 0 && unknown > 0 {
		redFlags = []string{fmt.Sprintf("%d claim(s) could not be verified", unknown)}
	}

	level := models.RiskLow
	switch {
	case unsafe >= 1:
		if unsafe >= len(verdicts)/2+1 {
			level = models.RiskHigh
		} else {
			level = models.RiskMedium
		}
	case unknown > 0:
		level = models.RiskMedium
	}

	var suggestion string
	switch level {
	case models.RiskLow:
		suggestion = "Content appears safe based on verifier analysis. No rewrite needed."
	case models.RiskHigh:
		suggestion = "Safer approach: Treat this content with caution. Verify through official channels before taking action. Do not share credentials or send money via links in messages."
	default:
		suggestion = "Safer approach: Some claims could not be fully verified. Cross-check with trusted sources before relying on this information."
	}

	if len(redFlags) == 0 {
		redFlags = []string{"No obvious risks detected by verifier."}
	}
	return models.SocialEngineeringResult{
		RiskLevel:              level,
		RedFlags:               redFlags,
		SaferRewriteSuggestion: suggestion,
	}
}

// DeriveMisinformation scores misinformation risk as the unsafe share of the
// winning backend's verdicts.
func DeriveMisinformation(verdicts []models.VerdictResult, polarity models.Polarity, mode string) models.MisinformationResult {
	if len(verdicts) == 0 {
		return models.MisinformationResult{
			RiskScore: 0.0,
			Reasons:   []string{"No claims to verify; no AI verdict available."},
		}
	}

	unsafe, _, _ := unsafeCounts(verdicts, polarity)
	score := float64(unsafe) / float64(len(verdicts))
	if score > 1.0 {
		score = 1.0
	}

	var reasons []string
	for _, v := range verdicts {
		if isUnsafe(v, polarity) && len(v.Evidence) > 0 {
			ev := v.Evidence[0]
			if len(ev) > 180 {
				reasons = append(reasons, ev[:180]+"...")
			} else {
				reasons = append(reasons, ev)
			}
		}
	}
	if len(reasons) == 0 && unsafe > 0 {
		reasons = []string{fmt.Sprintf("%d claim(s) flagged by %s", unsafe, mode)}
	}
	if len(reasons) == 0 {
		reasons = []string{"No misinformation signals from verifier analysis."}
	}
	if len(reasons) > maxTopReasons {
		reasons = reasons[:maxTopReasons]
	}
	return models.MisinformationResult{RiskScore: score, Reasons: reasons}
}

func clip(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
