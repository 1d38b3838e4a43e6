package service

import (
	"fmt"
	"strings"

	"clarion-backend/models"
)

const (
	maxTopReasons    = 5
	reasonClaimChars = 80

	// Fact-check summary labels.
	SummaryUnverifiable = "Unverifiable"
	SummaryCorrect      = "Correct"
	SummaryIncorrect    = "Incorrect"
	SummaryMixed        = "Mixed"
)

// FactCheckMetrics aggregates a verdict set into the reader-facing numbers.
type FactCheckMetrics struct {
	CorrectCount       int
	IncorrectCount     int
	ResponseConfidence float64
	TopReasons         []string
	Summary            string
}

// ComputeFactCheckMetrics folds per-claim verdicts into counts, a confidence
// figure, and up to five reasons. Correct means Supported, incorrect means
// Refuted; Unknown and Misclassification count as unverified.
func ComputeFactCheckMetrics(verdicts []models.VerdictResult) FactCheckMetrics {
	var m FactCheckMetrics

	byVerdict := make(map[models.Verdict][]string)
	for _, v := range verdicts {
		byVerdict[v.Verdict] = append(byVerdict[v.Verdict], v.Claim)
	}
	m.CorrectCount = len(byVerdict[models.VerdictSupported])
	m.IncorrectCount = len(byVerdict[models.VerdictRefuted])
	unknown := len(byVerdict[models.VerdictUnknown])
	misclassified := len(byVerdict[models.VerdictMisclassification])
	total := len(verdicts)
	verified := total - unknown - misclassified

	if total > 0 {
		m.ResponseConfidence = clamp(float64(verified)/float64(total), 0.2, 0.95)
	}

	if total > 0 {
		if m.CorrectCount > 0 {
			m.TopReasons = append(m.TopReasons, fmt.Sprintf("%d claim(s) correct (supported by evidence): %s",
				m.CorrectCount, quoteClaims(byVerdict[models.VerdictSupported])))
		}
		if m.IncorrectCount > 0 {
			m.TopReasons = append(m.TopReasons, fmt.Sprintf("%d claim(s) not supported by evidence: %s",
				m.IncorrectCount, quoteClaims(byVerdict[models.VerdictRefuted])))
		}
		if misclassified > 0 {
			m.TopReasons = append(m.TopReasons, fmt.Sprintf("%d claim(s) misclassified (off-topic/wrong category): %s",
				misclassified, quoteClaims(byVerdict[models.VerdictMisclassification])))
		}
		if unknown == total {
			m.TopReasons = append(m.TopReasons, "Claims not in knowledge base (unverifiable)")
		}
	}
	if len(m.TopReasons) == 0 {
		m.TopReasons = append(m.TopReasons, "No claims to verify")
	}
	if len(m.TopReasons) > maxTopReasons {
		m.TopReasons = m.TopReasons[:maxTopReasons]
	}

	switch {
	case total == 0 || verified == 0:
		m.Summary = SummaryUnverifiable
	case m.CorrectCount > 0 && m.IncorrectCount == 0:
		m.Summary = SummaryCorrect
	case m.IncorrectCount > 0 && m.CorrectCount == 0:
		m.Summary = SummaryIncorrect
	default:
		m.Summary = SummaryMixed
	}
	return m
}

func quoteClaims(claims []string) string {
	quoted := make([]string, 0, len(claims))
	for _, c := range claims {
		quoted = append(quoted, fmt.Sprintf("%q", truncateWithEllipsis(c, reasonClaimChars)))
	}
	return strings.Join(quoted, "; ")
}

func truncateWithEllipsis(s string, maxLen int) string {
	s = strings.TrimSpace(s)
	if len(s) > maxLen {
		return s[:maxLen-3] + "..."
	}
	return s
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
