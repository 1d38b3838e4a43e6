// Package detect holds the rule-based style detectors that run alongside
// claim verification: misinformation framing, social-engineering pressure,
// and AI-generation likelihood. They are cheap signals, not verdicts.
package detect

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"clarion-backend/models"
	"clarion-backend/textproc"
)

var sensationalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(breaking|urgent|alert|shocking|exclusive|revealed)\b`),
	regexp.MustCompile(`(?i)\b(they don't want you to know|they're hiding|cover.?up)\b`),
	regexp.MustCompile(`(?i)\b(share this|forward this|tell everyone|spread the word)\b`),
	regexp.MustCompile(`(?i)\b(must see|you won't believe|mind.?blowing)\b`),
	regexp.MustCompile(`(?i)\b(conspiracy|mainstream media|fake news)\b`),
	regexp.MustCompile(`(?i)\b(100% (true|guaranteed|proven))\b`),
	regexp.MustCompile(`(?i)\b(doctors hate|big pharma|big tech)\b`),
}

var emotionalRE = regexp.MustCompile(`(?i)\b(danger|scandal|outrage|horror|terrifying|devastating|exposed|secret|hidden|truth|lies|corruption|crisis|emergency|panic|fear|warning)\b`)

var (
	exclamRE     = regexp.MustCompile(`!+`)
	questionRE   = regexp.MustCompile(`\?+`)
	viralRE      = regexp.MustCompile(`(?i)\b(share|forward|tell everyone|spread)\b`)
	conspiracyRE = regexp.MustCompile(`(?i)don't want you to know|they're hiding|cover.?up`)
)

func allCapsRatio(text string) float64 {
	letters, upper := 0, 0
	for _, r := range text {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				upper++
			}
		}
	}
	if letters == 0 {
		return 0.0
	}
	return float64(upper) / float64(letters)
}

func excessivePunctuation(text string) float64 {
	runs := len(exclamRE.FindAllString(text, -1)) + len(questionRE.FindAllString(text, -1))
	score := float64(runs) / 3.0
	if score > 1.0 {
		return 1.0
	}
	return score
}

// Misinformation scores sensational and manipulative framing 0-1. This is a
// style signal about how the text argues, independent of whether its claims
// hold up.
func Misinformation(text string) models.MisinformationResult {
	if strings.TrimSpace(text) == "" {
		return models.MisinformationResult{RiskScore: 0.0, Reasons: []string{}}
	}
	text = textproc.CleanText(text)

	var reasons []string

	caps := allCapsRatio(text)
	switch {
	case caps > 0.3:
		reasons = append(reasons, fmt.Sprintf("High proportion of ALL CAPS (%.0f%%)", caps*100))
	case caps > 0.15:
		reasons = append(reasons, fmt.Sprintf("Moderate use of caps (%.0f%%)", caps*100))
	}

	punct := excessivePunctuation(text)
	if punct > 0.3 {
		reasons = append(reasons, "Excessive punctuation (!!! ???)")
	}

	sensational := 0
	for _, p := range sensationalPatterns {
		if p.MatchString(text) {
			sensational++
		}
	}
	switch {
	case sensational >= 2:
		reasons = append(reasons, fmt.Sprintf("Sensational/urgent language (%d patterns)", sensational))
	case sensational == 1:
		reasons = append(reasons, "Some sensational phrasing")
	}

	emotional := len(emotionalRE.FindAllString(text, -1))
	switch {
	case emotional >= 3:
		reasons = append(reasons, fmt.Sprintf("Multiple emotionally charged words (%d)", emotional))
	case emotional >= 1:
		reasons = append(reasons, "Emotionally charged vocabulary")
	}

	if viralRE.MatchString(text) {
		reasons = append(reasons, "Encourages viral sharing")
	}
	if conspiracyRE.MatchString(text) {
		reasons = append(reasons, "Conspiracy-style framing")
	}

	lower := strings.ToLower(text)
	score := 0.0
	score += minFloat(0.25, caps*0.5)
	score += minFloat(0.15, punct*0.5)
	score += minFloat(0.25, float64(sensational)*0.12)
	score += minFloat(0.2, float64(emotional)*0.06)
	if strings.Contains(lower, "share") || strings.Contains(lower, "forward") {
		score += 0.1
	}
	if strings.Contains(lower, "don't want you to know") {
		score += 0.15
	}
	if score > 1.0 {
		score = 1.0
	}

	if len(reasons) == 0 {
		reasons = append(reasons, "No strong misinformation signals detected")
	}
	return models.MisinformationResult{RiskScore: score, Reasons: reasons}
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
