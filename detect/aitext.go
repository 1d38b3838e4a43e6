package detect

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"clarion-backend/models"
	"clarion-backend/textproc"
)

var genericPhrasePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bit's important to note\b`),
	regexp.MustCompile(`(?i)\bin conclusion\b`),
	regexp.MustCompile(`(?i)\bhowever, it is (worth noting|important)\b`),
	regexp.MustCompile(`(?i)\badditionally\b`),
	regexp.MustCompile(`(?i)\bfurthermore\b`),
	regexp.MustCompile(`(?i)\bmoreover\b`),
	regexp.MustCompile(`(?i)\bcomprehensive(ly)?\b`),
	regexp.MustCompile(`(?i)\bdelve (into|deeper)\b`),
	regexp.MustCompile(`(?i)\bnavigate (the|these)\b`),
	regexp.MustCompile(`(?i)\blandscape\b`),
	regexp.MustCompile(`(?i)\bnuanced\b`),
	regexp.MustCompile(`(?i)\bholistic\b`),
	regexp.MustCompile(`(?i)\bleverage\b`),
	regexp.MustCompile(`(?i)\bparadigm\b`),
}

var tokenRE = regexp.MustCompile(`\b\w+\b`)

func uniqueWordRatio(text string) float64 {
	words := tokenRE.FindAllString(strings.ToLower(text), -1)
	if len(words) == 0 {
		return 1.0
	}
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return float64(len(set)) / float64(len(words))
}

func lengthStdDev(lengths []int) float64 {
	if len(lengths) < 2 {
		return 0.0
	}
	mean := 0.0
	for _, l := range lengths {
		mean += float64(l)
	}
	mean /= float64(len(lengths))
	variance := 0.0
	for _, l := range lengths {
		d := float64(l) - mean
		variance += d * d
	}
	variance /= float64(len(lengths))
	return math.Sqrt(variance)
}

func wordCounts(parts []string) []int {
	lengths := make([]int, 0, len(parts))
	for _, p := range parts {
		lengths = append(lengths, len(strings.Fields(p)))
	}
	return lengths
}

// paragraphUniformity scores how uniform paragraph lengths are, 0-1. Uniform
// short paragraphs read as machine-structured.
func paragraphUniformity(text string) float64 {
	var paras []string
	for _, p := range strings.Split(text, "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			paras = append(paras, p)
		}
	}
	if len(paras) < 2 {
		return 0.5
	}
	std := lengthStdDev(wordCounts(paras))
	score := 1.0 - std/50.0
	if score < 0 {
		return 0.0
	}
	return score
}

// AIGenerated estimates how likely the text is machine-written from lexical
// diversity, sentence rhythm, stock phrases, and paragraph shape.
func AIGenerated(text string) models.AIDetectionResult {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.AIDetectionResult{AILikelihood: 0.0, Indicators: []string{}}
	}
	sentences := textproc.SplitSentences(text)

	var indicators []string

	uwr := uniqueWordRatio(text)
	switch {
	case uwr < 0.5:
		indicators = append(indicators, "Low lexical diversity (repetitive vocabulary)")
	case uwr < 0.65:
		indicators = append(indicators, "Moderate lexical diversity")
	}

	sentenceLens := wordCounts(sentences)
	std := lengthStdDev(sentenceLens)
	switch {
	case std < 5 && len(sentences) >= 3:
		indicators = append(indicators, "Uniform sentence lengths")
	case std > 15:
		indicators = append(indicators, "Variable sentence structure (more human-like)")
	}

	generic := 0
	for _, p := range genericPhrasePatterns {
		if p.MatchString(text) {
			generic++
		}
	}
	switch {
	case generic >= 3:
		indicators = append(indicators, fmt.Sprintf("Multiple generic AI-style phrases (%d)", generic))
	case generic >= 1:
		indicators = append(indicators, "Some generic phrasing")
	}

	paraScore := paragraphUniformity(text)
	if paraScore > 0.6 {
		indicators = append(indicators, "Uniform paragraph structure")
	}

	avgLen := 0.0
	if len(sentences) > 0 {
		total := 0
		for _, l := range sentenceLens {
			total += l
		}
		avgLen = float64(total) / float64(len(sentences))
	}
	if avgLen > 25 && len(sentences) >= 2 {
		indicators = append(indicators, "Long, complex sentences")
	}

	score := (1.0 - uwr) * 0.25
	score += (1.0 - minFloat(1.0, std/15.0)) * 0.2
	score += minFloat(0.25, float64(generic)*0.08)
	score += paraScore * 0.15
	if avgLen > 15 {
		score += minFloat(0.15, (avgLen-15.0)/50.0)
	}
	if score > 1.0 {
		score = 1.0
	}
	if score < 0.0 {
		score = 0.0
	}

	if len(indicators) == 0 {
		indicators = append(indicators, "No strong AI-generation indicators")
	}
	return models.AIDetectionResult{AILikelihood: score, Indicators: indicators}
}
