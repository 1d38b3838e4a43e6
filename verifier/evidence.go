package verifier

import (
	"regexp"
	"strings"

	"clarion-backend/models"
)

// Similarity tiers shared by the retrieval and web backends so online and
// offline modes hand out verdicts on the same scale.
const (
	strongSimilarity   = 0.35
	moderateSimilarity = 0.20
)

// Keywords whose presence in evidence marks it as contradicting the claim.
var contradictionKeywords = []string{
	"false", "debunked", "hoax", "not true", "myth", "misleading",
	"incorrect", "untrue", "fabricated", "disproven", "fake",
	"no evidence", "lacks evidence", "unfounded",
}

var (
	wordRE        = regexp.MustCompile(`\b\w+\b`)
	digitsRE      = regexp.MustCompile(`\d+`)
	capitalizedRE = regexp.MustCompile(`\b[A-Z][a-z]+\b`)
)

// keywordSimilarity is the fraction of the claim's word set found in text.
func keywordSimilarity(claim, text string) float64 {
	cw := stringSet(wordRE.FindAllString(strings.ToLower(claim), -1))
	if len(cw) == 0 {
		return 0.0
	}
	tw := stringSet(wordRE.FindAllString(strings.ToLower(text), -1))
	shared := 0
	for w := range cw {
		if tw[w] {
			shared++
		}
	}
	return float64(shared) / float64(len(cw))
}

func stringSet(words []string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

func hasContradiction(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range contradictionKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// hasMatchingEntities reports whether the claim and the evidence share a
// numeric token or a capitalized multi-letter token, a cheap proxy for
// talking about the same subject.
func hasMatchingEntities(claim, text string) bool {
	cNums := stringSet(digitsRE.FindAllString(claim, -1))
	tNums := stringSet(digitsRE.FindAllString(text, -1))
	for n := range cNums {
		if tNums[n] {
			return true
		}
	}
	cCaps := stringSet(capitalizedRE.FindAllString(claim, -1))
	tCaps := stringSet(capitalizedRE.FindAllString(text, -1))
	for c := range cCaps {
		if tCaps[c] {
			return true
		}
	}
	return false
}

// verdictFromSignals applies the tiered verdict rules shared by the retrieval
// and web backends. Misclassification means the evidence looked relevant but
// never mentioned the claim's entities: the index had no matching subject,
// which must not be read as "no evidence exists".
func verdictFromSignals(bestSim float64, contradiction, entityMatch bool) models.Verdict {
	strong := bestSim > strongSimilarity
	moderate := bestSim > moderateSimilarity

	switch {
	case strong && contradiction:
		return models.VerdictRefuted
	case moderate && contradiction && entityMatch:
		return models.VerdictRefuted
	case strong && entityMatch:
		return models.VerdictSupported
	case moderate && entityMatch && !contradiction:
		return models.VerdictSupported
	case strong || moderate:
		return models.VerdictMisclassification
	default:
		return models.VerdictUnknown
	}
}
