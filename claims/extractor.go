// Package claims implements rule-based claim extraction: free text in,
// a bounded list of claim-like blocks out. No model calls are involved.
package claims

import (
	"regexp"
	"strings"

	"clarion-backend/textproc"
)

// DefaultMaxClaims bounds how many claim blocks one analysis verifies.
const DefaultMaxClaims = 6

// MaxClaimBlockChars caps each claim block so verification stays focused.
const MaxClaimBlockChars = 450

// Verbs that often anchor a factual or reporting statement.
var strongVerbs = map[string]bool{
	"is": true, "are": true, "was": true, "were": true, "has": true,
	"have": true, "had": true, "will": true, "would": true,
	"said": true, "says": true, "claimed": true, "claims": true,
	"proved": true, "proves": true, "shows": true,
	"causes": true, "caused": true, "kills": true, "killed": true,
	"prevents": true, "prevented": true, "increases": true,
	"decreased": true, "reduces": true, "reduced": true,
	"found": true, "discovered": true, "confirmed": true, "denied": true,
	"revealed": true, "exposed": true, "linked": true, "contains": true,
}

var (
	numberRE = regexp.MustCompile(`\d+([.,]\d+)?%?|\d{1,2}/\d{1,2}/\d{2,4}`)
	entityRE = regexp.MustCompile(`\b[A-Z][a-z]+(\s+[A-Z][a-z]+)*\b|\b[A-Z]{2,}\b`)
	wordRE   = regexp.MustCompile(`\b\w+\b`)
)

func hasStrongVerb(sentence string) bool {
	for _, w := range wordRE.FindAllString(strings.ToLower(sentence), -1) {
		if strongVerbs[w] {
			return true
		}
	}
	return false
}

func isClaimLike(sentence string) bool {
	if len(sentence) < 10 {
		return false
	}
	return hasStrongVerb(sentence) || numberRE.MatchString(sentence) || entityRE.MatchString(sentence)
}

func wordSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range wordRE.FindAllString(strings.ToLower(s), -1) {
		set[w] = true
	}
	return set
}

// overlapSimilarity is |words(a) ∩ words(b)| / |words(a)|.
func overlapSimilarity(a, b string) float64 {
	wa := wordSet(a)
	if len(wa) == 0 {
		return 0.0
	}
	wb := wordSet(b)
	shared := 0
	for w := range wa {
		if wb[w] {
			shared++
		}
	}
	return float64(shared) / float64(len(wa))
}

// deduplicate drops blocks sharing >= threshold of their word set with an
// earlier retained block. First occurrence wins.
func deduplicate(blocks []string, threshold float64) []string {
	var result []string
	for _, b := range blocks {
		if strings.TrimSpace(b) == "" {
			continue
		}
		dup := false
		for _, r := range result {
			if overlapSimilarity(b, r) >= threshold {
				dup = true
				break
			}
		}
		if !dup {
			result = append(result, b)
		}
	}
	return result
}

func truncateBlock(block string) string {
	if len(block) <= MaxClaimBlockChars {
		return block
	}
	cut := block[:MaxClaimBlockChars]
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return cut
}

// buildBlocks groups consecutive claim-like sentence indices into runs and
// joins each run into one block. A run of length 1 borrows one adjacent
// sentence (the previous when it exists, otherwise the next) so a single
// claim line keeps some context.
func buildBlocks(sentences []string, claimIndices []int) []string {
	if len(sentences) == 0 || len(claimIndices) == 0 {
		return nil
	}

	var groups [][2]int // inclusive [start, end] ranges
	start, prev := claimIndices[0], claimIndices[0]
	for _, i := range claimIndices[1:] {
		if i == prev+1 {
			prev = i
			continue
		}
		groups = append(groups, [2]int{start, prev})
		start, prev = i, i
	}
	groups = append(groups, [2]int{start, prev})

	var blocks []string
	for _, g := range groups {
		lo, hi := g[0], g[1]
		if lo == hi {
			if lo > 0 {
				lo--
			} else if hi+1 < len(sentences) {
				hi++
			}
		}
		block := strings.TrimSpace(truncateBlock(strings.Join(sentences[lo:hi+1], " ")))
		if block != "" {
			blocks = append(blocks, block)
		}
	}
	return blocks
}

// fallbackBlocks handles text with no claim-like sentences: join the
// non-trivial sentences into at most two blocks so context survives.
func fallbackBlocks(sentences []string, maxClaims int) []string {
	var usable []string
	for _, s := range sentences {
		if len(s) > 15 {
			usable = append(usable, s)
		}
	}
	if len(usable) == 0 {
		if len(sentences) > 3 {
			usable = sentences[:3]
		} else {
			usable = sentences
		}
	}

	chunkSize := (len(usable) + 1) / 2
	if chunkSize < 1 {
		chunkSize = 1
	}
	var blocks []string
	for i := 0; i < len(usable); i += chunkSize {
		end := i + chunkSize
		if end > len(usable) {
			end = len(usable)
		}
		block := strings.TrimSpace(strings.Join(usable[i:end], " "))
		if block != "" {
			blocks = append(blocks, truncateBlock(block))
		}
	}
	if len(blocks) > maxClaims {
		blocks = blocks[:maxClaims]
	}
	return blocks
}

// Extract returns up to maxClaims claim blocks from the text, in order of
// appearance, each at most MaxClaimBlockChars long, deduplicated by word
// overlap. Empty or whitespace-only input yields nil.
func Extract(text string, maxClaims int) []string {
	if textproc.IsEmptyInput(text) {
		return nil
	}
	if maxClaims <= 0 {
		maxClaims = DefaultMaxClaims
	}

	sentences := textproc.SplitSentences(text)
	if len(sentences) == 0 {
		return nil
	}

	var claimIndices []int
	for i, s := range sentences {
		if isClaimLike(s) {
			claimIndices = append(claimIndices, i)
		}
	}

	if len(claimIndices) == 0 {
		return fallbackBlocks(sentences, maxClaims)
	}

	blocks := deduplicate(buildBlocks(sentences, claimIndices), 0.6)
	if len(blocks) > maxClaims {
		blocks = blocks[:maxClaims]
	}
	return blocks
}
