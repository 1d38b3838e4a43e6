// Package textproc holds the text preprocessing collaborators used across the
// analysis pipeline: cleaning, sentence splitting, URL extraction and
// sentence-respecting chunking of the knowledge corpus.
package textproc

import (
	"regexp"
	"strings"
)

var (
	whitespaceRE = regexp.MustCompile(`\s+`)
	sentenceRE   = regexp.MustCompile(`(?:[.!?])\s+`)
	urlRE        = regexp.MustCompile(`(?i)https?://[^\s<>"']+|www\.[^\s<>"']+`)
	paragraphRE  = regexp.MustCompile(`\n\n+`)
)

// CleanText normalizes whitespace and trims the input.
func CleanText(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	return whitespaceRE.ReplaceAllString(text, " ")
}

// IsEmptyInput reports whether the text is empty or whitespace-only.
func IsEmptyInput(text string) bool {
	return strings.TrimSpace(text) == ""
}

// SplitSentences splits cleaned text on terminal punctuation (. ! ?).
// The punctuation stays attached to its sentence.
func SplitSentences(text string) []string {
	text = CleanText(text)
	if text == "" {
		return nil
	}

	var sentences []string
	rest := text
	for {
		loc := sentenceRE.FindStringIndex(rest)
		if loc == nil {
			break
		}
		// Split after the punctuation, before the whitespace.
		s := strings.TrimSpace(rest[:loc[0]+1])
		if s != "" {
			sentences = append(sentences, s)
		}
		rest = rest[loc[1]:]
	}
	if s := strings.TrimSpace(rest); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

// ExtractURLs returns all URLs found in the text, in order of appearance.
func ExtractURLs(text string) []string {
	if text == "" {
		return nil
	}
	return urlRE.FindAllString(text, -1)
}

// Truncate shortens text to at most maxLen bytes, appending "..." when cut.
func Truncate(text string, maxLen int) string {
	text = strings.TrimSpace(text)
	if len(text) <= maxLen {
		return text
	}
	if maxLen <= 3 {
		return text[:maxLen]
	}
	return text[:maxLen-3] + "..."
}

// ChunkText splits free text into chunks of roughly chunkSize characters that
// start and end at sentence boundaries, keeping roughly overlap characters of
// trailing sentences between consecutive chunks.
func ChunkText(text string, chunkSize, overlap int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	// Paragraph breaks count as sentence boundaries too.
	normalized := paragraphRE.ReplaceAllString(text, ". ")
	raw := SplitSentences(normalized)
	var sentences []string
	for _, s := range raw {
		if len(s) > 10 {
			sentences = append(sentences, s)
		}
	}
	if len(sentences) == 0 {
		if len(text) > chunkSize {
			return []string{text[:chunkSize]}
		}
		return []string{text}
	}

	var chunks []string
	var current []string
	currentLen := 0

	for _, sent := range sentences {
		sentLen := len(sent) + 1
		if currentLen+sentLen > chunkSize && len(current) > 0 {
			chunks = append(chunks, strings.Join(current, " "))
			// Keep the last few sentences as overlap context.
			overlapLen := 0
			var overlapSents []string
			for j := len(current) - 1; j >= 0; j-- {
				overlapSents = append([]string{current[j]}, overlapSents...)
				overlapLen += len(current[j]) + 1
				if overlapLen >= overlap {
					break
				}
			}
			current = overlapSents
			currentLen = overlapLen
		}
		current = append(current, sent)
		currentLen += sentLen
	}
	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, " "))
	}
	return chunks
}
