package verifier

import (
	"context"
	"fmt"
	"strings"

	"clarion-backend/models"
	"clarion-backend/search"
)

const (
	webMaxResults = 8
	webRetries    = 1
)

// SearchClient is the slice of the search package the web verifier needs.
type SearchClient interface {
	Search(ctx context.Context, query string, maxResults int) ([]search.Result, error)
}

// WebVerifier checks claims against live web search results.
type WebVerifier struct {
	client SearchClient
}

func NewWebVerifier(client SearchClient) *WebVerifier {
	return &WebVerifier{client: client}
}

func (v *WebVerifier) Name() string { return ModeWeb }

func (v *WebVerifier) Polarity() models.Polarity { return models.PolarityFactual }

func (v *WebVerifier) Available(ctx context.Context) bool {
	return v != nil && v.client != nil
}

// VerifyClaims searches for each claim and scores the hits against it. A run
// where no claim produced any result reports StatusEmpty so the caller can
// move to the next backend.
func (v *WebVerifier) VerifyClaims(ctx context.Context, claims []string) Outcome {
	verdicts := make([]models.VerdictResult, 0, len(claims))
	anyResults := false

	for _, claim := range claims {
		results, err := v.searchWithRetry(ctx, claim)
		if err != nil {
			verdicts = append(verdicts, unknownResult(claim, fmt.Sprintf("Search failed: %v", err)))
			continue
		}
		if len(results) == 0 {
			verdicts = append(verdicts, unknownResult(claim, "No search results found."))
			continue
		}
		anyResults = true
		verdicts = append(verdicts, v.judgeClaim(claim, results))
	}

	if !anyResults {
		return Outcome{Verdicts: verdicts, Status: StatusEmpty, Reason: "web search returned no results"}
	}
	return Outcome{Verdicts: verdicts, Status: StatusOK}
}

func (v *WebVerifier) searchWithRetry(ctx context.Context, claim string) ([]search.Result, error) {
	var lastErr error
	for attempt := 0; attempt <= webRetries; attempt++ {
		results, err := v.client.Search(ctx, claim, webMaxResults)
		if err == nil {
			return results, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}
	return nil, lastErr
}

// judgeClaim scores every result snippet against the claim. Every result
// becomes an evidence entry, in result-page order; the verdict comes from the
// strongest signal.
func (v *WebVerifier) judgeClaim(claim string, results []search.Result) models.VerdictResult {
	var (
		bestSim       float64
		contradiction bool
		entityMatch   bool
		evidence      []string
	)

	for _, r := range results {
		body := strings.TrimSpace(r.Snippet)
		combined := r.Title + ". " + body
		sim := keywordSimilarity(claim, combined)
		if sim > bestSim {
			bestSim = sim
		}
		if hasContradiction(combined) {
			contradiction = true
		}
		if hasMatchingEntities(claim, combined) {
			entityMatch = true
		}
		snippet := strings.TrimSpace(fmt.Sprintf("%s. %s", r.Title, body))
		if r.URL != "" {
			evidence = append(evidence, fmt.Sprintf("%s\nSource: %s", snippet, r.URL))
		} else {
			evidence = append(evidence, snippet)
		}
	}

	verdict := verdictFromSignals(bestSim, contradiction, entityMatch)
	similarity := 0.85
	if verdict == models.VerdictUnknown {
		similarity = bestSim
		if similarity < 0.3 {
			similarity = 0.3
		}
	}
	return models.VerdictResult{
		Claim:      claim,
		Verdict:    verdict,
		Evidence:   evidence,
		Similarity: similarity,
	}
}
