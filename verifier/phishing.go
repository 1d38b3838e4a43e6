package verifier

import (
	"context"
	"fmt"
	"strings"

	"clarion-backend/inference"
	"clarion-backend/models"
	"clarion-backend/textproc"
)

// Model inputs are capped so an oversized document does not blow the
// classifier's sequence limit.
const phishingMaxInputChars = 2000

// InferenceClient is the slice of the inference package the phishing
// verifier needs.
type InferenceClient interface {
	Available(ctx context.Context) bool
	Classify(ctx context.Context, texts []string) ([][]inference.Prediction, error)
}

// PhishingVerifier runs the local phishing classifier over each text block
// and over every URL found inside it. Its verdicts carry safety polarity:
// Supported means "this is phishing".
type PhishingVerifier struct {
	client InferenceClient
}

func NewPhishingVerifier(client InferenceClient) *PhishingVerifier {
	return &PhishingVerifier{client: client}
}

func (v *PhishingVerifier) Name() string { return ModeLocalModel }

func (v *PhishingVerifier) Polarity() models.Polarity { return models.PolaritySafety }

func (v *PhishingVerifier) Available(ctx context.Context) bool {
	return v != nil && v.client != nil && v.client.Available(ctx)
}

// VerifyClaims classifies each text block and, separately, every unique URL
// found across the blocks. URL classifications are emitted as their own
// verdict items so a phishing link counts on its own.
func (v *PhishingVerifier) VerifyClaims(ctx context.Context, claims []string) Outcome {
	// Blank blocks get a direct Unknown and stay out of the batch.
	batchIdx := make(map[int]int, len(claims))
	var batch []string
	for i, claim := range claims {
		if input := clampInput(claim); input != "" {
			batchIdx[i] = len(batch)
			batch = append(batch, input)
		}
	}
	urls := uniqueURLs(strings.Join(claims, " "))
	batch = append(batch, urls...)
	if len(batch) == 0 {
		blanks := make([]models.VerdictResult, 0, len(claims))
		for _, c := range claims {
			blanks = append(blanks, unknownResult(c))
		}
		return Outcome{Verdicts: blanks, Status: StatusEmpty, Reason: "nothing to classify"}
	}

	predictions, err := v.client.Classify(ctx, batch)
	if err != nil {
		return Outcome{
			Verdicts: unknownAll(claims, fmt.Sprintf("Classifier request failed: %v", err)),
			Status:   StatusFailed,
			Reason:   err.Error(),
		}
	}

	verdicts := make([]models.VerdictResult, 0, len(claims)+len(urls))
	for i, claim := range claims {
		j, ok := batchIdx[i]
		if !ok {
			verdicts = append(verdicts, unknownResult(claim))
			continue
		}
		prob := inference.PhishingProbability(predictions[j])
		verdicts = append(verdicts, textVerdict(claim, prob))
	}
	urlBase := len(batch) - len(urls)
	for j, url := range urls {
		prob := inference.PhishingProbability(predictions[urlBase+j])
		verdicts = append(verdicts, urlVerdict(url, prob))
	}
	return Outcome{Verdicts: verdicts, Status: StatusOK}
}

// uniqueURLs extracts URLs in order of first appearance, stripping trailing
// punctuation that the extractor tends to swallow.
func uniqueURLs(text string) []string {
	seen := make(map[string]bool)
	var urls []string
	for _, u := range textproc.ExtractURLs(text) {
		u = strings.TrimRight(strings.TrimSpace(u), ".,;:)")
		if u == "" || seen[u] {
			continue
		}
		seen[u] = true
		urls = append(urls, u)
	}
	return urls
}

func textVerdict(claim string, prob float64) models.VerdictResult {
	verdict := models.VerdictRefuted
	similarity := 1.0 - prob
	if prob >= 0.5 {
		verdict = models.VerdictSupported
		similarity = prob
	}
	return models.VerdictResult{
		Claim:      claim,
		Verdict:    verdict,
		Evidence:   []string{fmt.Sprintf("BERT: %s (confidence: %.2f)", phishingLabel(prob), similarity)},
		Similarity: similarity,
	}
}

func urlVerdict(url string, prob float64) models.VerdictResult {
	verdict := models.VerdictRefuted
	similarity := 1.0 - prob
	if prob >= 0.5 {
		verdict = models.VerdictSupported
		similarity = prob
	}
	return models.VerdictResult{
		Claim:      "URL: " + url,
		Verdict:    verdict,
		Evidence:   []string{fmt.Sprintf("URL phishing: %s (confidence: %.2f)", phishingLabel(prob), similarity)},
		Similarity: similarity,
	}
}

func phishingLabel(prob float64) string {
	if prob >= 0.5 {
		return "phishing"
	}
	return "legitimate"
}

func clampInput(text string) string {
	text = strings.TrimSpace(text)
	if len(text) > phishingMaxInputChars {
		return text[:phishingMaxInputChars]
	}
	return text
}
