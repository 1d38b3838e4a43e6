package verifier

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"clarion-backend/assistant"
	"clarion-backend/models"
)

const assistantSystemPrompt = `You are a fact-checking assistant. For each claim you receive, reply in exactly three lines:
VERDICT: SUPPORTED or REFUTED or UNKNOWN
EVIDENCE: one or two sentences explaining the verdict
SOURCES: comma-separated URLs, or NONE
Answer UNKNOWN when you are not confident. Never add any other lines.`

// AssistantVerifier checks claims through the remote assistant. One
// conversation is opened lazily and reused across calls so the assistant can
// see earlier claims from the same document.
type AssistantVerifier struct {
	svc assistant.Service

	mu   sync.Mutex
	conv assistant.Conversation
}

func NewAssistantVerifier(svc assistant.Service) *AssistantVerifier {
	return &AssistantVerifier{svc: svc}
}

func (v *AssistantVerifier) Name() string { return ModeAssistant }

func (v *AssistantVerifier) Polarity() models.Polarity { return models.PolarityFactual }

func (v *AssistantVerifier) Available(ctx context.Context) bool {
	return v != nil && v.svc != nil && v.svc.Configured()
}

func (v *AssistantVerifier) VerifyClaims(ctx context.Context, claims []string) Outcome {
	conv, err := v.conversation(ctx)
	if err != nil {
		return Outcome{
			Verdicts: unknownAll(claims, fmt.Sprintf("Assistant unavailable: %v", err)),
			Status:   StatusFailed,
			Reason:   err.Error(),
		}
	}

	verdicts := make([]models.VerdictResult, 0, len(claims))
	failures := 0
	for _, claim := range claims {
		reply, err := conv.Send(ctx, "Verify this claim:\n"+claim)
		if err != nil {
			failures++
			verdicts = append(verdicts, unknownResult(claim, fmt.Sprintf("Assistant request failed: %v", err)))
			continue
		}
		verdicts = append(verdicts, parseAssistantReply(claim, reply))
	}

	if failures == len(claims) {
		return Outcome{Verdicts: verdicts, Status: StatusFailed, Reason: "every assistant request failed"}
	}
	return Outcome{Verdicts: verdicts, Status: StatusOK}
}

func (v *AssistantVerifier) conversation(ctx context.Context) (assistant.Conversation, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.conv != nil {
		return v.conv, nil
	}
	conv, err := v.svc.StartConversation(ctx, "claim-verification", assistantSystemPrompt)
	if err != nil {
		return nil, err
	}
	v.conv = conv
	return conv, nil
}

// parseAssistantReply extracts the three-line contract from the reply. Marker
// matching is case-insensitive; a reply missing the VERDICT line degrades to
// Unknown with the raw reply kept as evidence.
func parseAssistantReply(claim, reply string) models.VerdictResult {
	var (
		verdict    = models.VerdictUnknown
		sawVerdict bool
		evidence   []string
		sources    []string
	)
	for _, line := range strings.Split(reply, "\n") {
		line = strings.TrimSpace(line)
		upper := strings.ToUpper(line)
		switch {
		case strings.HasPrefix(upper, "VERDICT:"):
			sawVerdict = true
			switch strings.TrimSpace(upper[len("VERDICT:"):]) {
			case "SUPPORTED":
				verdict = models.VerdictSupported
			case "REFUTED":
				verdict = models.VerdictRefuted
			default:
				verdict = models.VerdictUnknown
			}
		case strings.HasPrefix(upper, "EVIDENCE:"):
			if rest := strings.TrimSpace(line[len("EVIDENCE:"):]); rest != "" {
				evidence = append(evidence, rest)
			}
		case strings.HasPrefix(upper, "SOURCES:"):
			rest := strings.TrimSpace(line[len("SOURCES:"):])
			if rest == "" || strings.EqualFold(rest, "NONE") {
				continue
			}
			for _, src := range strings.Split(rest, ",") {
				if src = strings.TrimSpace(src); src != "" {
					sources = append(sources, src)
				}
			}
		}
	}

	if !sawVerdict {
		return unknownResult(claim, "Assistant reply was not in the expected format: "+truncateReply(reply))
	}
	for _, src := range sources {
		evidence = append(evidence, "Source: "+src)
	}

	similarity := 0.85
	if verdict == models.VerdictUnknown {
		similarity = 0.3
	}
	return models.VerdictResult{
		Claim:      claim,
		Verdict:    verdict,
		Evidence:   evidence,
		Similarity: similarity,
	}
}

func truncateReply(reply string) string {
	reply = strings.TrimSpace(reply)
	if len(reply) > 200 {
		return reply[:200] + "..."
	}
	return reply
}

func unknownAll(claims []string, evidence string) []models.VerdictResult {
	out := make([]models.VerdictResult, 0, len(claims))
	for _, c := range claims {
		out = append(out, unknownResult(c, evidence))
	}
	return out
}
