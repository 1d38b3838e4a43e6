package assistant

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"clarion-backend/models"
)

// ErrNoSummary indicates the synthesis reply carried no SUMMARY line; the
// caller treats the whole synthesis as failed.
var ErrNoSummary = errors.New("synthesis reply had no summary")

const (
	maxSynthesisReasons   = 5
	maxSynthesisCitations = 15
)

const synthesisSystemPrompt = `You are a fact-check editor. You receive per-claim verdicts with evidence and produce a short reader-facing synthesis. Reply in exactly this format:
SUMMARY: <two or three sentences summarizing what was verified>
REASONS:
- <reason>
- <reason>
CITATIONS:
- <url>
- <url>
Only include citations that appear in the evidence you were given.`

// Synthesis is the assistant's editorial pass over a finished verdict set.
type Synthesis struct {
	Summary   string
	Reasons   []string
	Citations []string
}

// Synthesize asks the assistant for a reader-facing summary of the verdicts.
// It opens a fresh conversation per call; synthesis has no useful history.
func Synthesize(ctx context.Context, svc Service, verdicts []models.VerdictResult) (Synthesis, error) {
	if svc == nil || !svc.Configured() {
		return Synthesis{}, ErrNotConfigured
	}
	conv, err := svc.StartConversation(ctx, "synthesis", synthesisSystemPrompt)
	if err != nil {
		return Synthesis{}, err
	}

	var sb strings.Builder
	for i, v := range verdicts {
		fmt.Fprintf(&sb, "Claim %d: %s\nVerdict: %s\n", i+1, v.Claim, v.Verdict)
		for _, e := range v.Evidence {
			fmt.Fprintf(&sb, "Evidence: %s\n", e)
		}
		sb.WriteString("\n")
	}

	reply, err := conv.Send(ctx, sb.String())
	if err != nil {
		return Synthesis{}, err
	}
	out := parseSynthesis(reply)
	if out.Summary == "" {
		return Synthesis{}, ErrNoSummary
	}
	return out, nil
}

var citationURLRE = regexp.MustCompile(`https?://[^\s,\)]+`)

// parseSynthesis walks the reply line by line, switching sections on the
// SUMMARY/REASONS/CITATIONS markers. Unmarked leading text is folded into
// the summary so a slightly off-format reply still yields something usable.
// Citations are URL-matched, never taken verbatim: a "none" line yields
// nothing.
func parseSynthesis(reply string) Synthesis {
	var (
		out     Synthesis
		section = "summary"
		summary []string
	)
	for _, line := range strings.Split(reply, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		upper := strings.ToUpper(line)
		switch {
		case strings.HasPrefix(upper, "SUMMARY:"):
			section = "summary"
			if rest := strings.TrimSpace(line[len("SUMMARY:"):]); rest != "" {
				summary = append(summary, rest)
			}
			continue
		case strings.HasPrefix(upper, "REASONS:"):
			section = "reasons"
			continue
		case strings.HasPrefix(upper, "CITATIONS:"):
			section = "citations"
			// URLs may sit on the marker line itself.
			out.appendCitations(strings.TrimSpace(line[len("CITATIONS:"):]))
			continue
		}

		switch section {
		case "summary":
			summary = append(summary, line)
		case "reasons":
			item := strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(line, "-"), "*"))
			if item != "" && len(out.Reasons) < maxSynthesisReasons {
				out.Reasons = append(out.Reasons, item)
			}
		case "citations":
			out.appendCitations(line)
		}
	}
	out.Summary = strings.Join(summary, " ")
	return out
}

func (s *Synthesis) appendCitations(line string) {
	if line == "" || strings.Contains(strings.ToLower(line), "none") {
		return
	}
	for _, m := range citationURLRE.FindAllString(line, -1) {
		url := strings.TrimRight(m, ".,;)")
		if url == "" || s.hasCitation(url) {
			continue
		}
		if len(s.Citations) >= maxSynthesisCitations {
			return
		}
		s.Citations = append(s.Citations, url)
	}
}

func (s *Synthesis) hasCitation(url string) bool {
	for _, c := range s.Citations {
		if c == url {
			return true
		}
	}
	return false
}
