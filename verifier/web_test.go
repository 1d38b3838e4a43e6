package verifier

import (
	"context"
	"errors"
	"testing"

	"clarion-backend/models"
	"clarion-backend/search"
)

type fakeSearch struct {
	results map[string][]search.Result
	err     error
	calls   int
}

func (f *fakeSearch) Search(ctx context.Context, query string, maxResults int) ([]search.Result, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.results[query], nil
}

func TestWebVerifierSupported(t *testing.T) {
	claim := "The Earth orbits the Sun once every year"
	fs := &fakeSearch{results: map[string][]search.Result{
		claim: {
			{Title: "Earth's orbit", URL: "https://example.org/orbit", Snippet: "The Earth orbits the Sun once every year, completing a full revolution."},
		},
	}}
	v := NewWebVerifier(fs)
	out := v.VerifyClaims(context.Background(), []string{claim})
	if out.Status != StatusOK {
		t.Fatalf("status = %v, want StatusOK", out.Status)
	}
	if len(out.Verdicts) != 1 {
		t.Fatalf("got %d verdicts", len(out.Verdicts))
	}
	got := out.Verdicts[0]
	if got.Verdict != models.VerdictSupported {
		t.Errorf("verdict = %v, want Supported", got.Verdict)
	}
	if got.Similarity != 0.85 {
		t.Errorf("similarity = %v, want 0.85", got.Similarity)
	}
	if len(got.Evidence) == 0 {
		t.Error("expected evidence from the search hit")
	}
}

func TestWebVerifierRefuted(t *testing.T) {
	claim := "Vitamin C cures the common cold in all patients"
	fs := &fakeSearch{results: map[string][]search.Result{
		claim: {
			{Title: "Vitamin C myth", URL: "https://example.org/vitc", Snippet: "The claim that vitamin C cures the common cold is a myth and has been debunked by patients trials."},
		},
	}}
	v := NewWebVerifier(fs)
	out := v.VerifyClaims(context.Background(), []string{claim})
	if out.Verdicts[0].Verdict != models.VerdictRefuted {
		t.Errorf("verdict = %v, want Refuted", out.Verdicts[0].Verdict)
	}
}

func TestWebVerifierKeepsAllResultsAsEvidence(t *testing.T) {
	claim := "The spacecraft landed on the Moon in 1969"
	fs := &fakeSearch{results: map[string][]search.Result{
		claim: {
			{Title: "Moon landing", URL: "https://example.org/1", Snippet: "The spacecraft landed on the Moon in 1969."},
			{Title: "Apollo history", URL: "https://example.org/2", Snippet: "Apollo 11 touched down on the Moon in 1969."},
			{Title: "Also unrelated", URL: "https://example.org/3", Snippet: "Gardening tips for spring."},
			{Title: "More filler", URL: "https://example.org/4", Snippet: "The best of the rest."},
		},
	}}
	v := NewWebVerifier(fs)
	out := v.VerifyClaims(context.Background(), []string{claim})
	got := out.Verdicts[0]
	if len(got.Evidence) != 4 {
		t.Fatalf("evidence entries = %d, want one per result", len(got.Evidence))
	}
	want := []string{
		"Moon landing. The spacecraft landed on the Moon in 1969.\nSource: https://example.org/1",
		"Apollo history. Apollo 11 touched down on the Moon in 1969.\nSource: https://example.org/2",
		"Also unrelated. Gardening tips for spring.\nSource: https://example.org/3",
		"More filler. The best of the rest.\nSource: https://example.org/4",
	}
	for i, w := range want {
		if got.Evidence[i] != w {
			t.Errorf("evidence[%d] = %q, want %q", i, got.Evidence[i], w)
		}
	}
}

func TestWebVerifierNoResultsIsEmpty(t *testing.T) {
	fs := &fakeSearch{results: map[string][]search.Result{}}
	v := NewWebVerifier(fs)
	out := v.VerifyClaims(context.Background(), []string{"some claim about nothing findable"})
	if out.Status != StatusEmpty {
		t.Fatalf("status = %v, want StatusEmpty", out.Status)
	}
	if len(out.Verdicts) != 1 || out.Verdicts[0].Verdict != models.VerdictUnknown {
		t.Fatal("expected a single Unknown verdict")
	}
	if out.Verdicts[0].Evidence[0] != "No search results found." {
		t.Errorf("evidence = %q", out.Verdicts[0].Evidence[0])
	}
}

func TestWebVerifierRetriesOnce(t *testing.T) {
	fs := &fakeSearch{err: errors.New("network down")}
	v := NewWebVerifier(fs)
	out := v.VerifyClaims(context.Background(), []string{"claim one"})
	if fs.calls != 2 {
		t.Errorf("search called %d times, want 2 (one retry)", fs.calls)
	}
	if out.Verdicts[0].Verdict != models.VerdictUnknown {
		t.Errorf("verdict = %v, want Unknown on search failure", out.Verdicts[0].Verdict)
	}
}
