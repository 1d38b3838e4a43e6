package assistant

import (
	"context"
	"errors"
	"testing"

	"clarion-backend/models"
)

type fakeService struct {
	reply string
	err   error
}

func (f *fakeService) Configured() bool { return true }

func (f *fakeService) StartConversation(ctx context.Context, name, systemPrompt string) (Conversation, error) {
	return &fakeConversation{reply: f.reply, err: f.err}, nil
}

type fakeConversation struct {
	reply string
	err   error
}

func (f *fakeConversation) Send(ctx context.Context, message string) (string, error) {
	return f.reply, f.err
}

func TestSynthesize(t *testing.T) {
	svc := &fakeService{reply: `SUMMARY: Two claims were checked. One held up and one did not.
REASONS:
- The orbit claim matches astronomical consensus.
- The vitamin claim is contradicted by clinical trials.
CITATIONS:
- https://example.org/orbit
- https://example.org/vitamin-c`}

	syn, err := Synthesize(context.Background(), svc, []models.VerdictResult{
		{Claim: "claim one", Verdict: models.VerdictSupported},
	})
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if syn.Summary != "Two claims were checked. One held up and one did not." {
		t.Errorf("summary = %q", syn.Summary)
	}
	if len(syn.Reasons) != 2 {
		t.Fatalf("got %d reasons, want 2", len(syn.Reasons))
	}
	if syn.Reasons[0] != "The orbit claim matches astronomical consensus." {
		t.Errorf("reason[0] = %q", syn.Reasons[0])
	}
	if len(syn.Citations) != 2 || syn.Citations[1] != "https://example.org/vitamin-c" {
		t.Errorf("citations = %v", syn.Citations)
	}
}

func TestSynthesizeConversationError(t *testing.T) {
	svc := &fakeService{err: errors.New("quota exceeded")}
	if _, err := Synthesize(context.Background(), svc, nil); err == nil {
		t.Fatal("expected error to propagate")
	}
}

func TestSynthesizeMissingSummaryFails(t *testing.T) {
	svc := &fakeService{reply: "REASONS:\n- whatever\nCITATIONS:\n- https://example.org/a"}
	if _, err := Synthesize(context.Background(), svc, nil); !errors.Is(err, ErrNoSummary) {
		t.Fatalf("err = %v, want ErrNoSummary", err)
	}
}

func TestParseSynthesisCitations(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  []string
	}{
		{
			name:  "none bullet yields nothing",
			reply: "SUMMARY: fine\nCITATIONS:\n- none",
			want:  nil,
		},
		{
			name:  "none on the marker line yields nothing",
			reply: "SUMMARY: fine\nCITATIONS: NONE",
			want:  nil,
		},
		{
			name:  "url inline on the marker line",
			reply: "SUMMARY: fine\nCITATIONS: https://example.org/a",
			want:  []string{"https://example.org/a"},
		},
		{
			name:  "bullets with trailing punctuation and duplicates",
			reply: "SUMMARY: fine\nCITATIONS:\n- https://example.org/a.\n- see https://example.org/a\n* https://example.org/b;",
			want:  []string{"https://example.org/a", "https://example.org/b"},
		},
		{
			name:  "prose lines without urls are dropped",
			reply: "SUMMARY: fine\nCITATIONS:\n- the evidence above",
			want:  nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseSynthesis(tt.reply)
			if len(got.Citations) != len(tt.want) {
				t.Fatalf("citations = %v, want %v", got.Citations, tt.want)
			}
			for i, w := range tt.want {
				if got.Citations[i] != w {
					t.Errorf("citation[%d] = %q, want %q", i, got.Citations[i], w)
				}
			}
		})
	}
}

func TestParseSynthesisTolerance(t *testing.T) {
	tests := []struct {
		name        string
		reply       string
		wantSummary string
		wantReasons int
	}{
		{
			name:        "unmarked leading text folds into summary",
			reply:       "Everything checks out.\nREASONS:\n- solid sources",
			wantSummary: "Everything checks out.",
			wantReasons: 1,
		},
		{
			name:        "lowercase markers",
			reply:       "summary: Fine.\nreasons:\n- one\n- two",
			wantSummary: "Fine.",
			wantReasons: 2,
		},
		{
			name:        "reasons capped at five",
			reply:       "SUMMARY: s\nREASONS:\n- a\n- b\n- c\n- d\n- e\n- f\n- g",
			wantSummary: "s",
			wantReasons: 5,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseSynthesis(tt.reply)
			if got.Summary != tt.wantSummary {
				t.Errorf("summary = %q, want %q", got.Summary, tt.wantSummary)
			}
			if len(got.Reasons) != tt.wantReasons {
				t.Errorf("got %d reasons, want %d", len(got.Reasons), tt.wantReasons)
			}
		})
	}
}
