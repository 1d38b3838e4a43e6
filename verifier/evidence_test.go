package verifier

import (
	"testing"

	"clarion-backend/models"
)

func TestVerdictFromSignals(t *testing.T) {
	tests := []struct {
		name          string
		sim           float64
		contradiction bool
		entityMatch   bool
		want          models.Verdict
	}{
		{"strong contradiction", 0.5, true, true, models.VerdictRefuted},
		{"strong contradiction without entities", 0.5, true, false, models.VerdictRefuted},
		{"moderate contradiction with entities", 0.25, true, true, models.VerdictRefuted},
		{"moderate contradiction without entities", 0.25, true, false, models.VerdictMisclassification},
		{"strong support", 0.5, false, true, models.VerdictSupported},
		{"moderate support", 0.25, false, true, models.VerdictSupported},
		{"strong without entities", 0.5, false, false, models.VerdictMisclassification},
		{"weak everything", 0.1, false, false, models.VerdictUnknown},
		{"weak with entities", 0.1, false, true, models.VerdictUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := verdictFromSignals(tt.sim, tt.contradiction, tt.entityMatch)
			if got != tt.want {
				t.Errorf("verdictFromSignals(%v, %v, %v) = %v, want %v",
					tt.sim, tt.contradiction, tt.entityMatch, got, tt.want)
			}
		})
	}
}

func TestKeywordSimilarity(t *testing.T) {
	if sim := keywordSimilarity("the cat sat", "the cat sat on the mat"); sim != 1.0 {
		t.Errorf("full overlap = %v, want 1.0", sim)
	}
	if sim := keywordSimilarity("cats chase dogs", "fish swim upstream"); sim != 0.0 {
		t.Errorf("no overlap = %v, want 0.0", sim)
	}
	if sim := keywordSimilarity("", "anything"); sim != 0.0 {
		t.Errorf("empty claim = %v, want 0.0", sim)
	}
}

func TestHasContradiction(t *testing.T) {
	if !hasContradiction("This story has been Debunked by reporters.") {
		t.Error("expected contradiction on 'debunked'")
	}
	if hasContradiction("A calm description of events.") {
		t.Error("unexpected contradiction")
	}
}

func TestHasMatchingEntities(t *testing.T) {
	tests := []struct {
		name  string
		claim string
		text  string
		want  bool
	}{
		{"shared number", "inflation hit 7 percent", "prices rose 7 points", true},
		{"shared capitalized token", "Einstein proposed relativity", "the papers of Einstein", true},
		{"no shared entities", "Einstein proposed relativity in 1905", "a cat sat quietly", false},
		{"different numbers", "growth of 3 percent", "growth of 5 percent", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := hasMatchingEntities(tt.claim, tt.text); got != tt.want {
				t.Errorf("hasMatchingEntities(%q, %q) = %v, want %v", tt.claim, tt.text, got, tt.want)
			}
		})
	}
}
