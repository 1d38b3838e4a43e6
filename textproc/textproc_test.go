package textproc

import (
	"strings"
	"testing"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"whitespace only", "   \n\t ", ""},
		{"collapses whitespace", "a  b\n\nc\td", "a b c d"},
		{"trims", "  hello  ", "hello"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanText(tt.in); got != tt.want {
				t.Errorf("CleanText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"single", "The Earth orbits the Sun.", []string{"The Earth orbits the Sun."}},
		{
			"multiple terminators",
			"First one. Second one! Third one? Fourth",
			[]string{"First one.", "Second one!", "Third one?", "Fourth"},
		},
		{
			"normalizes whitespace first",
			"One.\n\nTwo.",
			[]string{"One.", "Two."},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitSentences(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("SplitSentences(%q) = %v, want %v", tt.in, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("sentence %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestExtractURLs(t *testing.T) {
	text := "Visit https://example.com/page now or www.other.org, ok?"
	urls := ExtractURLs(text)
	if len(urls) != 2 {
		t.Fatalf("expected 2 URLs, got %v", urls)
	}
	if urls[0] != "https://example.com/page" {
		t.Errorf("first URL = %q", urls[0])
	}
	if !strings.HasPrefix(urls[1], "www.other.org") {
		t.Errorf("second URL = %q", urls[1])
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 10); got != "short" {
		t.Errorf("Truncate(short) = %q", got)
	}
	got := Truncate(strings.Repeat("a", 20), 10)
	if len(got) != 10 || !strings.HasSuffix(got, "...") {
		t.Errorf("Truncate long = %q", got)
	}
}

func TestChunkText(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 20; i++ {
		b.WriteString("This is a reasonably sized sentence used for chunking tests. ")
	}
	chunks := ChunkText(b.String(), 300, 50)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		// Sentence-boundary chunking can overshoot by one sentence at most.
		if len(c) > 300+80 {
			t.Errorf("chunk %d too long: %d chars", i, len(c))
		}
	}
	// Consecutive chunks share overlap sentences.
	if !strings.Contains(chunks[1], "chunking tests.") {
		t.Errorf("chunk 1 missing overlap context: %q", chunks[1])
	}

	if got := ChunkText("", 300, 50); got != nil {
		t.Errorf("empty input should yield no chunks, got %v", got)
	}
}
