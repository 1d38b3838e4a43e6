package verifier

import (
	"context"
	"log"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"clarion-backend/models"
	"clarion-backend/textproc"
)

const (
	retrievalTopK         = 5
	retrievalChunkSize    = 300
	retrievalChunkOverlap = 50
)

// ChunkSearcher is the slice of the corpus repository the retrieval verifier
// needs when a vector store is configured.
type ChunkSearcher interface {
	SearchSimilar(ctx context.Context, embedding []float64, limit int) ([]models.CorpusChunk, error)
}

// QueryEmbedder produces a query embedding for vector search.
type QueryEmbedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float64, error)
}

// RetrievalVerifier checks claims against a local knowledge base. By default
// it builds an in-memory TF-IDF index over the corpus directory; when a chunk
// repository and embedder are supplied it queries the vector store instead.
type RetrievalVerifier struct {
	corpusDir string
	chunks    ChunkSearcher
	embedder  QueryEmbedder

	indexOnce sync.Once
	index     *tfidfIndex
}

// RetrievalOption configures a RetrievalVerifier.
type RetrievalOption func(*RetrievalVerifier)

// RetrievalWithVectorStore routes retrieval through a pgvector-backed corpus
// instead of the in-memory index.
func RetrievalWithVectorStore(chunks ChunkSearcher, embedder QueryEmbedder) RetrievalOption {
	return func(v *RetrievalVerifier) {
		v.chunks = chunks
		v.embedder = embedder
	}
}

func NewRetrievalVerifier(corpusDir string, opts ...RetrievalOption) *RetrievalVerifier {
	v := &RetrievalVerifier{corpusDir: corpusDir}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

func (v *RetrievalVerifier) Name() string { return ModeOffline }

func (v *RetrievalVerifier) Polarity() models.Polarity { return models.PolarityFactual }

// Available is always true: retrieval is the cascade's floor and degrades to
// Unknown verdicts on an empty corpus rather than being skipped.
func (v *RetrievalVerifier) Available(ctx context.Context) bool { return v != nil }

func (v *RetrievalVerifier) VerifyClaims(ctx context.Context, claims []string) Outcome {
	verdicts := make([]models.VerdictResult, 0, len(claims))
	for _, claim := range claims {
		passages := v.retrieve(ctx, claim)
		verdicts = append(verdicts, judgePassages(claim, passages))
	}
	return Outcome{Verdicts: verdicts, Status: StatusOK}
}

type passage struct {
	text       string
	source     string
	similarity float64
}

func (v *RetrievalVerifier) retrieve(ctx context.Context, claim string) []passage {
	if v.chunks != nil && v.embedder != nil {
		passages, err := v.retrieveVector(ctx, claim)
		if err == nil {
			return passages
		}
		log.Printf("vector retrieval failed, using local index: %v", err)
	}
	v.indexOnce.Do(func() {
		v.index = buildIndex(v.corpusDir)
	})
	return v.index.search(claim, retrievalTopK)
}

func (v *RetrievalVerifier) retrieveVector(ctx context.Context, claim string) ([]passage, error) {
	embedding, err := v.embedder.EmbedQuery(ctx, claim)
	if err != nil {
		return nil, err
	}
	chunks, err := v.chunks.SearchSimilar(ctx, embedding, retrievalTopK)
	if err != nil {
		return nil, err
	}
	passages := make([]passage, 0, len(chunks))
	for _, c := range chunks {
		passages = append(passages, passage{
			text:       c.Text,
			source:     c.SourceDocument,
			similarity: 1.0 - c.Distance,
		})
	}
	return passages, nil
}

// judgePassages applies the shared tiered verdict rules to the retrieved
// passages. An empty corpus yields Unknown, never an error.
func judgePassages(claim string, passages []passage) models.VerdictResult {
	if len(passages) == 0 {
		return unknownResult(claim)
	}

	var (
		bestSim       float64
		contradiction bool
		entityMatch   bool
		evidence      []string
	)
	for _, p := range passages {
		if p.similarity > bestSim {
			bestSim = p.similarity
		}
		if hasContradiction(p.text) {
			contradiction = true
		}
		if hasMatchingEntities(claim, p.text) {
			entityMatch = true
		}
		if len(evidence) < 3 && p.similarity > moderateSimilarity {
			evidence = append(evidence, p.text)
		}
	}

	verdict := verdictFromSignals(bestSim, contradiction, entityMatch)
	return models.VerdictResult{
		Claim:      claim,
		Verdict:    verdict,
		Evidence:   evidence,
		Similarity: bestSim,
	}
}

// tfidfIndex is a small in-memory index over corpus chunks. Cosine similarity
// over TF-IDF vectors is close enough to the embedding path for a corpus of a
// few hundred chunks and needs no external service.
type tfidfIndex struct {
	docs    []passage
	vectors []map[string]float64
	idf     map[string]float64
}

func buildIndex(corpusDir string) *tfidfIndex {
	idx := &tfidfIndex{idf: make(map[string]float64)}
	if corpusDir == "" {
		return idx
	}

	entries, err := os.ReadDir(corpusDir)
	if err != nil {
		log.Printf("corpus directory unreadable, retrieval runs empty: %v", err)
		return idx
	}

	df := make(map[string]int)
	var termCounts []map[string]int
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".md" && ext != ".txt" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(corpusDir, name))
		if err != nil {
			log.Printf("skipping corpus file %s: %v", name, err)
			continue
		}
		for _, chunk := range textproc.ChunkText(string(data), retrievalChunkSize, retrievalChunkOverlap) {
			counts := termCount(chunk)
			if len(counts) == 0 {
				continue
			}
			idx.docs = append(idx.docs, passage{text: chunk, source: name})
			termCounts = append(termCounts, counts)
			for term := range counts {
				df[term]++
			}
		}
	}

	n := float64(len(idx.docs))
	for term, count := range df {
		idx.idf[term] = math.Log((n+1.0)/(float64(count)+1.0)) + 1.0
	}
	for _, counts := range termCounts {
		idx.vectors = append(idx.vectors, idx.vectorize(counts))
	}
	return idx
}

func termCount(text string) map[string]int {
	counts := make(map[string]int)
	for _, w := range wordRE.FindAllString(strings.ToLower(text), -1) {
		counts[w]++
	}
	return counts
}

func (idx *tfidfIndex) vectorize(counts map[string]int) map[string]float64 {
	vec := make(map[string]float64, len(counts))
	var norm float64
	for term, count := range counts {
		idf, ok := idx.idf[term]
		if !ok {
			idf = 1.0
		}
		w := float64(count) * idf
		vec[term] = w
		norm += w * w
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for term := range vec {
			vec[term] /= norm
		}
	}
	return vec
}

func (idx *tfidfIndex) search(query string, topK int) []passage {
	if len(idx.docs) == 0 {
		return nil
	}
	qvec := idx.vectorize(termCount(query))

	type scored struct {
		i   int
		sim float64
	}
	hits := make([]scored, 0, len(idx.docs))
	for i, dvec := range idx.vectors {
		var dot float64
		for term, qw := range qvec {
			dot += qw * dvec[term]
		}
		if dot > 0 {
			hits = append(hits, scored{i: i, sim: dot})
		}
	}
	sort.Slice(hits, func(a, b int) bool { return hits[a].sim > hits[b].sim })
	if len(hits) > topK {
		hits = hits[:topK]
	}

	out := make([]passage, 0, len(hits))
	for _, h := range hits {
		p := idx.docs[h.i]
		p.similarity = h.sim
		out = append(out, p)
	}
	return out
}
