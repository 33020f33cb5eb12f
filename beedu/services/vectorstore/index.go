package vectorstore

import (
	"beedu/beedu/utils/logging"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// ErrIndexUnavailable wraps every failure to load or query the index so
// callers can treat retrieval as a single failure class.
var ErrIndexUnavailable = errors.New("vector index unavailable")

const DefaultTopK = 4

// Source fetches the serialized index artifact from wherever it lives
// (local file, object storage).
type Source func(ctx context.Context) ([]byte, error)

// FileSource reads the artifact from a local path.
func FileSource(path string) Source {
	return func(context.Context) ([]byte, error) {
		return os.ReadFile(path)
	}
}

// Embedder turns text into a vector in the same space the index was built in.
type Embedder interface {
	Embed(ctx context.Context, model, input string) ([]float32, error)
}

// Passage is a scored retrieval hit.
type Passage struct {
	ID     string  `json:"id"`
	Text   string  `json:"text"`
	Source string  `json:"source,omitempty"`
	Score  float64 `json:"score"`
}

type chunk struct {
	ID     string    `json:"id"`
	Text   string    `json:"text"`
	Source string    `json:"source,omitempty"`
	Vector []float32 `json:"vector"`
}

type artifact struct {
	Model     string  `json:"model"`
	Dimension int     `json:"dimension"`
	Chunks    []chunk `json:"chunks"`
}

// Store answers similarity queries against a prebuilt index artifact.
// Loading is lazy and retried on every query until it succeeds, so the
// process boots even when the artifact is not there yet.
type Store struct {
	source   Source
	embedder Embedder

	mu  sync.Mutex
	idx *artifact
}

func NewStore(source Source, embedder Embedder) *Store {
	return &Store{source: source, embedder: embedder}
}

func (s *Store) ensureLoaded(ctx context.Context) (*artifact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.idx != nil {
		return s.idx, nil
	}

	raw, err := s.source(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIndexUnavailable, err)
	}

	var idx artifact
	if err := json.Unmarshal(raw, &idx); err != nil {
		return nil, fmt.Errorf("%w: decode artifact: %v", ErrIndexUnavailable, err)
	}
	if idx.Model == "" {
		return nil, fmt.Errorf("%w: artifact missing embedding model", ErrIndexUnavailable)
	}

	s.idx = &idx
	logging.AppLogger.Info("vector index loaded",
		zap.String("model", idx.Model),
		zap.Int("dimension", idx.Dimension),
		zap.Int("chunks", len(idx.Chunks)))
	return s.idx, nil
}

// Search embeds the question and returns the k most similar passages,
// best first. An empty index yields empty results, not an error.
func (s *Store) Search(ctx context.Context, question string, k int) ([]Passage, error) {
	defer logging.LogDuration(ctx, "vectorstore_search")()

	idx, err := s.ensureLoaded(ctx)
	if err != nil {
		return nil, err
	}
	if k <= 0 {
		k = DefaultTopK
	}
	if len(idx.Chunks) == 0 {
		return []Passage{}, nil
	}

	qv, err := s.embedder.Embed(ctx, idx.Model, question)
	if err != nil {
		return nil, fmt.Errorf("%w: embed question: %v", ErrIndexUnavailable, err)
	}

	hits := make([]Passage, 0, len(idx.Chunks))
	for _, c := range idx.Chunks {
		if len(c.Vector) != len(qv) {
			continue
		}
		hits = append(hits, Passage{
			ID:     c.ID,
			Text:   c.Text,
			Source: c.Source,
			Score:  cosine(qv, c.Vector),
		})
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	if len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

func cosine(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
