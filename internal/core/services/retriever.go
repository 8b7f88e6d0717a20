package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/opencampus-labs/handbook-cli/internal/core/domain"
	"github.com/opencampus-labs/handbook-cli/internal/core/ports/driven"
	"github.com/opencampus-labs/handbook-cli/internal/logger"
)

// cosineEpsilon keeps the cosine denominator away from zero for
// zero vectors.
const cosineEpsilon = 1e-8

// Default retrieval configuration, matching the reference deployment.
const (
	DefaultTopKQuestions = 5
	DefaultMaxChunks     = 1
	DefaultMinSimilarity = 0.68
)

// RetrieverConfig configures similarity search.
type RetrieverConfig struct {
	// TopKQuestions is how many synthetic question rows to consider.
	TopKQuestions int

	// MaxChunks is how many distinct context chunks to collect.
	MaxChunks int
}

// Retriever finds the chunks best matching a live question by cosine
// similarity between the question's embedding and every synthetic
// question row. The index structures are read-only at query time, so
// concurrent queries are safe.
type Retriever struct {
	store    driven.IndexStore
	embedder driven.EmbeddingService
	cfg      RetrieverConfig
}

// NewRetriever creates a new retriever. Zero config values fall back
// to the defaults.
func NewRetriever(store driven.IndexStore, embedder driven.EmbeddingService, cfg RetrieverConfig) *Retriever {
	if cfg.TopKQuestions <= 0 {
		cfg.TopKQuestions = DefaultTopKQuestions
	}
	if cfg.MaxChunks <= 0 {
		cfg.MaxChunks = DefaultMaxChunks
	}
	return &Retriever{store: store, embedder: embedder, cfg: cfg}
}

// Retrieve embeds the question and returns the maximum similarity over
// the top-k candidate rows plus the ordered distinct context chunks.
// An empty index yields similarity 0 and no chunks. An embedding
// failure propagates; no stale result is substituted.
func (r *Retriever) Retrieve(ctx context.Context, question string) (*domain.RetrievalResult, error) {
	if r.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}

	logger.Section("Retrieval")
	logger.Debug("Query: %q", question)

	matrix, err := r.store.Matrix(ctx)
	if err != nil {
		return nil, fmt.Errorf("load matrix: %w", err)
	}
	if len(matrix) == 0 {
		logger.Debug("Empty index")
		return &domain.RetrievalResult{}, nil
	}

	questions, err := r.store.Questions(ctx)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	if len(questions) != len(matrix) {
		return nil, fmt.Errorf("%w: %d questions, %d rows", domain.ErrIndexMismatch, len(questions), len(matrix))
	}

	// The stored rows and the live query must come from the same
	// embedding model, or the similarities are meaningless.
	meta, err := r.store.Meta(ctx)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("load index metadata: %w", err)
	}
	if meta != nil && meta.EmbeddingModel != "" && meta.EmbeddingModel != r.embedder.ModelName() {
		return nil, fmt.Errorf("%w: index built with %s, querying with %s",
			domain.ErrIndexMismatch, meta.EmbeddingModel, r.embedder.ModelName())
	}

	vec, err := r.embedder.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	sims := make([]float64, len(matrix))
	for i, row := range matrix {
		sims[i] = cosine(vec, row)
	}

	top := topKIndices(sims, r.cfg.TopKQuestions)
	maxSim := sims[top[0]]
	logger.Debug("Top candidate similarity: %.4f", maxSim)

	result := &domain.RetrievalResult{MaxSimilarity: maxSim}
	seen := make(map[string]bool)

	for _, idx := range top {
		chunkID := questions[idx].ChunkID
		if seen[chunkID] {
			continue
		}
		seen[chunkID] = true

		chunk, err := r.store.ChunkByID(ctx, chunkID)
		if err != nil {
			// A dangling question reference is skipped; it does not
			// disturb the reported maximum similarity.
			logger.Warn("Question %s references missing chunk %s", questions[idx].ID, chunkID)
			continue
		}

		result.Chunks = append(result.Chunks, *chunk)
		if len(result.Chunks) >= r.cfg.MaxChunks {
			break
		}
	}

	logger.Debug("Context chunks: %d", len(result.Chunks))
	return result, nil
}

// cosine computes cosine similarity between two vectors, with an
// epsilon on each norm so zero vectors divide safely.
func cosine(v, w []float32) float64 {
	n := len(v)
	if len(w) < n {
		n = len(w)
	}

	var dot, vv, ww float64
	for i := 0; i < n; i++ {
		dot += float64(v[i]) * float64(w[i])
		vv += float64(v[i]) * float64(v[i])
		ww += float64(w[i]) * float64(w[i])
	}

	return dot / ((math.Sqrt(vv) + cosineEpsilon) * (math.Sqrt(ww) + cosineEpsilon))
}

// topKIndices returns the indices of the k highest similarities in
// descending order. The sort is stable on the similarity key, so ties
// keep their original row order and repeated queries select the same
// candidates.
func topKIndices(sims []float64, k int) []int {
	idx := make([]int, len(sims))
	for i := range idx {
		idx[i] = i
	}

	sort.SliceStable(idx, func(a, b int) bool {
		return sims[idx[a]] > sims[idx[b]]
	})

	if k > len(idx) {
		k = len(idx)
	}
	return idx[:k]
}
