package services

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/time/rate"

	"github.com/opencampus-labs/handbook-cli/internal/core/domain"
	"github.com/opencampus-labs/handbook-cli/internal/core/ports/driven"
	"github.com/opencampus-labs/handbook-cli/internal/core/ports/driving"
	"github.com/opencampus-labs/handbook-cli/internal/logger"
)

// Ensure IndexService implements the interface.
var _ driving.IndexService = (*IndexService)(nil)

// normEpsilon guards the L2 normalisation against zero vectors.
const normEpsilon = 1e-8

// IndexerConfig configures the index build.
type IndexerConfig struct {
	// Normalize enables L2 normalisation of every matrix row.
	Normalize bool

	// BackendRPS caps embedding/generation requests per second during
	// the batch build so a local model server is not saturated.
	// Zero means unlimited.
	BackendRPS float64
}

// IndexService builds the doc2query question index: it asks the
// synthesizer for questions per stored chunk, embeds every surviving
// question, and atomically replaces the stored index.
//
// The build is all-or-nothing. Any backend failure aborts the run
// before anything is persisted, so a partially-indexed corpus is never
// served.
type IndexService struct {
	store    driven.IndexStore
	synth    *Synthesizer
	embedder driven.EmbeddingService
	cfg      IndexerConfig
	limiter  *rate.Limiter
}

// NewIndexService creates a new index build service.
func NewIndexService(store driven.IndexStore, synth *Synthesizer, embedder driven.EmbeddingService, cfg IndexerConfig) *IndexService {
	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.BackendRPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.BackendRPS), 1)
	}

	return &IndexService{
		store:    store,
		synth:    synth,
		embedder: embedder,
		cfg:      cfg,
		limiter:  limiter,
	}
}

// BuildIndex generates, filters and embeds synthetic questions for
// every stored chunk, then replaces the stored index in one step.
func (s *IndexService) BuildIndex(ctx context.Context) (*driving.IndexStats, error) {
	if s.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}

	logger.Section("Index Build")

	chunks, err := s.store.Chunks(ctx)
	if err != nil {
		return nil, fmt.Errorf("load chunks: %w", err)
	}
	logger.Debug("Loaded %d chunks", len(chunks))

	stats := &driving.IndexStats{}
	var questions []domain.SyntheticQuestion

	for _, chunk := range chunks {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}

		qs, err := s.synth.QuestionsFor(ctx, chunk)
		if err != nil {
			return nil, err
		}
		if len(qs) == 0 {
			logger.Warn("No supported questions for %s (%s), chunk contributes no retrieval surface",
				chunk.ID, chunk.SectionTitle)
			stats.ChunksSkipped++
			continue
		}

		stats.Chunks++
		questions = append(questions, qs...)
	}

	logger.Info("Generated %d questions across %d chunks (%d skipped)",
		len(questions), stats.Chunks, stats.ChunksSkipped)

	matrix := make([][]float32, 0, len(questions))
	for i, q := range questions {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}

		vec, err := s.embedder.Embed(ctx, q.Text)
		if err != nil {
			return nil, fmt.Errorf("embed question %d/%d (%s): %w", i+1, len(questions), q.ID, err)
		}
		if s.cfg.Normalize {
			vec = l2Normalize(vec)
		}
		matrix = append(matrix, vec)
	}

	dims := 0
	if len(matrix) > 0 {
		dims = len(matrix[0])
	}

	meta := domain.IndexMeta{
		EmbeddingModel: s.embedder.ModelName(),
		Dimensions:     dims,
		Normalized:     s.cfg.Normalize,
	}

	if err := s.store.ReplaceIndex(ctx, questions, matrix, meta); err != nil {
		return nil, fmt.Errorf("replace index: %w", err)
	}

	stats.Questions = len(questions)
	stats.Dimensions = dims
	logger.Info("Index built: %d questions, %d dimensions", stats.Questions, stats.Dimensions)

	return stats, nil
}

// l2Normalize scales the vector to unit length. The epsilon keeps a
// zero vector from dividing by zero.
func l2Normalize(vec []float32) []float32 {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	norm := math.Sqrt(sum) + normEpsilon

	out := make([]float32, len(vec))
	for i, v := range vec {
		out[i] = float32(float64(v) / norm)
	}
	return out
}
