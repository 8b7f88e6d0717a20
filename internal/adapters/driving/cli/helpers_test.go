package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/opencampus-labs/handbook-cli/internal/adapters/driven/storage/memory"
	"github.com/opencampus-labs/handbook-cli/internal/core/domain"
	"github.com/opencampus-labs/handbook-cli/internal/core/ports/driven"
	"github.com/opencampus-labs/handbook-cli/internal/core/services"
)

// --- Mock backends ---

type stubEmbedder struct {
	vectors map[string][]float32
	vector  []float32
}

func (s *stubEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if vec, ok := s.vectors[text]; ok {
		return vec, nil
	}
	return s.vector, nil
}

func (s *stubEmbedder) Dimensions() int { return len(s.vector) }

func (s *stubEmbedder) ModelName() string { return "stub-embed" }

func (s *stubEmbedder) Ping(_ context.Context) error { return nil }

func (s *stubEmbedder) Close() error { return nil }

type stubLLM struct {
	response string
}

func (s *stubLLM) Generate(_ context.Context, _ string, _ driven.GenerateOptions) (string, error) {
	return s.response, nil
}

func (s *stubLLM) ModelName() string { return "stub-llm" }

func (s *stubLLM) Ping(_ context.Context) error { return nil }

func (s *stubLLM) Close() error { return nil }

// --- Test helpers ---

// setupTestServices wires the command tree to real services over an
// in-memory store seeded with a tiny handbook index. The returned
// cleanup detaches the services again.
func setupTestServices(t *testing.T) func() {
	t.Helper()
	return setupTestServicesWithResponse(t, "Quiet hours run from 10pm until 8am.")
}

// setupTestServicesWithResponse is setupTestServices with a custom
// canned generation response.
func setupTestServicesWithResponse(t *testing.T, response string) func() {
	t.Helper()
	ctx := context.Background()

	store := memory.NewIndexStore()
	require.NoError(t, store.ReplaceChunks(ctx, []domain.Chunk{
		{ID: "chunk_0", SectionTitle: "Quiet Hours", SourceFile: "housing.txt",
			URL: "https://example.edu/handbook/housing", Text: "Quiet hours run from 10pm until 8am."},
		{ID: "chunk_1", SectionTitle: "Guests", SourceFile: "housing.txt",
			Text: "Overnight guests must register at the front desk."},
	}))
	require.NoError(t, store.ReplaceIndex(ctx,
		[]domain.SyntheticQuestion{
			{ID: "chunk_0_q0", ChunkID: "chunk_0", Text: "When do quiet hours start?"},
			{ID: "chunk_1_q0", ChunkID: "chunk_1", Text: "How do guests register?"},
		},
		[][]float32{{1, 0}, {0, 1}},
		domain.IndexMeta{EmbeddingModel: "stub-embed", Dimensions: 2},
	))

	// The default query vector sits at most 0.6 cosine from any index
	// row, keeping unknown questions under the confidence gate.
	embedder := &stubEmbedder{
		vector: []float32{0.6, -0.8},
		vectors: map[string][]float32{
			"When do quiet hours start?": {1, 0},
			"How do guests register?":    {0, 1},
		},
	}
	llm := &stubLLM{response: response}

	retriever := services.NewRetriever(store, embedder, services.RetrieverConfig{})
	answerer := services.NewAnswerer(llm, services.AnswerConfig{MinSimilarity: 0.68})

	SetServices(Services{
		Ingest: services.NewIngestService(store, services.IngestConfig{}),
		Index:  services.NewIndexService(store, services.NewSynthesizer(llm, 3), embedder, services.IndexerConfig{}),
		Ask:    services.NewAskService(retriever, answerer),
		Eval:   services.NewEvalService(retriever, answerer),
	})

	return func() {
		SetServices(Services{})
	}
}
