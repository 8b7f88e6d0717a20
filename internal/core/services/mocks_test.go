package services

import (
	"context"

	"github.com/opencampus-labs/handbook-cli/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockEmbeddingService implements driven.EmbeddingService for testing.
// Embeddings are looked up per text so tests can steer similarity
// rankings; unknown texts fall back to the default vector.
type mockEmbeddingService struct {
	vectors   map[string][]float32
	embedding []float32
	embedErr  error
	dims      int

	calls int
}

func (m *mockEmbeddingService) Embed(_ context.Context, text string) ([]float32, error) {
	m.calls++
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	if vec, ok := m.vectors[text]; ok {
		return vec, nil
	}
	return m.embedding, nil
}

func (m *mockEmbeddingService) Dimensions() int {
	if m.dims > 0 {
		return m.dims
	}
	return len(m.embedding)
}

func (m *mockEmbeddingService) ModelName() string {
	return "mock-embed"
}

func (m *mockEmbeddingService) Ping(_ context.Context) error {
	return nil
}

func (m *mockEmbeddingService) Close() error {
	return nil
}

// mockLLMService implements driven.LLMService for testing. Responses
// are returned in order; after the list is exhausted the last entry
// repeats.
type mockLLMService struct {
	responses   []string
	generateErr error

	calls      int
	lastPrompt string
}

func (m *mockLLMService) Generate(_ context.Context, prompt string, _ driven.GenerateOptions) (string, error) {
	m.calls++
	m.lastPrompt = prompt
	if m.generateErr != nil {
		return "", m.generateErr
	}
	if len(m.responses) == 0 {
		return "", nil
	}
	i := m.calls - 1
	if i >= len(m.responses) {
		i = len(m.responses) - 1
	}
	return m.responses[i], nil
}

func (m *mockLLMService) ModelName() string {
	return "mock-llm"
}

func (m *mockLLMService) Ping(_ context.Context) error {
	return nil
}

func (m *mockLLMService) Close() error {
	return nil
}

var (
	_ driven.EmbeddingService = (*mockEmbeddingService)(nil)
	_ driven.LLMService       = (*mockLLMService)(nil)
)
