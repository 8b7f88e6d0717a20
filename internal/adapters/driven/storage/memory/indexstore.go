// Package memory provides in-memory driven-port implementations for testing.
package memory

import (
	"context"
	"sync"

	"github.com/opencampus-labs/handbook-cli/internal/core/domain"
	"github.com/opencampus-labs/handbook-cli/internal/core/ports/driven"
)

// Ensure IndexStore implements the interface.
var _ driven.IndexStore = (*IndexStore)(nil)

// IndexStore is an in-memory implementation of driven.IndexStore.
// Replace operations swap whole slices, so readers never observe a
// half-written index.
type IndexStore struct {
	mu        sync.RWMutex
	chunks    []domain.Chunk
	byID      map[string]domain.Chunk
	questions []domain.SyntheticQuestion
	matrix    [][]float32
	meta      *domain.IndexMeta
}

// NewIndexStore creates a new in-memory index store.
func NewIndexStore() *IndexStore {
	return &IndexStore{
		byID: make(map[string]domain.Chunk),
	}
}

// ReplaceChunks atomically replaces the chunk table.
func (s *IndexStore) ReplaceChunks(_ context.Context, chunks []domain.Chunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.chunks = append([]domain.Chunk(nil), chunks...)
	s.byID = make(map[string]domain.Chunk, len(chunks))
	for _, c := range chunks {
		s.byID[c.ID] = c
	}
	return nil
}

// ReplaceIndex atomically replaces questions, matrix and metadata.
func (s *IndexStore) ReplaceIndex(_ context.Context, questions []domain.SyntheticQuestion, matrix [][]float32, meta domain.IndexMeta) error {
	if len(questions) != len(matrix) {
		return domain.ErrIndexMismatch
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.questions = append([]domain.SyntheticQuestion(nil), questions...)
	s.matrix = make([][]float32, len(matrix))
	for i, row := range matrix {
		s.matrix[i] = append([]float32(nil), row...)
	}
	s.meta = &meta
	return nil
}

// Chunks returns all chunks in corpus reading order.
func (s *IndexStore) Chunks(_ context.Context) ([]domain.Chunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Chunk(nil), s.chunks...), nil
}

// ChunkByID returns a single chunk, or domain.ErrNotFound.
func (s *IndexStore) ChunkByID(_ context.Context, id string) (*domain.Chunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

// Questions returns the stored questions in matrix row order.
func (s *IndexStore) Questions(_ context.Context) ([]domain.SyntheticQuestion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.SyntheticQuestion(nil), s.questions...), nil
}

// Matrix returns the embedding matrix in question order.
func (s *IndexStore) Matrix(_ context.Context) ([][]float32, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([][]float32, len(s.matrix))
	for i, row := range s.matrix {
		out[i] = append([]float32(nil), row...)
	}
	return out, nil
}

// Meta returns the index metadata, or domain.ErrNotFound before the
// first build.
func (s *IndexStore) Meta(_ context.Context) (*domain.IndexMeta, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.meta == nil {
		return nil, domain.ErrNotFound
	}
	meta := *s.meta
	return &meta, nil
}

// Close releases resources.
func (s *IndexStore) Close() error {
	return nil
}
