package driven

import (
	"context"

	"github.com/opencampus-labs/handbook-cli/internal/core/domain"
)

// IndexStore persists the built index: the chunk table, the synthetic
// question table, the dense embedding matrix co-indexed with the
// question order, and the index metadata record.
//
// There is exactly one writer (the offline build) and many readers
// (query-time lookups); they never run concurrently. Replace operations
// are full rebuilds: either the whole new content lands or the previous
// content stays, so a failed build can never leave a partially-indexed
// corpus behind.
type IndexStore interface {
	// ReplaceChunks atomically replaces the chunk table.
	ReplaceChunks(ctx context.Context, chunks []domain.Chunk) error

	// ReplaceIndex atomically replaces the question table, the
	// embedding matrix and the metadata record. Row i of matrix is the
	// embedding of questions[i].
	ReplaceIndex(ctx context.Context, questions []domain.SyntheticQuestion, matrix [][]float32, meta domain.IndexMeta) error

	// Chunks returns all chunks in corpus reading order.
	Chunks(ctx context.Context) ([]domain.Chunk, error)

	// ChunkByID returns a single chunk, or domain.ErrNotFound.
	ChunkByID(ctx context.Context, id string) (*domain.Chunk, error)

	// Questions returns the stored questions in matrix row order.
	Questions(ctx context.Context) ([]domain.SyntheticQuestion, error)

	// Matrix returns the embedding matrix in question order.
	Matrix(ctx context.Context) ([][]float32, error)

	// Meta returns the index metadata, or domain.ErrNotFound when no
	// index has been built yet.
	Meta(ctx context.Context) (*domain.IndexMeta, error)

	// Close releases resources.
	Close() error
}
