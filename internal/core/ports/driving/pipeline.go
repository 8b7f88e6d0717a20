package driving

import (
	"context"

	"github.com/opencampus-labs/handbook-cli/internal/core/domain"
)

// IngestService turns raw handbook documents into the chunk table.
type IngestService interface {
	// IngestDir chunks every .txt file under dir and replaces the
	// stored chunk table. It returns the chunks it wrote.
	IngestDir(ctx context.Context, dir string) ([]domain.Chunk, error)
}

// IndexService builds the doc2query question index over the stored chunks.
type IndexService interface {
	// BuildIndex generates synthetic questions for every stored chunk,
	// embeds them, and replaces the stored index. The build is
	// all-or-nothing: any embedding failure leaves the previous index
	// untouched.
	BuildIndex(ctx context.Context) (*IndexStats, error)
}

// IndexStats summarises an index build.
type IndexStats struct {
	// Chunks is the number of chunks questions were generated for.
	Chunks int

	// ChunksSkipped is the number of chunks with zero surviving questions.
	ChunksSkipped int

	// Questions is the number of questions indexed.
	Questions int

	// Dimensions is the embedding vector size.
	Dimensions int
}

// AskService answers a live question against the built index.
type AskService interface {
	// Ask retrieves context for the question and synthesises an answer.
	// The returned Answer carries the fixed insufficient-context text
	// when the confidence gate stays closed.
	Ask(ctx context.Context, question string) (*domain.Answer, error)
}

// EvalService replays a gold question set through retrieval and
// answering and scores top-1 retrieval accuracy.
type EvalService interface {
	// Evaluate runs every gold case and returns the per-case rows and
	// the run summary.
	Evaluate(ctx context.Context, cases []domain.GoldCase) ([]domain.EvalCaseResult, *domain.EvalSummary, error)
}
