// Package driven provides interfaces for infrastructure adapters (secondary/outbound ports).
package driven

import "context"

// EmbeddingService generates vector embeddings from text.
// The same service must be used for indexing and for live queries so
// that cosine similarities are comparable.
//
// Implementations may include:
//   - Ollama (mxbai-embed-large, nomic-embed-text)
//   - Local models via inference servers
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	// A backend or transport failure is returned as an error; an empty
	// vector is never silently substituted.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Dimensions returns the embedding vector size (e.g., 768, 1024).
	// This is determined by the model and recorded in the index metadata.
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight test request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
