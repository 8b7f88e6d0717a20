package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyIndex indicates the question index holds no rows.
	// Retrieval against an empty index yields similarity 0 and no
	// context chunks; building an answer requires a populated index.
	ErrEmptyIndex = errors.New("empty index")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured. Neither indexing nor retrieval can run without it.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrLLMUnavailable indicates the generation service is not
	// configured. Question synthesis and answering are disabled.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrIndexMismatch indicates the stored index disagrees with how
	// it is being served, either internally (matrix rows versus
	// question count) or with the live embedding model. The index is
	// rebuilt from scratch rather than served.
	ErrIndexMismatch = errors.New("index mismatch")
)
