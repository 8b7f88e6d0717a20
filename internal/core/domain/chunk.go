package domain

import "fmt"

// ChunkIDPrefix is the prefix of every chunk identifier.
const ChunkIDPrefix = "chunk_"

// Chunk represents a bounded-size contiguous excerpt of a handbook
// document. It is the unit of retrieval: synthetic questions point at
// chunks, and answers quote exactly one chunk's text.
//
// Chunks are created once during ingest and are immutable afterwards.
type Chunk struct {
	// ID is the unique identifier, "chunk_<n>" with a sequential n
	// assigned in document reading order across the whole corpus.
	ID string

	// SectionTitle is the human-readable title of the section the
	// chunk was cut from, or a title derived from the source filename
	// for single-section documents.
	SectionTitle string

	// SourceFile is the filename of the document the chunk came from.
	SourceFile string

	// URL is an optional external reference for citations.
	URL string

	// Text is the chunk content. It never exceeds the configured
	// character budget unless the chunk holds a single oversized
	// paragraph, which is kept whole.
	Text string
}

// ChunkID formats a sequential chunk identifier.
func ChunkID(n int) string {
	return fmt.Sprintf("%s%d", ChunkIDPrefix, n)
}

// SyntheticQuestion is a doc2query question generated from a chunk and
// retained by the support filter. Questions are the rows of the
// embedding matrix; retrieval matches live queries against them and
// follows ChunkID back to the owning chunk.
type SyntheticQuestion struct {
	// ID is "<chunkID>_q<i>" where i is the question's position among
	// the chunk's surviving questions.
	ID string

	// ChunkID identifies the owning chunk (many questions to one chunk).
	ChunkID string

	// SectionTitle mirrors the owning chunk's section title.
	SectionTitle string

	// Text is the question itself.
	Text string
}

// QuestionID formats a synthetic question identifier from its owning
// chunk and its position among the chunk's surviving questions.
func QuestionID(chunkID string, i int) string {
	return fmt.Sprintf("%s_q%d", chunkID, i)
}

// IndexMeta records how the embedding matrix was built. It is persisted
// with the index and checked at query time so a live question is never
// compared against rows from a different embedding model.
type IndexMeta struct {
	// EmbeddingModel is the identifier of the embedding model.
	EmbeddingModel string

	// Dimensions is the vector size produced by the model.
	Dimensions int

	// Normalized reports whether every matrix row was L2-normalised.
	Normalized bool
}

// RetrievalResult is the transient outcome of a similarity search for
// one live query.
type RetrievalResult struct {
	// MaxSimilarity is the highest cosine similarity observed among the
	// top-k synthetic question candidates, even when several candidates
	// map to the same chunk.
	MaxSimilarity float64

	// Chunks is the ordered list of distinct context chunks, best match
	// first, at most the configured maximum.
	Chunks []Chunk
}

// TopChunkID returns the identifier of the best-matching chunk, or the
// empty string when retrieval found no context.
func (r RetrievalResult) TopChunkID() string {
	if len(r.Chunks) == 0 {
		return ""
	}
	return r.Chunks[0].ID
}
