// Package domain defines the core business entities for the handbook
// answering pipeline.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Chunk: A bounded excerpt of handbook text, the unit of retrieval
//   - SyntheticQuestion: A doc2query question generated for a chunk
//   - IndexMeta: Embedding model metadata recorded with the index
//   - RetrievalResult: The outcome of a similarity search
//   - GoldCase / EvalCaseResult: The offline evaluation records
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
