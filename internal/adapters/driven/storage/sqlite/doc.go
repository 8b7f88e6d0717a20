// Package sqlite provides a SQLite-based implementation of the
// driven.IndexStore interface.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation
// that requires no CGO, enabling easy cross-compilation. The whole
// persisted index lives in a single database file:
//
//   - chunks: the chunk table, ordered by corpus reading position
//   - questions: the synthetic question table with one embedding BLOB
//     per row, ordered by matrix row position
//   - index_meta: the embedding model, dimensionality and
//     normalisation flag of the current build
//
// # Schema
//
// The database schema is managed through versioned migrations stored in
// the migrations/ directory.
//
// # Data Location
//
// By default, the database is stored at ~/.handbook/data/index.db
//
// # Rebuild Semantics
//
// ReplaceChunks and ReplaceIndex each run in one transaction. A failed
// build rolls back and the previously served index stays untouched.
package sqlite
