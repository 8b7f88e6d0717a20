// Package services implements the driving port interfaces.
// Services contain the core pipeline logic - chunking, doc2query
// synthesis, index building, retrieval, guarded answering and offline
// evaluation - and orchestrate calls to driven ports (adapters).
//
// Services are pure Go with no CGO dependencies.
package services
