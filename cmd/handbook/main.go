// Command handbook is the student handbook assistant CLI.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/opencampus-labs/handbook-cli/internal/adapters/driven/config/file"
	ollamaembed "github.com/opencampus-labs/handbook-cli/internal/adapters/driven/embedding/ollama"
	ollamallm "github.com/opencampus-labs/handbook-cli/internal/adapters/driven/llm/ollama"
	"github.com/opencampus-labs/handbook-cli/internal/adapters/driven/storage/sqlite"
	"github.com/opencampus-labs/handbook-cli/internal/adapters/driving/cli"
	"github.com/opencampus-labs/handbook-cli/internal/core/services"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// HANDBOOK_CONFIG overrides the default ~/.handbook/config.toml.
	cfg, err := file.Load(os.Getenv("HANDBOOK_CONFIG"))
	if err != nil {
		return err
	}

	store, err := sqlite.NewStore("")
	if err != nil {
		return fmt.Errorf("opening index store: %w", err)
	}
	defer store.Close()

	embedder := ollamaembed.NewEmbeddingService(ollamaembed.Config{
		BaseURL: cfg.Backend.BaseURL,
		Model:   cfg.Backend.EmbedModel,
		Timeout: time.Duration(cfg.Backend.EmbedTimeoutSecs) * time.Second,
	})
	defer embedder.Close()

	llm := ollamallm.NewLLMService(ollamallm.LLMConfig{
		BaseURL: cfg.Backend.BaseURL,
		Model:   cfg.Backend.GenModel,
		Timeout: time.Duration(cfg.Backend.GenTimeoutSecs) * time.Second,
	})
	defer llm.Close()

	retriever := services.NewRetriever(store, embedder, services.RetrieverConfig{
		TopKQuestions: cfg.Retrieval.TopKQuestions,
		MaxChunks:     cfg.Retrieval.MaxChunks,
	})
	answerer := services.NewAnswerer(llm, services.AnswerConfig{
		MinSimilarity: cfg.Retrieval.MinSimilarity,
	})

	cli.SetServices(cli.Services{
		Ingest: services.NewIngestService(store, services.IngestConfig{
			MaxChars:          cfg.Ingest.MaxChars,
			MultiSectionFiles: cfg.Ingest.MultiSectionFiles,
			URLs:              cfg.Ingest.URLs,
		}),
		Index: services.NewIndexService(store,
			services.NewSynthesizer(llm, cfg.Index.QuestionsPerChunk),
			embedder,
			services.IndexerConfig{
				Normalize:  cfg.Index.Normalize,
				BackendRPS: cfg.Index.BackendRPS,
			}),
		Ask:     services.NewAskService(retriever, answerer),
		Eval:    services.NewEvalService(retriever, answerer),
		DataDir: cfg.Ingest.DataDir,
	})

	return cli.Execute()
}
