// Package file provides the TOML configuration loader.
//
// The reference deployment drove everything from module-level
// constants; here every knob is an explicit field with a documented
// default, loaded once and passed into each component's constructor.
package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// DefaultConfigDir is the directory holding config.toml when no
// explicit path is given, relative to the user's home directory.
const DefaultConfigDir = ".handbook"

// Config is the full runtime configuration. Zero/missing values are
// filled with the defaults below, so a partial file only overrides
// what it names.
type Config struct {
	Backend   BackendConfig   `toml:"backend"`
	Ingest    IngestConfig    `toml:"ingest"`
	Index     IndexConfig     `toml:"index"`
	Retrieval RetrievalConfig `toml:"retrieval"`
}

// BackendConfig selects the model backends.
type BackendConfig struct {
	// BaseURL is the Ollama API base URL.
	BaseURL string `toml:"base_url"`

	// EmbedModel embeds synthetic questions and live queries.
	EmbedModel string `toml:"embed_model"`

	// GenModel generates doc2query questions and answers.
	GenModel string `toml:"gen_model"`

	// EmbedTimeoutSecs bounds one embedding call.
	EmbedTimeoutSecs int `toml:"embed_timeout_secs"`

	// GenTimeoutSecs bounds one generation call.
	GenTimeoutSecs int `toml:"gen_timeout_secs"`
}

// IngestConfig controls document chunking.
type IngestConfig struct {
	// DataDir is the directory of handbook .txt files.
	DataDir string `toml:"data_dir"`

	// MaxChars is the character budget per chunk.
	MaxChars int `toml:"max_chars"`

	// MultiSectionFiles lists filenames with Roman-numeral sections.
	MultiSectionFiles []string `toml:"multi_section_files"`

	// URLs maps filenames to external handbook references.
	URLs map[string]string `toml:"urls"`
}

// IndexConfig controls the index build.
type IndexConfig struct {
	// QuestionsPerChunk is the doc2query question count per chunk.
	QuestionsPerChunk int `toml:"questions_per_chunk"`

	// Normalize enables L2 normalisation of embedding rows.
	Normalize bool `toml:"normalize"`

	// BackendRPS caps backend requests per second during the build.
	// Zero means unlimited.
	BackendRPS float64 `toml:"backend_rps"`
}

// RetrievalConfig controls similarity search and the confidence gate.
type RetrievalConfig struct {
	// TopKQuestions is how many synthetic question rows to consider.
	TopKQuestions int `toml:"top_k_questions"`

	// MaxChunks is how many distinct context chunks to collect.
	MaxChunks int `toml:"max_chunks"`

	// MinSimilarity is the confidence gate threshold.
	MinSimilarity float64 `toml:"min_similarity"`
}

// Default returns the configuration matching the reference deployment.
func Default() Config {
	return Config{
		Backend: BackendConfig{
			BaseURL:          "http://localhost:11434",
			EmbedModel:       "mxbai-embed-large:latest",
			GenModel:         "qwen2.5:1.5b",
			EmbedTimeoutSecs: 60,
			GenTimeoutSecs:   120,
		},
		Ingest: IngestConfig{
			DataDir:  "data",
			MaxChars: 3000,
		},
		Index: IndexConfig{
			QuestionsPerChunk: 3,
			Normalize:         false,
		},
		Retrieval: RetrievalConfig{
			TopKQuestions: 5,
			MaxChunks:     1,
			MinSimilarity: 0.68,
		},
	}
}

// Load reads the TOML config at path and overlays it on the defaults.
// A missing file yields the defaults unchanged. If path is empty,
// ~/.handbook/config.toml is used.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, fmt.Errorf("getting home directory: %w", err)
		}
		path = filepath.Join(home, DefaultConfigDir, "config.toml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

// applyDefaults fills zero values a partial file left out. Normalize
// is a plain bool: absent and false are the same, matching the
// reference default.
func (c *Config) applyDefaults() {
	d := Default()

	if c.Backend.BaseURL == "" {
		c.Backend.BaseURL = d.Backend.BaseURL
	}
	if c.Backend.EmbedModel == "" {
		c.Backend.EmbedModel = d.Backend.EmbedModel
	}
	if c.Backend.GenModel == "" {
		c.Backend.GenModel = d.Backend.GenModel
	}
	if c.Backend.EmbedTimeoutSecs <= 0 {
		c.Backend.EmbedTimeoutSecs = d.Backend.EmbedTimeoutSecs
	}
	if c.Backend.GenTimeoutSecs <= 0 {
		c.Backend.GenTimeoutSecs = d.Backend.GenTimeoutSecs
	}
	if c.Ingest.DataDir == "" {
		c.Ingest.DataDir = d.Ingest.DataDir
	}
	if c.Ingest.MaxChars <= 0 {
		c.Ingest.MaxChars = d.Ingest.MaxChars
	}
	if c.Index.QuestionsPerChunk <= 0 {
		c.Index.QuestionsPerChunk = d.Index.QuestionsPerChunk
	}
	if c.Retrieval.TopKQuestions <= 0 {
		c.Retrieval.TopKQuestions = d.Retrieval.TopKQuestions
	}
	if c.Retrieval.MaxChunks <= 0 {
		c.Retrieval.MaxChunks = d.Retrieval.MaxChunks
	}
	if c.Retrieval.MinSimilarity <= 0 {
		c.Retrieval.MinSimilarity = d.Retrieval.MinSimilarity
	}
}
