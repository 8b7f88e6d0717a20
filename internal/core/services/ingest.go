package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/opencampus-labs/handbook-cli/internal/core/domain"
	"github.com/opencampus-labs/handbook-cli/internal/core/ports/driven"
	"github.com/opencampus-labs/handbook-cli/internal/core/ports/driving"
	"github.com/opencampus-labs/handbook-cli/internal/logger"
	"github.com/opencampus-labs/handbook-cli/internal/postprocessors/chunker"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestConfig configures document chunking.
type IngestConfig struct {
	// MaxChars is the character budget per chunk.
	MaxChars int

	// MultiSectionFiles lists source filenames that contain multiple
	// Roman-numeral-headed sections.
	MultiSectionFiles []string

	// URLs maps source filenames to external handbook references used
	// in citations.
	URLs map[string]string
}

// IngestService reads raw handbook documents and replaces the stored
// chunk table. The chunk table is rebuilt in full on every run; chunk
// IDs are sequential across the whole corpus in reading order.
type IngestService struct {
	store driven.IndexStore
	cfg   IngestConfig

	multiSection map[string]bool
}

// NewIngestService creates a new ingest service.
func NewIngestService(store driven.IndexStore, cfg IngestConfig) *IngestService {
	if cfg.MaxChars <= 0 {
		cfg.MaxChars = chunker.DefaultMaxChars
	}

	multi := make(map[string]bool, len(cfg.MultiSectionFiles))
	for _, name := range cfg.MultiSectionFiles {
		multi[name] = true
	}

	return &IngestService{
		store:        store,
		cfg:          cfg,
		multiSection: multi,
	}
}

// IngestDir chunks every .txt file under dir, in lexical filename
// order, and replaces the stored chunk table. An unreadable file is
// skipped with a warning; it never aborts the run.
func (s *IngestService) IngestDir(ctx context.Context, dir string) ([]domain.Chunk, error) {
	logger.Section("Ingest")
	logger.Debug("Data directory: %s", dir)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read data directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	var chunks []domain.Chunk
	for _, name := range names {
		text, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			logger.Warn("Skipping unreadable file %s: %v", name, err)
			continue
		}
		chunks = append(chunks, s.chunkFile(name, string(text), len(chunks))...)
	}

	logger.Info("Chunked %d files into %d chunks", len(names), len(chunks))

	if err := s.store.ReplaceChunks(ctx, chunks); err != nil {
		return nil, fmt.Errorf("replace chunks: %w", err)
	}

	return chunks, nil
}

// chunkFile splits one document into chunks, numbering them from next.
func (s *IngestService) chunkFile(filename, text string, next int) []domain.Chunk {
	p := chunker.New(
		chunker.WithMaxChars(s.cfg.MaxChars),
		chunker.WithMultiSection(s.multiSection[filename]),
		chunker.WithFallbackTitle(titleFromFilename(filename)),
	)

	url := s.cfg.URLs[filename]

	var chunks []domain.Chunk
	for _, section := range p.Split(text) {
		chunks = append(chunks, domain.Chunk{
			ID:           domain.ChunkID(next + len(chunks)),
			SectionTitle: section.Title,
			SourceFile:   filename,
			URL:          url,
			Text:         section.Text,
		})
	}

	logger.Debug("File %s: %d chunks", filename, len(chunks))
	return chunks
}

// titleFromFilename derives a fallback section title from a source
// filename: "student_conduct_code.txt" becomes "Student Conduct Code".
func titleFromFilename(filename string) string {
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	words := strings.FieldsFunc(base, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	})
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}
