package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opencampus-labs/handbook-cli/internal/adapters/driven/storage/memory"
)

func TestTitleFromFilename(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"student_conduct_code.txt", "Student Conduct Code"},
		{"housing.txt", "Housing"},
		{"academic-policies.txt", "Academic Policies"},
		{"FERPA_rights.txt", "Ferpa Rights"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, titleFromFilename(tt.filename))
	}
}

func TestIngestDir(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "housing.txt"),
		[]byte("Residence halls close during winter break.\n\nQuiet hours run from 10pm."), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "conduct.txt"),
		[]byte("I. Alcohol Policy\n\nAlcohol is prohibited in residence halls.\n\nII. Guests\n\nOvernight guests must register."), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"),
		[]byte("not a handbook file"), 0o644))

	store := memory.NewIndexStore()
	svc := NewIngestService(store, IngestConfig{
		MultiSectionFiles: []string{"conduct.txt"},
		URLs: map[string]string{
			"housing.txt": "https://example.edu/handbook/housing",
		},
	})

	chunks, err := svc.IngestDir(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, chunks, 3)

	// Files process in lexical order; conduct.txt splits on its
	// Roman-numeral headers, housing.txt stays a single chunk.
	assert.Equal(t, "chunk_0", chunks[0].ID)
	assert.Equal(t, "Alcohol Policy", chunks[0].SectionTitle)
	assert.Equal(t, "conduct.txt", chunks[0].SourceFile)

	assert.Equal(t, "chunk_1", chunks[1].ID)
	assert.Equal(t, "Guests", chunks[1].SectionTitle)

	assert.Equal(t, "chunk_2", chunks[2].ID)
	assert.Equal(t, "Housing", chunks[2].SectionTitle)
	assert.Equal(t, "https://example.edu/handbook/housing", chunks[2].URL)
	assert.Contains(t, chunks[2].Text, "Quiet hours")

	// The chunk table was replaced in the store.
	stored, err := store.Chunks(context.Background())
	require.NoError(t, err)
	assert.Equal(t, chunks, stored)
}

func TestIngestDirSkipsUnreadableFile(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a_good.txt"),
		[]byte("Library hours are posted each term."), 0o644))
	// A dangling symlink passes the directory listing but fails to read.
	require.NoError(t, os.Symlink(filepath.Join(dir, "missing"), filepath.Join(dir, "b_broken.txt")))

	store := memory.NewIndexStore()
	svc := NewIngestService(store, IngestConfig{})

	chunks, err := svc.IngestDir(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "a_good.txt", chunks[0].SourceFile)
}

func TestIngestDirMissingDirectory(t *testing.T) {
	store := memory.NewIndexStore()
	svc := NewIngestService(store, IngestConfig{})

	_, err := svc.IngestDir(context.Background(), filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}

func TestIngestDirEmptyDirectory(t *testing.T) {
	store := memory.NewIndexStore()
	svc := NewIngestService(store, IngestConfig{})

	chunks, err := svc.IngestDir(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, chunks)
}
