package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var ingestDataDir string

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Chunk the handbook sources into the store",
	Long: `Reads every .txt file in the data directory, splits documents into
section-bounded chunks, and replaces the stored chunk table. Run this
before building the index.`,
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVarP(&ingestDataDir, "data", "d", "data", "directory of handbook .txt files")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, _ []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	dataDir := ingestDataDir
	if !cmd.Flags().Changed("data") && defaultDataDir != "" {
		dataDir = defaultDataDir
	}

	chunks, err := ingestService.IngestDir(cmd.Context(), dataDir)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	cmd.Printf("Ingested %d chunks from %s\n", len(chunks), dataDir)
	return nil
}
