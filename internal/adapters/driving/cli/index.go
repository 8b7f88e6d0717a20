package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build the synthetic question index",
	Long: `Generates doc2query questions for every stored chunk, embeds them,
and atomically replaces the stored index. The build is all-or-nothing;
a backend failure leaves the previous index untouched.`,
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, _ []string) error {
	if indexService == nil {
		return errors.New("index service not configured")
	}

	stats, err := indexService.BuildIndex(cmd.Context())
	if err != nil {
		return fmt.Errorf("index build failed: %w", err)
	}

	cmd.Printf("Indexed %d questions across %d chunks (%d dimensions)\n",
		stats.Questions, stats.Chunks, stats.Dimensions)
	if stats.ChunksSkipped > 0 {
		cmd.Printf("Skipped %d chunks with no supported questions\n", stats.ChunksSkipped)
	}
	return nil
}
