// Package cli implements the command-line interface (primary/driving
// adapter). Commands talk to the core exclusively through the driving
// ports; wiring happens in main.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/opencampus-labs/handbook-cli/internal/core/ports/driving"
	"github.com/opencampus-labs/handbook-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// verboseFlag mirrors the --verbose persistent flag.
var verboseFlag bool

// Services the commands depend on, injected by main before Execute.
var (
	ingestService  driving.IngestService
	indexService   driving.IndexService
	askService     driving.AskService
	evalService    driving.EvalService
	defaultDataDir string
)

// Services bundles the driving-port implementations the CLI needs,
// along with the configured data directory ingest falls back to when
// the --data flag is not given.
type Services struct {
	Ingest  driving.IngestService
	Index   driving.IndexService
	Ask     driving.AskService
	Eval    driving.EvalService
	DataDir string
}

// SetServices injects the core services into the command tree.
func SetServices(s Services) {
	ingestService = s.Ingest
	indexService = s.Index
	askService = s.Ask
	evalService = s.Eval
	defaultDataDir = s.DataDir
}

var rootCmd = &cobra.Command{
	Use:   "handbook",
	Short: "Ask questions about the college student handbook",
	Long: `handbook is a retrieval-backed assistant for the college student
handbook. It chunks the handbook sources, generates synthetic questions
per chunk, indexes their embeddings, and answers live questions from
the best-matching handbook excerpt.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging to stderr")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
