package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opencampus-labs/handbook-cli/internal/adapters/driven/goldset"
)

var (
	evalGoldPath    string
	evalResultsPath string
)

var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Score retrieval against the gold question set",
	Long: `Replays every labelled gold question through the query pipeline,
writes a per-case results CSV, and reports chunk-level Hit@1 over the
answerable normal questions.`,
	RunE: runEval,
}

func init() {
	evalCmd.Flags().StringVar(&evalGoldPath, "gold", "eval/gold_questions.csv", "gold question set CSV")
	evalCmd.Flags().StringVar(&evalResultsPath, "out", "eval/results.csv", "results CSV to write")
	rootCmd.AddCommand(evalCmd)
}

func runEval(cmd *cobra.Command, _ []string) error {
	if evalService == nil {
		return errors.New("eval service not configured")
	}

	cases, err := goldset.LoadGold(evalGoldPath)
	if err != nil {
		return fmt.Errorf("loading gold set: %w", err)
	}

	results, summary, err := evalService.Evaluate(cmd.Context(), cases)
	if err != nil {
		return fmt.Errorf("evaluation failed: %w", err)
	}

	if err := goldset.WriteResults(evalResultsPath, results); err != nil {
		return fmt.Errorf("writing results: %w", err)
	}

	cmd.Printf("Run %s: %d cases, results written to %s\n", summary.RunID, len(results), evalResultsPath)
	if summary.EligibleCases > 0 {
		cmd.Printf("Normal questions with gold chunk: %d\n", summary.EligibleCases)
		cmd.Printf("Hit@1 = %.3f\n", summary.HitRate())
	} else {
		cmd.Println("No answerable normal questions found.")
	}
	return nil
}
