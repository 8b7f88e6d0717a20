package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask the handbook a question",
	Long: `Answers a question from the best-matching handbook excerpt.
With a question argument it answers once and exits; without one it
starts an interactive session reading questions from stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if askService == nil {
		return errors.New("ask service not configured")
	}

	if len(args) == 1 {
		return answerOne(cmd, args[0])
	}

	cmd.Println("Handbook Chatbot")
	cmd.Println("Type /exit or /quit to stop.")
	cmd.Println()

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		cmd.Print("> ")
		if !scanner.Scan() {
			cmd.Println()
			break
		}

		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		lowered := strings.ToLower(question)
		if lowered == "/exit" || lowered == "/quit" {
			break
		}

		if err := answerOne(cmd, question); err != nil {
			// A backend hiccup should not kill the session.
			cmd.PrintErrf("Error: %v\n\n", err)
		}
	}

	return scanner.Err()
}

func answerOne(cmd *cobra.Command, question string) error {
	answer, err := askService.Ask(cmd.Context(), question)
	if err != nil {
		return fmt.Errorf("answering question: %w", err)
	}

	cmd.Println(answer.Text)

	// Citations depend only on the retrieved chunks: the gate-closed
	// path carries none, and once the gate opens they print regardless
	// of what the backend generated.
	if len(answer.Citations) > 0 {
		cmd.Println()
		cmd.Println("Sources:")
		for _, c := range answer.Citations {
			if c.URL != "" {
				cmd.Printf("- %s – Student Handbook (%s)\n", c.SectionTitle, c.URL)
			} else {
				cmd.Printf("- %s – Student Handbook\n", c.SectionTitle)
			}
		}
	}

	cmd.Println()
	return nil
}
