package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vidchat-dev/vidchat-cli/internal/core/domain"
)

var askShowContext bool

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Answer a question from the indexed transcript",
	Long: `Restores the persisted index and answers the question using only
the retrieved transcript context. Run "ingest" first.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askShowContext, "show-context", false, "print the retrieved context before the answer")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := args[0]

	if services == nil || services.Assistant == nil {
		return errors.New("assistant service not configured")
	}

	ctx := cmd.Context()

	session, err := services.Assistant.Restore(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyIndex) {
			return errors.New("no transcript indexed yet, run \"vidchat ingest\" first")
		}
		return fmt.Errorf("restore failed: %w", err)
	}

	if askShowContext {
		contextBlock, err := session.DebugContext(ctx, question)
		if err != nil {
			return fmt.Errorf("retrieving context: %w", err)
		}
		cmd.Println("--- context ---")
		cmd.Println(contextBlock)
		cmd.Println("---------------")
	}

	answer, err := session.Answer(ctx, question)
	if err != nil {
		return fmt.Errorf("answer failed: %w", err)
	}

	cmd.Println(answer)
	return nil
}
