package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [transcript]",
	Short: "Index a transcript for question answering",
	Long: `Splits the transcript into overlapping chunks, embeds them, and
persists the resulting index so later "ask" invocations can answer
questions without re-embedding.

The transcript argument is a file path or an id resolved against the
configured transcript directory (trying language-suffixed .vtt/.srt/.txt
candidates).`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if services == nil || services.Assistant == nil {
		return errors.New("assistant service not configured")
	}

	ctx := cmd.Context()

	text, err := loadTranscript(ctx, args[0])
	if err != nil {
		return err
	}

	session, err := services.Assistant.Ingest(ctx, text)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	if err := services.Assistant.Persist(ctx, session); err != nil {
		return fmt.Errorf("persist failed: %w", err)
	}

	cmd.Printf("Indexed %d chunks with %s.\n", session.ChunkCount(), session.ModelID())
	return nil
}
