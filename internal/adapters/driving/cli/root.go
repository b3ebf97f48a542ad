// Package cli implements the vidchat command line interface.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vidchat-dev/vidchat-cli/internal/core/ports/driven"
	"github.com/vidchat-dev/vidchat-cli/internal/core/ports/driving"
	"github.com/vidchat-dev/vidchat-cli/internal/logger"
)

// version is reported by the version command; main overrides it with the
// build-time value.
var version = "dev"

// Services aggregates everything the commands need. Set once from main
// before Execute.
type Services struct {
	// Assistant runs the ingest/ask pipeline.
	Assistant driving.AssistantService

	// Transcripts resolves transcript ids to text.
	Transcripts driven.TranscriptSource

	// Embedding and LLM are only used directly for health checks.
	Embedding driven.EmbeddingService
	LLM       driven.LLMService

	// Languages are the caption languages tried in order.
	Languages []string
}

var services *Services

// SetServices injects the service dependencies for all commands.
func SetServices(s *Services) {
	services = s
}

// SetVersion sets the version string reported by the version command.
func SetVersion(v string) {
	version = v
}

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "vidchat",
	Short: "Ask questions about video transcripts",
	Long: `vidchat answers questions about a video using only its transcript.

A transcript is split into overlapping chunks, embedded, and indexed for
similarity search. Questions are answered by a language model constrained
to the retrieved transcript context.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// loadTranscript resolves a transcript id or path to plain text.
func loadTranscript(ctx context.Context, id string) (string, error) {
	if services == nil || services.Transcripts == nil {
		return "", fmt.Errorf("transcript source not configured")
	}

	text, ok, err := services.Transcripts.Fetch(ctx, id, services.Languages)
	if err != nil {
		return "", fmt.Errorf("fetching transcript: %w", err)
	}
	if !ok {
		return "", fmt.Errorf("no transcript found for %q", id)
	}
	return text, nil
}
