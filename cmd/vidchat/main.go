// Command vidchat answers questions about videos from their transcripts.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/vidchat-dev/vidchat-cli/internal/adapters/driven/ai"
	configfile "github.com/vidchat-dev/vidchat-cli/internal/adapters/driven/config/file"
	"github.com/vidchat-dev/vidchat-cli/internal/adapters/driven/retry"
	"github.com/vidchat-dev/vidchat-cli/internal/adapters/driven/storage/sqlite"
	transcriptfile "github.com/vidchat-dev/vidchat-cli/internal/adapters/driven/transcript/file"
	"github.com/vidchat-dev/vidchat-cli/internal/adapters/driving/cli"
	"github.com/vidchat-dev/vidchat-cli/internal/core/services"
)

// version is overridden at build time via ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional; real environment variables win either way.
	_ = godotenv.Load()

	cfg, err := configfile.Load(os.Getenv("VIDCHAT_CONFIG_DIR"))
	if err != nil {
		return err
	}

	embedder, err := ai.CreateEmbeddingService(cfg.Embedding)
	if err != nil {
		return err
	}
	defer embedder.Close()

	llm, err := ai.CreateLLMService(cfg.LLM)
	if err != nil {
		return err
	}
	defer llm.Close()

	policy := retry.DefaultPolicy()
	embedder = retry.NewEmbedding(embedder, policy)
	llm = retry.NewLLM(llm, policy)

	store, err := sqlite.NewStore(cfg.Storage.DataDir)
	if err != nil {
		return err
	}
	defer store.Close()

	assistant, err := services.NewAssistant(embedder, llm, store, cfg.PipelineOptions())
	if err != nil {
		return err
	}

	cli.SetVersion(version)
	cli.SetServices(&cli.Services{
		Assistant:   assistant,
		Transcripts: transcriptfile.NewSource(cfg.Transcripts.Dir),
		Embedding:   embedder,
		LLM:         llm,
		Languages:   cfg.Transcripts.Languages,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return cli.Execute(ctx)
}
