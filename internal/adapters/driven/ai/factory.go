// Package ai provides factory functions for creating model gateway adapters.
package ai

import (
	"fmt"

	configfile "github.com/vidchat-dev/vidchat-cli/internal/adapters/driven/config/file"
	ollamaembed "github.com/vidchat-dev/vidchat-cli/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/vidchat-dev/vidchat-cli/internal/adapters/driven/embedding/openai"
	anthropicllm "github.com/vidchat-dev/vidchat-cli/internal/adapters/driven/llm/anthropic"
	ollamallm "github.com/vidchat-dev/vidchat-cli/internal/adapters/driven/llm/ollama"
	openaillm "github.com/vidchat-dev/vidchat-cli/internal/adapters/driven/llm/openai"
	"github.com/vidchat-dev/vidchat-cli/internal/core/ports/driven"
)

// CreateEmbeddingService creates the embedding gateway named by the config.
// An empty provider defaults to Ollama.
func CreateEmbeddingService(cfg configfile.GatewayConfig) (driven.EmbeddingService, error) {
	switch cfg.Provider {
	case configfile.ProviderOllama, "":
		return ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL:    cfg.BaseURL,
			Model:      cfg.Model,
			Dimensions: cfg.Dimensions,
		}), nil

	case configfile.ProviderOpenAI:
		return openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:     cfg.APIKey(),
			BaseURL:    cfg.BaseURL,
			Model:      cfg.Model,
			Dimensions: cfg.Dimensions,
		})

	case configfile.ProviderAnthropic:
		return nil, fmt.Errorf("anthropic does not support embeddings, use ollama or openai")

	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", cfg.Provider)
	}
}

// CreateLLMService creates the LLM gateway named by the config.
// An empty provider defaults to Ollama.
func CreateLLMService(cfg configfile.GatewayConfig) (driven.LLMService, error) {
	switch cfg.Provider {
	case configfile.ProviderOllama, "":
		return ollamallm.NewLLMService(ollamallm.LLMConfig{
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		}), nil

	case configfile.ProviderOpenAI:
		return openaillm.NewLLMService(openaillm.LLMConfig{
			APIKey:  cfg.APIKey(),
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		})

	case configfile.ProviderAnthropic:
		return anthropicllm.NewLLMService(anthropicllm.LLMConfig{
			APIKey:  cfg.APIKey(),
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		})

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
