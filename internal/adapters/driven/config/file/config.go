// Package file provides TOML-based configuration for the vidchat CLI.
// Configuration lives at ~/.vidchat/config.toml by default; a missing file
// yields the defaults.
package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/vidchat-dev/vidchat-cli/internal/core/domain"
)

// Provider names accepted in the embedding and llm sections.
const (
	ProviderOllama    = "ollama"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Config is the full configuration surface of the CLI.
type Config struct {
	Embedding   GatewayConfig     `toml:"embedding"`
	LLM         GatewayConfig     `toml:"llm"`
	Pipeline    PipelineConfig    `toml:"pipeline"`
	Transcripts TranscriptsConfig `toml:"transcripts"`
	Storage     StorageConfig     `toml:"storage"`

	path string
}

// GatewayConfig selects and configures one model gateway.
type GatewayConfig struct {
	// Provider is "ollama", "openai" or "anthropic".
	Provider string `toml:"provider"`

	// Model overrides the provider's default model.
	Model string `toml:"model"`

	// BaseURL overrides the provider's default endpoint.
	BaseURL string `toml:"base_url"`

	// APIKeyEnv names the environment variable holding the API key.
	// Only used by providers that need one.
	APIKeyEnv string `toml:"api_key_env"`

	// Dimensions overrides the embedding vector size where the model
	// supports it.
	Dimensions int `toml:"dimensions"`
}

// PipelineConfig mirrors domain.PipelineOptions in TOML form.
type PipelineConfig struct {
	ChunkSize              int     `toml:"chunk_size"`
	ChunkOverlap           int     `toml:"chunk_overlap"`
	TopK                   int     `toml:"top_k"`
	Temperature            float64 `toml:"temperature"`
	SearchMode             string  `toml:"search_mode"`
	EmbedRequestsPerSecond float64 `toml:"embed_requests_per_second"`
}

// TranscriptsConfig configures the file transcript source.
type TranscriptsConfig struct {
	// Dir is the directory transcript ids are resolved against.
	Dir string `toml:"dir"`

	// Languages are the caption languages tried in order.
	Languages []string `toml:"languages"`
}

// StorageConfig configures index persistence.
type StorageConfig struct {
	// DataDir is where the index database lives.
	// Defaults to ~/.vidchat/data.
	DataDir string `toml:"data_dir"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	opts := domain.DefaultPipelineOptions()
	return &Config{
		Embedding: GatewayConfig{
			Provider:  ProviderOllama,
			APIKeyEnv: "OPENAI_API_KEY",
		},
		LLM: GatewayConfig{
			Provider:  ProviderOllama,
			APIKeyEnv: "OPENAI_API_KEY",
		},
		Pipeline: PipelineConfig{
			ChunkSize:              opts.ChunkSize,
			ChunkOverlap:           opts.ChunkOverlap,
			TopK:                   opts.TopK,
			Temperature:            opts.Temperature,
			SearchMode:             string(opts.SearchMode),
			EmbedRequestsPerSecond: opts.EmbedRequestsPerSecond,
		},
		Transcripts: TranscriptsConfig{
			Languages: []string{"en"},
		},
	}
}

// Load reads the configuration from configDir/config.toml, falling back to
// ~/.vidchat when configDir is empty. A missing file returns the defaults;
// a malformed file is an error.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		configDir = filepath.Join(home, ".vidchat")
	}

	cfg := Default()
	cfg.path = filepath.Join(configDir, "config.toml")

	data, err := os.ReadFile(cfg.path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", domain.ErrInvalidConfig, cfg.path, err)
	}
	return cfg, nil
}

// Save writes the configuration back to its file, creating the directory
// if needed.
func (c *Config) Save() error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	// Restricted permissions; the file may reference key material.
	return os.WriteFile(c.path, data, 0600)
}

// Path returns the configuration file path.
func (c *Config) Path() string {
	return c.path
}

// PipelineOptions converts the pipeline section into domain options.
// Zero values fall back to the defaults so a partial [pipeline] section
// stays valid.
func (c *Config) PipelineOptions() domain.PipelineOptions {
	opts := domain.DefaultPipelineOptions()
	if c.Pipeline.ChunkSize > 0 {
		opts.ChunkSize = c.Pipeline.ChunkSize
	}
	if c.Pipeline.ChunkOverlap > 0 {
		opts.ChunkOverlap = c.Pipeline.ChunkOverlap
	}
	if c.Pipeline.TopK > 0 {
		opts.TopK = c.Pipeline.TopK
	}
	if c.Pipeline.Temperature > 0 {
		opts.Temperature = c.Pipeline.Temperature
	}
	if c.Pipeline.SearchMode != "" {
		opts.SearchMode = domain.SearchMode(c.Pipeline.SearchMode)
	}
	if c.Pipeline.EmbedRequestsPerSecond > 0 {
		opts.EmbedRequestsPerSecond = c.Pipeline.EmbedRequestsPerSecond
	}
	return opts
}

// APIKey resolves the configured API key environment variable.
func (g GatewayConfig) APIKey() string {
	if g.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(g.APIKeyEnv)
}
