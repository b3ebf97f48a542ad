package domain

import "fmt"

// SearchMode selects the retrieval strategy.
type SearchMode string

// SearchModeSimilarity ranks chunks by cosine similarity to the query.
// It is the only mode implemented; the enum leaves room for others.
const SearchModeSimilarity SearchMode = "similarity"

// Default pipeline option values.
const (
	DefaultChunkSize              = 1000
	DefaultChunkOverlap           = 200
	DefaultTopK                   = 4
	DefaultTemperature            = 0.2
	DefaultEmbedRequestsPerSecond = 4.0
)

// PipelineOptions configures the answering pipeline.
type PipelineOptions struct {
	// ChunkSize is the maximum chunk length in runes.
	ChunkSize int

	// ChunkOverlap is the number of runes shared between consecutive
	// chunks. Must be non-negative and strictly smaller than ChunkSize.
	ChunkOverlap int

	// TopK is the number of chunks retrieved per question.
	TopK int

	// Temperature is the sampling temperature for answer generation.
	// Kept low by default to favour determinism over creativity.
	Temperature float64

	// SearchMode selects the retrieval strategy.
	SearchMode SearchMode

	// EmbedRequestsPerSecond paces embedding requests during ingest so a
	// long transcript does not trip provider rate limits.
	EmbedRequestsPerSecond float64
}

// DefaultPipelineOptions returns the default configuration.
func DefaultPipelineOptions() PipelineOptions {
	return PipelineOptions{
		ChunkSize:    DefaultChunkSize,
		ChunkOverlap: DefaultChunkOverlap,
		TopK:         DefaultTopK,
		Temperature:  DefaultTemperature,
		SearchMode:   SearchModeSimilarity,

		EmbedRequestsPerSecond: DefaultEmbedRequestsPerSecond,
	}
}

// Validate checks the options. All violations are ErrInvalidConfig: they
// indicate a misconfigured pipeline, not a runtime condition.
func (o PipelineOptions) Validate() error {
	if o.ChunkSize <= 0 {
		return fmt.Errorf("%w: chunk size must be positive, got %d", ErrInvalidConfig, o.ChunkSize)
	}
	if o.ChunkOverlap < 0 {
		return fmt.Errorf("%w: chunk overlap must be non-negative, got %d", ErrInvalidConfig, o.ChunkOverlap)
	}
	if o.ChunkOverlap >= o.ChunkSize {
		return fmt.Errorf("%w: chunk overlap %d must be smaller than chunk size %d",
			ErrInvalidConfig, o.ChunkOverlap, o.ChunkSize)
	}
	if o.TopK <= 0 {
		return fmt.Errorf("%w: top-k must be positive, got %d", ErrInvalidConfig, o.TopK)
	}
	if o.Temperature < 0 {
		return fmt.Errorf("%w: temperature must be non-negative, got %g", ErrInvalidConfig, o.Temperature)
	}
	if o.SearchMode != SearchModeSimilarity {
		return fmt.Errorf("%w: unsupported search mode %q", ErrInvalidConfig, o.SearchMode)
	}
	if o.EmbedRequestsPerSecond <= 0 {
		return fmt.Errorf("%w: embed requests per second must be positive, got %g",
			ErrInvalidConfig, o.EmbedRequestsPerSecond)
	}
	return nil
}
