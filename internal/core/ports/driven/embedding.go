package driven

import "context"

// EmbeddingService converts text into fixed-length vectors via an external
// embedding capability.
//
// Document and query encoding are separate calls because some backends apply
// different instructions to each (for example nomic-style search_document /
// search_query prefixes). Implementations must guarantee both land in the
// same vector space so the index can compare them.
//
// Any call may fail transiently (network, auth, rate limit); implementations
// wrap such failures in domain.ErrGatewayUnavailable so they propagate
// instead of corrupting the index with silent empty vectors. Calls honour
// context cancellation and deadlines.
type EmbeddingService interface {
	// EmbedDocuments generates one vector per input text, order-preserving.
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)

	// EmbedQuery generates a vector for a single question.
	EmbedQuery(ctx context.Context, text string) ([]float32, error)

	// Dimensions returns the fixed vector length (e.g. 768, 1536).
	Dimensions() int

	// ModelName identifies the embedding model. Stored alongside persisted
	// indexes so a model mismatch is detectable on restore.
	ModelName() string

	// Ping validates the service is reachable with a lightweight request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
