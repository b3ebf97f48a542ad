package domain

import "errors"

// Domain errors represent pipeline failures. All failures propagate to the
// immediate caller as typed errors; none are logged-and-swallowed inside
// the core.
var (
	// ErrInvalidConfig indicates a bad configuration value, such as a chunk
	// overlap that is not smaller than the chunk size. Fatal at
	// construction, never recovered.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrEmptyTranscript indicates an ingest attempt with no transcript
	// text. There is nothing to chunk or index.
	ErrEmptyTranscript = errors.New("empty transcript")

	// ErrEmptyIndex indicates a search against an index with zero entries.
	// Nothing has been ingested yet.
	ErrEmptyIndex = errors.New("empty index")

	// ErrDimensionMismatch indicates vectors of inconsistent length, or a
	// query vector that does not match the index dimensionality. This means
	// embedding models were mixed; it is never silently coerced.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrGatewayUnavailable indicates a transient embedding gateway failure
	// (network, auth, quota, timeout). Callers may retry; the core does not.
	ErrGatewayUnavailable = errors.New("embedding gateway unavailable")

	// ErrGenerationFailed indicates a transient language model failure.
	// The pipeline never fabricates an answer to paper over one.
	ErrGenerationFailed = errors.New("answer generation failed")
)
