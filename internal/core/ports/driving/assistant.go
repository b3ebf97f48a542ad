package driving

import (
	"context"

	"github.com/vidchat-dev/vidchat-cli/internal/core/domain"
)

// Session answers questions about one ingested transcript. A session is
// immutable after creation: concurrent calls are safe without locking, and
// replacing a document means building a new session, never mutating a live
// one.
type Session interface {
	// ID is the unique session identifier.
	ID() string

	// ModelID identifies the embedding model the session's index was built
	// with.
	ModelID() string

	// ChunkCount reports how many chunks the session indexed.
	ChunkCount() int

	// Retrieve returns the chunks most similar to the question, best first.
	// Scores are an internal signal and are not exposed.
	Retrieve(ctx context.Context, question string) ([]domain.Chunk, error)

	// Answer generates a grounded answer to the question from retrieved
	// context only.
	Answer(ctx context.Context, question string) (string, error)

	// DebugContext returns the context block Answer would pass to the
	// language model for the same question, without invoking it. It uses
	// the identical retrieval path as Answer.
	DebugContext(ctx context.Context, question string) (string, error)

	// Snapshot exports the session's index for persistence.
	Snapshot() domain.IndexSnapshot
}

// AssistantService builds, persists and restores answering sessions.
type AssistantService interface {
	// Ingest chunks, embeds and indexes a transcript, returning a fresh
	// session. Fails with domain.ErrEmptyTranscript on blank input and
	// with domain.ErrGatewayUnavailable when embedding fails; no partially
	// built session is ever returned.
	Ingest(ctx context.Context, transcript string) (Session, error)

	// Persist saves the session's index for reuse across process runs.
	Persist(ctx context.Context, session Session) error

	// Restore rebuilds a session from the persisted index. Fails with
	// domain.ErrEmptyIndex when nothing was persisted, and refuses a
	// snapshot built by a different embedding model.
	Restore(ctx context.Context) (Session, error)
}
