package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/vidchat-dev/vidchat-cli/internal/core/domain"
	"github.com/vidchat-dev/vidchat-cli/internal/core/ports/driven"
	"github.com/vidchat-dev/vidchat-cli/internal/core/ports/driving"
	"github.com/vidchat-dev/vidchat-cli/internal/vecindex"
)

// Ensure Session implements the interface.
var _ driving.Session = (*Session)(nil)

// Session binds one immutable index to the retriever and composer that
// answer questions against it. Sessions are value objects owned by the
// caller: one session per source document, replaced wholesale when a new
// document is ingested. All methods are safe for concurrent use because
// nothing mutates after construction.
type Session struct {
	id        string
	index     *vecindex.Index
	retriever *Retriever
	composer  *Composer
}

// newSession wires a session around a built index.
func newSession(index *vecindex.Index, embedder driven.EmbeddingService, llm driven.LLMService, opts domain.PipelineOptions) *Session {
	retriever := NewRetriever(index, embedder, opts.TopK)
	return &Session{
		id:        uuid.New().String(),
		index:     index,
		retriever: retriever,
		composer:  NewComposer(retriever, llm, opts.Temperature),
	}
}

// ID returns the unique session identifier.
func (s *Session) ID() string { return s.id }

// ModelID identifies the embedding model the index was built with.
func (s *Session) ModelID() string { return s.index.ModelID() }

// ChunkCount reports how many chunks the session indexed.
func (s *Session) ChunkCount() int { return s.index.Len() }

// Retrieve returns the chunks most similar to the question, best first.
func (s *Session) Retrieve(ctx context.Context, question string) ([]domain.Chunk, error) {
	return s.retriever.Retrieve(ctx, question)
}

// Answer generates a grounded answer to the question.
func (s *Session) Answer(ctx context.Context, question string) (string, error) {
	return s.composer.Answer(ctx, question)
}

// DebugContext returns the context block Answer would use for the
// question.
func (s *Session) DebugContext(ctx context.Context, question string) (string, error) {
	return s.composer.DebugContext(ctx, question)
}

// Snapshot exports the session's index for persistence.
func (s *Session) Snapshot() domain.IndexSnapshot {
	return s.index.Snapshot()
}
