// Package services contains the core pipeline of the assistant: chunking,
// embedding, retrieval and answer composition, orchestrated behind the
// driving ports. Everything in here depends only on domain types and
// driven ports, never on concrete adapters.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/time/rate"

	"github.com/vidchat-dev/vidchat-cli/internal/chunker"
	"github.com/vidchat-dev/vidchat-cli/internal/core/domain"
	"github.com/vidchat-dev/vidchat-cli/internal/core/ports/driven"
	"github.com/vidchat-dev/vidchat-cli/internal/core/ports/driving"
	"github.com/vidchat-dev/vidchat-cli/internal/logger"
	"github.com/vidchat-dev/vidchat-cli/internal/vecindex"
)

// embedBatchSize bounds how many chunk texts are sent to the embedding
// gateway per request. Providers cap request body sizes well below what a
// long transcript can produce in one call.
const embedBatchSize = 64

// Ensure Assistant implements the interface.
var _ driving.AssistantService = (*Assistant)(nil)

// Assistant is the driving-port implementation of the transcript Q&A
// pipeline. Ingest builds a fresh session from raw transcript text;
// Persist and Restore move a session's index through the configured store.
type Assistant struct {
	embedder driven.EmbeddingService
	llm      driven.LLMService
	store    driven.IndexStore
	splitter *chunker.Splitter
	opts     domain.PipelineOptions
	limiter  *rate.Limiter

	// ingestMu serializes ingestion. Embedding a large transcript is the
	// expensive phase and concurrent ingests would only contend for the
	// same gateway quota.
	ingestMu sync.Mutex
}

// NewAssistant validates the pipeline options and wires the assistant.
// The store may be nil when persistence is not configured; Persist and
// Restore then fail with domain.ErrInvalidConfig.
func NewAssistant(embedder driven.EmbeddingService, llm driven.LLMService, store driven.IndexStore, opts domain.PipelineOptions) (*Assistant, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	splitter, err := chunker.New(opts.ChunkSize, opts.ChunkOverlap)
	if err != nil {
		return nil, err
	}
	return &Assistant{
		embedder: embedder,
		llm:      llm,
		store:    store,
		splitter: splitter,
		opts:     opts,
		limiter:  rate.NewLimiter(rate.Limit(opts.EmbedRequestsPerSecond), 1),
	}, nil
}

// Ingest splits the transcript, embeds every chunk and returns a ready
// session. The transcript must contain non-whitespace text. On any
// embedding failure no partial session is produced.
func (a *Assistant) Ingest(ctx context.Context, transcript string) (driving.Session, error) {
	a.ingestMu.Lock()
	defer a.ingestMu.Unlock()

	logger.Section("Ingest")

	if strings.TrimSpace(transcript) == "" {
		return nil, domain.ErrEmptyTranscript
	}

	chunks := a.splitter.Split(transcript)
	logger.Info("split transcript into %d chunks (size=%d, overlap=%d)",
		len(chunks), a.splitter.ChunkSize(), a.splitter.Overlap())

	vectors, err := a.embedChunks(ctx, chunks)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.IndexEntry, len(chunks))
	for i, chunk := range chunks {
		entries[i] = domain.IndexEntry{Vector: vectors[i], Chunk: chunk}
	}

	index, err := vecindex.Build(entries, a.embedder.ModelName())
	if err != nil {
		return nil, fmt.Errorf("build index: %w", err)
	}

	session := newSession(index, a.embedder, a.llm, a.opts)
	logger.Info("session %s ready: %d chunks, model %s", session.ID(), index.Len(), index.ModelID())
	return session, nil
}

// embedChunks embeds chunk texts in fixed-size batches, pacing requests
// with the configured limiter. A count mismatch from the gateway is
// treated as a gateway failure, never padded or truncated.
func (a *Assistant) embedChunks(ctx context.Context, chunks []domain.Chunk) ([][]float32, error) {
	vectors := make([][]float32, 0, len(chunks))
	for start := 0; start < len(chunks); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}

		if err := a.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}

		texts := make([]string, 0, end-start)
		for _, chunk := range chunks[start:end] {
			texts = append(texts, chunk.Text)
		}

		batch, err := a.embedder.EmbedDocuments(ctx, texts)
		if err != nil {
			return nil, fmt.Errorf("embed chunks %d-%d: %w", start, end-1, err)
		}
		if len(batch) != len(texts) {
			return nil, fmt.Errorf("embed chunks %d-%d: got %d vectors for %d texts: %w",
				start, end-1, len(batch), len(texts), domain.ErrGatewayUnavailable)
		}
		logger.Debug("embedded batch %d-%d", start, end-1)
		vectors = append(vectors, batch...)
	}
	return vectors, nil
}

// Persist saves the session's index through the configured store so a
// later Restore can skip re-embedding the transcript.
func (a *Assistant) Persist(ctx context.Context, session driving.Session) error {
	if a.store == nil {
		return fmt.Errorf("no index store configured: %w", domain.ErrInvalidConfig)
	}
	snapshot := session.Snapshot()
	if err := a.store.Save(ctx, snapshot); err != nil {
		return fmt.Errorf("save index: %w", err)
	}
	logger.Info("persisted index: %d entries, model %s", len(snapshot.Entries), snapshot.ModelID)
	return nil
}

// Restore loads the persisted index and rebuilds a session over it. The
// stored index must have been produced by the embedding model currently
// configured; query vectors from a different model are not comparable to
// the stored document vectors even when the dimensions happen to agree.
func (a *Assistant) Restore(ctx context.Context) (driving.Session, error) {
	if a.store == nil {
		return nil, fmt.Errorf("no index store configured: %w", domain.ErrInvalidConfig)
	}

	snapshot, err := a.store.Load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyIndex) {
			return nil, err
		}
		return nil, fmt.Errorf("load index: %w", err)
	}

	if snapshot.ModelID != a.embedder.ModelName() {
		return nil, fmt.Errorf("stored index was built with model %q but %q is configured: %w",
			snapshot.ModelID, a.embedder.ModelName(), domain.ErrDimensionMismatch)
	}

	index, err := vecindex.FromSnapshot(snapshot)
	if err != nil {
		return nil, fmt.Errorf("rebuild index: %w", err)
	}

	session := newSession(index, a.embedder, a.llm, a.opts)
	logger.Info("restored session %s: %d chunks, model %s", session.ID(), index.Len(), index.ModelID())
	return session, nil
}
