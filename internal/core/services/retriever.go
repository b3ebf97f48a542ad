package services

import (
	"context"
	"fmt"

	"github.com/vidchat-dev/vidchat-cli/internal/core/domain"
	"github.com/vidchat-dev/vidchat-cli/internal/core/ports/driven"
	"github.com/vidchat-dev/vidchat-cli/internal/logger"
	"github.com/vidchat-dev/vidchat-cli/internal/vecindex"
)

// Retriever is a thin policy layer over the vector index: fixed k,
// similarity search, question string in, ranked chunk payloads out.
type Retriever struct {
	index    *vecindex.Index
	embedder driven.EmbeddingService
	topK     int
}

// NewRetriever creates a retriever bound to one index.
func NewRetriever(index *vecindex.Index, embedder driven.EmbeddingService, topK int) *Retriever {
	return &Retriever{index: index, embedder: embedder, topK: topK}
}

// Retrieve embeds the question and returns the top-k most similar chunks,
// best first. Similarity scores are dropped at this layer.
func (r *Retriever) Retrieve(ctx context.Context, question string) ([]domain.Chunk, error) {
	logger.Debug("Retrieve: question=%q, k=%d", question, r.topK)

	vector, err := r.embedder.EmbedQuery(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embed question: %w", err)
	}
	logger.Debug("Retrieve: query embedding has %d dimensions", len(vector))

	results, err := r.index.Search(vector, r.topK)
	if err != nil {
		return nil, fmt.Errorf("search index: %w", err)
	}
	logger.Debug("Retrieve: %d chunks", len(results))

	chunks := make([]domain.Chunk, len(results))
	for i, res := range results {
		chunks[i] = res.Chunk
	}
	return chunks, nil
}
