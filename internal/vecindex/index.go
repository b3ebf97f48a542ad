// Package vecindex provides exact similarity search over an in-memory
// vector set.
//
// A single transcript yields hundreds to low thousands of chunks, so exact
// brute-force search is sufficient; the search contract (ordered top-k by
// similarity) is identical to an approximate index, which can be substituted
// later without changing callers.
package vecindex

import (
	"fmt"
	"math"
	"sort"

	"github.com/vidchat-dev/vidchat-cli/internal/core/domain"
)

// Index holds embedding vectors with their chunk payloads and supports
// top-k cosine similarity search. An index is immutable after Build
// returns, so concurrent Search calls are safe without locking.
type Index struct {
	modelID    string
	dimensions int
	entries    []domain.IndexEntry
}

// Build constructs an index from a batch of (vector, chunk) pairs.
// Construction is batch-only; ingestion is one bulk step per document.
// The index takes its own copy of the entries, and all vectors must share
// one dimensionality.
func Build(entries []domain.IndexEntry, modelID string) (*Index, error) {
	idx := &Index{modelID: modelID}

	for i, e := range entries {
		if len(e.Vector) == 0 {
			return nil, fmt.Errorf("%w: entry %d has an empty vector", domain.ErrDimensionMismatch, i)
		}
		if idx.dimensions == 0 {
			idx.dimensions = len(e.Vector)
		}
		if len(e.Vector) != idx.dimensions {
			return nil, fmt.Errorf("%w: entry %d has %d dimensions, index has %d",
				domain.ErrDimensionMismatch, i, len(e.Vector), idx.dimensions)
		}
	}

	idx.entries = copyEntries(entries)
	return idx, nil
}

// FromSnapshot reconstructs an index from a persisted snapshot, validating
// that every entry matches the recorded dimensionality.
func FromSnapshot(snapshot domain.IndexSnapshot) (*Index, error) {
	idx, err := Build(snapshot.Entries, snapshot.ModelID)
	if err != nil {
		return nil, err
	}
	if idx.Len() > 0 && idx.dimensions != snapshot.Dimensions {
		return nil, fmt.Errorf("%w: snapshot records %d dimensions but entries have %d",
			domain.ErrDimensionMismatch, snapshot.Dimensions, idx.dimensions)
	}
	idx.dimensions = snapshot.Dimensions
	return idx, nil
}

// Len returns the number of entries.
func (idx *Index) Len() int { return len(idx.entries) }

// Dimensions returns the fixed vector length. Zero for an empty index.
func (idx *Index) Dimensions() int { return idx.dimensions }

// ModelID identifies the embedding model the vectors came from.
func (idx *Index) ModelID() string { return idx.modelID }

// Search returns the k entries most similar to the query vector, by cosine
// similarity (dot product over the product of magnitudes), in descending
// order. Ties preserve insertion order. Fewer than k results are returned
// when the index holds fewer entries.
func (idx *Index) Search(query []float32, k int) ([]domain.RetrievedChunk, error) {
	if len(idx.entries) == 0 {
		return nil, domain.ErrEmptyIndex
	}
	if len(query) != idx.dimensions {
		return nil, fmt.Errorf("%w: query has %d dimensions, index has %d",
			domain.ErrDimensionMismatch, len(query), idx.dimensions)
	}
	if k <= 0 {
		return nil, fmt.Errorf("%w: k must be positive, got %d", domain.ErrInvalidConfig, k)
	}

	results := make([]domain.RetrievedChunk, len(idx.entries))
	for i, e := range idx.entries {
		results[i] = domain.RetrievedChunk{
			Chunk: e.Chunk,
			Score: cosineSimilarity(query, e.Vector),
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if k < len(results) {
		results = results[:k]
	}
	return results, nil
}

// Snapshot exports the full index state for persistence. The returned
// snapshot holds its own copy of the entries.
func (idx *Index) Snapshot() domain.IndexSnapshot {
	return domain.IndexSnapshot{
		ModelID:    idx.modelID,
		Dimensions: idx.dimensions,
		Entries:    copyEntries(idx.entries),
	}
}

// cosineSimilarity computes dot(a,b) / (|a|*|b|) in float64 to limit
// accumulation error. Zero vectors score zero.
func cosineSimilarity(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// copyEntries deep-copies entries so the index never aliases caller memory.
func copyEntries(entries []domain.IndexEntry) []domain.IndexEntry {
	out := make([]domain.IndexEntry, len(entries))
	for i, e := range entries {
		vec := make([]float32, len(e.Vector))
		copy(vec, e.Vector)
		out[i] = domain.IndexEntry{Vector: vec, Chunk: e.Chunk}
	}
	return out
}
