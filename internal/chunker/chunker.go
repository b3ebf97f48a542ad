// Package chunker provides fixed-size text chunking with overlap.
package chunker

import (
	"fmt"

	"github.com/vidchat-dev/vidchat-cli/internal/core/domain"
)

// Splitter produces overlapping, size-bounded windows over transcript text.
// Windows advance by chunkSize-overlap runes, so the end of chunk n and the
// start of chunk n+1 share exactly overlap runes; the final chunk may be
// shorter. Split is a pure function of its input.
type Splitter struct {
	chunkSize int
	overlap   int
}

// New creates a splitter. An overlap that is not strictly smaller than the
// chunk size would never advance the window, so it is rejected here rather
// than looping forever at split time.
func New(chunkSize, overlap int) (*Splitter, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("%w: chunk size must be positive, got %d", domain.ErrInvalidConfig, chunkSize)
	}
	if overlap < 0 {
		return nil, fmt.Errorf("%w: chunk overlap must be non-negative, got %d", domain.ErrInvalidConfig, overlap)
	}
	if overlap >= chunkSize {
		return nil, fmt.Errorf("%w: chunk overlap %d must be smaller than chunk size %d",
			domain.ErrInvalidConfig, overlap, chunkSize)
	}
	return &Splitter{chunkSize: chunkSize, overlap: overlap}, nil
}

// ChunkSize returns the maximum chunk length in runes.
func (s *Splitter) ChunkSize() int { return s.chunkSize }

// Overlap returns the number of runes shared between consecutive chunks.
func (s *Splitter) Overlap() int { return s.overlap }

// Split divides text into chunks. Empty text yields no chunks.
// Sizes are measured in runes so multi-byte text never splits inside a
// code point.
func (s *Splitter) Split(text string) []domain.Chunk {
	if text == "" {
		return nil
	}

	runes := []rune(text)
	step := s.chunkSize - s.overlap

	chunks := make([]domain.Chunk, 0, len(runes)/step+1)
	position := 0

	for start := 0; start < len(runes); start += step {
		end := start + s.chunkSize
		if end > len(runes) {
			end = len(runes)
		}

		chunks = append(chunks, domain.Chunk{
			Text:     string(runes[start:end]),
			Position: position,
		})
		position++

		if end == len(runes) {
			break
		}
	}

	return chunks
}
