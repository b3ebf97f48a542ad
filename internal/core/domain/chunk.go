package domain

// Chunk is a bounded contiguous segment of transcript text sized for
// embedding. Chunks are immutable once created.
type Chunk struct {
	// Text is the chunk content.
	Text string

	// Position is the ordinal position within the source transcript.
	// Ordering is insertion order and carries no retrieval semantics;
	// retrieval ranks by similarity, not position.
	Position int
}

// RetrievedChunk pairs a chunk with its similarity score to a query.
type RetrievedChunk struct {
	// Chunk is the retrieved payload.
	Chunk Chunk

	// Score is the cosine similarity to the query vector.
	Score float64
}
