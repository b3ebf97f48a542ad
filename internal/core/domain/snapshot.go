package domain

// IndexEntry pairs an embedding vector with its chunk payload.
// Entries are owned exclusively by the index that holds them.
type IndexEntry struct {
	// Vector is the embedding of Chunk.Text.
	Vector []float32

	// Chunk is the payload returned by similarity search.
	Chunk Chunk
}

// IndexSnapshot is the persistable form of a vector index: the embedding
// model identity, the fixed dimensionality, and the ordered entries.
// A snapshot round-trips exactly through persist and restore.
type IndexSnapshot struct {
	// ModelID identifies the embedding model that produced the vectors.
	// Restoring a snapshot into a gateway with a different model is a
	// configuration error; the identifier makes that detectable.
	ModelID string

	// Dimensions is the fixed vector length shared by all entries.
	Dimensions int

	// Entries holds the (vector, chunk) pairs in insertion order.
	Entries []IndexEntry
}
