// Package domain contains the core types of the transcript answering
// pipeline: chunks, retrieval results, index snapshots, pipeline options
// and the error taxonomy. It has no dependencies outside the standard
// library.
package domain
