package mcp

import (
	"context"

	"github.com/vidchat-dev/vidchat-cli/internal/core/domain"
)

// mockSession is a mock implementation of driving.Session.
type mockSession struct {
	answer string
	chunks []domain.Chunk
	err    error
}

func (m *mockSession) ID() string      { return "mock-session" }
func (m *mockSession) ModelID() string { return "mock-model" }
func (m *mockSession) ChunkCount() int { return len(m.chunks) }

func (m *mockSession) Retrieve(_ context.Context, _ string) ([]domain.Chunk, error) {
	return m.chunks, m.err
}

func (m *mockSession) Answer(_ context.Context, _ string) (string, error) {
	return m.answer, m.err
}

func (m *mockSession) DebugContext(_ context.Context, _ string) (string, error) {
	return "", m.err
}

func (m *mockSession) Snapshot() domain.IndexSnapshot {
	return domain.IndexSnapshot{}
}
