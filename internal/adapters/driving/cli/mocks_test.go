package cli

import (
	"context"

	"github.com/vidchat-dev/vidchat-cli/internal/core/domain"
	"github.com/vidchat-dev/vidchat-cli/internal/core/ports/driving"
)

// fakeSession is a stub driving.Session for command tests.
type fakeSession struct {
	id      string
	modelID string
	chunks  int
	answer  string
	context string
	err     error
}

func (f *fakeSession) ID() string      { return f.id }
func (f *fakeSession) ModelID() string { return f.modelID }
func (f *fakeSession) ChunkCount() int { return f.chunks }

func (f *fakeSession) Retrieve(context.Context, string) ([]domain.Chunk, error) {
	return []domain.Chunk{{Text: f.context}}, f.err
}

func (f *fakeSession) Answer(context.Context, string) (string, error) {
	return f.answer, f.err
}

func (f *fakeSession) DebugContext(context.Context, string) (string, error) {
	return f.context, f.err
}

func (f *fakeSession) Snapshot() domain.IndexSnapshot { return domain.IndexSnapshot{} }

// fakeAssistant is a stub driving.AssistantService.
type fakeAssistant struct {
	session    *fakeSession
	ingestErr  error
	persistErr error
	restoreErr error

	ingested  []string
	persisted int
}

func (f *fakeAssistant) Ingest(_ context.Context, transcript string) (driving.Session, error) {
	f.ingested = append(f.ingested, transcript)
	if f.ingestErr != nil {
		return nil, f.ingestErr
	}
	return f.session, nil
}

func (f *fakeAssistant) Persist(context.Context, driving.Session) error {
	if f.persistErr != nil {
		return f.persistErr
	}
	f.persisted++
	return nil
}

func (f *fakeAssistant) Restore(context.Context) (driving.Session, error) {
	if f.restoreErr != nil {
		return nil, f.restoreErr
	}
	return f.session, nil
}

// fakeTranscripts is a stub driven.TranscriptSource.
type fakeTranscripts struct {
	texts map[string]string
	err   error
}

func (f *fakeTranscripts) Fetch(_ context.Context, id string, _ []string) (string, bool, error) {
	if f.err != nil {
		return "", false, f.err
	}
	text, ok := f.texts[id]
	return text, ok, nil
}
