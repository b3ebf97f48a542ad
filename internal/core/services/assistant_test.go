package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidchat-dev/vidchat-cli/internal/core/domain"
)

func testOptions() domain.PipelineOptions {
	opts := domain.DefaultPipelineOptions()
	opts.EmbedRequestsPerSecond = 1000 // no pacing in tests
	return opts
}

func TestNewAssistant_InvalidOptions(t *testing.T) {
	opts := testOptions()
	opts.ChunkOverlap = opts.ChunkSize

	_, err := NewAssistant(newStubEmbedder(), newStubLLM("ok"), nil, opts)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestAssistant_Ingest(t *testing.T) {
	embedder := newStubEmbedder()
	assistant, err := NewAssistant(embedder, newStubLLM("ok"), nil, testOptions())
	require.NoError(t, err)

	session, err := assistant.Ingest(context.Background(), "A cat sat on the mat and watched a bird.")
	require.NoError(t, err)

	assert.NotEmpty(t, session.ID())
	assert.Equal(t, "stub-embed-v1", session.ModelID())
	assert.Equal(t, 1, session.ChunkCount())
	require.Len(t, embedder.docCalls, 1)
}

func TestAssistant_Ingest_EmptyTranscript(t *testing.T) {
	assistant, err := NewAssistant(newStubEmbedder(), newStubLLM("ok"), nil, testOptions())
	require.NoError(t, err)

	for _, transcript := range []string{"", "   ", "\n\t \n"} {
		_, err := assistant.Ingest(context.Background(), transcript)
		assert.ErrorIs(t, err, domain.ErrEmptyTranscript, "transcript %q", transcript)
	}
}

func TestAssistant_Ingest_BatchFailurePropagates(t *testing.T) {
	gatewayErr := fmt.Errorf("embed request: %w", domain.ErrGatewayUnavailable)

	embedder := newStubEmbedder()
	calls := 0
	embedder.docsFn = func(_ context.Context, texts []string) ([][]float32, error) {
		calls++
		if calls >= 2 {
			return nil, gatewayErr
		}
		vectors := make([][]float32, len(texts))
		for i, text := range texts {
			vectors[i] = featureVector(text)
		}
		return vectors, nil
	}

	opts := testOptions()
	opts.ChunkSize = 10
	opts.ChunkOverlap = 0
	assistant, err := NewAssistant(embedder, newStubLLM("ok"), nil, opts)
	require.NoError(t, err)

	// 700 runes at size 10 makes 70 chunks, i.e. two embedding batches.
	transcript := strings.Repeat("plenty of cats here ", 35)
	_, err = assistant.Ingest(context.Background(), transcript)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrGatewayUnavailable)
	assert.Equal(t, 2, calls)
}

func TestAssistant_Ingest_VectorCountMismatch(t *testing.T) {
	embedder := newStubEmbedder()
	embedder.docsFn = func(_ context.Context, _ []string) ([][]float32, error) {
		// One vector regardless of how many texts were sent.
		return [][]float32{{1, 0, 0}}, nil
	}

	opts := testOptions()
	opts.ChunkSize = 10
	opts.ChunkOverlap = 0
	assistant, err := NewAssistant(embedder, newStubLLM("ok"), nil, opts)
	require.NoError(t, err)

	_, err = assistant.Ingest(context.Background(), "a transcript long enough for several chunks")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrGatewayUnavailable)
}

func TestAssistant_PersistRestore(t *testing.T) {
	embedder := newStubEmbedder()
	store := &memStore{}
	assistant, err := NewAssistant(embedder, newStubLLM("the cat sat"), store, testOptions())
	require.NoError(t, err)

	ctx := context.Background()
	session, err := assistant.Ingest(ctx, "A cat sat. A dog ran. A bird flew over the garden wall.")
	require.NoError(t, err)
	require.NoError(t, assistant.Persist(ctx, session))

	restored, err := assistant.Restore(ctx)
	require.NoError(t, err)

	assert.NotEqual(t, session.ID(), restored.ID())
	assert.Equal(t, session.ModelID(), restored.ModelID())
	assert.Equal(t, session.ChunkCount(), restored.ChunkCount())

	chunks, err := restored.Retrieve(ctx, "what did the cat do?")
	require.NoError(t, err)
	require.NotEmpty(t, chunks)
	assert.Contains(t, chunks[0].Text, "cat")
}

func TestAssistant_Restore_NothingPersisted(t *testing.T) {
	assistant, err := NewAssistant(newStubEmbedder(), newStubLLM("ok"), &memStore{}, testOptions())
	require.NoError(t, err)

	_, err = assistant.Restore(context.Background())
	assert.ErrorIs(t, err, domain.ErrEmptyIndex)
}

func TestAssistant_Restore_ModelMismatch(t *testing.T) {
	store := &memStore{}
	ctx := context.Background()

	first := newStubEmbedder()
	assistant, err := NewAssistant(first, newStubLLM("ok"), store, testOptions())
	require.NoError(t, err)
	session, err := assistant.Ingest(ctx, "A cat sat on the mat.")
	require.NoError(t, err)
	require.NoError(t, assistant.Persist(ctx, session))

	second := newStubEmbedder()
	second.model = "stub-embed-v2"
	other, err := NewAssistant(second, newStubLLM("ok"), store, testOptions())
	require.NoError(t, err)

	_, err = other.Restore(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDimensionMismatch)
	assert.Contains(t, err.Error(), "stub-embed-v1")
	assert.Contains(t, err.Error(), "stub-embed-v2")
}

func TestAssistant_PersistRestore_NoStore(t *testing.T) {
	assistant, err := NewAssistant(newStubEmbedder(), newStubLLM("ok"), nil, testOptions())
	require.NoError(t, err)

	ctx := context.Background()
	session, err := assistant.Ingest(ctx, "A cat sat on the mat.")
	require.NoError(t, err)

	assert.ErrorIs(t, assistant.Persist(ctx, session), domain.ErrInvalidConfig)
	_, err = assistant.Restore(ctx)
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestAssistant_Persist_StoreFailure(t *testing.T) {
	store := &memStore{saveErr: errors.New("disk full")}
	assistant, err := NewAssistant(newStubEmbedder(), newStubLLM("ok"), store, testOptions())
	require.NoError(t, err)

	ctx := context.Background()
	session, err := assistant.Ingest(ctx, "A cat sat on the mat.")
	require.NoError(t, err)

	err = assistant.Persist(ctx, session)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}
