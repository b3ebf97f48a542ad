package services

import (
	"context"
	"strings"
	"sync"

	"github.com/vidchat-dev/vidchat-cli/internal/core/domain"
	"github.com/vidchat-dev/vidchat-cli/internal/core/ports/driven"
)

// stubEmbedder is a deterministic in-process embedding gateway. By default
// it maps text to a 3-dimensional vector counting a few animal words, which
// is enough signal for retrieval assertions without any network calls.
type stubEmbedder struct {
	mu sync.Mutex

	model   string
	dims    int
	docsFn  func(ctx context.Context, texts []string) ([][]float32, error)
	queryFn func(ctx context.Context, text string) ([]float32, error)

	docCalls   [][]string
	queryCalls []string
}

func newStubEmbedder() *stubEmbedder {
	return &stubEmbedder{model: "stub-embed-v1", dims: 3}
}

func featureVector(text string) []float32 {
	lower := strings.ToLower(text)
	return []float32{
		float32(strings.Count(lower, "cat")),
		float32(strings.Count(lower, "dog")),
		float32(strings.Count(lower, "bird")),
	}
}

func (s *stubEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	s.mu.Lock()
	s.docCalls = append(s.docCalls, append([]string(nil), texts...))
	s.mu.Unlock()

	if s.docsFn != nil {
		return s.docsFn(ctx, texts)
	}
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vectors[i] = featureVector(text)
	}
	return vectors, nil
}

func (s *stubEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	s.mu.Lock()
	s.queryCalls = append(s.queryCalls, text)
	s.mu.Unlock()

	if s.queryFn != nil {
		return s.queryFn(ctx, text)
	}
	return featureVector(text), nil
}

func (s *stubEmbedder) Dimensions() int            { return s.dims }
func (s *stubEmbedder) ModelName() string          { return s.model }
func (s *stubEmbedder) Ping(context.Context) error { return nil }
func (s *stubEmbedder) Close() error               { return nil }

// stubLLM records the prompts it receives and answers with a canned
// response.
type stubLLM struct {
	mu sync.Mutex

	model      string
	response   string
	generateFn func(ctx context.Context, prompt string) (string, error)

	prompts []string
}

func newStubLLM(response string) *stubLLM {
	return &stubLLM{model: "stub-llm-v1", response: response}
}

func (s *stubLLM) Generate(ctx context.Context, prompt string, _ driven.GenerateOptions) (string, error) {
	s.mu.Lock()
	s.prompts = append(s.prompts, prompt)
	s.mu.Unlock()

	if s.generateFn != nil {
		return s.generateFn(ctx, prompt)
	}
	return s.response, nil
}

func (s *stubLLM) ModelName() string          { return s.model }
func (s *stubLLM) Ping(context.Context) error { return nil }
func (s *stubLLM) Close() error               { return nil }

func (s *stubLLM) lastPrompt() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.prompts) == 0 {
		return ""
	}
	return s.prompts[len(s.prompts)-1]
}

// memStore is an in-memory IndexStore.
type memStore struct {
	mu       sync.Mutex
	snapshot *domain.IndexSnapshot
	saveErr  error
}

func (m *memStore) Save(_ context.Context, snapshot domain.IndexSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.snapshot = &snapshot
	return nil
}

func (m *memStore) Load(context.Context) (domain.IndexSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.snapshot == nil {
		return domain.IndexSnapshot{}, domain.ErrEmptyIndex
	}
	return *m.snapshot, nil
}

func (m *memStore) Close() error { return nil }
