// Package retry decorates the embedding and LLM gateways with bounded
// retries. Gateway hiccups (connection resets, 429s, 5xx) are the common
// failure mode of a local Ollama or a rate-limited cloud API, and a couple
// of paced retries usually ride them out.
package retry

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"github.com/vidchat-dev/vidchat-cli/internal/core/domain"
	"github.com/vidchat-dev/vidchat-cli/internal/core/ports/driven"
	"github.com/vidchat-dev/vidchat-cli/internal/logger"
)

// Default policy values.
const (
	DefaultMaxRetries = 3
	DefaultBaseDelay  = time.Second
)

// Policy controls how many times an operation is retried and how long to
// wait between attempts.
type Policy struct {
	// MaxRetries is the number of retries after the first attempt.
	MaxRetries int

	// BaseDelay scales the exponential backoff between attempts.
	BaseDelay time.Duration
}

// DefaultPolicy returns the standard retry policy.
func DefaultPolicy() Policy {
	return Policy{MaxRetries: DefaultMaxRetries, BaseDelay: DefaultBaseDelay}
}

// do runs op up to MaxRetries+1 times, backing off between attempts with
// jitter to avoid thundering herd. Only errors for which transient returns
// true are retried; everything else propagates immediately.
func (p Policy) do(ctx context.Context, name string, transient func(error) bool, op func() error) error {
	var lastErr error

	for attempt := 0; attempt <= p.MaxRetries; attempt++ {
		if attempt > 0 {
			base := time.Duration(attempt*attempt) * p.BaseDelay
			jitter := time.Duration(rand.Int64N(int64(base/2 + 1)))
			backoff := base + jitter
			logger.Warn("%s failed, retrying in %s (attempt %d/%d): %v",
				name, backoff, attempt, p.MaxRetries, lastErr)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}

		err := op()
		if err == nil {
			return nil
		}
		if !transient(err) {
			return err
		}
		lastErr = err
	}

	return lastErr
}

// transientGateway reports whether an embedding error is worth retrying.
// Context cancellation never is.
func transientGateway(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return errors.Is(err, domain.ErrGatewayUnavailable)
}

// transientGeneration reports whether an LLM error is worth retrying.
func transientGeneration(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return errors.Is(err, domain.ErrGenerationFailed)
}

// Ensure decorators implement the interfaces.
var (
	_ driven.EmbeddingService = (*Embedding)(nil)
	_ driven.LLMService       = (*LLM)(nil)
)

// Embedding wraps an EmbeddingService with the retry policy.
type Embedding struct {
	inner  driven.EmbeddingService
	policy Policy
}

// NewEmbedding decorates an embedding service.
func NewEmbedding(inner driven.EmbeddingService, policy Policy) *Embedding {
	return &Embedding{inner: inner, policy: policy}
}

// EmbedDocuments retries transient gateway failures.
func (e *Embedding) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	var vectors [][]float32
	err := e.policy.do(ctx, "embed documents", transientGateway, func() error {
		var opErr error
		vectors, opErr = e.inner.EmbedDocuments(ctx, texts)
		return opErr
	})
	return vectors, err
}

// EmbedQuery retries transient gateway failures.
func (e *Embedding) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	var vector []float32
	err := e.policy.do(ctx, "embed query", transientGateway, func() error {
		var opErr error
		vector, opErr = e.inner.EmbedQuery(ctx, text)
		return opErr
	})
	return vector, err
}

// Dimensions returns the inner service's vector size.
func (e *Embedding) Dimensions() int { return e.inner.Dimensions() }

// ModelName returns the inner service's model name.
func (e *Embedding) ModelName() string { return e.inner.ModelName() }

// Ping is not retried; a health check should report current state.
func (e *Embedding) Ping(ctx context.Context) error { return e.inner.Ping(ctx) }

// Close releases the inner service's resources.
func (e *Embedding) Close() error { return e.inner.Close() }

// LLM wraps an LLMService with the retry policy.
type LLM struct {
	inner  driven.LLMService
	policy Policy
}

// NewLLM decorates an LLM service.
func NewLLM(inner driven.LLMService, policy Policy) *LLM {
	return &LLM{inner: inner, policy: policy}
}

// Generate retries transient generation failures.
func (l *LLM) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	var answer string
	err := l.policy.do(ctx, "generate", transientGeneration, func() error {
		var opErr error
		answer, opErr = l.inner.Generate(ctx, prompt, opts)
		return opErr
	})
	return answer, err
}

// ModelName returns the inner service's model name.
func (l *LLM) ModelName() string { return l.inner.ModelName() }

// Ping is not retried; a health check should report current state.
func (l *LLM) Ping(ctx context.Context) error { return l.inner.Ping(ctx) }

// Close releases the inner service's resources.
func (l *LLM) Close() error { return l.inner.Close() }
