package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/vidchat-dev/vidchat-cli/internal/core/ports/driven"
	"github.com/vidchat-dev/vidchat-cli/internal/logger"
)

// answerPrompt is the fixed instruction template. It binds exactly two
// slots, context then question, and directs the model to answer only from
// the supplied transcript context and to decline when it is insufficient.
// This is a prompt-level contract: nothing enforces it at runtime and the
// model may still answer from elsewhere.
const answerPrompt = `You are a helpful assistant.
Answer ONLY from the provided transcript context.
If the context is insufficient, just say you don't know.

%s
Question: %s
`

// contextSeparator visibly delimits retrieved chunks inside the context
// block.
const contextSeparator = "\n\n"

// Composer turns a question into a grounded answer: retrieve chunks,
// format them into a context block, render the prompt, invoke the language
// model, return the plain answer string.
type Composer struct {
	retriever   *Retriever
	llm         driven.LLMService
	temperature float64
}

// NewComposer creates a composer over the given retriever and model.
func NewComposer(retriever *Retriever, llm driven.LLMService, temperature float64) *Composer {
	return &Composer{retriever: retriever, llm: llm, temperature: temperature}
}

// Answer generates an answer grounded in retrieved transcript chunks.
// Retrieval failures propagate as precondition errors; generation failures
// propagate as domain.ErrGenerationFailed. No answer is ever fabricated on
// failure.
func (c *Composer) Answer(ctx context.Context, question string) (string, error) {
	contextBlock, err := c.buildContext(ctx, question)
	if err != nil {
		return "", err
	}

	prompt := fmt.Sprintf(answerPrompt, contextBlock, question)
	logger.Debug("Answer: prompt is %d characters, temperature %g", len(prompt), c.temperature)

	raw, err := c.llm.Generate(ctx, prompt, driven.GenerateOptions{Temperature: c.temperature})
	if err != nil {
		return "", fmt.Errorf("generate answer: %w", err)
	}
	return strings.TrimSpace(raw), nil
}

// DebugContext returns the context block Answer would send for the same
// question, without invoking the model. It shares buildContext with Answer
// so what is shown never drifts from what is used.
func (c *Composer) DebugContext(ctx context.Context, question string) (string, error) {
	return c.buildContext(ctx, question)
}

// buildContext retrieves chunks and joins their text, in retrieval order,
// with the separator. The block contains only retrieved chunk text; no
// other knowledge is injected at this stage.
func (c *Composer) buildContext(ctx context.Context, question string) (string, error) {
	chunks, err := c.retriever.Retrieve(ctx, question)
	if err != nil {
		return "", fmt.Errorf("retrieve context: %w", err)
	}

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}
	return strings.Join(texts, contextSeparator), nil
}
