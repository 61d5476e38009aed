package agent

import (
	"context"
	"errors"
	"fmt"
	"log"

	"ai-tripmate-be/pkg/llm"
)

var ErrNoProvider = errors.New("agent has no llm provider")

// Agent decides per prompt: answer from a registered tool, or delegate to
// the language model for free-form completion. A single invocation either
// produces text or fails as a whole; there is no internal retry.
type Agent struct {
	registry    *Registry
	llmProvider llm.LLMProvider
	logger      *log.Logger
}

func New(registry *Registry, llmProvider llm.LLMProvider, logger *log.Logger) *Agent {
	return &Agent{
		registry:    registry,
		llmProvider: llmProvider,
		logger:      logger,
	}
}

// Answer runs the decide step: first triggered tool wins and its
// deterministic output becomes the answer; otherwise the prompt goes to the
// model unchanged.
func (a *Agent) Answer(ctx context.Context, prompt string) (string, error) {
	if tool, ok := a.registry.Match(prompt); ok {
		a.logger.Printf("[AGENT] Tool triggered: %s", tool.Name())
		out, err := tool.Call(ctx, prompt)
		if err != nil {
			return "", fmt.Errorf("tool %s failed: %w", tool.Name(), err)
		}
		return out, nil
	}

	if a.llmProvider == nil {
		return "", ErrNoProvider
	}

	out, err := a.llmProvider.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("agent completion failed: %w", err)
	}
	return out, nil
}
