package inference

import (
	"context"
	"fmt"
	"log"

	"ai-tripmate-be/pkg/agent"
)

// Source identifies which path produced an inference result.
type Source string

const (
	SourceAgent  Source = "agent"
	SourceDirect Source = "direct_backend"
)

// Result is the normalized outcome of an inference attempt. Err is set only
// when both paths failed; Text then carries the human-readable message the
// chat surface returns instead of a hard failure.
type Result struct {
	Text   string
	Source Source
	Err    error
}

// Router tries the tool-augmented agent first and falls back to the raw
// backend on any agent failure. It never returns an error to the caller.
type Router struct {
	agent   *agent.Agent
	backend Backend
	logger  *log.Logger
}

func NewRouter(agent *agent.Agent, backend Backend, logger *log.Logger) *Router {
	return &Router{
		agent:   agent,
		backend: backend,
		logger:  logger,
	}
}

// Infer runs the two-step pipeline with the augmented prompt. The original
// prompt is kept for logging so degraded answers can be traced back.
func (r *Router) Infer(ctx context.Context, prompt, augmentedPrompt string) Result {
	answer, agentErr := r.agent.Answer(ctx, augmentedPrompt)
	if agentErr == nil {
		return Result{Text: answer, Source: SourceAgent}
	}
	r.logger.Printf("[ROUTER] Agent failed, falling back to direct backend: %v", agentErr)

	raw, backendErr := r.backend.Complete(ctx, augmentedPrompt)
	if backendErr == nil {
		return Result{Text: Normalize(raw), Source: SourceDirect}
	}
	r.logger.Printf("[ROUTER] Direct backend failed for prompt %q: %v", truncate(prompt, 80), backendErr)

	return Result{
		Text:   fmt.Sprintf("Inference error: %v", backendErr),
		Source: SourceDirect,
		Err:    backendErr,
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
