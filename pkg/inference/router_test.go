package inference

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"strings"
	"testing"

	"ai-tripmate-be/pkg/agent"
)

type fakeBackend struct {
	raw json.RawMessage
	err error
}

func (f *fakeBackend) Complete(ctx context.Context, prompt string) (json.RawMessage, error) {
	return f.raw, f.err
}

type echoTool struct{}

func (echoTool) Name() string                 { return "echo" }
func (echoTool) Description() string          { return "echoes the prompt" }
func (echoTool) Triggered(prompt string) bool { return true }
func (echoTool) Call(ctx context.Context, prompt string) (string, error) {
	return "tool says: " + prompt, nil
}

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestRouterAgentFirst(t *testing.T) {
	ag := agent.New(agent.NewRegistry(echoTool{}), nil, testLogger())
	backend := &fakeBackend{err: errors.New("must not be called")}
	r := NewRouter(ag, backend, testLogger())

	res := r.Infer(context.Background(), "hi", "hi")
	if res.Err != nil {
		t.Fatalf("Infer returned error: %v", res.Err)
	}
	if res.Source != SourceAgent {
		t.Errorf("Source = %q, want %q", res.Source, SourceAgent)
	}
	if res.Text != "tool says: hi" {
		t.Errorf("Text = %q, want tool output", res.Text)
	}
}

func TestRouterFallsBackToDirectBackend(t *testing.T) {
	// Empty registry and nil provider: the agent always fails.
	ag := agent.New(agent.NewRegistry(), nil, testLogger())
	backend := &fakeBackend{raw: json.RawMessage(`{"response":"direct answer"}`)}
	r := NewRouter(ag, backend, testLogger())

	res := r.Infer(context.Background(), "hi", "hi")
	if res.Err != nil {
		t.Fatalf("Infer returned error: %v", res.Err)
	}
	if res.Source != SourceDirect {
		t.Errorf("Source = %q, want %q", res.Source, SourceDirect)
	}
	if res.Text != "direct answer" {
		t.Errorf("Text = %q, want normalized backend text", res.Text)
	}
}

func TestRouterBothPathsFail(t *testing.T) {
	ag := agent.New(agent.NewRegistry(), nil, testLogger())
	backend := &fakeBackend{err: errors.New("connection refused")}
	r := NewRouter(ag, backend, testLogger())

	res := r.Infer(context.Background(), "hi", "hi")
	if res.Err == nil {
		t.Fatal("Err is nil, want backend error")
	}
	if !strings.Contains(res.Text, "Inference error:") || !strings.Contains(res.Text, "connection refused") {
		t.Errorf("Text = %q, want readable error message", res.Text)
	}
	if res.Source != SourceDirect {
		t.Errorf("Source = %q, want %q", res.Source, SourceDirect)
	}
}

func TestRouterPassesAugmentedPromptToBackend(t *testing.T) {
	ag := agent.New(agent.NewRegistry(), nil, testLogger())
	var gotPrompt string
	backend := backendFunc(func(ctx context.Context, prompt string) (json.RawMessage, error) {
		gotPrompt = prompt
		return json.RawMessage(`{"result":"ok"}`), nil
	})
	r := NewRouter(ag, backend, testLogger())

	r.Infer(context.Background(), "raw question", "<relevant_info>ctx</relevant_info> raw question")
	if !strings.Contains(gotPrompt, "<relevant_info>") {
		t.Errorf("backend got %q, want the augmented prompt", gotPrompt)
	}
}

type backendFunc func(ctx context.Context, prompt string) (json.RawMessage, error)

func (f backendFunc) Complete(ctx context.Context, prompt string) (json.RawMessage, error) {
	return f(ctx, prompt)
}
