package tools

import (
	"context"
	"strings"
)

// CapabilitiesTool enumerates the registered tool set when the user asks
// what the assistant can do locally.
type CapabilitiesTool struct {
	describe func() []string
}

// NewCapabilitiesTool takes a closure over the registry's descriptions so
// the tool does not hold the registry that holds it.
func NewCapabilitiesTool(describe func() []string) *CapabilitiesTool {
	return &CapabilitiesTool{describe: describe}
}

func (t *CapabilitiesTool) Name() string {
	return "capabilities"
}

func (t *CapabilitiesTool) Description() string {
	return "Lists the built-in tools available to the assistant"
}

func (t *CapabilitiesTool) Triggered(prompt string) bool {
	lower := strings.ToLower(prompt)
	return strings.Contains(lower, "what tools") || strings.Contains(lower, "list your tools")
}

func (t *CapabilitiesTool) Call(ctx context.Context, prompt string) (string, error) {
	var b strings.Builder
	b.WriteString("Built-in tools:\n")
	for _, line := range t.describe() {
		b.WriteString("- ")
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String(), nil
}
