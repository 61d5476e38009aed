package agent

import "context"

// Tool is a named capability the agent may invoke before falling back to the
// language model. Triggered is an explicit predicate over the prompt; Call
// produces the tool's deterministic output.
type Tool interface {
	Name() string
	Description() string
	Triggered(prompt string) bool
	Call(ctx context.Context, prompt string) (string, error)
}

// Registry holds the fixed set of tools registered at process start.
type Registry struct {
	tools []Tool
}

func NewRegistry(tools ...Tool) *Registry {
	return &Registry{tools: tools}
}

// Match returns the first tool whose trigger predicate accepts the prompt.
// Registration order is the priority order.
func (r *Registry) Match(prompt string) (Tool, bool) {
	for _, t := range r.tools {
		if t.Triggered(prompt) {
			return t, true
		}
	}
	return nil, false
}

// Tools returns the registered set, in registration order.
func (r *Registry) Tools() []Tool {
	return r.tools
}
