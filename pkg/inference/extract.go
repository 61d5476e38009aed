package inference

import "encoding/json"

// ExtractFunc probes one known response shape for the generated text. It is
// pure: a miss returns false, never an error.
type ExtractFunc func(raw map[string]any) (string, bool)

// extractors is the priority-ordered list of known backend shapes. The first
// hit wins; callers fall back to stringifying the whole body when all miss.
var extractors = []ExtractFunc{
	extractGeminiCandidates, // gemini: candidates[0].content.parts[0].text
	extractOllamaGenerate,   // ollama /api/generate: response
	extractChatMessage,      // ollama /api/chat: message.content
	extractOpenAIChoices,    // openai compatible: choices[0].message.content
	extractResult,           // our own proxied shape: result
}

// Normalize extracts the generated text from a raw backend response,
// whatever its shape. Unparseable or unrecognized bodies come back
// stringified rather than failing.
func Normalize(raw json.RawMessage) string {
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return string(raw)
	}

	for _, extract := range extractors {
		if text, ok := extract(decoded); ok {
			return text
		}
	}

	return string(raw)
}

func extractGeminiCandidates(raw map[string]any) (string, bool) {
	candidates, ok := raw["candidates"].([]any)
	if !ok || len(candidates) == 0 {
		return "", false
	}
	first, ok := candidates[0].(map[string]any)
	if !ok {
		return "", false
	}
	content, ok := first["content"].(map[string]any)
	if !ok {
		return "", false
	}
	parts, ok := content["parts"].([]any)
	if !ok || len(parts) == 0 {
		return "", false
	}
	part, ok := parts[0].(map[string]any)
	if !ok {
		return "", false
	}
	text, ok := part["text"].(string)
	return text, ok
}

func extractOllamaGenerate(raw map[string]any) (string, bool) {
	text, ok := raw["response"].(string)
	return text, ok
}

func extractChatMessage(raw map[string]any) (string, bool) {
	message, ok := raw["message"].(map[string]any)
	if !ok {
		return "", false
	}
	text, ok := message["content"].(string)
	return text, ok
}

func extractOpenAIChoices(raw map[string]any) (string, bool) {
	choices, ok := raw["choices"].([]any)
	if !ok || len(choices) == 0 {
		return "", false
	}
	first, ok := choices[0].(map[string]any)
	if !ok {
		return "", false
	}
	message, ok := first["message"].(map[string]any)
	if !ok {
		return "", false
	}
	text, ok := message["content"].(string)
	return text, ok
}

func extractResult(raw map[string]any) (string, bool) {
	text, ok := raw["result"].(string)
	return text, ok
}
