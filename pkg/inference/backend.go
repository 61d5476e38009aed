package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Backend is a raw model endpoint. Unlike llm.LLMProvider it returns the
// unparsed response body: the router normalizes divergent shapes itself via
// the extraction strategies.
type Backend interface {
	Complete(ctx context.Context, prompt string) (json.RawMessage, error)
}

// GeminiBackend calls the generateContent endpoint directly.
type GeminiBackend struct {
	APIURL string
	APIKey string
	Client *http.Client
}

func NewGeminiBackend(apiURL, apiKey string) *GeminiBackend {
	if apiURL == "" {
		apiURL = "https://generativelanguage.googleapis.com/v1beta/models/gemini-pro:generateContent"
	}
	return &GeminiBackend{
		APIURL: apiURL,
		APIKey: apiKey,
		Client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (b *GeminiBackend) Complete(ctx context.Context, prompt string) (json.RawMessage, error) {
	payload := map[string]any{
		"contents": []map[string]any{
			{"parts": []map[string]string{{"text": prompt}}},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s?key=%s", b.APIURL, b.APIKey)
	return doPost(ctx, b.Client, url, body)
}

// OllamaBackend calls the non-chat generate endpoint.
type OllamaBackend struct {
	BaseURL string
	Model   string
	Client  *http.Client
}

func NewOllamaBackend(baseURL, model string) *OllamaBackend {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	return &OllamaBackend{
		BaseURL: baseURL,
		Model:   model,
		Client:  &http.Client{Timeout: 120 * time.Second},
	}
}

func (b *OllamaBackend) Complete(ctx context.Context, prompt string) (json.RawMessage, error) {
	payload := map[string]any{
		"model":  b.Model,
		"prompt": prompt,
		"stream": false,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return doPost(ctx, b.Client, b.BaseURL+"/api/generate", body)
}

func doPost(ctx context.Context, client *http.Client, url string, body []byte) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend request failed: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("backend error: status %d, body: %s", resp.StatusCode, string(respBytes))
	}

	return respBytes, nil
}

// NewBackend selects the direct backend by the configured provider name.
func NewBackend(providerType, model, baseURL, apiURL, apiKey string) (Backend, error) {
	switch providerType {
	case "ollama":
		return NewOllamaBackend(baseURL, model), nil
	case "gemini":
		return NewGeminiBackend(apiURL, apiKey), nil
	default:
		return nil, fmt.Errorf("unsupported backend provider: %s", providerType)
	}
}
