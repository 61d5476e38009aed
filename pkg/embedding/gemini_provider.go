package embedding

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type GeminiProvider struct {
	ApiKey string
	Model  string
	Client *http.Client
}

func NewGeminiProvider(apiKey string) EmbeddingProvider {
	return &GeminiProvider{
		ApiKey: apiKey,
		Model:  "text-embedding-004",
		Client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (p *GeminiProvider) Generate(text string, taskType string) (*EmbeddingResponse, error) {
	geminiReq := EmbeddingRequest{
		Model: p.Model,
		Content: EmbeddingRequestContent{
			Parts: []EmbeddingRequestContentPart{
				{
					Text: text,
				},
			},
		},
		TaskType: taskType,
	}
	geminiReqJson, err := json.Marshal(geminiReq)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf(
		"https://generativelanguage.googleapis.com/v1/models/%s:embedContent",
		p.Model,
	)

	resByte, err := p.post(endpoint, geminiReqJson)
	if err != nil {
		return nil, err
	}

	var resEmbedding EmbeddingResponse
	if err := json.Unmarshal(resByte, &resEmbedding); err != nil {
		return nil, err
	}

	return &resEmbedding, nil
}

type geminiBatchRequest struct {
	Requests []EmbeddingRequest `json:"requests"`
}

type geminiBatchResponse struct {
	Embeddings []EmbeddingResponseEmbedding `json:"embeddings"`
}

// GenerateBatch uses batchEmbedContents so a whole ingestion costs one
// round trip instead of one per chunk.
func (p *GeminiProvider) GenerateBatch(texts []string, taskType string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	batchReq := geminiBatchRequest{
		Requests: make([]EmbeddingRequest, len(texts)),
	}
	for i, text := range texts {
		batchReq.Requests[i] = EmbeddingRequest{
			Model: "models/" + p.Model,
			Content: EmbeddingRequestContent{
				Parts: []EmbeddingRequestContentPart{{Text: text}},
			},
			TaskType: taskType,
		}
	}

	reqJson, err := json.Marshal(batchReq)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf(
		"https://generativelanguage.googleapis.com/v1/models/%s:batchEmbedContents",
		p.Model,
	)

	resByte, err := p.post(endpoint, reqJson)
	if err != nil {
		return nil, err
	}

	var batchRes geminiBatchResponse
	if err := json.Unmarshal(resByte, &batchRes); err != nil {
		return nil, err
	}

	if len(batchRes.Embeddings) != len(texts) {
		return nil, fmt.Errorf("gemini returned %d embeddings for %d inputs", len(batchRes.Embeddings), len(texts))
	}

	values := make([][]float32, len(batchRes.Embeddings))
	for i, e := range batchRes.Embeddings {
		values[i] = e.Values
	}
	return values, nil
}

func (p *GeminiProvider) post(endpoint string, body []byte) ([]byte, error) {
	req, err := http.NewRequest("POST", endpoint, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}

	req.Header.Set("x-goog-api-key", p.ApiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := p.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	resByte, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("error from gemini response, code %d, body %s", res.StatusCode, string(resByte))
	}

	return resByte, nil
}
