package embedding

// EmbeddingProvider defines the interface for generating text embeddings
type EmbeddingProvider interface {
	Generate(text string, taskType string) (*EmbeddingResponse, error)

	// GenerateBatch returns one vector per input, in input order. All vectors
	// share the model's fixed dimension. Implementations batch the upstream
	// call where the backend supports it.
	GenerateBatch(texts []string, taskType string) ([][]float32, error)
}
