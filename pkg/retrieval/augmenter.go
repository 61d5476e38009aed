package retrieval

import (
	"log"
	"strings"

	"ai-tripmate-be/pkg/embedding"
)

// Augmenter rewrites a user query into a structured prompt carrying the
// nearest chunks from the index. It never fails: any retrieval problem
// degrades to returning the query untouched.
type Augmenter struct {
	embeddingProvider embedding.EmbeddingProvider
	index             *Index
	topK              int
	logger            *log.Logger
}

// NewAugmenter creates an augmenter over the given index. topK caps how many
// chunks are injected; the cap is clamped to corpus size at query time.
func NewAugmenter(embeddingProvider embedding.EmbeddingProvider, index *Index, topK int, logger *log.Logger) *Augmenter {
	if topK <= 0 {
		topK = 5
	}
	return &Augmenter{
		embeddingProvider: embeddingProvider,
		index:             index,
		topK:              topK,
		logger:            logger,
	}
}

// Augment encodes the query, pulls the nearest chunks, and when any are
// found builds the retrieval prompt. Pass-through on empty index or
// encoder failure.
func (a *Augmenter) Augment(query string) string {
	if a.index.Size() == 0 {
		return query
	}

	embeddingRes, err := a.embeddingProvider.Generate(query, "RETRIEVAL_QUERY")
	if err != nil {
		a.logger.Printf("[WARN] Query embedding failed, passing prompt through: %v", err)
		return query
	}

	hits := a.index.Query(embeddingRes.Embedding.Values, a.topK)
	if len(hits) == 0 {
		return query
	}

	return buildPrompt(query, hits)
}

func buildPrompt(query string, hits []string) string {
	var prompt strings.Builder

	writeRelevantInfo(&prompt, hits)
	writeUserQuery(&prompt, query)

	return prompt.String()
}

func writeRelevantInfo(prompt *strings.Builder, hits []string) {
	prompt.WriteString("<relevant_info>\n")
	for _, hit := range hits {
		prompt.WriteString(hit)
		prompt.WriteString("\n")
	}
	prompt.WriteString("</relevant_info>\n\n")
	prompt.WriteString("Use the relevant info above when it helps answer the question. If it does not apply, answer from general knowledge.\n\n")
}

func writeUserQuery(prompt *strings.Builder, query string) {
	prompt.WriteString("<user_question>\n")
	prompt.WriteString(query)
	prompt.WriteString("\n</user_question>")
}
