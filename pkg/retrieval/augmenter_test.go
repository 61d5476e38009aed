package retrieval

import (
	"errors"
	"io"
	"log"
	"strings"
	"testing"

	"ai-tripmate-be/pkg/embedding"
)

type fakeEmbedder struct {
	vector []float32
	err    error
}

func (f *fakeEmbedder) Generate(text, taskType string) (*embedding.EmbeddingResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: f.vector},
	}, nil
}

func (f *fakeEmbedder) GenerateBatch(texts []string, taskType string) ([][]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = f.vector
	}
	return out, nil
}

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestAugmentPassThroughOnEmptyIndex(t *testing.T) {
	a := NewAugmenter(&fakeEmbedder{vector: []float32{1, 0}}, NewIndex(), 3, discardLogger())

	query := "where should I go in June?"
	if got := a.Augment(query); got != query {
		t.Errorf("Augment on empty index = %q, want pass-through", got)
	}
}

func TestAugmentPassThroughOnEmbedderError(t *testing.T) {
	idx := NewIndex()
	idx.Rebuild([]string{"chunk"}, [][]float32{{1, 0}})

	a := NewAugmenter(&fakeEmbedder{err: errors.New("backend down")}, idx, 3, discardLogger())

	query := "anything"
	if got := a.Augment(query); got != query {
		t.Errorf("Augment with failing embedder = %q, want pass-through", got)
	}
}

func TestAugmentBuildsStructuredPrompt(t *testing.T) {
	idx := NewIndex()
	idx.Rebuild(
		[]string{"Bali dry season runs April to October.", "Tokyo metro closes at midnight."},
		[][]float32{{1, 0}, {0, 1}},
	)

	a := NewAugmenter(&fakeEmbedder{vector: []float32{1, 0.1}}, idx, 1, discardLogger())

	got := a.Augment("best time for Bali?")
	if !strings.Contains(got, "<relevant_info>") || !strings.Contains(got, "</relevant_info>") {
		t.Errorf("prompt missing relevant_info block:\n%s", got)
	}
	if !strings.Contains(got, "Bali dry season runs April to October.") {
		t.Errorf("prompt missing nearest chunk:\n%s", got)
	}
	if strings.Contains(got, "Tokyo metro") {
		t.Errorf("prompt leaked chunk beyond topK:\n%s", got)
	}
	if !strings.Contains(got, "<user_question>\nbest time for Bali?\n</user_question>") {
		t.Errorf("prompt missing user question block:\n%s", got)
	}
}

func TestNewAugmenterDefaultsTopK(t *testing.T) {
	idx := NewIndex()
	idx.Rebuild(
		[]string{"a", "b", "c", "d", "e", "f", "g"},
		[][]float32{{1}, {1}, {1}, {1}, {1}, {1}, {1}},
	)

	a := NewAugmenter(&fakeEmbedder{vector: []float32{1}}, idx, 0, discardLogger())

	got := a.Augment("q")
	// Default cap is 5: five chunk lines inside the block.
	block := got[strings.Index(got, "<relevant_info>"):strings.Index(got, "</relevant_info>")]
	if n := strings.Count(block, "\n") - 1; n != 5 {
		t.Errorf("default topK injected %d chunks, want 5", n)
	}
}
