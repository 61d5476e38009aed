package retrieval

import (
	"fmt"
	"math"
	"sort"
	"sync"
	"sync/atomic"
)

// Chunk is the unit of retrieval: a bounded fragment of ingested text and
// its embedding. Chunks are immutable once a generation is published.
type Chunk struct {
	ID        int
	Text      string
	Embedding []float32
}

// generation is one complete, atomically published version of the index.
type generation struct {
	chunks    []Chunk
	dimension int
	number    uint64
}

// Index holds the single live generation of chunks and answers
// nearest-neighbor queries against it. Rebuild replaces the whole
// generation in one pointer swap, so readers never observe a half-built
// state. Queries on an empty or never-built index return nothing.
type Index struct {
	current atomic.Pointer[generation]

	mu      sync.Mutex // serializes Rebuild
	counter uint64
}

func NewIndex() *Index {
	return &Index{}
}

// Rebuild replaces the previous generation with a new one built from the
// given chunk texts and embeddings. It is all-or-nothing: on error the prior
// generation keeps serving. Returns the new generation number.
func (idx *Index) Rebuild(texts []string, embeddings [][]float32) (uint64, error) {
	if len(texts) != len(embeddings) {
		return 0, fmt.Errorf("chunk/embedding count mismatch: %d texts, %d embeddings", len(texts), len(embeddings))
	}

	dimension := 0
	chunks := make([]Chunk, len(texts))
	for i, text := range texts {
		if len(embeddings[i]) == 0 {
			return 0, fmt.Errorf("empty embedding for chunk %d", i)
		}
		if dimension == 0 {
			dimension = len(embeddings[i])
		}
		if len(embeddings[i]) != dimension {
			return 0, fmt.Errorf("embedding dimension mismatch at chunk %d: got %d, want %d", i, len(embeddings[i]), dimension)
		}
		chunks[i] = Chunk{
			ID:        i,
			Text:      text,
			Embedding: embeddings[i],
		}
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.counter++
	next := &generation{
		chunks:    chunks,
		dimension: dimension,
		number:    idx.counter,
	}
	idx.current.Store(next)

	return next.number, nil
}

// Query returns up to k chunk texts ranked by ascending cosine distance to
// the given embedding, ties broken by ingestion order. It never errors:
// an absent or empty index, k <= 0, or a dimension mismatch all yield an
// empty result.
func (idx *Index) Query(embedding []float32, k int) []string {
	gen := idx.current.Load()
	if gen == nil || len(gen.chunks) == 0 || k <= 0 {
		return nil
	}
	if len(embedding) != gen.dimension {
		return nil
	}

	type scored struct {
		chunk    *Chunk
		distance float64
	}

	ranked := make([]scored, len(gen.chunks))
	for i := range gen.chunks {
		ranked[i] = scored{
			chunk:    &gen.chunks[i],
			distance: cosineDistance(embedding, gen.chunks[i].Embedding),
		}
	}

	// Stable keeps ingestion order for equal distances.
	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].distance < ranked[b].distance
	})

	if k > len(ranked) {
		k = len(ranked)
	}

	texts := make([]string, k)
	for i := 0; i < k; i++ {
		texts[i] = ranked[i].chunk.Text
	}
	return texts
}

// Size returns the chunk count of the live generation.
func (idx *Index) Size() int {
	gen := idx.current.Load()
	if gen == nil {
		return 0
	}
	return len(gen.chunks)
}

// Generation returns the live generation number, 0 when never built.
func (idx *Index) Generation() uint64 {
	gen := idx.current.Load()
	if gen == nil {
		return 0
	}
	return gen.number
}

// cosineDistance is 1 - cosine similarity. Zero vectors are treated as
// maximally distant.
func cosineDistance(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 1
	}
	return 1 - dot/(math.Sqrt(normA)*math.Sqrt(normB))
}
