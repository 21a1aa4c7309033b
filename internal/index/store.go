package index

import (
	"math"
	"sort"
	"sync"

	"github.com/mentorlab/tutor-cli/internal/core/domain"
)

// Entry is one indexed chunk with its embedding.
type Entry struct {
	ID        string
	Content   string
	Embedding []float32
	Metadata  map[string]any
}

// Store is an append-only in-memory vector index. Embeddings are
// L2-normalised on insert so similarity reduces to a dot product.
type Store struct {
	mu      sync.RWMutex
	entries []Entry
	sources map[string]int
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{sources: make(map[string]int)}
}

// Add inserts an entry. The embedding is normalised in place; a zero
// vector is stored as-is and never matches anything.
func (s *Store) Add(entry Entry) {
	normalise(entry.Embedding)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	if src, ok := entry.Metadata["source"].(string); ok && src != "" {
		s.sources[src]++
	}
}

// Search returns up to topK entries ranked by cosine similarity to the
// query embedding, dropping hits below minSimilarity. An empty store
// yields an empty slice. Equal similarities keep insertion order.
func (s *Store) Search(query []float32, topK int, minSimilarity float64) []domain.SearchResult {
	return s.SearchWhere(query, topK, minSimilarity, nil)
}

// SearchWhere is Search restricted to entries accepted by keep. A nil
// keep accepts everything.
func (s *Store) SearchWhere(query []float32, topK int, minSimilarity float64, keep func(Entry) bool) []domain.SearchResult {
	queryCopy := append([]float32(nil), query...)
	normalise(queryCopy)

	s.mu.RLock()
	defer s.mu.RUnlock()

	type scored struct {
		idx        int
		similarity float64
	}
	var hits []scored
	for i, entry := range s.entries {
		if keep != nil && !keep(entry) {
			continue
		}
		sim := dot(queryCopy, entry.Embedding)
		if sim < minSimilarity {
			continue
		}
		hits = append(hits, scored{idx: i, similarity: sim})
	}

	sort.SliceStable(hits, func(a, b int) bool {
		return hits[a].similarity > hits[b].similarity
	})
	if topK > 0 && len(hits) > topK {
		hits = hits[:topK]
	}

	results := make([]domain.SearchResult, 0, len(hits))
	for _, h := range hits {
		entry := s.entries[h.idx]
		results = append(results, domain.SearchResult{
			Content:    entry.Content,
			Similarity: h.similarity,
			Metadata:   entry.Metadata,
		})
	}
	return results
}

// Len returns the number of stored entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Sources returns the per-source entry counts.
func (s *Store) Sources() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]int, len(s.sources))
	for src, n := range s.sources {
		out[src] = n
	}
	return out
}

// Each calls fn for every entry in insertion order. Used by the
// modality-specific secondary search surfaces.
func (s *Store) Each(fn func(Entry) bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, entry := range s.entries {
		if !fn(entry) {
			return
		}
	}
}

func normalise(v []float32) {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return
	}
	norm := float32(math.Sqrt(sum))
	for i := range v {
		v[i] /= norm
	}
}

func dot(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
