package driving

import (
	"context"

	"github.com/mentorlab/tutor-cli/internal/core/domain"
)

// Indexer is the shared contract of all modality indexers.
// One implementation exists per modality (text, pdf, image, video);
// the ingestion router selects one via a static extension table.
type Indexer interface {
	// Modality identifies the indexer.
	Modality() domain.Modality

	// IndexFile extracts, chunks, embeds and stores the file's content.
	// It returns false - never an error - when the file is missing, has
	// an unsupported extension for this indexer, or yields no usable
	// content. On success it appends one or more documents to the store.
	IndexFile(ctx context.Context, path string) bool

	// Search embeds the query and ranks every stored chunk by cosine
	// similarity. Results below minSimilarity are discarded; at most
	// topK are returned, ordered by descending similarity with ties
	// broken by insertion order. An empty store yields an empty slice.
	// Embedding failures propagate to the caller.
	Search(ctx context.Context, query string, topK int, minSimilarity float64) ([]domain.SearchResult, error)

	// Stats returns read-only aggregates over the store.
	Stats() domain.IndexStats
}
