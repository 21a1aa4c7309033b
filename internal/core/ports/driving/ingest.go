package driving

import (
	"context"

	"github.com/mentorlab/tutor-cli/internal/core/domain"
)

// Ingestor routes files to modality indexers.
type Ingestor interface {
	// IndexFile routes one file by extension and records the outcome.
	IndexFile(ctx context.Context, path string) domain.FileStatus

	// IndexAll indexes files sequentially with per-file isolation:
	// one file's failure never aborts the rest.
	IndexAll(ctx context.Context, paths []string) []domain.FileStatus

	// Watch indexes files as they appear in dir until ctx is cancelled.
	Watch(ctx context.Context, dir string) error

	// Stats returns the per-modality store aggregates.
	Stats() []domain.IndexStats
}

// Retriever aggregates search results across all indexers.
type Retriever interface {
	// Retrieve fans the query out to every indexer, adds one secondary
	// query per detected topic, deduplicates, ranks and truncates.
	Retrieve(ctx context.Context, query string, topics []string) []domain.RankedResult
}
