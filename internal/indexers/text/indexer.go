// Package text indexes plain text and JSON files.
package text

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/mentorlab/tutor-cli/internal/chunker"
	"github.com/mentorlab/tutor-cli/internal/core/domain"
	"github.com/mentorlab/tutor-cli/internal/core/ports/driven"
	"github.com/mentorlab/tutor-cli/internal/core/ports/driving"
	"github.com/mentorlab/tutor-cli/internal/index"
	"github.com/mentorlab/tutor-cli/internal/logger"
)

// Ensure Indexer implements the interface.
var _ driving.Indexer = (*Indexer)(nil)

// Indexer handles .txt and .json files. Text is whitespace-normalised
// and split into overlapping word chunks before embedding.
type Indexer struct {
	embedder driven.EmbeddingService
	store    *index.Store
	chunks   *chunker.Words
}

// NewIndexer creates a text indexer backed by its own store.
func NewIndexer(embedder driven.EmbeddingService) *Indexer {
	return &Indexer{
		embedder: embedder,
		store:    index.NewStore(),
		chunks:   chunker.NewWords(chunker.DefaultWordChunkSize, chunker.DefaultWordOverlap),
	}
}

// Modality identifies the indexer.
func (ix *Indexer) Modality() domain.Modality {
	return domain.ModalityText
}

// IndexFile reads, chunks and embeds the file. It returns false when
// the file is missing, has an unsupported extension, or produced no
// chunks; the store is left unchanged in every failure case.
func (ix *Indexer) IndexFile(ctx context.Context, path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".txt" && ext != ".json" {
		logger.Warn("text indexer: unsupported extension %q: %s", ext, path)
		return false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("text indexer: read %s: %v", path, err)
		return false
	}

	var blobs []string
	if ext == ".json" {
		blobs = jsonBlobs(data)
	} else {
		blobs = []string{string(data)}
	}

	var pieces []string
	for _, blob := range blobs {
		cleaned := strings.Join(strings.Fields(blob), " ")
		pieces = append(pieces, ix.chunks.Split(cleaned)...)
	}
	if len(pieces) == 0 {
		logger.Warn("text indexer: no usable content in %s", path)
		return false
	}

	embeddings, err := ix.embedder.EmbedBatch(ctx, pieces)
	if err != nil {
		logger.Warn("text indexer: embed %s: %v", path, err)
		return false
	}

	for i, piece := range pieces {
		ix.store.Add(index.Entry{
			ID:        uuid.NewString(),
			Content:   piece,
			Embedding: embeddings[i],
			Metadata: map[string]any{
				"source":       path,
				"type":         strings.TrimPrefix(ext, "."),
				"chunk_index":  i,
				"total_chunks": len(pieces),
			},
		})
	}

	logger.Debug("text indexer: %s -> %d chunks", path, len(pieces))
	return true
}

// Search embeds the query and ranks stored chunks by cosine similarity.
func (ix *Indexer) Search(ctx context.Context, query string, topK int, minSimilarity float64) ([]domain.SearchResult, error) {
	embedding, err := ix.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	return ix.store.Search(embedding, topK, minSimilarity), nil
}

// Stats returns read-only aggregates over the store.
func (ix *Indexer) Stats() domain.IndexStats {
	return domain.IndexStats{
		Modality:  domain.ModalityText,
		Documents: ix.store.Len(),
		Files:     len(ix.store.Sources()),
		Details: map[string]any{
			"chunk_size":    chunker.DefaultWordChunkSize,
			"chunk_overlap": chunker.DefaultWordOverlap,
		},
	}
}

// jsonBlobs renders a JSON document into indexable text blobs. A
// top-level array yields one blob per element; anything else yields a
// single blob. Invalid JSON falls back to the raw text.
func jsonBlobs(data []byte) []string {
	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return []string{string(data)}
	}

	if list, ok := parsed.([]any); ok {
		blobs := make([]string, 0, len(list))
		for _, item := range list {
			blobs = append(blobs, renderValue(item))
		}
		return blobs
	}
	return []string{renderValue(parsed)}
}

// renderValue flattens a JSON value to text: objects become
// "key: value" lines, arrays join their elements with ", ".
func renderValue(v any) string {
	switch value := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(value))
		for k := range value {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		lines := make([]string, 0, len(keys))
		for _, k := range keys {
			lines = append(lines, k+": "+renderValue(value[k]))
		}
		return strings.Join(lines, "\n")
	case []any:
		parts := make([]string, 0, len(value))
		for _, item := range value {
			parts = append(parts, renderValue(item))
		}
		return strings.Join(parts, ", ")
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", value)
	}
}
