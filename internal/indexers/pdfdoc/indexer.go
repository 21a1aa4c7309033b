// Package pdfdoc indexes PDF documents. Text is pulled through an
// ordered list of extraction strategies, cleaned, and split into
// sentence-budget chunks that carry the document metadata.
package pdfdoc

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
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

// Default search parameters for page-scoped queries.
const (
	defaultTopK          = 5
	defaultMinSimilarity = 0.3
)

var (
	collapseSpace  = regexp.MustCompile(`\s+`)
	disallowedRune = regexp.MustCompile(`[^\w\s.,!?;:\-()\[\]"'/@#$%&*+=]`)
)

// Indexer handles .pdf files.
type Indexer struct {
	embedder   driven.EmbeddingService
	store      *index.Store
	chunks     *chunker.Sentences
	extractors []extractor
	filePages  map[string]int
}

// NewIndexer creates a PDF indexer backed by its own store.
func NewIndexer(embedder driven.EmbeddingService) *Indexer {
	return &Indexer{
		embedder:   embedder,
		store:      index.NewStore(),
		chunks:     chunker.NewSentences(chunker.DefaultSentenceBudget, chunker.DefaultSentenceOverlap),
		extractors: defaultExtractors(),
		filePages:  make(map[string]int),
	}
}

// Modality identifies the indexer.
func (ix *Indexer) Modality() domain.Modality {
	return domain.ModalityPDF
}

// IndexFile extracts, cleans, chunks and embeds the document. It
// returns false when the file is missing, not a PDF, or yielded no
// text; the store is left unchanged in every failure case.
func (ix *Indexer) IndexFile(ctx context.Context, path string) bool {
	if strings.ToLower(filepath.Ext(path)) != ".pdf" {
		logger.Warn("pdf indexer: not a pdf: %s", path)
		return false
	}

	text, meta := ix.extractText(path)
	if strings.TrimSpace(text) == "" {
		logger.Warn("pdf indexer: no extractable text in %s", path)
		return false
	}

	pieces := ix.chunks.Split(cleanText(text))
	if len(pieces) == 0 {
		logger.Warn("pdf indexer: no chunks produced from %s", path)
		return false
	}

	embeddings, err := ix.embedder.EmbedBatch(ctx, pieces)
	if err != nil {
		logger.Warn("pdf indexer: embed %s: %v", path, err)
		return false
	}

	for i, piece := range pieces {
		chunkMeta := map[string]any{
			"source":       path,
			"type":         "pdf",
			"chunk_index":  i,
			"total_chunks": len(pieces),
		}
		for k, v := range meta {
			chunkMeta[k] = v
		}
		ix.store.Add(index.Entry{
			ID:        uuid.NewString(),
			Content:   piece,
			Embedding: embeddings[i],
			Metadata:  chunkMeta,
		})
	}

	if pages, ok := meta["total_pages"].(int); ok {
		ix.filePages[path] = pages
	}

	logger.Debug("pdf indexer: %s -> %d chunks via %v", path, len(pieces), meta["extractor"])
	return true
}

// extractText runs the strategy list in order. A later strategy's
// result replaces an earlier one only when the earlier yielded fewer
// than 100 characters and the later yielded strictly more.
func (ix *Indexer) extractText(path string) (string, map[string]any) {
	var bestText string
	var bestMeta map[string]any

	for _, ex := range ix.extractors {
		if len(strings.TrimSpace(bestText)) >= minUsableChars {
			break
		}
		text, meta, err := ex.extract(path)
		if err != nil {
			logger.Debug("pdf indexer: %s extractor failed on %s: %v", ex.name, path, err)
			continue
		}
		if len(strings.TrimSpace(text)) > len(strings.TrimSpace(bestText)) {
			bestText, bestMeta = text, meta
		}
	}

	return bestText, bestMeta
}

// Search embeds the query and ranks stored chunks by cosine similarity.
func (ix *Indexer) Search(ctx context.Context, query string, topK int, minSimilarity float64) ([]domain.SearchResult, error) {
	embedding, err := ix.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	return ix.store.Search(embedding, topK, minSimilarity), nil
}

// SearchByPage restricts results to chunks whose text carries the
// given page marker. A non-positive page falls back to plain Search.
func (ix *Indexer) SearchByPage(ctx context.Context, query string, page int) ([]domain.SearchResult, error) {
	if page <= 0 {
		return ix.Search(ctx, query, defaultTopK, defaultMinSimilarity)
	}

	marker := fmt.Sprintf("[Page %d]", page)
	var results []domain.SearchResult
	ix.store.Each(func(entry index.Entry) bool {
		if strings.Contains(entry.Content, marker) {
			results = append(results, domain.SearchResult{
				Content:  entry.Content,
				Metadata: entry.Metadata,
			})
		}
		return true
	})
	return results, nil
}

// Stats returns read-only aggregates over the store.
func (ix *Indexer) Stats() domain.IndexStats {
	totalPages := 0
	for _, pages := range ix.filePages {
		totalPages += pages
	}

	files := len(ix.store.Sources())
	avg := 0.0
	if files > 0 {
		avg = float64(ix.store.Len()) / float64(files)
	}

	return domain.IndexStats{
		Modality:  domain.ModalityPDF,
		Documents: ix.store.Len(),
		Files:     files,
		Details: map[string]any{
			"total_pages":             totalPages,
			"average_chunks_per_file": avg,
		},
	}
}

// cleanText collapses whitespace and strips characters outside the
// word and punctuation whitelist.
func cleanText(text string) string {
	text = disallowedRune.ReplaceAllString(text, " ")
	text = collapseSpace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
