// Package image indexes image files by synthesising a textual
// description from decoded pixels, EXIF metadata and colour analysis.
// The description is the sole indexed content per image.
package image

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/mentorlab/tutor-cli/internal/core/domain"
	"github.com/mentorlab/tutor-cli/internal/core/ports/driven"
	"github.com/mentorlab/tutor-cli/internal/core/ports/driving"
	"github.com/mentorlab/tutor-cli/internal/index"
	"github.com/mentorlab/tutor-cli/internal/logger"
)

// Ensure Indexer implements the interface.
var _ driving.Indexer = (*Indexer)(nil)

var supportedExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".bmp": true,
	".gif": true, ".tiff": true, ".tif": true, ".webp": true,
}

// PropertyFilter selects images by their stored visual properties.
// Zero values leave the corresponding dimension unconstrained.
type PropertyFilter struct {
	MinWidth  int
	MaxWidth  int
	MinHeight int
	MaxHeight int
	Formats   []string
}

// Indexer handles image files.
type Indexer struct {
	embedder driven.EmbeddingService
	store    *index.Store
}

// NewIndexer creates an image indexer backed by its own store.
func NewIndexer(embedder driven.EmbeddingService) *Indexer {
	return &Indexer{embedder: embedder, store: index.NewStore()}
}

// Modality identifies the indexer.
func (ix *Indexer) Modality() domain.Modality {
	return domain.ModalityImage
}

// IndexFile analyses the image and indexes its description as a single
// chunk. It returns false when the file is missing, unsupported, or
// undecodable; the store is left unchanged in every failure case.
func (ix *Indexer) IndexFile(ctx context.Context, path string) bool {
	if !supportedExtensions[strings.ToLower(filepath.Ext(path))] {
		logger.Warn("image indexer: unsupported format: %s", path)
		return false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("image indexer: read %s: %v", path, err)
		return false
	}

	inf, err := analyze(data)
	if err != nil {
		logger.Warn("image indexer: analyze %s: %v", path, err)
		return false
	}

	description := describe(inf)

	embedding, err := ix.embedder.Embed(ctx, description)
	if err != nil {
		logger.Warn("image indexer: embed %s: %v", path, err)
		return false
	}

	meta := map[string]any{
		"source":       path,
		"type":         "image",
		"chunk_index":  0,
		"total_chunks": 1,
		"width":        inf.Width,
		"height":       inf.Height,
		"format":       inf.Format,
		"color_mode":   inf.ColorMode,
		"file_size":    inf.FileSize,
		"file_hash":    inf.FileHash,
		"aspect_ratio": inf.AspectRatio,
		"total_pixels": inf.TotalPixels,
		"brightness":   inf.Brightness,
		"contrast":     inf.Contrast,
	}
	if inf.Camera != "" {
		meta["camera"] = inf.Camera
	}
	if inf.DateTaken != "" {
		meta["date_taken"] = inf.DateTaken
	}
	if inf.Software != "" {
		meta["software"] = inf.Software
	}

	ix.store.Add(index.Entry{
		ID:        uuid.NewString(),
		Content:   description,
		Embedding: embedding,
		Metadata:  meta,
	})

	logger.Debug("image indexer: %s (%dx%d %s)", path, inf.Width, inf.Height, inf.Format)
	return true
}

// Search embeds the query and ranks stored descriptions by cosine
// similarity.
func (ix *Indexer) Search(ctx context.Context, query string, topK int, minSimilarity float64) ([]domain.SearchResult, error) {
	embedding, err := ix.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	return ix.store.Search(embedding, topK, minSimilarity), nil
}

// SearchByProperties returns every indexed image matching the filter,
// without similarity ranking.
func (ix *Indexer) SearchByProperties(filter PropertyFilter) []domain.SearchResult {
	formats := make(map[string]bool, len(filter.Formats))
	for _, f := range filter.Formats {
		formats[strings.ToLower(f)] = true
	}

	var results []domain.SearchResult
	ix.store.Each(func(entry index.Entry) bool {
		width, _ := entry.Metadata["width"].(int)
		height, _ := entry.Metadata["height"].(int)
		format, _ := entry.Metadata["format"].(string)

		switch {
		case filter.MinWidth > 0 && width < filter.MinWidth:
		case filter.MaxWidth > 0 && width > filter.MaxWidth:
		case filter.MinHeight > 0 && height < filter.MinHeight:
		case filter.MaxHeight > 0 && height > filter.MaxHeight:
		case len(formats) > 0 && !formats[strings.ToLower(format)]:
		default:
			results = append(results, domain.SearchResult{
				Content:  entry.Content,
				Metadata: entry.Metadata,
			})
		}
		return true
	})
	return results
}

// Stats returns read-only aggregates over the store.
func (ix *Indexer) Stats() domain.IndexStats {
	formats := make(map[string]int)
	var totalBytes int64
	var widthSum, heightSum, counted int

	ix.store.Each(func(entry index.Entry) bool {
		if format, ok := entry.Metadata["format"].(string); ok {
			formats[format]++
		}
		if size, ok := entry.Metadata["file_size"].(int64); ok {
			totalBytes += size
		}
		if width, ok := entry.Metadata["width"].(int); ok {
			widthSum += width
			counted++
		}
		if height, ok := entry.Metadata["height"].(int); ok {
			heightSum += height
		}
		return true
	})

	details := map[string]any{
		"formats":       formats,
		"total_size_mb": math.Round(float64(totalBytes)/(1024*1024)*100) / 100,
	}
	if counted > 0 {
		details["avg_width"] = widthSum / counted
		details["avg_height"] = heightSum / counted
	}

	return domain.IndexStats{
		Modality:  domain.ModalityImage,
		Documents: ix.store.Len(),
		Files:     len(ix.store.Sources()),
		Details:   details,
	}
}
