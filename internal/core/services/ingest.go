package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/mentorlab/tutor-cli/internal/core/domain"
	"github.com/mentorlab/tutor-cli/internal/core/ports/driving"
	"github.com/mentorlab/tutor-cli/internal/logger"
)

// statsOrder fixes the display order of per-modality stats.
var statsOrder = []domain.Modality{
	domain.ModalityText, domain.ModalityPDF,
	domain.ModalityImage, domain.ModalityVideo,
}

// Ensure IngestService implements the interface.
var _ driving.Ingestor = (*IngestService)(nil)

// IngestService routes files to modality indexers by extension.
type IngestService struct {
	indexers map[domain.Modality]driving.Indexer
}

// NewIngestService creates an ingestion router over the given
// indexers; each registers under its own modality.
func NewIngestService(indexers ...driving.Indexer) *IngestService {
	byModality := make(map[domain.Modality]driving.Indexer, len(indexers))
	for _, ix := range indexers {
		byModality[ix.Modality()] = ix
	}
	return &IngestService{indexers: byModality}
}

// IndexFile routes one file to its indexer and records the outcome.
// Unknown extensions and missing indexers are recorded skips.
func (s *IngestService) IndexFile(ctx context.Context, path string) domain.FileStatus {
	ext := strings.ToLower(filepath.Ext(path))

	modality, ok := domain.ModalityForExtension(ext)
	if !ok {
		logger.Debug("ingest: no indexer for %q, skipping %s", ext, path)
		return domain.FileStatus{
			Path:    path,
			Outcome: domain.OutcomeSkipped,
			Reason:  fmt.Sprintf("unsupported extension %q", ext),
		}
	}

	ix, ok := s.indexers[modality]
	if !ok {
		return domain.FileStatus{
			Path:     path,
			Modality: modality,
			Outcome:  domain.OutcomeSkipped,
			Reason:   fmt.Sprintf("no %s indexer configured", modality),
		}
	}

	if !ix.IndexFile(ctx, path) {
		return domain.FileStatus{
			Path:     path,
			Modality: modality,
			Outcome:  domain.OutcomeFailed,
			Reason:   "indexing failed, see log",
		}
	}

	logger.Debug("ingest: indexed %s as %s", path, modality)
	return domain.FileStatus{Path: path, Modality: modality, Outcome: domain.OutcomeIndexed}
}

// IndexAll indexes files sequentially. One file's failure never
// aborts the rest; each outcome is recorded.
func (s *IngestService) IndexAll(ctx context.Context, paths []string) []domain.FileStatus {
	statuses := make([]domain.FileStatus, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			break
		}
		statuses = append(statuses, s.IndexFile(ctx, path))
	}
	return statuses
}

// Watch indexes files as they are created or written in dir until the
// context is cancelled.
func (s *IngestService) Watch(ctx context.Context, dir string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	logger.Info("watching %s for new files", dir)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Write) {
				status := s.IndexFile(ctx, event.Name)
				logger.Info("watch: %s -> %s", event.Name, status.Outcome)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch: %v", err)
		}
	}
}

// Stats returns the per-modality store aggregates in display order.
func (s *IngestService) Stats() []domain.IndexStats {
	stats := make([]domain.IndexStats, 0, len(s.indexers))
	for _, modality := range statsOrder {
		if ix, ok := s.indexers[modality]; ok {
			stats = append(stats, ix.Stats())
		}
	}
	return stats
}
