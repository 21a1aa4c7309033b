package services

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentorlab/tutor-cli/internal/core/domain"
)

// routeIndexer records which paths reached it and answers with a
// fixed outcome.
type routeIndexer struct {
	mu       sync.Mutex
	modality domain.Modality
	ok       bool
	indexed  []string
}

func (r *routeIndexer) Modality() domain.Modality { return r.modality }

func (r *routeIndexer) IndexFile(_ context.Context, path string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.indexed = append(r.indexed, path)
	return r.ok
}

func (r *routeIndexer) Search(context.Context, string, int, float64) ([]domain.SearchResult, error) {
	return nil, nil
}

func (r *routeIndexer) Stats() domain.IndexStats {
	return domain.IndexStats{Modality: r.modality}
}

func (r *routeIndexer) paths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.indexed...)
}

func TestIngest_RoutesByExtension(t *testing.T) {
	text := &routeIndexer{modality: domain.ModalityText, ok: true}
	pdf := &routeIndexer{modality: domain.ModalityPDF, ok: true}
	s := NewIngestService(text, pdf)

	status := s.IndexFile(context.Background(), "notes.TXT")

	assert.Equal(t, domain.OutcomeIndexed, status.Outcome)
	assert.Equal(t, domain.ModalityText, status.Modality)
	assert.Equal(t, []string{"notes.TXT"}, text.paths())
	assert.Empty(t, pdf.paths())
}

func TestIngest_UnknownExtensionIsSkipped(t *testing.T) {
	s := NewIngestService(&routeIndexer{modality: domain.ModalityText, ok: true})

	status := s.IndexFile(context.Background(), "archive.zip")

	assert.Equal(t, domain.OutcomeSkipped, status.Outcome)
	assert.Empty(t, status.Modality)
	assert.Contains(t, status.Reason, ".zip")
}

func TestIngest_MissingIndexerIsSkipped(t *testing.T) {
	s := NewIngestService(&routeIndexer{modality: domain.ModalityText, ok: true})

	status := s.IndexFile(context.Background(), "talk.mp4")

	assert.Equal(t, domain.OutcomeSkipped, status.Outcome)
	assert.Equal(t, domain.ModalityVideo, status.Modality)
	assert.Contains(t, status.Reason, "no video indexer")
}

func TestIngest_IndexerFailureIsRecorded(t *testing.T) {
	s := NewIngestService(&routeIndexer{modality: domain.ModalityPDF, ok: false})

	status := s.IndexFile(context.Background(), "broken.pdf")

	assert.Equal(t, domain.OutcomeFailed, status.Outcome)
	assert.Equal(t, domain.ModalityPDF, status.Modality)
}

func TestIngest_IndexAllIsolatesFailures(t *testing.T) {
	text := &routeIndexer{modality: domain.ModalityText, ok: true}
	pdf := &routeIndexer{modality: domain.ModalityPDF, ok: false}
	s := NewIngestService(text, pdf)

	statuses := s.IndexAll(context.Background(), []string{"a.pdf", "b.txt", "c.zip"})

	require.Len(t, statuses, 3)
	assert.Equal(t, domain.OutcomeFailed, statuses[0].Outcome)
	assert.Equal(t, domain.OutcomeIndexed, statuses[1].Outcome)
	assert.Equal(t, domain.OutcomeSkipped, statuses[2].Outcome)
	assert.Equal(t, []string{"b.txt"}, text.paths())
}

func TestIngest_StatsInDisplayOrder(t *testing.T) {
	video := &routeIndexer{modality: domain.ModalityVideo, ok: true}
	text := &routeIndexer{modality: domain.ModalityText, ok: true}
	s := NewIngestService(video, text)

	stats := s.Stats()

	require.Len(t, stats, 2)
	assert.Equal(t, domain.ModalityText, stats[0].Modality)
	assert.Equal(t, domain.ModalityVideo, stats[1].Modality)
}

func TestIngest_WatchStopsOnContextCancel(t *testing.T) {
	s := NewIngestService(&routeIndexer{modality: domain.ModalityText, ok: true})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Watch(ctx, t.TempDir()) }()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop on cancel")
	}
}

func TestIngest_WatchIndexesCreatedFiles(t *testing.T) {
	text := &routeIndexer{modality: domain.ModalityText, ok: true}
	s := NewIngestService(text)
	dir := t.TempDir()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = s.Watch(ctx, dir) }()

	// give the watcher a moment to register before writing
	time.Sleep(100 * time.Millisecond)
	path := filepath.Join(dir, "fresh.txt")
	require.NoError(t, os.WriteFile(path, []byte("new material"), 0o644))

	assert.Eventually(t, func() bool {
		for _, p := range text.paths() {
			if p == path {
				return true
			}
		}
		return false
	}, 2*time.Second, 20*time.Millisecond)
}

func TestIngest_WatchRejectsMissingDir(t *testing.T) {
	s := NewIngestService()

	err := s.Watch(context.Background(), "/nonexistent/dir")

	assert.Error(t, err)
}
