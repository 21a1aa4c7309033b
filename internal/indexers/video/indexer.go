// Package video indexes video files by transcribing their audio track
// and chunking the transcript into time windows. Transcription runs
// through an ordered chain of speech engines; a video is still indexed
// with a placeholder transcript when no engine is configured at all.
package video

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
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

// segmentSeconds is the audio piece length fed to speech engines;
// short pieces recognize markedly better than whole tracks.
const segmentSeconds = 30

// placeholderTranscript is indexed when no speech engine is available
// so the video remains discoverable by its presence.
const placeholderTranscript = "[Transcription unavailable - no speech engine configured]"

var supportedExtensions = map[string]bool{
	".mp4": true, ".avi": true, ".mov": true, ".mkv": true,
	".m4v": true, ".flv": true, ".wmv": true,
}

// Indexer handles video files.
type Indexer struct {
	embedder driven.EmbeddingService
	engines  []driven.SpeechEngine
	store    *index.Store
	chunks   *chunker.TimeWindow
	media    toolkit
	language string
	tempRoot string

	fileDuration map[string]float64
}

// NewIndexer creates a video indexer backed by its own store. The
// engines are tried in order per audio segment; the slice may be empty.
func NewIndexer(embedder driven.EmbeddingService, language string, engines ...driven.SpeechEngine) *Indexer {
	if language == "" {
		language = "en"
	}
	return &Indexer{
		embedder:     embedder,
		engines:      engines,
		store:        index.NewStore(),
		chunks:       chunker.NewTimeWindow(chunker.DefaultWindowSeconds, chunker.DefaultFallbackWords),
		media:        defaultToolkit(),
		language:     language,
		tempRoot:     os.TempDir(),
		fileDuration: make(map[string]float64),
	}
}

// Modality identifies the indexer.
func (ix *Indexer) Modality() domain.Modality {
	return domain.ModalityVideo
}

// IndexFile probes the video, transcribes its audio and indexes the
// time-window chunks. It returns false when the file is missing,
// unsupported, has no audio track, or nothing was transcribed; every
// temp file is removed on all exit paths.
func (ix *Indexer) IndexFile(ctx context.Context, path string) bool {
	if !supportedExtensions[strings.ToLower(filepath.Ext(path))] {
		logger.Warn("video indexer: unsupported format: %s", path)
		return false
	}

	info, err := ix.media.probe(ctx, path)
	if err != nil {
		logger.Warn("video indexer: probe %s: %v", path, err)
		return false
	}
	if !info.HasAudio {
		logger.Warn("video indexer: %s: %v", path, domain.ErrNoAudioTrack)
		return false
	}

	tempDir, err := os.MkdirTemp(ix.tempRoot, "tutor-video-")
	if err != nil {
		logger.Warn("video indexer: temp dir: %v", err)
		return false
	}
	defer os.RemoveAll(tempDir)

	wavPath := filepath.Join(tempDir, "audio.wav")
	if err := ix.media.extractAudio(ctx, path, wavPath); err != nil {
		logger.Warn("video indexer: extract audio from %s: %v", path, err)
		return false
	}

	transcript, segments, language := ix.transcribe(ctx, wavPath, tempDir, info.Duration)
	if strings.TrimSpace(transcript) == "" {
		logger.Warn("video indexer: nothing transcribed from %s", path)
		return false
	}

	spans := ix.chunks.Split(segments, transcript, info.Duration)
	if len(spans) == 0 {
		logger.Warn("video indexer: no chunks produced from %s", path)
		return false
	}

	contents := make([]string, len(spans))
	for i, span := range spans {
		contents[i] = span.Text
	}
	embeddings, err := ix.embedder.EmbedBatch(ctx, contents)
	if err != nil {
		logger.Warn("video indexer: embed %s: %v", path, err)
		return false
	}

	for i, span := range spans {
		ix.store.Add(index.Entry{
			ID:        uuid.NewString(),
			Content:   span.Text,
			Embedding: embeddings[i],
			Metadata: map[string]any{
				"source":          path,
				"type":            "video",
				"chunk_index":     i,
				"total_chunks":    len(spans),
				"start_time":      span.Start,
				"end_time":        span.End,
				"start_timestamp": formatTimestamp(span.Start),
				"end_timestamp":   formatTimestamp(span.End),
				"language":        language,
				"duration":        info.Duration,
				"resolution":      fmt.Sprintf("%dx%d", info.Width, info.Height),
				"fps":             info.FPS,
				"file_size":       info.FileSize,
				"segments_count":  span.Segments,
			},
		})
	}

	ix.fileDuration[path] = info.Duration

	logger.Debug("video indexer: %s -> %d chunks (%.1fs)", path, len(spans), info.Duration)
	return true
}

// transcribe splits the audio and runs each piece through the engine
// chain, first non-empty result wins. A piece every engine fails on is
// skipped; with no engines configured a placeholder transcript is
// returned instead.
func (ix *Indexer) transcribe(ctx context.Context, wavPath, tempDir string, duration float64) (string, []chunker.Segment, string) {
	if len(ix.engines) == 0 {
		return placeholderTranscript, nil, "unknown"
	}

	pieces, err := ix.media.segmentAudio(ctx, wavPath, tempDir, segmentSeconds)
	if err != nil {
		logger.Warn("video indexer: segment audio: %v", err)
		return "", nil, ix.language
	}

	var full strings.Builder
	var segments []chunker.Segment

	for i, piece := range pieces {
		start := float64(i * segmentSeconds)
		end := start + segmentSeconds
		if duration > 0 && end > duration {
			end = duration
		}

		text := ix.transcribePiece(ctx, piece)
		if text == "" {
			continue
		}

		full.WriteString(text)
		full.WriteString(" ")
		segments = append(segments, chunker.Segment{Start: start, End: end, Text: text})
	}

	return strings.TrimSpace(full.String()), segments, ix.language
}

func (ix *Indexer) transcribePiece(ctx context.Context, piece string) string {
	for _, engine := range ix.engines {
		text, err := engine.Transcribe(ctx, piece)
		if err != nil {
			logger.Debug("video indexer: %s failed on %s: %v", engine.Name(), filepath.Base(piece), err)
			continue
		}
		if strings.TrimSpace(text) != "" {
			return strings.TrimSpace(text)
		}
	}
	return ""
}

// Search embeds the query and ranks stored chunks by cosine similarity.
func (ix *Indexer) Search(ctx context.Context, query string, topK int, minSimilarity float64) ([]domain.SearchResult, error) {
	embedding, err := ix.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	return ix.store.Search(embedding, topK, minSimilarity), nil
}

// SearchTimeRange restricts results to chunks overlapping the given
// window in seconds. Negative bounds leave that side open.
func (ix *Indexer) SearchTimeRange(ctx context.Context, query string, startSeconds, endSeconds float64) ([]domain.SearchResult, error) {
	embedding, err := ix.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	keep := func(entry index.Entry) bool {
		chunkStart, _ := entry.Metadata["start_time"].(float64)
		chunkEnd, _ := entry.Metadata["end_time"].(float64)
		if startSeconds >= 0 && chunkEnd < startSeconds {
			return false
		}
		if endSeconds >= 0 && chunkStart > endSeconds {
			return false
		}
		return true
	}
	return ix.store.SearchWhere(embedding, 0, 0, keep), nil
}

// Stats returns read-only aggregates over the store.
func (ix *Indexer) Stats() domain.IndexStats {
	var totalDuration float64
	for _, d := range ix.fileDuration {
		totalDuration += d
	}

	engineNames := make([]string, 0, len(ix.engines))
	for _, engine := range ix.engines {
		engineNames = append(engineNames, engine.Name())
	}

	return domain.IndexStats{
		Modality:  domain.ModalityVideo,
		Documents: ix.store.Len(),
		Files:     len(ix.store.Sources()),
		Details: map[string]any{
			"total_duration_seconds":   totalDuration,
			"total_duration_formatted": formatTimestamp(totalDuration),
			"transcription_engines":    engineNames,
		},
	}
}

// formatTimestamp renders seconds as MM:SS.
func formatTimestamp(seconds float64) string {
	whole := int(seconds)
	return fmt.Sprintf("%02d:%02d", whole/60, whole%60)
}
