package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedFormat indicates a file extension no indexer handles.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrNoContent indicates extraction produced no usable text or description.
	ErrNoContent = errors.New("no usable content")

	// ErrNoAudioTrack indicates a video file has no audio stream to transcribe.
	ErrNoAudioTrack = errors.New("no audio track")

	// ErrEmbeddingUnavailable indicates the embedding service is not configured.
	// Nothing can be indexed or searched without embeddings.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrTranscriptionUnavailable indicates no speech engine is configured.
	// Video files are indexed with a placeholder transcript instead of failing.
	ErrTranscriptionUnavailable = errors.New("transcription unavailable")
)
