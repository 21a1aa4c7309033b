package driven

import "context"

// SpeechEngine transcribes one audio segment to text.
// The video indexer holds an ordered list of engines and accepts the
// first non-empty result per segment (first-success-wins), so a
// network engine can be backed by a secondary language and an offline
// engine without nested conditionals.
type SpeechEngine interface {
	// Name identifies the engine for logging (e.g. "whisper(en)").
	Name() string

	// Transcribe converts a WAV file to text. An empty string with a
	// nil error means the audio was not understood; the caller moves
	// on to the next engine.
	Transcribe(ctx context.Context, wavPath string) (string, error)
}
