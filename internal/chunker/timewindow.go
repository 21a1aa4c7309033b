package chunker

import "strings"

// DefaultWindowSeconds is the default time window per chunk.
const DefaultWindowSeconds = 60.0

// DefaultFallbackWords is the chunk size used when a transcript has
// text but no timed segments.
const DefaultFallbackWords = 200

// Segment is one timed unit of a transcript.
type Segment struct {
	// Start is the segment start in seconds.
	Start float64

	// End is the segment end in seconds.
	End float64

	// Text is the transcribed speech.
	Text string
}

// Span is one time-bounded transcript chunk.
type Span struct {
	// Text is the concatenated segment text.
	Text string

	// Start is the chunk start in seconds.
	Start float64

	// End is the chunk end in seconds.
	End float64

	// Segments counts the segments folded into this chunk; zero when
	// the chunk came from the word-count fallback.
	Segments int
}

// TimeWindow groups timed transcript segments into chunks spanning a
// target duration. A segment whose start passes the current chunk's
// start plus the window closes the chunk and opens a new one.
type TimeWindow struct {
	window        float64
	fallbackWords int
}

// NewTimeWindow creates a time-window chunker. Non-positive values
// fall back to the defaults.
func NewTimeWindow(windowSeconds float64, fallbackWords int) *TimeWindow {
	if windowSeconds <= 0 {
		windowSeconds = DefaultWindowSeconds
	}
	if fallbackWords <= 0 {
		fallbackWords = DefaultFallbackWords
	}
	return &TimeWindow{window: windowSeconds, fallbackWords: fallbackWords}
}

// Split chunks the segments by time. When no segments exist but text
// does, it falls back to fixed word-count chunks with time bounds
// estimated proportionally from totalDuration and word position.
func (t *TimeWindow) Split(segments []Segment, text string, totalDuration float64) []Span {
	var spans []Span
	current := Span{}

	for _, seg := range segments {
		if seg.Start >= current.Start+t.window && current.Text != "" {
			current.Text = strings.TrimSpace(current.Text)
			spans = append(spans, current)
			current = Span{Text: seg.Text, Start: seg.Start, End: seg.End, Segments: 1}
			continue
		}

		if current.Text == "" {
			current.Start = seg.Start
		}
		current.Text = strings.TrimSpace(current.Text + " " + seg.Text)
		current.End = seg.End
		current.Segments++
	}

	if strings.TrimSpace(current.Text) != "" {
		current.Text = strings.TrimSpace(current.Text)
		spans = append(spans, current)
	}

	if len(spans) == 0 && strings.TrimSpace(text) != "" {
		spans = t.splitByWords(text, totalDuration)
	}

	return spans
}

// splitByWords estimates chunk time bounds from word position.
func (t *TimeWindow) splitByWords(text string, totalDuration float64) []Span {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var spans []Span
	for i := 0; i < len(words); i += t.fallbackWords {
		end := i + t.fallbackWords
		if end > len(words) {
			end = len(words)
		}

		startRatio := float64(i) / float64(len(words))
		endRatio := float64(end) / float64(len(words))

		spans = append(spans, Span{
			Text:  strings.Join(words[i:end], " "),
			Start: startRatio * totalDuration,
			End:   endRatio * totalDuration,
		})
	}

	return spans
}
