package chunker

import "strings"

// DefaultWordChunkSize is the default chunk size in words.
const DefaultWordChunkSize = 300

// DefaultWordOverlap is the default overlap between chunks in words.
const DefaultWordOverlap = 50

// Words splits text into overlapping fixed-size word windows.
// Chunk i starts at word index i*(size-overlap), so concatenating
// chunks with overlaps removed reconstructs the input exactly.
type Words struct {
	size    int
	overlap int
}

// NewWords creates a word chunker. Non-positive size falls back to the
// default; overlap is clamped below size so the stride stays positive.
func NewWords(size, overlap int) *Words {
	if size <= 0 {
		size = DefaultWordChunkSize
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= size {
		overlap = size / 4
	}
	return &Words{size: size, overlap: overlap}
}

// Split returns the ordered chunks of text. Empty input yields nil.
func (w *Words) Split(text string) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	stride := w.size - w.overlap
	chunks := make([]string, 0, len(words)/stride+1)

	for start := 0; start < len(words); start += stride {
		end := start + w.size
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[start:end], " "))
		if end == len(words) {
			break
		}
	}

	return chunks
}
