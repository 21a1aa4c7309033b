package chunker

import (
	"regexp"
	"strings"
)

// DefaultSentenceBudget is the default chunk word budget.
const DefaultSentenceBudget = 400

// DefaultSentenceOverlap is the default overlap parameter; the number
// of carried-forward sentences is overlap/20.
const DefaultSentenceOverlap = 100

var sentenceBoundary = regexp.MustCompile(`[.!?]+\s+`)

// Sentences accumulates whole sentences into chunks under a word
// budget, carrying a few trailing sentences forward as context.
// Every sentence appears in at least one chunk; overlap is best-effort,
// bounded by the sentences available in the prior chunk.
type Sentences struct {
	budget  int
	overlap int
}

// NewSentences creates a sentence chunker. Non-positive values fall
// back to the defaults.
func NewSentences(budget, overlap int) *Sentences {
	if budget <= 0 {
		budget = DefaultSentenceBudget
	}
	if overlap < 0 {
		overlap = DefaultSentenceOverlap
	}
	return &Sentences{budget: budget, overlap: overlap}
}

// Split returns the ordered chunks of text. Empty input yields nil.
func (s *Sentences) Split(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	sentences := sentenceBoundary.Split(text, -1)
	carry := s.overlap / 20

	var chunks []string
	var current []string
	currentWords := 0

	for _, sentence := range sentences {
		sentenceWords := len(strings.Fields(sentence))

		if currentWords+sentenceWords > s.budget && len(current) > 0 {
			chunks = append(chunks, strings.Join(current, " "))

			// Carry the trailing sentences forward as context.
			keep := carry
			if keep > len(current) {
				keep = len(current)
			}
			current = append(append([]string(nil), current[len(current)-keep:]...), sentence)
			currentWords = 0
			for _, c := range current {
				currentWords += len(strings.Fields(c))
			}
			continue
		}

		current = append(current, sentence)
		currentWords += sentenceWords
	}

	if len(current) > 0 {
		if joined := strings.TrimSpace(strings.Join(current, " ")); joined != "" {
			chunks = append(chunks, joined)
		}
	}

	return chunks
}
