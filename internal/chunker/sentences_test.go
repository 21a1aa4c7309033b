package chunker

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sentenceText builds n sentences of wordsEach words.
func sentenceText(n, wordsEach int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		for j := 0; j < wordsEach; j++ {
			fmt.Fprintf(&b, "s%dw%d ", i, j)
		}
		b.WriteString(". ")
	}
	return b.String()
}

func TestSentences_EmptyInput(t *testing.T) {
	s := NewSentences(400, 100)

	assert.Nil(t, s.Split(""))
	assert.Nil(t, s.Split("   "))
}

func TestSentences_SingleChunkUnderBudget(t *testing.T) {
	s := NewSentences(400, 100)

	chunks := s.Split(sentenceText(5, 10))

	assert.Len(t, chunks, 1)
}

func TestSentences_SplitsOnBudget(t *testing.T) {
	// 10 sentences of 30 words against a 100-word budget.
	s := NewSentences(100, 100)

	chunks := s.Split(sentenceText(10, 30))

	require.Greater(t, len(chunks), 1)
}

func TestSentences_EverySentenceAppears(t *testing.T) {
	const n = 12
	s := NewSentences(100, 100)

	chunks := s.Split(sentenceText(n, 30))
	joined := strings.Join(chunks, " ")

	for i := 0; i < n; i++ {
		assert.Contains(t, joined, fmt.Sprintf("s%dw0", i),
			"sentence %d should appear in at least one chunk", i)
	}
}

func TestSentences_CarriesOverlapForward(t *testing.T) {
	// overlap 100 carries 100/20 = 5 sentences; with 1-word sentences
	// and a 3-word budget the carry is bounded by what exists.
	s := NewSentences(3, 100)

	chunks := s.Split("a1 . a2 . a3 . a4 . a5 . a6 .")

	require.Greater(t, len(chunks), 1)
	// The second chunk repeats trailing context from the first.
	first := strings.Fields(chunks[0])
	second := strings.Fields(chunks[1])
	assert.Contains(t, second, first[len(first)-1])
}
