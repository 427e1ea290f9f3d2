package tokenize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimatorCount(t *testing.T) {
	c := NewEstimator()
	assert.Equal(t, 0, c.Count(""))
	assert.Equal(t, 0, c.Count("   \n\t"))
	assert.Equal(t, 1, c.Count("word"))
	assert.Equal(t, 2, c.Count("two words"))
	// long words cost extra tokens
	assert.Greater(t, c.Count("responsibilities"), 1)
}

func TestSplitEmptyInput(t *testing.T) {
	ch := NewChunker(NewEstimator(), 100, nil)
	assert.Empty(t, ch.Split(""))
	assert.Empty(t, ch.Split("  \n \n "))
}

func TestSplitSingleSmallDocument(t *testing.T) {
	ch := NewChunker(NewEstimator(), 3000, nil)
	text := "Risk: flooding may occur.\nYou have the right to appeal.\nYou must file within 30 days."
	chunks := ch.Split(text)
	require.Len(t, chunks, 1)
	assert.Equal(t, text, chunks[0])
}

func TestSplitRespectsTokenBudget(t *testing.T) {
	counter := NewEstimator()
	const max = 25
	ch := NewChunker(counter, max, nil)

	var b strings.Builder
	for i := 0; i < 40; i++ {
		b.WriteString("the quick brown fox jumps over the lazy dog\n")
	}
	chunks := ch.Split(b.String())
	require.NotEmpty(t, chunks)
	for i, chunk := range chunks {
		assert.LessOrEqualf(t, counter.Count(chunk), max, "chunk %d over budget", i)
	}
}

func TestSplitReconstructsParagraphContent(t *testing.T) {
	ch := NewChunker(NewEstimator(), 12, nil)
	text := "alpha beta gamma\ndelta epsilon zeta\neta theta iota\nkappa lambda mu"
	chunks := ch.Split(text)
	require.Greater(t, len(chunks), 1)

	joined := strings.Join(chunks, " ")
	for _, word := range strings.Fields(text) {
		assert.Contains(t, joined, word)
	}
}

func TestSplitOversizedParagraphFallsBackToSentences(t *testing.T) {
	counter := NewEstimator()
	const max = 10
	ch := NewChunker(counter, max, nil)

	// one paragraph, many sentences, no newlines
	text := strings.Repeat("a short sentence goes here. ", 12)
	chunks := ch.Split(text)
	require.Greater(t, len(chunks), 1)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, counter.Count(chunk), max)
	}
}

func TestSplitEmitsOversizedSentenceAsItsOwnChunk(t *testing.T) {
	counter := NewEstimator()
	const max = 5
	ch := NewChunker(counter, max, nil)

	big := strings.Repeat("unbreakable ", 20) // one sentence, no periods
	text := "small one. " + big + ". tail sentence."
	chunks := ch.Split(text)

	require.NotEmpty(t, chunks)
	oversized := 0
	for _, chunk := range chunks {
		if counter.Count(chunk) > max {
			oversized++
			assert.Contains(t, chunk, "unbreakable")
		}
	}
	// the indivisible sentence is emitted, once, as its own chunk
	assert.Equal(t, 1, oversized)
}
