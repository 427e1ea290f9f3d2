package tokenize

import (
	"log/slog"
	"strings"
)

// Chunker splits raw document text into segments that each fit a token
// budget. Paragraph boundaries are preferred; paragraphs that alone exceed
// the budget fall back to sentence-level packing. A single sentence that
// exceeds the budget on its own is emitted as its own oversized chunk rather
// than dropped.
type Chunker struct {
	counter   Counter
	maxTokens int
	logger    *slog.Logger
}

func NewChunker(counter Counter, maxTokens int, logger *slog.Logger) *Chunker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Chunker{counter: counter, maxTokens: maxTokens, logger: logger}
}

// MaxTokens reports the configured budget.
func (c *Chunker) MaxTokens() int { return c.maxTokens }

// Split chunks text under the token budget. Empty input yields an empty
// sequence, never an error.
func (c *Chunker) Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var chunks []string
	var buf string

	flush := func() {
		if s := strings.TrimSpace(buf); s != "" {
			chunks = append(chunks, s)
		}
		buf = ""
	}

	// add greedily appends unit to the buffer, flushing first whenever the
	// combined buffer would exceed the budget. The buffer is re-counted as a
	// whole so separators are billed exactly as the model would see them.
	add := func(unit, sep string) {
		if strings.TrimSpace(unit) == "" {
			return
		}
		candidate := unit
		if buf != "" {
			candidate = buf + sep + unit
		}
		if buf != "" && c.counter.Count(candidate) > c.maxTokens {
			flush()
			candidate = unit
		}
		buf = candidate
	}

	for _, paragraph := range strings.Split(text, "\n") {
		pTokens := c.counter.Count(paragraph)
		if pTokens > c.maxTokens {
			c.logger.Warn("chunker.paragraph_exceeds_budget",
				"paragraph_tokens", pTokens, "max_tokens", c.maxTokens)
			for _, sentence := range splitSentences(paragraph) {
				add(sentence, " ")
			}
			continue
		}
		add(paragraph, "\n")
	}
	flush()

	c.logger.Debug("chunker.split.ok", "chunks", len(chunks), "max_tokens", c.maxTokens)
	return chunks
}

// splitSentences breaks a paragraph into sentence-like units, keeping each
// sentence's terminating period with it so nothing is lost on rejoin.
func splitSentences(paragraph string) []string {
	parts := strings.SplitAfter(paragraph, ". ")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
