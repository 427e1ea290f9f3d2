package tokenize

import (
	"strings"
	"unicode/utf8"
)

// Counter measures how many model tokens a string would occupy. One Counter
// instance must be shared between chunk sizing and token-cost reporting so the
// two can never drift apart.
type Counter interface {
	Count(text string) int
}

// Estimator approximates a cl100k-style tokenizer without shipping its
// vocabulary: every whitespace-delimited word costs one token plus one more
// per four runes beyond the first four. Close enough for budgeting, strictly
// monotonic in text length, and zero for empty input.
type Estimator struct{}

func NewEstimator() Estimator { return Estimator{} }

func (Estimator) Count(text string) int {
	if strings.TrimSpace(text) == "" {
		return 0
	}
	total := 0
	for _, word := range strings.Fields(text) {
		n := utf8.RuneCountInString(word)
		total += 1 + (n-1)/4
	}
	return total
}
