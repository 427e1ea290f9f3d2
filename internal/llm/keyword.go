package llm

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/Charan-r11/Hack-The-Future/internal/entity"
)

// KeywordAnalyzer is the model-free fallback path: sentence-level keyword
// matching with a short lead-sentence summary. Useful offline and in tests;
// the default server wiring uses the model-driven Analyzer instead. Unlike
// the model path, each category is capped at the top matches.
type KeywordAnalyzer struct {
	logger *slog.Logger
}

const keywordCategoryCap = 5

var (
	sentenceSplit = regexp.MustCompile(`[.!?]+`)

	riskWords           = []string{"risk", "danger", "warning", "caution"}
	rightWords          = []string{"right", "entitle", "permit", "allow"}
	responsibilityWords = []string{"must", "shall", "require", "obligation"}
)

func NewKeywordAnalyzer(logger *slog.Logger) *KeywordAnalyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &KeywordAnalyzer{logger: logger}
}

func (k *KeywordAnalyzer) AnalyzeChunk(_ context.Context, chunk string) (entity.ChunkResult, error) {
	var sentences []string
	for _, s := range sentenceSplit.Split(chunk, -1) {
		if t := strings.TrimSpace(s); t != "" {
			sentences = append(sentences, t)
		}
	}

	summary := strings.Join(firstN(sentences, 3), " ")
	result := entity.ChunkResult{
		Summary:          summary,
		Risks:            matchSentences(sentences, riskWords),
		Rights:           matchSentences(sentences, rightWords),
		Responsibilities: matchSentences(sentences, responsibilityWords),
	}
	k.logger.Debug("llm.keyword.ok",
		"sentences", len(sentences),
		"risks", len(result.Risks),
		"rights", len(result.Rights),
		"responsibilities", len(result.Responsibilities),
	)
	return result, nil
}

func matchSentences(sentences, words []string) []string {
	var out []string
	for _, s := range sentences {
		lower := strings.ToLower(s)
		for _, w := range words {
			if strings.Contains(lower, w) {
				out = append(out, s)
				break
			}
		}
	}
	return firstN(out, keywordCategoryCap)
}

func firstN(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
