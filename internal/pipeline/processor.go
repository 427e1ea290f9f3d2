package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/Charan-r11/Hack-The-Future/internal/certify"
	"github.com/Charan-r11/Hack-The-Future/internal/common"
	"github.com/Charan-r11/Hack-The-Future/internal/entity"
	"github.com/Charan-r11/Hack-The-Future/internal/summary"
	"github.com/Charan-r11/Hack-The-Future/internal/tokenize"
	"github.com/Charan-r11/Hack-The-Future/internal/trust"
)

// excerptLen bounds the document sample sent to the verification network.
const excerptLen = 500

// Processor runs the full consent-document analysis: chunk, analyze, merge,
// then score trust. The trust stage degrades instead of failing, so an
// analysis either fails at chunking/merging or succeeds end to end.
type Processor struct {
	counter    tokenize.Counter
	chunker    *tokenize.Chunker
	aggregator *summary.Aggregator
	verifier   *trust.Verifier
	logger     *slog.Logger
}

func NewProcessor(counter tokenize.Counter, chunker *tokenize.Chunker, aggregator *summary.Aggregator, verifier *trust.Verifier, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		counter:    counter,
		chunker:    chunker,
		aggregator: aggregator,
		verifier:   verifier,
		logger:     logger,
	}
}

// Analyze processes raw document text into a full analysis.
func (p *Processor) Analyze(ctx context.Context, text string) (entity.DocumentAnalysis, error) {
	rid := uuid.New().String()
	start := time.Now()

	if strings.TrimSpace(text) == "" {
		return entity.DocumentAnalysis{}, fmt.Errorf("%w: document text is empty", common.ErrValidation)
	}

	hash := certify.HashDocument(text)
	tokens := p.counter.Count(text)
	chunks := p.chunker.Split(text)
	p.logger.Info("pipeline.analyze.start",
		"req_id", rid,
		"document_hash", hash,
		"tokens", tokens,
		"chunks", len(chunks),
	)

	merged, err := p.aggregator.Aggregate(ctx, chunks)
	if err != nil {
		p.logger.Error("pipeline.analyze.failed",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds())
		return entity.DocumentAnalysis{}, err
	}

	score := p.verifier.Verify(ctx, hash, excerpt(text))

	p.logger.Info("pipeline.analyze.ok",
		"req_id", rid,
		"chunks", len(chunks),
		"trust_score", score.Score,
		"trust_source", score.Source,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return entity.DocumentAnalysis{
		Content:    text,
		Hash:       hash,
		Summary:    merged,
		TrustScore: score,
		ChunkCount: len(chunks),
		TokenCount: tokens,
	}, nil
}

func excerpt(text string) string {
	if len(text) <= excerptLen {
		return text
	}
	// Back off to a rune boundary so the cut never splits a multi-byte rune.
	cut := excerptLen
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}
