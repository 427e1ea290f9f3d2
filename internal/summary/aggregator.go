package summary

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Charan-r11/Hack-The-Future/internal/common"
	"github.com/Charan-r11/Hack-The-Future/internal/entity"
	"github.com/Charan-r11/Hack-The-Future/internal/llm"
)

const defaultConcurrency = 4

// Aggregator fans a document's chunks out to the chunk analyzer and merges
// whatever comes back. Individual chunk failures are dropped; the run only
// fails when every chunk fails.
type Aggregator struct {
	analyzer    llm.ChunkAnalyzer
	logger      *slog.Logger
	concurrency int
}

func NewAggregator(analyzer llm.ChunkAnalyzer, concurrency int, logger *slog.Logger) *Aggregator {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{analyzer: analyzer, logger: logger, concurrency: concurrency}
}

// Aggregate analyzes every chunk concurrently and merges the successful
// results in chunk order. An empty chunk list and a run where no chunk
// succeeds both fail with a processing error.
func (a *Aggregator) Aggregate(ctx context.Context, chunks []string) (entity.DocumentSummary, error) {
	rid := uuid.New().String()
	start := time.Now()

	if len(chunks) == 0 {
		return entity.DocumentSummary{}, fmt.Errorf("%w: no chunks to aggregate", common.ErrProcessing)
	}
	a.logger.Info("summary.aggregate.start",
		"req_id", rid, "chunks", len(chunks), "concurrency", a.concurrency)

	results := make([]*entity.ChunkResult, len(chunks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)
	for i, chunk := range chunks {
		g.Go(func() error {
			res, err := a.analyzer.AnalyzeChunk(gctx, chunk)
			if err != nil {
				// Drop the chunk; the merge tolerates holes.
				a.logger.Warn("summary.aggregate.chunk_failed",
					"req_id", rid, "chunk_index", i, "error", err)
				return nil
			}
			results[i] = &res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return entity.DocumentSummary{}, fmt.Errorf("%w: aggregate: %v", common.ErrProcessing, err)
	}

	merged, ok := merge(results)
	if !ok {
		a.logger.Error("summary.aggregate.all_chunks_failed",
			"req_id", rid, "chunks", len(chunks),
			"elapsed_ms", time.Since(start).Milliseconds())
		return entity.DocumentSummary{}, fmt.Errorf("%w: all %d chunks failed analysis", common.ErrProcessing, len(chunks))
	}

	a.logger.Info("summary.aggregate.ok",
		"req_id", rid,
		"chunks", len(chunks),
		"succeeded", countSucceeded(results),
		"risks", len(merged.Risks),
		"rights", len(merged.Rights),
		"responsibilities", len(merged.Responsibilities),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return merged, nil
}

// merge concatenates summaries in chunk order and unions the category lists,
// deduplicating while preserving first-seen order. ok is false when no slot
// holds a result.
func merge(results []*entity.ChunkResult) (entity.DocumentSummary, bool) {
	var (
		parts            []string
		risks            []string
		rights           []string
		responsibilities []string
		found            bool
	)
	seenRisks := map[string]struct{}{}
	seenRights := map[string]struct{}{}
	seenResps := map[string]struct{}{}

	appendUnique := func(dst []string, seen map[string]struct{}, items []string) []string {
		for _, item := range items {
			item = strings.TrimSpace(item)
			if item == "" {
				continue
			}
			if _, ok := seen[item]; ok {
				continue
			}
			seen[item] = struct{}{}
			dst = append(dst, item)
		}
		return dst
	}

	for _, r := range results {
		if r == nil {
			continue
		}
		found = true
		if s := strings.TrimSpace(r.Summary); s != "" {
			parts = append(parts, s)
		}
		risks = appendUnique(risks, seenRisks, r.Risks)
		rights = appendUnique(rights, seenRights, r.Rights)
		responsibilities = appendUnique(responsibilities, seenResps, r.Responsibilities)
	}
	if !found {
		return entity.DocumentSummary{}, false
	}
	return entity.DocumentSummary{
		Summary:          strings.Join(parts, " "),
		Risks:            risks,
		Rights:           rights,
		Responsibilities: responsibilities,
	}, true
}

func countSucceeded(results []*entity.ChunkResult) int {
	n := 0
	for _, r := range results {
		if r != nil {
			n++
		}
	}
	return n
}
