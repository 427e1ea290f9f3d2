package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Charan-r11/Hack-The-Future/internal/common"
	"github.com/Charan-r11/Hack-The-Future/internal/entity"
)

// Analyzer implements ChunkAnalyzer on top of the completion capability with
// strict JSON-Schema validation and a lenient sanitize fallback. One attempt
// per chunk, no retries.
type Analyzer struct {
	completer Completer
	logger    *slog.Logger
	lenient   bool
}

func NewAnalyzer(completer Completer, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{completer: completer, logger: logger, lenient: true}
}

func (a *Analyzer) AnalyzeChunk(ctx context.Context, chunk string) (entity.ChunkResult, error) {
	rid := uuid.New().String()
	start := time.Now()
	a.logger.Info("llm.analyze.start", "req_id", rid, "chunk_len", len(chunk))

	content, err := a.completer.Complete(ctx, BuildAnalyzePrompt(chunk))
	if err != nil {
		a.logger.Error("llm.analyze.completion_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return entity.ChunkResult{}, fmt.Errorf("%w: completion: %v", common.ErrProcessing, err)
	}

	rawContent := []byte(strings.TrimSpace(content))
	schema := BuildChunkJSONSchema()

	if err := ValidateJSONAgainstSchema(schema, rawContent); err != nil {
		if !a.lenient {
			a.logger.Error("llm.analyze.schema_validation_failed",
				"req_id", rid, "error", err,
				"elapsed_ms", time.Since(start).Milliseconds(),
			)
			return entity.ChunkResult{}, fmt.Errorf("%w: schema validation: %v", common.ErrProcessing, err)
		}
		cleaned, dropped, sErr := SanitizeChunkJSON(rawContent, a.logger)
		if sErr != nil {
			a.logger.Error("llm.analyze.sanitize_failed",
				"req_id", rid, "error", sErr,
				"elapsed_ms", time.Since(start).Milliseconds(),
			)
			return entity.ChunkResult{}, fmt.Errorf("%w: sanitize: %v", common.ErrProcessing, sErr)
		}
		if vErr := ValidateJSONAgainstSchema(schema, cleaned); vErr != nil {
			a.logger.Error("llm.analyze.schema_validation_failed",
				"req_id", rid, "error", vErr, "sanitize_dropped", dropped,
				"elapsed_ms", time.Since(start).Milliseconds(),
			)
			return entity.ChunkResult{}, fmt.Errorf("%w: schema validation: %v", common.ErrProcessing, vErr)
		}
		rawContent = cleaned
	}

	var out entity.ChunkResult
	if err := json.Unmarshal(rawContent, &out); err != nil {
		a.logger.Error("llm.analyze.unmarshal_failed",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return entity.ChunkResult{}, fmt.Errorf("%w: unmarshal result: %v", common.ErrProcessing, err)
	}

	a.logger.Info("llm.analyze.ok",
		"req_id", rid,
		"risks", len(out.Risks),
		"rights", len(out.Rights),
		"responsibilities", len(out.Responsibilities),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out, nil
}
