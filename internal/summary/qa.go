package summary

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Charan-r11/Hack-The-Future/internal/llm"
	"github.com/Charan-r11/Hack-The-Future/internal/tokenize"
)

// NoAnswerText is returned when no chunk of the document addresses the
// question. Not an error; the document simply does not cover it.
const NoAnswerText = "The document does not address this question."

// QAService answers a free-form question against a document by asking the
// same question of every chunk and combining the qualifying answers.
type QAService struct {
	completer llm.Completer
	chunker   *tokenize.Chunker
	logger    *slog.Logger
}

func NewQAService(completer llm.Completer, chunker *tokenize.Chunker, logger *slog.Logger) *QAService {
	if logger == nil {
		logger = slog.Default()
	}
	return &QAService{completer: completer, chunker: chunker, logger: logger}
}

// Answer asks the question of every chunk, discards NOT_FOUND responses and
// failures, and synthesizes when more than one chunk qualifies. If synthesis
// fails the first qualifying answer is returned verbatim.
func (q *QAService) Answer(ctx context.Context, document, question string) (string, error) {
	rid := uuid.New().String()
	start := time.Now()

	chunks := q.chunker.Split(document)
	q.logger.Info("summary.qa.start",
		"req_id", rid, "chunks", len(chunks), "question_len", len(question))
	if len(chunks) == 0 {
		return NoAnswerText, nil
	}

	answers := make([]string, len(chunks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(defaultConcurrency)
	for i, chunk := range chunks {
		g.Go(func() error {
			resp, err := q.completer.Complete(gctx, llm.BuildQuestionPrompt(chunk, question))
			if err != nil {
				q.logger.Warn("summary.qa.chunk_failed",
					"req_id", rid, "chunk_index", i, "error", err)
				return nil
			}
			answers[i] = strings.TrimSpace(resp)
			return nil
		})
	}
	_ = g.Wait()

	qualifying := make([]string, 0, len(answers))
	for _, a := range answers {
		if a == "" || strings.EqualFold(a, llm.NotFoundAnswer) {
			continue
		}
		qualifying = append(qualifying, a)
	}

	switch len(qualifying) {
	case 0:
		q.logger.Info("summary.qa.no_answer",
			"req_id", rid, "elapsed_ms", time.Since(start).Milliseconds())
		return NoAnswerText, nil
	case 1:
		q.logger.Info("summary.qa.ok",
			"req_id", rid, "qualifying", 1, "elapsed_ms", time.Since(start).Milliseconds())
		return qualifying[0], nil
	}

	combined, err := q.completer.Complete(ctx, llm.BuildSynthesizePrompt(question, qualifying))
	if err != nil || strings.TrimSpace(combined) == "" {
		q.logger.Warn("summary.qa.synthesis_failed",
			"req_id", rid, "qualifying", len(qualifying), "error", err)
		return qualifying[0], nil
	}

	q.logger.Info("summary.qa.ok",
		"req_id", rid,
		"qualifying", len(qualifying),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return strings.TrimSpace(combined), nil
}
