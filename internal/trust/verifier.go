package trust

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Charan-r11/Hack-The-Future/internal/entity"
)

// Trust score sources.
const (
	SourceNetwork  = "masumi"
	SourceFallback = "fallback"
)

// Verifier wraps the network client with the fallback policy: Verify never
// returns an error, and every failure path yields the neutral unverified
// score so document analysis keeps going.
type Verifier struct {
	client *Client
	logger *slog.Logger
}

func NewVerifier(client *Client, logger *slog.Logger) *Verifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Verifier{client: client, logger: logger}
}

// Verify scores a document hash. Scores outside [0, 1] are clamped. Any
// client failure degrades to {0.0, unverified, fallback}.
func (v *Verifier) Verify(ctx context.Context, documentHash, excerpt string) entity.TrustScore {
	rid := uuid.New().String()
	start := time.Now()

	resp, err := v.client.VerifyDocument(ctx, rid, documentHash, excerpt)
	if err != nil {
		v.logger.Warn("trust.verify.fallback",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds())
		return entity.TrustScore{Score: 0.0, Verified: false, Source: SourceFallback}
	}

	score := resp.TrustScore
	if score < 0.0 || score > 1.0 {
		v.logger.Warn("trust.verify.score_clamped",
			"req_id", rid, "raw_score", score)
		score = clamp(score)
	}

	v.logger.Info("trust.verify.ok",
		"req_id", rid,
		"score", score,
		"verified", resp.IsVerified,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return entity.TrustScore{Score: score, Verified: resp.IsVerified, Source: SourceNetwork}
}

func clamp(score float64) float64 {
	if score < 0.0 {
		return 0.0
	}
	if score > 1.0 {
		return 1.0
	}
	return score
}
