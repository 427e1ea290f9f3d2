package llm

import (
	"context"

	"github.com/Charan-r11/Hack-The-Future/internal/entity"
)

// CompletionRequest is one single-turn call to the completion capability.
type CompletionRequest struct {
	System string
	User   string
	// JSONResponse asks the provider for a JSON-object response format.
	JSONResponse bool
}

// Completer is the opaque completion capability the analyzers depend on.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// ChunkAnalyzer extracts a structured ChunkResult from one chunk of document
// text. Implementations make exactly one attempt; retry policy belongs to the
// caller, which simply drops the chunk on failure.
type ChunkAnalyzer interface {
	AnalyzeChunk(ctx context.Context, chunk string) (entity.ChunkResult, error)
}
