package extract

import (
	"context"
	"time"
)

// TextExtractor turns an uploaded document into plain text for analysis.
type TextExtractor interface {
	Extract(ctx context.Context, r ReaderAtSized) (TextExtractionResult, error)
}

// ReaderAtSized is what the PDF reader needs from an upload: random access
// plus the total size. multipart file headers and os.File both satisfy it.
type ReaderAtSized interface {
	ReadAt(p []byte, off int64) (int, error)
	Size() int64
}

type TextExtractionResult struct {
	Text     string
	Pages    int
	Duration time.Duration
	Warnings []string
}
