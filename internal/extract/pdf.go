package extract

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"rsc.io/pdf"

	"github.com/Charan-r11/Hack-The-Future/internal/common"
)

// SizedReaderAt adapts any io.ReaderAt with a known length to ReaderAtSized.
type SizedReaderAt struct {
	R io.ReaderAt
	N int64
}

func (s SizedReaderAt) ReadAt(p []byte, off int64) (int, error) { return s.R.ReadAt(p, off) }
func (s SizedReaderAt) Size() int64                             { return s.N }

// PDFExtractor pulls the embedded text layer out of a PDF. Scanned PDFs with
// no text layer come back empty and are rejected as extraction failures.
type PDFExtractor struct {
	logger *slog.Logger
}

func NewPDFExtractor(logger *slog.Logger) *PDFExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &PDFExtractor{logger: logger}
}

func (e *PDFExtractor) Extract(ctx context.Context, r ReaderAtSized) (result TextExtractionResult, err error) {
	start := time.Now()

	// The pdf package panics on some malformed files; treat that as a
	// normal extraction failure.
	defer func() {
		if rec := recover(); rec != nil {
			e.logger.Error("extract.pdf.panic", "panic", rec)
			result = TextExtractionResult{}
			err = fmt.Errorf("%w: malformed pdf: %v", common.ErrExtraction, rec)
		}
	}()

	reader, err := pdf.NewReader(r, r.Size())
	if err != nil {
		e.logger.Error("extract.pdf.open_failed", "error", err)
		return TextExtractionResult{}, fmt.Errorf("%w: open pdf: %v", common.ErrExtraction, err)
	}

	var (
		sb       strings.Builder
		warnings []string
	)
	pages := reader.NumPage()
	for i := 1; i <= pages; i++ {
		if err := ctx.Err(); err != nil {
			return TextExtractionResult{}, err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			warnings = append(warnings, fmt.Sprintf("page %d unreadable", i))
			continue
		}
		for _, text := range page.Content().Text {
			sb.WriteString(text.S)
			sb.WriteString(" ")
		}
		sb.WriteString("\n")
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		e.logger.Warn("extract.pdf.empty_text", "pages", pages)
		return TextExtractionResult{}, fmt.Errorf("%w: no extractable text in pdf", common.ErrExtraction)
	}

	e.logger.Info("extract.pdf.ok",
		"pages", pages,
		"text_len", len(text),
		"warnings", len(warnings),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return TextExtractionResult{
		Text:     text,
		Pages:    pages,
		Duration: time.Since(start),
		Warnings: warnings,
	}, nil
}
