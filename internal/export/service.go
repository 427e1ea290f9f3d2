package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Charan-r11/Hack-The-Future/internal/entity"
	"github.com/Charan-r11/Hack-The-Future/internal/monetize"
)

// Service produces XLSX bytes for usage exports.
type Service struct {
	ledger *monetize.Ledger
	logger *slog.Logger
}

func NewService(ledger *monetize.Ledger, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{ledger: ledger, logger: logger}
}

// ExportReceiptsXLSX returns an XLSX workbook (as bytes) of a user's token
// debit receipts within the optional date window.
// If only from is provided -> from..today (inclusive).
// If only to is provided   -> beginning..to (inclusive).
// If neither is provided   -> all receipts for the user.
func (s *Service) ExportReceiptsXLSX(ctx context.Context, userID string, from, to *time.Time) ([]byte, error) {
	start := time.Now()

	receipts, err := s.ledger.Receipts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("query receipts: %w", err)
	}
	receipts = filterWindow(receipts, from, to)

	f := excelize.NewFile()
	const sheet = "Usage"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		_, err := f.NewSheet(sheet)
		if err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"Date",
		"Receipt ID",
		"Feature",
		"Tokens",
		"Status",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, r := range receipts {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
		write(1, r.Timestamp.Format("2006-01-02 15:04"))
		write(2, r.ReceiptID)
		write(3, string(r.Feature))
		write(4, r.Amount)
		write(5, string(r.Status))
		row++
	}

	_ = f.SetColWidth(sheet, "A", "A", 18) // date
	_ = f.SetColWidth(sheet, "B", "B", 40) // receipt id
	_ = f.SetColWidth(sheet, "C", "C", 24) // feature
	_ = f.SetColWidth(sheet, "D", "E", 12) // tokens, status

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"user_id", userID,
		"rows", len(receipts),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

// filterWindow keeps receipts inside the inclusive date window, normalized
// to date-only UTC bounds.
func filterWindow(receipts []entity.Receipt, from, to *time.Time) []entity.Receipt {
	if from == nil && to == nil {
		return receipts
	}
	var lower, upper time.Time
	if from != nil {
		lower = time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	}
	if to != nil {
		upper = time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC).Add(24 * time.Hour)
	} else if from != nil {
		today := time.Now().UTC()
		upper = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC).Add(24 * time.Hour)
	}

	out := make([]entity.Receipt, 0, len(receipts))
	for _, r := range receipts {
		if from != nil && r.Timestamp.Before(lower) {
			continue
		}
		if !upper.IsZero() && !r.Timestamp.Before(upper) {
			continue
		}
		out = append(out, r)
	}
	return out
}
