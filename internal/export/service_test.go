package export

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Charan-r11/Hack-The-Future/constants"
	"github.com/Charan-r11/Hack-The-Future/internal/kvstore"
	"github.com/Charan-r11/Hack-The-Future/internal/monetize"
)

func TestExportReceiptsXLSX(t *testing.T) {
	ledger := monetize.NewLedger(kvstore.NewMemoryStore(), 100, nil)
	ctx := context.Background()
	_, err := ledger.Debit(ctx, "user-1", 10, constants.FeaturePremiumSummary)
	require.NoError(t, err)
	_, err = ledger.Debit(ctx, "user-1", 5, constants.FeatureVoiceReadout)
	require.NoError(t, err)

	s := NewService(ledger, nil)
	raw, err := s.ExportReceiptsXLSX(ctx, "user-1", nil, nil)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Usage")
	require.NoError(t, err)
	require.Len(t, rows, 3) // header + two receipts
	assert.Equal(t, []string{"Date", "Receipt ID", "Feature", "Tokens", "Status"}, rows[0])
}

func TestExportReceiptsXLSXWindowFiltersOld(t *testing.T) {
	ledger := monetize.NewLedger(kvstore.NewMemoryStore(), 100, nil)
	ctx := context.Background()
	_, err := ledger.Debit(ctx, "user-1", 10, constants.FeaturePremiumSummary)
	require.NoError(t, err)

	s := NewService(ledger, nil)
	future := time.Now().UTC().Add(48 * time.Hour)
	raw, err := s.ExportReceiptsXLSX(ctx, "user-1", &future, nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Usage")
	require.NoError(t, err)
	assert.Len(t, rows, 1) // header only
}
