package monetize

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Charan-r11/Hack-The-Future/constants"
	"github.com/Charan-r11/Hack-The-Future/internal/common"
	"github.com/Charan-r11/Hack-The-Future/internal/kvstore"
)

func newTestLedger(t *testing.T, startingTokens int) *Ledger {
	t.Helper()
	return NewLedger(kvstore.NewMemoryStore(), startingTokens, nil)
}

func TestBalanceLazyCreation(t *testing.T) {
	l := newTestLedger(t, 10)

	bal, err := l.Balance(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", bal.UserID)
	assert.Equal(t, 10, bal.TokensRemaining)
	assert.Equal(t, 0, bal.TokensUsed)

	// Second read sees the stored balance, not a fresh grant.
	again, err := l.Balance(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, bal, again)
}

func TestDebitMovesTokensAndWritesReceipt(t *testing.T) {
	l := newTestLedger(t, 10)
	ctx := context.Background()

	receipt, err := l.Debit(ctx, "user-1", 5, constants.FeatureVoiceReadout)
	require.NoError(t, err)
	assert.NotEmpty(t, receipt.ReceiptID)
	assert.Equal(t, "user-1", receipt.UserID)
	assert.Equal(t, 5, receipt.Amount)
	assert.Equal(t, constants.FeatureVoiceReadout, receipt.Feature)
	assert.Equal(t, constants.ReceiptCompleted, receipt.Status)

	bal, err := l.Balance(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 5, bal.TokensRemaining)
	assert.Equal(t, 5, bal.TokensUsed)

	receipts, err := l.Receipts(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, receipts, 1)
	assert.Equal(t, receipt.ReceiptID, receipts[0].ReceiptID)
}

func TestDebitInsufficientBalanceLeavesBalanceUntouched(t *testing.T) {
	l := newTestLedger(t, 3)
	ctx := context.Background()

	_, err := l.Debit(ctx, "user-1", 5, constants.FeatureVoiceReadout)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrInsufficientBalance)

	bal, err := l.Balance(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 3, bal.TokensRemaining)
	assert.Equal(t, 0, bal.TokensUsed)

	receipts, err := l.Receipts(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, receipts)
}

func TestDebitRejectsNonPositiveAmount(t *testing.T) {
	l := newTestLedger(t, 10)

	_, err := l.Debit(context.Background(), "user-1", 0, constants.FeatureChatbot)
	require.Error(t, err)
	_, err = l.Debit(context.Background(), "user-1", -2, constants.FeatureChatbot)
	require.Error(t, err)
}

func TestConcurrentDebitsExactlyOneSucceeds(t *testing.T) {
	// Balance covers one debit of 10; the other racer must see insufficient
	// funds, never a negative balance.
	l := newTestLedger(t, 10)
	ctx := context.Background()

	const racers = 2
	errs := make([]error, racers)
	var wg sync.WaitGroup
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = l.Debit(ctx, "user-1", 10, constants.FeaturePremiumSummary)
		}()
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		}
	}
	assert.Equal(t, 1, succeeded)

	bal, err := l.Balance(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 0, bal.TokensRemaining)
}

func TestTopUp(t *testing.T) {
	l := newTestLedger(t, 10)

	bal, err := l.TopUp(context.Background(), "user-1", 15)
	require.NoError(t, err)
	assert.Equal(t, 25, bal.TokensRemaining)
}
