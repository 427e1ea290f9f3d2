package monetize

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Charan-r11/Hack-The-Future/constants"
	"github.com/Charan-r11/Hack-The-Future/internal/common"
	"github.com/Charan-r11/Hack-The-Future/internal/kvstore"
)

func TestCanAccessTruthTable(t *testing.T) {
	cases := []struct {
		tier    constants.Tier
		feature constants.Feature
		want    bool
	}{
		{constants.TierFree, constants.FeatureBasicSummary, true},
		{constants.TierFree, constants.FeatureRiskFlags, true},
		{constants.TierFree, constants.FeatureResponsibilityFlag, true},
		{constants.TierFree, constants.FeaturePremiumSummary, false},
		{constants.TierFree, constants.FeatureChatbot, false},
		{constants.TierFree, constants.FeatureLegalReview, false},
		{constants.TierPro, constants.FeatureBasicSummary, true},
		{constants.TierPro, constants.FeaturePremiumSummary, true},
		{constants.TierPro, constants.FeatureChatbot, true},
		{constants.TierPro, constants.FeatureVoiceReadout, true},
		{constants.TierPro, constants.FeatureLegalReview, true},
		{constants.TierPro, constants.FeatureBlockchainVerify, true},
	}
	for _, tc := range cases {
		assert.Equalf(t, tc.want, CanAccess(tc.tier, tc.feature),
			"tier=%s feature=%s", tc.tier, tc.feature)
	}
}

func newTestGate(t *testing.T, startingTokens int) (*Gate, *TierStore, *Ledger) {
	t.Helper()
	store := kvstore.NewMemoryStore()
	tiers := NewTierStore(store, nil)
	ledger := NewLedger(store, startingTokens, nil)
	return NewGate(tiers, ledger, nil), tiers, ledger
}

func TestTierDefaultsToFree(t *testing.T) {
	_, tiers, _ := newTestGate(t, 10)

	tier, err := tiers.Tier(context.Background(), "new-user")
	require.NoError(t, err)
	assert.Equal(t, constants.TierFree, tier)
}

func TestSetTierRoundTrip(t *testing.T) {
	_, tiers, _ := newTestGate(t, 10)
	ctx := context.Background()

	require.NoError(t, tiers.SetTier(ctx, "user-1", constants.TierPro))
	tier, err := tiers.Tier(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, constants.TierPro, tier)

	err = tiers.SetTier(ctx, "user-1", constants.Tier("platinum"))
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestAuthorizeRefusesBeforeCharging(t *testing.T) {
	// FREE user asks for a paid feature: refusal must come from the tier
	// table, and the balance must stay whole.
	gate, _, ledger := newTestGate(t, 10)
	ctx := context.Background()

	_, err := gate.Authorize(ctx, "user-1", constants.FeaturePremiumSummary)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrFeatureNotInTier)

	bal, err := ledger.Balance(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 10, bal.TokensRemaining)
}

func TestAuthorizeDebitsProUser(t *testing.T) {
	gate, tiers, ledger := newTestGate(t, 10)
	ctx := context.Background()
	require.NoError(t, tiers.SetTier(ctx, "user-1", constants.TierPro))

	receipt, err := gate.Authorize(ctx, "user-1", constants.FeaturePremiumSummary)
	require.NoError(t, err)
	assert.Equal(t, 10, receipt.Amount)

	bal, err := ledger.Balance(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 0, bal.TokensRemaining)
}

func TestAuthorizeInsufficientBalance(t *testing.T) {
	gate, tiers, ledger := newTestGate(t, 5)
	ctx := context.Background()
	require.NoError(t, tiers.SetTier(ctx, "user-1", constants.TierPro))

	_, err := gate.Authorize(ctx, "user-1", constants.FeatureLegalReview)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrInsufficientBalance)

	bal, err := ledger.Balance(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 5, bal.TokensRemaining)
}

func TestAuthorizeFreeFeatureProducesNoReceipt(t *testing.T) {
	gate, _, ledger := newTestGate(t, 10)
	ctx := context.Background()

	receipt, err := gate.Authorize(ctx, "user-1", constants.FeatureBasicSummary)
	require.NoError(t, err)
	assert.Empty(t, receipt.ReceiptID)

	bal, err := ledger.Balance(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 10, bal.TokensRemaining)
}

func TestCheckReportsReason(t *testing.T) {
	gate, _, _ := newTestGate(t, 10)

	access, err := gate.Check(context.Background(), "user-1", constants.FeatureChatbot)
	require.NoError(t, err)
	assert.False(t, access.AccessGranted)
	assert.NotEmpty(t, access.Reason)
}
