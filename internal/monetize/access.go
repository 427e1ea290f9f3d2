package monetize

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/Charan-r11/Hack-The-Future/constants"
	"github.com/Charan-r11/Hack-The-Future/internal/common"
	"github.com/Charan-r11/Hack-The-Future/internal/entity"
	"github.com/Charan-r11/Hack-The-Future/internal/kvstore"
)

const tierKeyPrefix = "tier/"

// CanAccess reports whether a tier includes a feature. The decision uses the
// static tier table only; it never consults balances.
func CanAccess(tier constants.Tier, feature constants.Feature) bool {
	return slices.Contains(constants.TierFeatures(tier), feature)
}

// TierStore persists per-user subscription tiers. Unknown users default to
// the free tier.
type TierStore struct {
	store  kvstore.Store
	logger *slog.Logger
}

func NewTierStore(store kvstore.Store, logger *slog.Logger) *TierStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &TierStore{store: store, logger: logger}
}

func (t *TierStore) Tier(ctx context.Context, userID string) (constants.Tier, error) {
	if userID == "" {
		return "", fmt.Errorf("%w: user id is required", common.ErrValidation)
	}
	raw, err := t.store.Get(ctx, tierKeyPrefix+userID)
	if errors.Is(err, kvstore.ErrKeyNotFound) {
		return constants.TierFree, nil
	}
	if err != nil {
		return "", fmt.Errorf("load tier: %w", err)
	}
	return constants.ParseTier(string(raw)), nil
}

func (t *TierStore) SetTier(ctx context.Context, userID string, tier constants.Tier) error {
	if userID == "" {
		return fmt.Errorf("%w: user id is required", common.ErrValidation)
	}
	if tier != constants.TierFree && tier != constants.TierPro {
		return fmt.Errorf("%w: unknown tier %q", common.ErrValidation, tier)
	}
	if err := t.store.Put(ctx, tierKeyPrefix+userID, []byte(tier)); err != nil {
		return fmt.Errorf("save tier: %w", err)
	}
	t.logger.Info("tier.set.ok", "user_id", userID, "tier", tier)
	return nil
}

// Gate combines the tier check with the token debit. The tier check always
// runs first; a user outside the tier is refused before any balance is read
// or charged.
type Gate struct {
	tiers  *TierStore
	ledger *Ledger
	logger *slog.Logger
}

func NewGate(tiers *TierStore, ledger *Ledger, logger *slog.Logger) *Gate {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gate{tiers: tiers, ledger: ledger, logger: logger}
}

// Check reports whether the user's tier covers the feature, without charging.
func (g *Gate) Check(ctx context.Context, userID string, feature constants.Feature) (entity.FeatureAccess, error) {
	tier, err := g.tiers.Tier(ctx, userID)
	if err != nil {
		return entity.FeatureAccess{}, err
	}
	access := entity.FeatureAccess{UserID: userID, Feature: feature}
	if CanAccess(tier, feature) {
		access.AccessGranted = true
		access.Reason = fmt.Sprintf("feature included in %s tier", tier)
	} else {
		access.Reason = fmt.Sprintf("feature not available on %s tier", tier)
	}
	return access, nil
}

// Authorize charges the user for a feature. Order matters: the tier refusal
// comes back before any debit so a blocked user is never charged.
func (g *Gate) Authorize(ctx context.Context, userID string, feature constants.Feature) (entity.Receipt, error) {
	tier, err := g.tiers.Tier(ctx, userID)
	if err != nil {
		return entity.Receipt{}, err
	}
	if !CanAccess(tier, feature) {
		g.logger.Warn("gate.authorize.refused",
			"user_id", userID, "feature", feature, "tier", tier)
		return entity.Receipt{}, fmt.Errorf("%w: %s not available on %s tier",
			common.ErrFeatureNotInTier, feature, tier)
	}

	cost := constants.FeatureCost(feature)
	if cost == 0 {
		// Free features produce no receipt.
		return entity.Receipt{}, nil
	}
	receipt, err := g.ledger.Debit(ctx, userID, cost, feature)
	if err != nil {
		return entity.Receipt{}, err
	}
	return receipt, nil
}
