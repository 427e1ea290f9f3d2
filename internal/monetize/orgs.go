package monetize

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Charan-r11/Hack-The-Future/constants"
	"github.com/Charan-r11/Hack-The-Future/internal/common"
	"github.com/Charan-r11/Hack-The-Future/internal/entity"
	"github.com/Charan-r11/Hack-The-Future/internal/kvstore"
)

const orgKeyPrefix = "org/"

// OrgService manages licensed organizations: API-key lookup, monthly quota
// accounting, and the per-document token charge for org-initiated analysis.
type OrgService struct {
	store  kvstore.Store
	logger *slog.Logger
}

func NewOrgService(store kvstore.Store, logger *slog.Logger) *OrgService {
	if logger == nil {
		logger = slog.Default()
	}
	return &OrgService{store: store, logger: logger}
}

// Register creates an organization with a fresh API key.
func (s *OrgService) Register(ctx context.Context, name, plan string, tokenBalance, monthlyLimit int) (entity.Organization, error) {
	if name == "" {
		return entity.Organization{}, fmt.Errorf("%w: organization name is required", common.ErrValidation)
	}
	if monthlyLimit <= 0 {
		return entity.Organization{}, fmt.Errorf("%w: monthly limit must be positive", common.ErrValidation)
	}
	org := entity.Organization{
		OrgID:          uuid.New().String(),
		Name:           name,
		Plan:           plan,
		APIKey:         uuid.New().String(),
		TokenBalance:   tokenBalance,
		MonthlyLimit:   monthlyLimit,
		UsageThisMonth: 0,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.save(ctx, org); err != nil {
		return entity.Organization{}, err
	}
	s.logger.Info("orgs.register.ok",
		"org_id", org.OrgID, "name", name, "plan", plan, "monthly_limit", monthlyLimit)
	return org, nil
}

// Get loads an organization by id.
func (s *OrgService) Get(ctx context.Context, orgID string) (entity.Organization, error) {
	raw, err := s.store.Get(ctx, orgKeyPrefix+orgID)
	if errors.Is(err, kvstore.ErrKeyNotFound) {
		return entity.Organization{}, fmt.Errorf("%w: organization %s", common.ErrNotFound, orgID)
	}
	if err != nil {
		return entity.Organization{}, fmt.Errorf("load organization: %w", err)
	}
	var org entity.Organization
	if err := json.Unmarshal(raw, &org); err != nil {
		return entity.Organization{}, fmt.Errorf("decode organization: %w", err)
	}
	return org, nil
}

// FindByAPIKey resolves the org owning an API key.
func (s *OrgService) FindByAPIKey(ctx context.Context, apiKey string) (entity.Organization, error) {
	if apiKey == "" {
		return entity.Organization{}, fmt.Errorf("%w: api key is required", common.ErrValidation)
	}
	entries, err := s.store.List(ctx, orgKeyPrefix)
	if err != nil {
		return entity.Organization{}, fmt.Errorf("list organizations: %w", err)
	}
	for key, raw := range entries {
		var org entity.Organization
		if err := json.Unmarshal(raw, &org); err != nil {
			s.logger.Warn("orgs.find.skip_corrupt", "key", key, "error", err)
			continue
		}
		if org.APIKey == apiKey {
			return org, nil
		}
	}
	return entity.Organization{}, fmt.Errorf("%w: no organization for api key", common.ErrNotFound)
}

// ChargeAnalysis records one org-initiated document analysis: it enforces the
// monthly quota, debits the per-document cost from the org balance, and bumps
// the usage counter.
func (s *OrgService) ChargeAnalysis(ctx context.Context, orgID string) (entity.Organization, error) {
	org, err := s.Get(ctx, orgID)
	if err != nil {
		return entity.Organization{}, err
	}
	if org.UsageThisMonth >= org.MonthlyLimit {
		s.logger.Warn("orgs.charge.quota_exceeded",
			"org_id", orgID, "usage", org.UsageThisMonth, "limit", org.MonthlyLimit)
		return entity.Organization{}, fmt.Errorf("%w: monthly analysis limit of %d reached",
			common.ErrFeatureNotInTier, org.MonthlyLimit)
	}
	cost := constants.FeatureCost(constants.FeatureOrgDocumentAnalysis)
	if org.TokenBalance < cost {
		s.logger.Warn("orgs.charge.insufficient",
			"org_id", orgID, "cost", cost, "balance", org.TokenBalance)
		return entity.Organization{}, fmt.Errorf("%w: need %d tokens, have %d",
			common.ErrInsufficientBalance, cost, org.TokenBalance)
	}

	org.TokenBalance -= cost
	org.UsageThisMonth++
	if err := s.save(ctx, org); err != nil {
		return entity.Organization{}, err
	}
	s.logger.Info("orgs.charge.ok",
		"org_id", orgID,
		"cost", cost,
		"balance", org.TokenBalance,
		"usage_this_month", org.UsageThisMonth,
	)
	return org, nil
}

// ResetMonthlyUsage zeroes the usage counter, e.g. at the billing rollover.
func (s *OrgService) ResetMonthlyUsage(ctx context.Context, orgID string) error {
	org, err := s.Get(ctx, orgID)
	if err != nil {
		return err
	}
	org.UsageThisMonth = 0
	if err := s.save(ctx, org); err != nil {
		return err
	}
	s.logger.Info("orgs.reset_usage.ok", "org_id", orgID)
	return nil
}

func (s *OrgService) save(ctx context.Context, org entity.Organization) error {
	raw, err := json.Marshal(org)
	if err != nil {
		return fmt.Errorf("encode organization: %w", err)
	}
	if err := s.store.Put(ctx, orgKeyPrefix+org.OrgID, raw); err != nil {
		return fmt.Errorf("save organization: %w", err)
	}
	return nil
}
