package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/Charan-r11/Hack-The-Future/constants"
)

// TokenBalance tracks a user's consumable tokens. used + remaining is
// conserved except by explicit top-up; remaining never goes negative.
type TokenBalance struct {
	UserID          string `json:"user_id"`
	TokensUsed      int    `json:"tokens_used"`
	TokensRemaining int    `json:"tokens_remaining"`
}

// Receipt records one completed token debit.
type Receipt struct {
	ReceiptID string                  `json:"receipt_id"`
	UserID    string                  `json:"user_id"`
	Amount    int                     `json:"amount"`
	Feature   constants.Feature       `json:"feature"`
	Timestamp time.Time               `json:"timestamp"`
	Status    constants.ReceiptStatus `json:"status"`
}

// NewReceipt stamps a completed debit receipt.
func NewReceipt(userID string, amount int, feature constants.Feature) Receipt {
	return Receipt{
		ReceiptID: uuid.New().String(),
		UserID:    userID,
		Amount:    amount,
		Feature:   feature,
		Timestamp: time.Now().UTC(),
		Status:    constants.ReceiptCompleted,
	}
}

// FeatureAccess is the outcome of a tier/feature lookup. Recomputed per call,
// never stored.
type FeatureAccess struct {
	UserID        string            `json:"user_id"`
	Feature       constants.Feature `json:"feature"`
	AccessGranted bool              `json:"access_granted"`
	Reason        string            `json:"reason,omitempty"`
}

// Organization is a B2B licensing record.
type Organization struct {
	OrgID          string    `json:"org_id"`
	Name           string    `json:"name"`
	Plan           string    `json:"plan"`
	APIKey         string    `json:"api_key"`
	TokenBalance   int       `json:"token_balance"`
	MonthlyLimit   int       `json:"monthly_limit"`
	UsageThisMonth int       `json:"usage_this_month"`
	CreatedAt      time.Time `json:"created_at"`
}
