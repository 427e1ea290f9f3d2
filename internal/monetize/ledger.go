package monetize

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/Charan-r11/Hack-The-Future/constants"
	"github.com/Charan-r11/Hack-The-Future/internal/common"
	"github.com/Charan-r11/Hack-The-Future/internal/entity"
	"github.com/Charan-r11/Hack-The-Future/internal/kvstore"
)

const (
	balanceKeyPrefix = "balance/"
	receiptKeyPrefix = "receipt/"
)

// Ledger tracks per-user token balances and debit receipts. Balances are
// created lazily with the configured starting grant on first touch. Debits
// are atomic per user: a failed debit leaves the balance untouched.
type Ledger struct {
	store          kvstore.Store
	startingTokens int
	logger         *slog.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewLedger(store kvstore.Store, startingTokens int, logger *slog.Logger) *Ledger {
	if startingTokens < 0 {
		startingTokens = constants.DefaultStartingTokens
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Ledger{
		store:          store,
		startingTokens: startingTokens,
		logger:         logger,
		locks:          map[string]*sync.Mutex{},
	}
}

// userLock returns the mutex serializing balance mutations for one user.
func (l *Ledger) userLock(userID string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.locks[userID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[userID] = m
	}
	return m
}

// Balance returns the user's balance, creating it with the starting grant
// when the user is new.
func (l *Ledger) Balance(ctx context.Context, userID string) (entity.TokenBalance, error) {
	if userID == "" {
		return entity.TokenBalance{}, fmt.Errorf("%w: user id is required", common.ErrValidation)
	}
	lock := l.userLock(userID)
	lock.Lock()
	defer lock.Unlock()
	return l.loadOrCreate(ctx, userID)
}

func (l *Ledger) loadOrCreate(ctx context.Context, userID string) (entity.TokenBalance, error) {
	raw, err := l.store.Get(ctx, balanceKeyPrefix+userID)
	if errors.Is(err, kvstore.ErrKeyNotFound) {
		bal := entity.TokenBalance{
			UserID:          userID,
			TokensUsed:      0,
			TokensRemaining: l.startingTokens,
		}
		if err := l.saveBalance(ctx, bal); err != nil {
			return entity.TokenBalance{}, err
		}
		l.logger.Info("ledger.balance.created",
			"user_id", userID, "starting_tokens", l.startingTokens)
		return bal, nil
	}
	if err != nil {
		return entity.TokenBalance{}, fmt.Errorf("load balance: %w", err)
	}
	var bal entity.TokenBalance
	if err := json.Unmarshal(raw, &bal); err != nil {
		return entity.TokenBalance{}, fmt.Errorf("decode balance: %w", err)
	}
	return bal, nil
}

func (l *Ledger) saveBalance(ctx context.Context, bal entity.TokenBalance) error {
	raw, err := json.Marshal(bal)
	if err != nil {
		return fmt.Errorf("encode balance: %w", err)
	}
	if err := l.store.Put(ctx, balanceKeyPrefix+bal.UserID, raw); err != nil {
		return fmt.Errorf("save balance: %w", err)
	}
	return nil
}

// Debit withdraws amount tokens for a feature and writes a receipt. An
// insufficient balance fails without changing anything.
func (l *Ledger) Debit(ctx context.Context, userID string, amount int, feature constants.Feature) (entity.Receipt, error) {
	if userID == "" {
		return entity.Receipt{}, fmt.Errorf("%w: user id is required", common.ErrValidation)
	}
	if amount <= 0 {
		return entity.Receipt{}, fmt.Errorf("%w: debit amount must be positive", common.ErrValidation)
	}

	lock := l.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	bal, err := l.loadOrCreate(ctx, userID)
	if err != nil {
		return entity.Receipt{}, err
	}
	if bal.TokensRemaining < amount {
		l.logger.Warn("ledger.debit.insufficient",
			"user_id", userID, "amount", amount, "remaining", bal.TokensRemaining)
		return entity.Receipt{}, fmt.Errorf("%w: need %d tokens, have %d",
			common.ErrInsufficientBalance, amount, bal.TokensRemaining)
	}

	bal.TokensRemaining -= amount
	bal.TokensUsed += amount
	if err := l.saveBalance(ctx, bal); err != nil {
		return entity.Receipt{}, err
	}

	receipt := entity.NewReceipt(userID, amount, feature)
	raw, err := json.Marshal(receipt)
	if err != nil {
		return entity.Receipt{}, fmt.Errorf("encode receipt: %w", err)
	}
	if err := l.store.Put(ctx, receiptKey(userID, receipt.ReceiptID), raw); err != nil {
		return entity.Receipt{}, fmt.Errorf("save receipt: %w", err)
	}

	l.logger.Info("ledger.debit.ok",
		"user_id", userID,
		"amount", amount,
		"feature", feature,
		"receipt_id", receipt.ReceiptID,
		"remaining", bal.TokensRemaining,
	)
	return receipt, nil
}

// TopUp credits tokens to a user, creating the balance if needed.
func (l *Ledger) TopUp(ctx context.Context, userID string, amount int) (entity.TokenBalance, error) {
	if userID == "" {
		return entity.TokenBalance{}, fmt.Errorf("%w: user id is required", common.ErrValidation)
	}
	if amount <= 0 {
		return entity.TokenBalance{}, fmt.Errorf("%w: top-up amount must be positive", common.ErrValidation)
	}

	lock := l.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	bal, err := l.loadOrCreate(ctx, userID)
	if err != nil {
		return entity.TokenBalance{}, err
	}
	bal.TokensRemaining += amount
	if err := l.saveBalance(ctx, bal); err != nil {
		return entity.TokenBalance{}, err
	}
	l.logger.Info("ledger.topup.ok",
		"user_id", userID, "amount", amount, "remaining", bal.TokensRemaining)
	return bal, nil
}

// Receipts lists a user's debit receipts, newest first.
func (l *Ledger) Receipts(ctx context.Context, userID string) ([]entity.Receipt, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", common.ErrValidation)
	}
	entries, err := l.store.List(ctx, receiptKeyPrefix+userID+"/")
	if err != nil {
		return nil, fmt.Errorf("list receipts: %w", err)
	}
	receipts := make([]entity.Receipt, 0, len(entries))
	for key, raw := range entries {
		var r entity.Receipt
		if err := json.Unmarshal(raw, &r); err != nil {
			l.logger.Warn("ledger.receipts.skip_corrupt", "key", key, "error", err)
			continue
		}
		receipts = append(receipts, r)
	}
	sort.Slice(receipts, func(i, j int) bool {
		return receipts[i].Timestamp.After(receipts[j].Timestamp)
	})
	return receipts, nil
}

func receiptKey(userID, receiptID string) string {
	return receiptKeyPrefix + userID + "/" + receiptID
}
