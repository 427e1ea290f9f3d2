package server

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Charan-r11/Hack-The-Future/constants"
	"github.com/Charan-r11/Hack-The-Future/internal/export"
	"github.com/Charan-r11/Hack-The-Future/internal/monetize"
)

var errMissingParams = errors.New("user_id and feature query parameters are required")

// TokenHandler serves the monetization endpoints: balances, debits, tiers,
// access checks, and the receipts export.
type TokenHandler struct {
	ledger   *monetize.Ledger
	tiers    *monetize.TierStore
	gate     *monetize.Gate
	exporter *export.Service
	logger   *slog.Logger
}

func NewTokenHandler(ledger *monetize.Ledger, tiers *monetize.TierStore, gate *monetize.Gate, exporter *export.Service, logger *slog.Logger) *TokenHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TokenHandler{
		ledger:   ledger,
		tiers:    tiers,
		gate:     gate,
		exporter: exporter,
		logger:   logger,
	}
}

func (h *TokenHandler) Balance(c *gin.Context) {
	bal, err := h.ledger.Balance(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, bal)
}

type debitRequest struct {
	UserID  string `json:"user_id" binding:"required"`
	Feature string `json:"feature" binding:"required"`
}

// Debit charges a user for a feature through the gate, so the tier check
// always precedes the withdrawal.
func (h *TokenHandler) Debit(c *gin.Context) {
	var req debitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "validation_failed", err)
		return
	}
	receipt, err := h.gate.Authorize(c.Request.Context(), req.UserID, constants.Feature(req.Feature))
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, receipt)
}

type topUpRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Amount int    `json:"amount" binding:"required"`
}

func (h *TokenHandler) TopUp(c *gin.Context) {
	var req topUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "validation_failed", err)
		return
	}
	bal, err := h.ledger.TopUp(c.Request.Context(), req.UserID, req.Amount)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, bal)
}

func (h *TokenHandler) Tier(c *gin.Context) {
	userID := c.Param("user_id")
	tier, err := h.tiers.Tier(c.Request.Context(), userID)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, gin.H{
		"user_id":  userID,
		"tier":     tier,
		"features": constants.TierFeatures(tier),
	})
}

type upgradeRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Tier   string `json:"tier" binding:"required"`
}

func (h *TokenHandler) Upgrade(c *gin.Context) {
	var req upgradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "validation_failed", err)
		return
	}
	if err := h.tiers.SetTier(c.Request.Context(), req.UserID, constants.Tier(req.Tier)); err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, gin.H{"user_id": req.UserID, "tier": req.Tier})
}

// CheckAccess reports whether a user's tier covers a feature, without
// charging anything.
func (h *TokenHandler) CheckAccess(c *gin.Context) {
	userID := c.Query("user_id")
	feature := c.Query("feature")
	if userID == "" || feature == "" {
		RespondError(c, http.StatusBadRequest, "validation_failed",
			errMissingParams)
		return
	}
	access, err := h.gate.Check(c.Request.Context(), userID, constants.Feature(feature))
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, access)
}

// ExportReceipts streams the user's debit history as an XLSX workbook.
func (h *TokenHandler) ExportReceipts(c *gin.Context) {
	userID := c.Param("user_id")
	from, to, err := parseDateWindow(c.Query("from"), c.Query("to"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "validation_failed", err)
		return
	}
	raw, err := h.exporter.ExportReceiptsXLSX(c.Request.Context(), userID, from, to)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="usage.xlsx"`)
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", raw)
}

func parseDateWindow(fromStr, toStr string) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if fromStr != "" {
		t, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			return nil, nil, err
		}
		from = &t
	}
	if toStr != "" {
		t, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			return nil, nil, err
		}
		to = &t
	}
	return from, to, nil
}
