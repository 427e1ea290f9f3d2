package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Charan-r11/Hack-The-Future/internal/entity"
	"github.com/Charan-r11/Hack-The-Future/internal/monetize"
	"github.com/Charan-r11/Hack-The-Future/internal/pipeline"
)

const apiKeyHeader = "X-API-Key"

var errMissingAPIKey = errors.New("missing " + apiKeyHeader + " header")

// OrgHandler serves the B2B endpoints. Org identity rides on an API key
// header, not a user id.
type OrgHandler struct {
	orgs      *monetize.OrgService
	processor *pipeline.Processor
	logger    *slog.Logger
}

func NewOrgHandler(orgs *monetize.OrgService, processor *pipeline.Processor, logger *slog.Logger) *OrgHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &OrgHandler{orgs: orgs, processor: processor, logger: logger}
}

type registerOrgRequest struct {
	Name         string `json:"name" binding:"required"`
	Plan         string `json:"plan"`
	TokenBalance int    `json:"token_balance"`
	MonthlyLimit int    `json:"monthly_limit" binding:"required"`
}

func (h *OrgHandler) Register(c *gin.Context) {
	var req registerOrgRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "validation_failed", err)
		return
	}
	org, err := h.orgs.Register(c.Request.Context(), req.Name, req.Plan, req.TokenBalance, req.MonthlyLimit)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, org)
}

// Me returns the org record owning the presented API key, with the key
// itself redacted.
func (h *OrgHandler) Me(c *gin.Context) {
	org, err := h.authenticate(c)
	if err != nil {
		return
	}
	org.APIKey = ""
	RespondOK(c, org)
}

type orgAnalyzeRequest struct {
	Text string `json:"text" binding:"required"`
}

// AnalyzeDocument runs the analysis on behalf of an org, charging its token
// balance and monthly quota first.
func (h *OrgHandler) AnalyzeDocument(c *gin.Context) {
	org, err := h.authenticate(c)
	if err != nil {
		return
	}
	var req orgAnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "validation_failed", err)
		return
	}

	charged, err := h.orgs.ChargeAnalysis(c.Request.Context(), org.OrgID)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	analysis, err := h.processor.Analyze(c.Request.Context(), req.Text)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, gin.H{
		"analysis":         analysis,
		"token_balance":    charged.TokenBalance,
		"usage_this_month": charged.UsageThisMonth,
	})
}

// authenticate resolves the caller's org from the API key header, writing
// the error response itself on failure.
func (h *OrgHandler) authenticate(c *gin.Context) (entity.Organization, error) {
	apiKey := c.GetHeader(apiKeyHeader)
	if apiKey == "" {
		RespondError(c, http.StatusUnauthorized, "missing_api_key", errMissingAPIKey)
		return entity.Organization{}, errMissingAPIKey
	}
	org, err := h.orgs.FindByAPIKey(c.Request.Context(), apiKey)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "invalid_api_key", err)
		return entity.Organization{}, err
	}
	return org, nil
}
