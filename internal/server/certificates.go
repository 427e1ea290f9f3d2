package server

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Charan-r11/Hack-The-Future/internal/certify"
)

// CertificateHandler serves consent-certificate issuance and lifecycle.
type CertificateHandler struct {
	svc    *certify.Service
	logger *slog.Logger
}

func NewCertificateHandler(svc *certify.Service, logger *slog.Logger) *CertificateHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CertificateHandler{svc: svc, logger: logger}
}

type issueCertificateRequest struct {
	OrgID            string `json:"org_id"`
	UserID           string `json:"user_id" binding:"required"`
	DocumentText     string `json:"document_text" binding:"required"`
	SummaryCompleted bool   `json:"summary_completed"`
	QACompleted      bool   `json:"qa_completed"`
}

func (h *CertificateHandler) Issue(c *gin.Context) {
	var req issueCertificateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "validation_failed", err)
		return
	}
	cert, err := h.svc.Issue(c.Request.Context(), certify.IssueRequest{
		OrgID:            req.OrgID,
		UserID:           req.UserID,
		DocumentText:     req.DocumentText,
		SummaryCompleted: req.SummaryCompleted,
		QACompleted:      req.QACompleted,
	})
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, cert)
}

func (h *CertificateHandler) Get(c *gin.Context) {
	cert, err := h.svc.Get(c.Request.Context(), c.Param("certificate_id"))
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, cert)
}

func (h *CertificateHandler) Revoke(c *gin.Context) {
	cert, err := h.svc.Revoke(c.Request.Context(), c.Param("certificate_id"))
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, cert)
}

func (h *CertificateHandler) Verify(c *gin.Context) {
	certID := c.Param("certificate_id")
	valid, err := h.svc.Verify(c.Request.Context(), certID)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, gin.H{"certificate_id": certID, "valid": valid})
}
