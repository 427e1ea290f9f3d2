package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Charan-r11/Hack-The-Future/constants"
	"github.com/Charan-r11/Hack-The-Future/internal/common"
	"github.com/Charan-r11/Hack-The-Future/internal/extract"
	"github.com/Charan-r11/Hack-The-Future/internal/monetize"
	"github.com/Charan-r11/Hack-The-Future/internal/pipeline"
	"github.com/Charan-r11/Hack-The-Future/internal/summary"
)

// DocumentHandler serves the analysis endpoints: upload, plain-text analysis,
// document Q&A, and the gated premium variants.
type DocumentHandler struct {
	processor *pipeline.Processor
	qa        *summary.QAService
	extractor extract.TextExtractor
	gate      *monetize.Gate
	logger    *slog.Logger
}

func NewDocumentHandler(processor *pipeline.Processor, qa *summary.QAService, extractor extract.TextExtractor, gate *monetize.Gate, logger *slog.Logger) *DocumentHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DocumentHandler{
		processor: processor,
		qa:        qa,
		extractor: extractor,
		gate:      gate,
		logger:    logger,
	}
}

// Upload accepts a multipart PDF, extracts its text, and runs the analysis.
func (h *DocumentHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "validation_failed",
			fmt.Errorf("missing file upload: %w", err))
		return
	}
	if ext := strings.ToLower(filepath.Ext(fileHeader.Filename)); ext != ".pdf" {
		RespondError(c, http.StatusBadRequest, "validation_failed",
			fmt.Errorf("%w: unsupported file type %q, expected .pdf", common.ErrValidation, ext))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		RespondAppError(c, fmt.Errorf("open upload: %w", err))
		return
	}
	defer func() {
		if err := file.Close(); err != nil {
			h.logger.Warn("upload file close error", "error", err)
		}
	}()

	extracted, err := h.extractor.Extract(c.Request.Context(),
		extract.SizedReaderAt{R: file, N: fileHeader.Size})
	if err != nil {
		RespondAppError(c, err)
		return
	}

	analysis, err := h.processor.Analyze(c.Request.Context(), extracted.Text)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, gin.H{
		"filename": fileHeader.Filename,
		"pages":    extracted.Pages,
		"analysis": analysis,
		"flags":    analysis.Summary.Flags(),
	})
}

type analyzeTextRequest struct {
	Text string `json:"text" binding:"required"`
}

// AnalyzeText runs the analysis over raw text, skipping extraction.
func (h *DocumentHandler) AnalyzeText(c *gin.Context) {
	var req analyzeTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "validation_failed", err)
		return
	}
	analysis, err := h.processor.Analyze(c.Request.Context(), req.Text)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, gin.H{"analysis": analysis, "flags": analysis.Summary.Flags()})
}

type askRequest struct {
	UserID   string `json:"user_id" binding:"required"`
	Text     string `json:"text" binding:"required"`
	Question string `json:"question" binding:"required"`
}

// Ask answers a question about a document. Chatbot access is gated and
// charged per question.
func (h *DocumentHandler) Ask(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "validation_failed", err)
		return
	}
	receipt, err := h.gate.Authorize(c.Request.Context(), req.UserID, constants.FeatureChatbot)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	answer, err := h.qa.Answer(c.Request.Context(), req.Text, req.Question)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, gin.H{"answer": answer, "receipt": receipt})
}

type premiumRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Text   string `json:"text" binding:"required"`
}

// PremiumSummary is the full analysis behind the premium_summary gate.
func (h *DocumentHandler) PremiumSummary(c *gin.Context) {
	h.gatedAnalysis(c, constants.FeaturePremiumSummary)
}

// LegalReview is the full analysis behind the legal_review gate.
func (h *DocumentHandler) LegalReview(c *gin.Context) {
	h.gatedAnalysis(c, constants.FeatureLegalReview)
}

func (h *DocumentHandler) gatedAnalysis(c *gin.Context, feature constants.Feature) {
	var req premiumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "validation_failed", err)
		return
	}
	receipt, err := h.gate.Authorize(c.Request.Context(), req.UserID, feature)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	analysis, err := h.processor.Analyze(c.Request.Context(), req.Text)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, gin.H{"analysis": analysis, "receipt": receipt})
}

// VoiceReadout returns the merged summary as readout text for client-side
// text-to-speech, behind the voice_readout gate.
func (h *DocumentHandler) VoiceReadout(c *gin.Context) {
	var req premiumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "validation_failed", err)
		return
	}
	receipt, err := h.gate.Authorize(c.Request.Context(), req.UserID, constants.FeatureVoiceReadout)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	analysis, err := h.processor.Analyze(c.Request.Context(), req.Text)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, gin.H{"readout_text": analysis.Summary.Summary, "receipt": receipt})
}
