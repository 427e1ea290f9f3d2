package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type RouterConfig struct {
	AllowOrigins       []string
	DocumentHandler    *DocumentHandler
	TokenHandler       *TokenHandler
	CertificateHandler *CertificateHandler
	OrgHandler         *OrgHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With", apiKeyHeader},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", HealthCheck)

	api := router.Group("/api")
	{
		docs := api.Group("/documents")
		{
			docs.POST("/upload", cfg.DocumentHandler.Upload)
			docs.POST("/analyze", cfg.DocumentHandler.AnalyzeText)
			docs.POST("/ask", cfg.DocumentHandler.Ask)
			docs.POST("/premium-summary", cfg.DocumentHandler.PremiumSummary)
			docs.POST("/voice-readout", cfg.DocumentHandler.VoiceReadout)
			docs.POST("/legal-review", cfg.DocumentHandler.LegalReview)
		}

		tokens := api.Group("/tokens")
		{
			tokens.GET("/balance/:user_id", cfg.TokenHandler.Balance)
			tokens.POST("/debit", cfg.TokenHandler.Debit)
			tokens.POST("/topup", cfg.TokenHandler.TopUp)
			tokens.GET("/tier/:user_id", cfg.TokenHandler.Tier)
			tokens.POST("/upgrade", cfg.TokenHandler.Upgrade)
			tokens.GET("/check-access", cfg.TokenHandler.CheckAccess)
			tokens.GET("/receipts/:user_id/export", cfg.TokenHandler.ExportReceipts)
		}

		certs := api.Group("/certificates")
		{
			certs.POST("", cfg.CertificateHandler.Issue)
			certs.GET("/:certificate_id", cfg.CertificateHandler.Get)
			certs.POST("/:certificate_id/revoke", cfg.CertificateHandler.Revoke)
			certs.GET("/:certificate_id/verify", cfg.CertificateHandler.Verify)
		}

		orgs := api.Group("/orgs")
		{
			orgs.POST("", cfg.OrgHandler.Register)
			orgs.GET("/me", cfg.OrgHandler.Me)
			orgs.POST("/analyze", cfg.OrgHandler.AnalyzeDocument)
		}
	}

	return router
}

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
