package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Charan-r11/Hack-The-Future/internal/certify"
	"github.com/Charan-r11/Hack-The-Future/internal/common"
	"github.com/Charan-r11/Hack-The-Future/internal/export"
	"github.com/Charan-r11/Hack-The-Future/internal/extract"
	"github.com/Charan-r11/Hack-The-Future/internal/kvstore"
	"github.com/Charan-r11/Hack-The-Future/internal/llm"
	"github.com/Charan-r11/Hack-The-Future/internal/llm/openai"
	"github.com/Charan-r11/Hack-The-Future/internal/monetize"
	"github.com/Charan-r11/Hack-The-Future/internal/pipeline"
	"github.com/Charan-r11/Hack-The-Future/internal/server"
	"github.com/Charan-r11/Hack-The-Future/internal/summary"
	"github.com/Charan-r11/Hack-The-Future/internal/tokenize"
	"github.com/Charan-r11/Hack-The-Future/internal/trust"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("opening store", "backend", cfg.Store.Backend, "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("closing store", "error", err)
		}
	}()

	counter := tokenize.Estimator{}
	chunker := tokenize.NewChunker(counter, cfg.Pipeline.MaxChunkTokens, logger)

	completer := openai.NewClient(openai.Config{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
	}, logger)

	var analyzer llm.ChunkAnalyzer
	if cfg.LLM.Analyzer == "keyword" {
		analyzer = llm.NewKeywordAnalyzer(logger)
	} else {
		analyzer = llm.NewAnalyzer(completer, logger)
	}

	aggregator := summary.NewAggregator(analyzer, cfg.Pipeline.Concurrency, logger)
	qa := summary.NewQAService(completer, chunker, logger)

	trustClient := trust.NewClient(trust.Config{
		APIURL:  cfg.Trust.APIURL,
		Token:   cfg.Trust.Token,
		Network: cfg.Trust.Network,
		Timeout: cfg.Trust.Timeout,
	}, logger)
	verifier := trust.NewVerifier(trustClient, logger)

	processor := pipeline.NewProcessor(counter, chunker, aggregator, verifier, logger)

	ledger := monetize.NewLedger(store, cfg.Pipeline.StartingTokens, logger)
	tiers := monetize.NewTierStore(store, logger)
	gate := monetize.NewGate(tiers, ledger, logger)
	orgs := monetize.NewOrgService(store, logger)
	certSvc := certify.NewService(store, trustClient, logger)
	exporter := export.NewService(ledger, logger)

	router := server.NewRouter(server.RouterConfig{
		AllowOrigins:       cfg.Server.AllowOrigins,
		DocumentHandler:    server.NewDocumentHandler(processor, qa, extract.NewPDFExtractor(logger), gate, logger),
		TokenHandler:       server.NewTokenHandler(ledger, tiers, gate, exporter, logger),
		CertificateHandler: server.NewCertificateHandler(certSvc, logger),
		OrgHandler:         server.NewOrgHandler(orgs, processor, logger),
	})

	srv := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server.listen", "addr", cfg.Server.HTTPAddr, "store", cfg.Store.Backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("server.shutdown.start")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	logger.Info("server.shutdown.ok")
}

func openStore(ctx context.Context, cfg *common.Config, logger *slog.Logger) (kvstore.Store, error) {
	switch cfg.Store.Backend {
	case "sqlite":
		return kvstore.OpenSQLite(ctx, cfg.Store.SQLitePath, logger)
	case "postgres":
		return kvstore.OpenPostgres(ctx, cfg.Store.PostgresDSN, logger)
	case "redis":
		return kvstore.OpenRedis(ctx, cfg.Store.RedisAddr, cfg.Store.RedisDB, logger)
	default:
		return kvstore.NewMemoryStore(), nil
	}
}
