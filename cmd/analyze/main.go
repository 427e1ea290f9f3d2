package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"

	"github.com/Charan-r11/Hack-The-Future/internal/common"
	"github.com/Charan-r11/Hack-The-Future/internal/extract"
	"github.com/Charan-r11/Hack-The-Future/internal/llm"
	"github.com/Charan-r11/Hack-The-Future/internal/llm/openai"
	"github.com/Charan-r11/Hack-The-Future/internal/pipeline"
	"github.com/Charan-r11/Hack-The-Future/internal/summary"
	"github.com/Charan-r11/Hack-The-Future/internal/tokenize"
	"github.com/Charan-r11/Hack-The-Future/internal/trust"
)

// One-shot analysis of a PDF from the command line. Prints the analysis as
// JSON to stdout. Set ANALYZER=keyword to run fully offline.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	slog.SetDefault(logger)

	if len(os.Args) < 2 {
		logger.Error("usage: analyze <file.pdf>")
		os.Exit(2)
	}
	path := os.Args[1]

	cfg := common.LoadConfig()
	if cfg.LLM.Analyzer == "model" && cfg.LLM.APIKey == "" {
		logger.Error("OPENAI_API_KEY env var is required (or set ANALYZER=keyword)")
		os.Exit(2)
	}

	ctx := context.Background()

	file, err := os.Open(path)
	if err != nil {
		logger.Error("opening file", "path", path, "error", err)
		os.Exit(1)
	}
	defer func() { _ = file.Close() }()
	info, err := file.Stat()
	if err != nil {
		logger.Error("stat file", "path", path, "error", err)
		os.Exit(1)
	}

	extractor := extract.NewPDFExtractor(logger)
	extracted, err := extractor.Extract(ctx, extract.SizedReaderAt{R: file, N: info.Size()})
	if err != nil {
		logger.Error("extracting text", "path", path, "error", err)
		os.Exit(1)
	}

	var analyzer llm.ChunkAnalyzer
	if cfg.LLM.Analyzer == "keyword" {
		analyzer = llm.NewKeywordAnalyzer(logger)
	} else {
		completer := openai.NewClient(openai.Config{
			APIKey:      cfg.LLM.APIKey,
			BaseURL:     cfg.LLM.BaseURL,
			Model:       cfg.LLM.Model,
			Temperature: cfg.LLM.Temperature,
			Timeout:     cfg.LLM.Timeout,
		}, logger)
		analyzer = llm.NewAnalyzer(completer, logger)
	}

	counter := tokenize.Estimator{}
	chunker := tokenize.NewChunker(counter, cfg.Pipeline.MaxChunkTokens, logger)
	aggregator := summary.NewAggregator(analyzer, cfg.Pipeline.Concurrency, logger)
	verifier := trust.NewVerifier(trust.NewClient(trust.Config{
		APIURL:  cfg.Trust.APIURL,
		Token:   cfg.Trust.Token,
		Network: cfg.Trust.Network,
		Timeout: cfg.Trust.Timeout,
	}, logger), logger)

	processor := pipeline.NewProcessor(counter, chunker, aggregator, verifier, logger)
	analysis, err := processor.Analyze(ctx, extracted.Text)
	if err != nil {
		logger.Error("analysis failed", "path", path, "error", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(analysis); err != nil {
		logger.Error("encoding output", "error", err)
		os.Exit(1)
	}
}
