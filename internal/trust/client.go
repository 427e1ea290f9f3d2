package trust

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Config for the Masumi verification network client.
type Config struct {
	APIURL  string // e.g. https://payment.masumi.network
	Token   string
	Network string // preprod or mainnet
	Timeout time.Duration
}

// Client talks to the external verification network. It is a thin HTTP
// wrapper; fallback policy lives in the Verifier.
type Client struct {
	cfg        Config
	httpClient *http.Client
	log        *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.Network == "" {
		cfg.Network = "preprod"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        logger,
	}
}

type verifyResponse struct {
	TrustScore float64 `json:"trust_score"`
	IsVerified bool    `json:"is_verified"`
}

// VerifyDocument submits a document hash for scoring.
func (c *Client) VerifyDocument(ctx context.Context, requestID, documentHash, excerpt string) (verifyResponse, error) {
	body := map[string]any{
		"document_hash": documentHash,
		"excerpt":       excerpt,
		"network":       c.cfg.Network,
	}
	raw, err := c.post(ctx, "/verify", requestID, body)
	if err != nil {
		return verifyResponse{}, err
	}
	var out verifyResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return verifyResponse{}, fmt.Errorf("decode verify response: %w", err)
	}
	return out, nil
}

type registerResponse struct {
	AttestedHash string `json:"attested_hash"`
}

// RegisterHash anchors a certificate hash on the verification network and
// returns the attested hash it minted.
func (c *Client) RegisterHash(ctx context.Context, requestID, hash string) (string, error) {
	body := map[string]any{
		"hash":    hash,
		"network": c.cfg.Network,
	}
	raw, err := c.post(ctx, "/register", requestID, body)
	if err != nil {
		return "", err
	}
	var out registerResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("decode register response: %w", err)
	}
	if out.AttestedHash == "" {
		return "", fmt.Errorf("register response missing attested_hash")
	}
	return out.AttestedHash, nil
}

func (c *Client) post(ctx context.Context, path, requestID string, body map[string]any) ([]byte, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	url := strings.TrimRight(c.cfg.APIURL, "/") + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("verification network http error: %w", err)
	}
	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			c.log.Warn("verification network response body close error", "error", err)
		}
	}(resp.Body)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read verification network response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("verification network status %d: %s", resp.StatusCode, string(raw))
	}
	return raw, nil
}
