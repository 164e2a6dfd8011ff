// Package spacy implements the linguistic model boundary against a
// spaCy tagging sidecar. The sidecar exposes POST /tag, accepting raw
// text plus a language identifier and returning tokenized, lemmatized,
// POS-tagged output.
package spacy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/mydutch-backend/internal/config"
	"github.com/heartmarshall/mydutch-backend/internal/domain"
)

// Client fetches tagged tokens from the spaCy sidecar.
type Client struct {
	baseURL    string
	language   domain.Language
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a Client from TaggerConfig.
func NewClient(logger *slog.Logger, cfg config.TaggerConfig) *Client {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		language:   domain.Language(cfg.Language),
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "spacy"),
	}
}

// Tag sends text to the sidecar and returns the tagged tokens.
func (c *Client) Tag(ctx context.Context, text string) ([]domain.Token, error) {
	payload, err := json.Marshal(tagRequest{Text: text, Language: c.language.String()})
	if err != nil {
		return nil, fmt.Errorf("spacy: marshal request: %w", err)
	}

	c.log.DebugContext(ctx, "tag request", slog.Int("text_len", len(text)))

	resp, err := c.doWithRetry(ctx, payload)
	if err != nil {
		c.log.ErrorContext(ctx, "tag request failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("spacy: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("spacy: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("spacy: read body: %w", err)
	}

	var tr tagResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return nil, fmt.Errorf("spacy: decode json: %w", err)
	}

	tokens := mapTokens(tr)

	c.log.DebugContext(ctx, "tag response", slog.Int("tokens", len(tokens)))

	return tokens, nil
}

// doWithRetry posts the payload with a single retry on 5xx or network errors.
func (c *Client) doWithRetry(ctx context.Context, payload []byte) (*http.Response, error) {
	resp, err := c.post(ctx, payload)

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry {
		return resp, err
	}

	// Don't retry if context is already cancelled.
	if ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil && resp != nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
	}
	c.log.WarnContext(ctx, "tag retry", slog.String("reason", reason))

	// Close body from the failed attempt before retrying.
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	time.Sleep(500 * time.Millisecond)

	return c.post(ctx, payload)
}

func (c *Client) post(ctx context.Context, payload []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/tag", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.httpClient.Do(req)
}
