// Package openai implements the definition provider on the OpenAI
// chat-completions API. Lemmas are sent in fixed-size batches with a
// function-calling schema constraining the response shape; responses
// are schema-checked before anything reaches the rest of the system.
package openai

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/heartmarshall/mydutch-backend/internal/config"
	"github.com/heartmarshall/mydutch-backend/internal/domain"
)

// Client generates definitions for Dutch lemmas via the provider API.
type Client struct {
	client         *openai.Client
	model          string
	batchSize      int
	maxAttempts    int
	retryBackoff   time.Duration
	requestTimeout time.Duration
	log            *slog.Logger
}

// NewClient creates a definition client from ProviderConfig. A missing
// API key is a construction-time failure (domain.ErrConfiguration);
// credentials are injected here, never read from the environment later.
func NewClient(logger *slog.Logger, cfg config.ProviderConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai: api key is required: %w", domain.ErrConfiguration)
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("openai: model is required: %w", domain.ErrConfiguration)
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 20
	}
	maxAttempts := cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	requestTimeout := cfg.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = 60 * time.Second
	}

	return &Client{
		client:         openai.NewClientWithConfig(clientCfg),
		model:          cfg.Model,
		batchSize:      batchSize,
		maxAttempts:    maxAttempts,
		retryBackoff:   cfg.RetryBackoff,
		requestTimeout: requestTimeout,
		log:            logger.With("adapter", "openai"),
	}, nil
}

// GenerateDefinitions produces one DefinitionRecord per deduplicated
// lemma. Lemmas are deduplicated case-insensitively preserving
// first-seen order, partitioned into batches of at most batchSize, and
// issued sequentially. Within a batch, results are re-ordered to the
// request order; batches are concatenated in issue order.
//
// Any failing batch fails the whole call: partial vocabulary is of
// limited use, so nothing is returned unless every batch succeeded.
func (c *Client) GenerateDefinitions(ctx context.Context, lemmas []string) ([]domain.DefinitionRecord, error) {
	if len(lemmas) == 0 {
		return []domain.DefinitionRecord{}, nil
	}

	deduped := dedupe(lemmas)
	batches := partition(deduped, c.batchSize)

	records := make([]domain.DefinitionRecord, 0, len(deduped))
	for i, batch := range batches {
		c.log.InfoContext(ctx, "requesting definitions",
			slog.Int("batch", i+1),
			slog.Int("batches", len(batches)),
			slog.Int("lemmas", len(batch)),
		)

		batchRecords, err := c.generateBatch(ctx, batch)
		if err != nil {
			return nil, err
		}
		records = append(records, batchRecords...)
	}

	return records, nil
}

// generateBatch issues one batch request with bounded retries.
// Transport failures are retried up to maxAttempts with backoff; a
// malformed-but-received response is retried once with a reformulated
// request. Either exhaustion path surfaces a BatchError carrying the
// batch lemmas.
func (c *Client) generateBatch(ctx context.Context, batch []string) ([]domain.DefinitionRecord, error) {
	var (
		transportAttempts int
		reformulated      bool
	)

	for {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("generate definitions: %w", err)
		}

		args, err := c.call(ctx, batch, reformulated)
		if err != nil {
			transportAttempts++
			if transportAttempts >= c.maxAttempts || !isRetryable(err) {
				return nil, &domain.BatchError{
					Lemmas: batch,
					Reason: fmt.Sprintf("transport failure after %d attempt(s): %v", transportAttempts, err),
					Err:    domain.ErrProvider,
				}
			}
			c.log.WarnContext(ctx, "provider call failed, retrying",
				slog.Int("attempt", transportAttempts),
				slog.String("error", err.Error()),
			)
			c.sleep(ctx, transportAttempts)
			continue
		}

		records, err := parseBatchResponse(args, batch)
		if err == nil {
			return records, nil
		}

		if reformulated {
			return nil, &domain.BatchError{
				Lemmas: batch,
				Reason: fmt.Sprintf("response failed schema validation twice: %v", err),
				Err:    domain.ErrProvider,
			}
		}

		c.log.WarnContext(ctx, "malformed provider response, reformulating",
			slog.String("error", err.Error()),
		)
		reformulated = true
	}
}

// call performs one chat-completion request bounded by requestTimeout
// and returns the raw function-call arguments.
func (c *Client) call(ctx context.Context, batch []string, reformulated bool) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.requestTimeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(callCtx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt(batch, reformulated)},
		},
		Functions: []openai.FunctionDefinition{{
			Name:        definitionsFunctionName,
			Description: "Return definitions in the required JSON format",
			Parameters:  definitionsSchema,
		}},
		FunctionCall: openai.FunctionCall{Name: definitionsFunctionName},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty choices in response")
	}
	fc := resp.Choices[0].Message.FunctionCall
	if fc == nil {
		return "", fmt.Errorf("response carries no function call")
	}
	return fc.Arguments, nil
}

func (c *Client) sleep(ctx context.Context, attempt int) {
	backoff := c.retryBackoff
	if backoff <= 0 {
		backoff = time.Second
	}
	t := time.NewTimer(backoff * time.Duration(attempt))
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// dedupe removes duplicate lemmas case-insensitively, preserving
// first-seen order. A lemma requested twice must not be billed twice.
func dedupe(lemmas []string) []string {
	seen := make(map[string]struct{}, len(lemmas))
	out := make([]string, 0, len(lemmas))
	for _, l := range lemmas {
		norm := domain.NormalizeLemma(l)
		if norm == "" {
			continue
		}
		if _, ok := seen[norm]; ok {
			continue
		}
		seen[norm] = struct{}{}
		out = append(out, norm)
	}
	return out
}

// partition splits lemmas into consecutive chunks of at most size.
func partition(lemmas []string, size int) [][]string {
	var batches [][]string
	for len(lemmas) > 0 {
		n := size
		if n > len(lemmas) {
			n = len(lemmas)
		}
		batches = append(batches, lemmas[:n])
		lemmas = lemmas[n:]
	}
	return batches
}
