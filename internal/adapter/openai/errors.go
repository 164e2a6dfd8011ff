package openai

import (
	"errors"

	openai "github.com/sashabaranov/go-openai"
)

// isRetryable reports whether a transport error is worth another
// attempt. Rate limits and server-side failures are transient; other
// API rejections (bad request, invalid key) will not heal on retry.
// Network errors and per-request timeouts count as transient.
func isRetryable(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == 429 || apiErr.HTTPStatusCode >= 500
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode == 429 || reqErr.HTTPStatusCode >= 500
	}

	return true
}
