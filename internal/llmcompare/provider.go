// Package llmcompare sends one prompt to several hosted language models and
// collects the answers side by side.
package llmcompare

import (
	"context"
	"net/http"
	"time"
)

// Provider is one hosted model API.
type Provider interface {
	Name() string
	// Models lists the model identifiers the account can use.
	Models(ctx context.Context) ([]string, error)
	// Complete sends the prompt to one model and returns its text answer.
	Complete(ctx context.Context, model, prompt string) (string, error)
}

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: 60 * time.Second}
}
