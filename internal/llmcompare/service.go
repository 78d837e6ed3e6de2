package llmcompare

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Result is one provider's answer within a comparison.
type Result struct {
	Provider string        `json:"provider"`
	Model    string        `json:"model"`
	Response string        `json:"response,omitempty"`
	Error    string        `json:"error,omitempty"`
	Elapsed  time.Duration `json:"elapsed_ms"`
}

// Request names which model each provider should answer with.
type Request struct {
	Prompt string            `json:"prompt"`
	Models map[string]string `json:"models"`
}

// Service fans a prompt out to every configured provider and waits for all
// of them. A failing provider contributes an error entry rather than sinking
// the whole comparison.
type Service struct {
	providers []Provider
	defaults  map[string]string
	log       zerolog.Logger
}

// Default models used when a comparison request does not pick one.
var defaultModels = map[string]string{
	"openai":    "gpt-4o-mini",
	"anthropic": "claude-3-5-haiku-20241022",
	"google":    "gemini-1.5-flash",
}

func NewService(providers []Provider, log zerolog.Logger) *Service {
	return &Service{providers: providers, defaults: defaultModels, log: log}
}

// Providers lists the configured provider names.
func (s *Service) Providers() []string {
	names := make([]string, len(s.providers))
	for i, p := range s.providers {
		names[i] = p.Name()
	}
	return names
}

// Models collects per-provider model lists. Provider failures surface as a
// missing key, not an error.
func (s *Service) Models(ctx context.Context) map[string][]string {
	out := make(map[string][]string)
	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, p := range s.providers {
		wg.Add(1)
		go func(p Provider) {
			defer wg.Done()
			models, err := p.Models(ctx)
			if err != nil {
				s.log.Warn().Str("provider", p.Name()).Err(err).Msg("model listing failed")
				return
			}
			mu.Lock()
			out[p.Name()] = models
			mu.Unlock()
		}(p)
	}
	wg.Wait()
	return out
}

// Compare sends the prompt to every provider concurrently and returns once
// all have answered or failed.
func (s *Service) Compare(ctx context.Context, req Request) []Result {
	results := make([]Result, len(s.providers))
	var wg sync.WaitGroup
	for i, p := range s.providers {
		wg.Add(1)
		go func(i int, p Provider) {
			defer wg.Done()
			model := req.Models[p.Name()]
			if model == "" {
				model = s.defaults[p.Name()]
			}
			start := time.Now()
			text, err := p.Complete(ctx, model, req.Prompt)
			r := Result{
				Provider: p.Name(),
				Model:    model,
				Elapsed:  time.Since(start) / time.Millisecond,
			}
			if err != nil {
				r.Error = err.Error()
			} else {
				r.Response = text
			}
			results[i] = r
		}(i, p)
	}
	wg.Wait()
	return results
}
