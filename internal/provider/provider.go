// Package provider implements the AI backends that turn a natural-language
// description into a shell command, and the dispatcher that selects one.
package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/runger/ghostline/internal/config"
)

// DefaultTimeout bounds every provider call. The supervisor imposes no
// additional timeout beyond user-driven cancellation.
const DefaultTimeout = 10 * time.Second

// ErrUnknownProvider is returned by New for a provider name outside the
// supported set. It is a configuration error: surfaced immediately, never
// retried, never silently defaulted.
var ErrUnknownProvider = errors.New("unknown provider")

// ErrEmptyResponse is returned when a backend answers without text and
// without an explicit error.
var ErrEmptyResponse = errors.New("empty response")

// Provider converts a user's natural-language input into raw suggestion
// text. Implementations apply DefaultTimeout themselves.
type Provider interface {
	// Name returns the provider name (e.g. "anthropic").
	Name() string

	// Complete returns the raw suggestion text for the given input.
	Complete(ctx context.Context, input string) (string, error)
}

// New constructs the provider selected by the configuration. The set of
// backends is closed: an unknown name fails here, at construction time, so a
// misconfigured session can never reach the network.
func New(cfg *config.Config) (Provider, error) {
	pc := cfg.ProviderSettings()

	switch cfg.Provider {
	case "anthropic":
		return newAnthropicProvider(pc), nil
	case "openai":
		return newOpenAIProvider(pc), nil
	case "ollama":
		return newOllamaProvider(pc), nil
	default:
		return nil, fmt.Errorf("%w: %q (supported: anthropic, openai, ollama)", ErrUnknownProvider, cfg.Provider)
	}
}

// NormalizeInput prepares user input for transmission: embedded newlines
// become statement separators so the request body is a single message.
func NormalizeInput(input string) string {
	input = strings.ReplaceAll(input, "\r\n", "\n")
	input = strings.ReplaceAll(input, "\n", "; ")
	return strings.TrimSpace(input)
}

// newHTTPClient returns the client shared by the HTTP backends. Timeouts are
// enforced per request via context, not on the client.
func newHTTPClient() *http.Client {
	return &http.Client{}
}
