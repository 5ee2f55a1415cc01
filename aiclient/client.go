// Package aiclient is the gateway to the text-generation backends. One
// backend is selected at construction time from configuration: a local
// Ollama inference server or the OpenAI chat-completions API. Both expose
// the same contract: given a prompt, return generated text (or a one-shot
// chunk stream), classified failures, a default timeout, and no internal
// retries. Retry policy belongs to the caller.
package aiclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/user/arcanum-go/config"
)

// FailureKind categorizes a generation failure.
type FailureKind int

const (
	// KindTimeout means the call exceeded its deadline and was aborted.
	KindTimeout FailureKind = iota
	// KindBackendError means the backend returned a non-success status or
	// was unreachable.
	KindBackendError
	// KindInvalidResponse means the backend answered 2xx but the body was
	// missing the expected text field.
	KindInvalidResponse
)

// GenerationError is the classified failure returned by every gateway
// operation. Status carries backend status info for logging; it is not
// client-facing.
type GenerationError struct {
	Kind    FailureKind
	Backend string
	Status  string
	Err     error
}

func (e *GenerationError) Error() string {
	switch e.Kind {
	case KindTimeout:
		return fmt.Sprintf("%s: request timed out", e.Backend)
	case KindInvalidResponse:
		return fmt.Sprintf("%s: invalid response structure", e.Backend)
	default:
		if e.Status != "" {
			return fmt.Sprintf("%s: backend error: %s", e.Backend, e.Status)
		}
		return fmt.Sprintf("%s: backend error", e.Backend)
	}
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// IsTimeout reports whether err is a generation timeout.
func IsTimeout(err error) bool {
	var genErr *GenerationError
	return errors.As(err, &genErr) && genErr.Kind == KindTimeout
}

// Options overrides sampling parameters for a single call. Nil fields fall
// back to the configured defaults.
type Options struct {
	Temperature *float64
	TopP        *float64
	MaxTokens   *int
}

// Generator is the capability the rest of the application depends on.
type Generator interface {
	// Generate issues prompt to the backend and returns the full generated
	// text. It honors ctx cancellation and applies the configured default
	// timeout; on failure it returns a *GenerationError.
	Generate(ctx context.Context, prompt string, opts *Options) (string, error)

	// Stream is the incremental variant: it returns a lazy, one-shot,
	// forward-only sequence of text chunks under the same timeout and
	// cancellation contract. Not restartable.
	Stream(ctx context.Context, prompt string, opts *Options) (*Stream, error)
}

// New constructs the configured Generator. An unknown provider falls back to
// the local backend with a warning, matching the routing behavior the
// frontends expect.
func New(cfg *config.AIConfig) Generator {
	switch cfg.Provider {
	case config.ProviderOllama:
		return NewOllamaClient(cfg)
	case config.ProviderOpenAI:
		return NewOpenAIClient(cfg)
	default:
		log.Warn().Str("provider", cfg.Provider).Msg("unknown AI provider, falling back to ollama")
		return NewOllamaClient(cfg)
	}
}

// withTimeout applies the gateway's default deadline on top of the caller's
// context. The caller's own cancellation and the timeout race; whichever
// fires first aborts the in-flight call.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return context.WithTimeout(ctx, timeout)
}

// classifyTransportError turns an http.Client error into a GenerationError.
func classifyTransportError(backend string, ctx context.Context, err error) *GenerationError {
	if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
		return &GenerationError{Kind: KindTimeout, Backend: backend, Err: err}
	}
	return &GenerationError{Kind: KindBackendError, Backend: backend, Err: err}
}

// newHTTPClient builds the transport shared by both backends. Timeouts are
// enforced per-request via context, not on the client, so streaming bodies
// can be read past the dial phase.
func newHTTPClient() *http.Client {
	return &http.Client{}
}
