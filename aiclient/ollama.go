package aiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/user/arcanum-go/config"
)

const ollamaBackendName = "Ollama"

// ollamaOptions is the sampling options object of the generate API.
type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
	NumPredict  *int    `json:"num_predict,omitempty"`
}

// ollamaGenerateRequest is the body of POST /api/generate.
type ollamaGenerateRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options"`
}

// ollamaGenerateResponse is one response object: the whole body when
// stream=false, one NDJSON line when stream=true.
type ollamaGenerateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// OllamaClient talks to a local Ollama inference server.
type OllamaClient struct {
	httpClient *http.Client
	cfg        *config.AIConfig
}

// NewOllamaClient creates a client for the configured Ollama server.
func NewOllamaClient(cfg *config.AIConfig) *OllamaClient {
	return &OllamaClient{httpClient: newHTTPClient(), cfg: cfg}
}

func (c *OllamaClient) buildRequest(ctx context.Context, prompt string, opts *Options, stream bool) (*http.Request, error) {
	body := ollamaGenerateRequest{
		Model:  c.cfg.Ollama.Model,
		Prompt: prompt,
		Stream: stream,
		Options: ollamaOptions{
			Temperature: c.cfg.Temperature,
			TopP:        c.cfg.TopP,
		},
	}
	if opts != nil {
		if opts.Temperature != nil {
			body.Options.Temperature = *opts.Temperature
		}
		if opts.TopP != nil {
			body.Options.TopP = *opts.TopP
		}
		if opts.MaxTokens != nil {
			body.Options.NumPredict = opts.MaxTokens
		}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Ollama.APIURL+"/api/generate", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// do sends the request and classifies transport and status failures. The
// returned body is open; the caller owns it.
func (c *OllamaClient) do(ctx context.Context, prompt string, opts *Options, stream bool) (*http.Response, *GenerationError) {
	req, err := c.buildRequest(ctx, prompt, opts, stream)
	if err != nil {
		return nil, &GenerationError{Kind: KindBackendError, Backend: ollamaBackendName, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransportError(ollamaBackendName, ctx, err)
	}

	if resp.StatusCode != http.StatusOK {
		errorText, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		log.Error().Str("backend", ollamaBackendName).Str("status", resp.Status).
			Bytes("body", errorText).Msg("generation backend returned an error")
		return nil, &GenerationError{
			Kind:    KindBackendError,
			Backend: ollamaBackendName,
			Status:  resp.Status,
			Err:     fmt.Errorf("API returned %s: %s", resp.Status, errorText),
		}
	}
	return resp, nil
}

// Generate implements Generator.
func (c *OllamaClient) Generate(ctx context.Context, prompt string, opts *Options) (string, error) {
	ctx, cancel := withTimeout(ctx, c.cfg.RequestTimeout)
	defer cancel()

	resp, genErr := c.do(ctx, prompt, opts, false)
	if genErr != nil {
		return "", genErr
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", classifyTransportError(ollamaBackendName, ctx, err)
	}

	var result ollamaGenerateResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		return "", &GenerationError{Kind: KindInvalidResponse, Backend: ollamaBackendName, Err: err}
	}
	if result.Response == "" {
		return "", &GenerationError{
			Kind:    KindInvalidResponse,
			Backend: ollamaBackendName,
			Err:     fmt.Errorf("response field missing from body"),
		}
	}
	return result.Response, nil
}

// Stream implements Generator. Ollama streams NDJSON objects, one per line,
// ending with an object whose done field is true.
func (c *OllamaClient) Stream(ctx context.Context, prompt string, opts *Options) (*Stream, error) {
	ctx, cancel := withTimeout(ctx, c.cfg.RequestTimeout)

	resp, genErr := c.do(ctx, prompt, opts, true)
	if genErr != nil {
		cancel()
		return nil, genErr
	}

	return newStream(ctx, cancel, resp.Body, ollamaBackendName, parseOllamaLine), nil
}

// parseOllamaLine extracts the chunk from one NDJSON line.
func parseOllamaLine(line []byte) (string, bool, error) {
	var chunk ollamaGenerateResponse
	if err := json.Unmarshal(line, &chunk); err != nil {
		return "", false, err
	}
	return chunk.Response, chunk.Done, nil
}
