package aiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/user/arcanum-go/config"
)

const (
	openaiBackendName    = "OpenAI"
	defaultOpenAIBaseURL = "https://api.openai.com/v1"
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	TopP        float64       `json:"top_p"`
	MaxTokens   int           `json:"max_tokens"`
	Stream      bool          `json:"stream,omitempty"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
	Delta   chatMessage `json:"delta"`
}

// chatCompletionResponse is the chat-completion envelope; Delta is populated
// instead of Message on streamed chunks.
type chatCompletionResponse struct {
	Choices []chatChoice `json:"choices"`
}

// OpenAIClient talks to the OpenAI chat-completions API.
type OpenAIClient struct {
	httpClient *http.Client
	cfg        *config.AIConfig
	baseURL    string
}

// NewOpenAIClient creates a client for the cloud backend.
func NewOpenAIClient(cfg *config.AIConfig) *OpenAIClient {
	return &OpenAIClient{
		httpClient: newHTTPClient(),
		cfg:        cfg,
		baseURL:    defaultOpenAIBaseURL,
	}
}

func (c *OpenAIClient) buildRequest(ctx context.Context, prompt string, opts *Options, stream bool) (*http.Request, error) {
	body := chatCompletionRequest{
		Model:       c.cfg.OpenAI.Model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: c.cfg.Temperature,
		TopP:        c.cfg.TopP,
		MaxTokens:   c.cfg.OpenAI.MaxTokens,
		Stream:      stream,
	}
	if opts != nil {
		if opts.Temperature != nil {
			body.Temperature = *opts.Temperature
		}
		if opts.TopP != nil {
			body.TopP = *opts.TopP
		}
		if opts.MaxTokens != nil {
			body.MaxTokens = *opts.MaxTokens
		}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.OpenAI.APIKey)
	return req, nil
}

func (c *OpenAIClient) do(ctx context.Context, prompt string, opts *Options, stream bool) (*http.Response, *GenerationError) {
	req, err := c.buildRequest(ctx, prompt, opts, stream)
	if err != nil {
		return nil, &GenerationError{Kind: KindBackendError, Backend: openaiBackendName, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransportError(openaiBackendName, ctx, err)
	}

	if resp.StatusCode != http.StatusOK {
		errorText, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		log.Error().Str("backend", openaiBackendName).Str("status", resp.Status).
			Bytes("body", errorText).Msg("generation backend returned an error")
		return nil, &GenerationError{
			Kind:    KindBackendError,
			Backend: openaiBackendName,
			Status:  resp.Status,
			Err:     fmt.Errorf("API returned %s: %s", resp.Status, errorText),
		}
	}
	return resp, nil
}

// Generate implements Generator: the generated text is the first choice's
// message content.
func (c *OpenAIClient) Generate(ctx context.Context, prompt string, opts *Options) (string, error) {
	ctx, cancel := withTimeout(ctx, c.cfg.RequestTimeout)
	defer cancel()

	resp, genErr := c.do(ctx, prompt, opts, false)
	if genErr != nil {
		return "", genErr
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", classifyTransportError(openaiBackendName, ctx, err)
	}

	var result chatCompletionResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		return "", &GenerationError{Kind: KindInvalidResponse, Backend: openaiBackendName, Err: err}
	}
	if len(result.Choices) == 0 || result.Choices[0].Message.Content == "" {
		return "", &GenerationError{
			Kind:    KindInvalidResponse,
			Backend: openaiBackendName,
			Err:     fmt.Errorf("first choice message content missing from body"),
		}
	}
	return result.Choices[0].Message.Content, nil
}

// Stream implements Generator. OpenAI streams SSE events: "data: {json}"
// lines terminated by "data: [DONE]".
func (c *OpenAIClient) Stream(ctx context.Context, prompt string, opts *Options) (*Stream, error) {
	ctx, cancel := withTimeout(ctx, c.cfg.RequestTimeout)

	resp, genErr := c.do(ctx, prompt, opts, true)
	if genErr != nil {
		cancel()
		return nil, genErr
	}

	return newStream(ctx, cancel, resp.Body, openaiBackendName, parseOpenAILine), nil
}

// parseOpenAILine extracts the delta content from one SSE line. Lines
// without a data prefix are keep-alives and yield an empty chunk.
func parseOpenAILine(line []byte) (string, bool, error) {
	text := strings.TrimSpace(string(line))
	if text == "" || !strings.HasPrefix(text, "data: ") {
		return "", false, nil
	}
	data := strings.TrimPrefix(text, "data: ")
	if data == "[DONE]" {
		return "", true, nil
	}
	var chunk chatCompletionResponse
	if err := json.Unmarshal([]byte(data), &chunk); err != nil {
		return "", false, err
	}
	if len(chunk.Choices) == 0 {
		return "", false, nil
	}
	return chunk.Choices[0].Delta.Content, false, nil
}
