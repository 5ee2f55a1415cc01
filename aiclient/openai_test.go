package aiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/arcanum-go/config"
)

func openaiTestConfig() *config.AIConfig {
	return &config.AIConfig{
		Provider:       config.ProviderOpenAI,
		Temperature:    0.7,
		TopP:           0.9,
		RequestTimeout: 5 * time.Second,
		OpenAI: config.OpenAIConfig{
			APIKey:    "sk-test",
			Model:     "gpt-4o-mini",
			MaxTokens: 2000,
		},
	}
}

func newTestOpenAIClient(baseURL string) *OpenAIClient {
	c := NewOpenAIClient(openaiTestConfig())
	c.baseURL = baseURL
	return c
}

func TestOpenAIGenerate(t *testing.T) {
	var gotReq chatCompletionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		json.NewEncoder(w).Encode(chatCompletionResponse{
			Choices: []chatChoice{{Message: chatMessage{Role: "assistant", Content: "The cards speak."}}},
		})
	}))
	defer srv.Close()

	c := newTestOpenAIClient(srv.URL)
	text, err := c.Generate(context.Background(), "interpret these cards", nil)
	require.NoError(t, err)
	assert.Equal(t, "The cards speak.", text)

	assert.Equal(t, "gpt-4o-mini", gotReq.Model)
	require.Len(t, gotReq.Messages, 1)
	assert.Equal(t, "user", gotReq.Messages[0].Role)
	assert.Equal(t, "interpret these cards", gotReq.Messages[0].Content)
	assert.Equal(t, 2000, gotReq.MaxTokens)
}

func TestOpenAIGenerateBackendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"invalid api key"}}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := newTestOpenAIClient(srv.URL)
	_, err := c.Generate(context.Background(), "p", nil)
	require.Error(t, err)

	var genErr *GenerationError
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, KindBackendError, genErr.Kind)
	assert.Equal(t, "OpenAI", genErr.Backend)
}

func TestOpenAIGenerateInvalidResponse(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no choices", `{"choices":[]}`},
		{"empty content", `{"choices":[{"message":{"role":"assistant","content":""}}]}`},
		{"not json", `oops`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			c := newTestOpenAIClient(srv.URL)
			_, err := c.Generate(context.Background(), "p", nil)
			require.Error(t, err)

			var genErr *GenerationError
			require.True(t, errors.As(err, &genErr))
			assert.Equal(t, KindInvalidResponse, genErr.Kind)
		})
	}
}

func TestOpenAIStream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.True(t, req.Stream)

		io.WriteString(w, "data: {\"choices\":[{\"delta\":{\"content\":\"The \"}}]}\n\n")
		io.WriteString(w, "data: {\"choices\":[{\"delta\":{\"content\":\"cards.\"}}]}\n\n")
		io.WriteString(w, "data: [DONE]\n\n")
	}))
	defer srv.Close()

	c := newTestOpenAIClient(srv.URL)
	stream, err := c.Stream(context.Background(), "p", nil)
	require.NoError(t, err)
	defer stream.Close()

	var chunks []string
	for {
		chunk, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		chunks = append(chunks, chunk)
	}
	assert.Equal(t, []string{"The ", "cards."}, chunks)
}

func TestNewFallsBackToOllama(t *testing.T) {
	cfg := &config.AIConfig{Provider: "mystery-backend"}
	gen := New(cfg)
	_, ok := gen.(*OllamaClient)
	assert.True(t, ok)

	gen = New(&config.AIConfig{Provider: config.ProviderOpenAI})
	_, ok = gen.(*OpenAIClient)
	assert.True(t, ok)
}
