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

func ollamaTestConfig(url string) *config.AIConfig {
	return &config.AIConfig{
		Provider:       config.ProviderOllama,
		Temperature:    0.7,
		TopP:           0.9,
		RequestTimeout: 5 * time.Second,
		Ollama:         config.OllamaConfig{APIURL: url, Model: "llama3.2"},
	}
}

func TestOllamaGenerate(t *testing.T) {
	var gotReq ollamaGenerateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		json.NewEncoder(w).Encode(ollamaGenerateResponse{Response: "The cards speak.", Done: true})
	}))
	defer srv.Close()

	c := NewOllamaClient(ollamaTestConfig(srv.URL))
	text, err := c.Generate(context.Background(), "interpret these cards", nil)
	require.NoError(t, err)
	assert.Equal(t, "The cards speak.", text)

	assert.Equal(t, "llama3.2", gotReq.Model)
	assert.Equal(t, "interpret these cards", gotReq.Prompt)
	assert.False(t, gotReq.Stream)
	assert.Equal(t, 0.7, gotReq.Options.Temperature)
	assert.Equal(t, 0.9, gotReq.Options.TopP)
}

func TestOllamaGenerateOptionOverrides(t *testing.T) {
	var gotReq ollamaGenerateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(ollamaGenerateResponse{Response: "ok", Done: true})
	}))
	defer srv.Close()

	temp, topP, maxTokens := 0.2, 0.5, 128
	c := NewOllamaClient(ollamaTestConfig(srv.URL))
	_, err := c.Generate(context.Background(), "p", &Options{
		Temperature: &temp,
		TopP:        &topP,
		MaxTokens:   &maxTokens,
	})
	require.NoError(t, err)

	assert.Equal(t, 0.2, gotReq.Options.Temperature)
	assert.Equal(t, 0.5, gotReq.Options.TopP)
	require.NotNil(t, gotReq.Options.NumPredict)
	assert.Equal(t, 128, *gotReq.Options.NumPredict)
}

func TestOllamaGenerateBackendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"model not found"}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewOllamaClient(ollamaTestConfig(srv.URL))
	_, err := c.Generate(context.Background(), "p", nil)
	require.Error(t, err)

	var genErr *GenerationError
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, KindBackendError, genErr.Kind)
	assert.Equal(t, "Ollama", genErr.Backend)
	assert.Contains(t, genErr.Status, "500")
}

func TestOllamaGenerateInvalidResponse(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty response field", `{"done":true}`},
		{"not json", `the oracle is silent`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			c := NewOllamaClient(ollamaTestConfig(srv.URL))
			_, err := c.Generate(context.Background(), "p", nil)
			require.Error(t, err)

			var genErr *GenerationError
			require.True(t, errors.As(err, &genErr))
			assert.Equal(t, KindInvalidResponse, genErr.Kind)
		})
	}
}

func TestOllamaGenerateTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Drain the body so the server detects the client disconnect and
		// cancels the request context; otherwise Close deadlocks.
		io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	}))
	defer srv.Close()

	cfg := ollamaTestConfig(srv.URL)
	cfg.RequestTimeout = 50 * time.Millisecond
	c := NewOllamaClient(cfg)

	start := time.Now()
	_, err := c.Generate(context.Background(), "p", nil)
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.True(t, IsTimeout(err))
	assert.Less(t, elapsed, 2*time.Second)
}

func TestOllamaStream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ollamaGenerateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.True(t, req.Stream)

		enc := json.NewEncoder(w)
		enc.Encode(ollamaGenerateResponse{Response: "The "})
		enc.Encode(ollamaGenerateResponse{Response: "cards "})
		enc.Encode(ollamaGenerateResponse{Response: "speak."})
		enc.Encode(ollamaGenerateResponse{Done: true})
	}))
	defer srv.Close()

	c := NewOllamaClient(ollamaTestConfig(srv.URL))
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
	assert.Equal(t, []string{"The ", "cards ", "speak."}, chunks)

	// Spent stream keeps reporting EOF.
	_, err = stream.Recv()
	assert.ErrorIs(t, err, io.EOF)
}

func TestOllamaStreamInvalidLine(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "{\"response\":\"ok\"}\nnot json at all\n")
	}))
	defer srv.Close()

	c := NewOllamaClient(ollamaTestConfig(srv.URL))
	stream, err := c.Stream(context.Background(), "p", nil)
	require.NoError(t, err)
	defer stream.Close()

	chunk, err := stream.Recv()
	require.NoError(t, err)
	assert.Equal(t, "ok", chunk)

	_, err = stream.Recv()
	var genErr *GenerationError
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, KindInvalidResponse, genErr.Kind)
}
