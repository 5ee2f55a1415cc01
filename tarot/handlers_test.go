package tarot

import (
	"context"
	"encoding/json"
	"io"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/arcanum-go/aiclient"
	"github.com/user/arcanum-go/apperror"
	"github.com/user/arcanum-go/auth"
	"github.com/user/arcanum-go/config"
	"github.com/user/arcanum-go/deck"
)

// asUser injects the authenticated user ID the way the auth middleware does.
func asUser(userID int64) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), auth.UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func newTestRouter(svc *TarotService, userID int64) http.Handler {
	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(asUser(userID))
		NewTarotHandlers(svc).RegisterRoutes(r)
	})
	return r
}

func TestHandleGenerateReading(t *testing.T) {
	store := newFakeStore(map[int64]int64{1: 2})
	svc := newTestService(store, &fakeGenerator{text: "A hopeful spread."})
	router := newTestRouter(svc, 1)

	req := httptest.NewRequest(http.MethodPost, "/reading", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var result ReadingResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	assert.Equal(t, "A hopeful spread.", result.AIReading)
	assert.Equal(t, int64(1), result.RemainingTokens)
	assert.Len(t, result.Reading, 3)
	assert.NotEmpty(t, result.ReadingID)
}

func TestHandleGenerateReadingInsufficientTokens(t *testing.T) {
	store := newFakeStore(map[int64]int64{1: 0})
	svc := newTestService(store, &fakeGenerator{text: "unreachable"})
	router := newTestRouter(svc, 1)

	req := httptest.NewRequest(http.MethodPost, "/reading", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)

	var resp apperror.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "insufficient tokens", resp.Error)
	assert.EqualValues(t, 1, resp.Details["required"])
	assert.EqualValues(t, 0, resp.Details["available"])
}

func TestHandleGenerateReadingBackendDown(t *testing.T) {
	store := newFakeStore(map[int64]int64{1: 5})
	gen := &fakeGenerator{err: &aiclient.GenerationError{Kind: aiclient.KindBackendError, Backend: "Ollama"}}
	svc := newTestService(store, gen)
	router := newTestRouter(svc, 1)

	req := httptest.NewRequest(http.MethodPost, "/reading", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)

	// Failed generation must not cost a token.
	balance, err := store.GetBalance(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(5), balance)
}

func TestHandleChat(t *testing.T) {
	svc := newTestService(newFakeStore(map[int64]int64{1: 0}), &fakeGenerator{text: "Wisdom."})
	router := newTestRouter(svc, 1)

	body := strings.NewReader(`{"message":"Tell me more","previousReading":"A spread."}`)
	req := httptest.NewRequest(http.MethodPost, "/chat", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var result ChatResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	assert.Equal(t, "Wisdom.", result.Response)
}

func TestHandleChatBadRequests(t *testing.T) {
	svc := newTestService(newFakeStore(map[int64]int64{1: 0}), &fakeGenerator{text: "x"})
	router := newTestRouter(svc, 1)

	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{`},
		{"empty message", `{"message":"  "}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandleChatStream(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "{\"response\":\"The \"}\n")
		io.WriteString(w, "{\"response\":\"cards.\"}\n")
		io.WriteString(w, "{\"done\":true}\n")
	}))
	defer backend.Close()

	gen := aiclient.NewOllamaClient(&config.AIConfig{
		Provider:       config.ProviderOllama,
		RequestTimeout: 5 * time.Second,
		Ollama:         config.OllamaConfig{APIURL: backend.URL, Model: "llama3.2"},
	})
	store := newFakeStore(map[int64]int64{1: 0})
	selector := deck.NewSelector(deck.Default(), rand.New(rand.NewSource(1)))
	svc := NewTarotService(store, store, gen, selector, 1)
	router := newTestRouter(svc, 1)

	body := strings.NewReader(`{"message":"go on"}`)
	req := httptest.NewRequest(http.MethodPost, "/chat/stream", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))

	events := rec.Body.String()
	assert.Contains(t, events, `data: {"chunk":"The "}`)
	assert.Contains(t, events, `data: {"chunk":"cards."}`)
	assert.True(t, strings.HasSuffix(strings.TrimSpace(events), "data: [DONE]"))
}

func TestHandleGetReadingNotFound(t *testing.T) {
	store := newFakeStore(map[int64]int64{1: 5, 2: 5})
	svc := newTestService(store, &fakeGenerator{text: "mine"})

	result, err := svc.GenerateReading(context.Background(), 1)
	require.NoError(t, err)

	// The owner sees it; everyone else gets 404.
	ownerRouter := newTestRouter(svc, 1)
	req := httptest.NewRequest(http.MethodGet, "/readings/"+result.ReadingID, nil)
	rec := httptest.NewRecorder()
	ownerRouter.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	strangerRouter := newTestRouter(svc, 2)
	req = httptest.NewRequest(http.MethodGet, "/readings/"+result.ReadingID, nil)
	rec = httptest.NewRecorder()
	strangerRouter.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleListAndDeleteReadings(t *testing.T) {
	store := newFakeStore(map[int64]int64{1: 5})
	svc := newTestService(store, &fakeGenerator{text: "history"})
	router := newTestRouter(svc, 1)

	result, err := svc.GenerateReading(context.Background(), 1)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/readings?limit=10&offset=0", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var list ReadingListResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
	assert.Equal(t, int64(1), list.Total)

	req = httptest.NewRequest(http.MethodDelete, "/readings/"+result.ReadingID, nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/readings/"+result.ReadingID, nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
