package tarot

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/user/arcanum-go/apperror"
	"github.com/user/arcanum-go/auth"
)

// TarotHandlers exposes the reading endpoints over HTTP.
type TarotHandlers struct {
	service *TarotService
}

// NewTarotHandlers creates handlers backed by the given service.
func NewTarotHandlers(service *TarotService) *TarotHandlers {
	return &TarotHandlers{service: service}
}

// RegisterRoutes mounts the tarot endpoints on the given router. The router
// must already carry the authentication middleware.
func (h *TarotHandlers) RegisterRoutes(r chi.Router) {
	r.Post("/reading", h.HandleGenerateReading())
	r.Post("/chat", h.HandleChat())
	r.Post("/chat/stream", h.HandleChatStream())
	r.Get("/readings", h.HandleListReadings())
	r.Get("/readings/{readingID}", h.HandleGetReading())
	r.Delete("/readings/{readingID}", h.HandleDeleteReading())
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

func userIDFromRequest(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewAuthError("authentication required", nil))
		return 0, false
	}
	return userID, true
}

// HandleGenerateReading draws three cards, generates the interpretation and
// deducts the reading cost.
func (h *TarotHandlers) HandleGenerateReading() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userIDFromRequest(w, r)
		if !ok {
			return
		}

		result, err := h.service.GenerateReading(r.Context(), userID)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

func decodeChatRequest(r *http.Request) (*ChatRequest, error) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, apperror.NewBadRequestError("invalid request body", err)
	}
	return &req, nil
}

// HandleChat answers a follow-up question in a single response.
func (h *TarotHandlers) HandleChat() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := userIDFromRequest(w, r); !ok {
			return
		}

		req, err := decodeChatRequest(r)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		result, err := h.service.Chat(r.Context(), req)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

type chatChunk struct {
	Chunk string `json:"chunk"`
}

// HandleChatStream answers a follow-up question as a server-sent event
// stream of text chunks, terminated by a [DONE] marker.
func (h *TarotHandlers) HandleChatStream() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := userIDFromRequest(w, r); !ok {
			return
		}

		req, err := decodeChatRequest(r)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		flusher, ok := w.(http.Flusher)
		if !ok {
			auth.WriteError(w, r, apperror.NewInternalError("streaming is not supported", nil))
			return
		}

		stream, err := h.service.ChatStream(r.Context(), req)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		defer stream.Close()

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)

		for {
			chunk, err := stream.Recv()
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				// Headers are already committed; log and stop the stream.
				log.Error().Err(err).Msg("Chat stream aborted")
				return
			}
			if chunk == "" {
				continue
			}

			payload, err := json.Marshal(chatChunk{Chunk: chunk})
			if err != nil {
				log.Error().Err(err).Msg("Failed to encode chat chunk")
				return
			}
			if _, err := w.Write([]byte("data: " + string(payload) + "\n\n")); err != nil {
				return
			}
			flusher.Flush()
		}

		if _, err := w.Write([]byte("data: [DONE]\n\n")); err != nil {
			return
		}
		flusher.Flush()
	}
}

// HandleListReadings returns the caller's reading history with limit/offset
// pagination.
func (h *TarotHandlers) HandleListReadings() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userIDFromRequest(w, r)
		if !ok {
			return
		}

		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

		result, err := h.service.ListReadings(r.Context(), userID, limit, offset)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

// HandleGetReading returns one of the caller's readings by id.
func (h *TarotHandlers) HandleGetReading() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userIDFromRequest(w, r)
		if !ok {
			return
		}

		readingID := chi.URLParam(r, "readingID")
		reading, err := h.service.GetReading(r.Context(), userID, readingID)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, reading)
	}
}

// HandleDeleteReading removes one of the caller's readings.
func (h *TarotHandlers) HandleDeleteReading() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userIDFromRequest(w, r)
		if !ok {
			return
		}

		readingID := chi.URLParam(r, "readingID")
		if err := h.service.DeleteReading(r.Context(), userID, readingID); err != nil {
			auth.WriteError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}
