package auth

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/user/arcanum-go/apperror"
)

// Handlers wraps the AuthService with HTTP handlers.
type Handlers struct {
	service *AuthService
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(service *AuthService) *Handlers {
	return &Handlers{service: service}
}

// sessionCookie builds the session cookie. Max-age matches the token
// lifetime exactly; a stale cookie would otherwise carry an unusable
// credential, and a short one would drop a live session.
func (h *Handlers) sessionCookie(token string, maxAgeSeconds int) *http.Cookie {
	cfg := h.service.Config()
	return &http.Cookie{
		Name:     cfg.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAgeSeconds,
		HttpOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: http.SameSiteStrictMode,
	}
}

// HandleRegister handles POST /auth/register: validates the body, creates
// the user with the registration grant, and starts a session.
func (h *Handlers) HandleRegister() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, r, apperror.NewBadRequestError("invalid request body", err))
			return
		}
		defer r.Body.Close()

		user, token, err := h.service.Register(r.Context(), req)
		if err != nil {
			WriteError(w, r, err)
			return
		}

		http.SetCookie(w, h.sessionCookie(token, int(h.service.Config().TokenDuration.Seconds())))
		writeJSON(w, http.StatusCreated, AuthResponse{Success: true, User: user})
	}
}

// HandleLogin handles POST /auth/login.
func (h *Handlers) HandleLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, r, apperror.NewBadRequestError("invalid request body", err))
			return
		}
		defer r.Body.Close()

		user, token, err := h.service.Login(r.Context(), req)
		if err != nil {
			WriteError(w, r, err)
			return
		}

		http.SetCookie(w, h.sessionCookie(token, int(h.service.Config().TokenDuration.Seconds())))
		writeJSON(w, http.StatusOK, AuthResponse{Success: true, User: user})
	}
}

// HandleLogout handles POST /auth/logout by expiring the session cookie.
func (h *Handlers) HandleLogout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, h.sessionCookie("", -1))
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}

// writeJSON serializes data as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, `{"error":"failed to encode response"}`, http.StatusInternalServerError)
		}
	}
}

// WriteError renders err through the apperror taxonomy. Classified errors
// keep their status and structured details; anything else becomes a generic
// 500 with the cause logged server-side only.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := apperror.FromError(err)
	if !ok {
		log.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).
			Msg("unclassified error")
		appErr = apperror.NewInternalError("an unexpected error occurred", err)
	} else if appErr.StatusCode() >= 500 {
		log.Error().Err(appErr).Str("method", r.Method).Str("path", r.URL.Path).
			Msg("request failed")
	}

	writeJSON(w, appErr.StatusCode(), appErr.ToResponse())
}
