package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/hannahmoutran/ai-music-metadata/internal/models"
	"github.com/hannahmoutran/ai-music-metadata/internal/storage"
	"github.com/hannahmoutran/ai-music-metadata/internal/verify"
)

type Handler struct {
	sessionStore *storage.SessionStore
	verifier     *verify.Verifier
}

func New() *Handler {
	return &Handler{
		sessionStore: storage.New(),
		verifier:     verify.NewVerifier(slog.Default()),
	}
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message)
	http.Error(w, message, code)
}

// Session helpers
func (h *Handler) getSessionOrError(w http.ResponseWriter, sessionID string) (*models.VerifySession, bool) {
	session, exists := h.sessionStore.Get(sessionID)
	if !exists {
		h.writeError(w, "Session not found", http.StatusNotFound)
		return nil, false
	}
	return session, true
}
