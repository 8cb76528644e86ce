package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/hannahmoutran/ai-music-metadata/internal/dataset"
	"github.com/hannahmoutran/ai-music-metadata/internal/models"
)

// HandleVerify accepts one release record and runs track verification on
// it, storing the outcome as a new session.
func (h *Handler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var record dataset.ReleaseRecord
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if !record.HasRequiredFields() {
		h.writeError(w, "Record is missing required fields", http.StatusBadRequest)
		return
	}

	slog.Info("Verifying record via web interface", "barcode", record.Barcode)
	result := h.verifier.VerifyRecord(record)

	session := &models.VerifySession{
		ID:        fmt.Sprintf("session_%d", time.Now().UnixNano()),
		Record:    record,
		Result:    &result,
		CreatedAt: time.Now(),
	}
	h.sessionStore.Set(session.ID, session)

	h.writeJSON(w, session)
}
