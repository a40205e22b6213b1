package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/labstack/gommon/log"

	"github.com/finflow/reconciliation-engine/entity"
)

// ReconcileEvent is the push trigger intake. The notifier hands over just an
// event id; the coordinator re-loads authoritative state from storage. The
// attempt runs asynchronously and the caller gets a 202: a lost attempt is
// caught by the polling sweep, so the notifier never needs to retry.
func (h *ReconciliationHandler) ReconcileEvent(w http.ResponseWriter, r *http.Request) {
	var req entity.ReconcileEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(APIResponse{
			Status:  "error",
			Message: "Invalid request body",
		})
		return
	}

	eventID := strings.TrimSpace(req.EventID)
	if eventID == "" {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(APIResponse{
			Status:  "error",
			Message: "event_id is required",
		})
		return
	}

	go func() {
		if err := h.Usecase.ReconcileWithRetry(context.Background(), eventID); err != nil {
			log.Errorf("[Intake] Reconciliation for event %s failed: %v", eventID, err)
		}
	}()

	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(APIResponse{
		Status:  "success",
		Message: "Reconciliation triggered",
	})
}
