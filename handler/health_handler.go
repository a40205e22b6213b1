package handler

import (
	"encoding/json"
	"net/http"
)

func (h *ReconciliationHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(APIResponse{Status: "ok"})
}
