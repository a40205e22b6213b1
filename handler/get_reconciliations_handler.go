package handler

import (
	"encoding/json"
	"net/http"
)

func (h *ReconciliationHandler) GetReconciliations(w http.ResponseWriter, r *http.Request) {
	records, err := h.Usecase.GetReconciliationRecords(r.Context())
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(APIResponse{
			Status:  "error",
			Message: "Failed to get reconciliations",
		})
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(APIResponse{
		Status: "success",
		Data:   records,
	})
}
