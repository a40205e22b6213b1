package controllers

import (
	"github.com/gorilla/mux"

	"github.com/finflow/reconciliation-engine/handler"
)

func RegisterReconciliationRoutes(router *mux.Router, h *handler.ReconciliationHandler) {
	router.HandleFunc("/reconcile", h.ReconcileEvent).Methods("POST")
	router.HandleFunc("/reconciliations", h.GetReconciliations).Methods("GET")
	router.HandleFunc("/health", h.Health).Methods("GET")
}
