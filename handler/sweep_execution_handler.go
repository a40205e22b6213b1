package handler

import (
	"context"
)

// SweepExecution is the cron worker entry point: one polling sweep pass.
func (h *ReconciliationHandler) SweepExecution(ctx context.Context) (int, error) {
	return h.Usecase.SweepOnce(ctx)
}
