package reconciliation

import (
	"context"
	"errors"

	"github.com/labstack/gommon/log"

	"github.com/finflow/reconciliation-engine/entity"
)

// SweepOnce re-scans for eligible-but-unprocessed events and reconciles each
// in turn, oldest first. This is the safety net for missed push notifications:
// the push channel has no delivery guarantee, the sweep does. A failure on one
// event never stops the batch. Returns the number of events processed without
// error.
func (u *reconciliationUsecase) SweepOnce(ctx context.Context) (int, error) {
	events, err := u.dao.ListEligibleEvents(ctx, u.sweepBatchSize)
	if err != nil {
		return 0, err
	}
	if len(events) == 0 {
		return 0, nil
	}

	log.Infof("[Sweep] Found %d eligible events", len(events))

	processed := 0
	for _, event := range events {
		if ctx.Err() != nil {
			return processed, ctx.Err()
		}
		if err := u.Reconcile(ctx, event.EventID); err != nil {
			if errors.Is(err, entity.ErrEventNotFound) {
				continue
			}
			log.Errorf("[Sweep] Reconcile failed for event %s: %v", event.EventID, err)
			continue
		}
		processed++
	}

	log.Infof("[Sweep] Batch done: %d/%d processed", processed, len(events))
	return processed, nil
}
