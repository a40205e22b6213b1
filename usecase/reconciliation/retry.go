package reconciliation

import (
	"context"
	"errors"
	"time"

	"github.com/labstack/gommon/log"

	"github.com/finflow/reconciliation-engine/entity"
)

// ReconcileWithRetry wraps Reconcile with exponential backoff for transient
// failures (first retry after the base backoff, doubling per attempt).
// NotFound is terminal and never retried. Exhausted attempts are abandoned:
// the event stays MAPPED and the polling sweep is the recovery path, so no
// dead-letter mechanism exists.
func (u *reconciliationUsecase) ReconcileWithRetry(ctx context.Context, eventID string) error {
	var lastErr error
	for attempt := 1; attempt <= u.retryMaxAttempts; attempt++ {
		if attempt > 1 {
			delay := retryBackoff(attempt, u.retryBaseBackoff)
			log.Warnf("[Retry] Attempt %d/%d for event %s in %s", attempt, u.retryMaxAttempts, eventID, delay)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		err := u.Reconcile(ctx, eventID)
		if err == nil {
			return nil
		}
		if errors.Is(err, entity.ErrEventNotFound) {
			return err
		}
		lastErr = err
	}

	log.Errorf("[Retry] Abandoning event %s after %d attempts, sweep will re-pick it: %v",
		eventID, u.retryMaxAttempts, lastErr)
	return lastErr
}

// retryBackoff returns base * 2^(attempt-2): the delay before the second
// attempt is the base, doubling from there.
func retryBackoff(attempt int, base time.Duration) time.Duration {
	if attempt <= 2 {
		return base
	}
	return base * time.Duration(1<<(attempt-2))
}
