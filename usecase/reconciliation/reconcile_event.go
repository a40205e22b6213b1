package reconciliation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/labstack/gommon/log"

	"github.com/finflow/reconciliation-engine/consts"
	"github.com/finflow/reconciliation-engine/entity"
)

// Reconcile runs one match attempt end to end for the given event. It is
// idempotent: duplicate triggers for the same event short-circuit at the
// eligibility guard, and a claim lost to a concurrent worker is treated as a
// benign outcome, not an error. Only entity.ErrEventNotFound and transport
// failures propagate to the caller.
func (u *reconciliationUsecase) Reconcile(ctx context.Context, eventID string) error {
	if !u.locker.TryAcquire(eventID) {
		log.Infof("[Reconcile] Event %s already in flight, skipping", eventID)
		return nil
	}
	defer u.locker.Release(eventID)

	event, err := u.dao.GetBusinessEventByID(ctx, eventID)
	if errors.Is(err, entity.ErrEventNotFound) {
		log.Warnf("[Reconcile] Event %s not found, abandoning attempt", eventID)
		return err
	}
	if err != nil {
		return fmt.Errorf("failed to load event %s: %w", eventID, err)
	}

	if event.ProcessingState != consts.StateMapped || !event.IsReconcilable() || event.IsClaimed() {
		log.Infof("[Reconcile] Event %s not eligible (state=%s, kind=%s, claimed=%t), no-op",
			eventID, event.ProcessingState, event.EventKind, event.IsClaimed())
		return nil
	}

	if err := validateEvent(event); err != nil {
		log.Errorf("[Reconcile] Event %s failed validation, leaving MAPPED: %v", eventID, err)
		return nil
	}

	reference := event.Reference()
	if reference == "" {
		log.Warnf("[Reconcile] Event %s has no reference number, cannot match", eventID)
		u.touchAttempt(ctx, eventID)
		return nil
	}

	counterpart, err := u.dao.FindCounterpart(ctx, reference, event.CounterpartKind(), event.Currency)
	if err != nil {
		return fmt.Errorf("counterpart lookup for event %s: %w", eventID, err)
	}

	result := EvaluateMatch(event, counterpart, u.tolerance)

	switch result.Outcome {
	case consts.MatchOutcomeNoMatch:
		log.Infof("[Reconcile] No match for event %s (ref=%s), will retry on a future trigger", eventID, reference)
		u.touchAttempt(ctx, eventID)
		return nil

	default:
		err := u.dao.ApplyMatchAtomically(ctx, result)
		if errors.Is(err, entity.ErrClaimConflict) {
			log.Infof("[Reconcile] Lost claim race for event %s, another worker won", eventID)
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to apply %s for event %s: %w", result.Outcome, eventID, err)
		}
		log.Infof("[Reconcile] %s committed: invoice=%s payment=%s confidence=%.1f",
			result.Outcome, result.InvoiceEventID, result.PaymentEventID, result.Confidence)
		return nil
	}
}

// touchAttempt is best effort: the attempted-at stamp is observability only.
func (u *reconciliationUsecase) touchAttempt(ctx context.Context, eventID string) {
	if err := u.dao.RecordNoMatchAttempt(ctx, eventID, time.Now().UTC()); err != nil {
		log.Warnf("[Reconcile] Could not record attempt for event %s: %v", eventID, err)
	}
}

func validateEvent(event entity.BusinessEvent) error {
	if event.AmountMinor <= 0 {
		return fmt.Errorf("non-positive amount %d", event.AmountMinor)
	}
	if event.Currency == "" {
		return errors.New("missing currency")
	}
	return nil
}
