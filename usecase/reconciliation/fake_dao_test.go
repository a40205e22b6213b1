package reconciliation

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/finflow/reconciliation-engine/config"
	"github.com/finflow/reconciliation-engine/consts"
	"github.com/finflow/reconciliation-engine/entity"
	"github.com/finflow/reconciliation-engine/infra/locker"
)

// fakeDao implements dao.DaoMethod in memory, honoring the gateway contract:
// counterpart search filters state, kind, currency and claim flag, and
// ApplyMatchAtomically re-verifies both rows before mutating either.
type fakeDao struct {
	mu sync.Mutex

	events      map[string]*entity.BusinessEvent
	records     []entity.ReconciliationRecord
	auditCount  int
	attempts      map[string]time.Time
	findErrors    map[string]error
	findFailTimes map[string]int
	applyErr      error
	applyCalls    int
	loadErrByID   map[string]error
}

func newFakeDao() *fakeDao {
	return &fakeDao{
		events:        make(map[string]*entity.BusinessEvent),
		attempts:      make(map[string]time.Time),
		findErrors:    make(map[string]error),
		findFailTimes: make(map[string]int),
		loadErrByID:   make(map[string]error),
	}
}

func (f *fakeDao) addEvent(ev entity.BusinessEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := ev
	if copied.Metadata == nil {
		copied.Metadata = map[string]interface{}{}
	}
	f.events[ev.EventID] = &copied
}

func (f *fakeDao) GetBusinessEventByID(_ context.Context, eventID string) (entity.BusinessEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.loadErrByID[eventID]; ok {
		return entity.BusinessEvent{}, err
	}
	ev, ok := f.events[eventID]
	if !ok {
		return entity.BusinessEvent{}, entity.ErrEventNotFound
	}
	return *ev, nil
}

func (f *fakeDao) FindCounterpart(_ context.Context, reference, kind, currency string) (*entity.BusinessEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.findErrors[reference]; ok {
		return nil, err
	}
	if f.findFailTimes[reference] > 0 {
		f.findFailTimes[reference]--
		return nil, errors.New("transient lookup failure")
	}
	var best *entity.BusinessEvent
	for _, ev := range f.events {
		if ev.EventKind != kind || ev.Currency != currency {
			continue
		}
		if ev.ProcessingState != consts.StateMapped || ev.IsClaimed() {
			continue
		}
		if ev.Reference() != reference {
			continue
		}
		if best == nil || ev.RecordedAt.Before(best.RecordedAt) {
			best = ev
		}
	}
	if best == nil {
		return nil, nil
	}
	copied := *best
	return &copied, nil
}

func (f *fakeDao) ListEligibleEvents(_ context.Context, limit int) ([]entity.BusinessEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.BusinessEvent
	for _, ev := range f.events {
		if ev.ProcessingState != consts.StateMapped || ev.IsClaimed() || !ev.IsReconcilable() {
			continue
		}
		out = append(out, *ev)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeDao) ApplyMatchAtomically(_ context.Context, result entity.MatchResult) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.applyCalls++
	if f.applyErr != nil {
		return f.applyErr
	}

	invoice, okI := f.events[result.InvoiceEventID]
	payment, okP := f.events[result.PaymentEventID]
	if !okI || !okP {
		return entity.ErrClaimConflict
	}
	for _, ev := range []*entity.BusinessEvent{invoice, payment} {
		if ev.ProcessingState != consts.StateMapped || ev.IsClaimed() {
			return entity.ErrClaimConflict
		}
	}

	newState := consts.StateReconciled
	if result.Outcome == consts.MatchOutcomePartial {
		newState = consts.StateFlaggedForReview
	}
	invoice.ProcessingState = newState
	payment.ProcessingState = newState
	invoice.Metadata[consts.MetadataKeyMatchID] = result.PaymentEventID
	payment.Metadata[consts.MetadataKeyMatchID] = result.InvoiceEventID

	rec := entity.ReconciliationRecord{
		ReconciliationID: uuid.NewString(),
		InvoiceEventID:   result.InvoiceEventID,
		PaymentEventID:   result.PaymentEventID,
		MatchType:        result.Outcome,
		Confidence:       result.Confidence,
		ReconciledAt:     time.Now().UTC(),
		ReconciledBy:     consts.AuditActorID,
	}
	if result.Discrepancy != nil {
		d := *result.Discrepancy
		rec.Discrepancy = &d
		rec.AmountDifferenceMinor = d.Difference
	}
	f.records = append(f.records, rec)
	f.auditCount += 2
	return nil
}

func (f *fakeDao) RecordNoMatchAttempt(_ context.Context, eventID string, attemptedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.attempts[eventID] = attemptedAt
	return nil
}

func (f *fakeDao) GetReconciliations(_ context.Context) ([]entity.ReconciliationRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]entity.ReconciliationRecord, len(f.records))
	copy(out, f.records)
	return out, nil
}

func (f *fakeDao) eventState(eventID string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.events[eventID].ProcessingState
}

func (f *fakeDao) recordCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.records)
}

func newTestUsecase(d *fakeDao) ReconciliationUsecase {
	return NewReconciliationUsecase(d, locker.New(), config.Config{
		TolerancePercent:      consts.DefaultTolerancePercent,
		ToleranceCeilingMinor: consts.DefaultToleranceCeilingMinor,
		SweepBatchSize:        consts.DefaultSweepBatchSize,
		RetryMaxAttempts:      consts.DefaultRetryMaxAttempts,
		RetryBaseBackoff:      time.Millisecond,
	})
}

func invoiceEvent(id, ref string, amount int64) entity.BusinessEvent {
	return entity.BusinessEvent{
		EventID:         id,
		EventKind:       consts.EventKindInvoiceReceived,
		AmountMinor:     amount,
		Currency:        "USD",
		ProcessingState: consts.StateMapped,
		Metadata:        map[string]interface{}{consts.MetadataKeyInvoiceNumber: ref},
		RecordedAt:      time.Now().UTC(),
	}
}

func paymentEvent(id, ref string, amount int64) entity.BusinessEvent {
	return entity.BusinessEvent{
		EventID:         id,
		EventKind:       consts.EventKindPaymentSent,
		AmountMinor:     amount,
		Currency:        "USD",
		ProcessingState: consts.StateMapped,
		Metadata:        map[string]interface{}{consts.MetadataKeyPaymentReference: ref},
		RecordedAt:      time.Now().UTC(),
	}
}
