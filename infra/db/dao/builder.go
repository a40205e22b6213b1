package dao

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/finflow/reconciliation-engine/entity"
)

// DaoMethod is the event store gateway: the only component touching storage.
// GetBusinessEventByID fails with entity.ErrEventNotFound when the id does not
// resolve. ApplyMatchAtomically fails with entity.ErrClaimConflict when either
// row was claimed between read and write; the transaction rolls back whole.
type DaoMethod interface {
	GetBusinessEventByID(ctx context.Context, eventID string) (entity.BusinessEvent, error)
	FindCounterpart(ctx context.Context, reference, kind, currency string) (*entity.BusinessEvent, error)
	ListEligibleEvents(ctx context.Context, limit int) ([]entity.BusinessEvent, error)
	ApplyMatchAtomically(ctx context.Context, result entity.MatchResult) error
	RecordNoMatchAttempt(ctx context.Context, eventID string, attemptedAt time.Time) error
	GetReconciliations(ctx context.Context) ([]entity.ReconciliationRecord, error)
}

type dao struct {
	db *gorm.DB
}

func NewDaoMethod(db *gorm.DB) DaoMethod {
	return &dao{db: db}
}
