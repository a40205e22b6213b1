package reconciliation

import (
	"context"
	"time"

	"github.com/finflow/reconciliation-engine/config"
	"github.com/finflow/reconciliation-engine/entity"
	"github.com/finflow/reconciliation-engine/infra/db/dao"
	"github.com/finflow/reconciliation-engine/infra/locker"
)

type ReconciliationUsecase interface {
	Reconcile(ctx context.Context, eventID string) error
	ReconcileWithRetry(ctx context.Context, eventID string) error
	SweepOnce(ctx context.Context) (int, error)
	GetReconciliationRecords(ctx context.Context) ([]entity.ReconciliationRecord, error)
}

type reconciliationUsecase struct {
	dao    dao.DaoMethod
	locker *locker.Locker

	tolerance        Tolerance
	sweepBatchSize   int
	retryMaxAttempts int
	retryBaseBackoff time.Duration
}

func NewReconciliationUsecase(d dao.DaoMethod, lk *locker.Locker, cfg config.Config) ReconciliationUsecase {
	return &reconciliationUsecase{
		dao:    d,
		locker: lk,
		tolerance: Tolerance{
			Percent:      cfg.TolerancePercent,
			CeilingMinor: cfg.ToleranceCeilingMinor,
		},
		sweepBatchSize:   cfg.SweepBatchSize,
		retryMaxAttempts: cfg.RetryMaxAttempts,
		retryBaseBackoff: cfg.RetryBaseBackoff,
	}
}

func (u *reconciliationUsecase) GetReconciliationRecords(ctx context.Context) ([]entity.ReconciliationRecord, error) {
	return u.dao.GetReconciliations(ctx)
}
