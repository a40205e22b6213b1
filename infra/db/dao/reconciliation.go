package dao

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/finflow/reconciliation-engine/consts"
	"github.com/finflow/reconciliation-engine/entity"
	"github.com/finflow/reconciliation-engine/infra/db/model"
)

// ApplyMatchAtomically commits one match in a single transaction: it re-reads
// both rows under exclusive locks, re-verifies they are still unclaimed and
// MAPPED, flips both processing states, sets the claim markers to point at
// each other, inserts one reconciliation row and two audit rows. Any claim
// lost between read and write surfaces as entity.ErrClaimConflict and nothing
// is committed.
func (d *dao) ApplyMatchAtomically(ctx context.Context, result entity.MatchResult) error {
	newState := consts.StateReconciled
	if result.Outcome == consts.MatchOutcomePartial {
		newState = consts.StateFlaggedForReview
	}

	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ids := []string{result.InvoiceEventID, result.PaymentEventID}

		// Lock in a stable order so two workers claiming the same pair from
		// opposite sides cannot deadlock.
		var rows []model.BusinessEvent
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("event_id IN ?", ids).
			Order("event_id ASC").
			Find(&rows).Error; err != nil {
			return fmt.Errorf("failed to lock matched rows: %w", err)
		}
		if len(rows) != 2 {
			return entity.ErrClaimConflict
		}
		for _, row := range rows {
			ev := row.ToEntity()
			if ev.ProcessingState != consts.StateMapped || ev.IsClaimed() {
				return entity.ErrClaimConflict
			}
		}

		now := time.Now().UTC()
		reconciliationID := uuid.NewString()

		var discrepancyJSON datatypes.JSON
		if result.Discrepancy != nil {
			raw, err := json.Marshal(result.Discrepancy)
			if err != nil {
				return fmt.Errorf("failed to marshal discrepancy: %w", err)
			}
			discrepancyJSON = datatypes.JSON(raw)
		}

		counterpartOf := map[string]string{
			result.InvoiceEventID: result.PaymentEventID,
			result.PaymentEventID: result.InvoiceEventID,
		}

		for _, row := range rows {
			if err := tx.Model(&model.BusinessEvent{}).
				Where("event_id = ?", row.EventID).
				Updates(map[string]interface{}{
					"processing_state": newState,
					"metadata": gorm.Expr(
						fmt.Sprintf("jsonb_set(COALESCE(metadata, '{}'::jsonb), '{%s}', to_jsonb(?::text))", consts.MetadataKeyMatchID),
						counterpartOf[row.EventID],
					),
					"updated_at": now,
				}).Error; err != nil {
				return fmt.Errorf("failed to claim event %s: %w", row.EventID, err)
			}
		}

		rec := model.Reconciliation{
			ReconciliationID:      reconciliationID,
			InvoiceEventID:        result.InvoiceEventID,
			PaymentEventID:        result.PaymentEventID,
			MatchType:             result.Outcome,
			Confidence:            result.Confidence,
			AmountDifferenceMinor: amountDifference(result),
			Discrepancy:           discrepancyJSON,
			ReconciledAt:          now,
			ReconciledBy:          consts.AuditActorID,
		}
		if err := tx.Create(&rec).Error; err != nil {
			return fmt.Errorf("failed to insert reconciliation record: %w", err)
		}

		for _, row := range rows {
			audit, err := buildAuditEntry(row.EventID, counterpartOf[row.EventID], reconciliationID, newState, result, now)
			if err != nil {
				return err
			}
			if err := tx.Create(&audit).Error; err != nil {
				return fmt.Errorf("failed to insert audit log for %s: %w", row.EventID, err)
			}
		}

		return nil
	})
}

func amountDifference(result entity.MatchResult) int64 {
	if result.Discrepancy != nil {
		return result.Discrepancy.Difference
	}
	return 0
}

func buildAuditEntry(eventID, counterpartID, reconciliationID, newState string, result entity.MatchResult, now time.Time) (model.AuditLog, error) {
	changes, err := json.Marshal([]map[string]interface{}{
		{"field": "processing_state", "before": consts.StateMapped, "after": newState},
		{"field": consts.MetadataKeyMatchID, "before": nil, "after": counterpartID},
	})
	if err != nil {
		return model.AuditLog{}, fmt.Errorf("failed to marshal audit changes: %w", err)
	}

	meta, err := json.Marshal(map[string]interface{}{
		"reconciliation_id": reconciliationID,
		"match_type":        result.Outcome,
		"confidence":        result.Confidence,
	})
	if err != nil {
		return model.AuditLog{}, fmt.Errorf("failed to marshal audit metadata: %w", err)
	}

	return model.AuditLog{
		ID:         uuid.NewString(),
		Action:     consts.AuditActionReconcile,
		EntityType: consts.AuditEntityBusinessEvent,
		EntityID:   eventID,
		ActorType:  consts.AuditActorTypeAIAgent,
		ActorID:    consts.AuditActorID,
		Changes:    datatypes.JSON(changes),
		Metadata:   datatypes.JSON(meta),
		CreatedAt:  now,
	}, nil
}

func (d *dao) GetReconciliations(ctx context.Context) ([]entity.ReconciliationRecord, error) {
	var rows []model.Reconciliation
	if err := d.db.WithContext(ctx).
		Order("reconciled_at DESC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch reconciliations: %w", err)
	}

	records := make([]entity.ReconciliationRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.ToEntity())
	}
	return records, nil
}
