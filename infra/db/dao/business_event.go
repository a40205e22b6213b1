package dao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/finflow/reconciliation-engine/consts"
	"github.com/finflow/reconciliation-engine/entity"
	"github.com/finflow/reconciliation-engine/infra/db/model"
)

func (d *dao) GetBusinessEventByID(ctx context.Context, eventID string) (entity.BusinessEvent, error) {
	var row model.BusinessEvent
	err := d.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entity.BusinessEvent{}, entity.ErrEventNotFound
	}
	if err != nil {
		return entity.BusinessEvent{}, fmt.Errorf("failed to load business event %s: %w", eventID, err)
	}
	return row.ToEntity(), nil
}

// FindCounterpart returns the oldest unclaimed MAPPED event of the given kind
// whose reference metadata equals reference, in the same currency. Returns
// (nil, nil) when no candidate exists.
func (d *dao) FindCounterpart(ctx context.Context, reference, kind, currency string) (*entity.BusinessEvent, error) {
	refKey := consts.MetadataKeyInvoiceNumber
	if kind == consts.EventKindPaymentSent {
		refKey = consts.MetadataKeyPaymentReference
	}

	var row model.BusinessEvent
	err := d.db.WithContext(ctx).
		Where("event_kind = ?", kind).
		Where("processing_state = ?", consts.StateMapped).
		Where("currency = ?", currency).
		Where(fmt.Sprintf("TRIM(metadata->>'%s') = ?", refKey), reference).
		Where(fmt.Sprintf("metadata->>'%s' IS NULL", consts.MetadataKeyMatchID)).
		Order("recorded_at ASC").
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find counterpart for reference %q: %w", reference, err)
	}

	ev := row.ToEntity()
	return &ev, nil
}

// ListEligibleEvents feeds the polling sweep: unclaimed MAPPED invoices and
// payments, oldest first.
func (d *dao) ListEligibleEvents(ctx context.Context, limit int) ([]entity.BusinessEvent, error) {
	var rows []model.BusinessEvent
	err := d.db.WithContext(ctx).
		Where("processing_state = ?", consts.StateMapped).
		Where("event_kind IN ?", []string{consts.EventKindInvoiceReceived, consts.EventKindPaymentSent}).
		Where(fmt.Sprintf("metadata->>'%s' IS NULL", consts.MetadataKeyMatchID)).
		Order("recorded_at ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list eligible events: %w", err)
	}

	events := make([]entity.BusinessEvent, 0, len(rows))
	for _, row := range rows {
		events = append(events, row.ToEntity())
	}
	return events, nil
}

// RecordNoMatchAttempt stamps reconciliation_attempted_at in metadata. Callers
// treat failures as non-fatal; the field is observability only.
func (d *dao) RecordNoMatchAttempt(ctx context.Context, eventID string, attemptedAt time.Time) error {
	err := d.db.WithContext(ctx).
		Model(&model.BusinessEvent{}).
		Where("event_id = ?", eventID).
		Updates(map[string]interface{}{
			"metadata": gorm.Expr(
				fmt.Sprintf("jsonb_set(COALESCE(metadata, '{}'::jsonb), '{%s}', to_jsonb(?::text))", consts.MetadataKeyAttemptedAt),
				attemptedAt.UTC().Format(time.RFC3339),
			),
			"updated_at": time.Now().UTC(),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to record no-match attempt for %s: %w", eventID, err)
	}
	return nil
}
