package model

import (
	"time"

	"gorm.io/datatypes"

	"github.com/finflow/reconciliation-engine/entity"
)

// BusinessEvent mirrors the business_events table owned by the ingestion
// pipeline. The engine reads rows in any state and writes processing_state
// plus the reconciliation keys inside metadata.
type BusinessEvent struct {
	EventID         string            `gorm:"type:uuid;primaryKey;column:event_id" json:"event_id"`
	EventKind       string            `gorm:"size:50;not null;index" json:"event_kind"`
	AmountMinor     int64             `gorm:"not null" json:"amount_minor"`
	Currency        string            `gorm:"size:3;not null" json:"currency"`
	ProcessingState string            `gorm:"size:50;not null;index" json:"processing_state"`
	Metadata        datatypes.JSONMap `gorm:"type:jsonb" json:"metadata"`
	OccurredAt      time.Time         `gorm:"not null" json:"occurred_at"`
	RecordedAt      time.Time         `gorm:"not null;index" json:"recorded_at"`
	UpdatedAt       time.Time         `gorm:"not null" json:"updated_at"`
}

func (BusinessEvent) TableName() string { return "business_events" }

func (m BusinessEvent) ToEntity() entity.BusinessEvent {
	return entity.BusinessEvent{
		EventID:         m.EventID,
		EventKind:       m.EventKind,
		AmountMinor:     m.AmountMinor,
		Currency:        m.Currency,
		ProcessingState: m.ProcessingState,
		Metadata:        map[string]interface{}(m.Metadata),
		OccurredAt:      m.OccurredAt,
		RecordedAt:      m.RecordedAt,
	}
}
