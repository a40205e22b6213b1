package model

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"github.com/finflow/reconciliation-engine/entity"
)

// Reconciliation is the durable record of one completed pairing.
// Rows are insert-only; deletion and mutation are out of scope.
type Reconciliation struct {
	ReconciliationID      string         `gorm:"type:uuid;primaryKey;column:reconciliation_id" json:"reconciliation_id"`
	InvoiceEventID        string         `gorm:"type:uuid;not null;index" json:"invoice_event_id"`
	PaymentEventID        string         `gorm:"type:uuid;not null;index" json:"payment_event_id"`
	MatchType             string         `gorm:"size:50;not null" json:"match_type"`
	Confidence            float64        `gorm:"not null" json:"confidence"`
	AmountDifferenceMinor int64          `gorm:"not null" json:"amount_difference_minor"`
	Discrepancy           datatypes.JSON `gorm:"type:jsonb" json:"discrepancy,omitempty"`
	ReconciledAt          time.Time      `gorm:"not null" json:"reconciled_at"`
	ReconciledBy          string         `gorm:"size:100;not null" json:"reconciled_by"`
}

func (Reconciliation) TableName() string { return "reconciliations" }

func (m Reconciliation) ToEntity() entity.ReconciliationRecord {
	rec := entity.ReconciliationRecord{
		ReconciliationID:      m.ReconciliationID,
		InvoiceEventID:        m.InvoiceEventID,
		PaymentEventID:        m.PaymentEventID,
		MatchType:             m.MatchType,
		Confidence:            m.Confidence,
		AmountDifferenceMinor: m.AmountDifferenceMinor,
		ReconciledAt:          m.ReconciledAt,
		ReconciledBy:          m.ReconciledBy,
	}
	if len(m.Discrepancy) > 0 {
		var d entity.Discrepancy
		if err := json.Unmarshal(m.Discrepancy, &d); err == nil {
			rec.Discrepancy = &d
		}
	}
	return rec
}
