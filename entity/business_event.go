package entity

import (
	"strings"
	"time"

	"github.com/finflow/reconciliation-engine/consts"
)

// BusinessEvent is a single financial occurrence flowing through the system.
// Amounts are integer minor currency units, never floating point.
type BusinessEvent struct {
	EventID         string
	EventKind       string
	AmountMinor     int64
	Currency        string
	ProcessingState string
	Metadata        map[string]interface{}
	OccurredAt      time.Time
	RecordedAt      time.Time
}

// MetadataString returns the trimmed string value for a metadata key, or ""
// when the key is absent or not a string.
func (e BusinessEvent) MetadataString(key string) string {
	if e.Metadata == nil {
		return ""
	}
	if v, ok := e.Metadata[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

// Reference returns the free-text join key for this event's role:
// invoice_number for invoices, payment_reference for payments.
func (e BusinessEvent) Reference() string {
	switch e.EventKind {
	case consts.EventKindInvoiceReceived:
		return e.MetadataString(consts.MetadataKeyInvoiceNumber)
	case consts.EventKindPaymentSent:
		return e.MetadataString(consts.MetadataKeyPaymentReference)
	}
	return ""
}

// CounterpartKind returns the event kind this event matches against.
func (e BusinessEvent) CounterpartKind() string {
	switch e.EventKind {
	case consts.EventKindInvoiceReceived:
		return consts.EventKindPaymentSent
	case consts.EventKindPaymentSent:
		return consts.EventKindInvoiceReceived
	}
	return ""
}

// IsClaimed reports whether the event already carries a reconciliation match.
// A claimed event is never eligible for matching again.
func (e BusinessEvent) IsClaimed() bool {
	return e.MetadataString(consts.MetadataKeyMatchID) != ""
}

// IsReconcilable reports whether this event kind participates in reconciliation.
func (e BusinessEvent) IsReconcilable() bool {
	return e.EventKind == consts.EventKindInvoiceReceived ||
		e.EventKind == consts.EventKindPaymentSent
}
