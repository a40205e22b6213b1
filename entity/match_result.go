package entity

import "time"

// Discrepancy records an amount mismatch between a matched invoice and payment.
type Discrepancy struct {
	Type          string `json:"type"`
	InvoiceAmount int64  `json:"invoice_amount"`
	PaymentAmount int64  `json:"payment_amount"`
	Difference    int64  `json:"difference"`
}

// MatchResult is produced by the matcher and never persisted directly.
type MatchResult struct {
	Outcome        string
	Confidence     float64
	InvoiceEventID string
	PaymentEventID string
	Discrepancy    *Discrepancy
}

// ReconciliationRecord is the durable proof of a completed match.
type ReconciliationRecord struct {
	ReconciliationID      string       `json:"reconciliation_id"`
	InvoiceEventID        string       `json:"invoice_event_id"`
	PaymentEventID        string       `json:"payment_event_id"`
	MatchType             string       `json:"match_type"`
	Confidence            float64      `json:"confidence"`
	AmountDifferenceMinor int64        `json:"amount_difference_minor"`
	Discrepancy           *Discrepancy `json:"discrepancy,omitempty"`
	ReconciledAt          time.Time    `json:"reconciled_at"`
	ReconciledBy          string       `json:"reconciled_by"`
}
