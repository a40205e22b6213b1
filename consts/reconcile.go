package consts

const (
	// Event kinds. Only invoices and payments participate in reconciliation.
	EventKindInvoiceReceived = "INVOICE_RECEIVED"
	EventKindPaymentSent     = "PAYMENT_SENT"
	EventKindBankPosted      = "BANK_POSTED"
	EventKindRefund          = "REFUND"
	EventKindAdjustment      = "ADJUSTMENT"

	// Processing states
	StatePending          = "PENDING"
	StateMapped           = "MAPPED"
	StateReconciled       = "RECONCILED"
	StateFlaggedForReview = "FLAGGED_FOR_REVIEW"
	StatePostedOnchain    = "POSTED_ONCHAIN"
	StateIndexed          = "INDEXED"
	StateFailed           = "FAILED"

	// Match outcomes
	MatchOutcomeNoMatch = "NO_MATCH"
	MatchOutcomePartial = "PARTIAL_MATCH"
	MatchOutcomePrimary = "PRIMARY_MATCH"

	DiscrepancyAmountMismatch = "AMOUNT_MISMATCH"

	// Metadata keys on business_events
	MetadataKeyInvoiceNumber    = "invoice_number"
	MetadataKeyPaymentReference = "payment_reference"
	MetadataKeyMatchID          = "reconciliation_match_id"
	MetadataKeyAttemptedAt      = "reconciliation_attempted_at"

	// Audit log constants
	AuditActionReconcile     = "RECONCILE"
	AuditEntityBusinessEvent = "BUSINESS_EVENT"
	AuditActorTypeAIAgent    = "AI_AGENT"
	AuditActorID             = "reconciliation-engine"

	// Default config
	DefaultTolerancePercent      = 0.01
	DefaultToleranceCeilingMinor = 500
	DefaultSweepIntervalInSec    = 60
	DefaultSweepBatchSize        = 50
	DefaultSweepWorkers          = 1
	DefaultRetryMaxAttempts      = 3
	DefaultRetryBaseBackoffInSec = 2
)
