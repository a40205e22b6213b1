package reconciliation

import (
	"github.com/finflow/reconciliation-engine/consts"
	"github.com/finflow/reconciliation-engine/entity"
)

// Tolerance controls how far apart invoice and payment amounts may be while
// still counting as a primary match. The effective tolerance is the smaller of
// Percent of the invoice amount and CeilingMinor.
type Tolerance struct {
	Percent      float64
	CeilingMinor int64
}

// Minor returns the effective tolerance in minor units for an invoice amount.
func (t Tolerance) Minor(invoiceAmount int64) int64 {
	percentPart := int64(float64(invoiceAmount) * t.Percent)
	if percentPart < t.CeilingMinor {
		return percentPart
	}
	return t.CeilingMinor
}

// EvaluateMatch compares an event with its potential counterpart. Pure: no
// I/O, no side effects. Callers guarantee same-currency candidates; the
// matcher never converts currencies. References must be equal after trimming;
// amounts within tolerance give a primary match, outside it a partial match
// with an AMOUNT_MISMATCH discrepancy.
func EvaluateMatch(subject entity.BusinessEvent, counterpart *entity.BusinessEvent, tol Tolerance) entity.MatchResult {
	if counterpart == nil {
		return entity.MatchResult{Outcome: consts.MatchOutcomeNoMatch}
	}

	var invoice, payment entity.BusinessEvent
	if subject.EventKind == consts.EventKindInvoiceReceived {
		invoice, payment = subject, *counterpart
	} else {
		invoice, payment = *counterpart, subject
	}

	invoiceNumber := invoice.MetadataString(consts.MetadataKeyInvoiceNumber)
	paymentReference := payment.MetadataString(consts.MetadataKeyPaymentReference)
	if invoiceNumber == "" || paymentReference == "" || invoiceNumber != paymentReference {
		return entity.MatchResult{Outcome: consts.MatchOutcomeNoMatch}
	}

	diff := invoice.AmountMinor - payment.AmountMinor
	if diff < 0 {
		diff = -diff
	}

	if diff <= tol.Minor(invoice.AmountMinor) {
		return entity.MatchResult{
			Outcome:        consts.MatchOutcomePrimary,
			Confidence:     1.0,
			InvoiceEventID: invoice.EventID,
			PaymentEventID: payment.EventID,
		}
	}

	return entity.MatchResult{
		Outcome:        consts.MatchOutcomePartial,
		Confidence:     0.5,
		InvoiceEventID: invoice.EventID,
		PaymentEventID: payment.EventID,
		Discrepancy: &entity.Discrepancy{
			Type:          consts.DiscrepancyAmountMismatch,
			InvoiceAmount: invoice.AmountMinor,
			PaymentAmount: payment.AmountMinor,
			Difference:    diff,
		},
	}
}
