// Package paymentsim provides a simulated payment gateway implementing the
// lending.PaymentGateway contract for the demo CLI and exploratory use. The
// simulator is deterministic: transaction ids carry a monotonically
// increasing numeric suffix instead of time- or random-based generation.
package paymentsim

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/libraryops/library-lending-go/lending"
)

// maxAmountPerTransaction is the gateway's fixed per-transaction ceiling.
const maxAmountPerTransaction = 1000.00

// firstTransactionSuffix is where the numeric suffix of issued ids starts.
const firstTransactionSuffix = 100000

const (
	msgInvalidPatronID     = "Invalid patron ID format."
	msgNonPositiveAmount   = "Payment amount must be greater than 0."
	msgAmountAboveCeiling  = "Payment amount exceeds the maximum of $1000.00 per transaction."
	msgInvalidTransaction  = "Invalid transaction ID format."
	msgNonPositiveRefund   = "Refund amount must be greater than 0."
	msgPaymentProcessedFmt = "Payment of $%.2f processed successfully"
	msgRefundProcessedFmt  = "Refund of $%.2f processed successfully."
)

// Gateway is a simulated payment gateway. It validates requests the way the
// reference gateway does and issues transaction ids of the form
// txn_<patron_id>_<suffix>.
type Gateway struct {
	nextSuffix atomic.Int64
}

// NewGateway creates a simulated gateway with the suffix counter at its start value.
func NewGateway() *Gateway {
	g := &Gateway{}
	g.nextSuffix.Store(firstTransactionSuffix)

	return g
}

// ProcessPayment validates the charge request and, when accepted, issues a
// transaction id. Rejections are structured declines; the simulator never faults.
func (g *Gateway) ProcessPayment(_ context.Context, patronID lending.PatronIDString, amount float64, _ string) (lending.ChargeOutcome, error) {
	if !lending.IsValidPatronID(patronID) {
		return lending.ChargeOutcome{Message: msgInvalidPatronID}, nil
	}

	if amount <= 0 {
		return lending.ChargeOutcome{Message: msgNonPositiveAmount}, nil
	}

	if amount > maxAmountPerTransaction {
		return lending.ChargeOutcome{Message: msgAmountAboveCeiling}, nil
	}

	suffix := g.nextSuffix.Add(1) - 1

	return lending.ChargeOutcome{
		Approved:      true,
		TransactionID: fmt.Sprintf("txn_%s_%d", patronID, suffix),
		Message:       fmt.Sprintf(msgPaymentProcessedFmt, amount),
	}, nil
}

// RefundPayment validates the refund request against the gateway's issuance
// pattern and amount rules.
func (g *Gateway) RefundPayment(_ context.Context, transactionID string, amount float64) (lending.RefundOutcome, error) {
	if !lending.IsValidTransactionID(transactionID) {
		return lending.RefundOutcome{Message: msgInvalidTransaction}, nil
	}

	if amount <= 0 {
		return lending.RefundOutcome{Message: msgNonPositiveRefund}, nil
	}

	return lending.RefundOutcome{
		Approved: true,
		Message:  fmt.Sprintf(msgRefundProcessedFmt, amount),
	}, nil
}

// Ensure Gateway implements lending.PaymentGateway.
var _ lending.PaymentGateway = (*Gateway)(nil)
