package lending

import (
	"context"
)

// ChargeOutcome is the structured reply of a payment gateway charge call.
// Approved false means the gateway declined the charge; the message carries
// the gateway's reason.
type ChargeOutcome struct {
	Approved      bool
	TransactionID string
	Message       string
}

// RefundOutcome is the structured reply of a payment gateway refund call.
type RefundOutcome struct {
	Approved bool
	Message  string
}

// PaymentGateway is the external charge/refund capability consumed by the
// payment orchestration in the service package.
//
// A structured decline is reported through the outcome with Approved false.
// A returned error represents a gateway fault (network failure, crash); the
// orchestrator converts both classes into message-bearing results and never
// propagates them to its caller.
type PaymentGateway interface {
	// ProcessPayment charges the patron's fee. On success the outcome
	// carries the gateway-issued transaction id, required for correlating
	// a later refund.
	ProcessPayment(ctx context.Context, patronID PatronIDString, amount float64, description string) (ChargeOutcome, error)

	// RefundPayment refunds a previously charged transaction.
	RefundPayment(ctx context.Context, transactionID string, amount float64) (RefundOutcome, error)
}
