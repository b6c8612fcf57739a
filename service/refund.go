package service

import (
	"context"
	"time"

	"github.com/libraryops/library-lending-go/lending"
)

const opRefundLateFees = "refund_late_fees"

// RefundLateFeePayment reverses a prior late-fee charge through the payment
// gateway.
//
// The transaction id format and the amount bounds are checked before the
// gateway is contacted. The refundable amount is capped at the maximum
// late fee since no single charge can exceed it.
func (s *LibraryService) RefundLateFeePayment(ctx context.Context, transactionID string, amount float64) lending.Result {
	started := time.Now()

	if !lending.IsValidTransactionID(transactionID) {
		return s.failRefund(started, msgInvalidTransactionID)
	}

	if amount <= 0 {
		return s.failRefund(started, msgRefundNonPositive)
	}

	if amount > lending.MaxLateFee {
		return s.failRefund(started, msgRefundExceedsMax)
	}

	outcome, gatewayErr := s.gateway.RefundPayment(ctx, transactionID, amount)
	if gatewayErr != nil {
		return s.failRefund(started, msgRefundFault+gatewayErr.Error())
	}

	if !outcome.Approved {
		return s.failRefund(started, msgRefundDeclined+outcome.Message)
	}

	s.logOutcome(opRefundLateFees, true, started, logAttrMessage, outcome.Message)

	return lending.SuccessResult(outcome.Message)
}

func (s *LibraryService) failRefund(started time.Time, message string) lending.Result {
	s.logOutcome(opRefundLateFees, false, started, logAttrMessage, message)
	return lending.FailureResult(message)
}
