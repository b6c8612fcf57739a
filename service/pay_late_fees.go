package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/libraryops/library-lending-go/lending"
)

const opPayLateFees = "pay_late_fees"

// PayLateFees charges the patron's outstanding late fee for one book through
// the payment gateway.
//
// The gateway is never called when the patron id is malformed, the book is
// missing, the fee cannot be computed, or no fee is owed. A structured
// gateway decline and a gateway fault are both converted into failed results
// carrying the gateway's reason; neither is propagated to the caller.
func (s *LibraryService) PayLateFees(ctx context.Context, patronID lending.PatronIDString, bookID lending.BookIDInt64) lending.PaymentResult {
	started := time.Now()

	if !lending.IsValidPatronID(patronID) {
		return s.failPayment(started, msgInvalidPatronID)
	}

	book, lookupErr := s.store.GetBookByID(ctx, bookID)
	if errors.Is(lookupErr, lending.ErrBookNotFound) {
		return s.failPayment(started, msgBookNotFound)
	}
	if lookupErr != nil {
		return s.failPayment(started, msgBookLookupFailed)
	}

	fee, feeErr := s.lateFeeForPayment(ctx, patronID, bookID)
	if feeErr != nil {
		return s.failPayment(started, msgFeeCalcFailed)
	}

	if fee.FeeAmount <= 0 {
		return s.failPayment(started, msgNoFeesOwed)
	}

	description := fmt.Sprintf("Late fees for '%s'", book.Title)

	outcome, gatewayErr := s.gateway.ProcessPayment(ctx, patronID, fee.FeeAmount, description)
	if gatewayErr != nil {
		return s.failPayment(started, msgPaymentFault+gatewayErr.Error())
	}

	if !outcome.Approved {
		return s.failPayment(started, msgPaymentDeclined+outcome.Message)
	}

	s.logOutcome(opPayLateFees, true, started, logAttrPatronID, patronID, logAttrBookID, bookID)

	return lending.PaymentResult{
		Success:       true,
		Message:       fmt.Sprintf(msgPaymentSuccessFmt, outcome.Message),
		TransactionID: outcome.TransactionID,
	}
}

// lateFeeForPayment computes the fee owed for the pair; a missing borrow
// history yields the informational zero fee.
func (s *LibraryService) lateFeeForPayment(ctx context.Context, patronID lending.PatronIDString, bookID lending.BookIDInt64) (lending.FeeResult, error) {
	record, err := s.store.LatestBorrowRecord(ctx, patronID, bookID)
	if errors.Is(err, lending.ErrNoActiveBorrowRecord) {
		return lending.NoActiveBorrowFee(), nil
	}
	if err != nil {
		return lending.FeeResult{}, err
	}

	return lending.CalculateFee(record, s.clock()), nil
}

func (s *LibraryService) failPayment(started time.Time, message string) lending.PaymentResult {
	s.logOutcome(opPayLateFees, false, started, logAttrMessage, message)
	return lending.PaymentResult{Success: false, Message: message}
}
