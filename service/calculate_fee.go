package service

import (
	"context"
	"errors"
	"time"

	"github.com/libraryops/library-lending-go/lending"
)

const opCalculateFee = "calculate_fee"

// CalculateLateFee derives the late fee for the patron's most recent borrow
// record of the book, active or just-closed, at the current time. When the
// pair has no borrow history the result carries the NoActiveBorrow status
// with a zero fee; this is informational, not an error.
func (s *LibraryService) CalculateLateFee(ctx context.Context, patronID lending.PatronIDString, bookID lending.BookIDInt64) (lending.FeeResult, error) {
	started := time.Now()

	record, err := s.store.LatestBorrowRecord(ctx, patronID, bookID)
	if errors.Is(err, lending.ErrNoActiveBorrowRecord) {
		s.logOutcome(opCalculateFee, true, started, logAttrPatronID, patronID, logAttrBookID, bookID)
		return lending.NoActiveBorrowFee(), nil
	}
	if err != nil {
		s.logOutcome(opCalculateFee, false, started, logAttrPatronID, patronID, logAttrBookID, bookID)
		return lending.FeeResult{}, err
	}

	result := lending.CalculateFee(record, s.clock())

	s.logOutcome(opCalculateFee, true, started, logAttrPatronID, patronID, logAttrBookID, bookID)

	return result, nil
}
