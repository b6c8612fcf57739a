package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/libraryops/library-lending-go/lending"
)

const opReturnBook = "return_book"

// ReturnBook processes a book return: it closes the patron's active borrow
// record, makes the copy available again, and reports whether a late fee is
// owed. Failing to find the book in the patron's active set is a "not
// borrowed" failure regardless of whether the book exists in the catalog.
func (s *LibraryService) ReturnBook(ctx context.Context, patronID lending.PatronIDString, bookID lending.BookIDInt64) lending.Result {
	started := time.Now()

	if !lending.IsValidPatronID(patronID) {
		return s.failReturn(started, msgInvalidPatronID)
	}

	borrowed, listErr := s.store.PatronBorrowedBooks(ctx, patronID)
	if listErr != nil {
		return s.failReturn(started, msgReturnFailed)
	}

	var record lending.BorrowRecord
	found := false
	for _, candidate := range borrowed {
		if candidate.BookID == bookID {
			record = candidate
			found = true
			break
		}
	}
	if !found {
		return s.failReturn(started, msgNotBorrowed)
	}

	now := s.clock()

	// Return-date write and availability increment are one atomic store transition.
	returnErr := s.store.RecordReturn(ctx, patronID, bookID, now)
	if errors.Is(returnErr, lending.ErrNoActiveBorrowRecord) {
		return s.failReturn(started, msgNotBorrowed)
	}
	if returnErr != nil {
		return s.failReturn(started, msgReturnFailed)
	}

	fee := lending.CalculateFee(record.Closed(now), now)

	s.logOutcome(opReturnBook, true, started, logAttrPatronID, patronID, logAttrBookID, bookID)

	if fee.FeeAmount > 0 {
		return lending.SuccessResult(fmt.Sprintf(msgReturnedWithFee, fee.FeeAmount))
	}

	return lending.SuccessResult(msgReturnedNoFee)
}

func (s *LibraryService) failReturn(started time.Time, message string) lending.Result {
	s.logOutcome(opReturnBook, false, started, logAttrMessage, message)
	return lending.FailureResult(message)
}
