package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/libraryops/library-lending-go/lending"
)

const opBorrowBook = "borrow_book"

const dueDateFormat = "2006-01-02"

// BorrowBook lends one copy of a book to a patron. The due date is the
// borrow date plus the loan period.
//
// The limit rule follows the legacy validation literally: a patron is
// rejected only when the current active count already exceeds
// lending.MaxActiveBorrows, which admits a sixth borrow for a patron holding
// exactly five books. See DESIGN.md for the recorded decision.
func (s *LibraryService) BorrowBook(ctx context.Context, patronID lending.PatronIDString, bookID lending.BookIDInt64) lending.Result {
	started := time.Now()

	if !lending.IsValidPatronID(patronID) {
		return s.failBorrow(started, msgInvalidPatronID)
	}

	book, lookupErr := s.store.GetBookByID(ctx, bookID)
	if errors.Is(lookupErr, lending.ErrBookNotFound) {
		return s.failBorrow(started, msgBookNotFound)
	}
	if lookupErr != nil {
		return s.failBorrow(started, msgBookLookupFailed)
	}

	if !book.IsAvailable() {
		return s.failBorrow(started, msgBookUnavailable)
	}

	activeCount, countErr := s.store.PatronBorrowCount(ctx, patronID)
	if countErr != nil {
		return s.failBorrow(started, msgBorrowFailed)
	}

	if activeCount > lending.MaxActiveBorrows {
		return s.failBorrow(started, msgBorrowLimit)
	}

	record := lending.BuildBorrowRecord(patronID, bookID, s.clock())

	// Record insert and availability decrement are one atomic store transition.
	borrowErr := s.store.RecordBorrow(ctx, record)
	if errors.Is(borrowErr, lending.ErrBookUnavailable) {
		return s.failBorrow(started, msgBookUnavailable)
	}
	if borrowErr != nil {
		return s.failBorrow(started, msgBorrowFailed)
	}

	s.logOutcome(opBorrowBook, true, started, logAttrPatronID, patronID, logAttrBookID, bookID)

	return lending.SuccessResult(
		fmt.Sprintf(msgBorrowedFmt, book.Title, record.DueDate.Format(dueDateFormat)),
	)
}

func (s *LibraryService) failBorrow(started time.Time, message string) lending.Result {
	s.logOutcome(opBorrowBook, false, started, logAttrMessage, message)
	return lending.FailureResult(message)
}
