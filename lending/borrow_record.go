package lending

import (
	"time"
)

// BorrowRecord tracks one lending of one book to one patron.
//
// A record is created Active (zero ReturnDate) and is closed exactly once by
// setting ReturnDate; a closed record is never reopened. Borrowing the same
// book again later creates a fresh record.
type BorrowRecord struct {
	PatronID   PatronIDString `json:"patron_id"`
	BookID     BookIDInt64    `json:"book_id"`
	BorrowDate time.Time      `json:"borrow_date"`
	DueDate    time.Time      `json:"due_date"`
	ReturnDate time.Time      `json:"return_date"`
}

// BuildBorrowRecord creates an active BorrowRecord with the due date derived
// from the borrow date and the loan period.
func BuildBorrowRecord(patronID PatronIDString, bookID BookIDInt64, borrowedAt time.Time) BorrowRecord {
	borrowedAt = ToOccurredAt(borrowedAt)

	return BorrowRecord{
		PatronID:   patronID,
		BookID:     bookID,
		BorrowDate: borrowedAt,
		DueDate:    borrowedAt.AddDate(0, 0, LoanPeriodDays),
	}
}

// IsActive reports whether the book has not been returned yet.
func (r BorrowRecord) IsActive() bool {
	return r.ReturnDate.IsZero()
}

// Closed returns a copy of the record with the return date set.
func (r BorrowRecord) Closed(returnedAt time.Time) BorrowRecord {
	r.ReturnDate = ToOccurredAt(returnedAt)
	return r
}
