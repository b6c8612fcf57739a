package lending

import (
	"time"
)

// Instead of implementing full value objects, I'm using some alias types and helper methods here ...

// PatronIDString represents a patron identifier, exactly six decimal digits.
type PatronIDString = string

// ISBNString represents a 13-digit ISBN identifier.
type ISBNString = string

// BookIDInt64 represents a catalog book identifier, assigned by the store.
type BookIDInt64 = int64

// Policy constants for the lending rules.
const (
	// LoanPeriodDays is the number of days between borrow date and due date.
	LoanPeriodDays = 14

	// MaxActiveBorrows is the intended maximum count of concurrently active
	// borrow records per patron. The borrow validation rejects only when the
	// current count already exceeds this value, which admits one borrow past
	// the limit; see LibraryService.BorrowBook.
	MaxActiveBorrows = 5

	// MaxLateFee is the cap for the late fee of a single book, in currency units.
	MaxLateFee = 15.00
)

// ToOccurredAt converts a time to UTC with microsecond precision, the
// normalization applied to every timestamp the store persists.
func ToOccurredAt(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}
