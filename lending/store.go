package lending

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrBookNotFound is returned by book lookups when no book matches.
	ErrBookNotFound = errors.New("book not found")

	// ErrDuplicateISBN is returned by InsertBook when the ISBN is taken.
	ErrDuplicateISBN = errors.New("a book with this ISBN already exists")

	// ErrBookUnavailable is returned by RecordBorrow when no copy is left.
	ErrBookUnavailable = errors.New("no available copy of the book")

	// ErrNoActiveBorrowRecord is returned by record lookups and by
	// RecordReturn when the patron holds no matching record.
	ErrNoActiveBorrowRecord = errors.New("no active borrow record for patron and book")

	// ErrNilDatabaseConnection is returned by store constructors when the
	// supplied database handle is nil.
	ErrNilDatabaseConnection = errors.New("nil database connection supplied")
)

// Store is the persistence gateway consumed by the lending service.
//
// RecordBorrow and RecordReturn are multi-step transitions (borrow-record
// write plus availability write) that every implementation must apply as one
// unit: either both writes take effect or neither does. A failed transition
// must never leave a record inserted without its paired availability update.
type Store interface {
	// GetBookByID returns the book with the given id, or ErrBookNotFound.
	GetBookByID(ctx context.Context, id BookIDInt64) (Book, error)

	// GetBookByISBN returns the book with the given ISBN, or ErrBookNotFound.
	GetBookByISBN(ctx context.Context, isbn ISBNString) (Book, error)

	// InsertBook persists a new book and returns its assigned id.
	// Returns ErrDuplicateISBN when the ISBN is already in the catalog.
	InsertBook(ctx context.Context, book Book) (BookIDInt64, error)

	// GetAllBooks returns the whole catalog.
	GetAllBooks(ctx context.Context) ([]Book, error)

	// PatronBorrowCount returns the count of the patron's active records.
	PatronBorrowCount(ctx context.Context, patronID PatronIDString) (int, error)

	// PatronBorrowedBooks returns the patron's active borrow records.
	PatronBorrowedBooks(ctx context.Context, patronID PatronIDString) ([]BorrowRecord, error)

	// LatestBorrowRecord returns the most recent borrow record for the
	// patron and book, active or closed, or ErrNoActiveBorrowRecord when
	// the pair has no history.
	LatestBorrowRecord(ctx context.Context, patronID PatronIDString, bookID BookIDInt64) (BorrowRecord, error)

	// RecordBorrow atomically inserts the active borrow record and
	// decrements the book's available copies by one.
	// Returns ErrBookUnavailable when no copy is left.
	RecordBorrow(ctx context.Context, record BorrowRecord) error

	// RecordReturn atomically closes the patron's active record for the
	// book with the given return date and increments the book's available
	// copies by one. Returns ErrNoActiveBorrowRecord when the patron holds
	// no active record for the book.
	RecordReturn(ctx context.Context, patronID PatronIDString, bookID BookIDInt64, returnedAt time.Time) error
}
