// Package memorystore provides a deterministic in-memory implementation of
// the lending.Store contract for tests and the demo CLI. All state lives
// behind one mutex, so the multi-step borrow and return transitions are
// applied atomically: validation happens before any mutation, and a rejected
// transition leaves the state untouched.
package memorystore

import (
	"context"
	"sync"
	"time"

	"github.com/libraryops/library-lending-go/lending"
)

// MemoryStore is an in-memory lending.Store.
type MemoryStore struct {
	mu         sync.Mutex
	books      map[lending.BookIDInt64]lending.Book
	byISBN     map[lending.ISBNString]lending.BookIDInt64
	records    []lending.BorrowRecord
	nextBookID lending.BookIDInt64
}

// NewMemoryStore creates an empty MemoryStore. Book ids are assigned
// sequentially starting at 1.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		books:      make(map[lending.BookIDInt64]lending.Book),
		byISBN:     make(map[lending.ISBNString]lending.BookIDInt64),
		nextBookID: 1,
	}
}

// GetBookByID returns the book with the given id, or lending.ErrBookNotFound.
func (s *MemoryStore) GetBookByID(_ context.Context, id lending.BookIDInt64) (lending.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	book, ok := s.books[id]
	if !ok {
		return lending.Book{}, lending.ErrBookNotFound
	}

	return book, nil
}

// GetBookByISBN returns the book with the given ISBN, or lending.ErrBookNotFound.
func (s *MemoryStore) GetBookByISBN(_ context.Context, isbn lending.ISBNString) (lending.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byISBN[isbn]
	if !ok {
		return lending.Book{}, lending.ErrBookNotFound
	}

	return s.books[id], nil
}

// InsertBook persists a new book and returns its assigned id.
func (s *MemoryStore) InsertBook(_ context.Context, book lending.Book) (lending.BookIDInt64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byISBN[book.ISBN]; taken {
		return 0, lending.ErrDuplicateISBN
	}

	book.ID = s.nextBookID
	s.nextBookID++

	s.books[book.ID] = book
	s.byISBN[book.ISBN] = book.ID

	return book.ID, nil
}

// GetAllBooks returns the whole catalog ordered by book id.
func (s *MemoryStore) GetAllBooks(_ context.Context) ([]lending.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	books := make([]lending.Book, 0, len(s.books))
	for id := lending.BookIDInt64(1); id < s.nextBookID; id++ {
		if book, ok := s.books[id]; ok {
			books = append(books, book)
		}
	}

	return books, nil
}

// PatronBorrowCount returns the count of the patron's active records.
func (s *MemoryStore) PatronBorrowCount(_ context.Context, patronID lending.PatronIDString) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, record := range s.records {
		if record.PatronID == patronID && record.IsActive() {
			count++
		}
	}

	return count, nil
}

// PatronBorrowedBooks returns the patron's active borrow records in borrow order.
func (s *MemoryStore) PatronBorrowedBooks(_ context.Context, patronID lending.PatronIDString) ([]lending.BorrowRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := make([]lending.BorrowRecord, 0)
	for _, record := range s.records {
		if record.PatronID == patronID && record.IsActive() {
			active = append(active, record)
		}
	}

	return active, nil
}

// LatestBorrowRecord returns the most recent record for the patron and book,
// active or closed, or lending.ErrNoActiveBorrowRecord.
func (s *MemoryStore) LatestBorrowRecord(_ context.Context, patronID lending.PatronIDString, bookID lending.BookIDInt64) (lending.BorrowRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := len(s.records) - 1; i >= 0; i-- {
		record := s.records[i]
		if record.PatronID == patronID && record.BookID == bookID {
			return record, nil
		}
	}

	return lending.BorrowRecord{}, lending.ErrNoActiveBorrowRecord
}

// RecordBorrow inserts the active record and decrements availability as one unit.
func (s *MemoryStore) RecordBorrow(_ context.Context, record lending.BorrowRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	book, ok := s.books[record.BookID]
	if !ok {
		return lending.ErrBookNotFound
	}

	if book.AvailableCopies <= 0 {
		return lending.ErrBookUnavailable
	}

	book.AvailableCopies--
	s.books[record.BookID] = book
	s.records = append(s.records, record)

	return nil
}

// RecordReturn closes the active record and increments availability as one unit.
func (s *MemoryStore) RecordReturn(_ context.Context, patronID lending.PatronIDString, bookID lending.BookIDInt64, returnedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := len(s.records) - 1; i >= 0; i-- {
		record := s.records[i]
		if record.PatronID != patronID || record.BookID != bookID || !record.IsActive() {
			continue
		}

		s.records[i] = record.Closed(returnedAt)

		book := s.books[bookID]
		book.AvailableCopies++
		s.books[bookID] = book

		return nil
	}

	return lending.ErrNoActiveBorrowRecord
}

// Ensure MemoryStore implements lending.Store.
var _ lending.Store = (*MemoryStore)(nil)
