// Package gormstore implements the lending.Store persistence gateway on
// MySQL through GORM. The borrow and return transitions run inside a GORM
// transaction with pessimistic row locks, so the borrow-record write and the
// availability write commit or roll back together.
package gormstore

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/libraryops/library-lending-go/lending"
)

// sqlBook maps the books table.
type sqlBook struct {
	ID              int64  `gorm:"primaryKey;autoIncrement"`
	Title           string `gorm:"size:200"`
	Author          string `gorm:"size:100"`
	ISBN            string `gorm:"column:isbn;size:13;uniqueIndex"`
	TotalCopies     int
	AvailableCopies int
}

func (*sqlBook) TableName() string {
	return "books"
}

// sqlBorrowRecord maps the borrow_records table.
type sqlBorrowRecord struct {
	ID         int64  `gorm:"primaryKey;autoIncrement"`
	PatronID   string `gorm:"size:6;index"`
	BookID     int64  `gorm:"index"`
	BorrowDate time.Time
	DueDate    time.Time
	ReturnDate *time.Time
}

func (*sqlBorrowRecord) TableName() string {
	return "borrow_records"
}

// GormStore is the MySQL implementation of the lending.Store persistence gateway.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GormStore and migrates the schema.
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if db == nil {
		return nil, lending.ErrNilDatabaseConnection
	}

	if err := db.AutoMigrate(&sqlBook{}, &sqlBorrowRecord{}); err != nil {
		return nil, err
	}

	return &GormStore{db: db}, nil
}

// GetBookByID returns the book with the given id, or lending.ErrBookNotFound.
func (s *GormStore) GetBookByID(ctx context.Context, id lending.BookIDInt64) (lending.Book, error) {
	var row sqlBook

	err := s.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return lending.Book{}, lending.ErrBookNotFound
	}
	if err != nil {
		return lending.Book{}, err
	}

	return bookFromRow(row), nil
}

// GetBookByISBN returns the book with the given ISBN, or lending.ErrBookNotFound.
func (s *GormStore) GetBookByISBN(ctx context.Context, isbn lending.ISBNString) (lending.Book, error) {
	var row sqlBook

	err := s.db.WithContext(ctx).Where("isbn = ?", isbn).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return lending.Book{}, lending.ErrBookNotFound
	}
	if err != nil {
		return lending.Book{}, err
	}

	return bookFromRow(row), nil
}

// InsertBook persists a new book and returns its assigned id.
func (s *GormStore) InsertBook(ctx context.Context, book lending.Book) (lending.BookIDInt64, error) {
	row := sqlBook{
		Title:           book.Title,
		Author:          book.Author,
		ISBN:            book.ISBN,
		TotalCopies:     book.TotalCopies,
		AvailableCopies: book.AvailableCopies,
	}

	err := s.db.WithContext(ctx).Create(&row).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return 0, lending.ErrDuplicateISBN
	}
	if err != nil {
		return 0, err
	}

	return row.ID, nil
}

// GetAllBooks returns the whole catalog ordered by book id.
func (s *GormStore) GetAllBooks(ctx context.Context) ([]lending.Book, error) {
	var rows []sqlBook

	if err := s.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}

	books := make([]lending.Book, 0, len(rows))
	for _, row := range rows {
		books = append(books, bookFromRow(row))
	}

	return books, nil
}

// PatronBorrowCount returns the count of the patron's active records.
func (s *GormStore) PatronBorrowCount(ctx context.Context, patronID lending.PatronIDString) (int, error) {
	var count int64

	err := s.db.WithContext(ctx).
		Model(&sqlBorrowRecord{}).
		Where("patron_id = ? AND return_date IS NULL", patronID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return int(count), nil
}

// PatronBorrowedBooks returns the patron's active borrow records in borrow order.
func (s *GormStore) PatronBorrowedBooks(ctx context.Context, patronID lending.PatronIDString) ([]lending.BorrowRecord, error) {
	var rows []sqlBorrowRecord

	err := s.db.WithContext(ctx).
		Where("patron_id = ? AND return_date IS NULL", patronID).
		Order("borrow_date").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	records := make([]lending.BorrowRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, recordFromRow(row))
	}

	return records, nil
}

// LatestBorrowRecord returns the most recent record for the patron and book,
// active or closed, or lending.ErrNoActiveBorrowRecord.
func (s *GormStore) LatestBorrowRecord(ctx context.Context, patronID lending.PatronIDString, bookID lending.BookIDInt64) (lending.BorrowRecord, error) {
	var row sqlBorrowRecord

	err := s.db.WithContext(ctx).
		Where("patron_id = ? AND book_id = ?", patronID, bookID).
		Order("borrow_date DESC").
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return lending.BorrowRecord{}, lending.ErrNoActiveBorrowRecord
	}
	if err != nil {
		return lending.BorrowRecord{}, err
	}

	return recordFromRow(row), nil
}

// RecordBorrow inserts the active record and decrements availability inside
// one transaction, locking the book row for the duration.
func (s *GormStore) RecordBorrow(ctx context.Context, record lending.BorrowRecord) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var book sqlBook

		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", record.BookID).
			First(&book).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return lending.ErrBookNotFound
		}
		if err != nil {
			return err
		}

		if book.AvailableCopies <= 0 {
			return lending.ErrBookUnavailable
		}

		book.AvailableCopies--
		if err := tx.Save(&book).Error; err != nil {
			return err
		}

		row := sqlBorrowRecord{
			PatronID:   record.PatronID,
			BookID:     record.BookID,
			BorrowDate: record.BorrowDate,
			DueDate:    record.DueDate,
		}

		return tx.Create(&row).Error
	})
}

// RecordReturn closes the active record and increments availability inside
// one transaction, locking the book row for the duration.
func (s *GormStore) RecordReturn(ctx context.Context, patronID lending.PatronIDString, bookID lending.BookIDInt64, returnedAt time.Time) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row sqlBorrowRecord

		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("patron_id = ? AND book_id = ? AND return_date IS NULL", patronID, bookID).
			First(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return lending.ErrNoActiveBorrowRecord
		}
		if err != nil {
			return err
		}

		closedAt := lending.ToOccurredAt(returnedAt)
		row.ReturnDate = &closedAt
		if err := tx.Save(&row).Error; err != nil {
			return err
		}

		return tx.Model(&sqlBook{}).
			Where("id = ?", bookID).
			UpdateColumn("available_copies", gorm.Expr("available_copies + 1")).Error
	})
}

func bookFromRow(row sqlBook) lending.Book {
	return lending.Book{
		ID:              row.ID,
		Title:           row.Title,
		Author:          row.Author,
		ISBN:            row.ISBN,
		TotalCopies:     row.TotalCopies,
		AvailableCopies: row.AvailableCopies,
	}
}

func recordFromRow(row sqlBorrowRecord) lending.BorrowRecord {
	record := lending.BorrowRecord{
		PatronID:   row.PatronID,
		BookID:     row.BookID,
		BorrowDate: row.BorrowDate,
		DueDate:    row.DueDate,
	}

	if row.ReturnDate != nil {
		record.ReturnDate = *row.ReturnDate
	}

	return record
}

// Ensure GormStore implements lending.Store.
var _ lending.Store = (*GormStore)(nil)
