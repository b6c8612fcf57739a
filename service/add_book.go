package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/libraryops/library-lending-go/lending"
)

const (
	opAddBook    = "add_book"
	maxTitleLen  = 200
	maxAuthorLen = 100
)

// AddBook validates the catalog input and persists a new book with all
// copies available. The returned result references the trimmed title.
func (s *LibraryService) AddBook(ctx context.Context, title string, author string, isbn string, totalCopies int) lending.Result {
	started := time.Now()

	title = strings.TrimSpace(title)
	if title == "" {
		return s.failAddBook(started, msgTitleRequired)
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return s.failAddBook(started, msgTitleTooLong)
	}

	author = strings.TrimSpace(author)
	if author == "" {
		return s.failAddBook(started, msgAuthorRequired)
	}
	if utf8.RuneCountInString(author) > maxAuthorLen {
		return s.failAddBook(started, msgAuthorTooLong)
	}

	switch lending.ValidateISBN(isbn) {
	case lending.ISBNWrongLength:
		return s.failAddBook(started, msgISBNWrongLen)
	case lending.ISBNNotDigits:
		return s.failAddBook(started, msgISBNNotDigits)
	case lending.ISBNValid:
	}

	if totalCopies <= 0 {
		return s.failAddBook(started, msgCopiesInvalid)
	}

	_, lookupErr := s.store.GetBookByISBN(ctx, isbn)
	if lookupErr == nil {
		return s.failAddBook(started, msgDuplicateISBN)
	}
	if !errors.Is(lookupErr, lending.ErrBookNotFound) {
		return s.failAddBook(started, msgAddBookFailed)
	}

	book := lending.Book{
		Title:           title,
		Author:          author,
		ISBN:            isbn,
		TotalCopies:     totalCopies,
		AvailableCopies: totalCopies,
	}

	id, insertErr := s.store.InsertBook(ctx, book)
	if errors.Is(insertErr, lending.ErrDuplicateISBN) {
		return s.failAddBook(started, msgDuplicateISBN)
	}
	if insertErr != nil {
		return s.failAddBook(started, msgAddBookFailed)
	}

	s.logOutcome(opAddBook, true, started, logAttrBookID, id)

	return lending.SuccessResult(fmt.Sprintf(msgBookAddedFmt, title))
}

func (s *LibraryService) failAddBook(started time.Time, message string) lending.Result {
	s.logOutcome(opAddBook, false, started, logAttrMessage, message)
	return lending.FailureResult(message)
}
