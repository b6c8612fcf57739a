package service

import (
	"context"
	"strings"

	"github.com/libraryops/library-lending-go/lending"
)

// SearchBooks returns the catalog entries matching the search term.
//
// Title and author match case-insensitively on substrings; the ISBN must
// match exactly. A blank term matches nothing. The store error, if any, is
// returned for the caller to handle since search has no user-facing message
// of its own.
func (s *LibraryService) SearchBooks(ctx context.Context, term string) ([]lending.Book, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []lending.Book{}, nil
	}

	books, err := s.store.GetAllBooks(ctx)
	if err != nil {
		return nil, err
	}

	lowered := strings.ToLower(term)
	matches := make([]lending.Book, 0)

	for _, book := range books {
		if strings.Contains(strings.ToLower(book.Title), lowered) ||
			strings.Contains(strings.ToLower(book.Author), lowered) ||
			book.ISBN == term {

			matches = append(matches, book)
		}
	}

	return matches, nil
}
