package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/libraryops/library-lending-go/service"
)

func Test_AddBook_Success(t *testing.T) {
	// arrange
	ctx := context.Background()
	svc, store, _ := givenService()

	// act
	result := svc.AddBook(ctx, "Test Book", "Test Author", testISBN, 5)

	// assert
	require.True(t, result.Success)
	assert.Equal(t, `Book "Test Book" has been successfully added to the catalog.`, result.Message)

	book, err := store.GetBookByISBN(ctx, testISBN)
	require.NoError(t, err)
	assert.Equal(t, 5, book.TotalCopies)
	assert.Equal(t, 5, book.AvailableCopies)
}

func Test_AddBook_TrimsTitleAndAuthor(t *testing.T) {
	// arrange
	ctx := context.Background()
	svc, store, _ := givenService()

	// act
	result := svc.AddBook(ctx, "  Test Book  ", "  Test Author  ", testISBN, 1)

	// assert
	require.True(t, result.Success)

	book, err := store.GetBookByISBN(ctx, testISBN)
	require.NoError(t, err)
	assert.Equal(t, "Test Book", book.Title)
	assert.Equal(t, "Test Author", book.Author)
}

func Test_AddBook_ValidationFailures(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		author      string
		isbn        string
		totalCopies int
		wantMessage string
	}{
		{
			name:        "empty_title",
			title:       "",
			author:      "Test Author",
			isbn:        testISBN,
			totalCopies: 1,
			wantMessage: "Title is required.",
		},
		{
			name:        "whitespace_only_title",
			title:       "   ",
			author:      "Test Author",
			isbn:        testISBN,
			totalCopies: 1,
			wantMessage: "Title is required.",
		},
		{
			name:        "title_too_long",
			title:       strings.Repeat("x", 201),
			author:      "Test Author",
			isbn:        testISBN,
			totalCopies: 1,
			wantMessage: "Title must be less than 200 characters.",
		},
		{
			name:        "empty_author",
			title:       "Test Book",
			author:      "",
			isbn:        testISBN,
			totalCopies: 1,
			wantMessage: "Author is required.",
		},
		{
			name:        "author_too_long",
			title:       "Test Book",
			author:      strings.Repeat("y", 101),
			isbn:        testISBN,
			totalCopies: 1,
			wantMessage: "Author must be less than 100 characters.",
		},
		{
			name:        "isbn_too_short",
			title:       "Test Book",
			author:      "Test Author",
			isbn:        "12345",
			totalCopies: 1,
			wantMessage: "ISBN must be exactly 13 digits.",
		},
		{
			name:        "isbn_with_letters",
			title:       "Test Book",
			author:      "Test Author",
			isbn:        "12345678901ab",
			totalCopies: 1,
			wantMessage: "ISBN must be 13 digits, numeric digits only.",
		},
		{
			name:        "zero_copies",
			title:       "Test Book",
			author:      "Test Author",
			isbn:        testISBN,
			totalCopies: 0,
			wantMessage: "Total copies must be a positive integer.",
		},
		{
			name:        "negative_copies",
			title:       "Test Book",
			author:      "Test Author",
			isbn:        testISBN,
			totalCopies: -3,
			wantMessage: "Total copies must be a positive integer.",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			ctx := context.Background()
			svc, store, _ := givenService()

			// act
			result := svc.AddBook(ctx, tc.title, tc.author, tc.isbn, tc.totalCopies)

			// assert
			assert.False(t, result.Success)
			assert.Equal(t, tc.wantMessage, result.Message)

			books, err := store.GetAllBooks(ctx)
			require.NoError(t, err)
			assert.Empty(t, books, "a rejected book must not reach the catalog")
		})
	}
}

func Test_AddBook_DuplicateISBN(t *testing.T) {
	// arrange
	ctx := context.Background()
	svc, _, _ := givenService()
	require.True(t, svc.AddBook(ctx, "Test Book", "Test Author", testISBN, 2).Success)

	// act
	result := svc.AddBook(ctx, "Another Title", "Another Author", testISBN, 1)

	// assert
	assert.False(t, result.Success)
	assert.Equal(t, "A book with this ISBN already exists.", result.Message)
}

func Test_AddBook_StoreFailure(t *testing.T) {
	// arrange
	ctx := context.Background()
	svc := service.NewLibraryService(
		&failingStore{err: assert.AnError},
		approvingGateway(),
	)

	// act
	result := svc.AddBook(ctx, "Test Book", "Test Author", testISBN, 1)

	// assert
	assert.False(t, result.Success)
	assert.Equal(t, "Database error occurred while adding the book.", result.Message)
}

func Test_AddBook_BoundaryLengthsAccepted(t *testing.T) {
	// arrange
	ctx := context.Background()
	svc, _, _ := givenService()

	// act
	result := svc.AddBook(ctx, strings.Repeat("t", 200), strings.Repeat("a", 100), testISBN, 1)

	// assert
	assert.True(t, result.Success)
}
