package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/libraryops/library-lending-go/service"
)

func Test_BorrowBook_Success(t *testing.T) {
	// arrange
	ctx := context.Background()
	svc, store, _ := givenService()
	bookID := givenBookInCatalog(ctx, store, testISBN, 5)

	// act
	result := svc.BorrowBook(ctx, testPatronID, bookID)

	// assert
	require.True(t, result.Success)
	assert.Equal(t, `Successfully borrowed "Test Book". Due date: 2025-06-15.`, result.Message)

	book, err := store.GetBookByID(ctx, bookID)
	require.NoError(t, err)
	assert.Equal(t, 4, book.AvailableCopies)

	records, err := store.PatronBorrowedBooks(ctx, testPatronID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, testTime.AddDate(0, 0, 14), records[0].DueDate)
}

func Test_BorrowBook_InvalidPatronID(t *testing.T) {
	tests := []struct {
		name     string
		patronID string
	}{
		{name: "too_short", patronID: "12345"},
		{name: "too_long", patronID: "1234567"},
		{name: "letters", patronID: "12345a"},
		{name: "empty", patronID: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			ctx := context.Background()
			svc, store, _ := givenService()
			bookID := givenBookInCatalog(ctx, store, testISBN, 1)

			// act
			result := svc.BorrowBook(ctx, tc.patronID, bookID)

			// assert
			assert.False(t, result.Success)
			assert.Equal(t, "Invalid patron ID. Must be exactly 6 digits.", result.Message)
		})
	}
}

func Test_BorrowBook_BookNotFound(t *testing.T) {
	// arrange
	ctx := context.Background()
	svc, _, _ := givenService()

	// act
	result := svc.BorrowBook(ctx, testPatronID, 999)

	// assert
	assert.False(t, result.Success)
	assert.Equal(t, "Book not found.", result.Message)
}

func Test_BorrowBook_NoCopiesAvailable(t *testing.T) {
	// arrange
	ctx := context.Background()
	svc, store, _ := givenService()
	bookID := givenBookInCatalog(ctx, store, testISBN, 1)
	require.True(t, svc.BorrowBook(ctx, "111111", bookID).Success)

	// act
	result := svc.BorrowBook(ctx, testPatronID, bookID)

	// assert
	assert.False(t, result.Success)
	assert.Equal(t, "This book is currently not available.", result.Message)
}

// The limit check only rejects a patron already holding more than the
// maximum, so the borrow taking the count from five to six is admitted and
// the seventh is the first one refused.
func Test_BorrowBook_LimitBoundary(t *testing.T) {
	// arrange
	ctx := context.Background()
	svc, store, _ := givenService()

	var bookIDs []int64
	for i := 0; i < 7; i++ {
		isbn := fmt.Sprintf("978000000000%d", i)
		bookIDs = append(bookIDs, givenBookInCatalog(ctx, store, isbn, 1))
	}

	for i := 0; i < 5; i++ {
		require.True(t, svc.BorrowBook(ctx, testPatronID, bookIDs[i]).Success)
	}

	// act
	sixth := svc.BorrowBook(ctx, testPatronID, bookIDs[5])
	seventh := svc.BorrowBook(ctx, testPatronID, bookIDs[6])

	// assert
	assert.True(t, sixth.Success, "the borrow reaching six active books is still admitted")
	assert.False(t, seventh.Success)
	assert.Equal(t, "You have reached the maximum borrowing limit of 5 books.", seventh.Message)

	count, err := store.PatronBorrowCount(ctx, testPatronID)
	require.NoError(t, err)
	assert.Equal(t, 6, count)
}

func Test_BorrowBook_StoreFailure(t *testing.T) {
	// arrange
	ctx := context.Background()
	svc := service.NewLibraryService(
		&failingStore{err: assert.AnError},
		approvingGateway(),
	)

	// act
	result := svc.BorrowBook(ctx, testPatronID, 1)

	// assert
	assert.False(t, result.Success)
	assert.Equal(t, "Database error occurred while looking up the book.", result.Message)
}
