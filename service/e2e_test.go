package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/libraryops/library-lending-go/lending"
	"github.com/libraryops/library-lending-go/lending/memorystore"
	"github.com/libraryops/library-lending-go/paymentsim"
	"github.com/libraryops/library-lending-go/service"
)

// Full lifecycle against the real in-memory store and the simulated payment
// gateway: catalog a book, borrow it, check the fee while on time, and
// return it without owing anything.
func Test_Lifecycle_BorrowAndReturnOnTime(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memorystore.NewMemoryStore()
	svc := service.NewLibraryService(store, paymentsim.NewGateway(),
		service.WithClock(fixedClock(testTime)))

	// act + assert, step by step
	added := svc.AddBook(ctx, "Test Book", "Test Author", testISBN, 5)
	require.True(t, added.Success)

	book, err := store.GetBookByISBN(ctx, testISBN)
	require.NoError(t, err)

	borrowed := svc.BorrowBook(ctx, testPatronID, book.ID)
	require.True(t, borrowed.Success)
	assert.Contains(t, borrowed.Message, "Due date: 2025-06-15.")

	fee, err := svc.CalculateLateFee(ctx, testPatronID, book.ID)
	require.NoError(t, err)
	assert.Equal(t, lending.FeeStatusOnTime, fee.Status)
	assert.Zero(t, fee.FeeAmount)

	returned := svc.ReturnBook(ctx, testPatronID, book.ID)
	require.True(t, returned.Success)
	assert.Equal(t, "Book returned successfully. No late fee owed.", returned.Message)

	refreshed, err := store.GetBookByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, refreshed.AvailableCopies)
}

// Overdue lifecycle with a real payment through the simulated gateway and a
// subsequent refund of the charged amount.
func Test_Lifecycle_OverdueFeePaymentAndRefund(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memorystore.NewMemoryStore()
	gateway := paymentsim.NewGateway()

	borrowSvc := service.NewLibraryService(store, gateway,
		service.WithClock(fixedClock(testTime)))
	require.True(t, borrowSvc.AddBook(ctx, "Test Book", "Test Author", testISBN, 1).Success)

	book, err := store.GetBookByISBN(ctx, testISBN)
	require.NoError(t, err)
	require.True(t, borrowSvc.BorrowBook(ctx, testPatronID, book.ID).Success)

	lateSvc := service.NewLibraryService(store, gateway,
		service.WithClock(fixedClock(testTime.AddDate(0, 0, 24)))) // 10 days late

	// act
	paid := lateSvc.PayLateFees(ctx, testPatronID, book.ID)

	// assert
	require.True(t, paid.Success)
	assert.Equal(t, "Payment successful! Payment of $6.50 processed successfully", paid.Message)
	assert.Equal(t, "txn_123456_100000", paid.TransactionID)

	refunded := lateSvc.RefundLateFeePayment(ctx, paid.TransactionID, 6.50)
	require.True(t, refunded.Success)
	assert.Equal(t, "Refund of $6.50 processed successfully.", refunded.Message)
}
