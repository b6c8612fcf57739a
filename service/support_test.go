package service_test

import (
	"context"
	"time"

	"github.com/libraryops/library-lending-go/lending"
	"github.com/libraryops/library-lending-go/lending/memorystore"
	"github.com/libraryops/library-lending-go/service"
)

const (
	testPatronID = "123456"
	testISBN     = "1234567890123"
)

var testTime = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

// fixedClock returns a clock frozen at the given instant.
func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

// fakeGateway is a scripted payment gateway that records its calls.
type fakeGateway struct {
	chargeOutcome lending.ChargeOutcome
	chargeErr     error
	refundOutcome lending.RefundOutcome
	refundErr     error

	chargeCalls       int
	refundCalls       int
	lastPatronID      lending.PatronIDString
	lastAmount        float64
	lastDescription   string
	lastTransactionID string
}

func (g *fakeGateway) ProcessPayment(
	_ context.Context,
	patronID lending.PatronIDString,
	amount float64,
	description string,
) (lending.ChargeOutcome, error) {
	g.chargeCalls++
	g.lastPatronID = patronID
	g.lastAmount = amount
	g.lastDescription = description

	return g.chargeOutcome, g.chargeErr
}

func (g *fakeGateway) RefundPayment(
	_ context.Context,
	transactionID string,
	amount float64,
) (lending.RefundOutcome, error) {
	g.refundCalls++
	g.lastTransactionID = transactionID
	g.lastAmount = amount

	return g.refundOutcome, g.refundErr
}

// approvingGateway approves every charge with a fixed transaction id.
func approvingGateway() *fakeGateway {
	return &fakeGateway{
		chargeOutcome: lending.ChargeOutcome{
			Approved:      true,
			TransactionID: "txn_123456_100000",
			Message:       "Payment of $3.50 processed successfully",
		},
		refundOutcome: lending.RefundOutcome{
			Approved: true,
			Message:  "Refund of $3.50 processed successfully.",
		},
	}
}

// failingStore returns the injected error from every store operation.
type failingStore struct {
	err error
}

func (f *failingStore) GetBookByID(context.Context, lending.BookIDInt64) (lending.Book, error) {
	return lending.Book{}, f.err
}

func (f *failingStore) GetBookByISBN(context.Context, lending.ISBNString) (lending.Book, error) {
	return lending.Book{}, f.err
}

func (f *failingStore) InsertBook(context.Context, lending.Book) (lending.BookIDInt64, error) {
	return 0, f.err
}

func (f *failingStore) GetAllBooks(context.Context) ([]lending.Book, error) {
	return nil, f.err
}

func (f *failingStore) PatronBorrowCount(context.Context, lending.PatronIDString) (int, error) {
	return 0, f.err
}

func (f *failingStore) PatronBorrowedBooks(context.Context, lending.PatronIDString) ([]lending.BorrowRecord, error) {
	return nil, f.err
}

func (f *failingStore) LatestBorrowRecord(
	context.Context,
	lending.PatronIDString,
	lending.BookIDInt64,
) (lending.BorrowRecord, error) {
	return lending.BorrowRecord{}, f.err
}

func (f *failingStore) RecordBorrow(context.Context, lending.BorrowRecord) error {
	return f.err
}

func (f *failingStore) RecordReturn(
	context.Context,
	lending.PatronIDString,
	lending.BookIDInt64,
	time.Time,
) error {
	return f.err
}

// metricCall is one recorded metrics invocation.
type metricCall struct {
	name   string
	labels map[string]string
}

// recordingMetrics captures metrics calls for assertions.
type recordingMetrics struct {
	counters  []metricCall
	durations []metricCall
	values    []metricCall
}

func (m *recordingMetrics) RecordDuration(name string, _ time.Duration, labels map[string]string) {
	m.durations = append(m.durations, metricCall{name: name, labels: labels})
}

func (m *recordingMetrics) IncrementCounter(name string, labels map[string]string) {
	m.counters = append(m.counters, metricCall{name: name, labels: labels})
}

func (m *recordingMetrics) RecordValue(name string, _ float64, labels map[string]string) {
	m.values = append(m.values, metricCall{name: name, labels: labels})
}

// givenService builds a service over a fresh in-memory store with a frozen
// clock and an approving gateway.
func givenService() (*service.LibraryService, *memorystore.MemoryStore, *fakeGateway) {
	store := memorystore.NewMemoryStore()
	gateway := approvingGateway()
	svc := service.NewLibraryService(store, gateway, service.WithClock(fixedClock(testTime)))

	return svc, store, gateway
}

// givenServiceAt is givenService with the clock frozen at a chosen instant.
func givenServiceAt(at time.Time) (*service.LibraryService, *memorystore.MemoryStore, *fakeGateway) {
	store := memorystore.NewMemoryStore()
	gateway := approvingGateway()
	svc := service.NewLibraryService(store, gateway, service.WithClock(fixedClock(at)))

	return svc, store, gateway
}

// givenBookInCatalog adds a book through the service and returns its id.
func givenBookInCatalog(
	ctx context.Context,
	store *memorystore.MemoryStore,
	isbn lending.ISBNString,
	copies int,
) lending.BookIDInt64 {
	id, err := store.InsertBook(ctx, lending.Book{
		Title:           "Test Book",
		Author:          "Test Author",
		ISBN:            isbn,
		TotalCopies:     copies,
		AvailableCopies: copies,
	})
	if err != nil {
		panic(err)
	}

	return id
}
