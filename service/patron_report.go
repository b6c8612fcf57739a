package service

import (
	"context"
	"math"

	jsoniter "github.com/json-iterator/go"

	"github.com/libraryops/library-lending-go/lending"
)

var reportJSON = jsoniter.ConfigCompatibleWithStandardLibrary

// BorrowedBookStatus is one active loan inside a PatronStatusReport.
type BorrowedBookStatus struct {
	BookID     lending.BookIDInt64 `json:"book_id"`
	Title      string              `json:"title"`
	BorrowDate string              `json:"borrow_date"`
	DueDate    string              `json:"due_date"`
	FeeAmount  float64             `json:"fee_amount"`
	Overdue    bool                `json:"overdue"`
}

// PatronStatusReport summarizes a patron's active loans and accrued fees.
// Error is set instead of the loan fields when the patron id is malformed.
type PatronStatusReport struct {
	PatronID      lending.PatronIDString `json:"patron_id"`
	BorrowedBooks []BorrowedBookStatus   `json:"borrowed_books"`
	BorrowCount   int                    `json:"borrow_count"`
	TotalLateFees float64                `json:"total_late_fees"`
	Error         string                 `json:"error,omitempty"`
}

// JSON renders the report for transport or display.
func (r PatronStatusReport) JSON() ([]byte, error) {
	return reportJSON.Marshal(r)
}

// GetPatronStatusReport assembles the patron's active loans with their
// individually accrued late fees and the rounded total across all of them.
//
// A store failure surfaces as an error; unlike the message-returning
// operations a report has no partial form worth returning.
func (s *LibraryService) GetPatronStatusReport(ctx context.Context, patronID lending.PatronIDString) (PatronStatusReport, error) {
	if !lending.IsValidPatronID(patronID) {
		return PatronStatusReport{PatronID: patronID, Error: msgInvalidPatronIDReport}, nil
	}

	records, err := s.store.PatronBorrowedBooks(ctx, patronID)
	if err != nil {
		return PatronStatusReport{}, err
	}

	borrowCount, err := s.store.PatronBorrowCount(ctx, patronID)
	if err != nil {
		return PatronStatusReport{}, err
	}

	now := s.clock()
	report := PatronStatusReport{
		PatronID:      patronID,
		BorrowedBooks: make([]BorrowedBookStatus, 0, len(records)),
		BorrowCount:   borrowCount,
	}

	for _, record := range records {
		fee := lending.CalculateFee(record, now)

		title := ""
		if book, lookupErr := s.store.GetBookByID(ctx, record.BookID); lookupErr == nil {
			title = book.Title
		}

		report.BorrowedBooks = append(report.BorrowedBooks, BorrowedBookStatus{
			BookID:     record.BookID,
			Title:      title,
			BorrowDate: record.BorrowDate.Format(dueDateFormat),
			DueDate:    record.DueDate.Format(dueDateFormat),
			FeeAmount:  fee.FeeAmount,
			Overdue:    fee.Status == lending.FeeStatusOverdue,
		})

		report.TotalLateFees += fee.FeeAmount
	}

	report.TotalLateFees = math.Round(report.TotalLateFees*100) / 100

	return report, nil
}
