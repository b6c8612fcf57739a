package lending

import (
	"time"
)

// FeeStatus tags the outcome of a late-fee calculation.
type FeeStatus string

const (
	// FeeStatusOnTime means the book is not overdue and no fee is owed.
	FeeStatusOnTime FeeStatus = "OnTime"

	// FeeStatusOverdue means the book is past its due date and a fee is owed.
	FeeStatusOverdue FeeStatus = "Overdue"

	// FeeStatusNoActiveBorrow means no matching borrow record was found.
	FeeStatusNoActiveBorrow FeeStatus = "NoActiveBorrow"
)

// Fee schedule: the first week of overdue days accrues at the first-week
// rate, every day beyond that at the late rate, capped at MaxLateFee.
const (
	overdueTierDays   = 7
	firstWeekDayRate  = 0.50
	beyondWeekDayRate = 1.00
)

// FeeResult is the outcome of a late-fee calculation. It is a derived value
// and is never persisted.
type FeeResult struct {
	FeeAmount   float64   `json:"fee_amount"`
	DaysOverdue int       `json:"days_overdue"`
	Status      FeeStatus `json:"status"`
}

// NoActiveBorrowFee is the informational zero-fee result returned when no
// borrow record matches.
func NoActiveBorrowFee() FeeResult {
	return FeeResult{Status: FeeStatusNoActiveBorrow}
}

// CalculateFee derives the late fee for one borrow record at the given time.
//
// It is a pure function of the record and the clock: the same inputs always
// yield the same result. For a closed record the fee is frozen at the overdue
// span reached at its return date, so the fee of a returned book no longer
// grows with the passing of time.
func CalculateFee(record BorrowRecord, now time.Time) FeeResult {
	asOf := now
	if !record.IsActive() && record.ReturnDate.Before(asOf) {
		asOf = record.ReturnDate
	}

	if !asOf.After(record.DueDate) {
		return FeeResult{Status: FeeStatusOnTime}
	}

	daysOverdue := int(asOf.Sub(record.DueDate).Hours() / 24) // whole days, floored

	fee := float64(min(daysOverdue, overdueTierDays)) * firstWeekDayRate
	fee += float64(max(daysOverdue-overdueTierDays, 0)) * beyondWeekDayRate
	fee = min(fee, MaxLateFee)

	status := FeeStatusOnTime
	if fee > 0 {
		status = FeeStatusOverdue
	}

	return FeeResult{
		FeeAmount:   fee,
		DaysOverdue: daysOverdue,
		Status:      status,
	}
}
