package lending_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/libraryops/library-lending-go/lending"
)

func Test_CalculateFee_Schedule(t *testing.T) {
	tests := []struct {
		name            string
		daysOverdue     int
		expectedFee     float64
		expectedStatus  lending.FeeStatus
		expectedDaysOut int
	}{
		{
			name:            "not_overdue_no_fee",
			daysOverdue:     0,
			expectedFee:     0.0,
			expectedStatus:  lending.FeeStatusOnTime,
			expectedDaysOut: 0,
		},
		{
			name:            "three_days_at_half_unit",
			daysOverdue:     3,
			expectedFee:     1.5,
			expectedStatus:  lending.FeeStatusOverdue,
			expectedDaysOut: 3,
		},
		{
			name:            "seven_days_ends_first_tier",
			daysOverdue:     7,
			expectedFee:     3.5,
			expectedStatus:  lending.FeeStatusOverdue,
			expectedDaysOut: 7,
		},
		{
			name:            "eight_days_enters_second_tier",
			daysOverdue:     8,
			expectedFee:     4.5,
			expectedStatus:  lending.FeeStatusOverdue,
			expectedDaysOut: 8,
		},
		{
			name:            "ten_days_mixes_both_tiers",
			daysOverdue:     10,
			expectedFee:     6.5,
			expectedStatus:  lending.FeeStatusOverdue,
			expectedDaysOut: 10,
		},
		{
			name:            "forty_days_hits_the_cap",
			daysOverdue:     40,
			expectedFee:     15.0,
			expectedStatus:  lending.FeeStatusOverdue,
			expectedDaysOut: 40,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			borrowedAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
			record := lending.BuildBorrowRecord("123456", 1, borrowedAt)
			now := record.DueDate.AddDate(0, 0, tc.daysOverdue)

			// act
			result := lending.CalculateFee(record, now)

			// assert
			assert.InDelta(t, tc.expectedFee, result.FeeAmount, 0.0001)
			assert.Equal(t, tc.expectedDaysOut, result.DaysOverdue)
			assert.Equal(t, tc.expectedStatus, result.Status)
		})
	}
}

func Test_CalculateFee_ExactlyAtDueDate_NoFee(t *testing.T) {
	// arrange
	record := lending.BuildBorrowRecord("123456", 1, time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))

	// act
	result := lending.CalculateFee(record, record.DueDate)

	// assert
	assert.Zero(t, result.FeeAmount)
	assert.Zero(t, result.DaysOverdue)
	assert.Equal(t, lending.FeeStatusOnTime, result.Status)
}

func Test_CalculateFee_PartialDayOverdue_FloorsToZeroDays(t *testing.T) {
	// arrange
	record := lending.BuildBorrowRecord("123456", 1, time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	now := record.DueDate.Add(23 * time.Hour)

	// act
	result := lending.CalculateFee(record, now)

	// assert
	assert.Zero(t, result.FeeAmount)
	assert.Zero(t, result.DaysOverdue)
	assert.Equal(t, lending.FeeStatusOnTime, result.Status)
}

func Test_CalculateFee_ClosedRecord_FrozenAtReturnDate(t *testing.T) {
	// arrange
	record := lending.BuildBorrowRecord("123456", 1, time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	closed := record.Closed(record.DueDate.AddDate(0, 0, 3))

	// act - the clock keeps running long past the return date
	result := lending.CalculateFee(closed, closed.ReturnDate.AddDate(0, 2, 0))

	// assert - the fee stays at the overdue span reached at return time
	assert.InDelta(t, 1.5, result.FeeAmount, 0.0001)
	assert.Equal(t, 3, result.DaysOverdue)
	assert.Equal(t, lending.FeeStatusOverdue, result.Status)
}

func Test_CalculateFee_IsPure_SameInputsSameResult(t *testing.T) {
	// arrange
	record := lending.BuildBorrowRecord("123456", 1, time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	closed := record.Closed(record.DueDate.AddDate(0, 0, 10))
	now := closed.ReturnDate.Add(time.Hour)

	// act
	first := lending.CalculateFee(closed, now)
	second := lending.CalculateFee(closed, now)

	// assert
	assert.Equal(t, first, second)
}

func Test_NoActiveBorrowFee(t *testing.T) {
	result := lending.NoActiveBorrowFee()

	assert.Zero(t, result.FeeAmount)
	assert.Zero(t, result.DaysOverdue)
	assert.Equal(t, lending.FeeStatusNoActiveBorrow, result.Status)
}
