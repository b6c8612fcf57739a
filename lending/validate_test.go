package lending_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/libraryops/library-lending-go/lending"
)

func Test_ValidateISBN(t *testing.T) {
	tests := []struct {
		name     string
		isbn     string
		expected lending.ISBNValidation
	}{
		{name: "valid_thirteen_digits", isbn: "1234567890123", expected: lending.ISBNValid},
		{name: "empty", isbn: "", expected: lending.ISBNWrongLength},
		{name: "twelve_digits", isbn: "123456789012", expected: lending.ISBNWrongLength},
		{name: "fourteen_digits", isbn: "12345678901234", expected: lending.ISBNWrongLength},
		{name: "very_long", isbn: strings.Repeat("9", 100), expected: lending.ISBNWrongLength},
		{name: "thirteen_chars_with_letter", isbn: "123456789012X", expected: lending.ISBNNotDigits},
		{name: "thirteen_chars_with_dash", isbn: "123-456789012", expected: lending.ISBNNotDigits},
		{name: "thirteen_spaces", isbn: "             ", expected: lending.ISBNNotDigits},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, lending.ValidateISBN(tc.isbn))
		})
	}
}

func Test_IsValidPatronID(t *testing.T) {
	tests := []struct {
		name     string
		patronID string
		expected bool
	}{
		{name: "valid_six_digits", patronID: "123456", expected: true},
		{name: "leading_zeros", patronID: "000042", expected: true},
		{name: "empty", patronID: "", expected: false},
		{name: "five_digits", patronID: "12345", expected: false},
		{name: "seven_digits", patronID: "1234567", expected: false},
		{name: "letters", patronID: "BADID!", expected: false},
		{name: "digits_with_space", patronID: "12345 ", expected: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, lending.IsValidPatronID(tc.patronID))
		})
	}
}

func Test_IsValidTransactionID(t *testing.T) {
	tests := []struct {
		name          string
		transactionID string
		expected      bool
	}{
		{name: "gateway_issued_format", transactionID: "txn_123456_100000", expected: true},
		{name: "long_numeric_suffix", transactionID: "txn_123456_12345678", expected: true},
		{name: "missing_prefix", transactionID: "123456_100000", expected: false},
		{name: "five_digit_patron", transactionID: "txn_12345_100000", expected: false},
		{name: "alpha_suffix", transactionID: "txn_123456_abc", expected: false},
		{name: "empty_suffix", transactionID: "txn_123456_", expected: false},
		{name: "arbitrary_string", transactionID: "invalid_txn_id", expected: false},
		{name: "empty", transactionID: "", expected: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, lending.IsValidTransactionID(tc.transactionID))
		})
	}
}
