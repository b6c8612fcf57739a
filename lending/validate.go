package lending

import (
	"regexp"
)

// ISBNValidation classifies the outcome of validating an ISBN input.
type ISBNValidation int

const (
	// ISBNValid means the ISBN is exactly 13 decimal digits.
	ISBNValid ISBNValidation = iota

	// ISBNWrongLength means the input is not 13 characters long.
	ISBNWrongLength

	// ISBNNotDigits means the input is 13 characters long but contains
	// at least one non-digit character.
	ISBNNotDigits
)

const patronIDLength = 6

var transactionIDPattern = regexp.MustCompile(`^txn_\d{6}_\d+$`)

// ValidateISBN checks that isbn is exactly 13 decimal digits.
// The two failure classes are distinguished so the caller can report them
// with distinct messages.
func ValidateISBN(isbn string) ISBNValidation {
	if len(isbn) != 13 {
		return ISBNWrongLength
	}

	if !isAllDigits(isbn) {
		return ISBNNotDigits
	}

	return ISBNValid
}

// IsValidPatronID reports whether id is exactly six decimal digits.
func IsValidPatronID(id string) bool {
	return len(id) == patronIDLength && isAllDigits(id)
}

// IsValidTransactionID reports whether id matches the pattern the payment
// gateway uses when issuing transaction ids: txn_<6-digit-patron>_<numeric>.
func IsValidTransactionID(id string) bool {
	return transactionIDPattern.MatchString(id)
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}

	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}

	return true
}
