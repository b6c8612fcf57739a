package service

// User-facing message texts. Wording is part of the service contract: callers
// and tests match on these strings, so change them deliberately.
const (
	msgTitleRequired  = "Title is required."
	msgTitleTooLong   = "Title must be less than 200 characters."
	msgAuthorRequired = "Author is required."
	msgAuthorTooLong  = "Author must be less than 100 characters."
	msgISBNWrongLen   = "ISBN must be exactly 13 digits."
	msgISBNNotDigits  = "ISBN must be 13 digits, numeric digits only."
	msgCopiesInvalid  = "Total copies must be a positive integer."
	msgDuplicateISBN  = "A book with this ISBN already exists."
	msgAddBookFailed  = "Database error occurred while adding the book."
	msgBookAddedFmt   = "Book %q has been successfully added to the catalog."

	msgInvalidPatronID   = "Invalid patron ID. Must be exactly 6 digits."
	msgBookNotFound      = "Book not found."
	msgBookUnavailable   = "This book is currently not available."
	msgBorrowLimit       = "You have reached the maximum borrowing limit of 5 books."
	msgBorrowFailed      = "Database error occurred while creating borrow record."
	msgBorrowedFmt       = "Successfully borrowed %q. Due date: %s."
	msgNotBorrowed       = "This book was not borrowed by this patron or already returned."
	msgReturnFailed      = "Database error occurred while returning the book."
	msgReturnedWithFee   = "Book returned successfully. Late fee: $%.2f."
	msgReturnedNoFee     = "Book returned successfully. No late fee owed."
	msgBookLookupFailed  = "Database error occurred while looking up the book."
	msgFeeCalcFailed     = "Unable to calculate late fees."
	msgNoFeesOwed        = "No late fees to pay for this book."
	msgPaymentSuccessFmt = "Payment successful! %s"
	msgPaymentDeclined   = "Payment failed: "
	msgPaymentFault      = "Payment processing error: "

	msgInvalidTransactionID = "Invalid transaction ID."
	msgRefundNonPositive    = "Refund amount must be greater than 0."
	msgRefundExceedsMax     = "Refund amount exceeds maximum late fee."
	msgRefundDeclined       = "Refund failed: "
	msgRefundFault          = "Refund processing error: "

	msgInvalidPatronIDReport = "Invalid patron ID."
)
