package lending

// Result is the uniform reply shape of the user-facing lending operations.
// Every rejected operation states why; there is no silent failure.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// PaymentResult extends Result with the gateway-issued transaction id for
// operations that move money. TransactionID is empty unless Success is true.
type PaymentResult struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	TransactionID string `json:"transaction_id,omitempty"`
}

// SuccessResult creates a successful Result with the given message.
func SuccessResult(message string) Result {
	return Result{Success: true, Message: message}
}

// FailureResult creates a failed Result with the given message.
func FailureResult(message string) Result {
	return Result{Success: false, Message: message}
}
