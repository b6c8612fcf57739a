package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/libraryops/library-lending-go/lending"
)

const (
	logMsgOperation    = "library operation: "
	logAttrOperationID = "operation_id"
	logAttrPatronID    = "patron_id"
	logAttrBookID      = "book_id"
	logAttrOutcome     = "outcome"
	logAttrMessage     = "message"

	metricOperationsTotal          = "library_operations_total"
	metricOperationDurationSeconds = "library_operation_duration_seconds"
	labelOperation                 = "operation"
	labelOutcome                   = "outcome"

	outcomeSuccess = "success"
	outcomeFailure = "failure"
)

// LibraryService executes the lending operations against an injected
// persistence store and payment gateway.
type LibraryService struct {
	store   lending.Store
	gateway lending.PaymentGateway
	clock   func() time.Time
	logger  lending.Logger
	metrics lending.MetricsCollector
}

// Option defines a functional option for configuring LibraryService.
type Option func(*LibraryService)

// WithClock sets the time source used for borrow dates, return dates, and
// fee calculation. Defaults to time.Now.
func WithClock(clock func() time.Time) Option {
	return func(s *LibraryService) {
		s.clock = clock
	}
}

// WithLogger sets the logger for the service.
func WithLogger(logger lending.Logger) Option {
	return func(s *LibraryService) {
		s.logger = logger
	}
}

// WithMetrics sets the metrics collector for the service.
func WithMetrics(metrics lending.MetricsCollector) Option {
	return func(s *LibraryService) {
		s.metrics = metrics
	}
}

// NewLibraryService creates a LibraryService with optional configuration.
func NewLibraryService(store lending.Store, gateway lending.PaymentGateway, options ...Option) *LibraryService {
	s := &LibraryService{
		store:   store,
		gateway: gateway,
		clock:   time.Now,
	}

	for _, option := range options {
		option(s)
	}

	return s
}

// logOutcome logs one completed operation with a fresh correlation id,
// counts it in the operations metric, and records its wall-clock duration
// measured from started.
func (s *LibraryService) logOutcome(operation string, success bool, started time.Time, args ...any) {
	outcome := outcomeSuccess
	if !success {
		outcome = outcomeFailure
	}

	if s.logger != nil {
		logArgs := append(
			[]any{logAttrOperationID, uuid.New().String(), logAttrOutcome, outcome},
			args...,
		)
		s.logger.Info(logMsgOperation+operation, logArgs...)
	}

	if s.metrics != nil {
		labels := map[string]string{
			labelOperation: operation,
			labelOutcome:   outcome,
		}
		s.metrics.IncrementCounter(metricOperationsTotal, labels)
		s.metrics.RecordDuration(metricOperationDurationSeconds, time.Since(started), labels)
	}
}
