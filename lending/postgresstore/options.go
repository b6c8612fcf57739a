package postgresstore

import (
	"errors"

	"github.com/libraryops/library-lending-go/lending"
)

var errEmptyTableName = errors.New("empty table name supplied")

// Option defines a functional option for configuring PostgresStore.
type Option func(*PostgresStore) error

// WithTableNames sets the books and borrow-records table names.
func WithTableNames(booksTable string, borrowsTable string) Option {
	return func(s *PostgresStore) error {
		if booksTable == "" || borrowsTable == "" {
			return errEmptyTableName
		}

		s.booksTable = booksTable
		s.borrowsTable = borrowsTable

		return nil
	}
}

// WithLogger sets the logger for the PostgresStore.
//
// Debug level: SQL statements with execution timing (development use)
// Info level: operation outcomes and durations (production-safe)
// Warn level: non-critical issues like cleanup failures
// Error level: failures that cause operation failures.
func WithLogger(logger lending.Logger) Option {
	return func(s *PostgresStore) error {
		s.logger = logger
		return nil
	}
}

// WithContextualLogger sets the contextual logger for the PostgresStore.
// When set it takes precedence over the plain logger on all query and
// statement paths, carrying the request context so implementations can add
// trace/span correlation.
func WithContextualLogger(logger lending.ContextualLogger) Option {
	return func(s *PostgresStore) error {
		s.contextualLogger = logger
		return nil
	}
}
