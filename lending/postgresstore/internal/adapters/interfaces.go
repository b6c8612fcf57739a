// Package adapters provides database adapter implementations for the
// PostgreSQL lending store.
//
// The adapter pattern lets the store work with multiple PostgreSQL client
// libraries: pgxpool.Pool, sql.DB, and sqlx.DB. All adapters present the same
// DBAdapter interface for query execution and result handling, so the store
// itself stays driver-agnostic.
package adapters

import "context"

// DBAdapter defines the interface for database operations needed by the lending store.
type DBAdapter interface {
	Query(ctx context.Context, query string) (DBRows, error)
	Exec(ctx context.Context, query string) (DBResult, error)
}

// DBRows defines the interface for query result rows.
type DBRows interface {
	Next() bool
	Scan(dest ...any) error
	Close() error
}

// DBResult defines the interface for execution results.
type DBResult interface {
	RowsAffected() (int64, error)
}
