// Package postgresstore implements the lending.Store persistence gateway on
// PostgreSQL. Queries are built with goqu and executed through a driver
// adapter, so the store works with pgxpool.Pool, sql.DB, and sqlx.DB
// connections alike.
//
// The borrow and return transitions each run as a single data-modifying CTE
// statement, so the borrow-record write and the availability write commit or
// fail together; a failed transition cannot leave the two tables mismatched.
//
// Expected schema:
//
//	CREATE TABLE books (
//	    id               BIGSERIAL PRIMARY KEY,
//	    title            TEXT NOT NULL,
//	    author           TEXT NOT NULL,
//	    isbn             CHAR(13) NOT NULL UNIQUE,
//	    total_copies     INT NOT NULL CHECK (total_copies > 0),
//	    available_copies INT NOT NULL CHECK (available_copies BETWEEN 0 AND total_copies)
//	);
//
//	CREATE TABLE borrow_records (
//	    id          BIGSERIAL PRIMARY KEY,
//	    patron_id   CHAR(6) NOT NULL,
//	    book_id     BIGINT NOT NULL REFERENCES books (id),
//	    borrow_date TIMESTAMPTZ NOT NULL,
//	    due_date    TIMESTAMPTZ NOT NULL,
//	    return_date TIMESTAMPTZ
//	);
package postgresstore
