package postgresstore

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect import
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/libraryops/library-lending-go/lending"
	"github.com/libraryops/library-lending-go/lending/postgresstore/internal/adapters"
)

// Errors reported by the store on top of the lending.Store contract errors.
var (
	ErrBuildingQueryFailed       = errors.New("failed to build sql query")
	ErrQueryingStoreFailed       = errors.New("database query execution failed")
	ErrScanningRowFailed         = errors.New("failed to scan database row")
	ErrExecutingStatementFailed  = errors.New("database statement execution failed")
	ErrGettingRowsAffectedFailed = errors.New("failed to get rows affected count")
)

const (
	defaultBooksTableName   = "books"
	defaultBorrowsTableName = "borrow_records"

	logMsgBuildQueryFailed   = "failed to build sql query"
	logMsgDBQueryFailed      = "database query execution failed"
	logMsgDBExecFailed       = "database statement execution failed"
	logMsgCloseRowsFailed    = "failed to close database rows"
	logMsgScanRowFailed      = "failed to scan database row"
	logMsgRowsAffectedFailed = "failed to get rows affected count"
	logMsgSQLExecuted        = "executed sql for: "
	logMsgOperation          = "lending store operation: "
	logMsgBookInserted       = "book inserted"
	logMsgBorrowRecorded     = "borrow recorded"
	logMsgReturnRecorded     = "return recorded"
	logAttrError             = "error"
	logAttrQuery             = "query"
	logAttrBookID            = "book_id"
	logAttrDurationMS        = "duration_ms"
	logAttrRowsAffected      = "rows_affected"
	logActionSelect          = "select"
	logActionInsert          = "insert"
	logActionBorrow          = "borrow"
	logActionReturn          = "return"

	colID              = "id"
	colTitle           = "title"
	colAuthor          = "author"
	colISBN            = "isbn"
	colTotalCopies     = "total_copies"
	colAvailableCopies = "available_copies"
	colPatronID        = "patron_id"
	colBookID          = "book_id"
	colBorrowDate      = "borrow_date"
	colDueDate         = "due_date"
	colReturnDate      = "return_date"

	cteDecremented = "decremented"
	cteClosed      = "closed"

	dialectPostgres = "postgres"

	pgUniqueViolationCode = "23505"
)

type sqlQueryString = string

// PostgresStore is the PostgreSQL implementation of the lending.Store
// persistence gateway. It leverages a database adapter and supports
// customizable logging and table name configuration.
type PostgresStore struct {
	db               adapters.DBAdapter
	booksTable       string
	borrowsTable     string
	logger           lending.Logger
	contextualLogger lending.ContextualLogger
}

// NewStoreFromPGXPool creates a new PostgresStore using a pgx Pool with optional configuration.
func NewStoreFromPGXPool(db *pgxpool.Pool, options ...Option) (PostgresStore, error) {
	if db == nil {
		return PostgresStore{}, lending.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewPGXAdapter(db), options...)
}

// NewStoreFromSQLDB creates a new PostgresStore using a sql.DB with optional configuration.
func NewStoreFromSQLDB(db *sql.DB, options ...Option) (PostgresStore, error) {
	if db == nil {
		return PostgresStore{}, lending.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLAdapter(db), options...)
}

// NewStoreFromSQLX creates a new PostgresStore using a sqlx.DB with optional configuration.
func NewStoreFromSQLX(db *sqlx.DB, options ...Option) (PostgresStore, error) {
	if db == nil {
		return PostgresStore{}, lending.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLXAdapter(db), options...)
}

func newStore(db adapters.DBAdapter, options ...Option) (PostgresStore, error) {
	store := PostgresStore{
		db:           db,
		booksTable:   defaultBooksTableName,
		borrowsTable: defaultBorrowsTableName,
	}

	for _, option := range options {
		if err := option(&store); err != nil {
			return PostgresStore{}, err
		}
	}

	return store, nil
}

// GetBookByID returns the book with the given id, or lending.ErrBookNotFound.
func (s PostgresStore) GetBookByID(ctx context.Context, id lending.BookIDInt64) (lending.Book, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(s.booksTable).
		Select(colID, colTitle, colAuthor, colISBN, colTotalCopies, colAvailableCopies).
		Where(goqu.C(colID).Eq(id))

	return s.queryOneBook(ctx, selectStmt)
}

// GetBookByISBN returns the book with the given ISBN, or lending.ErrBookNotFound.
func (s PostgresStore) GetBookByISBN(ctx context.Context, isbn lending.ISBNString) (lending.Book, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(s.booksTable).
		Select(colID, colTitle, colAuthor, colISBN, colTotalCopies, colAvailableCopies).
		Where(goqu.C(colISBN).Eq(isbn))

	return s.queryOneBook(ctx, selectStmt)
}

// InsertBook persists a new book and returns its assigned id.
func (s PostgresStore) InsertBook(ctx context.Context, book lending.Book) (lending.BookIDInt64, error) {
	insertStmt := goqu.Dialect(dialectPostgres).
		Insert(s.booksTable).
		Cols(colTitle, colAuthor, colISBN, colTotalCopies, colAvailableCopies).
		Vals(goqu.Vals{book.Title, book.Author, book.ISBN, book.TotalCopies, book.AvailableCopies}).
		Returning(colID)

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		s.logError(ctx, logMsgBuildQueryFailed, toSQLErr)
		return 0, errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	rows, _, queryErr := s.executeQuery(ctx, sqlQuery, logActionInsert)
	if queryErr != nil {
		if isUniqueViolation(queryErr) {
			return 0, lending.ErrDuplicateISBN
		}

		return 0, queryErr
	}
	defer s.closeRows(rows)

	if !rows.Next() {
		return 0, errors.Join(ErrQueryingStoreFailed, errors.New("insert returned no id"))
	}

	var id lending.BookIDInt64
	if scanErr := rows.Scan(&id); scanErr != nil {
		s.logError(ctx, logMsgScanRowFailed, scanErr)
		return 0, errors.Join(ErrScanningRowFailed, scanErr)
	}

	s.logOperation(ctx, logMsgBookInserted, logAttrBookID, id)

	return id, nil
}

// GetAllBooks returns the whole catalog ordered by book id.
func (s PostgresStore) GetAllBooks(ctx context.Context) ([]lending.Book, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(s.booksTable).
		Select(colID, colTitle, colAuthor, colISBN, colTotalCopies, colAvailableCopies).
		Order(goqu.I(colID).Asc())

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		s.logError(ctx, logMsgBuildQueryFailed, toSQLErr)
		return nil, errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	rows, _, queryErr := s.executeQuery(ctx, sqlQuery, logActionSelect)
	if queryErr != nil {
		return nil, queryErr
	}
	defer s.closeRows(rows)

	books := make([]lending.Book, 0)

	for rows.Next() {
		var book lending.Book

		scanErr := rows.Scan(&book.ID, &book.Title, &book.Author, &book.ISBN, &book.TotalCopies, &book.AvailableCopies)
		if scanErr != nil {
			s.logError(ctx, logMsgScanRowFailed, scanErr)
			return nil, errors.Join(ErrScanningRowFailed, scanErr)
		}

		books = append(books, book)
	}

	return books, nil
}

// PatronBorrowCount returns the count of the patron's active records.
func (s PostgresStore) PatronBorrowCount(ctx context.Context, patronID lending.PatronIDString) (int, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(s.borrowsTable).
		Select(goqu.COUNT(goqu.Star())).
		Where(
			goqu.C(colPatronID).Eq(patronID),
			goqu.C(colReturnDate).IsNull(),
		)

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		s.logError(ctx, logMsgBuildQueryFailed, toSQLErr)
		return 0, errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	rows, _, queryErr := s.executeQuery(ctx, sqlQuery, logActionSelect)
	if queryErr != nil {
		return 0, queryErr
	}
	defer s.closeRows(rows)

	var count int

	if rows.Next() {
		if scanErr := rows.Scan(&count); scanErr != nil {
			s.logError(ctx, logMsgScanRowFailed, scanErr)
			return 0, errors.Join(ErrScanningRowFailed, scanErr)
		}
	}

	return count, nil
}

// PatronBorrowedBooks returns the patron's active borrow records in borrow order.
func (s PostgresStore) PatronBorrowedBooks(ctx context.Context, patronID lending.PatronIDString) ([]lending.BorrowRecord, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(s.borrowsTable).
		Select(colPatronID, colBookID, colBorrowDate, colDueDate, colReturnDate).
		Where(
			goqu.C(colPatronID).Eq(patronID),
			goqu.C(colReturnDate).IsNull(),
		).
		Order(goqu.I(colBorrowDate).Asc())

	return s.queryBorrowRecords(ctx, selectStmt)
}

// LatestBorrowRecord returns the most recent record for the patron and book,
// active or closed, or lending.ErrNoActiveBorrowRecord.
func (s PostgresStore) LatestBorrowRecord(ctx context.Context, patronID lending.PatronIDString, bookID lending.BookIDInt64) (lending.BorrowRecord, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(s.borrowsTable).
		Select(colPatronID, colBookID, colBorrowDate, colDueDate, colReturnDate).
		Where(
			goqu.C(colPatronID).Eq(patronID),
			goqu.C(colBookID).Eq(bookID),
		).
		Order(goqu.I(colBorrowDate).Desc()).
		Limit(1)

	records, err := s.queryBorrowRecords(ctx, selectStmt)
	if err != nil {
		return lending.BorrowRecord{}, err
	}

	if len(records) == 0 {
		return lending.BorrowRecord{}, lending.ErrNoActiveBorrowRecord
	}

	return records[0], nil
}

// RecordBorrow atomically inserts the active borrow record and decrements the
// book's available copies. Both writes run as one data-modifying CTE
// statement: the insert only happens when the guarded decrement affected a
// row, so the two tables cannot end up mismatched.
func (s PostgresStore) RecordBorrow(ctx context.Context, record lending.BorrowRecord) error {
	builder := goqu.Dialect(dialectPostgres)

	decrementStmt := builder.
		Update(s.booksTable).
		Set(goqu.Record{colAvailableCopies: goqu.L(colAvailableCopies + " - 1")}).
		Where(
			goqu.C(colID).Eq(record.BookID),
			goqu.C(colAvailableCopies).Gt(0),
		).
		Returning(colID)

	insertStmt := builder.
		Insert(s.borrowsTable).
		Cols(colPatronID, colBookID, colBorrowDate, colDueDate).
		FromQuery(
			builder.From(cteDecremented).
				Select(goqu.V(record.PatronID), goqu.C(colID), goqu.V(record.BorrowDate), goqu.V(record.DueDate)),
		).
		With(cteDecremented, decrementStmt)

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		s.logError(ctx, logMsgBuildQueryFailed, toSQLErr)
		return errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	rowsAffected, duration, execErr := s.executeStatement(ctx, sqlQuery, logActionBorrow)
	if execErr != nil {
		return execErr
	}

	if rowsAffected < 1 {
		return lending.ErrBookUnavailable
	}

	s.logOperation(
		ctx,
		logMsgBorrowRecorded,
		logAttrBookID, record.BookID,
		logAttrDurationMS, s.durationToMilliseconds(duration),
	)

	return nil
}

// RecordReturn atomically closes the active record and increments the book's
// available copies, again as one data-modifying CTE statement.
func (s PostgresStore) RecordReturn(ctx context.Context, patronID lending.PatronIDString, bookID lending.BookIDInt64, returnedAt time.Time) error {
	builder := goqu.Dialect(dialectPostgres)

	closeStmt := builder.
		Update(s.borrowsTable).
		Set(goqu.Record{colReturnDate: lending.ToOccurredAt(returnedAt)}).
		Where(
			goqu.C(colPatronID).Eq(patronID),
			goqu.C(colBookID).Eq(bookID),
			goqu.C(colReturnDate).IsNull(),
		).
		Returning(colBookID)

	incrementStmt := builder.
		Update(s.booksTable).
		Set(goqu.Record{colAvailableCopies: goqu.L(colAvailableCopies + " + 1")}).
		Where(goqu.C(colID).In(builder.From(cteClosed).Select(colBookID))).
		With(cteClosed, closeStmt)

	sqlQuery, _, toSQLErr := incrementStmt.ToSQL()
	if toSQLErr != nil {
		s.logError(ctx, logMsgBuildQueryFailed, toSQLErr)
		return errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	rowsAffected, duration, execErr := s.executeStatement(ctx, sqlQuery, logActionReturn)
	if execErr != nil {
		return execErr
	}

	if rowsAffected < 1 {
		return lending.ErrNoActiveBorrowRecord
	}

	s.logOperation(
		ctx,
		logMsgReturnRecorded,
		logAttrBookID, bookID,
		logAttrDurationMS, s.durationToMilliseconds(duration),
	)

	return nil
}

func (s PostgresStore) queryOneBook(ctx context.Context, selectStmt *goqu.SelectDataset) (lending.Book, error) {
	var empty lending.Book

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		s.logError(ctx, logMsgBuildQueryFailed, toSQLErr)
		return empty, errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	rows, _, queryErr := s.executeQuery(ctx, sqlQuery, logActionSelect)
	if queryErr != nil {
		return empty, queryErr
	}
	defer s.closeRows(rows)

	if !rows.Next() {
		return empty, lending.ErrBookNotFound
	}

	var book lending.Book

	scanErr := rows.Scan(&book.ID, &book.Title, &book.Author, &book.ISBN, &book.TotalCopies, &book.AvailableCopies)
	if scanErr != nil {
		s.logError(ctx, logMsgScanRowFailed, scanErr)
		return empty, errors.Join(ErrScanningRowFailed, scanErr)
	}

	return book, nil
}

func (s PostgresStore) queryBorrowRecords(ctx context.Context, selectStmt *goqu.SelectDataset) ([]lending.BorrowRecord, error) {
	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		s.logError(ctx, logMsgBuildQueryFailed, toSQLErr)
		return nil, errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	rows, _, queryErr := s.executeQuery(ctx, sqlQuery, logActionSelect)
	if queryErr != nil {
		return nil, queryErr
	}
	defer s.closeRows(rows)

	records := make([]lending.BorrowRecord, 0)

	for rows.Next() {
		var record lending.BorrowRecord
		var returnDate sql.NullTime

		scanErr := rows.Scan(&record.PatronID, &record.BookID, &record.BorrowDate, &record.DueDate, &returnDate)
		if scanErr != nil {
			s.logError(ctx, logMsgScanRowFailed, scanErr)
			return nil, errors.Join(ErrScanningRowFailed, scanErr)
		}

		if returnDate.Valid {
			record.ReturnDate = returnDate.Time
		}

		records = append(records, record)
	}

	return records, nil
}

// executeQuery executes the SQL query and returns rows with timing information.
func (s PostgresStore) executeQuery(ctx context.Context, sqlQuery string, action string) (
	adapters.DBRows,
	time.Duration,
	error,
) {

	start := time.Now()
	rows, queryErr := s.db.Query(ctx, sqlQuery)
	duration := time.Since(start)
	s.logQueryWithDuration(ctx, sqlQuery, action, duration)

	if queryErr != nil {
		s.logError(ctx, logMsgDBQueryFailed, queryErr, logAttrQuery, sqlQuery)
		return nil, duration, errors.Join(ErrQueryingStoreFailed, queryErr)
	}

	return rows, duration, nil
}

// executeStatement executes the SQL statement and returns rows affected and duration.
func (s PostgresStore) executeStatement(ctx context.Context, sqlQuery string, action string) (
	int64,
	time.Duration,
	error,
) {

	start := time.Now()
	result, execErr := s.db.Exec(ctx, sqlQuery)
	duration := time.Since(start)
	s.logQueryWithDuration(ctx, sqlQuery, action, duration)

	if execErr != nil {
		s.logError(ctx, logMsgDBExecFailed, execErr, logAttrQuery, sqlQuery)
		return 0, duration, errors.Join(ErrExecutingStatementFailed, execErr)
	}

	rowsAffected, rowsAffectedErr := result.RowsAffected()
	if rowsAffectedErr != nil {
		s.logError(ctx, logMsgRowsAffectedFailed, rowsAffectedErr)
		return 0, duration, errors.Join(ErrGettingRowsAffectedFailed, rowsAffectedErr)
	}

	return rowsAffected, duration, nil
}

// closeRows safely closes database rows and logs any errors.
func (s PostgresStore) closeRows(rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		if s.logger != nil {
			s.logger.Warn(logMsgCloseRowsFailed, logAttrError, closeErr.Error())
		}
	}
}

// isUniqueViolation reports whether err is a unique-constraint violation,
// for both the pgx and the lib/pq driver.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolationCode
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgUniqueViolationCode
	}

	return false
}

// logQueryWithDuration logs SQL statements with execution time at debug
// level. The contextual logger takes precedence so the query log carries
// trace correlation.
func (s PostgresStore) logQueryWithDuration(ctx context.Context, sqlQuery string, action string, duration time.Duration) {
	if s.contextualLogger != nil {
		s.contextualLogger.DebugContext(ctx, logMsgSQLExecuted+action, logAttrDurationMS, s.durationToMilliseconds(duration), logAttrQuery, sqlQuery)
		return
	}

	if s.logger != nil {
		s.logger.Debug(logMsgSQLExecuted+action, logAttrDurationMS, s.durationToMilliseconds(duration), logAttrQuery, sqlQuery)
	}
}

// logOperation logs operational information at info level.
func (s PostgresStore) logOperation(ctx context.Context, action string, args ...any) {
	if s.contextualLogger != nil {
		s.contextualLogger.InfoContext(ctx, logMsgOperation+action, args...)
		return
	}

	if s.logger != nil {
		s.logger.Info(logMsgOperation+action, args...)
	}
}

func (s PostgresStore) logError(ctx context.Context, msg string, err error, args ...any) {
	allArgs := append([]any{logAttrError, err.Error()}, args...)

	if s.contextualLogger != nil {
		s.contextualLogger.ErrorContext(ctx, msg, allArgs...)
		return
	}

	if s.logger != nil {
		s.logger.Error(msg, allArgs...)
	}
}

// durationToMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func (s PostgresStore) durationToMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}

// Ensure PostgresStore implements lending.Store.
var _ lending.Store = PostgresStore{}
