package store

import (
	"context"
	"database/sql"
)

// DBTX is an interface that abstracts the database access layer.
// It is implemented by both *sql.DB and *sql.Tx, allowing our code
// to work with either a database connection or a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Session is the request-scoped unit of work. Every HTTP request that
// touches the database runs against exactly one Session: the service layer
// commits it on success and the dispatch layer rolls it back on persistence
// errors or discards it when the handler never committed.
type Session interface {
	DBTX
	Commit() error
	Rollback() error
}

// *sql.Tx satisfies Session.
var _ Session = (*sql.Tx)(nil)

// SessionFactory creates a new Session for a single request.
type SessionFactory interface {
	Begin(ctx context.Context) (Session, error)
}

// DB wraps a *sql.DB as a SessionFactory.
type DB struct {
	db *sql.DB
}

// NewDB creates a SessionFactory over an initialized database handle.
func NewDB(db *sql.DB) *DB {
	if db == nil {
		panic("db cannot be nil")
	}
	return &DB{db: db}
}

// Begin implements SessionFactory by starting a database transaction.
func (d *DB) Begin(ctx context.Context) (Session, error) {
	return d.db.BeginTx(ctx, nil)
}
