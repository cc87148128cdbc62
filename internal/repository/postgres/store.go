package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"planpact/internal/domain"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store is the Postgres domain.Store.
type Store struct {
	DB *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{DB: db}
}

func (s *Store) Users() domain.UserRepository   { return NewUserRepository(s.DB) }
func (s *Store) Pacts() domain.PactRepository   { return NewPactRepository(s.DB) }
func (s *Store) Guests() domain.GuestRepository { return NewGuestRepository(s.DB) }
func (s *Store) RSVPs() domain.RSVPRepository   { return NewRSVPRepository(s.DB) }

// WithinTx runs fn inside a single sql.Tx. fn's error or a failed commit rolls everything back.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx domain.Repositories) error) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(ctx, txRepositories{tx: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

type txRepositories struct {
	tx *sql.Tx
}

func (t txRepositories) Users() domain.UserRepository   { return NewUserRepository(t.tx) }
func (t txRepositories) Pacts() domain.PactRepository   { return NewPactRepository(t.tx) }
func (t txRepositories) Guests() domain.GuestRepository { return NewGuestRepository(t.tx) }
func (t txRepositories) RSVPs() domain.RSVPRepository   { return NewRSVPRepository(t.tx) }

//go:embed schema.sql
var schema string

// Migrate creates the tables when they do not exist yet.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func isUniqueViolation(err error) bool {
	var perr *pq.Error
	return errors.As(err, &perr) && perr.Code == "23505"
}

// isInvalidID reports a malformed uuid literal, which callers treat as a missing row.
func isInvalidID(err error) bool {
	var perr *pq.Error
	return errors.As(err, &perr) && perr.Code == "22P02"
}

func notFound(err, sentinel error) error {
	if errors.Is(err, sql.ErrNoRows) || isInvalidID(err) {
		return sentinel
	}
	return err
}
