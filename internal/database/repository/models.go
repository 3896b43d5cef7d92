package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx, so a repo can run inside
// a caller's transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("repository: not found")

// Deck represents a deck row.
type Deck struct {
	ID        string
	Name      string
	Title     string
	EmptyText string
	CardCount int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Card represents a card row. Position is the stacking order within the
// deck; higher positions render on top.
type Card struct {
	ID          string
	DeckID      string
	Position    int
	Name        string
	Description string
	ImageURL    string
}
