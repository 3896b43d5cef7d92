package repository

import (
	"context"
	"database/sql"
	"errors"
)

// DeckRepo handles decks.
type DeckRepo struct {
	db DBTX
}

func NewDeckRepo(db DBTX) *DeckRepo { return &DeckRepo{db: db} }

// WithTx returns a copy of the repo bound to tx.
func (r *DeckRepo) WithTx(tx *sql.Tx) *DeckRepo { return &DeckRepo{db: tx} }

func (r *DeckRepo) Upsert(ctx context.Context, d Deck) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO decks(id, name, title, empty_text) VALUES (?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 name=excluded.name,
	 title=excluded.title,
	 empty_text=excluded.empty_text,
	 updated_at=CURRENT_TIMESTAMP;
	`, d.ID, d.Name, d.Title, d.EmptyText)
	return err
}

// ByName returns the deck with the given name or ErrNotFound.
func (r *DeckRepo) ByName(ctx context.Context, name string) (*Deck, error) {
	row := r.db.QueryRowContext(ctx, `
	SELECT d.id, d.name, d.title, d.empty_text, d.created_at, d.updated_at,
	 (SELECT COUNT(*) FROM cards c WHERE c.deck_id = d.id)
	FROM decks d WHERE d.name = ?`, name)
	var d Deck
	if err := row.Scan(&d.ID, &d.Name, &d.Title, &d.EmptyText, &d.CreatedAt, &d.UpdatedAt, &d.CardCount); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

// List returns every deck with its card count, ordered by name.
func (r *DeckRepo) List(ctx context.Context) ([]Deck, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT d.id, d.name, d.title, d.empty_text, d.created_at, d.updated_at, COUNT(c.id)
	FROM decks d LEFT JOIN cards c ON c.deck_id = d.id
	GROUP BY d.id
	ORDER BY d.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Deck
	for rows.Next() {
		var d Deck
		if err := rows.Scan(&d.ID, &d.Name, &d.Title, &d.EmptyText, &d.CreatedAt, &d.UpdatedAt, &d.CardCount); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// Delete removes a deck and, through the foreign key, its cards.
func (r *DeckRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM decks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
