package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// CardRepo handles cards.
type CardRepo struct {
	db DBTX
}

func NewCardRepo(db DBTX) *CardRepo { return &CardRepo{db: db} }

// WithTx returns a copy of the repo bound to tx.
func (r *CardRepo) WithTx(tx *sql.Tx) *CardRepo { return &CardRepo{db: tx} }

// Insert adds one card. Ids are unique across decks.
func (r *CardRepo) Insert(ctx context.Context, c Card) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO cards(id, deck_id, position, name, description, image_url)
	VALUES (?, ?, ?, ?, ?, ?)`, c.ID, c.DeckID, c.Position, c.Name, c.Description, c.ImageURL)
	return err
}

// DeckOf returns the id of the deck holding card id, or ErrNotFound.
func (r *CardRepo) DeckOf(ctx context.Context, id string) (string, error) {
	var deckID string
	err := r.db.QueryRowContext(ctx, `SELECT deck_id FROM cards WHERE id = ?`, id).Scan(&deckID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	return deckID, err
}

// NextPosition returns the position just above the deck's current top card.
func (r *CardRepo) NextPosition(ctx context.Context, deckID string) (int, error) {
	var next int
	err := r.db.QueryRowContext(ctx, `
	SELECT COALESCE(MAX(position) + 1, 0) FROM cards WHERE deck_id = ?`, deckID).Scan(&next)
	return next, err
}

// ListByDeck returns a deck's cards in stacking order.
func (r *CardRepo) ListByDeck(ctx context.Context, deckID string) ([]Card, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, deck_id, position, name, description, image_url
	FROM cards WHERE deck_id = ? ORDER BY position`, deckID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Card
	for rows.Next() {
		var c Card
		if err := rows.Scan(&c.ID, &c.DeckID, &c.Position, &c.Name, &c.Description, &c.ImageURL); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Replace swaps every card of a deck for cards. Card positions are
// rewritten from slice order. Run it on a repo bound with WithTx so a
// failed insert leaves the old cards in place.
func (r *CardRepo) Replace(ctx context.Context, deckID string, cards []Card) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM cards WHERE deck_id = ?`, deckID); err != nil {
		return fmt.Errorf("clear deck %s: %w", deckID, err)
	}
	for i, c := range cards {
		if _, err := r.db.ExecContext(ctx, `
		INSERT INTO cards(id, deck_id, position, name, description, image_url)
		VALUES (?, ?, ?, ?, ?, ?)`, c.ID, deckID, i, c.Name, c.Description, c.ImageURL); err != nil {
			return fmt.Errorf("insert card %q: %w", c.Name, err)
		}
	}
	return nil
}
