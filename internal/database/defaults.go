package database

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/jask/swipedeck/internal/database/repository"
)

// DefaultDeck is the name of the deck seeded on first run.
const DefaultDeck = "destinations"

var defaultDestinations = []repository.Card{
	{Name: "Tokyo", Description: "Japan", ImageURL: "https://images.unsplash.com/photo-1540959733332-eab4deabeeaf?q=80&w=1000"},
	{Name: "Paris", Description: "France", ImageURL: "https://images.unsplash.com/photo-1502602898657-3e91760cbb34?q=80&w=1000"},
	{Name: "New York", Description: "USA", ImageURL: "https://images.unsplash.com/photo-1534430480872-3498386e7856?q=80&w=1000"},
	{Name: "Rome", Description: "Italy", ImageURL: "https://images.unsplash.com/photo-1552832230-c0197dd311b5?q=80&w=1000"},
}

// DeckID derives the stable id of a named deck.
func DeckID(name string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("deck:"+name)).String()
}

// SeedDefaults writes the destinations deck into a store that holds no
// decks at all. Once any deck exists it does nothing, so a deleted
// destinations deck stays deleted. Safe to run on every startup.
func SeedDefaults(ctx context.Context, db *sql.DB) error {
	existing, err := repository.NewDeckRepo(db).List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	return RestoreDefaults(ctx, db)
}

// RestoreDefaults rewrites the destinations deck to its shipped contents.
func RestoreDefaults(ctx context.Context, db *sql.DB) error {
	deck := repository.Deck{
		ID:        DeckID(DefaultDeck),
		Name:      DefaultDeck,
		Title:     "Swipe Destinations",
		EmptyText: "No more destinations!",
	}
	cards := make([]repository.Card, len(defaultDestinations))
	for i, c := range defaultDestinations {
		c.ID = uuid.NewSHA1(uuid.NameSpaceOID, []byte("card:"+DefaultDeck+":"+c.Name)).String()
		cards[i] = c
	}
	return WithTx(ctx, db, func(tx *sql.Tx) error {
		if err := repository.NewDeckRepo(tx).Upsert(ctx, deck); err != nil {
			return err
		}
		return repository.NewCardRepo(tx).Replace(ctx, deck.ID, cards)
	})
}
