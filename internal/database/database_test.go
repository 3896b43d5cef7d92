package database

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/swipedeck/internal/database/repository"
)

func openTestDB(t *testing.T) (string, *sql.DB, context.Context) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, RunMigrations(dbPath))
	db, err := Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, SeedDefaults(ctx, db))

	return dbPath, db, ctx
}

func TestSeedDefaults(t *testing.T) {
	t.Parallel()

	_, db, ctx := openTestDB(t)
	decks, cards := repository.NewDeckRepo(db), repository.NewCardRepo(db)

	deck, err := decks.ByName(ctx, DefaultDeck)
	require.NoError(t, err)
	require.Equal(t, DeckID(DefaultDeck), deck.ID)
	require.Equal(t, "Swipe Destinations", deck.Title)
	require.Equal(t, 4, deck.CardCount)

	list, err := cards.ListByDeck(ctx, deck.ID)
	require.NoError(t, err)
	names := make([]string, 0, len(list))
	for _, c := range list {
		names = append(names, c.Name)
	}
	require.Equal(t, []string{"Tokyo", "Paris", "New York", "Rome"}, names)
}

func TestSeedDefaultsIsIdempotent(t *testing.T) {
	t.Parallel()

	dbPath, first, ctx := openTestDB(t)
	decks := repository.NewDeckRepo(first)

	// migrations a second time are a no-op
	require.NoError(t, RunMigrations(dbPath))

	db, err := Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, SeedDefaults(ctx, db))
	require.NoError(t, SeedDefaults(ctx, db))

	all, err := decks.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, 4, all[0].CardCount)
}

func TestReplaceAndDelete(t *testing.T) {
	t.Parallel()

	_, db, ctx := openTestDB(t)
	decks, cards := repository.NewDeckRepo(db), repository.NewCardRepo(db)

	d := repository.Deck{ID: DeckID("films"), Name: "films", Title: "Films"}
	require.NoError(t, decks.Upsert(ctx, d))
	require.NoError(t, cards.Replace(ctx, d.ID, []repository.Card{
		{ID: "f1", Name: "Alien"},
		{ID: "f2", Name: "Heat"},
	}))
	require.NoError(t, cards.Replace(ctx, d.ID, []repository.Card{
		{ID: "f3", Name: "Ran"},
	}))

	list, err := cards.ListByDeck(ctx, d.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "Ran", list[0].Name)
	require.Equal(t, 0, list[0].Position)

	require.NoError(t, decks.Delete(ctx, d.ID))
	_, err = decks.ByName(ctx, "films")
	require.ErrorIs(t, err, repository.ErrNotFound)
	require.ErrorIs(t, decks.Delete(ctx, d.ID), repository.ErrNotFound)

	list, err = cards.ListByDeck(ctx, d.ID)
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestSeedDefaultsSkipsStoreWithDecks(t *testing.T) {
	t.Parallel()

	_, db, ctx := openTestDB(t)
	decks := repository.NewDeckRepo(db)

	require.NoError(t, decks.Upsert(ctx, repository.Deck{ID: DeckID("films"), Name: "films"}))
	require.NoError(t, decks.Delete(ctx, DeckID(DefaultDeck)))

	// another deck exists, so the deleted default stays deleted
	require.NoError(t, SeedDefaults(ctx, db))
	_, err := decks.ByName(ctx, DefaultDeck)
	require.ErrorIs(t, err, repository.ErrNotFound)

	// an empty store is seeded again
	require.NoError(t, decks.Delete(ctx, DeckID("films")))
	require.NoError(t, SeedDefaults(ctx, db))
	deck, err := decks.ByName(ctx, DefaultDeck)
	require.NoError(t, err)
	require.Equal(t, 4, deck.CardCount)
}

func TestWithTxRollsBackDeckAndCards(t *testing.T) {
	t.Parallel()

	_, db, ctx := openTestDB(t)
	decks, cards := repository.NewDeckRepo(db), repository.NewCardRepo(db)

	d := repository.Deck{ID: DeckID("films"), Name: "films"}
	err := WithTx(ctx, db, func(tx *sql.Tx) error {
		if err := decks.WithTx(tx).Upsert(ctx, d); err != nil {
			return err
		}
		return cards.WithTx(tx).Replace(ctx, d.ID, []repository.Card{
			{ID: "f1", Name: "Alien"},
			{ID: "f1", Name: "Heat"},
		})
	})
	require.ErrorContains(t, err, `insert card "Heat"`)

	_, err = decks.ByName(ctx, "films")
	require.ErrorIs(t, err, repository.ErrNotFound)
	_, err = cards.DeckOf(ctx, "f1")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestNextPositionSkipsGaps(t *testing.T) {
	t.Parallel()

	_, db, ctx := openTestDB(t)
	cards := repository.NewCardRepo(db)
	id := DeckID(DefaultDeck)

	next, err := cards.NextPosition(ctx, id)
	require.NoError(t, err)
	require.Equal(t, 4, next)

	_, err = db.ExecContext(ctx, `DELETE FROM cards WHERE deck_id = ? AND position = 1`, id)
	require.NoError(t, err)
	next, err = cards.NextPosition(ctx, id)
	require.NoError(t, err)
	require.Equal(t, 4, next)

	next, err = cards.NextPosition(ctx, DeckID("empty"))
	require.NoError(t, err)
	require.Equal(t, 0, next)
}
