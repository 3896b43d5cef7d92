package testdata

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/swipedeck/internal/database"
	"github.com/jask/swipedeck/internal/database/repository"
	"github.com/jask/swipedeck/internal/swipe"
)

func setup(t *testing.T) (context.Context, *sql.DB, *repository.CardRepo) {
	t.Helper()
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, database.RunMigrations(dbPath))
	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return ctx, db, repository.NewCardRepo(db)
}

func TestSeedIsDeterministic(t *testing.T) {
	t.Parallel()

	ctx, db, cards := setup(t)
	d, err := Seed(ctx, db, "sample", 25, 42)
	require.NoError(t, err)
	require.Equal(t, 25, d.CardCount)

	first, err := cards.ListByDeck(ctx, d.ID)
	require.NoError(t, err)
	require.Len(t, first, 25)

	_, err = Seed(ctx, db, "sample", 25, 42)
	require.NoError(t, err)
	second, err := cards.ListByDeck(ctx, d.ID)
	require.NoError(t, err)
	require.Equal(t, first, second)

	_, err = Seed(ctx, db, "sample", 0, 42)
	require.Error(t, err)
}

func TestSampleDeckPlaysThrough(t *testing.T) {
	t.Parallel()

	ctx, db, cards := setup(t)
	d, err := Seed(ctx, db, "sample", 40, 3)
	require.NoError(t, err)
	stored, err := cards.ListByDeck(ctx, d.ID)
	require.NoError(t, err)

	records := make([]swipe.CardRecord, len(stored))
	for i, c := range stored {
		records[i] = swipe.CardRecord{ID: c.ID, Payload: swipe.Payload{Name: c.Name, Description: c.Description}}
	}
	ctrl := swipe.NewController()
	require.NoError(t, ctrl.Initialize(records))

	for i := 0; !ctrl.Empty(); i++ {
		top, ok := ctrl.Snapshot().Top()
		require.True(t, ok)
		dir := swipe.DirectionLeft
		if i%2 == 0 {
			dir = swipe.DirectionRight
		}
		r, ok := ctrl.Swipe(top.Card.ID, dir)
		require.True(t, ok)
		_, ok = ctrl.Remove(r)
		require.True(t, ok)
		require.LessOrEqual(t, len(ctrl.VisibleWindow()), swipe.WindowSize)
	}
	require.Len(t, ctrl.Reset(), 0)
	require.Equal(t, 40, ctrl.Len())
}
