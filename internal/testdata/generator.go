package testdata

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/jask/swipedeck/internal/database"
	"github.com/jask/swipedeck/internal/database/repository"
)

var places = []struct{ city, country string }{
	{"Lisbon", "Portugal"}, {"Kyoto", "Japan"}, {"Oaxaca", "Mexico"},
	{"Hanoi", "Vietnam"}, {"Tbilisi", "Georgia"}, {"Reykjavik", "Iceland"},
	{"Cape Town", "South Africa"}, {"Valparaiso", "Chile"}, {"Marrakesh", "Morocco"},
	{"Ljubljana", "Slovenia"}, {"Hobart", "Australia"}, {"Quebec City", "Canada"},
	{"Cusco", "Peru"}, {"Bergen", "Norway"}, {"Penang", "Malaysia"},
	{"Zanzibar", "Tanzania"}, {"Porto", "Portugal"}, {"Tallinn", "Estonia"},
}

var moods = []string{"Old Town", "Harbour", "Night Market", "Hills", "Riverside", "Rooftops"}

// Seed writes a deck called name with n generated cards. The same seed
// always yields the same deck.
func Seed(ctx context.Context, db *sql.DB, name string, n int, seed uint64) (repository.Deck, error) {
	if n <= 0 {
		return repository.Deck{}, fmt.Errorf("sample deck needs at least one card, got %d", n)
	}
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	deck := repository.Deck{
		ID:        database.DeckID(name),
		Name:      name,
		Title:     "Sample Destinations",
		EmptyText: "That was every sample!",
	}
	cards := make([]repository.Card, n)
	for i := range cards {
		p := places[r.IntN(len(places))]
		title := fmt.Sprintf("%s %s", p.city, moods[r.IntN(len(moods))])
		cards[i] = repository.Card{
			ID:          uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("card:%s:%d", name, i))).String(),
			DeckID:      deck.ID,
			Name:        title,
			Description: p.country,
		}
	}
	err := database.WithTx(ctx, db, func(tx *sql.Tx) error {
		if err := repository.NewDeckRepo(tx).Upsert(ctx, deck); err != nil {
			return err
		}
		return repository.NewCardRepo(tx).Replace(ctx, deck.ID, cards)
	})
	if err != nil {
		return repository.Deck{}, err
	}
	deck.CardCount = n
	return deck, nil
}
