package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/jask/swipedeck/internal/database/repository"
	"github.com/jask/swipedeck/internal/swipe"
)

var (
	// ErrNoDecks is returned when the store holds no decks at all.
	ErrNoDecks = errors.New("service: no decks")
	// ErrUnknownDeck is returned when no deck is close enough to the query.
	ErrUnknownDeck = errors.New("service: unknown deck")
)

// maxDeckDistance bounds how far a typed deck name may be from a real one.
const maxDeckDistance = 3

// DeckService resolves decks and turns their cards into engine records.
type DeckService struct {
	Decks *repository.DeckRepo
	Cards *repository.CardRepo
}

// Resolve finds a deck by name. An exact case-insensitive match wins;
// otherwise the nearest name by edit distance is returned if it is within
// maxDeckDistance edits.
func (s *DeckService) Resolve(ctx context.Context, name string) (repository.Deck, error) {
	decks, err := s.Decks.List(ctx)
	if err != nil {
		return repository.Deck{}, fmt.Errorf("list decks: %w", err)
	}
	if len(decks) == 0 {
		return repository.Deck{}, ErrNoDecks
	}

	query := strings.ToLower(strings.TrimSpace(name))
	best, bestDist := -1, maxDeckDistance+1
	for i, d := range decks {
		candidate := strings.ToLower(d.Name)
		if candidate == query {
			return d, nil
		}
		dist := levenshtein.ComputeDistance(query, candidate)
		if dist < bestDist {
			best, bestDist = i, dist
		}
	}
	if best < 0 {
		return repository.Deck{}, fmt.Errorf("%w: %q", ErrUnknownDeck, name)
	}
	return decks[best], nil
}

// Lookup finds a deck by exact name, ignoring case, with no fuzzy
// fallback. A miss is ErrUnknownDeck.
func (s *DeckService) Lookup(ctx context.Context, name string) (repository.Deck, error) {
	decks, err := s.Decks.List(ctx)
	if err != nil {
		return repository.Deck{}, fmt.Errorf("list decks: %w", err)
	}
	query := strings.TrimSpace(name)
	for _, d := range decks {
		if strings.EqualFold(d.Name, query) {
			return d, nil
		}
	}
	return repository.Deck{}, fmt.Errorf("%w: %q", ErrUnknownDeck, name)
}

// Load returns a deck's cards as engine records in stacking order.
func (s *DeckService) Load(ctx context.Context, deckID string) ([]swipe.CardRecord, error) {
	cards, err := s.Cards.ListByDeck(ctx, deckID)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	out := make([]swipe.CardRecord, 0, len(cards))
	for _, c := range cards {
		out = append(out, swipe.CardRecord{
			ID: c.ID,
			Payload: swipe.Payload{
				Name:        c.Name,
				Description: c.Description,
				ImageURL:    c.ImageURL,
			},
		})
	}
	return out, nil
}

// List returns every deck with its card count.
func (s *DeckService) List(ctx context.Context) ([]repository.Deck, error) {
	return s.Decks.List(ctx)
}
