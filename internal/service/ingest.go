package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/jask/swipedeck/internal/database"
	"github.com/jask/swipedeck/internal/database/repository"
)

// ErrCardIDTaken is returned when an explicit card id already belongs to a
// card elsewhere in the store.
var ErrCardIDTaken = errors.New("service: card id already in use")

// DeckFile is the YAML layout of an importable deck. Cards are listed
// bottom first; the last card is on top of the stack.
type DeckFile struct {
	Name      string     `yaml:"name" validate:"required,max=64"`
	Title     string     `yaml:"title"`
	EmptyText string     `yaml:"empty_text"`
	Cards     []CardFile `yaml:"cards" validate:"required,min=1,dive"`
}

// CardFile is one card in a DeckFile.
type CardFile struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name" validate:"required"`
	Description string `yaml:"description"`
	Image       string `yaml:"image" validate:"omitempty,url"`
}

// IngestResult summarizes an import.
type IngestResult struct {
	DeckID   string
	DeckName string
	Imported int
	Replaced int
}

// IngestService loads deck files into the card store. Writes run in a
// transaction on DB; Decks and Cards are rebound to it.
type IngestService struct {
	DB    *sql.DB
	Decks *repository.DeckRepo
	Cards *repository.CardRepo

	validate *validator.Validate
}

func (s *IngestService) validation() *validator.Validate {
	if s.validate == nil {
		s.validate = validator.New()
	}
	return s.validate
}

// ParseDeckFile decodes and validates a YAML deck.
func (s *IngestService) ParseDeckFile(r io.Reader) (DeckFile, error) {
	var df DeckFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&df); err != nil {
		return DeckFile{}, fmt.Errorf("decode deck file: %w", err)
	}
	df.Name = strings.TrimSpace(df.Name)
	if err := s.validation().Struct(df); err != nil {
		return DeckFile{}, fmt.Errorf("invalid deck file: %w", err)
	}
	seen := make(map[string]struct{}, len(df.Cards))
	for i, c := range df.Cards {
		if c.ID == "" {
			continue
		}
		if _, dup := seen[c.ID]; dup {
			return DeckFile{}, fmt.Errorf("invalid deck file: card %d reuses id %q", i, c.ID)
		}
		seen[c.ID] = struct{}{}
	}
	return df, nil
}

// ImportYAML replaces the named deck with the cards in r. Cards without an
// explicit id get one derived from the deck and card name, so re-importing
// the same file yields the same ids.
func (s *IngestService) ImportYAML(ctx context.Context, r io.Reader) (IngestResult, error) {
	df, err := s.ParseDeckFile(r)
	if err != nil {
		return IngestResult{}, err
	}

	deck := repository.Deck{
		ID:        database.DeckID(df.Name),
		Name:      df.Name,
		Title:     df.Title,
		EmptyText: df.EmptyText,
	}
	if deck.Title == "" {
		deck.Title = df.Name
	}
	if deck.EmptyText == "" {
		deck.EmptyText = "No more cards!"
	}

	var replaced int
	if existing, err := s.Decks.ByName(ctx, df.Name); err == nil {
		replaced = existing.CardCount
	}

	cards := make([]repository.Card, 0, len(df.Cards))
	for i, c := range df.Cards {
		id := c.ID
		if id == "" {
			id = uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("card:%s:%d:%s", df.Name, i, c.Name))).String()
		}
		cards = append(cards, repository.Card{
			ID:          id,
			DeckID:      deck.ID,
			Name:        strings.TrimSpace(c.Name),
			Description: strings.TrimSpace(c.Description),
			ImageURL:    strings.TrimSpace(c.Image),
		})
	}

	err = database.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		decks, cardRepo := s.Decks.WithTx(tx), s.Cards.WithTx(tx)
		for _, c := range df.Cards {
			if c.ID == "" {
				continue
			}
			if err := checkCardID(ctx, cardRepo, c.ID, deck.ID); err != nil {
				return err
			}
		}
		if err := decks.Upsert(ctx, deck); err != nil {
			return fmt.Errorf("upsert deck: %w", err)
		}
		if err := cardRepo.Replace(ctx, deck.ID, cards); err != nil {
			return fmt.Errorf("store cards: %w", err)
		}
		return nil
	})
	if err != nil {
		return IngestResult{}, err
	}
	return IngestResult{DeckID: deck.ID, DeckName: deck.Name, Imported: len(cards), Replaced: replaced}, nil
}

// AddCard puts one card on top of an existing deck.
func (s *IngestService) AddCard(ctx context.Context, deckName string, c CardFile) (repository.Card, error) {
	if err := s.validation().Struct(c); err != nil {
		return repository.Card{}, fmt.Errorf("invalid card: %w", err)
	}
	card := repository.Card{
		ID:          c.ID,
		Name:        strings.TrimSpace(c.Name),
		Description: strings.TrimSpace(c.Description),
		ImageURL:    strings.TrimSpace(c.Image),
	}
	if card.ID == "" {
		card.ID = uuid.NewString()
	}

	err := database.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		cards := s.Cards.WithTx(tx)
		deck, err := s.Decks.WithTx(tx).ByName(ctx, deckName)
		if err != nil {
			return fmt.Errorf("find deck %q: %w", deckName, err)
		}
		if err := checkCardID(ctx, cards, card.ID, ""); err != nil {
			return err
		}
		card.DeckID = deck.ID
		if card.Position, err = cards.NextPosition(ctx, deck.ID); err != nil {
			return fmt.Errorf("next position: %w", err)
		}
		if err := cards.Insert(ctx, card); err != nil {
			return fmt.Errorf("store card: %w", err)
		}
		return nil
	})
	if err != nil {
		return repository.Card{}, err
	}
	return card, nil
}

// checkCardID fails with ErrCardIDTaken when id is held by a deck other
// than owner. An empty owner accepts no existing holder at all.
func checkCardID(ctx context.Context, cards *repository.CardRepo, id, owner string) error {
	holder, err := cards.DeckOf(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("look up card %q: %w", id, err)
	}
	if owner != "" && holder == owner {
		return nil
	}
	return fmt.Errorf("%w: %q", ErrCardIDTaken, id)
}
