package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jask/swipedeck/internal/database"
	"github.com/jask/swipedeck/internal/database/repository"
)

var errNoDB = errors.New("maintenance: db not configured")

// MaintenanceService houses destructive actions surfaced through the CLI.
type MaintenanceService struct {
	DB *sql.DB
}

// DeleteDeck removes a deck and its cards.
func (s *MaintenanceService) DeleteDeck(ctx context.Context, name string) error {
	if s.DB == nil {
		return errNoDB
	}
	decks := repository.NewDeckRepo(s.DB)
	d, err := decks.ByName(ctx, name)
	if err != nil {
		return fmt.Errorf("find deck %q: %w", name, err)
	}
	return decks.Delete(ctx, d.ID)
}

// RestoreDefaults rewrites the shipped destinations deck.
func (s *MaintenanceService) RestoreDefaults(ctx context.Context) error {
	if s.DB == nil {
		return errNoDB
	}
	return database.RestoreDefaults(ctx, s.DB)
}

// Vacuum compacts the database file after large deletions.
func (s *MaintenanceService) Vacuum(ctx context.Context) error {
	if s.DB == nil {
		return errNoDB
	}
	_, err := s.DB.ExecContext(ctx, "VACUUM")
	return err
}
