package cli

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jask/swipedeck/internal/config"
	"github.com/jask/swipedeck/internal/database"
	"github.com/jask/swipedeck/internal/database/repository"
	"github.com/jask/swipedeck/internal/logger"
	"github.com/jask/swipedeck/internal/service"
)

// env is everything a command needs once config, logging and the database
// are up.
type env struct {
	cfg config.Config
	log *slog.Logger
	db  *sql.DB

	decks       *service.DeckService
	ingest      *service.IngestService
	maintenance *service.MaintenanceService

	closers []func() error
}

func openEnv(ctx context.Context, configPath string, debug bool) (*env, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	e := &env{cfg: cfg}
	log, closeLog, err := logger.Setup(logger.Config{Dir: cfg.Log.Dir, Level: cfg.Log.Level, Debug: debug})
	if err != nil {
		// logging is best effort; the discard logger is still usable
		fmt.Fprintf(os.Stderr, "warn: logging disabled: %v\n", err)
	}
	e.log = log
	e.closers = append(e.closers, closeLog)

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		_ = e.close()
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}
	if err := database.RunMigrations(cfg.Database.Path); err != nil {
		_ = e.close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		_ = e.close()
		return nil, fmt.Errorf("open db: %w", err)
	}
	e.db = db
	e.closers = append(e.closers, db.Close)

	decks, cards := repository.NewDeckRepo(db), repository.NewCardRepo(db)
	if err := database.SeedDefaults(ctx, db); err != nil {
		_ = e.close()
		return nil, fmt.Errorf("seed defaults: %w", err)
	}

	e.decks = &service.DeckService{Decks: decks, Cards: cards}
	e.ingest = &service.IngestService{DB: db, Decks: decks, Cards: cards}
	e.maintenance = &service.MaintenanceService{DB: db}
	e.log.Debug("env.ready", "db", cfg.Database.Path)
	return e, nil
}

// close releases resources in reverse order of acquisition.
func (e *env) close() error {
	var first error
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	e.closers = nil
	return first
}
