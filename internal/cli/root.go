package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jask/swipedeck/internal/database/repository"
	"github.com/jask/swipedeck/internal/prefs"
	"github.com/jask/swipedeck/internal/service"
	"github.com/jask/swipedeck/internal/tui"
)

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

type rootFlags struct {
	config string
	debug  bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	var deckName string

	cmd := &cobra.Command{
		Use:          "swipedeck",
		Short:        "Swipe through a deck of cards in the terminal",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			e, err := openEnv(ctx, flags.config, flags.debug)
			if err != nil {
				return err
			}
			defer func() { _ = e.close() }()

			store, err := prefs.DefaultStore()
			if err != nil {
				store = prefs.Store{Dir: filepath.Dir(e.cfg.Database.Path)}
			}
			last, err := store.Load()
			if err != nil {
				e.log.Warn("prefs.load", "err", err)
			}

			deck, err := chooseDeck(ctx, e.decks, deckName, last.LastDeck, e.cfg.Deck.Default)
			if err != nil {
				return err
			}
			e.log.Info("deck.selected", "deck", deck.Name, "cards", deck.CardCount)

			app := tui.New(ctx, e.cfg, tui.Services{Decks: e.decks, Prefs: &store}, deck, e.log)
			p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
			if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
				return fmt.Errorf("run tui: %w", err)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&flags.config, "config", "", "config file (default $HOME/.config/swipedeck/config.toml)")
	cmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "enable verbose logging")
	cmd.Flags().StringVarP(&deckName, "deck", "d", "", "deck to open (defaults to the last one used)")

	cmd.AddCommand(decksCmd(flags), importCmd(flags), seedCmd(flags), rmCmd(flags), addCmd(flags), playCmd(flags))
	return cmd
}

// chooseDeck picks the deck to open: the named one, else the last one
// used, else the configured default. Only a typed name is matched fuzzily;
// a remembered deck that no longer exists falls through to the default.
func chooseDeck(ctx context.Context, decks *service.DeckService, named, last, def string) (repository.Deck, error) {
	if named != "" {
		return decks.Resolve(ctx, named)
	}
	if last != "" {
		d, err := decks.Lookup(ctx, last)
		if err == nil {
			return d, nil
		}
		if !errors.Is(err, service.ErrUnknownDeck) {
			return repository.Deck{}, err
		}
	}
	return decks.Resolve(ctx, def)
}
