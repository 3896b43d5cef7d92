package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jask/swipedeck/internal/swipe"
)

const playStepTimeout = time.Second

// playCmd swipes through a deck without a terminal UI. Each argument is a
// direction (left/nope, right/like) applied to the top card, or "reset".
func playCmd(flags *rootFlags) *cobra.Command {
	var deckName string

	cmd := &cobra.Command{
		Use:   "play <left|right|reset>...",
		Short: "Swipe through a deck without the TUI",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			e, err := openEnv(ctx, flags.config, flags.debug)
			if err != nil {
				return err
			}
			defer func() { _ = e.close() }()

			deck, err := chooseDeck(ctx, e.decks, deckName, "", e.cfg.Deck.Default)
			if err != nil {
				return err
			}
			cards, err := e.decks.Load(ctx, deck.ID)
			if err != nil {
				return err
			}

			snaps := make(chan swipe.Snapshot, 4*len(args)+4)
			loop := swipe.NewLoop(swipe.NewController(swipe.WithLogger(e.log)),
				swipe.WithObserver(func(s swipe.Snapshot) {
					select {
					case snaps <- s:
					default:
					}
				}))
			errc := make(chan error, 1)
			go func() { errc <- loop.Run(ctx) }()
			defer func() {
				cancel()
				<-errc
			}()

			if err := loop.Initialize(ctx, cards); err != nil {
				return err
			}
			return play(ctx, cmd.OutOrStdout(), loop, snaps, deck.Title, args)
		},
	}
	cmd.Flags().StringVarP(&deckName, "deck", "d", "", "deck to play (defaults to the configured deck)")
	return cmd
}

func play(ctx context.Context, out io.Writer, loop *swipe.Loop, snaps <-chan swipe.Snapshot, title string, moves []string) error {
	fmt.Fprintln(out, title)
	for _, move := range moves {
		snap, err := loop.Snapshot(ctx)
		if err != nil {
			return err
		}

		if strings.EqualFold(move, "reset") {
			if err := loop.Reset(ctx); err != nil {
				return err
			}
			fmt.Fprintln(out, "reset")
			continue
		}
		dir := swipe.ParseDirection(move)
		if dir == swipe.DirectionNone {
			return fmt.Errorf("unknown move %q", move)
		}
		top, ok := snap.Top()
		if !ok {
			fmt.Fprintf(out, "%s: no cards left\n", move)
			continue
		}
		if err := loop.Swipe(top.Card.ID, dir); err != nil {
			return err
		}
		if err := awaitRemaining(ctx, snaps, snap.Remaining-1); err != nil {
			return err
		}
		fmt.Fprintf(out, "%-5s %s", label(dir), top.Card.Payload.Name)
		if d := top.Card.Payload.Description; d != "" {
			fmt.Fprintf(out, " (%s)", d)
		}
		fmt.Fprintln(out)
	}

	snap, err := loop.Snapshot(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%d left\n", snap.Remaining)
	return nil
}

// awaitRemaining blocks until the loop reports a deck of the given size.
func awaitRemaining(ctx context.Context, snaps <-chan swipe.Snapshot, want int) error {
	timeout := time.After(playStepTimeout)
	for {
		select {
		case s := <-snaps:
			if s.Remaining == want {
				return nil
			}
		case <-timeout:
			return fmt.Errorf("card removal did not complete within %s", playStepTimeout)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func label(d swipe.Direction) string {
	if d == swipe.DirectionRight {
		return "LIKE"
	}
	return "NOPE"
}
