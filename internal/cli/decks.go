package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jask/swipedeck/internal/service"
	"github.com/jask/swipedeck/internal/testdata"
)

func decksCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "decks",
		Short: "List decks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := openEnv(cmd.Context(), flags.config, flags.debug)
			if err != nil {
				return err
			}
			defer func() { _ = e.close() }()

			decks, err := e.decks.List(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(decks) == 0 {
				fmt.Fprintln(out, "(no decks)")
				return nil
			}
			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tTITLE\tCARDS")
			for _, d := range decks {
				fmt.Fprintf(w, "%s\t%s\t%d\n", d.Name, d.Title, d.CardCount)
			}
			return w.Flush()
		},
	}
}

func importCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.yaml>",
		Short: "Import a deck from a YAML file, replacing a deck of the same name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			e, err := openEnv(cmd.Context(), flags.config, flags.debug)
			if err != nil {
				return err
			}
			defer func() { _ = e.close() }()

			res, err := e.ingest.ImportYAML(cmd.Context(), f)
			if err != nil {
				return fmt.Errorf("import %s: %w", args[0], err)
			}
			e.log.Info("deck.imported", "deck", res.DeckName, "cards", res.Imported, "replaced", res.Replaced)
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d cards into %q (replaced %d)\n", res.Imported, res.DeckName, res.Replaced)
			return nil
		},
	}
}

func seedCmd(flags *rootFlags) *cobra.Command {
	var sample int
	var seed uint64

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Restore the built-in destinations deck",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := openEnv(cmd.Context(), flags.config, flags.debug)
			if err != nil {
				return err
			}
			defer func() { _ = e.close() }()

			if sample > 0 {
				d, err := testdata.Seed(cmd.Context(), e.db, "sample", sample, seed)
				if err != nil {
					return fmt.Errorf("sample deck: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %d cards to %q\n", d.CardCount, d.Name)
				return nil
			}
			if err := e.maintenance.RestoreDefaults(cmd.Context()); err != nil {
				return fmt.Errorf("restore defaults: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "destinations deck restored")
			return nil
		},
	}
	cmd.Flags().IntVar(&sample, "sample", 0, "write a generated deck named sample with this many cards instead")
	cmd.Flags().Uint64Var(&seed, "sample-seed", 1, "seed for the generated deck")
	return cmd
}

func rmCmd(flags *rootFlags) *cobra.Command {
	var vacuum bool

	cmd := &cobra.Command{
		Use:   "rm <deck>",
		Short: "Delete a deck and its cards",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context(), flags.config, flags.debug)
			if err != nil {
				return err
			}
			defer func() { _ = e.close() }()

			if err := e.maintenance.DeleteDeck(cmd.Context(), args[0]); err != nil {
				return err
			}
			if vacuum {
				if err := e.maintenance.Vacuum(cmd.Context()); err != nil {
					return fmt.Errorf("vacuum: %w", err)
				}
			}
			e.log.Info("deck.deleted", "deck", args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %q\n", args[0])
			return nil
		},
	}
	cmd.Flags().BoolVar(&vacuum, "vacuum", false, "compact the database afterwards")
	return cmd
}

func addCmd(flags *rootFlags) *cobra.Command {
	var image string

	cmd := &cobra.Command{
		Use:   "add <deck> <name> [description]",
		Short: "Put a new card on top of a deck",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context(), flags.config, flags.debug)
			if err != nil {
				return err
			}
			defer func() { _ = e.close() }()

			c := service.CardFile{Name: args[1], Image: image}
			if len(args) == 3 {
				c.Description = args[2]
			}
			card, err := e.ingest.AddCard(cmd.Context(), args[0], c)
			if err != nil {
				return err
			}
			e.log.Info("card.added", "deck", args[0], "card", card.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "added %q to %q\n", card.Name, args[0])
			return nil
		},
	}
	cmd.Flags().StringVar(&image, "image", "", "image URL shown on the card")
	return cmd
}
