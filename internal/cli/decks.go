package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newDecksCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "decks",
		Short: "List decks and how many cards each holds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			decks, err := app.Decks.ListDecks(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(decks) == 0 {
				fmt.Fprintln(out, "No decks yet. Run `flashdeck seed` to install the default decks.")
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tCARDS")
			for _, d := range decks {
				fmt.Fprintf(tw, "%s\t%s\t%d\n", d.ID, d.Name, d.CardCount)
			}
			return tw.Flush()
		},
	}
}

func newDueCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "due <deck-id>",
		Short: "Show the cards of a deck that are due now",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cards, err := app.Study.DueCards(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(cards) == 0 {
				fmt.Fprintln(out, "Nothing due. Come back later.")
				return nil
			}
			fmt.Fprintf(out, "%d cards due:\n", len(cards))
			for _, c := range cards {
				fmt.Fprintf(out, "- %s (%s, reviewed %d times)\n", c.Front, c.Difficulty, c.ReviewCount)
			}
			return nil
		},
	}
}

func newSeedCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Install the built-in decks that are missing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := app.Seed.SeedDefaults(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d decks.\n", n)
			return nil
		},
	}
}
