package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatsCmd(app *App) *cobra.Command {
	var deckID string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show study statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := app.Stats.Stats(cmd.Context(), deckID)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Statistics")
			fmt.Fprintln(out, "----------")
			fmt.Fprintf(out, "Total cards:     %d\n", stats.TotalCards)
			fmt.Fprintf(out, "Reviewed today:  %d\n", stats.ReviewedToday)
			fmt.Fprintf(out, "Learning:        %d\n", stats.CardsLearning)
			fmt.Fprintf(out, "Mature:          %d\n", stats.CardsMature)
			return nil
		},
	}
	cmd.Flags().StringVar(&deckID, "deck", "", "limit statistics to one deck id")
	return cmd
}
