package cli

import (
	"github.com/spf13/cobra"
	"github.com/vytor/flashdeck/internal/services"
)

// App bundles the services the commands drive.
type App struct {
	Decks services.DeckService
	Study services.StudyService
	Stats services.StatsService
	Seed  services.SeedService
}

// NewRootCmd builds the flashdeck command tree over app.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "flashdeck",
		Short: "Study flashcard decks with spaced repetition",
		Long: `flashdeck keeps vocabulary decks in a local SQLite database and
schedules reviews with an SM-2 style algorithm.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newDecksCmd(app),
		newDueCmd(app),
		newStudyCmd(app),
		newStatsCmd(app),
		newSeedCmd(app),
	)
	return root
}
