package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/vytor/flashdeck/internal/models"
)

var responseKeys = map[string]models.Response{
	"a": models.ResponseAgain, "again": models.ResponseAgain,
	"h": models.ResponseHard, "hard": models.ResponseHard,
	"g": models.ResponseGood, "good": models.ResponseGood,
	"e": models.ResponseEasy, "easy": models.ResponseEasy,
}

var errQuit = errors.New("quit")

func newStudyCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "study <deck-id>",
		Short: "Run an interactive study session",
		Long: `Run an interactive study session over the due cards of a deck.
Press Enter to reveal the answer, then rate it with a(gain), h(ard), g(ood)
or e(asy). Type q at any prompt to stop.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			in := bufio.NewReader(cmd.InOrStdin())

			view, err := app.Study.StartSession(ctx, args[0])
			if err != nil {
				return err
			}
			if view == nil {
				fmt.Fprintln(out, "Nothing due in this deck. Come back later.")
				return nil
			}
			defer app.Study.EndSession(ctx)

			for view != nil {
				card := view.CurrentCard
				shown := time.Now()
				fmt.Fprintln(out, "\n========================================")
				fmt.Fprintf(out, "[%d/%d done] %s\n", view.CompletedCards, view.TotalCards, card.Front)
				fmt.Fprintln(out, "========================================")

				fmt.Fprint(out, "Press Enter to reveal (q to quit) ")
				line, err := readLine(in)
				if err != nil {
					return quietQuit(out, err)
				}
				if line == "q" {
					return quietQuit(out, errQuit)
				}

				if _, err := app.Study.ToggleAnswer(ctx); err != nil {
					return err
				}
				fmt.Fprintf(out, "Answer: %s\n", card.Back)
				if card.Pronunciation != "" {
					fmt.Fprintf(out, "Pronunciation: %s\n", card.Pronunciation)
				}
				for _, ex := range card.Examples {
					fmt.Fprintf(out, "  e.g. %s\n", ex)
				}

				resp, err := promptResponse(out, in)
				if err != nil {
					return quietQuit(out, err)
				}

				result, err := app.Study.Review(ctx, resp, time.Since(shown).Seconds())
				if err != nil {
					return err
				}
				switch {
				case result.CardRemoved:
					fmt.Fprintln(out, "This card was deleted meanwhile and has been skipped.")
				case result.Completed:
					fmt.Fprintf(out, "Done with this card. Next review in %d days.\n", result.Card.IntervalDays)
				default:
					fmt.Fprintln(out, "You will see this card again soon.")
				}
				if result.SessionEnded {
					fmt.Fprintf(out, "\nSession complete! %d cards reviewed.\n", view.TotalCards)
				}
				view = result.Session
			}
			return nil
		},
	}
}

func promptResponse(out io.Writer, in *bufio.Reader) (models.Response, error) {
	for {
		fmt.Fprint(out, "Rate: [a]gain [h]ard [g]ood [e]asy: ")
		line, err := readLine(in)
		if err != nil {
			return "", err
		}
		if line == "q" {
			return "", errQuit
		}
		if resp, ok := responseKeys[line]; ok {
			return resp, nil
		}
		fmt.Fprintf(out, "Unknown answer %q.\n", line)
	}
}

// readLine returns io.EOF only when the input ended without any text.
func readLine(in *bufio.Reader) (string, error) {
	line, err := in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.ToLower(strings.TrimSpace(line)), nil
}

func quietQuit(out io.Writer, err error) error {
	if errors.Is(err, errQuit) || errors.Is(err, io.EOF) {
		fmt.Fprintln(out, "\nSession stopped.")
		return nil
	}
	return err
}
