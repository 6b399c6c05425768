package cmd

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/they4kman/minefield/director/constraint"
	"github.com/they4kman/minefield/director/random"
	"github.com/they4kman/minefield/game"
)

var (
	directorName string
	numGames     int
	showBoards   bool
)

var directors = map[string]func(seed int64) game.Director{
	"random": func(seed int64) game.Director {
		return random.New(seed)
	},
	"constraint": func(seed int64) game.Director {
		return constraint.New(seed)
	},
}

var autoCmd = &cobra.Command{
	Use:   "auto",
	Short: "Let the computer play a number of games",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		newDirector, ok := directors[directorName]
		if !ok {
			return fmt.Errorf("invalid director %q", directorName)
		}

		g, err := game.NewGame(gameConfig, nil, log)
		if err != nil {
			return err
		}

		results, err := autoPlay(g, newDirector, numGames, cmd.OutOrStdout())
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d won, %d lost, %d stalled\n",
			directorName, results[game.Won], results[game.Lost], results[game.InProgress])
		return nil
	},
}

// autoPlay plays games on g with a fresh director each, returning how many
// ended in each status. A game the director gives up on counts as InProgress.
func autoPlay(g *game.Game, newDirector func(seed int64) game.Director, games int, out io.Writer) (map[game.GameStatus]int, error) {
	results := make(map[game.GameStatus]int)

	for i := 0; i < games; i++ {
		if i > 0 {
			g.Reset()
		}

		director := newDirector(g.Board().Seed())
		director.Init(g.Board())

	moves:
		for g.Status() == game.InProgress {
			actions := director.Act()
			if len(actions) == 0 {
				break
			}

			for _, action := range actions {
				if _, err := g.Apply(action); err != nil {
					return results, err
				}
				if g.Status() != game.InProgress {
					break moves
				}
			}
		}

		status := g.Status()
		results[status]++

		log.WithFields(logrus.Fields{
			"game":   i + 1,
			"seed":   g.Board().Seed(),
			"status": status,
		}).Info("auto game finished")

		if showBoards {
			fmt.Fprintln(out, renderGame(g))
		}
	}

	return results, nil
}

func init() {
	addBoardFlags(autoCmd.Flags())
	autoCmd.Flags().StringVarP(&directorName, "director", "d", "constraint", "Director to play with: random or constraint")
	autoCmd.Flags().IntVarP(&numGames, "games", "g", 1, "Number of games to play")
	autoCmd.Flags().BoolVar(&showBoards, "show", false, "Print every finished board")

	rootCmd.AddCommand(autoCmd)
}
