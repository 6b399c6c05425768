package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/they4kman/minefield/game"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game, reading moves from stdin",
	Long: `Play a game, reading one move per line from stdin. Rows and columns count from 0.

	o ROW COL   open a cell
	f ROW COL   cycle a cell's marker (flag, suspect, clear)
	c ROW COL   open the neighbors of a number whose mines are all flagged
	r           restart with a new board
	q           quit
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := game.NewGame(gameConfig, openLeaderboard(), log)
		if err != nil {
			return err
		}
		return play(g, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

var moveActions = map[string]game.Action{
	"o": game.Click,
	"f": game.RightClick,
	"c": game.MiddleClick,
}

func play(g *game.Game, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, renderGame(g))

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "q":
			return nil
		case "r":
			g.Reset()
		default:
			action, err := parseMove(fields)
			if err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			if _, err := g.Apply(action); err != nil {
				fmt.Fprintln(out, err)
				continue
			}
		}

		fmt.Fprintln(out, renderGame(g))
		if g.Status() != game.InProgress {
			fmt.Fprintln(out, "r to play again, q to quit")
		}
	}

	return scanner.Err()
}

func parseMove(fields []string) (game.CellAction, error) {
	action, ok := moveActions[fields[0]]
	if !ok {
		return game.CellAction{}, errors.Errorf("unknown command %q", fields[0])
	}
	if len(fields) != 3 {
		return game.CellAction{}, errors.Errorf("usage: %s ROW COL", fields[0])
	}

	row, err := strconv.Atoi(fields[1])
	if err != nil {
		return game.CellAction{}, errors.Wrap(err, "row")
	}
	column, err := strconv.Atoi(fields[2])
	if err != nil {
		return game.CellAction{}, errors.Wrap(err, "column")
	}

	return game.CellAction{
		Coord:  game.Coord{Row: row, Column: column},
		Action: action,
	}, nil
}

func init() {
	addBoardFlags(playCmd.Flags())
	playCmd.Flags().StringVarP(&flagConfig.PlayerName, "name", "n", flagConfig.PlayerName, "Name to record on the leaderboard")

	rootCmd.AddCommand(playCmd)
}
