package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/they4kman/minefield/game"
	"github.com/they4kman/minefield/leaderboard"
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the leaderboard",
	Long: `Show the ten best times of each difficulty, or of only the one
given with --difficulty.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tiers := game.Difficulties
		if cmd.Flags().Changed("difficulty") {
			tiers = []game.Difficulty{gameConfig.Difficulty}
		}
		return printScores(openLeaderboard(), tiers, cmd.OutOrStdout())
	},
}

func printScores(store *leaderboard.Store, tiers []game.Difficulty, out io.Writer) error {
	for _, tier := range tiers {
		entries, err := store.TopScores(tier)
		if err != nil {
			return err
		}

		fmt.Fprintln(out, headerStyle.Render(tier.String()))
		if len(entries) == 0 {
			fmt.Fprintln(out, "  no scores yet")
		}
		for _, entry := range entries {
			fmt.Fprintf(out, "%3d. %-20s %5ds\n", entry.Rank, entry.Name, entry.Score)
		}
	}
	return nil
}

func init() {
	scoresCmd.Flags().Var(newDifficultyValue(game.Expert, &flagConfig.Difficulty), "difficulty", "Only show this difficulty: beginner, intermediate or expert")

	rootCmd.AddCommand(scoresCmd)
}
