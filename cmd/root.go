package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/they4kman/minefield/game"
	"github.com/they4kman/minefield/leaderboard"
)

var (
	log = logrus.New()

	// flagConfig receives the board flags; gameConfig is what commands use,
	// after the --config file and the flags have been merged
	flagConfig = game.NewGameConfig()
	gameConfig game.GameConfig

	configPath string
	logLevel   string
	scoresDir  string
)

var rootCmd = &cobra.Command{
	Use:   "minefield",
	Short: "Play Minesweeper in the terminal, or let the computer play",
	Long: `minefield is a Minesweeper game with a per-difficulty leaderboard.

Play a beginner game
	minefield play --difficulty beginner

Watch the computer play 100 expert games
	minefield auto --director constraint --games 100

Show the leaderboard
	minefield scores
`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		log.SetLevel(level)
		log.SetOutput(cmd.ErrOrStderr())

		gameConfig, err = resolveConfig(cmd.Flags())
		return err
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// resolveConfig layers explicitly set flags over the --config file (or the defaults)
func resolveConfig(flags *pflag.FlagSet) (game.GameConfig, error) {
	config := game.NewGameConfig()
	if configPath != "" {
		var err error
		if config, err = game.LoadGameConfig(configPath); err != nil {
			return config, err
		}
	}

	sizeChanged := false
	if flags.Changed("rows") {
		config.Rows = flagConfig.Rows
		sizeChanged = true
	}
	if flags.Changed("columns") {
		config.Columns = flagConfig.Columns
		sizeChanged = true
	}
	if flags.Changed("mines") {
		config.NumMines = flagConfig.NumMines
		sizeChanged = true
	}

	if flags.Changed("difficulty") {
		config.Difficulty = flagConfig.Difficulty
	} else if sizeChanged {
		config.Difficulty = game.Custom
	}

	if flags.Changed("seed") {
		config.Seed = flagConfig.Seed
	}
	if flags.Changed("name") {
		config.PlayerName = flagConfig.PlayerName
	}
	if flags.Changed("snapshots-dir") {
		config.SavedSnapshotsDir = flagConfig.SavedSnapshotsDir
	}

	if flags.Changed("snapshot") {
		in, err := os.ReadFile(snapshotPath)
		if err != nil {
			return config, err
		}
		if config.Snapshot, err = game.LoadSnapshot(string(in)); err != nil {
			return config, err
		}
		config.Difficulty = game.Custom
	}
	if flags.Changed("resume") {
		config.LoadSnapshotFresh = !resumeSnapshot
	}

	return config, nil
}

func openLeaderboard() *leaderboard.Store {
	return leaderboard.New(scoresDir, log)
}

var (
	snapshotPath   string
	resumeSnapshot bool
)

type difficultyValue game.Difficulty

func newDifficultyValue(val game.Difficulty, p *game.Difficulty) *difficultyValue {
	*p = val
	return (*difficultyValue)(p)
}

func (difficultyVal *difficultyValue) String() string {
	return game.Difficulty(*difficultyVal).String()
}

func (difficultyVal *difficultyValue) Set(value string) error {
	difficulty, err := game.ParseDifficulty(value)
	if err != nil {
		return err
	}
	*difficultyVal = difficultyValue(difficulty)
	return nil
}

func (difficultyVal *difficultyValue) Type() string {
	return "difficulty"
}

func defaultScoresDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".minefield", "scores")
	}
	return "scores"
}

// addBoardFlags registers the flags controlling which board a command plays on
func addBoardFlags(flags *pflag.FlagSet) {
	flags.Var(newDifficultyValue(game.Expert, &flagConfig.Difficulty), "difficulty", `Board preset: beginner (9x9, 10 mines), intermediate (16x16, 40 mines)
or expert (16x30, 99 mines). Setting rows, columns or mines selects a custom board.`)
	flags.IntVarP(&flagConfig.Rows, "rows", "r", flagConfig.Rows, "Rows of a custom board")
	flags.IntVarP(&flagConfig.Columns, "columns", "c", flagConfig.Columns, "Columns of a custom board")
	flags.IntVarP(&flagConfig.NumMines, "mines", "m", flagConfig.NumMines, "Number of mines on a custom board")
	flags.Int64Var(&flagConfig.Seed, "seed", 0, "Seed for the mine layout (0 = random)")
	flags.StringVar(&flagConfig.SavedSnapshotsDir, "snapshots-dir", "", "Directory to save a snapshot of every finished board in")
	flags.StringVar(&snapshotPath, "snapshot", "", "Snapshot file to load the board from")
	flags.BoolVar(&resumeSnapshot, "resume", false, "Keep the cell statuses of the loaded snapshot")
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML game config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", logrus.WarnLevel.String(), "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&scoresDir, "scores-dir", defaultScoresDir(), "Directory holding the leaderboard files")
}
