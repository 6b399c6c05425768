package game

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

type GameConfig struct {
	Difficulty Difficulty `yaml:"difficulty"`

	// Board dimensions, used only with the Custom difficulty
	Rows     int `yaml:"rows"`
	Columns  int `yaml:"columns"`
	NumMines int `yaml:"mines"`

	// Seed for the mine layout; 0 picks one from the clock
	Seed int64 `yaml:"seed"`

	// Snapshot to load board configuration from
	Snapshot *BoardSnapshot `yaml:"snapshot,omitempty"`
	// Whether to set all cells as closed when loading the Snapshot
	LoadSnapshotFresh bool `yaml:"load_snapshot_fresh"`

	// Path to directory where final snapshots of boards should be saved
	SavedSnapshotsDir string `yaml:"saved_snapshots_dir"`

	// Name recorded on the leaderboard for won games
	PlayerName string `yaml:"player_name"`
}

func NewGameConfig() GameConfig {
	return GameConfig{
		Difficulty:        Expert,
		Rows:              16,
		Columns:           30,
		NumMines:          99,
		LoadSnapshotFresh: true,
		PlayerName:        "anonymous",
	}
}

// LoadGameConfig reads a yaml config file over the defaults
func LoadGameConfig(path string) (GameConfig, error) {
	config := NewGameConfig()

	in, err := os.ReadFile(path)
	if err != nil {
		return config, errors.Wrap(err, "reading config")
	}
	if err := yaml.UnmarshalStrict(in, &config); err != nil {
		return config, errors.Wrapf(err, "parsing config %s", path)
	}
	return config, nil
}

// Dimensions resolves the board size and mine count, from the difficulty
// preset when there is one
func (config GameConfig) Dimensions() (rows, columns, mines int) {
	if rows, columns, mines, ok := config.Difficulty.Preset(); ok {
		return rows, columns, mines
	}
	return config.Rows, config.Columns, config.NumMines
}

func (config GameConfig) createBoard() (*Board, error) {
	if config.Snapshot != nil {
		return config.Snapshot.CreateBoard(config.LoadSnapshotFresh)
	}

	rows, columns, mines := config.Dimensions()
	if config.Seed == 0 {
		return NewBoard(rows, columns, mines)
	}
	return NewSeededBoard(rows, columns, mines, config.Seed)
}

// ScoreRecorder keeps the scores of won games
type ScoreRecorder interface {
	RecordScore(difficulty Difficulty, name string, score int) error
}

// Game drives a Board for a player: it times the game, records the score of
// a win and saves a snapshot of every finished board
type Game struct {
	config GameConfig
	board  *Board

	scores ScoreRecorder
	log    logrus.FieldLogger
	now    func() time.Time

	started, ended time.Time
}

// NewGame creates a game from config. scores may be nil.
func NewGame(config GameConfig, scores ScoreRecorder, log logrus.FieldLogger) (*Game, error) {
	board, err := config.createBoard()
	if err != nil {
		return nil, err
	}

	game := &Game{
		config: config,
		board:  board,
		scores: scores,
		log:    log,
		now:    time.Now,
	}

	game.log.WithFields(logrus.Fields{
		"difficulty": config.Difficulty,
		"rows":       board.Rows(),
		"columns":    board.Columns(),
		"mines":      board.TotalMineCount(),
		"seed":       board.Seed(),
	}).Info("new game")

	return game, nil
}

func (game *Game) Board() *Board {
	return game.board
}

func (game *Game) Status() GameStatus {
	return game.board.GameStatus()
}

func (game *Game) canPlay() bool {
	return game.Status() == InProgress
}

// Elapsed is the time since the first click, frozen once the game ends
func (game *Game) Elapsed() time.Duration {
	switch {
	case game.started.IsZero():
		return 0
	case !game.ended.IsZero():
		return game.ended.Sub(game.started)
	default:
		return game.now().Sub(game.started)
	}
}

// Apply performs a player's action. Actions after the game has ended are ignored.
func (game *Game) Apply(action CellAction) ([]Coord, error) {
	if !game.canPlay() {
		return nil, nil
	}
	if !game.board.InBounds(action.Row, action.Column) {
		return nil, outOfBounds(action.Row, action.Column)
	}

	if action.Action == Click && game.started.IsZero() {
		game.started = game.now()
	}

	opened, err := game.board.Apply(action)
	if err != nil {
		return nil, err
	}

	status := game.Status()
	game.log.WithFields(logrus.Fields{
		"row":    action.Row,
		"column": action.Column,
		"action": action.Action,
		"opened": len(opened),
		"status": status,
	}).Debug("move")

	if status != InProgress {
		game.endGame(status)
	}

	return opened, nil
}

// Reset starts a new game on the same board
func (game *Game) Reset() {
	game.board.Reset()
	game.started, game.ended = time.Time{}, time.Time{}

	game.log.WithField("seed", game.board.Seed()).Info("game reset")
}

func (game *Game) endGame(status GameStatus) {
	game.ended = game.now()
	if game.started.IsZero() {
		game.started = game.ended
	}

	log := game.log.WithFields(logrus.Fields{
		"status":  status,
		"elapsed": game.Elapsed(),
	})
	log.Info("game over")

	if status == Won {
		if err := game.recordScore(); err != nil {
			log.WithError(err).Error("could not record score")
		}
	}

	if err := game.saveSnapshot(status); err != nil {
		log.WithError(err).Error("could not save snapshot")
	}
}

// Score is the number of whole seconds played, at least 1
func (game *Game) Score() int {
	score := int(game.Elapsed() / time.Second)
	if score < 1 {
		score = 1
	}
	return score
}

func (game *Game) recordScore() error {
	if game.scores == nil || !game.config.Difficulty.Ranked() {
		return nil
	}
	return game.scores.RecordScore(game.config.Difficulty, game.config.PlayerName, game.Score())
}

func (game *Game) saveSnapshot(status GameStatus) error {
	dir := game.config.SavedSnapshotsDir
	if dir == "" {
		return nil
	}

	if err := os.MkdirAll(dir, 0777); err != nil {
		return errors.Wrapf(err, "creating snapshots dir %s", dir)
	}

	serialized, err := game.board.Snapshot().Serialize()
	if err != nil {
		return err
	}

	path := filepath.Join(dir, generateSnapshotFilename(status, game.board.Seed(), game.ended))
	if err := os.WriteFile(path, []byte(serialized), 0666); err != nil {
		return errors.Wrapf(err, "writing snapshot %s", path)
	}

	game.log.WithField("path", path).Debug("saved snapshot")
	return nil
}

func generateSnapshotFilename(status GameStatus, seed int64, t time.Time) string {
	var stateStr string
	switch status {
	case Won:
		stateStr = "win"
	case Lost:
		stateStr = "loss"
	default:
		stateStr = "other"
	}

	return fmt.Sprintf("%s_%d_%s.yaml", t.Format("20060102_150405"), seed, stateStr)
}
