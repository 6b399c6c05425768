package game

import (
	"fmt"
	"strings"
)

type CellStatus int
type GameStatus int

const (
	Closed CellStatus = iota
	Opened
	Flagged
	Suspected
)

var CellStatuses = []CellStatus{
	Closed,
	Opened,
	Flagged,
	Suspected,
}

func (status CellStatus) String() string {
	switch status {
	case Closed:
		return "closed"
	case Opened:
		return "opened"
	case Flagged:
		return "flagged"
	case Suspected:
		return "suspected"
	}
	return fmt.Sprintf("CellStatus(%d)", int(status))
}

const (
	Lost GameStatus = iota
	InProgress
	Won
)

func (status GameStatus) String() string {
	switch status {
	case Lost:
		return "lost"
	case InProgress:
		return "in progress"
	case Won:
		return "won"
	}
	return fmt.Sprintf("GameStatus(%d)", int(status))
}

// Difficulty selects one of the ranked board presets, or Custom for
// user-supplied dimensions (which are never ranked).
type Difficulty int

const (
	Custom Difficulty = iota
	Beginner
	Intermediate
	Expert
)

// Difficulties are the tiers which keep a leaderboard
var Difficulties = []Difficulty{
	Beginner,
	Intermediate,
	Expert,
}

var difficultyNames = map[Difficulty]string{
	Custom:       "Custom",
	Beginner:     "Beginner",
	Intermediate: "Intermediate",
	Expert:       "Expert",
}

func (difficulty Difficulty) String() string {
	if name, ok := difficultyNames[difficulty]; ok {
		return name
	}
	return fmt.Sprintf("Difficulty(%d)", int(difficulty))
}

// Ranked reports whether scores for this difficulty belong on a leaderboard
func (difficulty Difficulty) Ranked() bool {
	return difficulty == Beginner || difficulty == Intermediate || difficulty == Expert
}

// Preset returns the rows, columns and mine count of a ranked difficulty.
// ok is false for Custom.
func (difficulty Difficulty) Preset() (rows, columns, mines int, ok bool) {
	switch difficulty {
	case Beginner:
		return 9, 9, 10, true
	case Intermediate:
		return 16, 16, 40, true
	case Expert:
		return 16, 30, 99, true
	}
	return 0, 0, 0, false
}

func ParseDifficulty(name string) (Difficulty, error) {
	for difficulty, difficultyName := range difficultyNames {
		if strings.EqualFold(name, difficultyName) {
			return difficulty, nil
		}
	}
	return Custom, fmt.Errorf("invalid difficulty %q", name)
}

func (difficulty Difficulty) MarshalYAML() (interface{}, error) {
	return difficulty.String(), nil
}

func (difficulty *Difficulty) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var name string
	if err := unmarshal(&name); err != nil {
		return err
	}

	parsed, err := ParseDifficulty(name)
	if err != nil {
		return err
	}
	*difficulty = parsed
	return nil
}
