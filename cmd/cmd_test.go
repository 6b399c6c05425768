package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"

	"github.com/they4kman/minefield/game"
	"github.com/they4kman/minefield/leaderboard"
)

func newPlayGame(t *testing.T, store game.ScoreRecorder) *game.Game {
	t.Helper()

	config := game.NewGameConfig()
	config.Difficulty = game.Beginner
	config.PlayerName = "tester"
	config.Snapshot = &game.BoardSnapshot{SerializedBoard: "O##\n###\n###"}

	logger, _ := test.NewNullLogger()
	g, err := game.NewGame(config, store, logger)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestPlayToWin(t *testing.T) {
	logger, _ := test.NewNullLogger()
	store := leaderboard.New(t.TempDir(), logger)
	g := newPlayGame(t, store)

	var out bytes.Buffer
	in := strings.NewReader("f 0 0\nbogus\no 9 9\no 2 2\nq\n")
	if err := play(g, in, &out); err != nil {
		t.Fatal(err)
	}

	if g.Status() != game.Won {
		t.Fatalf("status = %v, expected won\n%s", g.Status(), out.String())
	}
	for _, expected := range []string{"unknown command", "out of bounds", "won", "r to play again"} {
		if !strings.Contains(out.String(), expected) {
			t.Errorf("output lacks %q:\n%s", expected, out.String())
		}
	}

	entries, err := store.TopScores(game.Beginner)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name != "tester" {
		t.Errorf("leaderboard = %v, expected the win", entries)
	}
}

func TestPlayReset(t *testing.T) {
	g := newPlayGame(t, nil)

	var out bytes.Buffer
	if err := play(g, strings.NewReader("o 0 0\nr\n"), &out); err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(out.String(), "lost") {
		t.Errorf("output lacks the loss:\n%s", out.String())
	}
	if g.Status() != game.InProgress {
		t.Errorf("status = %v after reset", g.Status())
	}
}

func TestParseMove(t *testing.T) {
	action, err := parseMove([]string{"c", "3", "4"})
	if err != nil {
		t.Fatal(err)
	}
	expected := game.MiddleClickAt(game.Coord{Row: 3, Column: 4})
	if action != expected {
		t.Errorf("parsed %+v, expected %+v", action, expected)
	}

	for _, fields := range [][]string{{"x", "1", "1"}, {"o", "1"}, {"o", "a", "1"}, {"f", "1", "b"}} {
		if _, err := parseMove(fields); err == nil {
			t.Errorf("parseMove(%v): expected an error", fields)
		}
	}
}

func TestAutoPlay(t *testing.T) {
	config := game.NewGameConfig()
	config.Difficulty = game.Beginner
	config.Seed = 1

	logger, _ := test.NewNullLogger()
	g, err := game.NewGame(config, nil, logger)
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	results, err := autoPlay(g, directors["constraint"], 5, &out)
	if err != nil {
		t.Fatal(err)
	}

	if total := results[game.Won] + results[game.Lost] + results[game.InProgress]; total != 5 {
		t.Errorf("played %d games, expected 5: %v", total, results)
	}
	if results[game.InProgress] != 0 {
		t.Errorf("%d games stalled", results[game.InProgress])
	}
}

func TestPrintScores(t *testing.T) {
	logger, _ := test.NewNullLogger()
	store := leaderboard.New(t.TempDir(), logger)
	if err := store.RecordScore(game.Expert, "erin", 123); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := printScores(store, game.Difficulties, &out); err != nil {
		t.Fatal(err)
	}

	output := out.String()
	if !strings.Contains(output, "no scores yet") {
		t.Errorf("empty tiers should say so:\n%s", output)
	}
	if !strings.Contains(output, "erin") || !strings.Contains(output, "123s") {
		t.Errorf("output lacks the expert score:\n%s", output)
	}
}

func TestDifficultyValue(t *testing.T) {
	var difficulty game.Difficulty
	value := newDifficultyValue(game.Expert, &difficulty)

	if value.String() != "Expert" {
		t.Errorf("default = %s", value)
	}
	if err := value.Set("intermediate"); err != nil || difficulty != game.Intermediate {
		t.Errorf("Set(intermediate) = %v, difficulty %v", err, difficulty)
	}
	if err := value.Set("nightmare"); err == nil {
		t.Error("expected an error for an unknown difficulty")
	}
}
