package random

import (
	"testing"

	"github.com/they4kman/minefield/game"
)

func TestClearsMinelessBoard(t *testing.T) {
	board, err := game.NewBoardWithMines(4, 5, nil)
	if err != nil {
		t.Fatal(err)
	}

	director := New(3)
	director.Init(board)

	actions := director.Act()
	if len(actions) != 1 || actions[0].Action != game.Click {
		t.Fatalf("expected a single click, got %v", actions)
	}
	board.Apply(actions[0])

	if status := board.GameStatus(); status != game.Won {
		t.Errorf("game status = %v, expected won", status)
	}
	if actions := director.Act(); len(actions) != 0 {
		t.Errorf("director kept acting on a finished board: %v", actions)
	}
}

func TestSkipsFlaggedCells(t *testing.T) {
	board, _ := game.NewBoardWithMines(1, 3, []game.Coord{{Row: 0, Column: 1}})
	board.SetStatus(0, 1, game.Flagged)

	director := New(3)
	director.Init(board)

	clicked := make(map[game.Coord]bool)
	for actions := director.Act(); len(actions) > 0; actions = director.Act() {
		for _, action := range actions {
			clicked[action.Coord] = true
			board.Apply(action)
		}
	}

	if clicked[game.Coord{Row: 0, Column: 1}] {
		t.Error("director clicked a flagged cell")
	}
	if len(clicked) != 2 {
		t.Errorf("clicked %v, expected both safe cells", clicked)
	}
	if status := board.GameStatus(); status != game.Won {
		t.Errorf("game status = %v, expected won", status)
	}
}

func TestSameSeedSameOrder(t *testing.T) {
	board, _ := game.NewBoardWithMines(5, 5, []game.Coord{{Row: 2, Column: 2}})

	first, second := New(11), New(11)
	first.Init(board)
	second.Init(board)

	for i := 0; i < 5; i++ {
		a, b := first.Act(), second.Act()
		if len(a) != 1 || len(b) != 1 || a[0] != b[0] {
			t.Fatalf("step %d: %v vs %v", i, a, b)
		}
	}
}
