package random

import (
	"math/rand"

	"github.com/they4kman/minefield/game"
)

// Director clicks cells in a random order, skipping any already opened or flagged
type Director struct {
	Rand *rand.Rand

	board *game.Board
	cells []game.Coord
	next  int
}

var _ game.Director = (*Director)(nil)

func New(seed int64) *Director {
	return &Director{Rand: rand.New(rand.NewSource(seed))}
}

func (director *Director) Init(board *game.Board) {
	if director.Rand == nil {
		director.Rand = rand.New(rand.NewSource(board.Seed()))
	}

	director.board = board
	director.next = 0
	director.cells = make([]game.Coord, 0, board.NumCells())
	for row := 0; row < board.Rows(); row++ {
		for column := 0; column < board.Columns(); column++ {
			director.cells = append(director.cells, game.Coord{Row: row, Column: column})
		}
	}

	director.Rand.Shuffle(len(director.cells), func(i, j int) {
		director.cells[i], director.cells[j] = director.cells[j], director.cells[i]
	})
}

func (director *Director) Act() []game.CellAction {
	for ; director.next < len(director.cells); director.next++ {
		cell := director.cells[director.next]
		status, _ := director.board.Status(cell.Row, cell.Column)
		if status == game.Closed || status == game.Suspected {
			director.next++
			return []game.CellAction{game.ClickAt(cell)}
		}
	}
	return nil
}
