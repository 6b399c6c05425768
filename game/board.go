package game

import (
	"math/rand"
	"time"
)

type Board struct {
	rows, columns int
	numMines      int
	numFlags      int

	statuses   [][]CellStatus
	properties [][]CellProperty

	lastClicked Coord

	seed int64
	rand *rand.Rand

	// Mine layout supplied at construction; nil when mines are placed randomly
	fixedMines []Coord
}

var noClick = Coord{-1, -1}

// NewBoard creates a board with mineCount mines placed at random
func NewBoard(rows, columns, mineCount int) (*Board, error) {
	return NewSeededBoard(rows, columns, mineCount, time.Now().UnixNano())
}

// NewSeededBoard creates a board whose random mine layout is determined by seed
func NewSeededBoard(rows, columns, mineCount int, seed int64) (*Board, error) {
	if err := validateDimensions(rows, columns); err != nil {
		return nil, err
	}
	if mineCount < 0 || mineCount > rows*columns {
		return nil, invalidConfiguration("%d mines do not fit in %dx%d", mineCount, rows, columns)
	}

	board := &Board{
		rows:     rows,
		columns:  columns,
		numMines: mineCount,
	}
	board.reseed(seed)
	board.setup()
	return board, nil
}

// NewBoardWithMines creates a board with mines at exactly the given cells
func NewBoardWithMines(rows, columns int, mines []Coord) (*Board, error) {
	if err := validateDimensions(rows, columns); err != nil {
		return nil, err
	}

	seen := make(map[Coord]struct{}, len(mines))
	for _, mine := range mines {
		if mine.Row < 0 || mine.Row >= rows || mine.Column < 0 || mine.Column >= columns {
			return nil, invalidConfiguration("mine %v outside %dx%d board", mine, rows, columns)
		}
		if _, isDuplicate := seen[mine]; isDuplicate {
			return nil, invalidConfiguration("duplicate mine %v", mine)
		}
		seen[mine] = struct{}{}
	}

	board := &Board{
		rows:       rows,
		columns:    columns,
		numMines:   len(mines),
		fixedMines: append([]Coord{}, mines...),
	}
	board.reseed(time.Now().UnixNano())
	board.setup()
	return board, nil
}

func validateDimensions(rows, columns int) error {
	if rows <= 0 || columns <= 0 {
		return invalidConfiguration("board dimensions %dx%d", rows, columns)
	}
	return nil
}

func (board *Board) reseed(seed int64) {
	board.seed = seed
	board.rand = rand.New(rand.NewSource(seed))
}

// setup allocates both grids, places the mines and counts their neighbors
func (board *Board) setup() {
	board.statuses = make([][]CellStatus, board.rows)
	board.properties = make([][]CellProperty, board.rows)
	for row := 0; row < board.rows; row++ {
		board.statuses[row] = make([]CellStatus, board.columns)
		board.properties[row] = make([]CellProperty, board.columns)
	}

	board.numFlags = 0
	board.lastClicked = noClick

	mines := board.fixedMines
	if mines == nil {
		mines = board.randomMines()
	}

	for _, mine := range mines {
		board.properties[mine.Row][mine.Column] = Mine
	}
	for _, mine := range mines {
		for _, neighbor := range board.Neighbors(mine) {
			if property := &board.properties[neighbor.Row][neighbor.Column]; *property != Mine {
				*property++
			}
		}
	}
}

func (board *Board) randomMines() []Coord {
	// Store cell indexes, to shuffle and take the first numMines as mines
	cellIndexes := make([]int, board.NumCells())
	for i := range cellIndexes {
		cellIndexes[i] = i
	}

	board.rand.Shuffle(len(cellIndexes), func(i, j int) {
		cellIndexes[i], cellIndexes[j] = cellIndexes[j], cellIndexes[i]
	})

	mines := make([]Coord, board.numMines)
	for i := range mines {
		mines[i] = board.coordOf(cellIndexes[i])
	}
	return mines
}

// Reset starts a fresh game on a board of the same size and mine count.
// Randomly mined boards get a new layout; boards built from a mine list keep it.
func (board *Board) Reset() {
	if board.fixedMines == nil {
		board.reseed(board.rand.Int63())
	}
	board.setup()
}

func (board *Board) Rows() int {
	return board.rows
}

func (board *Board) Columns() int {
	return board.columns
}

func (board *Board) NumCells() int {
	return board.rows * board.columns
}

func (board *Board) Seed() int64 {
	return board.seed
}

// TotalMineCount is the number of mines on the board
func (board *Board) TotalMineCount() int {
	return board.numMines
}

// CurrentMineCount is the number of mines not yet accounted for by a flag.
// It is negative when more cells are flagged than there are mines.
func (board *Board) CurrentMineCount() int {
	return board.numMines - board.numFlags
}

// LastClicked returns the cell most recently passed to Disclose, if any
func (board *Board) LastClicked() (Coord, bool) {
	return board.lastClicked, board.lastClicked != noClick
}

func (board *Board) InBounds(row, column int) bool {
	return row >= 0 && column >= 0 && row < board.rows && column < board.columns
}

func (board *Board) index(cell Coord) int {
	return cell.Row*board.columns + cell.Column
}

func (board *Board) coordOf(idx int) Coord {
	return Coord{Row: idx / board.columns, Column: idx % board.columns}
}

// Neighbors returns the in-bounds Moore neighbors of cell, in the order
// NW, N, NE, E, SE, S, SW, W
func (board *Board) Neighbors(cell Coord) []Coord {
	neighbors := make([]Coord, 0, len(neighborOffsets))
	for _, offset := range neighborOffsets {
		row, column := cell.Row+offset.Row, cell.Column+offset.Column
		if board.InBounds(row, column) {
			neighbors = append(neighbors, Coord{row, column})
		}
	}
	return neighbors
}

// Mines lists every mine, in row-major order
func (board *Board) Mines() []Coord {
	mines := make([]Coord, 0, board.numMines)
	for row, properties := range board.properties {
		for column, property := range properties {
			if property == Mine {
				mines = append(mines, Coord{row, column})
			}
		}
	}
	return mines
}

func (board *Board) Status(row, column int) (CellStatus, error) {
	if !board.InBounds(row, column) {
		return Closed, outOfBounds(row, column)
	}
	return board.statuses[row][column], nil
}

func (board *Board) Property(row, column int) (CellProperty, error) {
	if !board.InBounds(row, column) {
		return Empty, outOfBounds(row, column)
	}
	return board.properties[row][column], nil
}

func (board *Board) statusAt(cell Coord) CellStatus {
	return board.statuses[cell.Row][cell.Column]
}

func (board *Board) propertyAt(cell Coord) CellProperty {
	return board.properties[cell.Row][cell.Column]
}

// Flagged cells are protected from being opened
func (board *Board) canDisclose(cell Coord) bool {
	status := board.statusAt(cell)
	return status != Opened && status != Flagged
}

// Disclose opens the cell and, if it has no adjacent mines, floods outward
// through every connected empty cell. It returns the cells that were opened,
// the clicked cell first. Opened and flagged cells are left alone, returning
// no cells.
//
// Opening a mine is not an error; it is reported by GameStatus.
func (board *Board) Disclose(row, column int) ([]Coord, error) {
	if !board.InBounds(row, column) {
		return nil, outOfBounds(row, column)
	}

	clicked := Coord{row, column}
	if !board.canDisclose(clicked) {
		return nil, nil
	}

	board.lastClicked = clicked
	return board.disclose(clicked), nil
}

func (board *Board) disclose(start Coord) []Coord {
	var opened []Coord

	flood(
		start,
		board.index,
		func(cell Coord) bool {
			if !board.canDisclose(cell) {
				return false
			}

			board.statuses[cell.Row][cell.Column] = Opened
			opened = append(opened, cell)

			return board.propertyAt(cell) == Empty
		},
		board.Neighbors,
	)

	return opened
}

// Chord opens every unflagged neighbor of an opened numbered cell, once the
// number of flagged neighbors matches its count. Otherwise nothing happens.
func (board *Board) Chord(row, column int) ([]Coord, error) {
	if !board.InBounds(row, column) {
		return nil, outOfBounds(row, column)
	}

	cell := Coord{row, column}
	property := board.propertyAt(cell)
	if board.statusAt(cell) != Opened || property == Mine || property == Empty {
		return nil, nil
	}

	neighbors := board.Neighbors(cell)
	numFlaggedNeighbors := 0
	for _, neighbor := range neighbors {
		if board.statusAt(neighbor) == Flagged {
			numFlaggedNeighbors++
		}
	}
	if numFlaggedNeighbors != property.Count() {
		return nil, nil
	}

	var opened []Coord
	lastClicked := cell
	for _, neighbor := range neighbors {
		if !board.canDisclose(neighbor) {
			continue
		}
		if board.propertyAt(neighbor) == Mine {
			lastClicked = neighbor
		}
		opened = append(opened, board.disclose(neighbor)...)
	}

	if len(opened) > 0 {
		board.lastClicked = lastClicked
	}
	return opened, nil
}

// SetStatus moves a cell to another status. Only these transitions are legal:
//
//	Closed    -> Flagged    (one fewer mine remaining)
//	Closed    -> Opened     (no flood fill; use Disclose for that)
//	Flagged   -> Suspected  (one more mine remaining)
//	Suspected -> Closed
//
// Any other request is ignored. The cell's resulting status is returned.
func (board *Board) SetStatus(row, column int, status CellStatus) (CellStatus, error) {
	if !board.InBounds(row, column) {
		return Closed, outOfBounds(row, column)
	}

	current := &board.statuses[row][column]

	switch {
	case *current == Closed && status == Flagged:
		board.numFlags++
	case *current == Closed && status == Opened:
	case *current == Flagged && status == Suspected:
		board.numFlags--
	case *current == Suspected && status == Closed:
	default:
		return *current, nil
	}

	*current = status
	return status, nil
}

// GameStatus reports Lost once a mine has been clicked, Won once every safe
// cell is open, and InProgress otherwise. Flags play no part.
func (board *Board) GameStatus() GameStatus {
	lastClicked, hasClicked := board.LastClicked()
	if !hasClicked {
		return InProgress
	}

	if board.propertyAt(lastClicked) == Mine {
		return Lost
	}

	for row, properties := range board.properties {
		for column, property := range properties {
			if property != Mine && board.statuses[row][column] != Opened {
				return InProgress
			}
		}
	}

	return Won
}
