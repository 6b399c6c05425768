package game

// Director plays a game by choosing actions through the board's public API
type Director interface {
	// Init prepares the director to play board
	Init(*Board)

	// Act returns the actions of a single step, or none once the director
	// has nothing left to do
	Act() []CellAction
}

type Action int

const (
	// Click discloses the cell
	Click Action = iota
	// RightClick cycles the cell's marker: closed, flagged, suspected, closed
	RightClick
	// MiddleClick chords an opened number
	MiddleClick
)

func (action Action) String() string {
	switch action {
	case Click:
		return "click"
	case RightClick:
		return "right-click"
	case MiddleClick:
		return "middle-click"
	}
	return "unknown"
}

type CellAction struct {
	Coord
	Action Action
}

func ClickAt(cell Coord) CellAction {
	return CellAction{Coord: cell, Action: Click}
}

func RightClickAt(cell Coord) CellAction {
	return CellAction{Coord: cell, Action: RightClick}
}

func MiddleClickAt(cell Coord) CellAction {
	return CellAction{Coord: cell, Action: MiddleClick}
}

// nextMarker is the status a right click moves a cell to
var nextMarker = map[CellStatus]CellStatus{
	Closed:    Flagged,
	Flagged:   Suspected,
	Suspected: Closed,
}

// Apply performs action on board, returning the cells it opened
func (board *Board) Apply(action CellAction) ([]Coord, error) {
	row, column := action.Row, action.Column

	switch action.Action {
	case Click:
		return board.Disclose(row, column)
	case MiddleClick:
		return board.Chord(row, column)
	case RightClick:
		status, err := board.Status(row, column)
		if err != nil {
			return nil, err
		}
		if next, ok := nextMarker[status]; ok {
			_, err = board.SetStatus(row, column, next)
		}
		return nil, err
	}
	return nil, nil
}
