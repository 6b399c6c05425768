package game

import (
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

type BoardSnapshot struct {
	Seed            int64  `yaml:"seed"`
	LastClicked     *Coord `yaml:"last_clicked,omitempty"`
	SerializedBoard string `yaml:"board,flow"`
}

func (snapshot *BoardSnapshot) Serialize() (string, error) {
	out, err := yaml.Marshal(snapshot)
	if err != nil {
		return "", errors.Wrap(err, "serializing snapshot")
	}

	return string(out), nil
}

func LoadSnapshot(in string) (*BoardSnapshot, error) {
	var snapshot BoardSnapshot
	if err := yaml.Unmarshal([]byte(in), &snapshot); err != nil {
		return nil, errors.Wrap(err, "loading snapshot")
	}
	return &snapshot, nil
}

// Snapshot captures the mine layout and every cell's status
func (board *Board) Snapshot() *BoardSnapshot {
	rows := make([]string, board.rows)
	for row := range board.statuses {
		var rowBuilder strings.Builder
		for column, status := range board.statuses[row] {
			rowBuilder.WriteByte(serializeCell(board.properties[row][column] == Mine, status))
		}
		rows[row] = rowBuilder.String()
	}

	snapshot := &BoardSnapshot{
		Seed:            board.seed,
		SerializedBoard: strings.Join(rows, "\n"),
	}
	if lastClicked, hasClicked := board.LastClicked(); hasClicked {
		snapshot.LastClicked = &lastClicked
	}
	return snapshot
}

// CreateBoard rebuilds the snapshotted board. With fresh set, every cell
// starts out closed; otherwise statuses and the last click are restored.
func (snapshot *BoardSnapshot) CreateBoard(fresh bool) (*Board, error) {
	rows := strings.Split(strings.TrimRight(snapshot.SerializedBoard, "\n"), "\n")
	columns := len(rows[0])
	if columns == 0 {
		return nil, invalidConfiguration("empty snapshot")
	}

	var mines []Coord
	statuses := make([][]CellStatus, len(rows))
	for row, serializedRow := range rows {
		if len(serializedRow) != columns {
			return nil, invalidConfiguration("snapshot row %d has %d cells, expected %d", row, len(serializedRow), columns)
		}

		statuses[row] = make([]CellStatus, columns)
		for column := 0; column < columns; column++ {
			isMine, status, ok := deserializeCell(serializedRow[column])
			if !ok {
				return nil, invalidConfiguration("unknown cell %q at (%d, %d)", serializedRow[column], row, column)
			}
			if isMine {
				mines = append(mines, Coord{row, column})
			}
			statuses[row][column] = status
		}
	}

	board, err := NewBoardWithMines(len(rows), columns, mines)
	if err != nil {
		return nil, err
	}
	board.seed = snapshot.Seed

	if fresh {
		return board, nil
	}

	board.statuses = statuses
	for _, row := range statuses {
		for _, status := range row {
			if status == Flagged {
				board.numFlags++
			}
		}
	}

	if snapshot.LastClicked != nil {
		lastClicked := *snapshot.LastClicked
		if !board.InBounds(lastClicked.Row, lastClicked.Column) {
			return nil, invalidConfiguration("last click %v outside board", lastClicked)
		}
		board.lastClicked = lastClicked
	}

	return board, nil
}

func serializeCell(isMine bool, status CellStatus) byte {
	switch {
	case isMine:
		switch status {
		case Opened:
			return '*'
		case Flagged:
			return 'F'
		case Suspected:
			return 'Q'
		default:
			return 'O'
		}
	case status == Opened:
		return '.'
	case status == Flagged:
		return 'f'
	case status == Suspected:
		return 'q'
	default:
		return '#'
	}
}

func deserializeCell(c byte) (isMine bool, status CellStatus, ok bool) {
	switch c {
	case '*':
		return true, Opened, true
	case 'F':
		return true, Flagged, true
	case 'Q':
		return true, Suspected, true
	case 'O':
		return true, Closed, true
	case '.':
		return false, Opened, true
	case 'f':
		return false, Flagged, true
	case 'q':
		return false, Suspected, true
	case '#':
		return false, Closed, true
	}
	return false, Closed, false
}
