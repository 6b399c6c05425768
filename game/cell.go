package game

import (
	"fmt"
)

// Coord identifies a cell by its row and column
type Coord struct {
	Row    int `yaml:"row"`
	Column int `yaml:"column"`
}

func (coord Coord) String() string {
	return fmt.Sprintf("(%d, %d)", coord.Row, coord.Column)
}

// CellProperty is the fixed content of a cell: a mine, or the number of mines
// surrounding it. The zero value is Empty.
type CellProperty int8

const (
	Mine  CellProperty = -1
	Empty CellProperty = 0
)

// Adjacent returns the property of a safe cell bordering count mines.
// It panics if count is outside 0..8.
func Adjacent(count int) CellProperty {
	if count < 0 || count > 8 {
		panic(fmt.Sprintf("invalid adjacent mine count %d", count))
	}
	return CellProperty(count)
}

func (property CellProperty) IsMine() bool {
	return property == Mine
}

// Count returns the number of adjacent mines, or 0 for a mine
func (property CellProperty) Count() int {
	if property == Mine {
		return 0
	}
	return int(property)
}

func (property CellProperty) String() string {
	switch property {
	case Mine:
		return "mine"
	case Empty:
		return "empty"
	}
	return fmt.Sprintf("adjacent(%d)", int(property))
}

// neighborOffsets lists the Moore neighbourhood as row/column deltas,
// in the order NW, N, NE, E, SE, S, SW, W
var neighborOffsets = [8]Coord{
	{-1, -1},
	{-1, 0},
	{-1, 1},
	{0, 1},
	{1, 1},
	{1, 0},
	{1, -1},
	{0, -1},
}
