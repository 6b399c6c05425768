package game

import (
	"github.com/gammazero/deque"
)

type NeighborGetter func(Coord) []Coord

// Visitor handles a single cell of the flood, returning whether the flood
// should continue through the cell's neighbors
type Visitor func(Coord) bool

// flood visits start, then breadth-first every cell reachable through cells
// whose visit returned true. Each cell is visited at most once.
func flood(start Coord, index func(Coord) int, visit Visitor, getNeighbors NeighborGetter) {
	visited := make(map[int]struct{})
	var visitQueue deque.Deque

	enqueue := func(cell Coord) {
		idx := index(cell)
		if _, alreadyVisited := visited[idx]; alreadyVisited {
			return
		}
		visited[idx] = struct{}{}
		visitQueue.PushBack(cell)
	}

	enqueue(start)
	for visitQueue.Len() > 0 {
		cell := visitQueue.PopFront().(Coord)
		if !visit(cell) {
			continue
		}

		for _, neighbor := range getNeighbors(cell) {
			enqueue(neighbor)
		}
	}
}
