package constraint

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"

	"github.com/they4kman/minefield/director/random"
	"github.com/they4kman/minefield/game"
	"github.com/they4kman/minefield/util/collections"
)

var _ game.Director = (*Director)(nil)

// simplifyRounds bounds how many times observations are split against each other per step
const simplifyRounds = 4

// Director deduces safe cells and mines from the numbers revealed so far,
// guessing only when nothing can be deduced
type Director struct {
	Rand *rand.Rand

	board    *game.Board
	fallback *random.Director

	observations []*Observation
}

// Observation records that exactly numMines of cells are mines
type Observation struct {
	origin   *game.Coord
	numMines int
	cells    collections.Set[game.Coord]
}

func (observation Observation) String() string {
	cells := make([]string, 0, len(observation.cells))
	for _, cell := range sortedCells(observation.cells) {
		cells = append(cells, cell.String())
	}

	originRepr := "?"
	if observation.origin != nil {
		originRepr = observation.origin.String()
	}

	return fmt.Sprintf("Obs[%8s, %d ε %s]", originRepr, observation.numMines, strings.Join(cells, ", "))
}

func (observation Observation) MineProbability() float64 {
	return float64(observation.numMines) / float64(len(observation.cells))
}

func New(seed int64) *Director {
	return &Director{Rand: rand.New(rand.NewSource(seed))}
}

func (director *Director) Init(board *game.Board) {
	if director.Rand == nil {
		director.Rand = rand.New(rand.NewSource(board.Seed()))
	}

	director.board = board
	director.fallback = &random.Director{Rand: director.Rand}
	director.fallback.Init(board)
	director.observations = nil
}

func (director *Director) Act() []game.CellAction {
	director.observe()

	actors := []func() []game.CellAction{
		director.actDeliberate,
		director.actLowestProbability,
		director.fallback.Act,
	}

	for _, actor := range actors {
		if actions := actor(); len(actions) > 0 {
			return actions
		}
	}
	return nil
}

func (director *Director) isUnknown(cell game.Coord) bool {
	status, _ := director.board.Status(cell.Row, cell.Column)
	return status == game.Closed || status == game.Suspected
}

// observe rebuilds every observation from the opened numbers on the board
func (director *Director) observe() {
	director.observations = nil

	board := director.board
	for row := 0; row < board.Rows(); row++ {
		for column := 0; column < board.Columns(); column++ {
			status, _ := board.Status(row, column)
			property, _ := board.Property(row, column)
			if status != game.Opened || property.IsMine() || property == game.Empty {
				continue
			}

			origin := game.Coord{Row: row, Column: column}
			observation := Observation{
				origin:   &origin,
				numMines: property.Count(),
				cells:    make(collections.Set[game.Coord]),
			}

			for _, neighbor := range board.Neighbors(origin) {
				neighborStatus, _ := board.Status(neighbor.Row, neighbor.Column)
				if neighborStatus == game.Flagged {
					observation.numMines--
				} else if neighborStatus != game.Opened {
					observation.cells.Add(neighbor)
				}
			}

			director.addObservation(&observation)
		}
	}

	for i := 0; i < simplifyRounds; i++ {
		if !director.simplifyObservations() {
			break
		}
	}
}

// simplifyObservations derives new observations from overlapping ones,
// returning whether any were added
func (director *Director) simplifyObservations() bool {
	added := false

	observations := director.observations
	for _, observation := range observations {
		for _, intersectingObs := range observations {
			if intersectingObs == observation {
				continue
			}

			sharedCells, isSubset := observation.cells.IntersectionEx(intersectingObs.cells)
			if len(sharedCells) == 0 {
				continue
			}

			if isSubset {
				splitObs := Observation{
					numMines: intersectingObs.numMines - observation.numMines,
					cells:    intersectingObs.cells.Difference(observation.cells),
				}
				added = director.addObservation(&splitObs) || added
			} else if observation.numMines == 1 && len(sharedCells) > 1 {
				// At most one of intersectingObs's mines lies in the shared cells
				leftOnlyCells := intersectingObs.cells.Difference(sharedCells)
				occludedMines := intersectingObs.numMines - observation.numMines

				if occludedMines == len(leftOnlyCells) {
					occludedObs := Observation{
						numMines: occludedMines,
						cells:    leftOnlyCells,
					}
					added = director.addObservation(&occludedObs) || added
				}
			}
		}
	}

	return added
}

func (director *Director) addObservation(observation *Observation) bool {
	// Don't add vacuous or contradictory observations
	if len(observation.cells) == 0 || observation.numMines < 0 || observation.numMines > len(observation.cells) {
		return false
	}

	// Don't add duplicates
	for _, otherObs := range director.observations {
		if otherObs.cells.Equal(observation.cells) {
			return false
		}
	}

	director.observations = append(director.observations, observation)
	return true
}

func (director *Director) actDeliberate() []game.CellAction {
	var actions []game.CellAction
	acted := make(collections.Set[game.Coord])

	for _, observation := range director.observations {
		switch observation.numMines {
		case 0:
			for _, cell := range sortedCells(observation.cells) {
				if !acted.Contains(cell) {
					acted.Add(cell)
					actions = append(actions, game.ClickAt(cell))
				}
			}
		case len(observation.cells):
			for _, cell := range sortedCells(observation.cells) {
				if !acted.Contains(cell) {
					acted.Add(cell)
					actions = append(actions, director.flag(cell)...)
				}
			}
		}
	}

	return actions
}

// flag returns the right clicks which take an unknown cell to Flagged
func (director *Director) flag(cell game.Coord) []game.CellAction {
	status, _ := director.board.Status(cell.Row, cell.Column)
	switch status {
	case game.Closed:
		return []game.CellAction{game.RightClickAt(cell)}
	case game.Suspected:
		return []game.CellAction{game.RightClickAt(cell), game.RightClickAt(cell)}
	}
	return nil
}

// actLowestProbability clicks one of the cells least likely to be a mine,
// judging each cell by the most pessimistic observation covering it
func (director *Director) actLowestProbability() []game.CellAction {
	cellProbabilities := make(map[game.Coord]float64)
	for _, observation := range director.observations {
		probability := observation.MineProbability()
		for cell := range observation.cells {
			if pastProbability, ok := cellProbabilities[cell]; !ok || probability > pastProbability {
				cellProbabilities[cell] = probability
			}
		}
	}

	if len(cellProbabilities) == 0 {
		return nil
	}

	lowestProbability := math.Inf(1)
	for _, probability := range cellProbabilities {
		lowestProbability = math.Min(lowestProbability, probability)
	}

	lowestProbabilityCells := collections.NewSet[game.Coord]()
	for cell, probability := range cellProbabilities {
		if probability <= lowestProbability {
			lowestProbabilityCells.Add(cell)
		}
	}

	candidates := sortedCells(lowestProbabilityCells)
	director.Rand.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	for _, cell := range candidates {
		if director.isUnknown(cell) {
			return []game.CellAction{game.ClickAt(cell)}
		}
	}
	return nil
}

// sortedCells orders cells row-major, so that map iteration never makes the
// director's choices irreproducible
func sortedCells(cells collections.Set[game.Coord]) []game.Coord {
	sorted := make([]game.Coord, 0, len(cells))
	for cell := range cells {
		sorted = append(sorted, cell)
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Row != sorted[j].Row {
			return sorted[i].Row < sorted[j].Row
		}
		return sorted[i].Column < sorted[j].Column
	})
	return sorted
}
