package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/they4kman/minefield/game"
)

var (
	closedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
	markerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true)
	mineStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000")).Bold(true)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FFFF"))

	numberStyles = map[int]lipgloss.Style{
		1: lipgloss.NewStyle().Foreground(lipgloss.Color("#0000FF")),
		2: lipgloss.NewStyle().Foreground(lipgloss.Color("#008000")),
		3: lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000")),
		4: lipgloss.NewStyle().Foreground(lipgloss.Color("#000080")),
		5: lipgloss.NewStyle().Foreground(lipgloss.Color("#800000")),
		6: lipgloss.NewStyle().Foreground(lipgloss.Color("#008080")),
		7: lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")),
		8: lipgloss.NewStyle().Foreground(lipgloss.Color("#808080")),
	}

	statusStyles = map[game.GameStatus]lipgloss.Style{
		game.InProgress: lipgloss.NewStyle(),
		game.Won:        lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00")).Bold(true),
		game.Lost:       mineStyle,
	}
)

// cellSymbol is the single character shown for a cell
func cellSymbol(status game.CellStatus, property game.CellProperty) string {
	switch status {
	case game.Flagged:
		return markerStyle.Render("F")
	case game.Suspected:
		return markerStyle.Render("?")
	case game.Opened:
		switch {
		case property.IsMine():
			return mineStyle.Render("*")
		case property == game.Empty:
			return "."
		default:
			return numberStyles[property.Count()].Render(fmt.Sprint(property.Count()))
		}
	}
	return closedStyle.Render("#")
}

func renderBoard(board *game.Board) string {
	var out strings.Builder

	out.WriteString("    ")
	for column := 0; column < board.Columns(); column++ {
		out.WriteString(headerStyle.Render(fmt.Sprintf("%-2d", column%100)))
	}
	out.WriteString("\n")

	for row := 0; row < board.Rows(); row++ {
		out.WriteString(headerStyle.Render(fmt.Sprintf("%3d ", row)))
		for column := 0; column < board.Columns(); column++ {
			status, _ := board.Status(row, column)
			property, _ := board.Property(row, column)
			out.WriteString(cellSymbol(status, property))
			out.WriteString(" ")
		}
		out.WriteString("\n")
	}

	return out.String()
}

func renderGame(g *game.Game) string {
	board := g.Board()
	status := g.Status()

	header := fmt.Sprintf("%03d mines   %s   %ds", board.CurrentMineCount(), status, int(g.Elapsed().Seconds()))
	return lipgloss.JoinVertical(
		lipgloss.Left,
		statusStyles[status].Render(header),
		renderBoard(board),
	)
}
