package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"splitup/internal/grid"
	"splitup/internal/models"
)

var (
	coloredCell   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render("██")
	uncoloredCell = lipgloss.NewStyle().Foreground(lipgloss.Color("238")).Render("░░")
)

// RenderGrid draws cells row by row on the same near-square layout the
// image reveal uses. Colored cells are solid blocks.
func RenderGrid(cells []models.Cell) string {
	if len(cells) == 0 {
		return "No cells yet. Add a goal to build the grid."
	}

	rows, cols := grid.Dimensions(len(cells))
	var b strings.Builder
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			i := r*cols + c
			if i >= len(cells) {
				break
			}
			if cells[i].IsColored {
				b.WriteString(coloredCell)
			} else {
				b.WriteString(uncoloredCell)
			}
		}
		if r < rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
