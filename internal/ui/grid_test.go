package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"splitup/internal/models"
)

func TestRenderGrid_Empty(t *testing.T) {
	assert.Contains(t, RenderGrid(nil), "No cells")
}

func TestRenderGrid_Layout(t *testing.T) {
	cells := make([]models.Cell, 10)
	for i := range cells {
		cells[i].Position = i
	}
	cells[0].IsColored = true
	cells[9].IsColored = true

	out := RenderGrid(cells)
	lines := strings.Split(out, "\n")

	// 10 cells lay out as 4 columns over 3 rows, the last one short
	assert.Len(t, lines, 3)
	assert.Equal(t, 2, strings.Count(out, "██"))
	assert.Equal(t, 8, strings.Count(out, "░░"))
	assert.True(t, strings.HasPrefix(lines[0], "██"))
	assert.True(t, strings.HasSuffix(lines[2], "██"))
}
