// Package grid maps numeric goal progress onto a flat array of image cells.
//
// Every goal contributes ceil(total/scale) cells to the grid. Recording progress
// on a goal colors a proportional number of randomly chosen uncolored cells.
// Functions in this package never mutate their inputs.
package grid

import (
	"splitup/internal/models"
)

// scaleTiers maps an upper bound on a goal total to the number of units one cell stands for
var scaleTiers = []struct {
	limit int
	scale int
}{
	{10_000, 1},
	{100_000, 10},
	{1_000_000, 100},
	{10_000_000, 1_000},
}

// maxScale is used for totals above the last tier
const maxScale = 10_000

// ComputeScale returns how many goal units one cell represents for the given total
func ComputeScale(total int) int {
	for _, tier := range scaleTiers {
		if total <= tier.limit {
			return tier.scale
		}
	}
	return maxScale
}

// NormalizeGoal derives the goal's scale from its total.
// Scale is never user-editable, so a stored value is always recomputed.
func NormalizeGoal(g models.Goal) models.Goal {
	g.Scale = ComputeScale(g.Total())
	g.IsCompleted = g.Remaining() == 0
	return g
}

// CellCount returns ceil(total/scale) for the goal, or 0 when the total is zero,
// unparseable or above models.MaxAmount. The scale is always derived from the
// total so a stored scale cannot inflate the grid.
func CellCount(g models.Goal) int {
	total := g.Total()
	if total <= 0 {
		return 0
	}
	scale := ComputeScale(total)
	return (total + scale - 1) / scale
}

// TotalCells sums CellCount over all goals
func TotalCells(goals []models.Goal) int {
	total := 0
	for _, g := range goals {
		total += CellCount(g)
	}
	return total
}
