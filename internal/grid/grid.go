package grid

import (
	"fmt"
	"math"
	"math/bits"
	"math/rand"

	"splitup/internal/models"
)

// Rebuild creates a fresh grid sized for goals. Positions that were colored in
// previous and still exist in the new grid stay colored.
func Rebuild(goals []models.Goal, previous []models.Cell) []models.Cell {
	total := TotalCells(goals)

	colored := make(map[int]bool, len(previous))
	for _, c := range previous {
		if c.IsColored {
			colored[c.Position] = true
		}
	}

	cells := make([]models.Cell, total)
	for pos := range cells {
		cells[pos] = models.Cell{Position: pos, IsColored: colored[pos]}
	}
	return cells
}

// CellsToFill returns ceil(CellCount(g) * amount / total) without floating point
// rounding. The product is taken in 128 bits, so it cannot overflow.
func CellsToFill(g models.Goal, amount int) int {
	total := g.Total()
	if total <= 0 || amount <= 0 {
		return 0
	}
	if amount > total {
		amount = total
	}
	// quotient <= CellCount(g), so hi < total and Div64 cannot panic
	hi, lo := bits.Mul64(uint64(CellCount(g)), uint64(amount))
	q, r := bits.Div64(hi, lo, uint64(total))
	if r > 0 {
		q++
	}
	return int(q)
}

// ApplyProgress credits amount to the goal and colors a proportional number of
// uncolored cells chosen uniformly at random. It returns the new cells, the
// updated goal and how many cells were colored.
//
// amount must be in (0, remaining]; otherwise ErrInvalidAmount is returned and
// nothing changes. A goal with a zero total is a no-op. If fewer uncolored cells
// remain than requested, all of them are colored.
func ApplyProgress(g models.Goal, amount int, cells []models.Cell, rng *rand.Rand) ([]models.Cell, models.Goal, int, error) {
	out := Clone(cells)

	total := g.Total()
	if total <= 0 {
		return out, g, 0, nil
	}

	remaining := g.Remaining()
	if amount <= 0 || amount > remaining {
		return out, g, 0, fmt.Errorf("%w: %d (remaining %d)", models.ErrInvalidAmount, amount, remaining)
	}

	picked := pickUncolored(out, CellsToFill(g, amount), rng)
	for _, pos := range picked {
		out[pos].IsColored = true
	}

	remaining -= amount
	g.RemainingNumber = models.FormatAmount(remaining)
	g.IsCompleted = remaining == 0

	return out, g, len(picked), nil
}

// MarkGoalComplete credits everything that remains on the goal
func MarkGoalComplete(g models.Goal, cells []models.Cell, rng *rand.Rand) ([]models.Cell, models.Goal, int, error) {
	remaining := g.Remaining()
	if remaining == 0 {
		return Clone(cells), g, 0, nil
	}
	return ApplyProgress(g, remaining, cells, rng)
}

// pickUncolored selects up to n uncolored indices without replacement using a
// partial Fisher-Yates shuffle over the uncolored index list.
func pickUncolored(cells []models.Cell, n int, rng *rand.Rand) []int {
	free := make([]int, 0, len(cells))
	for i, c := range cells {
		if !c.IsColored {
			free = append(free, i)
		}
	}
	if n > len(free) {
		n = len(free)
	}
	if n < 0 {
		n = 0
	}

	for i := 0; i < n; i++ {
		j := i + rng.Intn(len(free)-i)
		free[i], free[j] = free[j], free[i]
	}
	return free[:n]
}

// Clone copies a cell slice
func Clone(cells []models.Cell) []models.Cell {
	out := make([]models.Cell, len(cells))
	copy(out, cells)
	return out
}

// FilledCount counts colored cells
func FilledCount(cells []models.Cell) int {
	n := 0
	for _, c := range cells {
		if c.IsColored {
			n++
		}
	}
	return n
}

// Dimensions lays total cells out as a near-square grid: columns = ceil(sqrt(total)),
// rows = ceil(total/columns).
func Dimensions(total int) (rows, cols int) {
	if total <= 0 {
		return 0, 0
	}
	cols = int(math.Ceil(math.Sqrt(float64(total))))
	rows = (total + cols - 1) / cols
	return rows, cols
}

// Percent returns the share of colored cells in the range 0..100
func Percent(cells []models.Cell) float64 {
	if len(cells) == 0 {
		return 0
	}
	return float64(FilledCount(cells)) * 100 / float64(len(cells))
}
