package models

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Goal is a numeric target whose progress reveals part of the image grid.
// Amounts are kept as strings because they come straight from free-text entry.
type Goal struct {
	ID              string   `json:"id"`
	Text            string   `json:"text"`
	TotalNumber     string   `json:"totalNumber"`
	RemainingNumber string   `json:"remainingNumber"`
	IsCompleted     bool     `json:"isCompleted"`
	Unit            GoalUnit `json:"unit"`
	Scale           int      `json:"scale"`
}

// NewGoal creates a goal with its remaining amount set to the total.
// Scale is left at zero; callers derive it from the total.
func NewGoal(text, amount string, unit GoalUnit) Goal {
	amount = strings.TrimSpace(amount)
	return Goal{
		ID:              uuid.NewString(),
		Text:            strings.TrimSpace(text),
		TotalNumber:     amount,
		RemainingNumber: amount,
		Unit:            unit,
	}
}

// Total returns the parsed total amount
func (g Goal) Total() int {
	return ParseAmount(g.TotalNumber)
}

// Remaining returns the parsed remaining amount
func (g Goal) Remaining() int {
	return ParseAmount(g.RemainingNumber)
}

// Credited returns how much of the total has been completed
func (g Goal) Credited() int {
	done := g.Total() - g.Remaining()
	if done < 0 {
		return 0
	}
	return done
}

// Progress formats the goal as "done/total unit"
func (g Goal) Progress() string {
	return fmt.Sprintf("%d/%d%s", g.Credited(), g.Total(), g.Unit)
}

// MaxAmount is the largest total or progress amount a goal accepts.
// At the top scale tier it maps to 100 000 cells.
const MaxAmount = 1_000_000_000

// ParseAmount converts free-text numeric input to an integer.
// Anything that is not an integer in [0, MaxAmount] counts as zero.
func ParseAmount(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 || n > MaxAmount {
		return 0
	}
	return n
}

// CheckAmount rejects text that is a whole number above MaxAmount.
// Other text passes; ParseAmount counts it as zero.
func CheckAmount(s string) error {
	digits := strings.TrimPrefix(strings.TrimSpace(s), "+")
	if digits == "" || strings.Trim(digits, "0123456789") != "" {
		return nil
	}
	if n, err := strconv.Atoi(digits); err != nil || n > MaxAmount {
		return fmt.Errorf("%w: %s exceeds %d", ErrInvalidAmount, s, MaxAmount)
	}
	return nil
}

// FormatAmount is the inverse of ParseAmount for stored amounts
func FormatAmount(n int) string {
	return strconv.Itoa(n)
}
