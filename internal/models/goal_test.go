package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	cases := map[string]int{
		"":      0,
		"12":    12,
		" 300 ": 300,
		"-4":    0,
		"12.5":  0,
		"five":  0,

		"1000000000":       1_000_000_000,
		"1000000001":       0,
		"1000000000000000": 0,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseAmount(in), "input %q", in)
	}
}

func TestCheckAmount(t *testing.T) {
	for _, ok := range []string{"", "12", "+12", "1000000000", "abc", "-5", "12.5"} {
		assert.NoError(t, CheckAmount(ok), "input %q", ok)
	}
	for _, bad := range []string{"1000000001", " 1000000000000000 ", "99999999999999999999999"} {
		assert.True(t, errors.Is(CheckAmount(bad), ErrInvalidAmount), "input %q", bad)
	}
}

func TestNewGoal(t *testing.T) {
	g := NewGoal("  save money ", "500", UnitDollar)
	require.NotEmpty(t, g.ID)
	assert.Equal(t, "save money", g.Text)
	assert.Equal(t, 500, g.Total())
	assert.Equal(t, 500, g.Remaining())
	assert.Equal(t, "0/500$", g.Progress())
}

func TestGoalCredited(t *testing.T) {
	g := NewGoal("read", "300", UnitPieces)
	g.RemainingNumber = "120"
	assert.Equal(t, 180, g.Credited())

	g.RemainingNumber = "900"
	assert.Equal(t, 0, g.Credited())
}

func TestParseUnit(t *testing.T) {
	u, err := ParseUnit("€")
	require.NoError(t, err)
	assert.Equal(t, UnitEuro, u)

	u, err = ParseUnit("USD")
	require.NoError(t, err)
	assert.Equal(t, UnitDollar, u)

	_, err = ParseUnit("parsec")
	assert.True(t, errors.Is(err, ErrUnknownUnit))
}
