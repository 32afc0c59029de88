package state

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"splitup/internal/grid"
	"splitup/internal/logging"
	"splitup/internal/models"
)

func newController() *Controller {
	return NewController(rand.New(rand.NewSource(1)), logging.Nop())
}

func TestController_AddGoalRebuildsGrid(t *testing.T) {
	c := newController()
	var kinds []EventKind
	c.Subscribe(func(ev Event) { kinds = append(kinds, ev.Kind) })

	_, err := c.AddGoal("books", "30", models.UnitPieces)
	require.NoError(t, err)
	g, err := c.AddGoal("savings", "20000", models.UnitDollar)
	require.NoError(t, err)

	assert.Equal(t, 10, g.Scale)
	assert.Len(t, c.Session().Cells, 30+2000)
	assert.Equal(t, []EventKind{EventGoalsChanged, EventGoalsChanged}, kinds)
}

func TestController_AddGoalValidates(t *testing.T) {
	c := newController()

	_, err := c.AddGoal("   ", "10", models.UnitPieces)
	assert.True(t, errors.Is(err, models.ErrEmptyGoalText))

	_, err = c.AddGoal("run", "10", models.GoalUnit("furlong"))
	assert.True(t, errors.Is(err, models.ErrUnknownUnit))
	assert.Empty(t, c.Session().Goals)
}

func TestController_RejectsOversizedTotals(t *testing.T) {
	c := newController()

	_, err := c.AddGoal("big", "1000000000000000", models.UnitDollar)
	assert.True(t, errors.Is(err, models.ErrInvalidAmount))
	assert.Empty(t, c.Session().Goals)

	g, err := c.AddGoal("small", "10", models.UnitDollar)
	require.NoError(t, err)
	_, err = c.UpdateGoal(g.ID, "small", "5000000000", models.UnitDollar)
	assert.True(t, errors.Is(err, models.ErrInvalidAmount))
	assert.Equal(t, "10", c.Session().Goals[0].TotalNumber)
	assert.Len(t, c.Session().Cells, 10)
}

func TestController_LoadOversizedStoredGoal(t *testing.T) {
	c := newController()
	stored := models.NewGoal("legacy", "1000000000000000", models.UnitDollar)
	stored.Scale = 1
	c.Load(models.Project{ID: "p1", ImageData: []byte{1}, Goals: []models.Goal{stored}})

	_, err := c.RecordProgress(stored.ID, "1000000000000000")
	require.NoError(t, err)
	assert.Empty(t, c.Session().Cells)
	assert.Zero(t, c.Session().Goals[0].Total())
	assert.Equal(t, 1, c.Session().Goals[0].Scale)
}

func TestController_RecordProgress(t *testing.T) {
	c := newController()
	g, err := c.AddGoal("pages", "100", models.UnitPieces)
	require.NoError(t, err)

	var last Event
	c.Subscribe(func(ev Event) { last = ev })

	colored, err := c.RecordProgress(g.ID, "25")
	require.NoError(t, err)
	assert.Equal(t, 25, colored)
	assert.Equal(t, EventProgress, last.Kind)
	assert.Equal(t, 25, last.Colored)
	assert.Equal(t, 25, c.Session().FilledCount())
	assert.Equal(t, "75", c.Session().Goals[0].RemainingNumber)
}

func TestController_RecordProgressRejectsBadText(t *testing.T) {
	c := newController()
	g, err := c.AddGoal("pages", "100", models.UnitPieces)
	require.NoError(t, err)

	for _, text := range []string{"", "lots", "-3", "101"} {
		_, err := c.RecordProgress(g.ID, text)
		assert.True(t, errors.Is(err, models.ErrInvalidAmount), "text %q", text)
	}
	assert.Zero(t, c.Session().FilledCount())
}

func TestController_CompleteGoal(t *testing.T) {
	c := newController()
	a, err := c.AddGoal("a", "10", models.UnitPieces)
	require.NoError(t, err)
	_, err = c.AddGoal("b", "10", models.UnitPieces)
	require.NoError(t, err)

	colored, err := c.CompleteGoal(a.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, colored)
	assert.True(t, c.Session().Goals[0].IsCompleted)
	assert.False(t, c.Session().Goals[1].IsCompleted)
}

func TestController_UpdateGoalResetsRemainingAndKeepsColored(t *testing.T) {
	c := newController()
	g, err := c.AddGoal("km", "50", models.UnitMeters)
	require.NoError(t, err)
	_, err = c.RecordProgress(g.ID, "10")
	require.NoError(t, err)

	before := grid.Clone(c.Session().Cells)

	updated, err := c.UpdateGoal(g.ID, "km run", "80", models.UnitMeters)
	require.NoError(t, err)
	assert.Equal(t, g.ID, updated.ID)
	assert.Equal(t, 80, updated.Remaining())
	assert.Len(t, c.Session().Cells, 80)

	for _, cell := range before {
		if cell.IsColored {
			assert.True(t, c.Session().Cells[cell.Position].IsColored)
		}
	}
}

func TestController_DeleteGoal(t *testing.T) {
	c := newController()
	a, err := c.AddGoal("a", "5", models.UnitPieces)
	require.NoError(t, err)
	_, err = c.AddGoal("b", "7", models.UnitPieces)
	require.NoError(t, err)

	require.NoError(t, c.DeleteGoal(a.ID))
	assert.Len(t, c.Session().Goals, 1)
	assert.Len(t, c.Session().Cells, 7)
	assert.True(t, errors.Is(c.DeleteGoal(a.ID), models.ErrGoalNotFound))
}

func TestController_SnapshotAndLoad(t *testing.T) {
	c := newController()
	c.SetImage([]byte("img"), []byte("thumb"))
	g, err := c.AddGoal("trip", "40", models.UnitEuro)
	require.NoError(t, err)
	c.SetShowGrid(true)
	_, err = c.RecordProgress(g.ID, "20")
	require.NoError(t, err)

	p := c.Snapshot()
	assert.Equal(t, "trip", p.ProjectName, "name falls back to the first goal")
	assert.Equal(t, 20, p.FilledCount())

	p.ID = "saved-id"
	other := newController()
	other.Load(p)
	s := other.Session()
	assert.Equal(t, "saved-id", s.ProjectID)
	assert.True(t, s.ShowGrid)
	assert.Equal(t, 20, s.FilledCount())
	assert.Equal(t, []byte("img"), s.Image)
}

func TestController_SnapshotUntitled(t *testing.T) {
	assert.Equal(t, "Untitled", newController().Snapshot().ProjectName)
}

func TestController_ResetClearsColoredCells(t *testing.T) {
	c := newController()
	g, err := c.AddGoal("x", "4", models.UnitPieces)
	require.NoError(t, err)
	_, err = c.CompleteGoal(g.ID)
	require.NoError(t, err)

	c.Reset()
	assert.Empty(t, c.Session().Cells)
	assert.Empty(t, c.Session().Goals)
}

func TestController_Unsubscribe(t *testing.T) {
	c := newController()
	calls := 0
	cancel := c.Subscribe(func(Event) { calls++ })

	c.SetName("one")
	cancel()
	c.SetName("two")
	assert.Equal(t, 1, calls)
}

func TestController_GoalAt(t *testing.T) {
	c := newController()
	g, err := c.AddGoal("first", "3", models.UnitHours)
	require.NoError(t, err)

	got, err := c.GoalAt(1)
	require.NoError(t, err)
	assert.Equal(t, g.ID, got.ID)

	_, err = c.GoalAt(2)
	assert.True(t, errors.Is(err, models.ErrGoalNotFound))
}

func TestController_RestartKeepsGoals(t *testing.T) {
	c := newController()
	g, err := c.AddGoal("x", "30", models.UnitPieces)
	require.NoError(t, err)
	_, err = c.RecordProgress(g.ID, "12")
	require.NoError(t, err)

	c.Restart()
	s := c.Session()
	require.Len(t, s.Goals, 1)
	assert.Equal(t, 30, s.Goals[0].Remaining())
	assert.False(t, s.Goals[0].IsCompleted)
	assert.Len(t, s.Cells, 30)
	assert.Zero(t, s.FilledCount())
}
