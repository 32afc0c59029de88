// Package state owns the editing session: the image, its goals and the grid.
// All changes go through a Controller, which applies grid operations and
// notifies subscribers after each one.
package state

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"go.uber.org/zap"

	"splitup/internal/grid"
	"splitup/internal/models"
)

// EventKind names the change that produced a notification
type EventKind string

const (
	EventGoalsChanged EventKind = "goals_changed"
	EventGridToggled  EventKind = "grid_toggled"
	EventProgress     EventKind = "progress"
	EventImageChanged EventKind = "image_changed"
	EventMetaChanged  EventKind = "meta_changed"
	EventLoaded       EventKind = "loaded"
	EventReset        EventKind = "reset"
)

// Event is delivered to listeners after the session has changed
type Event struct {
	Kind    EventKind
	Session *Session
	// Colored is the number of cells colored by a progress event
	Colored int
}

// Listener receives change notifications
type Listener func(Event)

// Session is the state of one editing session
type Session struct {
	ProjectID string
	Name      string
	Image     []byte
	Thumbnail []byte
	Goals     []models.Goal
	Cells     []models.Cell
	ShowGrid  bool
	Deadline  *time.Time
}

// FilledCount returns the number of colored cells
func (s *Session) FilledCount() int {
	return grid.FilledCount(s.Cells)
}

// Controller applies user actions to a Session. It is not safe for concurrent use.
type Controller struct {
	session   Session
	rng       *rand.Rand
	log       *zap.Logger
	listeners []Listener
}

// NewController creates a controller with an empty session
func NewController(rng *rand.Rand, log *zap.Logger) *Controller {
	return &Controller{rng: rng, log: log}
}

// Session returns the current session. Callers must not modify it.
func (c *Controller) Session() *Session {
	return &c.session
}

// Subscribe registers l for change notifications and returns a function that removes it
func (c *Controller) Subscribe(l Listener) func() {
	c.listeners = append(c.listeners, l)
	idx := len(c.listeners) - 1
	return func() {
		c.listeners[idx] = nil
	}
}

func (c *Controller) notify(kind EventKind, colored int) {
	ev := Event{Kind: kind, Session: &c.session, Colored: colored}
	for _, l := range c.listeners {
		if l != nil {
			l(ev)
		}
	}
}

// rebuild regenerates the cell array after the goal set changed
func (c *Controller) rebuild() {
	c.session.Cells = grid.Rebuild(c.session.Goals, c.session.Cells)
	c.log.Debug("grid rebuilt",
		zap.Int("cells", len(c.session.Cells)),
		zap.Int("colored", c.session.FilledCount()),
	)
}

// AddGoal appends a new goal and rebuilds the grid
func (c *Controller) AddGoal(text, amount string, unit models.GoalUnit) (models.Goal, error) {
	if strings.TrimSpace(text) == "" {
		return models.Goal{}, models.ErrEmptyGoalText
	}
	if !unit.Valid() {
		return models.Goal{}, fmt.Errorf("%w: %q", models.ErrUnknownUnit, unit)
	}
	if err := models.CheckAmount(amount); err != nil {
		return models.Goal{}, err
	}

	g := grid.NormalizeGoal(models.NewGoal(text, amount, unit))
	c.session.Goals = append(c.session.Goals, g)
	c.rebuild()
	c.notify(EventGoalsChanged, 0)
	return g, nil
}

// UpdateGoal replaces a goal's text, total and unit. The remaining amount is
// reset to the new total.
func (c *Controller) UpdateGoal(id, text, amount string, unit models.GoalUnit) (models.Goal, error) {
	i, err := c.goalIndex(id)
	if err != nil {
		return models.Goal{}, err
	}
	if strings.TrimSpace(text) == "" {
		return models.Goal{}, models.ErrEmptyGoalText
	}
	if !unit.Valid() {
		return models.Goal{}, fmt.Errorf("%w: %q", models.ErrUnknownUnit, unit)
	}
	if err := models.CheckAmount(amount); err != nil {
		return models.Goal{}, err
	}

	g := models.NewGoal(text, amount, unit)
	g.ID = c.session.Goals[i].ID
	g = grid.NormalizeGoal(g)

	c.session.Goals[i] = g
	c.rebuild()
	c.notify(EventGoalsChanged, 0)
	return g, nil
}

// DeleteGoal removes a goal and rebuilds the grid
func (c *Controller) DeleteGoal(id string) error {
	i, err := c.goalIndex(id)
	if err != nil {
		return err
	}
	c.session.Goals = append(c.session.Goals[:i], c.session.Goals[i+1:]...)
	c.rebuild()
	c.notify(EventGoalsChanged, 0)
	return nil
}

// SetShowGrid toggles grid visibility and rebuilds the grid
func (c *Controller) SetShowGrid(show bool) {
	c.session.ShowGrid = show
	c.rebuild()
	c.notify(EventGridToggled, 0)
}

// RecordProgress credits a free-text amount to a goal.
// Text that is not a positive integer yields ErrInvalidAmount.
func (c *Controller) RecordProgress(goalID, amountText string) (int, error) {
	return c.apply(goalID, func(g models.Goal) ([]models.Cell, models.Goal, int, error) {
		return grid.ApplyProgress(g, models.ParseAmount(amountText), c.session.Cells, c.rng)
	})
}

// CompleteGoal credits everything that remains on a goal
func (c *Controller) CompleteGoal(goalID string) (int, error) {
	return c.apply(goalID, func(g models.Goal) ([]models.Cell, models.Goal, int, error) {
		return grid.MarkGoalComplete(g, c.session.Cells, c.rng)
	})
}

func (c *Controller) apply(goalID string, op func(models.Goal) ([]models.Cell, models.Goal, int, error)) (int, error) {
	i, err := c.goalIndex(goalID)
	if err != nil {
		return 0, err
	}
	if len(c.session.Cells) != grid.TotalCells(c.session.Goals) {
		c.rebuild()
	}

	cells, g, colored, err := op(c.session.Goals[i])
	if err != nil {
		return 0, err
	}

	c.session.Cells = cells
	c.session.Goals[i] = g
	c.log.Info("progress recorded",
		zap.String("goal", g.Text),
		zap.String("remaining", g.RemainingNumber),
		zap.Int("colored", colored),
		zap.Bool("completed", g.IsCompleted),
	)
	c.notify(EventProgress, colored)
	return colored, nil
}

// SetImage sets the full image and its thumbnail
func (c *Controller) SetImage(full, thumb []byte) {
	c.session.Image = full
	c.session.Thumbnail = thumb
	c.notify(EventImageChanged, 0)
}

// SetName sets the project name
func (c *Controller) SetName(name string) {
	c.session.Name = strings.TrimSpace(name)
	c.notify(EventMetaChanged, 0)
}

// SetDeadline sets or clears the deadline
func (c *Controller) SetDeadline(deadline *time.Time) {
	c.session.Deadline = deadline
	c.notify(EventMetaChanged, 0)
}

// Load replaces the session with a saved project
func (c *Controller) Load(p models.Project) {
	goals := make([]models.Goal, len(p.Goals))
	for i, g := range p.Goals {
		goals[i] = grid.NormalizeGoal(g)
	}
	c.session = Session{
		ProjectID: p.ID,
		Name:      p.ProjectName,
		Image:     p.ImageData,
		Thumbnail: p.ThumbnailData,
		Goals:     goals,
		Cells:     grid.Clone(p.Cells),
		ShowGrid:  p.ShowGrid,
		Deadline:  p.Deadline,
	}
	c.notify(EventLoaded, 0)
}

// Snapshot converts the session into a project ready to be saved.
// An empty name falls back to the first goal's text, then "Untitled".
func (c *Controller) Snapshot() models.Project {
	name := c.session.Name
	if name == "" && len(c.session.Goals) > 0 {
		name = c.session.Goals[0].Text
	}
	if name == "" {
		name = "Untitled"
	}

	goals := make([]models.Goal, len(c.session.Goals))
	copy(goals, c.session.Goals)

	return models.Project{
		ID:            c.session.ProjectID,
		ImageData:     c.session.Image,
		ThumbnailData: c.session.Thumbnail,
		ProjectName:   name,
		Goals:         goals,
		Cells:         grid.Clone(c.session.Cells),
		ShowGrid:      c.session.ShowGrid,
		Deadline:      c.session.Deadline,
	}
}

// Saved records the id assigned to the session's project by the store
func (c *Controller) Saved(p models.Project) {
	c.session.ProjectID = p.ID
	c.session.Name = p.ProjectName
	c.notify(EventMetaChanged, 0)
}

// Restart keeps the goals but restores their full remaining amounts and
// reinitializes the grid with no colored cells
func (c *Controller) Restart() {
	for i, g := range c.session.Goals {
		g.RemainingNumber = g.TotalNumber
		c.session.Goals[i] = grid.NormalizeGoal(g)
	}
	c.session.Cells = grid.Rebuild(c.session.Goals, nil)
	c.notify(EventReset, 0)
}

// Reset clears the session, including every colored cell
func (c *Controller) Reset() {
	c.session = Session{}
	c.notify(EventReset, 0)
}

// GoalAt returns the goal at a 1-based position, as shown in listings
func (c *Controller) GoalAt(n int) (models.Goal, error) {
	if n < 1 || n > len(c.session.Goals) {
		return models.Goal{}, fmt.Errorf("%w: #%d", models.ErrGoalNotFound, n)
	}
	return c.session.Goals[n-1], nil
}

func (c *Controller) goalIndex(id string) (int, error) {
	for i, g := range c.session.Goals {
		if g.ID == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %s", models.ErrGoalNotFound, id)
}
