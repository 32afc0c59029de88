package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"splitup/internal/grid"
	"splitup/internal/models"
	"splitup/internal/state"
	"splitup/internal/ui/components"
)

// SaveFunc stores a project snapshot and returns it as saved.
// It runs off the update loop, so it must not touch the controller.
type SaveFunc func(ctx context.Context, p models.Project) (models.Project, error)

// changeLog collects controller notifications between two updates
type changeLog struct {
	events []state.Event
}

// Model represents the UI model
type Model struct {
	Viewport      viewport.Model
	Spinner       spinner.Model
	Goals         components.GoalListModel
	Input         textinput.Model
	Entering      bool
	IsLoading     bool
	StatusMessage string
	ErrorMessage  string
	Width         int
	Height        int
	Ready         bool

	ctx        context.Context
	controller *state.Controller
	save       SaveFunc
	changes    *changeLog
}

// NewModel creates a new UI model over a controller. ctx bounds in-flight saves.
func NewModel(ctx context.Context, c *state.Controller, save SaveFunc) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	input := textinput.New()
	input.Placeholder = "amount"
	input.CharLimit = 12
	input.Width = 14

	changes := &changeLog{}
	c.Subscribe(func(ev state.Event) {
		changes.events = append(changes.events, ev)
	})

	m := Model{
		Spinner:       s,
		Goals:         components.NewGoalListModel(40, 10),
		Input:         input,
		StatusMessage: "Ready",
		ctx:           ctx,
		controller:    c,
		save:          save,
		changes:       changes,
	}
	m.Goals.SetGoals(c.Session().Goals)
	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return m.Spinner.Tick
}

// Update handles UI updates
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.Entering {
			return m.updateInput(msg)
		}
		return m.updateKeys(msg)

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

		gridWidth := msg.Width / 2
		if !m.Ready {
			// First time initializing
			m.Viewport = viewport.New(gridWidth, msg.Height-6)
			m.Viewport.YPosition = 3
			m.Ready = true
		} else {
			m.Viewport.Width = gridWidth
			m.Viewport.Height = msg.Height - 6
		}
		m.Goals.SetSize(msg.Width-gridWidth, msg.Height-6)
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		var spinnerCmd tea.Cmd
		m.Spinner, spinnerCmd = m.Spinner.Update(msg)
		cmds = append(cmds, spinnerCmd)

	case savedMsg:
		m.IsLoading = false
		m.ErrorMessage = ""
		m.controller.Saved(models.Project(msg))
		m.changes.events = m.changes.events[:0]
		m.StatusMessage = fmt.Sprintf("Saved %q", msg.ProjectName)
		return m, nil

	case errorMsg:
		m.IsLoading = false
		m.ErrorMessage = string(msg)
		m.StatusMessage = "Error"
		return m, nil
	}

	if m.Ready {
		var viewportCmd tea.Cmd
		m.Viewport, viewportCmd = m.Viewport.Update(msg)
		cmds = append(cmds, viewportCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "up", "down", "k", "j":
		var cmd tea.Cmd
		m.Goals, cmd = m.Goals.Update(msg)
		return m, cmd

	case "enter", "p":
		if _, ok := m.Goals.Selected(); !ok {
			m.ErrorMessage = "No goal selected"
			return m, nil
		}
		m.Entering = true
		m.ErrorMessage = ""
		m.Input.SetValue("")
		return m, m.Input.Focus()

	case "c":
		g, ok := m.Goals.Selected()
		if !ok {
			m.ErrorMessage = "No goal selected"
			return m, nil
		}
		_, err := m.controller.CompleteGoal(g.ID)
		m.afterAction(err)
		return m, nil

	case "g":
		m.controller.SetShowGrid(!m.controller.Session().ShowGrid)
		m.afterAction(nil)
		return m, nil

	case "s":
		if m.save == nil {
			return m, nil
		}
		m.IsLoading = true
		m.StatusMessage = "Saving..."
		return m, tea.Batch(m.Spinner.Tick, saveProject(m.ctx, m.save, m.controller.Snapshot()))
	}

	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.Entering = false
		m.Input.Blur()
		return m, nil

	case tea.KeyEnter:
		m.Entering = false
		m.Input.Blur()
		g, ok := m.Goals.Selected()
		if !ok {
			return m, nil
		}
		_, err := m.controller.RecordProgress(g.ID, m.Input.Value())
		m.afterAction(err)
		return m, nil
	}

	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	return m, cmd
}

// afterAction reports the outcome of a controller call and redraws
func (m *Model) afterAction(err error) {
	if err != nil {
		if errors.Is(err, models.ErrInvalidAmount) {
			m.ErrorMessage = "Enter a whole number no larger than what remains"
		} else {
			m.ErrorMessage = err.Error()
		}
	} else {
		m.ErrorMessage = ""
	}

	for _, ev := range m.changes.events {
		switch ev.Kind {
		case state.EventProgress:
			m.StatusMessage = fmt.Sprintf("Colored %d cells", ev.Colored)
		case state.EventGridToggled:
			if ev.Session.ShowGrid {
				m.StatusMessage = "Grid lines on"
			} else {
				m.StatusMessage = "Grid lines off"
			}
		}
	}
	m.changes.events = m.changes.events[:0]
	m.refresh()
}

func (m *Model) refresh() {
	s := m.controller.Session()
	m.Goals.SetGoals(s.Goals)
	if m.Ready {
		m.Viewport.SetContent(RenderGrid(s.Cells))
	}
}

// View renders the UI
func (m Model) View() string {
	if !m.Ready {
		return "Initializing..."
	}

	s := m.controller.Session()

	var status string
	if m.IsLoading {
		status = fmt.Sprintf("%s %s", m.Spinner.View(), m.StatusMessage)
	} else {
		status = m.StatusMessage
	}

	statusBar := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Padding(0, 1).
		Render(status)

	name := s.Name
	if name == "" {
		name = "Untitled"
	}
	titleBar := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		Padding(0, 1).
		Render(fmt.Sprintf("SplitUp - %s  %d/%d cells (%.0f%%)",
			name, s.FilledCount(), len(s.Cells), grid.Percent(s.Cells)))

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.Viewport.View(), m.Goals.View())

	inputView := ""
	if m.Entering {
		inputView = lipgloss.NewStyle().
			Padding(0, 1).
			Render("Completed: " + m.Input.View())
	}

	errorView := ""
	if m.ErrorMessage != "" {
		errorView = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")).
			Padding(0, 1).
			Render(m.ErrorMessage)
	}

	help := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Padding(0, 1).
		Render("↑/↓ select, enter record progress, c complete, g grid lines, s save, q quit")

	return lipgloss.JoinVertical(
		lipgloss.Left,
		titleBar,
		statusBar,
		body,
		inputView,
		errorView,
		help,
	)
}

// Messages
type savedMsg models.Project
type errorMsg string

// Commands
func saveProject(ctx context.Context, save SaveFunc, p models.Project) tea.Cmd {
	return func() tea.Msg {
		p, err := save(ctx, p)
		if err != nil {
			return errorMsg(fmt.Sprintf("Error saving project: %v", err))
		}
		return savedMsg(p)
	}
}
