package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"splitup/internal/grid"
	"splitup/internal/models"
)

// GoalItem represents a goal in the list
type GoalItem struct {
	Goal models.Goal
}

// FilterValue returns the filter value for the goal item
func (i GoalItem) FilterValue() string {
	return i.Goal.Text
}

// Title returns the title for the goal item
func (i GoalItem) Title() string {
	if i.Goal.IsCompleted {
		return "✓ " + i.Goal.Text
	}
	return i.Goal.Text
}

// Description returns the description for the goal item
func (i GoalItem) Description() string {
	status := "In progress"
	if i.Goal.IsCompleted {
		status = "Completed"
	}
	return fmt.Sprintf("%s - %s, %d cells", status, i.Goal.Progress(), grid.CellCount(i.Goal))
}

// GoalListModel represents the goal list model
type GoalListModel struct {
	List  list.Model
	Goals []models.Goal
}

// NewGoalListModel creates a new goal list model
func NewGoalListModel(width, height int) GoalListModel {
	listModel := list.New([]list.Item{}, list.NewDefaultDelegate(), width, height)
	listModel.Title = "Goals"
	listModel.SetShowStatusBar(false)
	listModel.SetShowHelp(false)
	listModel.SetFilteringEnabled(false)
	listModel.Styles.Title = lipgloss.NewStyle().
		Foreground(lipgloss.Color("39")).
		Bold(true).
		MarginLeft(2)

	return GoalListModel{
		List:  listModel,
		Goals: []models.Goal{},
	}
}

// SetGoals replaces the goals in the list, keeping the cursor where it was
// when that position still exists
func (m *GoalListModel) SetGoals(goals []models.Goal) {
	m.Goals = goals

	items := make([]list.Item, len(goals))
	for i, g := range goals {
		items[i] = GoalItem{Goal: g}
	}

	cursor := m.List.Index()
	m.List.SetItems(items)
	if cursor >= len(items) {
		cursor = len(items) - 1
	}
	if cursor >= 0 {
		m.List.Select(cursor)
	}
}

// Selected returns the goal under the cursor
func (m GoalListModel) Selected() (models.Goal, bool) {
	i := m.List.Index()
	if i < 0 || i >= len(m.Goals) {
		return models.Goal{}, false
	}
	return m.Goals[i], true
}

// SetSize resizes the list
func (m *GoalListModel) SetSize(width, height int) {
	m.List.SetSize(width, height)
}

// Update handles goal list updates
func (m GoalListModel) Update(msg tea.Msg) (GoalListModel, tea.Cmd) {
	var cmd tea.Cmd
	m.List, cmd = m.List.Update(msg)
	return m, cmd
}

// View renders the goal list
func (m GoalListModel) View() string {
	return m.List.View()
}
