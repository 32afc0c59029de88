package report

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"splitup/internal/models"
)

// GoalSpec is the file form of a goal: what the user would type to create it
type GoalSpec struct {
	Text      string `yaml:"text"`
	Amount    int    `yaml:"amount"`
	Unit      string `yaml:"unit"`
	Remaining *int   `yaml:"remaining,omitempty"`
}

type goalFile struct {
	Goals []GoalSpec `yaml:"goals"`
}

// ExportGoals renders goals as YAML
func ExportGoals(goals []models.Goal) ([]byte, error) {
	file := goalFile{Goals: make([]GoalSpec, 0, len(goals))}
	for _, g := range goals {
		spec := GoalSpec{Text: g.Text, Amount: g.Total(), Unit: string(g.Unit)}
		if rem := g.Remaining(); rem != g.Total() {
			spec.Remaining = &rem
		}
		file.Goals = append(file.Goals, spec)
	}
	return yaml.Marshal(&file)
}

// ImportGoals parses a YAML goal file and validates every unit
func ImportGoals(data []byte) ([]GoalSpec, error) {
	var file goalFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse goals: %w", err)
	}
	for i, spec := range file.Goals {
		unit, err := models.ParseUnit(spec.Unit)
		if err != nil {
			return nil, fmt.Errorf("goal %d (%s): %w", i+1, spec.Text, err)
		}
		file.Goals[i].Unit = string(unit)
	}
	return file.Goals, nil
}
