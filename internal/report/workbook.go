// Package report exports project progress and moves goal sets in and out of files.
package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"splitup/internal/grid"
	"splitup/internal/models"
)

const (
	goalsSheet   = "Goals"
	summarySheet = "Summary"
)

var goalHeader = []interface{}{"Goal", "Unit", "Total", "Remaining", "Done", "Scale", "Cells", "Completed"}

// Workbook builds an xlsx workbook describing the project's goals and grid
func Workbook(p models.Project) (*excelize.File, error) {
	f := excelize.NewFile()

	// NewFile starts with Sheet1; reuse it for goals
	if err := f.SetSheetName("Sheet1", goalsSheet); err != nil {
		return nil, err
	}

	if err := f.SetSheetRow(goalsSheet, "A1", &goalHeader); err != nil {
		return nil, err
	}
	for i, g := range p.Goals {
		row := []interface{}{
			g.Text,
			string(g.Unit),
			g.Total(),
			g.Remaining(),
			g.Credited(),
			g.Scale,
			grid.CellCount(g),
			yesNo(g.IsCompleted),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(goalsSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, err
	}
	rows, cols := grid.Dimensions(len(p.Cells))
	summary := [][]interface{}{
		{"Project", p.ProjectName},
		{"Cells", len(p.Cells)},
		{"Colored", p.FilledCount()},
		{"Percent", fmt.Sprintf("%.1f%%", p.Percent())},
		{"Layout", fmt.Sprintf("%dx%d", rows, cols)},
	}
	if p.Deadline != nil {
		summary = append(summary, []interface{}{"Deadline", p.Deadline.Format("2006-01-02")})
	}
	for i, row := range summary {
		row := row
		if err := f.SetSheetRow(summarySheet, fmt.Sprintf("A%d", i+1), &row); err != nil {
			return nil, err
		}
	}

	return f, nil
}

// WriteWorkbook writes the project's workbook to path
func WriteWorkbook(p models.Project, path string) error {
	f, err := Workbook(p)
	if err != nil {
		return fmt.Errorf("build workbook: %w", err)
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
