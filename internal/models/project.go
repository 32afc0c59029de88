package models

import (
	"time"
)

// Project is a saved editing session: one image, its goals and the grid state
type Project struct {
	ID            string     `json:"id"`
	ImageData     []byte     `json:"imageData"`
	ThumbnailData []byte     `json:"thumbnailData,omitempty"`
	ProjectName   string     `json:"projectName"`
	Goals         []Goal     `json:"goals"`
	Cells         []Cell     `json:"cells"`
	ShowGrid      bool       `json:"showGrid"`
	Deadline      *time.Time `json:"deadline,omitempty"`
	UpdatedAt     time.Time  `json:"updatedAt,omitempty"`
}

// FilledCount returns the number of colored cells
func (p *Project) FilledCount() int {
	n := 0
	for _, c := range p.Cells {
		if c.IsColored {
			n++
		}
	}
	return n
}

// Percent returns the share of colored cells in the range 0..100
func (p *Project) Percent() float64 {
	if len(p.Cells) == 0 {
		return 0
	}
	return float64(p.FilledCount()) * 100 / float64(len(p.Cells))
}

// Overdue reports whether the deadline has passed with cells still uncolored
func (p *Project) Overdue(now time.Time) bool {
	if p.Deadline == nil {
		return false
	}
	return now.After(*p.Deadline) && p.FilledCount() < len(p.Cells)
}
