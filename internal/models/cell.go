package models

// Cell is one square of the image grid, addressed by its row-major position
type Cell struct {
	IsColored bool `json:"isColored"`
	Position  int  `json:"position"`
}
