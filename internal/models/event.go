package models

import (
	"time"
)

// CalendarEvent is a note pinned to a day and a time of day
type CalendarEvent struct {
	ID    string    `json:"id"`
	Title string    `json:"title"`
	Date  time.Time `json:"date"`
	Time  time.Time `json:"time"`
	Notes string    `json:"notes"`
}
