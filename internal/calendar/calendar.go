// Package calendar filters and builds the notebook's calendar events.
package calendar

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"splitup/internal/models"
)

// Layouts accepted on the command line
const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// SameDay reports whether a and b fall on the same calendar day in loc
func SameDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

// ForDay returns the events on day's calendar date, ordered by time of day
func ForDay(events []models.CalendarEvent, day time.Time) []models.CalendarEvent {
	loc := day.Location()
	out := make([]models.CalendarEvent, 0)
	for _, e := range events {
		if SameDay(e.Date, day, loc) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return minuteOfDay(out[i].Time.In(loc)) < minuteOfDay(out[j].Time.In(loc))
	})
	return out
}

// Upcoming returns at most n events starting at or after from, soonest first.
// n <= 0 means no limit.
func Upcoming(events []models.CalendarEvent, from time.Time, n int) []models.CalendarEvent {
	out := make([]models.CalendarEvent, 0)
	for _, e := range events {
		if !Start(e, from.Location()).Before(from) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return Start(out[i], from.Location()).Before(Start(out[j], from.Location()))
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// Start combines an event's date with its time of day
func Start(e models.CalendarEvent, loc *time.Location) time.Time {
	y, m, d := e.Date.In(loc).Date()
	clock := e.Time.In(loc)
	return time.Date(y, m, d, clock.Hour(), clock.Minute(), 0, 0, loc)
}

// NewEvent validates input and builds an event. The id is assigned when stored.
func NewEvent(title string, date, clock time.Time, notes string) (models.CalendarEvent, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.CalendarEvent{}, models.ErrEmptyTitle
	}
	return models.CalendarEvent{
		Title: title,
		Date:  date,
		Time:  clock,
		Notes: strings.TrimSpace(notes),
	}, nil
}

// ParseDate parses YYYY-MM-DD in loc. "today" and "tomorrow" are accepted.
func ParseDate(s string, now time.Time, loc *time.Location) (time.Time, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		y, m, d := now.In(loc).Date()
		return time.Date(y, m, d, 0, 0, 0, 0, loc), nil
	case "tomorrow":
		y, m, d := now.In(loc).AddDate(0, 0, 1).Date()
		return time.Date(y, m, d, 0, 0, 0, 0, loc), nil
	}
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want %s)", s, DateLayout)
	}
	return t, nil
}

// ParseClock parses HH:MM on the given date
func ParseClock(s string, date time.Time) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return date, nil
	}
	t, err := time.Parse(ClockLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q (want %s)", s, ClockLayout)
	}
	y, m, d := date.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, date.Location()), nil
}

func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
