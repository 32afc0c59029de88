package calendar

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"splitup/internal/models"
)

func event(title string, day, hour int) models.CalendarEvent {
	date := time.Date(2025, 2, day, 0, 0, 0, 0, time.UTC)
	return models.CalendarEvent{
		ID:    title,
		Title: title,
		Date:  date,
		Time:  date.Add(time.Duration(hour) * time.Hour),
	}
}

func titles(events []models.CalendarEvent) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.Title
	}
	return out
}

func TestForDay(t *testing.T) {
	events := []models.CalendarEvent{
		event("gym", 11, 18),
		event("standup", 11, 9),
		event("dentist", 12, 10),
	}

	day := time.Date(2025, 2, 11, 15, 30, 0, 0, time.UTC)
	assert.Equal(t, []string{"standup", "gym"}, titles(ForDay(events, day)))

	empty := ForDay(events, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestUpcoming(t *testing.T) {
	events := []models.CalendarEvent{
		event("c", 14, 8),
		event("past", 10, 8),
		event("a", 11, 12),
		event("b", 12, 8),
	}
	from := time.Date(2025, 2, 11, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, []string{"a", "b", "c"}, titles(Upcoming(events, from, 0)))
	assert.Equal(t, []string{"a", "b"}, titles(Upcoming(events, from, 2)))
}

func TestNewEvent(t *testing.T) {
	_, err := NewEvent("  ", time.Now(), time.Now(), "")
	assert.True(t, errors.Is(err, models.ErrEmptyTitle))

	e, err := NewEvent(" Pay rent ", time.Now(), time.Now(), " note ")
	require.NoError(t, err)
	assert.Equal(t, "Pay rent", e.Title)
	assert.Equal(t, "note", e.Notes)
}

func TestParseDateAndClock(t *testing.T) {
	now := time.Date(2025, 2, 11, 22, 0, 0, 0, time.UTC)

	d, err := ParseDate("2025-03-04", now, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC), d)

	d, err = ParseDate("tomorrow", now, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, 12, d.Day())

	_, err = ParseDate("04/03/2025", now, time.UTC)
	assert.Error(t, err)

	clock, err := ParseClock("07:45", d)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 2, 12, 7, 45, 0, 0, time.UTC), clock)

	_, err = ParseClock("25:00", d)
	assert.Error(t, err)
}
