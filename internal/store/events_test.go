package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"splitup/internal/logging"
	"splitup/internal/models"
)

func newEventRepo(t *testing.T) (*EventRepository, KV) {
	t.Helper()
	kv, err := NewSQLiteKV(t.TempDir() + "/events.db")
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })
	return NewEventRepository(kv, logging.Nop()), kv
}

func at(day, hour int) (time.Time, time.Time) {
	date := time.Date(2025, 3, day, 0, 0, 0, 0, time.UTC)
	clock := time.Date(2000, 1, 1, hour, 0, 0, 0, time.UTC)
	return date, clock
}

func TestEventRepository_AddListOrdered(t *testing.T) {
	repo, _ := newEventRepo(t)
	ctx := context.Background()

	d2, c9 := at(2, 9)
	d1, c18 := at(1, 18)
	_, c7 := at(1, 7)

	_, err := repo.Add(ctx, models.CalendarEvent{Title: "late", Date: d2, Time: c9})
	require.NoError(t, err)
	_, err = repo.Add(ctx, models.CalendarEvent{Title: "evening", Date: d1, Time: c18})
	require.NoError(t, err)
	_, err = repo.Add(ctx, models.CalendarEvent{Title: "morning", Date: d1, Time: c7})
	require.NoError(t, err)

	events, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, []string{"morning", "evening", "late"},
		[]string{events[0].Title, events[1].Title, events[2].Title})
}

func TestEventRepository_AddRequiresTitle(t *testing.T) {
	repo, _ := newEventRepo(t)
	_, err := repo.Add(context.Background(), models.CalendarEvent{Title: "  "})
	assert.True(t, errors.Is(err, models.ErrEmptyTitle))
}

func TestEventRepository_UpdateAndDelete(t *testing.T) {
	repo, _ := newEventRepo(t)
	ctx := context.Background()
	d, c := at(5, 12)

	e, err := repo.Add(ctx, models.CalendarEvent{Title: "lunch", Date: d, Time: c})
	require.NoError(t, err)

	e.Notes = "with team"
	require.NoError(t, repo.Update(ctx, e))

	events, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "with team", events[0].Notes)

	require.NoError(t, repo.Delete(ctx, e.ID[:8]))
	events, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, events)

	assert.True(t, errors.Is(repo.Delete(ctx, e.ID), models.ErrEventNotFound))
	assert.True(t, errors.Is(repo.Update(ctx, e), models.ErrEventNotFound))
}

func TestEventRepository_CorruptDataIsDiscarded(t *testing.T) {
	repo, kv := newEventRepo(t)
	ctx := context.Background()
	require.NoError(t, kv.Put(ctx, KeyEvents, []byte(`[{"id":1}`)))

	events, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, events)
}
