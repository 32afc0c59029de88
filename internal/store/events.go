package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"splitup/internal/models"
)

// EventRepository reads and writes calendar events
type EventRepository struct {
	kv  KV
	log *zap.Logger
}

// NewEventRepository creates a repository over kv
func NewEventRepository(kv KV, log *zap.Logger) *EventRepository {
	return &EventRepository{kv: kv, log: log}
}

// List returns all events ordered by date, then time of day.
// Unreadable stored data yields an empty list.
func (r *EventRepository) List(ctx context.Context) ([]models.CalendarEvent, error) {
	data, err := r.kv.Get(ctx, KeyEvents)
	if errors.Is(err, ErrKeyNotFound) {
		return []models.CalendarEvent{}, nil
	}
	if err != nil {
		return nil, err
	}

	var events []models.CalendarEvent
	if err := json.Unmarshal(data, &events); err != nil {
		r.log.Warn("discarding unreadable calendar events", zap.Error(err))
		return []models.CalendarEvent{}, nil
	}

	sort.SliceStable(events, func(i, j int) bool {
		if !events[i].Date.Equal(events[j].Date) {
			return events[i].Date.Before(events[j].Date)
		}
		return clockOf(events[i]) < clockOf(events[j])
	})
	return events, nil
}

// Add stores a new event, assigning an id if it has none
func (r *EventRepository) Add(ctx context.Context, e models.CalendarEvent) (models.CalendarEvent, error) {
	if strings.TrimSpace(e.Title) == "" {
		return models.CalendarEvent{}, models.ErrEmptyTitle
	}
	events, err := r.List(ctx)
	if err != nil {
		return models.CalendarEvent{}, err
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}

	events = append(events, e)
	if err := r.persist(ctx, events); err != nil {
		return models.CalendarEvent{}, err
	}
	r.log.Info("event added", zap.String("id", e.ID), zap.Time("date", e.Date))
	return e, nil
}

// Update replaces the stored event with the same id
func (r *EventRepository) Update(ctx context.Context, e models.CalendarEvent) error {
	events, err := r.List(ctx)
	if err != nil {
		return err
	}
	for i := range events {
		if strings.EqualFold(events[i].ID, e.ID) {
			events[i] = e
			return r.persist(ctx, events)
		}
	}
	return fmt.Errorf("%w: %s", models.ErrEventNotFound, e.ID)
}

// Delete removes the event with the given id. A unique id prefix is accepted.
func (r *EventRepository) Delete(ctx context.Context, id string) error {
	events, err := r.List(ctx)
	if err != nil {
		return err
	}

	match := -1
	for i, e := range events {
		if strings.EqualFold(e.ID, id) {
			match = i
			break
		}
		if strings.HasPrefix(strings.ToLower(e.ID), strings.ToLower(id)) {
			if match >= 0 {
				return fmt.Errorf("ambiguous event id prefix %q", id)
			}
			match = i
		}
	}
	if match < 0 || id == "" {
		return fmt.Errorf("%w: %s", models.ErrEventNotFound, id)
	}

	removed := events[match]
	events = append(events[:match], events[match+1:]...)
	if err := r.persist(ctx, events); err != nil {
		return err
	}
	r.log.Info("event deleted", zap.String("id", removed.ID))
	return nil
}

func (r *EventRepository) persist(ctx context.Context, events []models.CalendarEvent) error {
	data, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("encode events: %w", err)
	}
	return r.kv.Put(ctx, KeyEvents, data)
}

func clockOf(e models.CalendarEvent) int {
	return e.Time.Hour()*60 + e.Time.Minute()
}
