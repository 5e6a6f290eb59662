package services

import (
	"context"
	"fmt"
	"time"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase"
	"github.com/redis/go-redis/v9"

	"ticket-booking/internal/status"
	"ticket-booking/models"
)

// EventService answers capacity questions. The reserved-seat count is cached
// in Redis with a short TTL; it is advisory only, the database sum stays the
// source of truth and concurrent bookings can still overbook (surfaced to the
// admin workflow, not prevented here).
type EventService struct {
	app   *pocketbase.PocketBase
	Redis *redis.Client
	ttl   time.Duration
}

func NewEventService(app *pocketbase.PocketBase, redisClient *redis.Client, cacheTTL time.Duration) *EventService {
	return &EventService{
		app:   app,
		Redis: redisClient,
		ttl:   cacheTTL,
	}
}

func capacityKey(eventID string) string {
	return fmt.Sprintf("capacity:reserved:%s", eventID)
}

// ReservedSeats returns the number of seats held by non-voided reservations
// for the event, from cache when fresh.
func (s *EventService) ReservedSeats(ctx context.Context, eventID string) (int, error) {
	if n, err := s.Redis.Get(ctx, capacityKey(eventID)).Int(); err == nil {
		return n, nil
	} else if err != redis.Nil {
		return 0, fmt.Errorf("capacity cache read: %v: %w", err, status.ErrExternal)
	}

	n, err := s.countReservedSeats(eventID)
	if err != nil {
		return 0, err
	}

	s.Redis.Set(ctx, capacityKey(eventID), n, s.ttl)
	return n, nil
}

// InvalidateCapacity drops the cached counter after any reservation write.
func (s *EventService) InvalidateCapacity(ctx context.Context, eventID string) {
	s.Redis.Del(ctx, capacityKey(eventID))
}

func (s *EventService) countReservedSeats(eventID string) (int, error) {
	var row struct {
		Total int `db:"total"`
	}
	err := s.app.DB().
		NewQuery("SELECT COALESCE(SUM(quantity), 0) AS total FROM reservations WHERE event_id = {:event} AND status != 'voided'").
		Bind(dbx.Params{"event": eventID}).
		One(&row)
	if err != nil {
		return 0, fmt.Errorf("count reserved seats for %s: %w", eventID, err)
	}
	return row.Total, nil
}

// GetEvent loads an event with its derived status and remaining capacity.
func (s *EventService) GetEvent(ctx context.Context, eventID string) (models.Event, int, error) {
	record, err := s.app.FindRecordById("events", eventID)
	if err != nil {
		return models.Event{}, 0, fmt.Errorf("event %s: %w", eventID, status.ErrNotFound)
	}

	event := recordToEvent(record)

	reserved, err := s.ReservedSeats(ctx, eventID)
	if err != nil {
		return models.Event{}, 0, err
	}

	event.Status = models.DeriveEventStatus(event, reserved, time.Now())
	return event, models.RemainingCapacity(event, reserved), nil
}

// ListEvents returns all events with derived statuses, newest first.
func (s *EventService) ListEvents(ctx context.Context) ([]models.Event, error) {
	records, err := s.app.FindRecordsByFilter("events", "id != ''", "-date", 200, 0)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	now := time.Now()
	events := make([]models.Event, 0, len(records))
	for _, record := range records {
		event := recordToEvent(record)
		reserved, err := s.ReservedSeats(ctx, event.ID)
		if err != nil {
			return nil, err
		}
		event.Status = models.DeriveEventStatus(event, reserved, now)
		events = append(events, event)
	}
	return events, nil
}
