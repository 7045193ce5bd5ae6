package booking

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"bookline/backend/internal/domain"
	"bookline/backend/internal/store"
)

// AvailableSlots returns the bookable start times for the given service on
// the calendar date of day, ascending. An unknown service yields no slots
// rather than an error; callers validate existence where it matters. The
// result is recomputed on every call from the current appointment set, so
// identical inputs over an unchanged set give identical answers.
func (s *Service) AvailableSlots(ctx context.Context, day time.Time, serviceID uuid.UUID) ([]time.Time, error) {
	svc, err := s.services.GetByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.log.Info("slot query for unknown service", slog.String("service_id", serviceID.String()))
			return nil, nil
		}
		return nil, err
	}
	if svc.DurationMinutes <= 0 {
		return nil, nil
	}

	now := s.now()
	if dateOnly(day).Before(dateOnly(now)) {
		return nil, nil
	}
	if !s.hours.IsWorkingDay(day.Weekday()) {
		return nil, nil
	}

	grid := domain.SlotGrid(day, s.hours, s.slotEvery)

	blocking, err := s.appts.ListBlocking(ctx, day, uuid.Nil)
	if err != nil {
		return nil, err
	}
	busy, err := s.projectIntervals(ctx, blocking)
	if err != nil {
		return nil, err
	}

	available := make([]time.Time, 0, len(grid))
	for _, slot := range grid {
		if !slot.After(now) {
			continue
		}
		if domain.Occupied(slot, svc.Duration(), busy) {
			continue
		}
		available = append(available, slot)
	}
	return available, nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
