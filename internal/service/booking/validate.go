package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"bookline/backend/internal/domain"
	"bookline/backend/internal/store"
)

const (
	msgPastTime        = "Cannot book appointments in the past. Please select a future date and time."
	msgSlotTaken       = "This time slot is already booked. Please select another time."
	msgServiceNotFound = "Service not found."
	msgBadDuration     = "Service duration is invalid."
)

// Result is the validator's verdict: valid, or the ordered list of
// user-facing reasons it is not. Message order matches check order, so it is
// stable across calls with the same input.
type Result struct {
	Errors []string
}

func (r Result) Valid() bool {
	return len(r.Errors) == 0
}

// Validate runs the full check sequence against the proposed appointment:
// not in the past, on a working day, within business hours, and conflict-free
// against all other blocking appointments. The first two checks run
// independently; the conflict scan only runs when both passed, since a
// conflict against an already-illegal time is meaningless.
//
// A non-nil error means a collaborator failed, not that the appointment is
// invalid.
func (s *Service) Validate(ctx context.Context, appt domain.Appointment) (Result, error) {
	var errs []string

	if ok, msg := s.checkNotPast(appt.StartTime); !ok {
		errs = append(errs, msg)
	}
	if ok, msg := s.checkBusinessHours(appt.StartTime); !ok {
		errs = append(errs, msg)
	}

	if len(errs) == 0 {
		hasConflict, msg, err := s.CheckTimeConflict(ctx, appt)
		if err != nil {
			return Result{}, err
		}
		if hasConflict {
			errs = append(errs, msg)
		}
	}

	if len(errs) > 0 {
		s.log.Warn("appointment validation failed",
			slog.Time("start_time", appt.StartTime),
			slog.Int("reasons", len(errs)),
		)
	}
	return Result{Errors: errs}, nil
}

// CheckTimeConflict answers only the conflict question, used by edit flows
// that do not need the full validation pass. An unresolvable service is a
// conflict by definition: there is no duration to clear the slot with.
func (s *Service) CheckTimeConflict(ctx context.Context, appt domain.Appointment) (bool, string, error) {
	svc, err := s.services.GetByID(ctx, appt.ServiceID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.log.Warn("conflict check against unknown service", slog.String("service_id", appt.ServiceID.String()))
			return true, msgServiceNotFound, nil
		}
		return false, "", err
	}
	if svc.DurationMinutes <= 0 {
		return true, msgBadDuration, nil
	}

	newInterval := appt.Interval(svc.Duration())

	existing, err := s.appts.ListBlocking(ctx, time.Time{}, appt.ID)
	if err != nil {
		return false, "", err
	}

	busy, err := s.projectIntervals(ctx, existing)
	if err != nil {
		return false, "", err
	}

	for _, b := range busy {
		if newInterval.Overlaps(b) {
			return true, msgSlotTaken, nil
		}
	}
	return false, "", nil
}

func (s *Service) checkNotPast(start time.Time) (bool, string) {
	if start.After(s.now()) {
		return true, ""
	}
	return false, msgPastTime
}

func (s *Service) checkBusinessHours(start time.Time) (bool, string) {
	if !s.hours.IsWorkingDay(start.Weekday()) {
		return false, fmt.Sprintf("We are closed on %ss. Please select a working day (%s).",
			start.Weekday(), s.hours.DaysDisplay())
	}
	if !s.hours.InWorkingHours(domain.TimeOfDay(start)) {
		return false, fmt.Sprintf("Please select a time between %s.", s.hours.Display())
	}
	return true, ""
}

// projectIntervals resolves each appointment's service duration and maps the
// set onto the timeline. Service lookups are memoized per call; a blocking
// appointment whose service cannot be resolved is corrupt data and fails the
// whole scan.
func (s *Service) projectIntervals(ctx context.Context, appts []domain.Appointment) ([]domain.Interval, error) {
	durations := make(map[uuid.UUID]time.Duration)
	out := make([]domain.Interval, 0, len(appts))
	for _, a := range appts {
		d, ok := durations[a.ServiceID]
		if !ok {
			svc, err := s.services.GetByID(ctx, a.ServiceID)
			if err != nil {
				return nil, fmt.Errorf("resolve service %s for appointment %s: %w", a.ServiceID, a.ID, err)
			}
			d = svc.Duration()
			durations[a.ServiceID] = d
		}
		out = append(out, a.Interval(d))
	}
	return out, nil
}
