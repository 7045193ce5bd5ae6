package booking

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"bookline/backend/internal/domain"
	"bookline/backend/internal/store"
)

type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func validationError(msg string) error {
	return &ValidationError{msg: msg}
}

// Service is the scheduling engine plus the booking flows built on it. It
// holds no mutable state: every decision is a pure computation over what the
// repositories return, so calls are safe to run concurrently.
//
// Validation only answers against the snapshot it reads. Two concurrent
// booking attempts for the same slot can both validate; the appointment
// store's serialized calendar transaction is what decides the race.
type Service struct {
	appts     store.AppointmentRepository
	services  store.ServiceRepository
	hours     domain.Hours
	slotEvery time.Duration
	now       func() time.Time
	log       *slog.Logger
}

// Config carries the scheduling policy. Zero values fall back to the default
// business hours, the default slot granularity, and the system clock.
type Config struct {
	Hours     domain.Hours
	SlotEvery time.Duration
	Now       func() time.Time
	Logger    *slog.Logger
}

func NewService(appts store.AppointmentRepository, services store.ServiceRepository, cfg Config) (*Service, error) {
	hours := cfg.Hours
	if hours.Open == 0 && hours.Close == 0 && len(hours.Days) == 0 {
		hours = domain.DefaultHours()
	}
	if err := hours.Validate(); err != nil {
		return nil, err
	}

	slotEvery := cfg.SlotEvery
	if slotEvery == 0 {
		slotEvery = domain.DefaultSlotEvery
	}
	if slotEvery < 0 {
		return nil, errors.New("slot granularity must be positive")
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	return &Service{
		appts:     appts,
		services:  services,
		hours:     hours,
		slotEvery: slotEvery,
		now:       now,
		log:       log.With(slog.String("component", "booking")),
	}, nil
}

// Hours exposes the configured business hours for presentation.
func (s *Service) Hours() domain.Hours {
	return s.hours
}

type BookInput struct {
	ClientID  string
	ServiceID uuid.UUID
	StartTime time.Time
	Notes     string
}

// Book validates the proposed appointment and persists it when legal. A
// non-valid Result is returned with a nil error: rejection is an answer, not
// a failure. The store may still report ErrConflict when a concurrent booking
// wins the slot between validation and the write.
func (s *Service) Book(ctx context.Context, in BookInput) (domain.Appointment, Result, error) {
	if strings.TrimSpace(in.ClientID) == "" {
		return domain.Appointment{}, Result{}, validationError("client_id is required")
	}
	if in.ServiceID == uuid.Nil {
		return domain.Appointment{}, Result{}, validationError("service_id is required")
	}

	appt := domain.Appointment{
		ClientID:  strings.TrimSpace(in.ClientID),
		ServiceID: in.ServiceID,
		StartTime: in.StartTime,
		Status:    domain.AppointmentStatusPending,
		Notes:     in.Notes,
	}

	res, err := s.Validate(ctx, appt)
	if err != nil {
		return domain.Appointment{}, Result{}, err
	}
	if !res.Valid() {
		return domain.Appointment{}, res, nil
	}

	created, err := s.appts.Create(ctx, appt)
	if err != nil {
		return domain.Appointment{}, Result{}, err
	}

	s.log.Info("appointment booked",
		slog.String("appointment_id", created.ID.String()),
		slog.String("service_id", created.ServiceID.String()),
		slog.Time("start_time", created.StartTime),
	)
	return created, res, nil
}

// Reschedule moves an existing appointment to a new start time. The conflict
// scan excludes the appointment itself, so keeping the original time always
// passes.
func (s *Service) Reschedule(ctx context.Context, id uuid.UUID, newStart time.Time) (domain.Appointment, Result, error) {
	if id == uuid.Nil {
		return domain.Appointment{}, Result{}, validationError("appointment_id is required")
	}

	appt, err := s.appts.GetByID(ctx, id)
	if err != nil {
		return domain.Appointment{}, Result{}, err
	}
	appt.StartTime = newStart

	res, err := s.Validate(ctx, appt)
	if err != nil {
		return domain.Appointment{}, Result{}, err
	}
	if !res.Valid() {
		return domain.Appointment{}, res, nil
	}

	updated, err := s.appts.Update(ctx, appt)
	if err != nil {
		return domain.Appointment{}, Result{}, err
	}
	return updated, res, nil
}

// UpdateStatus transitions an appointment's lifecycle status. Moving into a
// blocking status re-occupies the slot; the store's serialized re-check
// rejects that with ErrConflict when the slot has since been taken.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.AppointmentStatus) (domain.Appointment, error) {
	if id == uuid.Nil {
		return domain.Appointment{}, validationError("appointment_id is required")
	}

	appt, err := s.appts.GetByID(ctx, id)
	if err != nil {
		return domain.Appointment{}, err
	}
	appt.Status = status
	return s.appts.Update(ctx, appt)
}

func (s *Service) Cancel(ctx context.Context, id uuid.UUID) (domain.Appointment, error) {
	return s.UpdateStatus(ctx, id, domain.AppointmentStatusCancelled)
}

func (s *Service) UpdateNotes(ctx context.Context, id uuid.UUID, notes string) (domain.Appointment, error) {
	if id == uuid.Nil {
		return domain.Appointment{}, validationError("appointment_id is required")
	}

	appt, err := s.appts.GetByID(ctx, id)
	if err != nil {
		return domain.Appointment{}, err
	}
	appt.Notes = notes
	return s.appts.Update(ctx, appt)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (domain.Appointment, error) {
	if id == uuid.Nil {
		return domain.Appointment{}, validationError("appointment_id is required")
	}
	return s.appts.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return validationError("appointment_id is required")
	}
	return s.appts.Delete(ctx, id)
}

// Event is a calendar feed entry with the end time already derived from the
// service duration.
type Event struct {
	ID        uuid.UUID
	Title     string
	Start     time.Time
	End       time.Time
	Status    domain.AppointmentStatus
	Notes     string
	ServiceID uuid.UUID
}

// Events returns the appointments in [windowStart, windowEnd) joined with
// their service names for calendar rendering.
func (s *Service) Events(ctx context.Context, windowStart, windowEnd time.Time) ([]Event, error) {
	if !windowEnd.After(windowStart) {
		return nil, validationError("window_end must be after window_start")
	}

	appts, err := s.appts.List(ctx, windowStart, windowEnd)
	if err != nil {
		return nil, err
	}
	services, err := s.services.List(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]domain.Service, len(services))
	for _, svc := range services {
		byID[svc.ID] = svc
	}

	events := make([]Event, 0, len(appts))
	for _, a := range appts {
		title := "Unknown"
		end := a.StartTime
		if svc, ok := byID[a.ServiceID]; ok {
			title = svc.Name
			end = a.StartTime.Add(svc.Duration())
		}
		events = append(events, Event{
			ID:        a.ID,
			Title:     title,
			Start:     a.StartTime,
			End:       end,
			Status:    a.Status,
			Notes:     a.Notes,
			ServiceID: a.ServiceID,
		})
	}
	return events, nil
}
