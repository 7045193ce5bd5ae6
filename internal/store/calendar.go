package store

import (
	"context"

	"github.com/google/uuid"

	"bookline/backend/internal/domain"
)

// CalendarTx is the unit of work for appointment writes. Implementations run
// it under a lock that serializes the shared calendar, so the overlap count
// observed inside the transaction cannot be invalidated by a concurrent
// booking. This is the persistence-level fix for the validate-then-write
// race: the engine's validation only answers against the snapshot it saw.
type CalendarTx interface {
	GetService(ctx context.Context, id uuid.UUID) (domain.Service, error)
	CountOverlapping(ctx context.Context, iv domain.Interval, excludeID uuid.UUID) (int, error)
	CreateAppointment(ctx context.Context, appt domain.Appointment) (domain.Appointment, error)
	UpdateAppointment(ctx context.Context, appt domain.Appointment) (domain.Appointment, error)
}
