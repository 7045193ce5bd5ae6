package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"bookline/backend/internal/domain"
)

// AppointmentRepository is the persistence surface the booking flows use. The
// scheduling engine itself only ever reads through ListBlocking; everything
// else serves create/edit/calendar screens.
type AppointmentRepository interface {
	Create(ctx context.Context, appt domain.Appointment) (domain.Appointment, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Appointment, error)
	Update(ctx context.Context, appt domain.Appointment) (domain.Appointment, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, windowStart, windowEnd time.Time) ([]domain.Appointment, error)

	// ListBlocking returns appointments whose status occupies a slot
	// (pending or confirmed). A zero day means unscoped; a non-zero day
	// restricts to that calendar date. excludeID, when not uuid.Nil, drops
	// that appointment so an edit does not conflict with itself.
	ListBlocking(ctx context.Context, day time.Time, excludeID uuid.UUID) ([]domain.Appointment, error)
}
