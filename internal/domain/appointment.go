package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// Blocks reports whether an appointment in this status occupies its time slot.
// Completed and cancelled appointments do not block new bookings.
func (s AppointmentStatus) Blocks() bool {
	return s == AppointmentStatusPending || s == AppointmentStatusConfirmed
}

func ParseAppointmentStatus(s string) (AppointmentStatus, error) {
	switch AppointmentStatus(s) {
	case AppointmentStatusPending, AppointmentStatusConfirmed, AppointmentStatusCompleted, AppointmentStatusCancelled:
		return AppointmentStatus(s), nil
	}
	return "", fmt.Errorf("unknown appointment status %q", s)
}

// Appointment is a booking of a single service at a fixed start time. Its end
// time is derived from the service duration, never stored. StartTime carries
// the business's local wall-clock time; nothing here converts zones.
type Appointment struct {
	bun.BaseModel `bun:"table:appointments,alias:appointment"`

	ID        uuid.UUID         `bun:"id,pk,type:uuid"`
	ClientID  string            `bun:"client_id,notnull"`
	ServiceID uuid.UUID         `bun:"service_id,notnull,type:uuid"`
	StartTime time.Time         `bun:"start_time,notnull"`
	Status    AppointmentStatus `bun:"status,notnull"`
	Notes     string            `bun:"notes"`
	CreatedAt time.Time         `bun:"created_at,notnull"`
	UpdatedAt time.Time         `bun:"updated_at,notnull"`
}

// Interval projects the appointment onto the timeline given its service's
// duration.
func (a Appointment) Interval(duration time.Duration) Interval {
	return NewInterval(a.StartTime, duration)
}

func (a *Appointment) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	now := time.Now().UTC()
	switch query.(type) {
	case *bun.InsertQuery:
		if a.ID == uuid.Nil {
			id, err := uuid.NewV7()
			if err != nil {
				return err
			}
			a.ID = id
		}
		if a.Status == "" {
			a.Status = AppointmentStatusPending
		}
		if a.CreatedAt.IsZero() {
			a.CreatedAt = now
		}
		if a.UpdatedAt.IsZero() {
			a.UpdatedAt = now
		}
	case *bun.UpdateQuery:
		a.UpdatedAt = now
	}
	return nil
}
