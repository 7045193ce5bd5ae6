package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/uptrace/bun"

	"bookline/backend/internal/domain"
	"bookline/backend/internal/store"
)

// calendarLockKey serializes appointment writes. The business runs a single
// shared timeline, so one coarse advisory lock covers every booking attempt.
const calendarLockKey = "bookline:calendar"

var blockingStatuses = []domain.AppointmentStatus{
	domain.AppointmentStatusPending,
	domain.AppointmentStatusConfirmed,
}

type AppointmentRepo struct {
	db *bun.DB
}

func NewAppointmentRepo(db *bun.DB) *AppointmentRepo {
	return &AppointmentRepo{db: db}
}

type calendarTx struct {
	tx bun.Tx
}

// Create inserts the appointment after re-checking the slot under the
// calendar lock. Validation outside the transaction only answers against the
// snapshot it saw; this re-check is what actually prevents two concurrent
// bookings from landing on the same slot.
func (r *AppointmentRepo) Create(ctx context.Context, appt domain.Appointment) (domain.Appointment, error) {
	var out domain.Appointment
	err := r.InCalendarTransaction(ctx, func(ctx context.Context, tx store.CalendarTx) error {
		if err := ensureSlotFree(ctx, tx, appt); err != nil {
			return err
		}
		a, err := tx.CreateAppointment(ctx, appt)
		if err != nil {
			return err
		}
		out = a
		return nil
	})
	if err != nil {
		return domain.Appointment{}, err
	}
	return out, nil
}

// Update rewrites the mutable fields, re-checking the slot when the updated
// appointment still blocks one.
func (r *AppointmentRepo) Update(ctx context.Context, appt domain.Appointment) (domain.Appointment, error) {
	var out domain.Appointment
	err := r.InCalendarTransaction(ctx, func(ctx context.Context, tx store.CalendarTx) error {
		if err := ensureSlotFree(ctx, tx, appt); err != nil {
			return err
		}
		a, err := tx.UpdateAppointment(ctx, appt)
		if err != nil {
			return err
		}
		out = a
		return nil
	})
	if err != nil {
		return domain.Appointment{}, err
	}
	return out, nil
}

func (r *AppointmentRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Appointment, error) {
	var appt domain.Appointment
	err := r.db.NewSelect().
		Model(&appt).
		Where("id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Appointment{}, store.ErrNotFound
		}
		return domain.Appointment{}, err
	}
	return appt, nil
}

func (r *AppointmentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.NewDelete().
		Model((*domain.Appointment)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *AppointmentRepo) List(ctx context.Context, windowStart, windowEnd time.Time) ([]domain.Appointment, error) {
	var rows []domain.Appointment
	err := r.db.NewSelect().
		Model(&rows).
		Where("start_time >= ?", windowStart).
		Where("start_time < ?", windowEnd).
		OrderExpr("start_time ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *AppointmentRepo) ListBlocking(ctx context.Context, day time.Time, excludeID uuid.UUID) ([]domain.Appointment, error) {
	var rows []domain.Appointment
	q := r.db.NewSelect().
		Model(&rows).
		Where("status IN (?)", bun.In(blockingStatuses))
	if !day.IsZero() {
		dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
		q = q.Where("start_time >= ?", dayStart).
			Where("start_time < ?", dayStart.AddDate(0, 0, 1))
	}
	if excludeID != uuid.Nil {
		q = q.Where("id != ?", excludeID)
	}
	err := q.OrderExpr("start_time ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// InCalendarTransaction runs fn inside a transaction holding the calendar
// advisory lock, so appointment writes are strictly serialized.
func (r *AppointmentRepo) InCalendarTransaction(ctx context.Context, fn func(ctx context.Context, tx store.CalendarTx) error) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := lockCalendar(ctx, tx); err != nil {
			return err
		}
		return fn(ctx, calendarTx{tx: tx})
	})
}

func lockCalendar(ctx context.Context, tx bun.Tx) error {
	_, err := tx.NewRaw("SELECT pg_advisory_xact_lock(hashtext(?))", calendarLockKey).Exec(ctx)
	return err
}

// ensureSlotFree re-derives the appointment's interval from its service and
// counts overlapping blocking appointments inside the locked transaction.
// Appointments whose status does not block a slot skip the check.
func ensureSlotFree(ctx context.Context, tx store.CalendarTx, appt domain.Appointment) error {
	status := appt.Status
	if status == "" {
		status = domain.AppointmentStatusPending
	}
	if !status.Blocks() {
		return nil
	}

	svc, err := tx.GetService(ctx, appt.ServiceID)
	if err != nil {
		return err
	}
	if svc.DurationMinutes <= 0 {
		return fmt.Errorf("service %s has non-positive duration %d", svc.ID, svc.DurationMinutes)
	}

	n, err := tx.CountOverlapping(ctx, appt.Interval(svc.Duration()), appt.ID)
	if err != nil {
		return err
	}
	if n > 0 {
		return store.ErrConflict
	}
	return nil
}

func (r calendarTx) GetService(ctx context.Context, id uuid.UUID) (domain.Service, error) {
	var svc domain.Service
	err := r.tx.NewSelect().
		Model(&svc).
		Where("id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Service{}, store.ErrNotFound
		}
		return domain.Service{}, err
	}
	return svc, nil
}

func (r calendarTx) CountOverlapping(ctx context.Context, iv domain.Interval, excludeID uuid.UUID) (int, error) {
	q := r.tx.NewSelect().
		Model((*domain.Appointment)(nil)).
		Join("JOIN services AS s ON s.id = appointment.service_id").
		Where("appointment.status IN (?)", bun.In(blockingStatuses)).
		Where("appointment.start_time < ?", iv.End).
		Where("appointment.start_time + make_interval(mins => s.duration_minutes) > ?", iv.Start)
	if excludeID != uuid.Nil {
		q = q.Where("appointment.id != ?", excludeID)
	}
	return q.Count(ctx)
}

func (r calendarTx) CreateAppointment(ctx context.Context, appt domain.Appointment) (domain.Appointment, error) {
	m := appt
	_, err := r.tx.NewInsert().Model(&m).Exec(ctx)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			// Foreign key violation: the referenced service vanished.
			return domain.Appointment{}, store.ErrNotFound
		}
		return domain.Appointment{}, err
	}
	return m, nil
}

func (r calendarTx) UpdateAppointment(ctx context.Context, appt domain.Appointment) (domain.Appointment, error) {
	m := appt
	res, err := r.tx.NewUpdate().
		Model(&m).
		Column("start_time", "status", "notes", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return domain.Appointment{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return domain.Appointment{}, err
	}
	if affected == 0 {
		return domain.Appointment{}, store.ErrNotFound
	}
	return m, nil
}
